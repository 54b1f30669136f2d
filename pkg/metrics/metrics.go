package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	AuthRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "rehabai", Name: "auth_requests_total", Help: "Auth requests by operation, serving backend and response status."},
		[]string{"operation", "backend", "status"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "rehabai", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "rehabai", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(AuthRequests)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
