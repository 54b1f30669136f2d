package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/PrathamBhadange/RehabAI/internal/auth"
	"github.com/PrathamBhadange/RehabAI/internal/config"
)

func statusRouter(pingMessage string, reachable bool) *gin.Engine {
	cfg := &config.Config{}
	cfg.Server.PingMessage = pingMessage
	r := gin.New()
	NewStatusHandler(cfg, auth.NewGate(reachable)).Register(r.Group("/"))
	return r
}

func TestPing_MessageOverride(t *testing.T) {
	r := statusRouter("hello from env", true)

	req := httptest.NewRequest("GET", "/api/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var got map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "hello from env", got["message"])
}

func TestStatus_ReportsAuthMode(t *testing.T) {
	for _, tc := range []struct {
		reachable bool
		want      string
	}{
		{true, "connected"},
		{false, "demo mode"},
	} {
		r := statusRouter("ping", tc.reachable)
		req := httptest.NewRequest("GET", "/api/status", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var got map[string]string
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "ok", got["status"])
		assert.Equal(t, tc.want, got["database"])
		assert.NotEmpty(t, got["timestamp"])
	}
}
