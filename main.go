package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/PrathamBhadange/RehabAI/handlers"
	"github.com/PrathamBhadange/RehabAI/internal/auth"
	"github.com/PrathamBhadange/RehabAI/internal/config"
	"github.com/PrathamBhadange/RehabAI/internal/database"
	"github.com/PrathamBhadange/RehabAI/internal/users"
	"github.com/PrathamBhadange/RehabAI/pkg/logger"
	"github.com/PrathamBhadange/RehabAI/pkg/metrics"
	"github.com/PrathamBhadange/RehabAI/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// initialize logging (can be controlled with LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v jwt_secret_set=%v", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.JWT.Secret != "")

	r := gin.New()

	// Lightweight CORS middleware for dev/test: set common headers and respond to OPTIONS.
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	// Global middlewares: logging + recovery
	r.Use(gin.Logger(), gin.Recovery())

	// Connect to Redis early so the rate-limiter can use it when configured
	var importedRedis *redis.Client
	if cfg.Redis.Host != "" {
		importedRedis = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password})
		if err := importedRedis.Ping(context.Background()).Err(); err == nil {
			logger.Infof("Connected to Redis for rate limiting: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		} else {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			importedRedis = nil
		}
	}
	// Optional global rate limiter (per-user when a session token is present, otherwise per-IP)
	if cfg.RateLimit.Enabled {
		r.Use(middleware.SessionClaimsMiddleware(cfg))
		if cfg.RateLimit.UseRedis && importedRedis != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(importedRedis, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Basic health endpoint
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// Single MongoDB connection attempt. The outcome fixes the reachability
	// gate for the life of the process: a failure here routes every auth
	// request to the in-memory demo backend until restart (no reconnect).
	ctx := context.Background()
	client, errConn := database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
	gate := auth.NewGate(errConn == nil)

	var backend auth.Backend
	if errConn == nil {
		defer func() { _ = client.Disconnect(ctx) }()
		usersCol := client.Database(cfg.MongoDB.Database).Collection("users")
		repo := users.NewMongoRepository(usersCol)
		backend = auth.NewMongoBackend(users.NewService(repo), gate)
		logger.Infof("Connected to MongoDB; serving auth from the persistent store")
	} else {
		backend = auth.NewDemoBackend()
		logger.Warnf("MongoDB connection failed - running in demo mode: %v", errConn)
		logger.Warnf("demo credentials: %s / %s", auth.DemoPatientEmail, auth.DemoPassword)
	}

	// readiness reports which mode the process settled on; the demo backend
	// has no external dependencies so it is always ready
	r.GET("/ready", func(c *gin.Context) {
		deps := map[string]bool{
			"mongodb": gate.Reachable(),
			"redis":   importedRedis != nil || cfg.Redis.Host == "",
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "mode": backend.Name(), "deps": deps, "uptime": time.Since(startTime).String()})
	})

	// Register API handlers
	rg := r.Group("/")
	handlers.NewAuthHandler(cfg, backend).Register(rg)
	handlers.NewStatusHandler(cfg, gate).Register(rg)
	handlers.RegisterSwagger(r)

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Starting auth service on %s (mode=%s)", addr, backend.Name())
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
