package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PrathamBhadange/RehabAI/internal/auth"
	"github.com/PrathamBhadange/RehabAI/internal/config"
)

// StatusHandler serves the small utility endpoints used by the marketing app.
type StatusHandler struct {
	cfg  *config.Config
	gate *auth.Gate
}

func NewStatusHandler(cfg *config.Config, gate *auth.Gate) *StatusHandler {
	return &StatusHandler{cfg: cfg, gate: gate}
}

// Register routes under /api
func (h *StatusHandler) Register(rg *gin.RouterGroup) {
	a := rg.Group("/api")
	a.GET("/ping", h.Ping)
	a.GET("/demo", h.Demo)
	a.GET("/status", h.Status)
}

// Ping returns the configured greeting (PING_MESSAGE override, default "ping")
func (h *StatusHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": h.cfg.Server.PingMessage})
}

// Demo is the sample route kept from the original app scaffold
func (h *StatusHandler) Demo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello from RehabAI server"})
}

// Status reports which auth mode the process settled on at startup
func (h *StatusHandler) Status(c *gin.Context) {
	db := "demo mode"
	if h.gate.Reachable() {
		db = "connected"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"database":  db,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
