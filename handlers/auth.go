package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/PrathamBhadange/RehabAI/internal/auth"
	"github.com/PrathamBhadange/RehabAI/internal/config"
	"github.com/PrathamBhadange/RehabAI/internal/models"
	"github.com/PrathamBhadange/RehabAI/internal/tokens"
	"github.com/PrathamBhadange/RehabAI/internal/users"
	"github.com/PrathamBhadange/RehabAI/pkg/logger"
	"github.com/PrathamBhadange/RehabAI/pkg/metrics"
)

// RegisterRequest is the body for POST /api/auth/register
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"` // "patient" | "provider", defaults to patient
}

// LoginRequest is the body for POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the JSON envelope shared by all auth endpoints. The user
// view never includes the password.
type AuthResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	User    *models.PublicUser `json:"user,omitempty"`
	Token   string             `json:"token,omitempty"`
}

// AuthHandler binds the auth routes to the backend selected at startup.
// It holds a single Backend reference; the reachability decision was made
// once in main and is never re-branched here.
type AuthHandler struct {
	cfg     *config.Config
	backend auth.Backend
}

func NewAuthHandler(cfg *config.Config, backend auth.Backend) *AuthHandler {
	return &AuthHandler{cfg: cfg, backend: backend}
}

// Register routes under /api/auth
func (h *AuthHandler) Register(rg *gin.RouterGroup) {
	a := rg.Group("/api/auth")
	a.POST("/register", h.RegisterUser)
	a.POST("/login", h.Login)
	a.GET("/profile", h.Profile)
}

// RegisterUser creates an account and returns a session token (201)
func (h *AuthHandler) RegisterUser(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.reply(c, "register", http.StatusBadRequest, "All fields are required")
		return
	}
	if req.Email == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" {
		h.reply(c, "register", http.StatusBadRequest, "All fields are required")
		return
	}
	if req.Role == "" {
		req.Role = models.RolePatient
	}
	if !models.ValidRole(req.Role) {
		h.reply(c, "register", http.StatusBadRequest, "Role must be patient or provider")
		return
	}

	u, err := h.backend.Register(c.Request.Context(), auth.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
	})
	if err != nil {
		h.fail(c, "register", err)
		return
	}

	token, err := tokens.IssueSessionToken(h.cfg, u, h.cfg.JWT.TokenTTL)
	if err != nil {
		h.fail(c, "register", err)
		return
	}

	metrics.AuthRequests.WithLabelValues("register", h.backend.Name(), "201").Inc()
	c.JSON(http.StatusCreated, AuthResponse{
		Success: true,
		Message: "User registered successfully",
		User:    u.Public(),
		Token:   token,
	})
}

// Login authenticates and returns a session token (200)
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.reply(c, "login", http.StatusBadRequest, "Email and password are required")
		return
	}
	if req.Email == "" || req.Password == "" {
		h.reply(c, "login", http.StatusBadRequest, "Email and password are required")
		return
	}

	u, err := h.backend.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, "login", err)
		return
	}

	token, err := tokens.IssueSessionToken(h.cfg, u, h.cfg.JWT.TokenTTL)
	if err != nil {
		h.fail(c, "login", err)
		return
	}

	metrics.AuthRequests.WithLabelValues("login", h.backend.Name(), "200").Inc()
	c.JSON(http.StatusOK, AuthResponse{
		Success: true,
		Message: "Login successful",
		User:    u.Public(),
		Token:   token,
	})
}

// Profile returns the public-safe record for the bearer token subject (200)
func (h *AuthHandler) Profile(c *gin.Context) {
	raw := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
	if raw == "" {
		h.reply(c, "profile", http.StatusUnauthorized, "No token provided")
		return
	}

	claims, err := tokens.VerifySessionToken(h.cfg, raw)
	if err != nil {
		h.fail(c, "profile", err)
		return
	}

	u, err := h.backend.GetProfile(c.Request.Context(), claims.UserID)
	if err != nil {
		h.fail(c, "profile", err)
		return
	}

	metrics.AuthRequests.WithLabelValues("profile", h.backend.Name(), "200").Inc()
	c.JSON(http.StatusOK, AuthResponse{
		Success: true,
		Message: "Profile retrieved successfully",
		User:    u.Public(),
	})
}

// reply emits an error envelope for failures detected in the handler itself
func (h *AuthHandler) reply(c *gin.Context, op string, status int, message string) {
	metrics.AuthRequests.WithLabelValues(op, h.backend.Name(), fmt.Sprintf("%d", status)).Inc()
	c.JSON(status, AuthResponse{Success: false, Message: message})
}

// fail translates backend and codec errors to the HTTP taxonomy. Unexpected
// errors are logged server-side and returned as a generic 500; nothing
// propagates unhandled to the transport layer.
func (h *AuthHandler) fail(c *gin.Context, op string, err error) {
	var status int
	var msg string
	switch {
	case errors.Is(err, users.ErrDuplicateEmail):
		status, msg = http.StatusBadRequest, "User already exists with this email"
	case errors.Is(err, auth.ErrInvalidDemoCredentials):
		status, msg = http.StatusUnauthorized, "Invalid email or password. Try: "+auth.DemoPatientEmail+" / "+auth.DemoPassword
	case errors.Is(err, users.ErrInvalidCredentials):
		status, msg = http.StatusUnauthorized, "Invalid email or password"
	case errors.Is(err, tokens.ErrInvalidToken):
		status, msg = http.StatusUnauthorized, "Invalid token"
	case errors.Is(err, users.ErrNotFound):
		status, msg = http.StatusNotFound, "User not found"
	case errors.Is(err, auth.ErrUnavailable):
		status, msg = http.StatusServiceUnavailable, "Database connection not available. Please try again later."
	default:
		logger.Errorf("%s error: %v", op, err)
		status, msg = http.StatusInternalServerError, "Internal server error"
	}
	h.reply(c, op, status, msg)
}
