package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/PrathamBhadange/RehabAI/internal/models"
)

// ErrInvalidServerResponse is returned when the server answers with a body
// that is not JSON (a proxy error page, for instance).
var ErrInvalidServerResponse = errors.New("invalid server response")

// RegisterData carries the registration form fields.
type RegisterData struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role,omitempty"`
}

type authEnvelope struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	User    *models.PublicUser `json:"user"`
	Token   string             `json:"token"`
}

// Client holds the current session state (user, token) for the lifetime of
// the process and performs the auth HTTP calls. Concurrent Login calls are
// not de-duplicated; the last writer wins on the persisted token.
type Client struct {
	baseURL string
	httpc   *http.Client
	store   TokenStore

	mu    sync.RWMutex
	user  *models.PublicUser
	token string
}

// New creates a client for the given API base URL (no trailing slash needed).
func New(baseURL string, store TokenStore) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 30 * time.Second},
		store:   store,
	}
}

// Init restores the session from the persisted token with a single
// best-effort profile fetch. Any failure (non-OK status, non-JSON body,
// network error) discards the token and leaves the client unauthenticated.
// It never returns an error: startup always resolves.
func (c *Client) Init(ctx context.Context) {
	token, err := c.store.Load()
	if err != nil || token == "" {
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/auth/profile", nil)
	if err != nil {
		c.reset()
		return
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.reset()
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK || !isJSON(resp) {
		c.reset()
		return
	}
	var env authEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil || !env.Success || env.User == nil {
		c.reset()
		return
	}

	c.mu.Lock()
	c.user = env.User
	c.token = token
	c.mu.Unlock()
}

// Login authenticates, persists the token locally and updates in-memory state.
func (c *Client) Login(ctx context.Context, email, password string) (*models.PublicUser, error) {
	return c.post(ctx, "/api/auth/login", map[string]string{"email": email, "password": password})
}

// Register creates an account; on success the session is established the same
// way as after a login.
func (c *Client) Register(ctx context.Context, data RegisterData) (*models.PublicUser, error) {
	return c.post(ctx, "/api/auth/register", data)
}

// Logout clears in-memory state and the persisted token. No server call.
func (c *Client) Logout() {
	c.reset()
}

// User returns the current session user, or nil when unauthenticated.
func (c *Client) User() *models.PublicUser {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user
}

// Token returns the current session token, or empty when unauthenticated.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) post(ctx context.Context, path string, body interface{}) (*models.PublicUser, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	if !isJSON(resp) {
		return nil, ErrInvalidServerResponse
	}
	var env authEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, ErrInvalidServerResponse
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		msg := env.Message
		if msg == "" {
			msg = fmt.Sprintf("server error: %d", resp.StatusCode)
		}
		return nil, errors.New(msg)
	}
	if env.User == nil || env.Token == "" {
		return nil, ErrInvalidServerResponse
	}

	// persist before publishing state so a restart sees the same session
	if err := c.store.Save(env.Token); err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.user = env.User
	c.token = env.Token
	c.mu.Unlock()
	return env.User, nil
}

func (c *Client) reset() {
	_ = c.store.Clear()
	c.mu.Lock()
	c.user = nil
	c.token = ""
	c.mu.Unlock()
}

func isJSON(resp *http.Response) bool {
	return strings.Contains(resp.Header.Get("Content-Type"), "application/json")
}
