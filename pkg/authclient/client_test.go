package authclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PrathamBhadange/RehabAI/handlers"
	"github.com/PrathamBhadange/RehabAI/internal/auth"
	"github.com/PrathamBhadange/RehabAI/internal/config"
)

// newTestServer runs the real auth handlers over the demo backend
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.Secret = "client-test-secret-32-bytes-xxxxx"
	cfg.JWT.TokenTTL = time.Hour

	r := gin.New()
	handlers.NewAuthHandler(cfg, auth.NewDemoBackend()).Register(r.Group("/"))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func newStore(t *testing.T) *FileTokenStore {
	t.Helper()
	store, err := NewFileTokenStore(filepath.Join(t.TempDir(), "token"))
	require.NoError(t, err)
	return store
}

func TestLogin_PersistsTokenAndState(t *testing.T) {
	srv := newTestServer(t)
	store := newStore(t)
	c := New(srv.URL, store)

	u, err := c.Login(context.Background(), auth.DemoPatientEmail, auth.DemoPassword)
	require.NoError(t, err)
	assert.Equal(t, "demo-patient-1", u.ID)
	assert.Equal(t, u, c.User())
	assert.NotEmpty(t, c.Token())

	// token was persisted for the next run
	saved, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, c.Token(), saved)
}

func TestLogin_ServerMessagePassedThrough(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL, newStore(t))

	_, err := c.Login(context.Background(), auth.DemoPatientEmail, "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid email or password")
	assert.Nil(t, c.User())
}

func TestLogin_NonJSONResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>proxy error</html>"))
	}))
	defer srv.Close()
	c := New(srv.URL, newStore(t))

	_, err := c.Login(context.Background(), "a@x.com", "pw")
	assert.ErrorIs(t, err, ErrInvalidServerResponse)
}

func TestRegister_EstablishesSession(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL, newStore(t))

	u, err := c.Register(context.Background(), RegisterData{
		Email: "fresh@demo.com", Password: "pw1", FirstName: "F", LastName: "R",
	})
	require.NoError(t, err)
	assert.Equal(t, "patient", u.Role) // defaulted server-side
	assert.NotEmpty(t, c.Token())
}

func TestInit_RestoresSessionFromStoredToken(t *testing.T) {
	srv := newTestServer(t)
	store := newStore(t)

	// first client logs in and persists the token
	first := New(srv.URL, store)
	_, err := first.Login(context.Background(), auth.DemoPatientEmail, auth.DemoPassword)
	require.NoError(t, err)

	// a fresh client restores the session from the store alone
	second := New(srv.URL, store)
	second.Init(context.Background())
	require.NotNil(t, second.User())
	assert.Equal(t, "demo-patient-1", second.User().ID)
}

func TestInit_SilentlyDiscardsBadToken(t *testing.T) {
	srv := newTestServer(t)
	store := newStore(t)
	require.NoError(t, store.Save("not.a.valid.token"))

	c := New(srv.URL, store)
	c.Init(context.Background())

	// unauthenticated, and the stale token is gone from the store
	assert.Nil(t, c.User())
	assert.Empty(t, c.Token())
	saved, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestInit_SilentOnNetworkError(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Save("some-token"))

	// server that is not listening
	c := New("http://127.0.0.1:1", store)
	c.Init(context.Background())
	assert.Nil(t, c.User())
}

func TestLogout_ClearsStateAndStore(t *testing.T) {
	srv := newTestServer(t)
	store := newStore(t)
	c := New(srv.URL, store)

	_, err := c.Login(context.Background(), auth.DemoProviderEmail, auth.DemoPassword)
	require.NoError(t, err)
	require.NotNil(t, c.User())

	c.Logout()
	assert.Nil(t, c.User())
	assert.Empty(t, c.Token())
	saved, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestFileTokenStore_MissingFileIsEmpty(t *testing.T) {
	store := newStore(t)
	tok, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, tok)
	// clearing a missing file is not an error
	require.NoError(t, store.Clear())
}
