package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/PrathamBhadange/RehabAI/internal/models"
	"github.com/PrathamBhadange/RehabAI/internal/users"
)

var (
	// ErrUnavailable means the persistent store was not reachable at
	// startup; only the Mongo-backed backend returns it.
	ErrUnavailable = errors.New("database connection not available")

	// ErrInvalidDemoCredentials wraps users.ErrInvalidCredentials so the
	// demo backend can carry the seeded-account hint without breaking
	// errors.Is checks upstream.
	ErrInvalidDemoCredentials = fmt.Errorf("%w (try %s / %s)", users.ErrInvalidCredentials, DemoPatientEmail, DemoPassword)
)

// RegisterInput carries the validated registration fields. Role is already
// defaulted to "patient" by the caller when absent.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      string
}

// Backend is the strategy seam between the Mongo-backed auth flow and the
// in-memory demo flow. Exactly one implementation is selected at startup and
// held for the life of the process; requests never re-branch on reachability.
type Backend interface {
	// Register creates a new account or fails with users.ErrDuplicateEmail.
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	// Login authenticates or fails with users.ErrInvalidCredentials. The
	// error is identical for unknown email and wrong password.
	Login(ctx context.Context, email, password string) (*models.User, error)
	// GetProfile resolves a verified token subject, failing with
	// users.ErrNotFound when the identifier no longer matches a record.
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	// Name identifies the backend in logs and metrics ("mongo" | "demo").
	Name() string
}
