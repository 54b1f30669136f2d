package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/PrathamBhadange/RehabAI/internal/models"
	"github.com/PrathamBhadange/RehabAI/internal/users"
)

// Seeded demo credentials, documented for reviewers. These are not secrets:
// the demo backend only serves when no real database is reachable.
const (
	DemoPatientEmail  = "patient@demo.com"
	DemoProviderEmail = "provider@demo.com"
	DemoPassword      = "demo123"
)

// DemoBackend is the in-memory fallback used when the database was not
// reachable at startup. Records live for the lifetime of the process and are
// not shared across instances. Passwords are stored and compared in clear
// text; this must never carry real credentials.
type DemoBackend struct {
	mu    sync.RWMutex
	users []*models.User
}

// NewDemoBackend seeds the fixed demo accounts.
func NewDemoBackend() *DemoBackend {
	return &DemoBackend{
		users: []*models.User{
			{
				ID:        "demo-patient-1",
				Email:     DemoPatientEmail,
				Password:  DemoPassword,
				FirstName: "Demo",
				LastName:  "Patient",
				Role:      models.RolePatient,
			},
			{
				ID:        "demo-provider-1",
				Email:     DemoProviderEmail,
				Password:  DemoPassword,
				FirstName: "Dr. Demo",
				LastName:  "Provider",
				Role:      models.RoleProvider,
			},
		},
	}
}

func (b *DemoBackend) Name() string { return "demo" }

// Register appends a synthetic record. Uniqueness is a linear scan under the
// write lock, so the check-then-append pair is atomic against concurrent
// registrations.
func (b *DemoBackend) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, u := range b.users {
		if u.Email == in.Email {
			return nil, users.ErrDuplicateEmail
		}
	}
	now := time.Now()
	u := &models.User{
		ID:        b.nextIDLocked(in.Role, now),
		Email:     in.Email,
		Password:  in.Password,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Role:      in.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	b.users = append(b.users, u)
	return u, nil
}

// nextIDLocked generates a demo-<role>-<timestamp> identifier unique within
// the process. Caller must hold the write lock.
func (b *DemoBackend) nextIDLocked(role string, now time.Time) string {
	id := fmt.Sprintf("demo-%s-%d", role, now.UnixMilli())
	for n := 1; b.hasIDLocked(id); n++ {
		id = fmt.Sprintf("demo-%s-%d-%d", role, now.UnixMilli(), n)
	}
	return id
}

func (b *DemoBackend) hasIDLocked(id string) bool {
	for _, u := range b.users {
		if u.ID == id {
			return true
		}
	}
	return false
}

func (b *DemoBackend) Login(ctx context.Context, email, password string) (*models.User, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, u := range b.users {
		if u.Email == email && u.Password == password {
			return u, nil
		}
	}
	return nil, ErrInvalidDemoCredentials
}

func (b *DemoBackend) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, u := range b.users {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, users.ErrNotFound
}
