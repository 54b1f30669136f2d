package auth

import (
	"context"

	"github.com/PrathamBhadange/RehabAI/internal/models"
	"github.com/PrathamBhadange/RehabAI/internal/users"
)

// MongoBackend serves auth operations from the persistent user store. Every
// operation checks the reachability gate before touching the store; with the
// startup selection in main this path is defensive, but it keeps the 503
// contract intact if the backend is ever wired while unreachable.
type MongoBackend struct {
	svc  *users.Service
	gate *Gate
}

func NewMongoBackend(svc *users.Service, gate *Gate) *MongoBackend {
	return &MongoBackend{svc: svc, gate: gate}
}

func (b *MongoBackend) Name() string { return "mongo" }

func (b *MongoBackend) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if !b.gate.Reachable() {
		return nil, ErrUnavailable
	}
	return b.svc.RegisterUser(ctx, in.Email, in.Password, in.FirstName, in.LastName, in.Role)
}

func (b *MongoBackend) Login(ctx context.Context, email, password string) (*models.User, error) {
	if !b.gate.Reachable() {
		return nil, ErrUnavailable
	}
	return b.svc.Authenticate(ctx, email, password)
}

func (b *MongoBackend) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	if !b.gate.Reachable() {
		return nil, ErrUnavailable
	}
	return b.svc.GetByID(ctx, userID)
}
