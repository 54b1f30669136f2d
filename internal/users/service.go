package users

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/PrathamBhadange/RehabAI/internal/models"
)

var (
	// ErrDuplicateEmail means a record with the same email already exists.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidCredentials is returned for both unknown email and wrong
	// password so callers cannot tell which part failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotFound means the identifier no longer resolves to a record.
	ErrNotFound = errors.New("user not found")
)

// Service encapsulates account business logic over a Repository
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// RegisterUser creates a new account with a bcrypt-hashed password.
// Email uniqueness is enforced by a read immediately before the insert;
// the storage layer translates a lost race to ErrDuplicateEmail as well.
func (s *Service) RegisterUser(ctx context.Context, email, password, firstName, lastName, role string) (*models.User, error) {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		Email:     email,
		Password:  string(hash),
		FirstName: firstName,
		LastName:  lastName,
		Role:      role,
	}
	return s.repo.Create(ctx, u)
}

// Authenticate looks up the account by email and compares the bcrypt hash.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// GetByID resolves a token subject back to its account record.
func (s *Service) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}
