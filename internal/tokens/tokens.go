package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/PrathamBhadange/RehabAI/internal/config"
	"github.com/PrathamBhadange/RehabAI/internal/models"
)

// ErrInvalidToken is returned for any token that fails verification: bad
// signature, unexpected algorithm, malformed payload, or past expiry.
var ErrInvalidToken = errors.New("invalid token")

// SessionClaims is the payload carried by a session token. A token is
// self-contained: validity is determined solely by signature and expiry,
// there is no server-side revocation list.
type SessionClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// IssueSessionToken creates a signed HS256 session token for the user with
// the configured lifetime. Pure function of inputs + secret + clock.
func IssueSessionToken(cfg *config.Config, u *models.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		UserID: u.ID,
		Email:  u.Email,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(cfg.JWT.Secret))
}

// VerifySessionToken checks signature and expiry and returns the embedded
// claims. Any failure collapses to ErrInvalidToken; callers surface it as an
// authentication error and never retry.
func VerifySessionToken(cfg *config.Config, raw string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
