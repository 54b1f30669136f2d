package models

import "time"

// Roles form a closed set; registration defaults to RolePatient.
const (
	RolePatient  = "patient"
	RoleProvider = "provider"
)

// User represents an application user (patient or provider account).
// Password holds a bcrypt hash on the Mongo path and clear text only for
// in-memory demo accounts; it is never serialized to JSON.
type User struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Email     string    `bson:"email" json:"email"`
	Password  string    `bson:"password" json:"-"`
	FirstName string    `bson:"firstName" json:"firstName"`
	LastName  string    `bson:"lastName" json:"lastName"`
	Role      string    `bson:"role" json:"role"`
	CreatedAt time.Time `bson:"createdAt" json:"-"`
	UpdatedAt time.Time `bson:"updatedAt" json:"-"`
}

// PublicUser is the wire representation returned by the auth API.
type PublicUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

// Public returns the public-safe view of the user (no password field at all).
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
	}
}

// ValidRole reports whether role belongs to the closed role set.
func ValidRole(role string) bool {
	return role == RolePatient || role == RoleProvider
}
