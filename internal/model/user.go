// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents an administrative account.
//
// There is no self-registration: the single admin account is seeded at
// startup (check-then-create, so restarts never duplicate it).
//
// PasswordHash carries the bcrypt hash of the password — never the
// plaintext. The `json:"-"` tag guarantees the hash can never leak through
// an API response, even if a handler marshals the struct directly.
type User struct {
	ID           string    `json:"id"        db:"id"`
	Username     string    `json:"username"  db:"username"` // unique, case-sensitive
	PasswordHash string    `json:"-"         db:"password_hash"`
	Role         string    `json:"role"      db:"role"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// PublicUser is the profile shape returned by login and current-user
// responses: identity fields only, nothing secret.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Public returns the user's public profile.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Role:     u.Role,
	}
}
