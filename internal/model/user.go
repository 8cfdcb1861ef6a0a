// Package model defines domain entities for the application.
package model

import "time"

// Roles an identity can hold. Admin unlocks the management endpoints.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered identity, keyed by email.
type User struct {
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
