package models

import "time"

// User represents a person known to the system.
// The ID is the subject issued by the external auth provider.
type User struct {
	// ID is the unique identifier for the user.
	ID string

	// Name is the display name of the user.
	Name string

	// Email is the user's email address (unique).
	Email string

	// ImageURL is an optional avatar reference.
	ImageURL string

	// CreatedAt is the Unix timestamp when the user was first seen.
	CreatedAt int64
}

// NewUser creates a user record stamped with the current time.
func NewUser(id, name, email string) *User {
	return &User{
		ID:        id,
		Name:      name,
		Email:     email,
		CreatedAt: time.Now().Unix(),
	}
}
