package model

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. Guest accounts are rows with IsGuest set
// and no credentials; they exist so guest-token carts can persist.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Name         string    `json:"name" db:"name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	IsGuest      bool      `json:"is_guest" db:"is_guest"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// AuthResponse is returned by register, login and guest endpoints.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
