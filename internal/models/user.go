package models

import "time"

// User is the current account profile. Role checks against IsAdmin gate the
// back-office surface only; there is no server-side authorization beyond it.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Phone        string    `json:"phone,omitempty"`
	Location     string    `json:"location,omitempty"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	IsAdmin      bool      `json:"is_admin"`
	Suspended    bool      `json:"suspended"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PasswordReset is a pending forgot-password token.
type PasswordReset struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}
