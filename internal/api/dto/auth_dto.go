package dto

import "time"

// RegisterRequest payload for new users. Premium and profile picture are
// optional; the picture travels base64-encoded.
type RegisterRequest struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Premium        bool   `json:"premium"`
	ProfilePicture []byte `json:"profile_picture,omitempty"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
