package dto

import (
	"time"

	"github.com/booksfrog/booksfrog/internal/domain"
)

// UserUpdateRequest carries optional profile changes.
type UserUpdateRequest struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	ProfilePicture []byte `json:"profile_picture,omitempty"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID               int64     `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	Premium          bool      `json:"premium"`
	RegistrationDate time.Time `json:"registration_date"`
}

// FromUser maps the domain model to its public view.
func FromUser(user *domain.User) UserResponse {
	return UserResponse{
		ID:               user.ID,
		Username:         user.Username,
		Email:            user.Email,
		Premium:          user.Premium,
		RegistrationDate: user.RegistrationDate,
	}
}
