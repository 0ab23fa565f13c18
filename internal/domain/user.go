package domain

import "time"

// User is the domain model for reader accounts.
type User struct {
	ID               int64
	Username         string
	Email            string
	PasswordHash     string
	Premium          bool
	ProfilePicture   []byte
	RegistrationDate time.Time
}
