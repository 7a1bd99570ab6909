package domain

import (
	"errors"
	"time"
)

var ErrInvalidCredentials = errors.New("invalid username or password")
var ErrAccountDeactivated = errors.New("user account is deactivated")
var ErrDuplicateUsername = errors.New("username already taken")
var ErrDuplicateEmail = errors.New("email already registered")
var ErrUserNotFound = errors.New("user not found")

// User models a registered account. PasswordHash is never serialized.
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}
