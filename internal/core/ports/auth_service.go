package ports

import (
	"context"

	"github.com/taskly/task-service/internal/core/domain"
)

// AuthService orchestrates registration, login and token refresh.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*domain.TokenPair, error)
	// Refresh mints a new access token and echoes the presented refresh
	// token back unchanged. Any verification failure, including a subject
	// that no longer resolves to a user, surfaces as
	// domain.ErrInvalidCredentials.
	Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	// CheckAvailability reports whether the given username and email are
	// both free. It is a non-authoritative pre-check for registration forms.
	CheckAvailability(ctx context.Context, username, email string) (bool, error)
}
