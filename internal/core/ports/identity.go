package ports

import (
	"context"

	"github.com/taskly/task-service/internal/core/domain"
)

// IdentityResolver turns a bearer access token into the authenticated user.
// Every call re-verifies the token and re-reads the user row, so account
// deactivation takes effect on the very next request.
type IdentityResolver interface {
	// Resolve fails with domain.ErrInvalidCredentials on a bad or expired
	// token and domain.ErrUserNotFound when the subject has no backing row.
	Resolve(ctx context.Context, accessToken string) (*domain.User, error)
	// ResolveActive additionally fails with domain.ErrAccountDeactivated
	// when the resolved account is inactive.
	ResolveActive(ctx context.Context, accessToken string) (*domain.User, error)
}
