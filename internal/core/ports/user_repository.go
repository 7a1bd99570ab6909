package ports

import (
	"context"

	"github.com/taskly/task-service/internal/core/domain"
)

// UserRepository defines the persistence operations the auth core needs.
// Implementations must enforce username and email uniqueness at the storage
// layer; the service-level pre-checks are an optimization, not the guard.
type UserRepository interface {
	FindByID(ctx context.Context, id int) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Insert persists a new user and returns it with its assigned id.
	// A uniqueness violation surfaces as domain.ErrDuplicateUsername or
	// domain.ErrDuplicateEmail depending on the conflicting field.
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
}
