package ports

import (
	"context"

	"github.com/taskly/task-service/internal/core/domain"
)

// ListTasksFilter carries the query parameters for listing tasks.
// OwnerID is always enforced: a user only ever sees their own tasks.
type ListTasksFilter struct {
	OwnerID int
	// Search is an optional case-insensitive substring matched against
	// title or description.
	Search string
}

// TaskPatch holds the mutable fields of a task. Nil pointers mean
// "leave unchanged".
type TaskPatch struct {
	Title       *string
	Description *string
	Completed   *bool
}

// TaskRepository defines persistence operations for tasks. Every read and
// write is scoped by owner id; a lookup that matches no row owned by the
// caller returns domain.ErrTaskNotFound.
type TaskRepository interface {
	Insert(ctx context.Context, task *domain.Task) (*domain.Task, error)
	List(ctx context.Context, filter ListTasksFilter) ([]*domain.Task, error)
	Update(ctx context.Context, ownerID int, taskID string, patch TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, ownerID int, taskID string) error
}
