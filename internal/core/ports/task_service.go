package ports

import (
	"context"

	"github.com/taskly/task-service/internal/core/domain"
)

// CreateTaskInput carries the data needed to create a task. OwnerID is
// always taken from the resolved identity, never from the request body.
type CreateTaskInput struct {
	Title       string
	Description string
	Completed   bool
}

// TaskService defines the owner-scoped use-case operations for tasks.
type TaskService interface {
	Create(ctx context.Context, ownerID int, input CreateTaskInput) (*domain.Task, error)
	List(ctx context.Context, ownerID int, search string) ([]*domain.Task, error)
	Update(ctx context.Context, ownerID int, taskID string, patch TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, ownerID int, taskID string) error
}
