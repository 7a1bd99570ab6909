package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskly/task-service/internal/core/domain"
	"github.com/taskly/task-service/internal/core/ports"
)

// taskService implements the owner-scoped task use cases. Authorization is
// structural: every repository call carries the owner id, so a user can
// never see or touch another user's tasks.
type taskService struct {
	repo   ports.TaskRepository
	logger zerolog.Logger
}

func NewTaskService(repo ports.TaskRepository, logger zerolog.Logger) ports.TaskService {
	return &taskService{repo: repo, logger: logger}
}

func (s *taskService) Create(ctx context.Context, ownerID int, input ports.CreateTaskInput) (*domain.Task, error) {
	task := &domain.Task{
		Title:       input.Title,
		Description: input.Description,
		Completed:   input.Completed,
		OwnerID:     ownerID,
		TimeCreated: time.Now().UTC(),
	}

	created, err := s.repo.Insert(ctx, task)
	if err != nil {
		s.logger.Error().Err(err).Int("owner_id", ownerID).Msg("failed to create task")
		return nil, err
	}

	s.logger.Info().Str("task_id", created.ID).Int("owner_id", ownerID).Msg("task created")
	return created, nil
}

func (s *taskService) List(ctx context.Context, ownerID int, search string) ([]*domain.Task, error) {
	return s.repo.List(ctx, ports.ListTasksFilter{OwnerID: ownerID, Search: search})
}

func (s *taskService) Update(ctx context.Context, ownerID int, taskID string, patch ports.TaskPatch) (*domain.Task, error) {
	return s.repo.Update(ctx, ownerID, taskID, patch)
}

func (s *taskService) Delete(ctx context.Context, ownerID int, taskID string) error {
	if err := s.repo.Delete(ctx, ownerID, taskID); err != nil {
		return err
	}
	s.logger.Info().Str("task_id", taskID).Int("owner_id", ownerID).Msg("task deleted")
	return nil
}
