package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/taskly/task-service/internal/core/domain"
	"github.com/taskly/task-service/internal/core/ports"
)

type stubTaskRepo struct {
	tasks  map[string]*domain.Task
	nextID int
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[string]*domain.Task), nextID: 1}
}

func cloneTask(t *domain.Task) *domain.Task {
	clone := *t
	return &clone
}

func (r *stubTaskRepo) Insert(_ context.Context, task *domain.Task) (*domain.Task, error) {
	copy := cloneTask(task)
	copy.ID = "task-" + strconv.Itoa(r.nextID)
	r.nextID++
	r.tasks[copy.ID] = cloneTask(copy)
	return copy, nil
}

func (r *stubTaskRepo) List(_ context.Context, filter ports.ListTasksFilter) ([]*domain.Task, error) {
	var out []*domain.Task
	needle := strings.ToLower(filter.Search)
	for _, task := range r.tasks {
		if task.OwnerID != filter.OwnerID {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(task.Title), needle) &&
			!strings.Contains(strings.ToLower(task.Description), needle) {
			continue
		}
		out = append(out, cloneTask(task))
	}
	return out, nil
}

func (r *stubTaskRepo) Update(_ context.Context, ownerID int, taskID string, patch ports.TaskPatch) (*domain.Task, error) {
	task, ok := r.tasks[taskID]
	if !ok || task.OwnerID != ownerID {
		return nil, domain.ErrTaskNotFound
	}
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Completed != nil {
		task.Completed = *patch.Completed
	}
	return cloneTask(task), nil
}

func (r *stubTaskRepo) Delete(_ context.Context, ownerID int, taskID string) error {
	task, ok := r.tasks[taskID]
	if !ok || task.OwnerID != ownerID {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, taskID)
	return nil
}

func newTestTaskService(repo *stubTaskRepo) ports.TaskService {
	return NewTaskService(repo, zerolog.Nop())
}

func TestTaskService_CreateAndList(t *testing.T) {
	repo := newStubTaskRepo()
	svc := newTestTaskService(repo)

	created, err := svc.Create(context.Background(), 1, ports.CreateTaskInput{
		Title:       "Buy milk",
		Description: "two liters",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected assigned task id")
	}
	if created.OwnerID != 1 {
		t.Fatalf("expected owner 1, got %d", created.OwnerID)
	}
	if created.TimeCreated.IsZero() {
		t.Fatalf("expected creation timestamp")
	}

	tasks, err := svc.List(context.Background(), 1, "")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "Buy milk" {
		t.Fatalf("unexpected list result: %+v", tasks)
	}
}

func TestTaskService_List_ScopedToOwner(t *testing.T) {
	repo := newStubTaskRepo()
	svc := newTestTaskService(repo)

	if _, err := svc.Create(context.Background(), 1, ports.CreateTaskInput{Title: "mine"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), 2, ports.CreateTaskInput{Title: "theirs"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	tasks, err := svc.List(context.Background(), 1, "")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "mine" {
		t.Fatalf("list leaked foreign tasks: %+v", tasks)
	}
}

func TestTaskService_List_Search(t *testing.T) {
	repo := newStubTaskRepo()
	svc := newTestTaskService(repo)

	seed := []ports.CreateTaskInput{
		{Title: "Buy groceries", Description: "milk and eggs"},
		{Title: "Call plumber", Description: "kitchen sink"},
		{Title: "groceries list", Description: "for the weekend"},
	}
	for _, in := range seed {
		if _, err := svc.Create(context.Background(), 1, in); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	tasks, err := svc.List(context.Background(), 1, "GROCERIES")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(tasks))
	}

	tasks, err = svc.List(context.Background(), 1, "sink")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "Call plumber" {
		t.Fatalf("description search failed: %+v", tasks)
	}
}

func TestTaskService_Update_Partial(t *testing.T) {
	repo := newStubTaskRepo()
	svc := newTestTaskService(repo)

	created, err := svc.Create(context.Background(), 1, ports.CreateTaskInput{
		Title:       "Draft report",
		Description: "quarterly numbers",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	done := true
	updated, err := svc.Update(context.Background(), 1, created.ID, ports.TaskPatch{Completed: &done})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if !updated.Completed {
		t.Fatalf("expected completed=true")
	}
	if updated.Title != "Draft report" || updated.Description != "quarterly numbers" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
}

func TestTaskService_Update_ForeignTask(t *testing.T) {
	repo := newStubTaskRepo()
	svc := newTestTaskService(repo)

	created, err := svc.Create(context.Background(), 1, ports.CreateTaskInput{Title: "mine"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	title := "stolen"
	if _, err := svc.Update(context.Background(), 2, created.ID, ports.TaskPatch{Title: &title}); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound for foreign task, got %v", err)
	}
}

func TestTaskService_Delete(t *testing.T) {
	repo := newStubTaskRepo()
	svc := newTestTaskService(repo)

	created, err := svc.Create(context.Background(), 1, ports.CreateTaskInput{Title: "temp"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(context.Background(), 2, created.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound for foreign delete, got %v", err)
	}
	if err := svc.Delete(context.Background(), 1, created.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := svc.Delete(context.Background(), 1, created.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound for second delete, got %v", err)
	}
}
