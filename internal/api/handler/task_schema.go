package handler

import "time"

type createTaskRequest struct {
	Title       string `json:"title"       validate:"required,max=150"`
	Description string `json:"description" validate:"max=500"`
	Completed   bool   `json:"completed"`
}

// updateTaskRequest carries the allowed edit fields. Nil means "leave
// unchanged", so completed can be flipped back to false explicitly.
type updateTaskRequest struct {
	Title       *string `json:"title"       validate:"omitempty,max=150"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Completed   *bool   `json:"completed"`
}

type taskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	TimeCreated time.Time `json:"time_created"`
}

type deleteTaskResponse struct {
	Message string `json:"message"`
}
