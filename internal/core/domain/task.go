package domain

import (
	"errors"
	"time"
)

// ErrTaskNotFound covers both a missing task and a task owned by another
// user, so the API never reveals whether a foreign task id exists.
var ErrTaskNotFound = errors.New("task not found or user not authorized to access task")

// Task is a single to-do item owned by exactly one user.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	OwnerID     int       `json:"owner_id"`
	TimeCreated time.Time `json:"time_created"`
}
