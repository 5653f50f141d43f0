package domain

import (
	"errors"
	"time"
)

var ErrTaskNotFound = errors.New("task not found")
var ErrEmptyTaskText = errors.New("task text is required")

// Task is a single to-do item. OwnerID is mandatory: every query against
// tasks must carry it, so one user can never see or touch another's items.
type Task struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
