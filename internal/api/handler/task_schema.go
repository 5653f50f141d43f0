package handler

import "time"

type createTaskRequest struct {
	Text string `json:"text" validate:"required"`
}

// updateTaskRequest is a partial update: absent fields are left unchanged.
type updateTaskRequest struct {
	Text      *string `json:"text,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

type taskResponse struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type messageResponse struct {
	Message string `json:"message"`
}
