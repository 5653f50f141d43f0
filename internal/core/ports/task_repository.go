package ports

import (
	"context"

	"github.com/taskloop/todo-api/internal/core/domain"
)

// TaskUpdate carries a partial task mutation. Nil fields are left untouched.
type TaskUpdate struct {
	Text      *string
	Completed *bool
}

// TaskRepository defines persistence operations for tasks. Every method takes
// the owner id and must include it in the underlying query; a task id alone
// is never a sufficient filter.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Task, error)
	Update(ctx context.Context, ownerID, taskID string, update TaskUpdate) (*domain.Task, error)
	Delete(ctx context.Context, ownerID, taskID string) error
}
