package ports

import (
	"context"

	"github.com/taskloop/todo-api/internal/core/domain"
)

// TaskService defines use-case operations on tasks. The caller identity is
// resolved by the auth middleware and passed in as ownerID; services never
// trust a client-supplied owner.
type TaskService interface {
	List(ctx context.Context, ownerID string) ([]*domain.Task, error)
	Create(ctx context.Context, ownerID, text string) (*domain.Task, error)
	Update(ctx context.Context, ownerID, taskID string, update TaskUpdate) (*domain.Task, error)
	Delete(ctx context.Context, ownerID, taskID string) error
}
