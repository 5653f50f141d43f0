package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskloop/todo-api/internal/core/domain"
	"github.com/taskloop/todo-api/internal/core/ports"
)

// TaskService implements owner-scoped task CRUD. The ownerID argument always
// comes from the resolved session identity, never from the request body.
type TaskService struct {
	repo   ports.TaskRepository
	logger zerolog.Logger
}

func NewTaskService(repo ports.TaskRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, logger: logger}
}

func (s *TaskService) List(ctx context.Context, ownerID string) ([]*domain.Task, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *TaskService) Create(ctx context.Context, ownerID, text string) (*domain.Task, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyTaskText
	}

	now := time.Now().UTC()
	task := &domain.Task{
		OwnerID:   ownerID,
		Text:      text,
		Completed: false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to create task")
		return nil, err
	}
	return created, nil
}

func (s *TaskService) Update(ctx context.Context, ownerID, taskID string, update ports.TaskUpdate) (*domain.Task, error) {
	if update.Text != nil && strings.TrimSpace(*update.Text) == "" {
		return nil, domain.ErrEmptyTaskText
	}
	if update.Text == nil && update.Completed == nil {
		// Nothing to apply; still verify existence and ownership.
		return s.repo.Update(ctx, ownerID, taskID, ports.TaskUpdate{})
	}
	return s.repo.Update(ctx, ownerID, taskID, update)
}

func (s *TaskService) Delete(ctx context.Context, ownerID, taskID string) error {
	return s.repo.Delete(ctx, ownerID, taskID)
}
