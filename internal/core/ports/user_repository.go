package ports

import (
	"context"

	"github.com/taskloop/todo-api/internal/core/domain"
)

// ProfileUpdate carries the mutable profile fields.
type ProfileUpdate struct {
	Name     string
	Username string
	Email    string
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIdentifier matches the identifier against username OR email.
	FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*domain.User, error)
	SetProfilePic(ctx context.Context, id string, path string) (*domain.User, error)
}
