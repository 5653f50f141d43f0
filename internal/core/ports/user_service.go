package ports

import (
	"context"
	"io"

	"github.com/taskloop/todo-api/internal/core/domain"
)

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*domain.User, error)
	// UploadAvatar stores the image and returns the user with the new
	// profile picture path set.
	UploadAvatar(ctx context.Context, userID, filename string, file io.Reader) (*domain.User, error)
}
