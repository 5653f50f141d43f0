package ports

import (
	"context"

	"github.com/taskloop/todo-api/internal/core/domain"
)

// RegisterInput carries the signup payload.
type RegisterInput struct {
	Name     string
	Username string
	Email    string
	Password string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login accepts a username or an email as identifier and returns a signed
	// session token plus the authenticated user.
	Login(ctx context.Context, identifier, password string) (string, *domain.User, error)
}
