package service

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/taskloop/todo-api/internal/core/domain"
	"github.com/taskloop/todo-api/internal/core/ports"
)

// allowedImageExts are the accepted avatar file extensions.
var allowedImageExts = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

// UserService implements profile reads and updates.
type UserService struct {
	repo    ports.UserRepository
	avatars ports.AvatarStore
	logger  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, avatars ports.AvatarStore, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, avatars: avatars, logger: logger}
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, update ports.ProfileUpdate) (*domain.User, error) {
	if update.Name == "" || update.Username == "" || update.Email == "" {
		return nil, domain.ErrInvalidCredentials
	}
	update.Email = strings.ToLower(update.Email)
	return s.repo.UpdateProfile(ctx, userID, update)
}

func (s *UserService) UploadAvatar(ctx context.Context, userID, filename string, file io.Reader) (*domain.User, error) {
	if file == nil || filename == "" {
		return nil, domain.ErrNoFileAttached
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedImageExts[ext]; !ok {
		return nil, domain.ErrUnsupportedImageType
	}

	path, err := s.avatars.Save(userID, filename, file)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to store avatar")
		return nil, err
	}

	user, err := s.repo.SetProfilePic(ctx, userID, path)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", userID).Str("profile_pic", path).Msg("avatar updated")
	return user, nil
}
