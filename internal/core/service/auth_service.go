package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskloop/todo-api/internal/core/domain"
	"github.com/taskloop/todo-api/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	repo      ports.UserRepository
	throttle  ports.LoginThrottle
	mailer    ports.Mailer
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL, logger: logger}
}

// WithThrottle enables per-identifier login rate limiting.
func (s *AuthService) WithThrottle(t ports.LoginThrottle) *AuthService {
	s.throttle = t
	return s
}

// WithMailer enables the welcome email on registration.
func (s *AuthService) WithMailer(m ports.Mailer) *AuthService {
	s.mailer = m
	return s
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if input.Name == "" || input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         input.Name,
		Username:     input.Username,
		Email:        strings.ToLower(input.Email),
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	if s.mailer != nil {
		// Best effort: delivery problems must not fail the signup.
		go func(email, name string) {
			if err := s.mailer.SendWelcome(email, name); err != nil {
				s.logger.Warn().Err(err).Str("email", email).Msg("welcome email failed")
			}
		}(created.Email, created.Name)
	}

	s.logger.Info().Str("username", created.Username).Msg("user registered")
	return created, nil
}

// Login authenticates by username or email and issues a session token.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (string, *domain.User, error) {
	if identifier == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		ok, err := s.throttle.Allow(ctx, identifier)
		if err != nil {
			// A broken limiter must not lock everyone out.
			s.logger.Warn().Err(err).Msg("login throttle unavailable")
		} else if !ok {
			return "", nil, domain.ErrTooManyLoginAttempts
		}
	}

	user, err := s.repo.FindByIdentifier(ctx, identifier)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, identifier); err != nil {
			s.logger.Warn().Err(err).Msg("login throttle reset failed")
		}
	}

	return token, user, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"id":  user.ID,
		"exp": time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
