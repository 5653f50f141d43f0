package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskloop/todo-api/internal/api/metrics"
	"github.com/taskloop/todo-api/internal/core/domain"
	"github.com/taskloop/todo-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Signup details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	_, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch err {
		case domain.ErrUserExists:
			metrics.RegistrationsTotal.WithLabelValues("conflict").Inc()
			return c.JSON(http.StatusConflict, errorResponse{Error: "username or email already taken"})
		case domain.ErrInvalidCredentials:
			metrics.RegistrationsTotal.WithLabelValues("error").Inc()
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "missing required fields"})
		default:
			metrics.RegistrationsTotal.WithLabelValues("error").Inc()
			return err
		}
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, registerResponse{Message: "user created successfully"})
}

// Login authenticates a user and returns a session token.
//
// @Summary      Login with username or email
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Identifier, req.Password)
	if err != nil {
		switch err {
		case domain.ErrInvalidCredentials:
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
		case domain.ErrTooManyLoginAttempts:
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
			return c.JSON(http.StatusTooManyRequests, errorResponse{Error: "too many login attempts"})
		default:
			metrics.LoginsTotal.WithLabelValues("error").Inc()
			return err
		}
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{
		Token:      token,
		Name:       user.Name,
		Username:   user.Username,
		Email:      user.Email,
		ProfilePic: user.ProfilePic,
	})
}
