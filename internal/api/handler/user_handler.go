package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskloop/todo-api/internal/api/metrics"
	"github.com/taskloop/todo-api/internal/core/domain"
	"github.com/taskloop/todo-api/internal/core/ports"
)

// UserHandler handles profile reads, updates, and avatar uploads.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// GetProfile handles GET /api/users/profile.
//
// @Summary      Get the caller's profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/users/profile [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	profile, err := h.service.GetProfile(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(profile))
}

// UpdateProfile handles PUT /api/users/update-profile.
//
// @Summary      Update name, username, and email
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Profile fields"
// @Success      200   {object}  profileResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/users/update-profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.service.UpdateProfile(c.Request().Context(), user.ID, ports.ProfileUpdate{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(updated))
}

// UploadAvatar handles POST /api/users/upload-profile. The image arrives as
// the multipart field "profilePic", matching what the browser client sends.
//
// @Summary      Upload a profile picture
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        profilePic  formData  file  true  "Image file (.jpg, .jpeg, .png)"
// @Success      200  {object}  uploadAvatarResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/users/upload-profile [post]
func (h *UserHandler) UploadAvatar(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("profilePic")
	if err != nil {
		metrics.AvatarUploadsTotal.WithLabelValues("rejected").Inc()
		return domain.ErrNoFileAttached
	}

	src, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	updated, err := h.service.UploadAvatar(c.Request().Context(), user.ID, fileHeader.Filename, src)
	if err != nil {
		metrics.AvatarUploadsTotal.WithLabelValues("rejected").Inc()
		return err
	}

	metrics.AvatarUploadsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, uploadAvatarResponse{
		Message:    "profile picture updated",
		ProfilePic: updated.ProfilePic,
	})
}

func toProfileResponse(u *domain.User) profileResponse {
	return profileResponse{
		ID:         u.ID,
		Name:       u.Name,
		Username:   u.Username,
		Email:      u.Email,
		ProfilePic: u.ProfilePic,
	}
}
