package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskloop/todo-api/internal/api/metrics"
	"github.com/taskloop/todo-api/internal/core/domain"
	"github.com/taskloop/todo-api/internal/core/ports"
)

// TaskHandler handles HTTP requests for task operations. Every route runs
// behind middleware.Auth; the owner id is always taken from the context.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// List handles GET /tasks.
//
// @Summary      List the caller's tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   taskResponse
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	tasks, err := h.service.List(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}

	metrics.TaskOperationsTotal.WithLabelValues("list").Inc()
	return c.JSON(http.StatusOK, toTaskListResponse(tasks))
}

// Create handles POST /tasks.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task text"
// @Success      201   {object}  taskResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.service.Create(c.Request().Context(), user.ID, req.Text)
	if err != nil {
		return err
	}

	metrics.TaskOperationsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, toTaskResponse(task))
}

// Update handles PUT/PATCH /tasks/:id.
//
// @Summary      Update a task's text or completion flag
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Task id"
// @Param        body  body      updateTaskRequest  true  "Fields to change"
// @Success      200   {object}  taskResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	task, err := h.service.Update(c.Request().Context(), user.ID, c.Param("id"), ports.TaskUpdate{
		Text:      req.Text,
		Completed: req.Completed,
	})
	if err != nil {
		return err
	}

	metrics.TaskOperationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, toTaskResponse(task))
}

// Delete handles DELETE /tasks/:id.
//
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Task id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), user.ID, c.Param("id")); err != nil {
		return err
	}

	metrics.TaskOperationsTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "task deleted"})
}

func toTaskResponse(t *domain.Task) taskResponse {
	return taskResponse{
		ID:        t.ID,
		Text:      t.Text,
		Completed: t.Completed,
		CreatedAt: t.CreatedAt.UTC(),
		UpdatedAt: t.UpdatedAt.UTC(),
	}
}

func toTaskListResponse(tasks []*domain.Task) []taskResponse {
	out := make([]taskResponse, len(tasks))
	for i, t := range tasks {
		out[i] = toTaskResponse(t)
	}
	return out
}
