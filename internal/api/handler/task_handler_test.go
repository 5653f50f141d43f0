package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskloop/todo-api/internal/api/middleware"
	"github.com/taskloop/todo-api/internal/core/domain"
	"github.com/taskloop/todo-api/internal/core/ports"
)

type stubTaskService struct {
	listFn   func(ctx context.Context, ownerID string) ([]*domain.Task, error)
	createFn func(ctx context.Context, ownerID, text string) (*domain.Task, error)
	updateFn func(ctx context.Context, ownerID, taskID string, update ports.TaskUpdate) (*domain.Task, error)
	deleteFn func(ctx context.Context, ownerID, taskID string) error
}

func (s *stubTaskService) List(ctx context.Context, ownerID string) ([]*domain.Task, error) {
	return s.listFn(ctx, ownerID)
}

func (s *stubTaskService) Create(ctx context.Context, ownerID, text string) (*domain.Task, error) {
	return s.createFn(ctx, ownerID, text)
}

func (s *stubTaskService) Update(ctx context.Context, ownerID, taskID string, update ports.TaskUpdate) (*domain.Task, error) {
	return s.updateFn(ctx, ownerID, taskID, update)
}

func (s *stubTaskService) Delete(ctx context.Context, ownerID, taskID string) error {
	return s.deleteFn(ctx, ownerID, taskID)
}

// authedContext builds an echo context carrying the identity the Auth
// middleware would have injected.
func authedContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder, userID string) echo.Context {
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxUserIDKey, userID)
	c.Set(middleware.CtxUserKey, &domain.User{ID: userID, Username: "ann1"})
	return c
}

func TestTaskHandler_List_ScopedToCaller(t *testing.T) {
	e := newTestEcho()
	stub := &stubTaskService{
		listFn: func(ctx context.Context, ownerID string) ([]*domain.Task, error) {
			if ownerID != "u1" {
				t.Fatalf("expected owner u1, got %s", ownerID)
			}
			return []*domain.Task{{ID: "t1", OwnerID: "u1", Text: "buy milk"}}, nil
		},
	}
	handler := NewTaskHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "u1")

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0]["text"] != "buy milk" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestTaskHandler_List_MissingIdentity(t *testing.T) {
	e := newTestEcho()
	handler := NewTaskHandler(&stubTaskService{
		listFn: func(ctx context.Context, ownerID string) ([]*domain.Task, error) {
			t.Fatalf("service must not be reached without identity")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.List(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestTaskHandler_Create(t *testing.T) {
	e := newTestEcho()
	stub := &stubTaskService{
		createFn: func(ctx context.Context, ownerID, text string) (*domain.Task, error) {
			return &domain.Task{ID: "t1", OwnerID: ownerID, Text: text}, nil
		},
	}
	handler := NewTaskHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(`{"text":"buy milk"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "u1")

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestTaskHandler_Create_MissingText(t *testing.T) {
	e := newTestEcho()
	handler := NewTaskHandler(&stubTaskService{
		createFn: func(ctx context.Context, ownerID, text string) (*domain.Task, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "u1")

	err := handler.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestTaskHandler_Create_WhitespaceText(t *testing.T) {
	e := newTestEcho()
	handler := NewTaskHandler(&stubTaskService{
		createFn: func(ctx context.Context, ownerID, text string) (*domain.Task, error) {
			return nil, domain.ErrEmptyTaskText
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(`{"text":"   "}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "u1")

	if err := handler.Create(c); !errors.Is(err, domain.ErrEmptyTaskText) {
		t.Fatalf("expected ErrEmptyTaskText to propagate, got %v", err)
	}
}

func TestTaskHandler_Update(t *testing.T) {
	e := newTestEcho()
	stub := &stubTaskService{
		updateFn: func(ctx context.Context, ownerID, taskID string, update ports.TaskUpdate) (*domain.Task, error) {
			if ownerID != "u1" || taskID != "t1" {
				t.Fatalf("unexpected args: %s %s", ownerID, taskID)
			}
			if update.Completed == nil || !*update.Completed || update.Text != nil {
				t.Fatalf("unexpected update: %+v", update)
			}
			return &domain.Task{ID: taskID, OwnerID: ownerID, Text: "buy milk", Completed: true}, nil
		},
	}
	handler := NewTaskHandler(stub)

	req := httptest.NewRequest(http.MethodPut, "/tasks/t1", strings.NewReader(`{"completed":true}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "u1")
	c.SetParamNames("id")
	c.SetParamValues("t1")

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["completed"] != true {
		t.Fatalf("expected completed=true, got %+v", resp)
	}
}

func TestTaskHandler_Update_NotOwned(t *testing.T) {
	e := newTestEcho()
	handler := NewTaskHandler(&stubTaskService{
		updateFn: func(ctx context.Context, ownerID, taskID string, update ports.TaskUpdate) (*domain.Task, error) {
			return nil, domain.ErrTaskNotFound
		},
	})

	req := httptest.NewRequest(http.MethodPut, "/tasks/t9", strings.NewReader(`{"completed":true}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "u1")
	c.SetParamNames("id")
	c.SetParamValues("t9")

	if err := handler.Update(c); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound to propagate, got %v", err)
	}
}

func TestTaskHandler_Delete(t *testing.T) {
	e := newTestEcho()
	deleted := false
	handler := NewTaskHandler(&stubTaskService{
		deleteFn: func(ctx context.Context, ownerID, taskID string) error {
			deleted = true
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodDelete, "/tasks/t1", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "u1")
	c.SetParamNames("id")
	c.SetParamValues("t1")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !deleted {
		t.Fatalf("service delete not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
