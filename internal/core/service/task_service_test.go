package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/taskloop/todo-api/internal/core/domain"
	"github.com/taskloop/todo-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub task repository
// ---------------------------------------------------------------------------

type stubTaskRepo struct {
	tasks  []*domain.Task // insertion order, mirrors storage order
	nextID int
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{}
}

func (r *stubTaskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	r.nextID++
	clone := *task
	clone.ID = fmt.Sprintf("task_%d", r.nextID)
	r.tasks = append(r.tasks, &clone)
	out := clone
	return &out, nil
}

func (r *stubTaskRepo) ListByOwner(_ context.Context, ownerID string) ([]*domain.Task, error) {
	out := make([]*domain.Task, 0)
	for _, task := range r.tasks {
		if task.OwnerID == ownerID {
			clone := *task
			out = append(out, &clone)
		}
	}
	return out, nil
}

// find enforces the owner filter, mirroring the real Mongo {_id, owner_id} query.
func (r *stubTaskRepo) find(ownerID, taskID string) (int, *domain.Task) {
	for i, task := range r.tasks {
		if task.ID == taskID && task.OwnerID == ownerID {
			return i, task
		}
	}
	return -1, nil
}

func (r *stubTaskRepo) Update(_ context.Context, ownerID, taskID string, update ports.TaskUpdate) (*domain.Task, error) {
	_, task := r.find(ownerID, taskID)
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}
	if update.Text != nil {
		task.Text = *update.Text
	}
	if update.Completed != nil {
		task.Completed = *update.Completed
	}
	task.UpdatedAt = time.Now().UTC()
	clone := *task
	return &clone, nil
}

func (r *stubTaskRepo) Delete(_ context.Context, ownerID, taskID string) error {
	i, task := r.find(ownerID, taskID)
	if task == nil {
		return domain.ErrTaskNotFound
	}
	r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
	return nil
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestTaskService_Create_EmptyText(t *testing.T) {
	repo := newStubTaskRepo()
	svc := NewTaskService(repo, discardLogger)

	for _, text := range []string{"", "   ", "\t\n"} {
		if _, err := svc.Create(context.Background(), "owner_a", text); err != domain.ErrEmptyTaskText {
			t.Fatalf("text %q: expected ErrEmptyTaskText, got %v", text, err)
		}
	}
	if len(repo.tasks) != 0 {
		t.Fatalf("no task should be persisted, have %d", len(repo.tasks))
	}
}

func TestTaskService_RoundTrip(t *testing.T) {
	repo := newStubTaskRepo()
	svc := NewTaskService(repo, discardLogger)
	ctx := context.Background()

	created, err := svc.Create(ctx, "owner_a", "buy milk")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Completed {
		t.Fatalf("new task must start uncompleted")
	}

	tasks, err := svc.List(ctx, "owner_a")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Text != "buy milk" || tasks[0].Completed {
		t.Fatalf("unexpected list: %+v", tasks)
	}

	done := true
	updated, err := svc.Update(ctx, "owner_a", created.ID, ports.TaskUpdate{Completed: &done})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if !updated.Completed {
		t.Fatalf("expected completed=true")
	}

	tasks, _ = svc.List(ctx, "owner_a")
	if len(tasks) != 1 || !tasks[0].Completed {
		t.Fatalf("list does not reflect update: %+v", tasks)
	}

	if err := svc.Delete(ctx, "owner_a", created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	tasks, _ = svc.List(ctx, "owner_a")
	if len(tasks) != 0 {
		t.Fatalf("expected empty list after delete, got %+v", tasks)
	}
}

func TestTaskService_OwnershipIsolation(t *testing.T) {
	repo := newStubTaskRepo()
	svc := NewTaskService(repo, discardLogger)
	ctx := context.Background()

	taskA, _ := svc.Create(ctx, "owner_a", "a's task")
	_, _ = svc.Create(ctx, "owner_b", "b's task")

	// B cannot see A's task.
	tasksB, _ := svc.List(ctx, "owner_b")
	if len(tasksB) != 1 || tasksB[0].Text != "b's task" {
		t.Fatalf("owner_b list leaked foreign tasks: %+v", tasksB)
	}

	// B cannot update or delete A's task, even with the correct id.
	done := true
	if _, err := svc.Update(ctx, "owner_b", taskA.ID, ports.TaskUpdate{Completed: &done}); err != domain.ErrTaskNotFound {
		t.Fatalf("expected ErrTaskNotFound for cross-owner update, got %v", err)
	}
	if err := svc.Delete(ctx, "owner_b", taskA.ID); err != domain.ErrTaskNotFound {
		t.Fatalf("expected ErrTaskNotFound for cross-owner delete, got %v", err)
	}

	// A's task is untouched.
	tasksA, _ := svc.List(ctx, "owner_a")
	if len(tasksA) != 1 || tasksA[0].Completed {
		t.Fatalf("owner_a task was modified: %+v", tasksA)
	}
}

func TestTaskService_Update_EmptyText(t *testing.T) {
	repo := newStubTaskRepo()
	svc := NewTaskService(repo, discardLogger)
	ctx := context.Background()

	created, _ := svc.Create(ctx, "owner_a", "original")
	empty := "  "
	if _, err := svc.Update(ctx, "owner_a", created.ID, ports.TaskUpdate{Text: &empty}); err != domain.ErrEmptyTaskText {
		t.Fatalf("expected ErrEmptyTaskText, got %v", err)
	}

	tasks, _ := svc.List(ctx, "owner_a")
	if tasks[0].Text != "original" {
		t.Fatalf("text must be unchanged, got %q", tasks[0].Text)
	}
}

func TestTaskService_Update_NotFound(t *testing.T) {
	repo := newStubTaskRepo()
	svc := NewTaskService(repo, discardLogger)

	done := true
	if _, err := svc.Update(context.Background(), "owner_a", "missing", ports.TaskUpdate{Completed: &done}); err != domain.ErrTaskNotFound {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskService_Scenario(t *testing.T) {
	// Register-like flow: one user creates "A" and "B", completes "A",
	// deletes "B"; final state is a single completed "A".
	repo := newStubTaskRepo()
	svc := NewTaskService(repo, discardLogger)
	ctx := context.Background()

	taskA, _ := svc.Create(ctx, "ann", "A")
	taskB, _ := svc.Create(ctx, "ann", "B")

	done := true
	if _, err := svc.Update(ctx, "ann", taskA.ID, ports.TaskUpdate{Completed: &done}); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if err := svc.Delete(ctx, "ann", taskB.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	tasks, _ := svc.List(ctx, "ann")
	if len(tasks) != 1 || tasks[0].Text != "A" || !tasks[0].Completed {
		t.Fatalf("unexpected final state: %+v", tasks)
	}
}
