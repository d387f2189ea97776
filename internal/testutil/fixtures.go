package testutil

import (
	"time"

	"github.com/alexanderramin/focusdo/internal/domain"
	"github.com/google/uuid"
)

// Todo options
type TodoOption func(*domain.Todo)

func WithPriority(p int) TodoOption {
	return func(t *domain.Todo) {
		t.Priority = p
	}
}

func WithDueDate(d time.Time) TodoOption {
	return func(t *domain.Todo) {
		t.DueDate = d
	}
}

func WithCategory(id string) TodoOption {
	return func(t *domain.Todo) {
		t.CategoryID = id
	}
}

func WithCompleted() TodoOption {
	return func(t *domain.Todo) {
		t.IsCompleted = true
		t.Status = domain.TodoCompleted
		completedAt := t.CreatedAt
		t.CompletedAt = &completedAt
	}
}

func WithCreatedAt(at time.Time) TodoOption {
	return func(t *domain.Todo) {
		t.CreatedAt = at
		t.UpdatedAt = at
	}
}

func NewTestTodo(title string, opts ...TodoOption) domain.Todo {
	now := time.Now().UTC()
	todo := domain.Todo{
		ID:        uuid.New().String(),
		Title:     title,
		DueDate:   now.Add(24 * time.Hour),
		Timezone:  "UTC",
		Priority:  domain.DefaultTodoPriority,
		Status:    domain.TodoPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(&todo)
	}
	return todo
}

func NewTestCategory(name string) domain.Category {
	now := time.Now().UTC()
	return domain.Category{
		ID:        uuid.New().String(),
		Name:      name,
		Icon:      "folder",
		Color:     "#83a598",
		CreatedAt: now,
		UpdatedAt: now,
	}
}
