package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/focusdo/internal/domain"
)

// ImportResult reports the outcome of a bulk import. One bad record never
// aborts the batch; it is counted in Errors and the loop continues.
type ImportResult struct {
	Imported int
	Skipped  int
	Errors   int
}

// FocusStats aggregates completed focus sessions.
type FocusStats struct {
	// TodaySec is the summed duration of sessions started today, in seconds.
	TodaySec int
	// Week holds per-day duration sums for one calendar week, Sunday-indexed.
	Week [7]int
	// TotalSessions counts all completed sessions regardless of week.
	TotalSessions int
}

// TodoPatch is a partial update; nil fields leave the record untouched.
type TodoPatch struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Timezone    *string
	Priority    *int
	Status      *domain.TodoStatus
	CategoryID  *string
	ParentID    *string
	IsCompleted *bool
	HasSubTasks *bool
}

type TodoRepo interface {
	GetAll(ctx context.Context) ([]domain.TodoView, error)
	GetByID(ctx context.Context, id string) (*domain.TodoView, error)
	GetByCategory(ctx context.Context, categoryID string) ([]domain.TodoView, error)
	GetForDate(ctx context.Context, day time.Time) ([]domain.TodoView, error)
	GetOverdue(ctx context.Context) ([]domain.TodoView, error)
	Create(ctx context.Context, t domain.Todo) (*domain.Todo, error)
	Update(ctx context.Context, id string, patch TodoPatch) (*domain.Todo, error)
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) (*domain.Todo, error)
	ReplaceAll(ctx context.Context, tasks []domain.Todo) error
	Import(ctx context.Context, records []domain.TodoView, strategy domain.ImportStrategy) (ImportResult, error)
}

type FocusRepo interface {
	CreateSession(ctx context.Context, durationSec int) (*domain.FocusSession, error)
	GetActiveSession(ctx context.Context) (*domain.FocusSession, error)
	CompleteSession(ctx context.Context, id string, completed bool) error
	Stats(ctx context.Context, weekOffset int) (FocusStats, error)
	AllSessions(ctx context.Context) ([]domain.FocusSession, error)
}

type CategoryRepo interface {
	GetAll(ctx context.Context) ([]domain.Category, error)
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	Create(ctx context.Context, c domain.Category) (*domain.Category, error)
	Update(ctx context.Context, c domain.Category) (*domain.Category, error)
	SoftDelete(ctx context.Context, id string) error
}
