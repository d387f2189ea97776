package repository

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/alexanderramin/focusdo/internal/domain"
	"github.com/alexanderramin/focusdo/internal/notify"
	"github.com/alexanderramin/focusdo/internal/storage"
	"github.com/google/uuid"
)

// TodoRepository owns the persisted task map and drives the notification
// service on every lifecycle transition. The whole map is loaded and
// rewritten on each mutation; a per-repository mutex serializes the
// load-mutate-save window so interleaved writers cannot lose updates.
type TodoRepository struct {
	mu         sync.Mutex
	store      *storage.Service
	notifier   *notify.Service
	categories CategoryRepo
	logger     *slog.Logger
	now        func() time.Time
}

type TodoRepositoryOption func(*TodoRepository)

// WithTodoClock overrides the time source, for tests.
func WithTodoClock(now func() time.Time) TodoRepositoryOption {
	return func(r *TodoRepository) { r.now = now }
}

func NewTodoRepository(store *storage.Service, notifier *notify.Service, categories CategoryRepo, logger *slog.Logger, opts ...TodoRepositoryOption) *TodoRepository {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	r := &TodoRepository{
		store:      store,
		notifier:   notifier,
		categories: categories,
		logger:     logger,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *TodoRepository) loadMap(ctx context.Context) (map[string]domain.Todo, error) {
	todos := make(map[string]domain.Todo)
	if _, err := r.store.GetItem(ctx, storage.KeyTodos, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

func (r *TodoRepository) saveMap(ctx context.Context, todos map[string]domain.Todo) error {
	return r.store.SetItem(ctx, storage.KeyTodos, todos)
}

// GetAll returns every live task joined with its category, flagged for
// overdue state, and sorted by descending priority, then ascending due date,
// then ascending creation time. All other read paths derive from this view.
func (r *TodoRepository) GetAll(ctx context.Context) ([]domain.TodoView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getAllLocked(ctx)
}

func (r *TodoRepository) getAllLocked(ctx context.Context) ([]domain.TodoView, error) {
	todos, err := r.loadMap(ctx)
	if err != nil {
		return nil, err
	}

	categories, err := r.categories.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading categories for join: %w", err)
	}
	byID := make(map[string]domain.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	now := r.now()
	views := make([]domain.TodoView, 0, len(todos))
	for _, t := range todos {
		if t.Deleted() {
			continue
		}
		view := domain.TodoView{
			Todo:      t,
			IsOverdue: !t.IsCompleted && t.DueDate.Before(now),
		}
		if c, ok := byID[t.CategoryID]; ok {
			category := c
			view.Category = &category
		}
		views = append(views, view)
	}

	sort.SliceStable(views, func(i, j int) bool {
		a, b := views[i], views[j]
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		if !a.DueDate.Equal(b.DueDate) {
			return a.DueDate.Before(b.DueDate)
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
	return views, nil
}

// GetByID returns the joined view for one task, or nil when the id is
// missing or soft-deleted.
func (r *TodoRepository) GetByID(ctx context.Context, id string) (*domain.TodoView, error) {
	views, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, v := range views {
		if v.ID == id {
			return &v, nil
		}
	}
	return nil, nil
}

func (r *TodoRepository) GetByCategory(ctx context.Context, categoryID string) ([]domain.TodoView, error) {
	views, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	var out []domain.TodoView
	for _, v := range views {
		if v.CategoryID == categoryID {
			out = append(out, v)
		}
	}
	return out, nil
}

// GetForDate returns tasks due within the local calendar day containing day,
// midnight to midnight inclusive.
func (r *TodoRepository) GetForDate(ctx context.Context, day time.Time) ([]domain.TodoView, error) {
	views, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var out []domain.TodoView
	for _, v := range views {
		due := v.DueDate.In(day.Location())
		if !due.Before(start) && !due.After(end) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *TodoRepository) GetOverdue(ctx context.Context) ([]domain.TodoView, error) {
	views, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	var out []domain.TodoView
	for _, v := range views {
		if v.IsOverdue {
			out = append(out, v)
		}
	}
	return out, nil
}

// Create persists a new task, applying defaults for omitted fields, and
// schedules a reminder when the due date is in the future and the task is
// not completed. A scheduling failure never fails the create; the task is
// persisted with an empty notification handle.
func (r *TodoRepository) Create(ctx context.Context, t domain.Todo) (*domain.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.Title == "" {
		t.Title = domain.DefaultTodoTitle
	}
	if t.Priority == 0 {
		t.Priority = domain.DefaultTodoPriority
	}
	if t.Timezone == "" {
		t.Timezone = time.Local.String()
	}
	if t.Status == "" {
		t.Status = domain.StatusForCompletion(t.IsCompleted)
	}
	if t.IsCompleted && t.CompletedAt == nil {
		t.CompletedAt = &now
	}
	if t.SyncStatus == "" {
		t.SyncStatus = domain.SyncLocal
	}
	if t.Version == 0 {
		t.Version = 1
	}
	t.CreatedAt = now
	t.UpdatedAt = now
	t.DeletedAt = nil

	t.NotificationID, _ = r.notifier.ScheduleForTodo(ctx, t)

	todos, err := r.loadMap(ctx)
	if err != nil {
		return nil, err
	}
	todos[t.ID] = t
	if err := r.saveMap(ctx, todos); err != nil {
		return nil, err
	}
	return &t, nil
}

// Update merges patch onto the stored record. When the patch touches the due
// date or completion, the existing reminder is cancelled and a fresh one is
// scheduled against the merged record; otherwise the handle is preserved.
// Returns nil when the id does not exist.
func (r *TodoRepository) Update(ctx context.Context, id string, patch TodoPatch) (*domain.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	todos, err := r.loadMap(ctx)
	if err != nil {
		return nil, err
	}
	t, ok := todos[id]
	if !ok {
		return nil, nil
	}

	now := r.now()
	reschedule := false

	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.DueDate != nil {
		t.DueDate = *patch.DueDate
		reschedule = true
	}
	if patch.Timezone != nil {
		t.Timezone = *patch.Timezone
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.CategoryID != nil {
		t.CategoryID = *patch.CategoryID
	}
	if patch.ParentID != nil {
		t.ParentID = *patch.ParentID
	}
	if patch.HasSubTasks != nil {
		t.HasSubTasks = *patch.HasSubTasks
	}
	if patch.IsCompleted != nil {
		t.IsCompleted = *patch.IsCompleted
		reschedule = true
		if t.IsCompleted {
			t.CompletedAt = &now
		} else {
			t.CompletedAt = nil
		}
		if patch.Status == nil {
			t.Status = domain.StatusForCompletion(t.IsCompleted)
		}
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	t.UpdatedAt = now

	if reschedule {
		t.NotificationID, _ = r.notifier.RescheduleTodo(ctx, t)
	}

	todos[id] = t
	if err := r.saveMap(ctx, todos); err != nil {
		return nil, err
	}
	return &t, nil
}

// SoftDelete cancels the task's reminder and marks the record deleted.
// No-op when the id is missing.
func (r *TodoRepository) SoftDelete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	todos, err := r.loadMap(ctx)
	if err != nil {
		return err
	}
	t, ok := todos[id]
	if !ok {
		return nil
	}

	if err := r.notifier.CancelForTodo(ctx, t); err != nil {
		r.logger.Warn("cancelling reminder on delete failed", "todo", id, "error", err.Error())
	}
	t.NotificationID = ""

	now := r.now()
	t.DeletedAt = &now
	t.UpdatedAt = now
	todos[id] = t
	return r.saveMap(ctx, todos)
}

// Restore clears the soft-delete marker and, when the due date is still in
// the future, re-schedules the reminder. Returns nil when the id is missing.
func (r *TodoRepository) Restore(ctx context.Context, id string) (*domain.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	todos, err := r.loadMap(ctx)
	if err != nil {
		return nil, err
	}
	t, ok := todos[id]
	if !ok {
		return nil, nil
	}

	t.DeletedAt = nil
	t.UpdatedAt = r.now()
	t.NotificationID, _ = r.notifier.ScheduleForTodo(ctx, t)

	todos[id] = t
	if err := r.saveMap(ctx, todos); err != nil {
		return nil, err
	}
	return &t, nil
}

// ReplaceAll overwrites the stored map wholesale. Used by migration tooling;
// bypasses notification scheduling.
func (r *TodoRepository) ReplaceAll(ctx context.Context, tasks []domain.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	todos := make(map[string]domain.Todo, len(tasks))
	for _, t := range tasks {
		todos[t.ID] = t
	}
	return r.saveMap(ctx, todos)
}

// Import loads exported records into the store. Strategy merge skips ids
// already present; replace clears the map first. Derived view fields are
// stripped before storage, and each active future-due record gets a
// reminder scheduled. Bad records are counted and skipped, never fatal.
func (r *TodoRepository) Import(ctx context.Context, records []domain.TodoView, strategy domain.ImportStrategy) (ImportResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result ImportResult

	todos, err := r.loadMap(ctx)
	if err != nil {
		return result, err
	}
	if strategy == domain.ImportReplace {
		todos = make(map[string]domain.Todo, len(records))
	}

	for _, rec := range records {
		t := rec.Todo // derived fields live on the view and are dropped here
		if t.ID == "" {
			r.logger.Warn("skipping import record without id", "title", t.Title)
			result.Errors++
			continue
		}
		if t.Status != "" && !domain.ValidTodoStatuses[string(t.Status)] {
			r.logger.Warn("skipping import record with unknown status", "todo", t.ID, "status", string(t.Status))
			result.Errors++
			continue
		}
		if strategy == domain.ImportMerge {
			if _, exists := todos[t.ID]; exists {
				result.Skipped++
				continue
			}
		}

		t.NotificationID, _ = r.notifier.ScheduleForTodo(ctx, t)
		todos[t.ID] = t
		result.Imported++
	}

	if err := r.saveMap(ctx, todos); err != nil {
		return result, err
	}
	return result, nil
}
