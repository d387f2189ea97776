package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/focusdo/internal/domain"
	"github.com/alexanderramin/focusdo/internal/storage"
)

// todoDueTitle is the fixed title used for every task reminder.
const todoDueTitle = "Todo Due"

// Service wraps a Port behind task-aware policy: it decides which tasks are
// allowed to hold a reminder, and owns the focus-suppression buffer.
//
// Port failures are best-effort: they are logged and surfaced to the caller,
// but callers on persistence-confirmed paths are expected to continue.
type Service struct {
	port   Port
	store  *storage.Service
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(port Port, store *storage.Service, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Service{port: port, store: store, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RequestPermission asks the platform for notification permission.
func (s *Service) RequestPermission(ctx context.Context) (bool, error) {
	return s.port.RequestPermission(ctx)
}

// ScheduleForTodo schedules a reminder for the task's due date. Refuses
// without touching the port when the task is completed, soft-deleted, or not
// due in the future; refusal returns an empty handle and no error.
func (s *Service) ScheduleForTodo(ctx context.Context, t domain.Todo) (string, error) {
	if !t.NeedsReminder(s.now()) {
		return "", nil
	}
	handle, err := s.port.Schedule(ctx, ScheduleRequest{
		ID:     t.ID,
		Title:  todoDueTitle,
		Body:   t.Title,
		FireAt: t.DueDate,
	})
	if err != nil {
		s.logger.Warn("scheduling reminder failed", "todo", t.ID, "error", err.Error())
		return "", fmt.Errorf("scheduling reminder for %s: %w", t.ID, err)
	}
	return handle, nil
}

// RescheduleTodo cancels the task's existing reminder, if any, then applies
// the normal scheduling policy.
func (s *Service) RescheduleTodo(ctx context.Context, t domain.Todo) (string, error) {
	if err := s.CancelForTodo(ctx, t); err != nil {
		s.logger.Warn("cancelling stale reminder failed", "todo", t.ID, "error", err.Error())
	}
	return s.ScheduleForTodo(ctx, t)
}

// CancelForTodo cancels the task's reminder. No-op when the task holds no
// handle.
func (s *Service) CancelForTodo(ctx context.Context, t domain.Todo) error {
	if t.NotificationID == "" {
		return nil
	}
	if err := s.port.Cancel(ctx, t.NotificationID); err != nil {
		return fmt.Errorf("cancelling reminder for %s: %w", t.ID, err)
	}
	return nil
}

// ResyncAll is the full-consistency pass run after a cold start: it cancels
// every scheduled reminder unconditionally, then re-schedules one for every
// active task due in the future. Per-task failures are logged and skipped.
func (s *Service) ResyncAll(ctx context.Context, tasks []domain.Todo) error {
	if err := s.port.CancelAll(ctx); err != nil {
		return fmt.Errorf("cancelling all reminders: %w", err)
	}
	for _, t := range tasks {
		if _, err := s.ScheduleForTodo(ctx, t); err != nil {
			continue
		}
	}
	return nil
}

// SuppressNotifications silences reminders due within [now, focusEnd]:
// the subset of tasks that are currently scheduled, active, and due inside
// the window is persisted to the suppression buffer, then cancelled. Tasks
// due after the window stay scheduled — suppression is windowed, not total.
//
// The buffer write fully replaces any previous buffer, so a repeated call
// cannot leak entries or double-cancel.
func (s *Service) SuppressNotifications(ctx context.Context, tasks []domain.Todo, focusEnd time.Time) error {
	ids, err := s.port.ScheduledIDs(ctx)
	if err != nil {
		return fmt.Errorf("listing scheduled reminders: %w", err)
	}
	scheduled := make(map[string]bool, len(ids))
	for _, id := range ids {
		scheduled[id] = true
	}

	now := s.now()
	var buffer []domain.SuppressedNotification
	for _, t := range tasks {
		if !scheduled[t.ID] || t.IsCompleted || t.Deleted() {
			continue
		}
		if t.DueDate.Before(now) || t.DueDate.After(focusEnd) {
			continue
		}
		buffer = append(buffer, domain.SuppressedNotification{
			ID:     t.ID,
			TodoID: t.ID,
			Title:  todoDueTitle,
			Body:   t.Title,
			FireAt: t.DueDate,
		})
	}

	// Persist before cancelling so a write failure cannot strand silently
	// cancelled reminders.
	if err := s.store.SetItem(ctx, storage.KeySuppressedNotifications, buffer); err != nil {
		return err
	}

	for _, n := range buffer {
		if err := s.port.Cancel(ctx, n.ID); err != nil {
			s.logger.Warn("suppressing reminder failed", "todo", n.TodoID, "error", err.Error())
		}
	}
	return nil
}

// RestoreNotifications re-schedules every buffered reminder whose original
// fire time is still in the future, then clears the buffer unconditionally.
// Lapsed entries are dropped, never scheduled in the past. Safe no-op when
// the buffer is empty or absent.
func (s *Service) RestoreNotifications(ctx context.Context) error {
	var buffer []domain.SuppressedNotification
	if _, err := s.store.GetItem(ctx, storage.KeySuppressedNotifications, &buffer); err != nil {
		return err
	}

	now := s.now()
	for _, n := range buffer {
		if !n.FireAt.After(now) {
			continue
		}
		req := ScheduleRequest{ID: n.ID, Title: n.Title, Body: n.Body, FireAt: n.FireAt}
		if _, err := s.port.Schedule(ctx, req); err != nil {
			s.logger.Warn("restoring reminder failed", "todo", n.TodoID, "error", err.Error())
		}
	}

	return s.store.RemoveItem(ctx, storage.KeySuppressedNotifications)
}

// Suppressed reports whether the suppression buffer currently holds entries.
func (s *Service) Suppressed(ctx context.Context) (bool, error) {
	var buffer []domain.SuppressedNotification
	if _, err := s.store.GetItem(ctx, storage.KeySuppressedNotifications, &buffer); err != nil {
		return false, err
	}
	return len(buffer) > 0, nil
}
