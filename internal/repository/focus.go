package repository

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/alexanderramin/focusdo/internal/domain"
	"github.com/alexanderramin/focusdo/internal/notify"
	"github.com/alexanderramin/focusdo/internal/storage"
)

// FocusRepository owns focus-session records and the single active-session
// slot. The slot stores only the session id; the session map stays the one
// source of truth, so the two keys can disagree only about liveness, which
// GetActiveSession self-heals.
type FocusRepository struct {
	mu       sync.Mutex
	store    *storage.Service
	notifier *notify.Service
	todos    TodoRepo
	logger   *slog.Logger
	now      func() time.Time
}

type FocusRepositoryOption func(*FocusRepository)

// WithFocusClock overrides the time source, for tests.
func WithFocusClock(now func() time.Time) FocusRepositoryOption {
	return func(r *FocusRepository) { r.now = now }
}

func NewFocusRepository(store *storage.Service, notifier *notify.Service, todos TodoRepo, logger *slog.Logger, opts ...FocusRepositoryOption) *FocusRepository {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	r := &FocusRepository{
		store:    store,
		notifier: notifier,
		todos:    todos,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *FocusRepository) loadSessions(ctx context.Context) (map[string]domain.FocusSession, error) {
	sessions := make(map[string]domain.FocusSession)
	if _, err := r.store.GetItem(ctx, storage.KeyFocusSessions, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// CreateSession starts a focus session of the given planned duration, then
// asks the notification service to suppress reminders due inside the
// session window across the current task list. Suppression failures are
// best-effort; the session is created either way.
func (r *FocusRepository) CreateSession(ctx context.Context, durationSec int) (*domain.FocusSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session := domain.NewFocusSession(r.now(), durationSec)

	sessions, err := r.loadSessions(ctx)
	if err != nil {
		return nil, err
	}
	sessions[session.ID] = session
	if err := r.store.SetItem(ctx, storage.KeyFocusSessions, sessions); err != nil {
		return nil, err
	}
	if err := r.store.SetItem(ctx, storage.KeyActiveFocusSession, session.ID); err != nil {
		return nil, err
	}

	views, err := r.todos.GetAll(ctx)
	if err != nil {
		r.logger.Warn("loading tasks for suppression failed", "error", err.Error())
		return &session, nil
	}
	tasks := make([]domain.Todo, len(views))
	for i, v := range views {
		tasks[i] = v.Todo
	}
	if err := r.notifier.SuppressNotifications(ctx, tasks, session.EndTime); err != nil {
		r.logger.Warn("suppressing reminders failed", "session", session.ID, "error", err.Error())
	}
	return &session, nil
}

// GetActiveSession resolves the active slot. An expired session is treated
// as an implicit completion: it is completed in place and nil is returned.
// This is the only place expired sessions are reconciled, so every reader
// of the active session must come through here.
func (r *FocusRepository) GetActiveSession(ctx context.Context) (*domain.FocusSession, error) {
	var id string
	ok, err := r.store.GetItem(ctx, storage.KeyActiveFocusSession, &id)
	if err != nil {
		return nil, err
	}
	if !ok || id == "" {
		return nil, nil
	}

	r.mu.Lock()
	sessions, err := r.loadSessions(ctx)
	r.mu.Unlock()
	if err != nil {
		return nil, err
	}

	session, found := sessions[id]
	if found && !session.Completed && !session.Expired(r.now()) {
		return &session, nil
	}

	// Stale slot: expired, already completed, or pointing at a session the
	// map never got. Completing it restores any suppression still pending.
	if err := r.CompleteSession(ctx, id, true); err != nil {
		return nil, err
	}
	return nil, nil
}

// CompleteSession finishes a session: the duration is rewritten to the
// actual elapsed seconds capped at the plan, the active slot is cleared
// unconditionally, and notification restoration always runs — a stale slot
// can correspond to a suppression the caller still expects undone. Missing
// or already-completed ids leave the map untouched.
func (r *FocusRepository) CompleteSession(ctx context.Context, id string, completed bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessions, err := r.loadSessions(ctx)
	if err != nil {
		return err
	}
	if session, ok := sessions[id]; ok && !session.Completed {
		elapsed := int(r.now().Sub(session.StartTime).Seconds())
		if elapsed < 0 {
			elapsed = 0
		}
		if elapsed < session.DurationSec {
			session.DurationSec = elapsed
		}
		session.Completed = completed
		sessions[id] = session
		if err := r.store.SetItem(ctx, storage.KeyFocusSessions, sessions); err != nil {
			return err
		}
	}

	if err := r.store.RemoveItem(ctx, storage.KeyActiveFocusSession); err != nil {
		return err
	}

	if err := r.notifier.RestoreNotifications(ctx); err != nil {
		r.logger.Warn("restoring reminders failed", "session", id, "error", err.Error())
	}
	return nil
}

// Stats aggregates completed sessions: today's total seconds, a
// Sunday-indexed per-day breakdown for the calendar week weekOffset weeks
// from now, and the all-time completed session count.
func (r *FocusRepository) Stats(ctx context.Context, weekOffset int) (FocusStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var stats FocusStats

	sessions, err := r.loadSessions(ctx)
	if err != nil {
		return stats, err
	}

	now := r.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	weekStart := dayStart.AddDate(0, 0, -int(dayStart.Weekday())+7*weekOffset)
	weekEnd := weekStart.AddDate(0, 0, 7)

	for _, s := range sessions {
		if !s.Completed {
			continue
		}
		stats.TotalSessions++

		start := s.StartTime.In(now.Location())
		if !start.Before(dayStart) && !start.After(dayEnd) {
			stats.TodaySec += s.DurationSec
		}
		if !start.Before(weekStart) && !start.After(weekEnd) {
			stats.Week[int(start.Weekday())] += s.DurationSec
		}
	}
	return stats, nil
}

// AllSessions returns every session, any completion state, newest first.
func (r *FocusRepository) AllSessions(ctx context.Context) ([]domain.FocusSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessions, err := r.loadSessions(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.FocusSession, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.After(out[j].StartTime)
	})
	return out, nil
}
