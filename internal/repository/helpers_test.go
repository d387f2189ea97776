package repository

import (
	"testing"
	"time"

	"github.com/alexanderramin/focusdo/internal/notify"
	"github.com/alexanderramin/focusdo/internal/storage"
	"github.com/alexanderramin/focusdo/internal/testutil"
)

// baseTime is a Wednesday, so week-boundary tests have room on both sides.
var baseTime = time.Date(2025, 6, 4, 10, 0, 0, 0, time.UTC)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type testEnv struct {
	clock      *fakeClock
	store      *storage.Service
	port       *notify.MemoryPort
	notifier   *notify.Service
	categories *CategoryRepository
	todos      *TodoRepository
	focus      *FocusRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	clock := &fakeClock{t: baseTime}
	store := testutil.NewTestStorage(t)
	port := notify.NewMemoryPort()
	notifier := notify.NewService(port, store, nil, notify.WithClock(clock.Now))
	categories := NewCategoryRepository(store, nil, WithCategoryClock(clock.Now))
	todos := NewTodoRepository(store, notifier, categories, nil, WithTodoClock(clock.Now))
	focus := NewFocusRepository(store, notifier, todos, nil, WithFocusClock(clock.Now))
	return &testEnv{
		clock:      clock,
		store:      store,
		port:       port,
		notifier:   notifier,
		categories: categories,
		todos:      todos,
		focus:      focus,
	}
}
