package notify

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/focusdo/internal/domain"
	"github.com/alexanderramin/focusdo/internal/kv"
	"github.com/alexanderramin/focusdo/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *MemoryPort, *storage.Service) {
	t.Helper()
	port := NewMemoryPort()
	store := storage.NewService(kv.NewMemoryStore(), nil)
	svc := NewService(port, store, nil, WithClock(func() time.Time { return testNow }))
	return svc, port, store
}

func dueIn(d time.Duration) time.Time { return testNow.Add(d) }

func activeTodo(id string, due time.Time) domain.Todo {
	return domain.Todo{ID: id, Title: "Task " + id, DueDate: due}
}

func TestScheduleForTodo(t *testing.T) {
	svc, port, _ := newTestService(t)
	ctx := context.Background()

	handle, err := svc.ScheduleForTodo(ctx, activeTodo("t1", dueIn(time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, "t1", handle)

	req, ok := port.Get("t1")
	require.True(t, ok)
	assert.Equal(t, "Todo Due", req.Title)
	assert.Equal(t, "Task t1", req.Body)
	assert.Equal(t, dueIn(time.Hour), req.FireAt)
}

func TestScheduleForTodo_Refusals(t *testing.T) {
	svc, port, _ := newTestService(t)
	ctx := context.Background()

	completed := activeTodo("c", dueIn(time.Hour))
	completed.IsCompleted = true

	deleted := activeTodo("d", dueIn(time.Hour))
	deleted.DeletedAt = &testNow

	past := activeTodo("p", dueIn(-time.Minute))

	for _, todo := range []domain.Todo{completed, deleted, past} {
		handle, err := svc.ScheduleForTodo(ctx, todo)
		require.NoError(t, err)
		assert.Empty(t, handle)
	}

	ids, err := port.ScheduledIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids, "refusals must not touch the port")
}

func TestRescheduleTodo_ReplacesHandle(t *testing.T) {
	svc, port, _ := newTestService(t)
	ctx := context.Background()

	todo := activeTodo("t1", dueIn(time.Hour))
	handle, err := svc.ScheduleForTodo(ctx, todo)
	require.NoError(t, err)
	todo.NotificationID = handle

	todo.DueDate = dueIn(2 * time.Hour)
	newHandle, err := svc.RescheduleTodo(ctx, todo)
	require.NoError(t, err)
	assert.NotEmpty(t, newHandle)

	req, ok := port.Get("t1")
	require.True(t, ok)
	assert.Equal(t, dueIn(2*time.Hour), req.FireAt)
}

func TestCancelForTodo(t *testing.T) {
	svc, port, _ := newTestService(t)
	ctx := context.Background()

	// No handle: no-op even with a failing port.
	port.CancelErr = assert.AnError
	require.NoError(t, svc.CancelForTodo(ctx, activeTodo("x", dueIn(time.Hour))))
	port.CancelErr = nil

	todo := activeTodo("t1", dueIn(time.Hour))
	todo.NotificationID, _ = svc.ScheduleForTodo(ctx, todo)
	require.NoError(t, svc.CancelForTodo(ctx, todo))

	_, ok := port.Get("t1")
	assert.False(t, ok)
}

func TestResyncAll(t *testing.T) {
	svc, port, _ := newTestService(t)
	ctx := context.Background()

	// A stale reminder for a task that no longer exists.
	_, err := port.Schedule(ctx, ScheduleRequest{ID: "ghost", FireAt: dueIn(time.Hour)})
	require.NoError(t, err)

	done := activeTodo("done", dueIn(time.Hour))
	done.IsCompleted = true
	tasks := []domain.Todo{
		activeTodo("a", dueIn(time.Hour)),
		activeTodo("b", dueIn(-time.Hour)),
		done,
	}
	require.NoError(t, svc.ResyncAll(ctx, tasks))

	ids, err := port.ScheduledIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids)
}

func TestSuppressRestore_Windowed(t *testing.T) {
	svc, port, _ := newTestService(t)
	ctx := context.Background()

	inWindow := activeTodo("in", dueIn(30*time.Minute))
	afterWindow := activeTodo("after", dueIn(2*time.Hour))
	tasks := []domain.Todo{inWindow, afterWindow}
	for i := range tasks {
		tasks[i].NotificationID, _ = svc.ScheduleForTodo(ctx, tasks[i])
	}

	require.NoError(t, svc.SuppressNotifications(ctx, tasks, dueIn(time.Hour)))

	ids, err := port.ScheduledIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"after"}, ids, "tasks due after the window stay scheduled")

	suppressed, err := svc.Suppressed(ctx)
	require.NoError(t, err)
	assert.True(t, suppressed)

	require.NoError(t, svc.RestoreNotifications(ctx))

	ids, err = port.ScheduledIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"after", "in"}, ids)

	req, ok := port.Get("in")
	require.True(t, ok)
	assert.Equal(t, inWindow.DueDate, req.FireAt, "restored at the original fire time")

	suppressed, err = svc.Suppressed(ctx)
	require.NoError(t, err)
	assert.False(t, suppressed, "buffer cleared after restoration")
}

func TestSuppress_SkipsUnscheduledAndInactive(t *testing.T) {
	svc, port, store := newTestService(t)
	ctx := context.Background()

	scheduled := activeTodo("s", dueIn(10*time.Minute))
	scheduled.NotificationID, _ = svc.ScheduleForTodo(ctx, scheduled)

	unscheduled := activeTodo("u", dueIn(10*time.Minute))

	completed := activeTodo("c", dueIn(10*time.Minute))
	completed.IsCompleted = true
	// Simulate a reminder the port still holds for a since-completed task.
	_, err := port.Schedule(ctx, ScheduleRequest{ID: "c", FireAt: completed.DueDate})
	require.NoError(t, err)

	tasks := []domain.Todo{scheduled, unscheduled, completed}
	require.NoError(t, svc.SuppressNotifications(ctx, tasks, dueIn(time.Hour)))

	var buffer []domain.SuppressedNotification
	_, err = store.GetItem(ctx, storage.KeySuppressedNotifications, &buffer)
	require.NoError(t, err)
	require.Len(t, buffer, 1)
	assert.Equal(t, "s", buffer[0].TodoID)
}

func TestSuppress_SecondCallReplacesBuffer(t *testing.T) {
	svc, _, store := newTestService(t)
	ctx := context.Background()

	first := activeTodo("first", dueIn(10*time.Minute))
	first.NotificationID, _ = svc.ScheduleForTodo(ctx, first)
	require.NoError(t, svc.SuppressNotifications(ctx, []domain.Todo{first}, dueIn(time.Hour)))

	second := activeTodo("second", dueIn(20*time.Minute))
	second.NotificationID, _ = svc.ScheduleForTodo(ctx, second)
	require.NoError(t, svc.SuppressNotifications(ctx, []domain.Todo{second}, dueIn(time.Hour)))

	var buffer []domain.SuppressedNotification
	_, err := store.GetItem(ctx, storage.KeySuppressedNotifications, &buffer)
	require.NoError(t, err)
	require.Len(t, buffer, 1, "second suppression fully replaces the first buffer")
	assert.Equal(t, "second", buffer[0].TodoID)
}

func TestRestore_EmptyBufferIsNoop(t *testing.T) {
	svc, port, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.RestoreNotifications(ctx))
	ids, err := port.ScheduledIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestRestore_DropsLapsedEntries(t *testing.T) {
	svc, port, store := newTestService(t)
	ctx := context.Background()

	buffer := []domain.SuppressedNotification{
		{ID: "lapsed", TodoID: "lapsed", FireAt: dueIn(-time.Minute)},
		{ID: "live", TodoID: "live", FireAt: dueIn(time.Minute)},
	}
	require.NoError(t, store.SetItem(ctx, storage.KeySuppressedNotifications, buffer))

	require.NoError(t, svc.RestoreNotifications(ctx))

	ids, err := port.ScheduledIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"live"}, ids, "lapsed entries are dropped, not scheduled in the past")

	suppressed, err := svc.Suppressed(ctx)
	require.NoError(t, err)
	assert.False(t, suppressed)
}
