package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNeedsReminder(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	base := Todo{ID: "t1", DueDate: future}
	assert.True(t, base.NeedsReminder(now))

	completed := base
	completed.IsCompleted = true
	assert.False(t, completed.NeedsReminder(now))

	deleted := base
	deleted.DeletedAt = &now
	assert.False(t, deleted.NeedsReminder(now))

	overdue := base
	overdue.DueDate = past
	assert.False(t, overdue.NeedsReminder(now))

	dueNow := base
	dueNow.DueDate = now
	assert.False(t, dueNow.NeedsReminder(now), "due exactly now is not schedulable")
}

func TestStatusForCompletion(t *testing.T) {
	assert.Equal(t, TodoCompleted, StatusForCompletion(true))
	assert.Equal(t, TodoPending, StatusForCompletion(false))
}

func TestFocusSessionExpiry(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	s := NewFocusSession(start, 1500)

	assert.Equal(t, FocusSessionID(start), s.ID)
	assert.Equal(t, start.Add(25*time.Minute), s.EndTime)
	assert.False(t, s.Expired(start.Add(10*time.Minute)))
	assert.True(t, s.Expired(s.EndTime), "end instant counts as expired")
	assert.True(t, s.Expired(s.EndTime.Add(time.Second)))
}
