package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/focusdo/internal/domain"
	"github.com/alexanderramin/focusdo/internal/repository"
	"github.com/stretchr/testify/assert"
)

func TestFormatTodoList_Plain(t *testing.T) {
	now := time.Date(2025, 6, 4, 10, 0, 0, 0, time.UTC)
	views := []domain.TodoView{
		{
			Todo:      domain.Todo{Title: "Pay rent", Priority: 9, DueDate: now.Add(-time.Hour)},
			IsOverdue: true,
		},
		{
			Todo:     domain.Todo{Title: "Call mom", Priority: 3, DueDate: now.Add(48 * time.Hour)},
			Category: &domain.Category{Name: "Personal"},
		},
	}

	out := FormatTodoList(views, now, true)
	assert.Contains(t, out, "[ ] Pay rent  p9")
	assert.Contains(t, out, "(overdue)")
	assert.Contains(t, out, "#Personal")
}

func TestFormatTodoList_Empty(t *testing.T) {
	out := FormatTodoList(nil, time.Now(), true)
	assert.Equal(t, "No tasks.\n", out)
}

func TestFormatFocusStats_Plain(t *testing.T) {
	stats := repository.FocusStats{TodaySec: 3660, TotalSessions: 2}
	stats.Week[int(time.Wednesday)] = 3660

	out := FormatFocusStats(stats, true)
	assert.Contains(t, out, "today:    1h01m")
	assert.Contains(t, out, "sessions: 2 completed")
	assert.Contains(t, out, "Wed 1h01m")
}

func TestFormatActiveSession(t *testing.T) {
	now := time.Date(2025, 6, 4, 10, 0, 0, 0, time.UTC)
	s := &domain.FocusSession{EndTime: now.Add(25 * time.Minute)}

	assert.Contains(t, FormatActiveSession(s, now, true), "25m0s remaining")
	assert.Equal(t, "No active focus session.\n", FormatActiveSession(nil, now, true))
}
