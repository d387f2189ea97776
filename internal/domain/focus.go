package domain

import (
	"fmt"
	"time"
)

// FocusSession is a time-boxed period during which due-soon reminders are
// silenced. Sessions are retained forever for statistics.
type FocusSession struct {
	ID        string    `json:"id"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	// DurationSec holds the planned duration until completion, then the
	// actual elapsed seconds capped at the plan.
	DurationSec int       `json:"duration"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewFocusSession builds a session starting at now with the given planned
// duration. The id is derived from the start timestamp.
func NewFocusSession(now time.Time, durationSec int) FocusSession {
	return FocusSession{
		ID:          FocusSessionID(now),
		StartTime:   now,
		EndTime:     now.Add(time.Duration(durationSec) * time.Second),
		DurationSec: durationSec,
		CreatedAt:   now,
	}
}

// FocusSessionID derives the canonical session id for a start time.
func FocusSessionID(start time.Time) string {
	return fmt.Sprintf("fs-%d", start.UnixMilli())
}

// Expired reports whether the session's window has ended.
func (s FocusSession) Expired(now time.Time) bool {
	return !s.EndTime.After(now)
}

// SuppressedNotification records a reminder cancelled for the duration of a
// focus session, so it can be restored afterward.
type SuppressedNotification struct {
	ID     string    `json:"id"`
	TodoID string    `json:"todoId"`
	Title  string    `json:"title"`
	Body   string    `json:"body"`
	FireAt time.Time `json:"timestamp"`
}
