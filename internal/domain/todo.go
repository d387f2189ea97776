package domain

import "time"

const (
	DefaultTodoTitle    = "Untitled"
	DefaultTodoPriority = 3
)

type Todo struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     time.Time  `json:"dueDate"`
	Timezone    string     `json:"timezone"`
	Priority    int        `json:"priority"`
	Status      TodoStatus `json:"status"`
	CategoryID  string     `json:"categoryId,omitempty"`
	ParentID    string     `json:"parentId,omitempty"`
	IsCompleted bool       `json:"isCompleted"`
	HasSubTasks bool       `json:"hasSubTasks"`

	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`

	// NotificationID is the handle returned by the notification port for
	// this task's reminder. Set iff the port currently holds one.
	NotificationID string `json:"notificationId,omitempty"`

	// Reserved for a future sync layer, unused by the core logic.
	SyncStatus SyncStatus `json:"syncStatus,omitempty"`
	Version    int        `json:"version,omitempty"`
}

// Deleted reports whether the record carries a soft-delete marker.
func (t Todo) Deleted() bool {
	return t.DeletedAt != nil
}

// NeedsReminder reports whether the task should hold a scheduled reminder:
// live, not completed, and due after now.
func (t Todo) NeedsReminder(now time.Time) bool {
	return !t.IsCompleted && !t.Deleted() && t.DueDate.After(now)
}

// TodoView is a Todo joined with its category and flagged for overdue state.
// Views are derived on read and never persisted.
type TodoView struct {
	Todo
	Category  *Category `json:"category,omitempty"`
	IsOverdue bool      `json:"isOverdue"`
}
