package domain

type TodoStatus string

const (
	TodoPending    TodoStatus = "pending"
	TodoInProgress TodoStatus = "in_progress"
	TodoCompleted  TodoStatus = "completed"
	TodoArchived   TodoStatus = "archived"
)

// ValidTodoStatuses is the canonical set of accepted status strings.
var ValidTodoStatuses = map[string]bool{
	"pending": true, "in_progress": true, "completed": true, "archived": true,
}

// StatusForCompletion derives a status from the completion flag, used when a
// caller supplies IsCompleted without an explicit status.
func StatusForCompletion(isCompleted bool) TodoStatus {
	if isCompleted {
		return TodoCompleted
	}
	return TodoPending
}

type ImportStrategy string

const (
	// ImportMerge keeps existing records and skips imported ids that collide.
	ImportMerge ImportStrategy = "merge"
	// ImportReplace clears the stored map before importing.
	ImportReplace ImportStrategy = "replace"
)

type SyncStatus string

const (
	// SyncLocal marks a record that has never left this device. Reserved for
	// a future sync layer; the coordination engine never reads it.
	SyncLocal SyncStatus = "local"
)
