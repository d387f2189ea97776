package storage

// Key is the closed namespace of logical storage keys. Every repository
// persists under one of these, which is what prevents collisions across
// modules sharing one adapter.
type Key string

const (
	KeyAuthToken               Key = "auth_token"
	KeyUserProfile             Key = "user_profile"
	KeyTodos                   Key = "todos"
	KeyCategories              Key = "categories"
	KeyFocusSessions           Key = "focus_sessions"
	KeyActiveFocusSession      Key = "active_focus_session"
	KeySuppressedNotifications Key = "suppressed_notifications"
)
