package constants

// Context and session keys
const (
	ContextKeyUserID  = "user_id"
	SessionKeyUserID  = "user_id"
	SessionCookieName = "task_session"
)

// Pagination bounds
const (
	MinPage         = 1
	DefaultPageSize = 50
	MaxPageSize     = 100
)

// Validation limits
const (
	MinPasswordLength    = 8
	MaxDescriptionLength = 500
)
