package domain

import "context"

// Level tells success notices from failures.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notice is a user-visible notification.
type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
	// Detail is the error text for failures. It is never shown in the UI.
	Detail string `json:"-"`
}

// Notifier surfaces success and failure to the user. It never affects
// control flow: callers proceed whether or not the notice was shown.
type Notifier interface {
	Success(ctx context.Context, msg string)
	Failure(ctx context.Context, msg string, err error)
}

// NoticeSink delivers a notice over one channel (flash cookie, terminal, email).
type NoticeSink interface {
	Deliver(ctx context.Context, n Notice) error
}

// User-visible messages.
const (
	MsgEventAdded   = "Event Added!"
	MsgEventDeleted = "Event Deleted!"
	MsgFailure      = "Something went wrong. Check the logs."
	MsgConfirm      = "Are you sure?"
)
