// Package notify reports the outcome of editor actions to the user.
package notify

import (
	"context"
	"log/slog"

	"eventeditor/internal/domain"
)

// Reporter fans notices out to its sinks. It implements domain.Notifier.
type Reporter struct {
	logger *slog.Logger
	sinks  []domain.NoticeSink
}

// NewReporter returns a Reporter delivering to sinks in order.
func NewReporter(logger *slog.Logger, sinks ...domain.NoticeSink) *Reporter {
	return &Reporter{logger: logger, sinks: sinks}
}

// Success emits a success notice.
func (r *Reporter) Success(ctx context.Context, msg string) {
	r.deliver(ctx, domain.Notice{Level: domain.LevelSuccess, Message: msg})
}

// Failure logs err and emits an error notice.
func (r *Reporter) Failure(ctx context.Context, msg string, err error) {
	n := domain.Notice{Level: domain.LevelError, Message: msg}
	if err != nil {
		n.Detail = err.Error()
	}
	r.logger.ErrorContext(ctx, msg, "err", err)
	r.deliver(ctx, n)
}

func (r *Reporter) deliver(ctx context.Context, n domain.Notice) {
	for _, s := range r.sinks {
		if err := s.Deliver(ctx, n); err != nil {
			r.logger.WarnContext(ctx, "notice not delivered", "message", n.Message, "err", err)
		}
	}
}
