package notify

import (
	"context"
	"fmt"
	"io"
	"sync"

	"eventeditor/internal/domain"
)

// Inbox collects the notices raised while serving one request.
type Inbox struct {
	mu      sync.Mutex
	notices []domain.Notice
}

func (in *Inbox) add(n domain.Notice) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.notices = append(in.notices, n)
}

// Drain returns the collected notices and empties the inbox.
func (in *Inbox) Drain() []domain.Notice {
	in.mu.Lock()
	defer in.mu.Unlock()
	out := in.notices
	in.notices = nil
	return out
}

type inboxKey struct{}

// WithInbox returns a context carrying a fresh inbox.
func WithInbox(ctx context.Context) (context.Context, *Inbox) {
	in := &Inbox{}
	return context.WithValue(ctx, inboxKey{}, in), in
}

// InboxFromContext returns the request's inbox, if any.
func InboxFromContext(ctx context.Context) (*Inbox, bool) {
	in, ok := ctx.Value(inboxKey{}).(*Inbox)
	return in, ok
}

// InboxSink delivers to the inbox found in the context. The web layer
// turns the inbox into a flash message on the next page.
type InboxSink struct{}

// Deliver implements domain.NoticeSink. Without an inbox it drops the notice.
func (InboxSink) Deliver(ctx context.Context, n domain.Notice) error {
	if in, ok := InboxFromContext(ctx); ok {
		in.add(n)
	}
	return nil
}

// WriterSink prints notices for terminal use; failures go to Err.
type WriterSink struct {
	Out io.Writer
	Err io.Writer
}

// Deliver implements domain.NoticeSink.
func (s WriterSink) Deliver(_ context.Context, n domain.Notice) error {
	w := s.Out
	if n.Level == domain.LevelError && s.Err != nil {
		w = s.Err
	}
	_, err := fmt.Fprintln(w, n.Message)
	return err
}

// MailSink emails every notice to a fixed recipient.
type MailSink struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	to       string
}

// NewMailSink returns a sink sending the "notification" template to to.
func NewMailSink(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, to string) *MailSink {
	return &MailSink{mailer: mailer, renderer: renderer, to: to}
}

// Deliver implements domain.NoticeSink.
func (s *MailSink) Deliver(ctx context.Context, n domain.Notice) error {
	subject, html, text, err := s.renderer.Render("notification", domain.NotificationEmailData{
		Level:   string(n.Level),
		Message: n.Message,
		Detail:  n.Detail,
	})
	if err != nil {
		return fmt.Errorf("failed to render notification template: %w", err)
	}
	if err := s.mailer.Send(ctx, s.to, subject, html, text); err != nil {
		return fmt.Errorf("failed to send notification email: %w", err)
	}
	return nil
}
