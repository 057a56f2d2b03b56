package domain

import "context"

// Mailer sends one email. Either body may be empty.
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// NotificationEmailData holds data for the notification email.
type NotificationEmailData struct {
	Level   string
	Message string
	Detail  string
}
