package email

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"eventeditor/internal/domain"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

type fakeSES struct {
	input *ses.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(_ context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestTemplateRenderer_Notification(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)

	subject, html, text, err := r.Render("notification", domain.NotificationEmailData{
		Level:   "error",
		Message: "Something went wrong. Check the logs.",
		Detail:  "fetch events: Internal Server Error <500>",
	})
	require.NoError(t, err)
	assert.Equal(t, "[eventeditor] Something went wrong. Check the logs.", subject)
	assert.Contains(t, html, "&lt;500&gt;")
	assert.Contains(t, text, "Detail: fetch events: Internal Server Error <500>")
}

func TestTemplateRenderer_UnknownTemplate(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)

	_, _, _, err = r.Render("missing", nil)
	assert.Error(t, err)
}

func TestSESMailer_Send(t *testing.T) {
	fake := &fakeSES{}
	m := newSESMailer(fake, "editor@example.com", "Event Editor", testLogger())

	require.NoError(t, m.Send(context.Background(), "ops@example.com", "Event Added!", "<p>hi</p>", ""))
	require.NotNil(t, fake.input)
	assert.Equal(t, "Event Editor <editor@example.com>", aws.ToString(fake.input.Source))
	assert.Equal(t, []string{"ops@example.com"}, fake.input.Destination.ToAddresses)
	assert.Equal(t, "Event Added!", aws.ToString(fake.input.Message.Subject.Data))
	assert.NotNil(t, fake.input.Message.Body.Html)
	assert.Nil(t, fake.input.Message.Body.Text)

	fake.err = errors.New("throttled")
	assert.Error(t, m.Send(context.Background(), "ops@example.com", "s", "", "t"))
}

func TestNewMailer_Providers(t *testing.T) {
	_, ok := NewMailer(MailerConfig{Provider: "noop"}, testLogger()).(*noopMailer)
	assert.True(t, ok)
	_, ok = NewMailer(MailerConfig{Provider: "carrier-pigeon"}, testLogger()).(*noopMailer)
	assert.True(t, ok)
	_, ok = NewMailer(MailerConfig{Provider: "ses", SES: SESConfig{Region: "us-east-1"}}, testLogger()).(*sesMailer)
	assert.True(t, ok)
}
