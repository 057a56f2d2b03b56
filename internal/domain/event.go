package domain

import (
	"context"
	"strings"
	"time"
)

// DateLayout is the calendar date format used for event_date.
const DateLayout = "2006-01-02"

// Event represents a scheduled event as returned by the events API.
// swagger:model Event
type Event struct {
	ID        int64  `json:"id,omitempty"`
	EventType string `json:"event_type"`
	EventDate string `json:"event_date"`
	Title     string `json:"title"`
	Speaker   string `json:"speaker"`
	Host      string `json:"host"`
	Published bool   `json:"published"`
}

// Draft is an unsaved event held by the creation form. It has no id.
// swagger:model Draft
type Draft struct {
	EventType string `json:"event_type"`
	EventDate string `json:"event_date"`
	Title     string `json:"title"`
	Speaker   string `json:"speaker"`
	Host      string `json:"host"`
	Published bool   `json:"published"`
}

// Draft field keys, matching the JSON names.
const (
	FieldEventType = "event_type"
	FieldEventDate = "event_date"
	FieldTitle     = "title"
	FieldSpeaker   = "speaker"
	FieldHost      = "host"
	FieldPublished = "published"
)

// DraftFields lists the draft keys in display order.
var DraftFields = []string{FieldEventType, FieldEventDate, FieldTitle, FieldSpeaker, FieldHost, FieldPublished}

// NewEvent returns the Event for a draft once the server has assigned id.
func NewEvent(id int64, d Draft) Event {
	return Event{
		ID:        id,
		EventType: d.EventType,
		EventDate: d.EventDate,
		Title:     d.Title,
		Speaker:   d.Speaker,
		Host:      d.Host,
		Published: d.Published,
	}
}

// Validation messages for draft fields.
const (
	MsgEventTypeRequired = "You must enter an event type"
	MsgEventDateInvalid  = "You must enter a valid date"
	MsgTitleRequired     = "You must enter a title"
	MsgSpeakerRequired   = "You must enter at least one speaker"
	MsgHostRequired      = "You must enter at least one host"
)

// ValidateDraft checks the draft and returns the failures keyed by field.
// A nil result means the draft can be submitted.
func ValidateDraft(d Draft) ValidationError {
	errs := ValidationError{}
	if !IsValidDate(d.EventDate) {
		errs[FieldEventDate] = MsgEventDateInvalid
	}
	if strings.TrimSpace(d.EventType) == "" {
		errs[FieldEventType] = MsgEventTypeRequired
	}
	if strings.TrimSpace(d.Title) == "" {
		errs[FieldTitle] = MsgTitleRequired
	}
	if strings.TrimSpace(d.Speaker) == "" {
		errs[FieldSpeaker] = MsgSpeakerRequired
	}
	if strings.TrimSpace(d.Host) == "" {
		errs[FieldHost] = MsgHostRequired
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// IsValidDate reports whether s is a calendar date in DateLayout form.
func IsValidDate(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// FormatDate renders t the way event_date is stored.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// EventsAPI is the remote /api/events resource family as seen by the editor.
type EventsAPI interface {
	FetchAll(ctx context.Context) ([]Event, error)
	Create(ctx context.Context, draft Draft) (Event, error)
	Remove(ctx context.Context, id int64) error
}

// EventRepository defines the interface for event storage behind the API server.
type EventRepository interface {
	List(ctx context.Context) ([]*Event, error)
	Create(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id int64) error
}

// EventService defines the business logic of the API server.
type EventService interface {
	ListEvents(ctx context.Context) ([]*Event, error)
	CreateEvent(ctx context.Context, draft Draft) (*Event, error)
	DeleteEvent(ctx context.Context, id int64) error
}

// Confirmer asks the user to confirm a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}
