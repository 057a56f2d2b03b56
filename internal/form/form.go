// Package form holds the event creation form: the draft, its single
// merge function and the date widget binding.
package form

import (
	"context"
	"net/url"
	"strconv"
	"sync"
	"time"

	"eventeditor/internal/domain"
)

// SaveFunc persists a valid draft. Submit waits for it to return.
type SaveFunc func(ctx context.Context, draft domain.Draft) error

// DatePicker is a date widget bound to the form's date input.
type DatePicker interface {
	Bind(onSelect func(time.Time))
	Destroy()
}

// Form is the creation form state. The zero value is not usable; call New.
type Form struct {
	mu       sync.Mutex
	draft    domain.Draft
	dateText string
	errs     domain.ValidationError
}

// New returns a form with an empty draft.
func New() *Form {
	return &Form{}
}

// Update sets exactly one draft field and leaves the rest untouched.
// Text fields take a string; published takes a bool or a checkbox string.
// Unknown keys are ignored.
func (f *Form) Update(key string, value any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.set(key, value)
}

func (f *Form) set(key string, value any) {
	switch key {
	case domain.FieldPublished:
		f.draft.Published = toBool(value)
		return
	}
	s, _ := value.(string)
	switch key {
	case domain.FieldEventType:
		f.draft.EventType = s
	case domain.FieldEventDate:
		f.draft.EventDate = s
	case domain.FieldTitle:
		f.draft.Title = s
	case domain.FieldSpeaker:
		f.draft.Speaker = s
	case domain.FieldHost:
		f.draft.Host = s
	}
}

func toBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		if b == "on" {
			return true
		}
		parsed, _ := strconv.ParseBool(b)
		return parsed
	}
	return false
}

// ApplyValues feeds posted form values through Update, one field at a time.
// An unchecked checkbox is absent from the values, so published is always set.
func (f *Form) ApplyValues(vals url.Values) {
	for _, key := range domain.DraftFields {
		if key == domain.FieldPublished {
			f.Update(key, vals.Get(key))
			continue
		}
		if _, ok := vals[key]; !ok {
			continue
		}
		v := vals.Get(key)
		if key == domain.FieldEventDate {
			f.setDateText(v)
		}
		f.Update(key, v)
	}
}

// Mount binds p to the date input. Selecting a date updates the visible
// text and the draft through Update. The returned release destroys the
// widget; it is safe to call more than once.
func (f *Form) Mount(p DatePicker) (release func()) {
	p.Bind(func(t time.Time) {
		formatted := domain.FormatDate(t)
		f.setDateText(formatted)
		f.Update(domain.FieldEventDate, formatted)
	})
	var once sync.Once
	return func() { once.Do(p.Destroy) }
}

func (f *Form) setDateText(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dateText = s
}

// Submit validates the draft. Failures are kept for display and returned
// as domain.ValidationError without calling save.
func (f *Form) Submit(ctx context.Context, save SaveFunc) error {
	d := f.Draft()
	if errs := domain.ValidateDraft(d); errs != nil {
		f.mu.Lock()
		f.errs = errs
		f.mu.Unlock()
		return errs
	}
	f.mu.Lock()
	f.errs = nil
	f.mu.Unlock()
	return save(ctx, d)
}

// Draft returns a copy of the current draft.
func (f *Form) Draft() domain.Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// DateText is the visible content of the date input.
func (f *Form) DateText() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dateText
}

// Errors returns the failures of the last Submit, nil if it passed.
func (f *Form) Errors() domain.ValidationError {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errs
}
