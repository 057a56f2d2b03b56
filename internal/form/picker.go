package form

import (
	"fmt"
	"sync"
	"time"

	"eventeditor/internal/domain"
)

// monthLayout is the wire form of a month for navigation (2024-01).
const monthLayout = "2006-01"

// Day is one cell of the month grid.
type Day struct {
	Date     time.Time
	InMonth  bool
	Selected bool
	Today    bool
}

// Value is the date in event_date form.
func (d Day) Value() string { return domain.FormatDate(d.Date) }

// MonthPicker is a server-rendered calendar widget showing one month at a
// time. It must be bound before selections reach the form and does
// nothing after Destroy.
type MonthPicker struct {
	mu        sync.Mutex
	month     time.Time
	selected  time.Time
	firstDay  time.Weekday
	onSelect  func(time.Time)
	destroyed bool
	now       func() time.Time
}

// NewMonthPicker returns a picker showing the month of the current date.
// firstDay is the weekday shown in the first column.
func NewMonthPicker(firstDay time.Weekday) *MonthPicker {
	p := &MonthPicker{firstDay: firstDay, now: time.Now}
	p.month = firstOfMonth(p.now())
	return p
}

// Bind implements DatePicker.
func (p *MonthPicker) Bind(onSelect func(time.Time)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.destroyed {
		return
	}
	p.onSelect = onSelect
}

// Destroy implements DatePicker. The picker drops its callback.
func (p *MonthPicker) Destroy() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.destroyed = true
	p.onSelect = nil
}

// Destroyed reports whether Destroy was called.
func (p *MonthPicker) Destroyed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.destroyed
}

// Select picks t, shows its month and notifies the bound form.
// It reports whether a form received the selection.
func (p *MonthPicker) Select(t time.Time) bool {
	p.mu.Lock()
	if p.destroyed {
		p.mu.Unlock()
		return false
	}
	p.selected = t
	p.month = firstOfMonth(t)
	cb := p.onSelect
	p.mu.Unlock()

	if cb == nil {
		return false
	}
	cb(t)
	return true
}

// SelectValue parses an event_date string and selects it.
func (p *MonthPicker) SelectValue(s string) error {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	p.Select(t)
	return nil
}

// Preselect highlights an already entered date without notifying the form.
func (p *MonthPicker) Preselect(s string) {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.selected = t
	p.month = firstOfMonth(t)
}

// Show switches the visible month; value is in 2006-01 form.
func (p *MonthPicker) Show(value string) error {
	t, err := time.Parse(monthLayout, value)
	if err != nil {
		return fmt.Errorf("invalid month %q: %w", value, err)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.month = t
	return nil
}

// Month is the first day of the visible month.
func (p *MonthPicker) Month() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.month
}

// Title is the visible month, e.g. "January 2024".
func (p *MonthPicker) Title() string {
	return p.Month().Format("January 2006")
}

// PrevMonth and NextMonth are the navigation values for Show.
func (p *MonthPicker) PrevMonth() string { return p.Month().AddDate(0, -1, 0).Format(monthLayout) }

func (p *MonthPicker) NextMonth() string { return p.Month().AddDate(0, 1, 0).Format(monthLayout) }

// Weekdays returns the column headers starting at firstDay.
func (p *MonthPicker) Weekdays() []string {
	out := make([]string, 7)
	for i := range out {
		out[i] = time.Weekday((int(p.firstDay) + i) % 7).String()[:3]
	}
	return out
}

// Weeks returns the month grid, padded with days of the adjacent months
// so that every row has seven cells.
func (p *MonthPicker) Weeks() [][]Day {
	p.mu.Lock()
	month, selected, firstDay := p.month, p.selected, p.firstDay
	today := dateOnly(p.now())
	p.mu.Unlock()

	offset := (int(month.Weekday()) - int(firstDay) + 7) % 7
	start := month.AddDate(0, 0, -offset)
	end := month.AddDate(0, 1, 0)

	var weeks [][]Day
	for d := start; d.Before(end); {
		week := make([]Day, 7)
		for i := range week {
			week[i] = Day{
				Date:     d,
				InMonth:  d.Month() == month.Month(),
				Selected: !selected.IsZero() && d.Equal(dateOnly(selected)),
				Today:    d.Equal(today),
			}
			d = d.AddDate(0, 0, 1)
		}
		weeks = append(weeks, week)
	}
	return weeks
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
