// Package store holds the editor's authoritative in-memory list of events.
package store

import (
	"context"
	"sync"

	"eventeditor/internal/domain"
)

// Fetcher loads the full event list.
type Fetcher interface {
	FetchAll(ctx context.Context) ([]domain.Event, error)
}

// Collection is the single source of truth for rendered events. It is
// mutated only through its methods, and only after the server confirmed
// the change.
type Collection struct {
	mu      sync.RWMutex
	events  []domain.Event
	loading bool
	err     error
}

// NewCollection returns an empty collection in the loading state.
func NewCollection() *Collection {
	return &Collection{events: []domain.Event{}, loading: true}
}

// Load fetches the list and replaces the state on success. On failure the
// previous events are kept and Err reports the failure. Loading is false
// once Load returns, whatever the outcome.
func (c *Collection) Load(ctx context.Context, f Fetcher) error {
	events, err := f.FetchAll(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.err = err
		return err
	}
	c.err = nil
	c.events = append(make([]domain.Event, 0, len(events)), events...)
	return nil
}

// Add appends e. No dedup, no re-sort.
func (c *Collection) Add(e domain.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

// Delete removes every event with the given id. Absent ids are a no-op.
func (c *Collection) Delete(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := make([]domain.Event, 0, len(c.events))
	for _, e := range c.events {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	c.events = kept
}

// Snapshot returns a copy of the events in collection order.
func (c *Collection) Snapshot() []domain.Event {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append(make([]domain.Event, 0, len(c.events)), c.events...)
}

// Find returns the first event with the given id.
func (c *Collection) Find(id int64) (domain.Event, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, e := range c.events {
		if e.ID == id {
			return e, true
		}
	}
	return domain.Event{}, false
}

// Len returns the number of events.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.events)
}

// Loading reports whether the initial fetch has not settled yet.
func (c *Collection) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// Err returns the error of the last Load, if it failed.
func (c *Collection) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}
