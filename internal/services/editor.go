package services

import (
	"context"
	"log/slog"

	"eventeditor/internal/domain"
	"eventeditor/internal/router"
	"eventeditor/internal/store"
)

// Editor keeps the local collection in step with the events API. The
// collection changes only after the API confirmed the request.
type Editor struct {
	api      domain.EventsAPI
	events   *store.Collection
	notifier domain.Notifier
	logger   *slog.Logger
}

// NewEditor returns an Editor over an empty, loading collection.
func NewEditor(api domain.EventsAPI, notifier domain.Notifier, logger *slog.Logger) *Editor {
	return &Editor{
		api:      api,
		events:   store.NewCollection(),
		notifier: notifier,
		logger:   logger,
	}
}

// Events is the collection views render from.
func (e *Editor) Events() *store.Collection {
	return e.events
}

// Load performs the initial fetch. Failures are reported and leave the
// collection empty; loading ends either way.
func (e *Editor) Load(ctx context.Context) error {
	if err := e.events.Load(ctx, e.api); err != nil {
		e.notifier.Failure(ctx, domain.MsgFailure, err)
		return err
	}
	e.logger.InfoContext(ctx, "events loaded", "count", e.events.Len())
	return nil
}

// AddEvent creates the event remotely, appends the saved record and
// returns its detail location.
//
// If ctx is done once the API has answered, the record is still appended
// but no notice is raised and the context error is returned instead of a
// location.
func (e *Editor) AddEvent(ctx context.Context, draft domain.Draft) (router.Route, error) {
	saved, err := e.api.Create(ctx, draft)
	if err != nil {
		e.notifier.Failure(ctx, domain.MsgFailure, err)
		return router.Route{}, err
	}
	e.events.Add(saved)
	e.logger.InfoContext(ctx, "event created", "id", saved.ID)

	if err := ctx.Err(); err != nil {
		return router.Route{}, err
	}
	e.notifier.Success(ctx, domain.MsgEventAdded)
	return router.ToDetail(saved.ID), nil
}

// DeleteEvent asks for confirmation, deletes remotely and drops the id
// from the collection. It reports whether the deletion happened; a
// declined confirmation issues no request and returns the detail location.
func (e *Editor) DeleteEvent(ctx context.Context, id int64, c domain.Confirmer) (router.Route, bool, error) {
	if !c.Confirm(ctx, domain.MsgConfirm) {
		return router.ToDetail(id), false, nil
	}
	if err := e.api.Remove(ctx, id); err != nil {
		e.notifier.Failure(ctx, domain.MsgFailure, err)
		return router.Route{}, false, err
	}
	e.events.Delete(id)
	e.logger.InfoContext(ctx, "event deleted", "id", id)

	if err := ctx.Err(); err != nil {
		return router.Route{}, true, err
	}
	e.notifier.Success(ctx, domain.MsgEventDeleted)
	return router.ToList(), true, nil
}
