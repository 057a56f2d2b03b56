package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"eventeditor/internal/delivery/http/helpers"
	"eventeditor/internal/domain"
)

// CreateEventRequest is the request body for POST /api/events: the draft fields.
type CreateEventRequest struct {
	EventType string `json:"event_type"`
	EventDate string `json:"event_date"`
	Title     string `json:"title"`
	Speaker   string `json:"speaker"`
	Host      string `json:"host"`
	Published bool   `json:"published"`
}

func (c CreateEventRequest) draft() domain.Draft {
	return domain.Draft(c)
}

// Validate implements Validator with the same rules as the editor form.
func (c CreateEventRequest) Validate() map[string]string {
	return domain.ValidateDraft(c.draft())
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// ListEvents godoc
// @Summary List events
// @Description Returns every event as a plain JSON array, oldest first.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Event
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.ListEvents(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSON(w, http.StatusOK, events)
}

// CreateEvent godoc
// @Summary Create an event
// @Description Creates an event from a draft. The id is server-generated.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Draft fields"
// @Success 201 {object} domain.Event
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.CreateEvent(r.Context(), req.draft())
	if err != nil {
		var verrs domain.ValidationError
		if errors.As(err, &verrs) {
			helpers.WriteValidationError(w, "validation failed", verrs)
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, event)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Deletes the event. Responds 204 with no body.
// @Tags events
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Success 204
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("eventID"), 10, 64)
	if err != nil || id <= 0 {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}
	if err := c.Service.DeleteEvent(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
