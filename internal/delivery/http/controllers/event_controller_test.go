package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventeditor/internal/delivery/http/helpers"
	"eventeditor/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	events       []*domain.Event
	listErr      error
	createErr    error
	deleteErr    error
	lastDraft    domain.Draft
	lastDeleteID int64
}

func (f *fakeEventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.events, nil
}

func (f *fakeEventService) CreateEvent(ctx context.Context, draft domain.Draft) (*domain.Event, error) {
	f.lastDraft = draft
	if f.createErr != nil {
		return nil, f.createErr
	}
	e := domain.NewEvent(7, draft)
	return &e, nil
}

func (f *fakeEventService) DeleteEvent(ctx context.Context, id int64) error {
	f.lastDeleteID = id
	return f.deleteErr
}

func TestEventController_ListEvents(t *testing.T) {
	tests := []struct {
		name       string
		fake       *fakeEventService
		wantStatus int
		wantBody   string
	}{
		{
			name:       "plain json array",
			fake:       &fakeEventService{events: []*domain.Event{{ID: 1, Title: "A", EventDate: "2024-01-01"}}},
			wantStatus: http.StatusOK,
			wantBody:   `[{"id":1,"event_type":"","event_date":"2024-01-01","title":"A","speaker":"","host":"","published":false}]`,
		},
		{
			name:       "empty list",
			fake:       &fakeEventService{events: []*domain.Event{}},
			wantStatus: http.StatusOK,
			wantBody:   `[]`,
		},
		{
			name:       "service error",
			fake:       &fakeEventService{listErr: errors.New("db error")},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewEventController(testLogger, tt.fake)
			req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
			rr := httptest.NewRecorder()

			ctrl.ListEvents(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rr.Body.String())
				return
			}
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			require.NotNil(t, envelope.Error)
			assert.Equal(t, helpers.ErrCodeInternalError, envelope.Error.Code)
		})
	}
}

func TestEventController_CreateEvent(t *testing.T) {
	valid := `{"event_type":"Symposium","event_date":"2024-01-01","title":"T","speaker":"S","host":"H","published":true}`

	tests := []struct {
		name           string
		body           string
		fakeErr        error
		wantStatus     int
		wantBodySubstr string
		wantField      string
	}{
		{
			name:       "success",
			body:       valid,
			wantStatus: http.StatusCreated,
		},
		{
			name:           "bad request invalid json",
			body:           `{invalid`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "invalid",
		},
		{
			name:       "missing title",
			body:       `{"event_type":"Symposium","event_date":"2024-01-01","speaker":"S","host":"H"}`,
			wantStatus: http.StatusBadRequest,
			wantField:  domain.FieldTitle,
		},
		{
			name:       "invalid date",
			body:       `{"event_type":"Symposium","event_date":"tomorrow","title":"T","speaker":"S","host":"H"}`,
			wantStatus: http.StatusBadRequest,
			wantField:  domain.FieldEventDate,
		},
		{
			name:           "unknown field rejected",
			body:           `{"id":5,"event_type":"Symposium","event_date":"2024-01-01","title":"T","speaker":"S","host":"H"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "unknown field",
		},
		{
			name:           "service error",
			body:           valid,
			fakeErr:        errors.New("db error"),
			wantStatus:     http.StatusInternalServerError,
			wantBodySubstr: "db error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeEventService{createErr: tt.fakeErr}
			ctrl := NewEventController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPost, "/api/events", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			ctrl.CreateEvent(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			if tt.wantStatus == http.StatusCreated {
				var event domain.Event
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&event))
				assert.Equal(t, int64(7), event.ID)
				assert.Equal(t, "T", event.Title)
				assert.True(t, event.Published)
				assert.Equal(t, "Symposium", fake.lastDraft.EventType)
				return
			}
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope), "response must be valid JSON envelope")
			require.NotNil(t, envelope.Error, "error response must have error set")
			if tt.wantBodySubstr != "" {
				assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr, "error message")
			}
			if tt.wantField != "" {
				assert.Contains(t, envelope.Error.Fields, tt.wantField)
			}
		})
	}
}

func TestEventController_DeleteEvent(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		fakeErr    error
		wantStatus int
		wantCode   string
	}{
		{name: "success", id: "3", wantStatus: http.StatusNoContent},
		{name: "not found", id: "3", fakeErr: domain.ErrNotFound, wantStatus: http.StatusNotFound, wantCode: helpers.ErrCodeNotFound},
		{name: "invalid id", id: "abc", wantStatus: http.StatusBadRequest, wantCode: helpers.ErrCodeBadRequest},
		{name: "zero id", id: "0", wantStatus: http.StatusBadRequest, wantCode: helpers.ErrCodeBadRequest},
		{name: "service error", id: "3", fakeErr: errors.New("db error"), wantStatus: http.StatusInternalServerError, wantCode: helpers.ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeEventService{deleteErr: tt.fakeErr}
			ctrl := NewEventController(testLogger, fake)
			req := httptest.NewRequest(http.MethodDelete, "/api/events/"+tt.id, nil)
			req.SetPathValue("eventID", tt.id)
			rr := httptest.NewRecorder()

			ctrl.DeleteEvent(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			if tt.wantCode == "" {
				assert.Empty(t, rr.Body.String())
				assert.Equal(t, int64(3), fake.lastDeleteID)
				return
			}
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tt.wantCode, envelope.Error.Code)
		})
	}
}
