package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"eventeditor/internal/delivery/http/controllers"
	"eventeditor/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEventService struct {
	events []*domain.Event
}

func (s *stubEventService) ListEvents(context.Context) ([]*domain.Event, error) { return s.events, nil }

func (s *stubEventService) CreateEvent(_ context.Context, d domain.Draft) (*domain.Event, error) {
	e := domain.NewEvent(int64(len(s.events)+1), d)
	s.events = append(s.events, &e)
	return &e, nil
}

func (s *stubEventService) DeleteEvent(_ context.Context, id int64) error {
	for i, e := range s.events {
		if e.ID == id {
			s.events = append(s.events[:i], s.events[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func newTestRouter(protect func(http.Handler) http.Handler) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := &stubEventService{events: []*domain.Event{{ID: 1, Title: "First"}}}
	return NewAPIRouter(controllers.NewEventController(logger, svc), protect)
}

func TestNewAPIRouter(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{"list", http.MethodGet, "/api/events", "", http.StatusOK},
		{"create", http.MethodPost, "/api/events", `{"event_type":"Talk","event_date":"2024-05-01","title":"T","speaker":"S","host":"H"}`, http.StatusCreated},
		{"delete", http.MethodDelete, "/api/events/1", "", http.StatusNoContent},
		{"delete unknown", http.MethodDelete, "/api/events/99", "", http.StatusNotFound},
		{"method not allowed", http.MethodPut, "/api/events", "", http.StatusMethodNotAllowed},
		{"health", http.MethodGet, "/health", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(nil)
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestNewAPIRouter_Protect(t *testing.T) {
	deny := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
	}
	router := newTestRouter(deny)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/events", nil))
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}
