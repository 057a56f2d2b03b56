package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capturingHandler records the last log record for assertions.
type capturingHandler struct {
	record slog.Record
}

func (h *capturingHandler) Enabled(_ context.Context, _ slog.Level) bool { return true }

func (h *capturingHandler) Handle(_ context.Context, r slog.Record) error {
	h.record = r.Clone()
	return nil
}

func (h *capturingHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }

func (h *capturingHandler) WithGroup(_ string) slog.Handler { return h }

func TestLoggingMiddleware(t *testing.T) {
	var cap capturingHandler
	logger := slog.New(&cap)

	tests := []struct {
		name          string
		handlerStatus int
		path          string
		method        string
		body          string
	}{
		{"list", http.StatusOK, "/api/events", http.MethodGet, "[]"},
		{"created", http.StatusCreated, "/api/events", http.MethodPost, `{"id":1}`},
		{"deleted", http.StatusNoContent, "/api/events/1", http.MethodDelete, ""},
		{"server error", http.StatusInternalServerError, "/api/events", http.MethodPost, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.handlerStatus)
				_, _ = w.Write([]byte(tt.body))
			})
			handler := LoggingMiddleware(logger, next)
			req := httptest.NewRequest(tt.method, "http://test"+tt.path, nil)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			require.Equal(t, "request", cap.record.Message)
			attrs := make(map[string]slog.Value)
			cap.record.Attrs(func(a slog.Attr) bool {
				attrs[a.Key] = a.Value
				return true
			})
			require.Contains(t, attrs, "request_id")
			require.Contains(t, attrs, "duration_ms")
			require.Equal(t, tt.method, attrs["method"].String())
			require.Equal(t, tt.path, attrs["path"].String())
			require.Equal(t, int64(tt.handlerStatus), attrs["status"].Int64())
			require.Equal(t, int64(len(tt.body)), attrs["bytes"].Int64())
			require.GreaterOrEqual(t, attrs["duration_ms"].Int64(), int64(0))
			require.Equal(t, tt.handlerStatus, rr.Code)
			require.Equal(t, attrs["request_id"].String(), rr.Header().Get(RequestIDHeader))
		})
	}
}

func TestLoggingMiddleware_RequestID(t *testing.T) {
	logger := slog.New(&capturingHandler{})
	incoming := uuid.NewString()

	tests := []struct {
		name   string
		header string
		keep   bool
	}{
		{name: "generated when missing"},
		{name: "reused when valid", header: incoming, keep: true},
		{name: "replaced when not a uuid", header: "<script>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fromCtx string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fromCtx, _ = RequestIDFromContext(r.Context())
			})
			req := httptest.NewRequest(http.MethodGet, "/events", nil)
			if tt.header != "" {
				req.Header.Set(RequestIDHeader, tt.header)
			}
			rr := httptest.NewRecorder()

			LoggingMiddleware(logger, next).ServeHTTP(rr, req)

			got := rr.Header().Get(RequestIDHeader)
			assert.Equal(t, got, fromCtx)
			_, err := uuid.Parse(got)
			require.NoError(t, err)
			if tt.keep {
				assert.Equal(t, tt.header, got)
			} else {
				assert.NotEqual(t, tt.header, got)
			}
		})
	}
}
