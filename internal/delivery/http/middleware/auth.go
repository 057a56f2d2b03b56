package middleware

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	h "eventeditor/internal/delivery/http/helpers"
	"eventeditor/internal/domain"
)

type contextKey string

const subjectKey contextKey = "subject"

// SetSubject returns a context with the token subject set. Used by auth middleware.
func SetSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectKey, subject)
}

// SubjectFromContext returns the authenticated client from the context, if present.
func SubjectFromContext(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(subjectKey).(string)
	return s, ok
}

// RequireAuth validates the Bearer token and sets its subject in the request context.
// If the token is missing or invalid, it responds with 401 and does not call next.
func RequireAuth(verifier domain.TokenVerifier, logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "" {
			h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing authorization header")
			return
		}
		const prefix = "Bearer "
		if !strings.HasPrefix(auth, prefix) {
			h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid authorization format")
			return
		}
		token := strings.TrimSpace(auth[len(prefix):])
		if token == "" {
			h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing token")
			return
		}
		subject, err := verifier.Verify(token)
		if err != nil {
			logger.DebugContext(r.Context(), "token rejected", "err", err)
			h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
			return
		}
		next.ServeHTTP(w, r.WithContext(SetSubject(r.Context(), subject)))
	})
}

// BasicAuth protects the editor UI with a single user whose password is
// stored as a hash. /health is always open.
func BasicAuth(username, passwordHash string, hasher domain.PasswordHasher, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}
		u, p, ok := r.BasicAuth()
		if !ok || subtle.ConstantTimeCompare([]byte(u), []byte(username)) != 1 || hasher.Compare(passwordHash, p) != nil {
			w.Header().Set("WWW-Authenticate", `Basic realm="eventeditor", charset="UTF-8"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(SetSubject(r.Context(), u)))
	})
}
