package csrf

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/opsuite/sessionkit/pkg/session"
)

// tokenSource identifies where the provided token was found, for logging.
type tokenSource string

const (
	sourceHeader tokenSource = "header"
	sourceForm   tokenSource = "form"
	sourceQuery  tokenSource = "query"
	sourceNone   tokenSource = ""
)

// Protect enforces token presence and validity on state-changing methods.
// Safe methods (GET, HEAD, OPTIONS, TRACE) bypass validation entirely.
//
// It must run after the session middleware: a mutating request without a
// resolved identity is rejected as unauthorized, one with a missing or
// invalid token as forbidden. On success the current token is echoed in
// the response header for the client's next request.
func (m *Manager) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isSafeMethod(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		userID, ok := session.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		provided, source := m.extractToken(r)
		if source == sourceQuery {
			// Least preferred carrier: tokens in URLs leak into logs and referrers.
			m.log.InfoContext(r.Context(), "csrf token received via query parameter",
				slog.String("user_id", userID.String()),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)
		}

		if provided == "" {
			m.reject(w, r, userID, ErrTokenMissing)
			return
		}

		valid, err := m.Validate(r.Context(), userID, provided)
		if err != nil {
			// Store failure: fail closed, never accept an unverifiable token.
			m.log.ErrorContext(r.Context(), "csrf store unavailable",
				slog.String("user_id", userID.String()),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Any("error", err),
			)
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		if !valid {
			m.reject(w, r, userID, ErrTokenInvalid)
			return
		}

		w.Header().Set(m.config.HeaderName, provided)
		next.ServeHTTP(w, r)
	})
}

// IssueToken exposes the current token to authenticated clients via the
// response header, creating one lazily on first need. Place it after the
// session middleware on routes that render forms or bootstrap API clients.
func (m *Manager) IssueToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID, ok := session.UserIDFromContext(r.Context()); ok {
			token, err := m.GetOrCreate(r.Context(), userID)
			if err != nil {
				m.log.ErrorContext(r.Context(), "failed to issue csrf token",
					slog.String("user_id", userID.String()),
					slog.Any("error", err),
				)
			} else {
				w.Header().Set(m.config.HeaderName, token)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// extractToken checks the request header, then the form body, then the
// query string. The first source that carries a value wins; later sources
// are not consulted.
func (m *Manager) extractToken(r *http.Request) (string, tokenSource) {
	if token := r.Header.Get(m.config.HeaderName); token != "" {
		return token, sourceHeader
	}
	if token := r.PostFormValue(m.config.FieldName); token != "" {
		return token, sourceForm
	}
	if token := r.URL.Query().Get(m.config.FieldName); token != "" {
		return token, sourceQuery
	}
	return "", sourceNone
}

// reject emits the security log line and sends a generic 403. The token
// value is deliberately never logged.
func (m *Manager) reject(w http.ResponseWriter, r *http.Request, userID uuid.UUID, reason error) {
	m.log.WarnContext(r.Context(), "csrf validation failed",
		slog.String("user_id", userID.String()),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("reason", reason.Error()),
	)
	http.Error(w, "Forbidden", http.StatusForbidden)
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	default:
		return false
	}
}
