package session

import (
	"errors"
	"log/slog"
	"net/http"
)

// Middleware resolves the session for each request. Requests without a
// cookie proceed unauthenticated; invalid or expired sessions have their
// cookie cleared and also proceed unauthenticated, since many routes are
// public. A valid session is touched, rotated when due, and attached to
// the request context.
//
// A store failure fails the request closed: the backend is never swapped
// and the request is never treated as authenticated on doubt.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := m.transport.GetToken(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		s, err := m.Get(ctx, token, MetadataFromRequest(r))
		if err != nil {
			m.failOrProceed(w, r, next, err)
			return
		}

		if err := m.Touch(ctx, s); err != nil {
			m.failOrProceed(w, r, next, err)
			return
		}

		now := m.now()
		if s.RotationDue(now, m.config.RotationInterval) {
			rotated, err := m.Rotate(ctx, s.Token)
			switch {
			case err == nil:
				// The new cookie must go out before any body is written.
				s = rotated
				if err := m.transport.SetToken(w, s.Token, s.Remaining(now, m.config.AbsoluteTTL)); err != nil {
					m.log.ErrorContext(ctx, "failed to set rotated session cookie", slog.Any("error", err))
				}
			case errors.Is(err, ErrSessionNotFound), errors.Is(err, ErrSessionExpired):
				// Lost the rotation race or expired between reads; the
				// request keeps its already-validated session.
			default:
				m.serviceUnavailable(w, r, err)
				return
			}
		}

		next.ServeHTTP(w, r.WithContext(WithSession(ctx, s)))
	})
}

// RequireAuth rejects requests that did not resolve a session. It must run
// after Middleware.
func (m *Manager) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := FromContext(r.Context()); !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// failOrProceed distinguishes a missing identity (proceed unauthenticated,
// clear the stale cookie) from an unavailable store (fail closed).
func (m *Manager) failOrProceed(w http.ResponseWriter, r *http.Request, next http.Handler, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound),
		errors.Is(err, ErrSessionExpired),
		errors.Is(err, ErrInvalidSession):
		_ = m.transport.ClearToken(w)
		next.ServeHTTP(w, r)
	default:
		m.serviceUnavailable(w, r, err)
	}
}

func (m *Manager) serviceUnavailable(w http.ResponseWriter, r *http.Request, err error) {
	m.log.ErrorContext(r.Context(), "session store unavailable",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
	http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
}
