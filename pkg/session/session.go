package session

import (
	"time"

	"github.com/google/uuid"
)

// Session represents one authenticated browsing context. The record is
// JSON-encoded into the store under its token.
type Session struct {
	// Token is the opaque session identifier, replaced on rotation.
	Token string `json:"token"`

	// UserID is the owning identity. Immutable for the life of the
	// session, including across rotations.
	UserID uuid.UUID `json:"user_id"`

	// CreatedAt anchors the absolute TTL. Immutable, survives rotation.
	CreatedAt time.Time `json:"created_at"`

	// LastActivityAt is extended on every successfully validated request.
	LastActivityAt time.Time `json:"last_activity_at"`

	// RotatedAt records the last identifier rotation and decides when the
	// next one is due.
	RotatedAt time.Time `json:"rotated_at"`

	// IP and UserAgent are captured at creation for anomaly logging.
	// Advisory only, never enforced.
	IP        string `json:"ip,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
}

// ExpiredByTTL reports whether the session passed its absolute lifetime.
func (s *Session) ExpiredByTTL(now time.Time, absolute time.Duration) bool {
	return now.Sub(s.CreatedAt) > absolute
}

// ExpiredByIdle reports whether the gap since the last validated request
// exceeds the idle timeout.
func (s *Session) ExpiredByIdle(now time.Time, idle time.Duration) bool {
	return now.Sub(s.LastActivityAt) > idle
}

// Remaining returns the time left until the absolute ceiling. Store writes
// always use this value, never the full absolute TTL, so no refresh can
// extend a session past CreatedAt + absolute.
func (s *Session) Remaining(now time.Time, absolute time.Duration) time.Duration {
	return s.CreatedAt.Add(absolute).Sub(now)
}

// RotationDue reports whether the identifier is old enough to rotate.
func (s *Session) RotationDue(now time.Time, interval time.Duration) bool {
	return now.Sub(s.RotatedAt) > interval
}
