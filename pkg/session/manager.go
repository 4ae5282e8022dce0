package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/opsuite/sessionkit/pkg/kvstore"
)

const keyPrefix = "sess:"

// Manager owns the session lifecycle: creation, validation, activity
// refresh, identifier rotation and destruction. All state lives in the
// injected kvstore backend; the manager itself holds no per-session state.
type Manager struct {
	store     kvstore.Store
	transport Transport
	config    Config
	log       *slog.Logger
	now       func() time.Time

	cookieManager cookieManagerRef
}

// New creates a session manager. A store is mandatory; the default
// transport is the encrypted cookie transport and requires a cookie
// manager. Misconfiguration panics so it cannot reach request handling.
func New(opts ...Option) *Manager {
	m := &Manager{
		config: DefaultConfig(),
		log:    slog.New(slog.DiscardHandler),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.store == nil {
		panic("session: store is required")
	}

	if m.transport == nil {
		if m.cookieManager.mgr == nil {
			panic("session: cookie manager is required when using default cookie transport")
		}
		sameSite := http.SameSiteLaxMode
		if m.config.StrictSameSite {
			sameSite = http.SameSiteStrictMode
		}
		m.transport = NewCookieTransport(m.cookieManager.mgr, m.config.CookieName, m.config.SecureCookies, sameSite, m.cookieManager.opts...)
	}

	return m
}

// Create generates a fresh identifier and writes a new session record with
// the full absolute TTL.
func (m *Manager) Create(ctx context.Context, userID uuid.UUID, meta Metadata) (*Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	now := m.now()
	s := &Session{
		Token:          token,
		UserID:         userID,
		CreatedAt:      now,
		LastActivityAt: now,
		RotatedAt:      now,
		IP:             meta.IP,
		UserAgent:      meta.UserAgent,
	}

	if err := m.write(ctx, s, m.config.AbsoluteTTL); err != nil {
		return nil, err
	}
	return s, nil
}

// Get loads and validates the session for token. A breach of either the
// absolute TTL or the idle timeout is terminal: the record is deleted and
// ErrSessionExpired returned. An IP change against the stored address is
// logged but never invalidates the session, since strict pinning breaks
// legitimate mobile and NAT clients.
func (m *Manager) Get(ctx context.Context, token string, meta Metadata) (*Session, error) {
	s, err := m.read(ctx, token)
	if err != nil {
		return nil, err
	}

	now := m.now()
	if s.ExpiredByTTL(now, m.config.AbsoluteTTL) || s.ExpiredByIdle(now, m.config.IdleTimeout) {
		_ = m.store.Delete(ctx, keyPrefix+token)
		return nil, ErrSessionExpired
	}

	if meta.IP != "" && s.IP != "" && meta.IP != s.IP {
		m.log.WarnContext(ctx, "session ip address changed",
			slog.String("user_id", s.UserID.String()),
			slog.String("stored_ip", s.IP),
			slog.String("request_ip", meta.IP),
		)
	}

	return s, nil
}

// Touch records request activity. The record is written back with the
// remaining time until CreatedAt + AbsoluteTTL, never the full TTL, so
// touches cannot extend a session past its absolute ceiling.
func (m *Manager) Touch(ctx context.Context, s *Session) error {
	now := m.now()

	remaining := s.Remaining(now, m.config.AbsoluteTTL)
	if remaining <= 0 {
		_ = m.store.Delete(ctx, keyPrefix+s.Token)
		return ErrSessionExpired
	}

	s.LastActivityAt = now
	return m.write(ctx, s, remaining)
}

// Rotate replaces the session identifier while preserving the underlying
// identity and its absolute deadline. The new record carries the remaining
// TTL of the old one; the old identifier is deleted and unusable afterward.
//
// Two concurrent requests may both rotate the same session; the later
// write wins and the earlier rotator's cookie points at a dead record.
// The loser re-authenticates on its next request. Accepted as a benign
// race rather than paying for a conditional delete on every rotation.
func (m *Manager) Rotate(ctx context.Context, token string) (*Session, error) {
	s, err := m.read(ctx, token)
	if err != nil {
		return nil, err
	}

	now := m.now()
	remaining := s.Remaining(now, m.config.AbsoluteTTL)
	if remaining <= 0 {
		_ = m.store.Delete(ctx, keyPrefix+token)
		return nil, ErrSessionExpired
	}

	newToken, err := generateToken()
	if err != nil {
		return nil, err
	}

	rotated := *s
	rotated.Token = newToken
	rotated.RotatedAt = now

	if err := m.write(ctx, &rotated, remaining); err != nil {
		return nil, err
	}
	if err := m.store.Delete(ctx, keyPrefix+token); err != nil {
		m.log.ErrorContext(ctx, "failed to delete rotated session",
			slog.String("user_id", s.UserID.String()),
			slog.Any("error", err),
		)
	}

	return &rotated, nil
}

// Destroy deletes the session record unconditionally. Destroying a session
// that does not exist is not an error.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	return m.store.Delete(ctx, keyPrefix+token)
}

// Authenticate is the login handoff: upstream credential verification
// supplies the user identifier and this creates the session and sets the
// cookie. The cookie's Max-Age equals the absolute TTL.
func (m *Manager) Authenticate(ctx context.Context, w http.ResponseWriter, r *http.Request, userID uuid.UUID) (*Session, error) {
	s, err := m.Create(ctx, userID, MetadataFromRequest(r))
	if err != nil {
		return nil, err
	}

	if err := m.transport.SetToken(w, s.Token, m.config.AbsoluteTTL); err != nil {
		_ = m.store.Delete(ctx, keyPrefix+s.Token)
		return nil, err
	}

	return s, nil
}

// Logout destroys the current session, if any, and clears the cookie.
func (m *Manager) Logout(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if token, err := m.transport.GetToken(r); err == nil && token != "" {
		if err := m.Destroy(ctx, token); err != nil {
			return err
		}
	}
	return m.transport.ClearToken(w)
}

func (m *Manager) read(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}

	data, err := m.store.Get(ctx, keyPrefix+token)
	if err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		// An undecodable record is treated as tampered and removed.
		_ = m.store.Delete(ctx, keyPrefix+token)
		return nil, errors.Join(ErrInvalidSession, err)
	}

	return &s, nil
}

func (m *Manager) write(ctx context.Context, s *Session, ttl time.Duration) error {
	data, err := json.Marshal(s)
	if err != nil {
		return errors.Join(ErrInvalidSession, err)
	}
	return m.store.Set(ctx, keyPrefix+s.Token, data, ttl)
}

// generateToken creates a 256-bit cryptographically secure identifier.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
