package csrf

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/opsuite/sessionkit/pkg/kvstore"
)

const keyPrefix = "csrf:"

// record is the stored token state. CreatedAt anchors a fixed lifetime
// independent of any session.
type record struct {
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}

// Manager issues and validates per-user synchronizer tokens. Tokens are
// keyed by user, not by session: a user holds at most one live token, and
// requesting a token while a valid one exists returns the same value.
type Manager struct {
	store  kvstore.Store
	config Config
	log    *slog.Logger
	now    func() time.Time
}

// New creates a CSRF token manager. A store is mandatory.
func New(store kvstore.Store, opts ...Option) *Manager {
	if store == nil {
		panic("csrf: store is required")
	}

	m := &Manager{
		store:  store,
		config: DefaultConfig(),
		log:    slog.New(slog.DiscardHandler),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// GetOrCreate returns the user's current token, generating and storing a
// new one when none exists or the existing one has expired. Retrieval is
// idempotent while the token is live.
func (m *Manager) GetOrCreate(ctx context.Context, userID uuid.UUID) (string, error) {
	key := keyPrefix + userID.String()

	data, err := m.store.Get(ctx, key)
	if err == nil {
		var rec record
		if jsonErr := json.Unmarshal(data, &rec); jsonErr == nil {
			if m.now().Sub(rec.CreatedAt) <= m.config.TokenTTL {
				return rec.Token, nil
			}
		}
		// Expired or undecodable: fall through and regenerate.
	} else if !errors.Is(err, kvstore.ErrKeyNotFound) {
		return "", err
	}

	token, err := generateToken()
	if err != nil {
		return "", err
	}

	rec := record{Token: token, CreatedAt: m.now()}
	data, err = json.Marshal(rec)
	if err != nil {
		return "", err
	}

	if err := m.store.Set(ctx, key, data, m.config.TokenTTL); err != nil {
		return "", err
	}
	return token, nil
}

// Validate reports whether provided equals the user's live token. The
// comparison runs in constant time so its duration does not reveal where
// the first mismatching byte occurs. Absent or expired tokens validate
// false without error; only store failures surface as errors.
func (m *Manager) Validate(ctx context.Context, userID uuid.UUID, provided string) (bool, error) {
	if provided == "" {
		return false, nil
	}

	key := keyPrefix + userID.String()
	data, err := m.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			return false, nil
		}
		return false, err
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		_ = m.store.Delete(ctx, key)
		return false, nil
	}

	if m.now().Sub(rec.CreatedAt) > m.config.TokenTTL {
		_ = m.store.Delete(ctx, key)
		return false, nil
	}

	return subtle.ConstantTimeCompare([]byte(rec.Token), []byte(provided)) == 1, nil
}

// Invalidate deletes the user's token. Called on logout; idempotent.
func (m *Manager) Invalidate(ctx context.Context, userID uuid.UUID) error {
	return m.store.Delete(ctx, keyPrefix+userID.String())
}

// generateToken creates a 256-bit cryptographically secure token.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
