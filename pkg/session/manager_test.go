package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsuite/sessionkit/pkg/cookie"
	"github.com/opsuite/sessionkit/pkg/kvstore"
	"github.com/opsuite/sessionkit/pkg/session"
)

// testClock lets tests jump through time instead of sleeping.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func setupManager(t *testing.T, clock *testClock, opts ...session.Option) (*session.Manager, *kvstore.Memory) {
	t.Helper()

	store := kvstore.NewMemory(0)
	t.Cleanup(func() { _ = store.Close() })

	cookieMgr, err := cookie.New([]string{"test-secret-key-that-is-long-enough"})
	require.NoError(t, err)

	base := []session.Option{
		session.WithStore(store),
		session.WithCookieManager(cookieMgr),
		session.WithTimeSource(clock.Now),
		session.WithConfig(session.Config{
			CookieName:       "test-sid",
			AbsoluteTTL:      24 * time.Hour,
			IdleTimeout:      15 * time.Minute,
			RotationInterval: 30 * time.Minute,
		}),
	}

	return session.New(append(base, opts...)...), store
}

func TestManager_CreateAndGet(t *testing.T) {
	clock := newTestClock()
	manager, _ := setupManager(t, clock)
	ctx := context.Background()
	userID := uuid.New()

	meta := session.Metadata{IP: "203.0.113.10", UserAgent: "test-agent"}
	s, err := manager.Create(ctx, userID, meta)
	require.NoError(t, err)
	assert.NotEmpty(t, s.Token)
	assert.Equal(t, userID, s.UserID)
	assert.Equal(t, clock.Now(), s.CreatedAt)
	assert.Equal(t, clock.Now(), s.LastActivityAt)
	assert.Equal(t, clock.Now(), s.RotatedAt)
	assert.Equal(t, "203.0.113.10", s.IP)
	assert.Equal(t, "test-agent", s.UserAgent)

	got, err := manager.Get(ctx, s.Token, meta)
	require.NoError(t, err)
	assert.Equal(t, s.Token, got.Token)
	assert.Equal(t, userID, got.UserID)

	t.Run("unknown token", func(t *testing.T) {
		_, err := manager.Get(ctx, "no-such-token", meta)
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("tokens are unique", func(t *testing.T) {
		other, err := manager.Create(ctx, userID, meta)
		require.NoError(t, err)
		assert.NotEqual(t, s.Token, other.Token)
	})
}

func TestManager_AbsoluteTTL(t *testing.T) {
	clock := newTestClock()
	manager, _ := setupManager(t, clock)
	ctx := context.Background()

	s, err := manager.Create(ctx, uuid.New(), session.Metadata{})
	require.NoError(t, err)

	// Touch just before the ceiling keeps the session alive but cannot
	// extend it past CreatedAt + 24h.
	clock.Advance(23*time.Hour + 59*time.Minute)
	got, err := manager.Get(ctx, s.Token, session.Metadata{})
	require.NoError(t, err)
	require.NoError(t, manager.Touch(ctx, got))

	clock.Advance(2 * time.Minute) // t = 24h01m
	_, err = manager.Get(ctx, s.Token, session.Metadata{})
	assert.ErrorIs(t, err, session.ErrSessionExpired)

	// Expiry is terminal: the record is gone, not repaired.
	_, err = manager.Get(ctx, s.Token, session.Metadata{})
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestManager_IdleTimeout(t *testing.T) {
	clock := newTestClock()
	manager, _ := setupManager(t, clock)
	ctx := context.Background()

	t.Run("valid within idle window and activity extended", func(t *testing.T) {
		s, err := manager.Create(ctx, uuid.New(), session.Metadata{})
		require.NoError(t, err)

		clock.Advance(10 * time.Minute)
		got, err := manager.Get(ctx, s.Token, session.Metadata{})
		require.NoError(t, err)

		require.NoError(t, manager.Touch(ctx, got))
		assert.Equal(t, clock.Now(), got.LastActivityAt)
	})

	t.Run("invalid past idle window despite ttl headroom", func(t *testing.T) {
		s, err := manager.Create(ctx, uuid.New(), session.Metadata{})
		require.NoError(t, err)

		clock.Advance(16 * time.Minute)
		_, err = manager.Get(ctx, s.Token, session.Metadata{})
		assert.ErrorIs(t, err, session.ErrSessionExpired)
	})

	t.Run("touch resets the idle clock", func(t *testing.T) {
		s, err := manager.Create(ctx, uuid.New(), session.Metadata{})
		require.NoError(t, err)

		for range 4 {
			clock.Advance(10 * time.Minute)
			got, err := manager.Get(ctx, s.Token, session.Metadata{})
			require.NoError(t, err)
			require.NoError(t, manager.Touch(ctx, got))
		}
	})
}

func TestManager_Rotate(t *testing.T) {
	clock := newTestClock()
	manager, _ := setupManager(t, clock)
	ctx := context.Background()
	userID := uuid.New()

	s, err := manager.Create(ctx, userID, session.Metadata{})
	require.NoError(t, err)
	createdAt := s.CreatedAt

	clock.Advance(10 * time.Minute)
	rotated, err := manager.Rotate(ctx, s.Token)
	require.NoError(t, err)

	t.Run("identity and creation time preserved", func(t *testing.T) {
		assert.Equal(t, userID, rotated.UserID)
		assert.Equal(t, createdAt, rotated.CreatedAt)
	})

	t.Run("identifier changed and rotation recorded", func(t *testing.T) {
		assert.NotEqual(t, s.Token, rotated.Token)
		assert.Equal(t, clock.Now(), rotated.RotatedAt)
	})

	t.Run("old identifier is unusable", func(t *testing.T) {
		_, err := manager.Get(ctx, s.Token, session.Metadata{})
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("new identifier resolves to the same user", func(t *testing.T) {
		got, err := manager.Get(ctx, rotated.Token, session.Metadata{})
		require.NoError(t, err)
		assert.Equal(t, userID, got.UserID)
	})

	t.Run("rotating a missing session fails", func(t *testing.T) {
		_, err := manager.Rotate(ctx, "no-such-token")
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("rotation does not extend the absolute ceiling", func(t *testing.T) {
		clock.Advance(24 * time.Hour)
		_, err := manager.Get(ctx, rotated.Token, session.Metadata{})
		assert.ErrorIs(t, err, session.ErrSessionExpired)
	})
}

func TestManager_Destroy(t *testing.T) {
	clock := newTestClock()
	manager, _ := setupManager(t, clock)
	ctx := context.Background()

	s, err := manager.Create(ctx, uuid.New(), session.Metadata{})
	require.NoError(t, err)

	require.NoError(t, manager.Destroy(ctx, s.Token))

	_, err = manager.Get(ctx, s.Token, session.Metadata{})
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	// Destroying a non-existent session is not an error.
	assert.NoError(t, manager.Destroy(ctx, s.Token))
}

func TestManager_IPChangeIsAdvisory(t *testing.T) {
	clock := newTestClock()
	manager, _ := setupManager(t, clock)
	ctx := context.Background()

	s, err := manager.Create(ctx, uuid.New(), session.Metadata{IP: "203.0.113.10"})
	require.NoError(t, err)

	// A different request IP is logged but never invalidates the session.
	got, err := manager.Get(ctx, s.Token, session.Metadata{IP: "198.51.100.7"})
	require.NoError(t, err)
	assert.Equal(t, s.UserID, got.UserID)
}

func TestManager_TamperedRecord(t *testing.T) {
	clock := newTestClock()
	manager, store := setupManager(t, clock)
	ctx := context.Background()

	s, err := manager.Create(ctx, uuid.New(), session.Metadata{})
	require.NoError(t, err)

	require.NoError(t, store.Set(ctx, "sess:"+s.Token, []byte("not-json"), time.Hour))

	_, err = manager.Get(ctx, s.Token, session.Metadata{})
	assert.ErrorIs(t, err, session.ErrInvalidSession)

	// The tampered record was removed.
	_, err = manager.Get(ctx, s.Token, session.Metadata{})
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}
