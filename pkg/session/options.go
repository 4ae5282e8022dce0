package session

import (
	"log/slog"
	"time"

	"github.com/opsuite/sessionkit/pkg/cookie"
	"github.com/opsuite/sessionkit/pkg/kvstore"
)

// Option is a functional option for configuring the Manager.
type Option func(*Manager)

type cookieManagerRef struct {
	mgr  *cookie.Manager
	opts []cookie.Option
}

// WithStore injects the storage backend. Required.
func WithStore(store kvstore.Store) Option {
	return func(m *Manager) {
		m.store = store
	}
}

// WithTransport sets a custom session transport.
func WithTransport(transport Transport) Option {
	return func(m *Manager) {
		m.transport = transport
	}
}

// WithConfig sets custom configuration.
func WithConfig(config Config) Option {
	return func(m *Manager) {
		m.config = config
	}
}

// WithCookieManager sets the cookie manager for the default cookie transport.
func WithCookieManager(cookieMgr *cookie.Manager, opts ...cookie.Option) Option {
	return func(m *Manager) {
		m.cookieManager = cookieManagerRef{mgr: cookieMgr, opts: opts}
	}
}

// WithLogger sets the logger for anomaly and security events.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// WithCookieName sets the session cookie name.
func WithCookieName(name string) Option {
	return func(m *Manager) {
		m.config.CookieName = name
	}
}

// WithTimeouts sets the absolute TTL and idle timeout.
func WithTimeouts(absolute, idle time.Duration) Option {
	return func(m *Manager) {
		m.config.AbsoluteTTL = absolute
		m.config.IdleTimeout = idle
	}
}

// WithRotationInterval sets how often identifiers are rotated.
func WithRotationInterval(interval time.Duration) Option {
	return func(m *Manager) {
		m.config.RotationInterval = interval
	}
}

// WithTimeSource overrides the clock, enabling expiry tests without sleeps.
func WithTimeSource(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}
