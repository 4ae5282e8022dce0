package csrf

import (
	"log/slog"
	"time"
)

// Option is a functional option for configuring the Manager.
type Option func(*Manager)

// WithConfig sets custom configuration.
func WithConfig(config Config) Option {
	return func(m *Manager) {
		m.config = config
	}
}

// WithTokenTTL sets the fixed token lifetime.
func WithTokenTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.config.TokenTTL = ttl
	}
}

// WithLogger sets the logger for security events.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
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
