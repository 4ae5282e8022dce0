package session

import "time"

// Config holds session lifecycle settings.
type Config struct {
	// CookieName is the name of the session cookie (default: "sid")
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"sid"`

	// AbsoluteTTL is the maximum total session lifetime from creation,
	// regardless of activity.
	AbsoluteTTL time.Duration `env:"SESSION_ABSOLUTE_TTL" envDefault:"24h"`

	// IdleTimeout is the maximum allowed gap between validated requests.
	IdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"30m"`

	// RotationInterval is how long an identifier stays in use before the
	// middleware rotates it.
	RotationInterval time.Duration `env:"SESSION_ROTATION_INTERVAL" envDefault:"15m"`

	// SecureCookies enables the Secure flag on session cookies. Required
	// when serving over TLS.
	SecureCookies bool `env:"SESSION_SECURE_COOKIES" envDefault:"false"`

	// StrictSameSite upgrades the cookie from SameSite=Lax to Strict.
	StrictSameSite bool `env:"SESSION_STRICT_SAME_SITE" envDefault:"false"`
}

// DefaultConfig returns production-safe session defaults.
func DefaultConfig() Config {
	return Config{
		CookieName:       "sid",
		AbsoluteTTL:      24 * time.Hour,
		IdleTimeout:      30 * time.Minute,
		RotationInterval: 15 * time.Minute,
	}
}
