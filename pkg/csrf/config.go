package csrf

import "time"

// Config holds CSRF token settings.
type Config struct {
	// TokenTTL is the fixed token lifetime, independent of session lifetime.
	TokenTTL time.Duration `env:"CSRF_TOKEN_TTL" envDefault:"12h"`

	// HeaderName carries the token in both directions: the server issues
	// the current token in this response header and the client echoes it
	// back in the same request header.
	HeaderName string `env:"CSRF_HEADER_NAME" envDefault:"X-CSRF-Token"`

	// FieldName is the form body field and query parameter fallback.
	FieldName string `env:"CSRF_FIELD_NAME" envDefault:"csrf_token"`
}

// DefaultConfig returns production-safe CSRF defaults.
func DefaultConfig() Config {
	return Config{
		TokenTTL:   12 * time.Hour,
		HeaderName: "X-CSRF-Token",
		FieldName:  "csrf_token",
	}
}
