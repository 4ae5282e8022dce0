package kvstore

import (
	"context"
	"fmt"
	"time"

	redispkg "github.com/opsuite/sessionkit/pkg/redis"
)

// Store is a key/value abstraction with per-key expiry. It backs both the
// session and CSRF token managers, so a single backend choice covers the
// whole auth subsystem.
type Store interface {
	// Set stores value under key with the given TTL. A non-positive TTL is
	// rejected: every record in this subsystem has a bounded lifetime.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Get returns the value stored under key, or ErrKeyNotFound when the key
	// is absent or already expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Len reports the number of live keys.
	Len(ctx context.Context) (int64, error)

	// Close releases backend resources and stops background work.
	Close() error
}

// Backend identifiers accepted by Open.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config selects and configures the store backend. The choice is made once
// at startup; mixing backends across running instances causes divergent
// session state, so there is deliberately no runtime fallback.
type Config struct {
	// Backend is "memory" (single instance only) or "redis" (multi-instance safe).
	Backend string `env:"STORE_BACKEND" envDefault:"memory"`

	// CleanupInterval bounds memory growth of the memory backend by sweeping
	// expired entries. Ignored by the redis backend, which expires natively.
	CleanupInterval time.Duration `env:"STORE_CLEANUP_INTERVAL" envDefault:"5m"`

	Redis redispkg.Config
}

// DefaultConfig returns a single-instance memory configuration.
func DefaultConfig() Config {
	return Config{
		Backend:         BackendMemory,
		CleanupInterval: 5 * time.Minute,
		Redis:           redispkg.DefaultConfig(),
	}
}

// Open validates cfg and constructs the configured backend. An unknown
// backend name is a startup error, never a silent default.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case BackendMemory:
		return NewMemory(cfg.CleanupInterval), nil
	case BackendRedis:
		client, err := redispkg.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return NewRedis(client), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
