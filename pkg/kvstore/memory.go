package kvstore

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// Memory implements Store using a process-local map. Expiry is computed
// lazily at read time, with a periodic sweep to bound memory growth.
// Correct only for a single running instance.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ticker  *time.Ticker
	done    chan struct{}
	once    sync.Once
}

// NewMemory creates an in-memory store. When cleanupInterval is positive a
// background sweep runs until Close is called; zero disables the sweep,
// which is useful for tests.
func NewMemory(cleanupInterval time.Duration) *Memory {
	m := &Memory{
		entries: make(map[string]memoryEntry),
		done:    make(chan struct{}),
	}

	if cleanupInterval > 0 {
		m.ticker = time.NewTicker(cleanupInterval)
		go m.sweepLoop()
	}

	return m
}

func (m *Memory) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return ErrEmptyKey
	}
	if ttl <= 0 {
		return ErrInvalidTTL
	}

	entry := memoryEntry{
		value:     make([]byte, len(value)),
		expiresAt: time.Now().Add(ttl),
	}
	copy(entry.value, value)

	m.mu.Lock()
	m.entries[key] = entry
	m.mu.Unlock()
	return nil
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}

	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrKeyNotFound
	}

	if entry.expired(time.Now()) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return nil, ErrKeyNotFound
	}

	value := make([]byte, len(entry.value))
	copy(value, entry.value)
	return value, nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Len(ctx context.Context) (int64, error) {
	now := time.Now()

	m.mu.RLock()
	defer m.mu.RUnlock()

	var n int64
	for _, entry := range m.entries {
		if !entry.expired(now) {
			n++
		}
	}
	return n, nil
}

// Sweep removes all expired entries immediately.
func (m *Memory) Sweep() {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	for key, entry := range m.entries {
		if entry.expired(now) {
			delete(m.entries, key)
		}
	}
}

// Close stops the background sweep. Safe to call multiple times.
func (m *Memory) Close() error {
	m.once.Do(func() {
		if m.ticker != nil {
			m.ticker.Stop()
		}
		close(m.done)
	})
	return nil
}

func (m *Memory) sweepLoop() {
	for {
		select {
		case <-m.ticker.C:
			m.Sweep()
		case <-m.done:
			return
		}
	}
}
