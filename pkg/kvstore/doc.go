// Package kvstore provides the storage abstraction behind session and CSRF
// token state: a key/value store with per-key expiry and two interchangeable
// backends.
//
// The Memory backend keeps records in a mutex-protected map with lazy expiry
// at read time and a periodic sweep to bound memory. It is correct only for
// a single running instance. The Redis backend delegates expiry to Redis'
// native TTL and is safe across multiple instances.
//
// The backend is chosen once at startup through Config and Open. There is no
// per-request fallback between backends: instances that disagree about where
// sessions live would silently split the session space.
//
//	store, err := kvstore.Open(ctx, kvstore.Config{Backend: kvstore.BackendRedis})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
package kvstore
