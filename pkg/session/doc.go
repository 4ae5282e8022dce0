// Package session manages authenticated session lifecycle: creation at
// login, validation with absolute and idle deadlines, activity refresh,
// periodic identifier rotation and destruction at logout.
//
// A session is valid only while both invariants hold:
//
//	now - CreatedAt      <= AbsoluteTTL
//	now - LastActivityAt <= IdleTimeout
//
// Violating either is terminal: the record is deleted, never repaired.
// Rotation replaces the identifier while preserving the user and the
// original creation time, limiting the value of a leaked cookie without
// resetting the absolute clock.
//
// State lives in a kvstore.Store backend, so the manager works unchanged
// against the in-process map or a shared Redis instance. The token reaches
// the client through a Transport; the default is an AES-GCM encrypted
// cookie (HttpOnly, SameSite=Lax, Max-Age bound to the remaining absolute
// TTL).
//
// # Usage
//
//	store, _ := kvstore.Open(ctx, kvstore.DefaultConfig())
//	cookies, _ := cookie.New([]string{secret})
//
//	manager := session.New(
//	    session.WithStore(store),
//	    session.WithCookieManager(cookies),
//	)
//
//	// After upstream credential verification:
//	manager.Authenticate(ctx, w, r, userID)
//
//	// Per request:
//	handler = manager.Middleware(handler)
//
//	// Downstream:
//	userID, ok := session.UserIDFromContext(r.Context())
//
// Credential verification itself is out of scope; the manager only trusts
// the user identifier handed to Authenticate.
package session
