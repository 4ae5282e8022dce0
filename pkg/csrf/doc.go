// Package csrf implements the synchronizer token pattern: a per-user
// secret that state-changing requests must echo back to prove they
// originate from an authorized client context.
//
// Tokens are keyed 1:1 by user and live independently of sessions: a user
// has at most one token at a time, retrieval is idempotent while the token
// is unexpired, and the token is regenerated only after its own TTL or an
// explicit Invalidate at logout.
//
// The Protect middleware skips safe methods and, for everything else,
// requires a resolved identity and a matching token taken from the request
// header, a form field or a query parameter, in that priority order. The
// IssueToken middleware hands the current token to authenticated clients
// in a response header.
//
//	manager := csrf.New(store)
//
//	mux := http.NewServeMux()
//	handler := sessions.Middleware(manager.Protect(mux))
package csrf
