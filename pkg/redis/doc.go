// Package redis provides connection helpers for the shared Redis store
// used by the session and CSRF backends.
//
// Connect parses the connection URL, verifies the server with a PING and
// retries with a bounded backoff so that the application fails fast at
// startup instead of discovering a dead store mid-request.
//
//	client, err := redis.Connect(ctx, redis.Config{
//	    ConnectionURL: "redis://localhost:6379/0",
//	})
package redis
