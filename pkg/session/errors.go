package session

import "errors"

var (
	// ErrSessionNotFound indicates no session record exists for the token
	ErrSessionNotFound = errors.New("session.not_found")

	// ErrSessionExpired indicates the absolute TTL or idle timeout was breached
	ErrSessionExpired = errors.New("session.expired")

	// ErrInvalidSession indicates the stored record could not be decoded
	ErrInvalidSession = errors.New("session.invalid")

	// ErrNoToken indicates the request carries no session token
	ErrNoToken = errors.New("session.no_token")

	// ErrTokenGeneration indicates token generation failed
	ErrTokenGeneration = errors.New("session.token_generation_failed")
)
