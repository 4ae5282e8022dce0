package kvstore

import "errors"

var (
	// ErrKeyNotFound indicates the key is absent or expired
	ErrKeyNotFound = errors.New("kvstore.not_found")

	// ErrEmptyKey indicates an empty key was passed to a store operation
	ErrEmptyKey = errors.New("kvstore.empty_key")

	// ErrInvalidTTL indicates a non-positive TTL was passed to Set
	ErrInvalidTTL = errors.New("kvstore.invalid_ttl")

	// ErrUnknownBackend indicates an unrecognized backend name in Config
	ErrUnknownBackend = errors.New("kvstore.unknown_backend")
)
