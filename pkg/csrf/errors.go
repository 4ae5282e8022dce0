package csrf

import "errors"

var (
	// ErrTokenMissing indicates a mutating request arrived without a token
	ErrTokenMissing = errors.New("csrf.token_missing")

	// ErrTokenInvalid indicates the provided token does not match the stored one
	ErrTokenInvalid = errors.New("csrf.token_invalid")

	// ErrTokenGeneration indicates token generation failed
	ErrTokenGeneration = errors.New("csrf.token_generation_failed")
)
