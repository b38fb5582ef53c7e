package auth

import "errors"

// Token verification failures. Each maps to a distinct client-visible message.
var (
	ErrTokenMissing   = errors.New("missing authorization token")
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenSignature = errors.New("token signature is invalid")
	ErrTokenExpired   = errors.New("token is expired")
	ErrTokenInvalid   = errors.New("token is invalid")
)
