// Package common defines shared constants and sentinel errors used across
// the identity service. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control). ErrorInternal
	// covers crypto backend faults: no request can succeed until operators
	// intervene, so it is never mapped to a recoverable result.
	ErrorInternal = errors.New("internal error")

	// Login-time account failures.
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserLocked         = errors.New("user is locked")
	ErrUserBanned         = errors.New("user is banned")

	// Registration conflict.
	ErrUserAlreadyExists = errors.New("user already exists")

	// Refresh-token state machine terminal failures.
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	ErrRefreshTokenExpired  = errors.New("refresh token expired")
	ErrRefreshTokenRevoked  = errors.New("refresh token revoked")

	// Access-token verification failures.
	ErrTokenMalformed = errors.New("malformed token")
	ErrTokenSignature = errors.New("invalid token signature")
	ErrTokenExpired   = errors.New("token expired")
)
