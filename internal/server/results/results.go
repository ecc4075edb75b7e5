// Package results defines the wire-level result codes the HTTP API returns in
// every response body, and the mapping from service errors to those codes.
package results

import (
	"errors"
	"net/http"

	"github.com/filmstack/idm/internal/common"
)

// Result is the {code, message} pair carried in every response body. Status is
// the HTTP status the result travels with; it is not serialized.
type Result struct {
	Code    int    `json:"code"`
	Message string `json:"message"`

	Status int `json:"-"`
}

var (
	InternalError = Result{1000, "Internal server error.", http.StatusInternalServerError}

	EmailInvalidLength   = Result{1001, "Email address has invalid length.", http.StatusBadRequest}
	EmailInvalidFormat   = Result{1002, "Email address has invalid format.", http.StatusBadRequest}
	PasswordBadLength    = Result{1003, "Password does not meet length requirements.", http.StatusBadRequest}
	PasswordBadCharacter = Result{1004, "Password does not meet character requirements.", http.StatusBadRequest}

	UserAlreadyExists  = Result{1005, "User already exists.", http.StatusConflict}
	UserNotFound       = Result{1006, "User not found.", http.StatusUnauthorized}
	InvalidCredentials = Result{1007, "Invalid credentials.", http.StatusForbidden}
	UserLocked         = Result{1008, "User is locked.", http.StatusForbidden}
	UserBanned         = Result{1009, "User is banned.", http.StatusForbidden}

	UserRegistered = Result{1010, "User registered successfully.", http.StatusOK}
	UserLoggedIn   = Result{1011, "User logged in successfully.", http.StatusOK}

	RefreshTokenInvalidLength = Result{1012, "Refresh token has invalid length.", http.StatusBadRequest}
	RefreshTokenInvalidFormat = Result{1013, "Refresh token has invalid format.", http.StatusBadRequest}
	RefreshTokenNotFound      = Result{1014, "Refresh token not found.", http.StatusUnauthorized}
	RefreshTokenExpired       = Result{1015, "Refresh token is expired.", http.StatusUnauthorized}
	RefreshTokenRevoked       = Result{1016, "Refresh token is revoked.", http.StatusUnauthorized}
	Renewed                   = Result{1017, "Renewed from refresh token.", http.StatusOK}

	AccessTokenInvalid = Result{1018, "Access token is invalid.", http.StatusUnauthorized}
	AccessTokenExpired = Result{1019, "Access token is expired.", http.StatusUnauthorized}
	AccessTokenValid   = Result{1020, "Access token is valid.", http.StatusOK}
)

// FromError maps a service error to its wire result. Unrecognized errors
// collapse into InternalError so internals never leak to clients.
func FromError(err error) Result {
	switch {
	case errors.Is(err, common.ErrUserAlreadyExists):
		return UserAlreadyExists
	case errors.Is(err, common.ErrUserNotFound):
		return UserNotFound
	case errors.Is(err, common.ErrInvalidCredentials):
		return InvalidCredentials
	case errors.Is(err, common.ErrUserLocked):
		return UserLocked
	case errors.Is(err, common.ErrUserBanned):
		return UserBanned
	case errors.Is(err, common.ErrRefreshTokenNotFound):
		return RefreshTokenNotFound
	case errors.Is(err, common.ErrRefreshTokenExpired):
		return RefreshTokenExpired
	case errors.Is(err, common.ErrRefreshTokenRevoked):
		return RefreshTokenRevoked
	case errors.Is(err, common.ErrTokenExpired):
		return AccessTokenExpired
	case errors.Is(err, common.ErrTokenMalformed), errors.Is(err, common.ErrTokenSignature):
		return AccessTokenInvalid
	default:
		return InternalError
	}
}
