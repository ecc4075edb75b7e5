package httpapi

import (
	"regexp"

	"github.com/filmstack/idm/internal/server/results"
)

var (
	emailPattern        = regexp.MustCompile(`^([a-zA-Z0-9]+)@([a-zA-Z0-9]+)\.([a-zA-Z0-9]+)$`)
	refreshTokenPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

	passwordUpper = regexp.MustCompile(`[A-Z]`)
	passwordLower = regexp.MustCompile(`[a-z]`)
	passwordDigit = regexp.MustCompile(`[0-9]`)
)

// validateCredentials checks email and password shape before the store is ever
// touched. The second return value reports whether validation passed.
func validateCredentials(email, pass string) (results.Result, bool) {
	if len(email) < 6 || len(email) > 32 {
		return results.EmailInvalidLength, false
	}
	if !emailPattern.MatchString(email) {
		return results.EmailInvalidFormat, false
	}
	if len(pass) < 10 || len(pass) > 20 {
		return results.PasswordBadLength, false
	}
	if !passwordUpper.MatchString(pass) || !passwordLower.MatchString(pass) || !passwordDigit.MatchString(pass) {
		return results.PasswordBadCharacter, false
	}
	return results.Result{}, true
}

// validateRefreshToken requires the canonical 36-character UUID form.
func validateRefreshToken(token string) (results.Result, bool) {
	if len(token) != 36 {
		return results.RefreshTokenInvalidLength, false
	}
	if !refreshTokenPattern.MatchString(token) {
		return results.RefreshTokenInvalidFormat, false
	}
	return results.Result{}, true
}
