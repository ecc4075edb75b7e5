// Package models holds the persisted entities of the identity service and
// their closed status/role enumerations. Enumerations carry both a numeric
// id (the at-rest representation) and a display name, with lookup in both
// directions; the mapping tables are built once at package init and checked
// for completeness.
package models

import "fmt"

// UserStatus is the account state of a User.
type UserStatus int

const (
	UserStatusActive UserStatus = 1
	UserStatusLocked UserStatus = 2
	UserStatusBanned UserStatus = 3
)

// TokenStatus is the lifecycle state of a RefreshToken. Expired and Revoked
// are terminal: a record must never transition again once either is set.
type TokenStatus int

const (
	TokenStatusActive  TokenStatus = 1
	TokenStatusExpired TokenStatus = 2
	TokenStatusRevoked TokenStatus = 3
)

var userStatusNames = map[UserStatus]string{
	UserStatusActive: "Active",
	UserStatusLocked: "Locked",
	UserStatusBanned: "Banned",
}

var tokenStatusNames = map[TokenStatus]string{
	TokenStatusActive:  "Active",
	TokenStatusExpired: "Expired",
	TokenStatusRevoked: "Revoked",
}

var (
	userStatusByName  map[string]UserStatus
	tokenStatusByName map[string]TokenStatus
)

func init() {
	userStatusByName = make(map[string]UserStatus, len(userStatusNames))
	for id, name := range userStatusNames {
		userStatusByName[name] = id
	}
	tokenStatusByName = make(map[string]TokenStatus, len(tokenStatusNames))
	for id, name := range tokenStatusNames {
		tokenStatusByName[name] = id
	}
	if len(userStatusByName) != len(userStatusNames) || len(tokenStatusByName) != len(tokenStatusNames) {
		panic("models: duplicate status names")
	}
}

func (s UserStatus) String() string {
	if name, ok := userStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("UserStatus(%d)", int(s))
}

func (s TokenStatus) String() string {
	if name, ok := tokenStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("TokenStatus(%d)", int(s))
}

// UserStatusFromID maps a stored numeric id back to a UserStatus.
func UserStatusFromID(id int) (UserStatus, error) {
	s := UserStatus(id)
	if _, ok := userStatusNames[s]; !ok {
		return 0, fmt.Errorf("unknown user status id %d", id)
	}
	return s, nil
}

// UserStatusFromName maps a display name back to a UserStatus.
func UserStatusFromName(name string) (UserStatus, error) {
	s, ok := userStatusByName[name]
	if !ok {
		return 0, fmt.Errorf("unknown user status %q", name)
	}
	return s, nil
}

// TokenStatusFromID maps a stored numeric id back to a TokenStatus.
func TokenStatusFromID(id int) (TokenStatus, error) {
	s := TokenStatus(id)
	if _, ok := tokenStatusNames[s]; !ok {
		return 0, fmt.Errorf("unknown token status id %d", id)
	}
	return s, nil
}

// TokenStatusFromName maps a display name back to a TokenStatus.
func TokenStatusFromName(name string) (TokenStatus, error) {
	s, ok := tokenStatusByName[name]
	if !ok {
		return 0, fmt.Errorf("unknown token status %q", name)
	}
	return s, nil
}

// Terminal reports whether the status forbids any further transition.
func (s TokenStatus) Terminal() bool {
	return s == TokenStatusExpired || s == TokenStatusRevoked
}
