package models

// User is an identity record. Email is unique across all users. Salt and
// HashedPassword are Base64-encoded at rest. The id is assigned by the
// database at creation and never changes; users are never deleted.
type User struct {
	ID             int64
	Email          string
	Status         UserStatus
	Salt           string
	HashedPassword string
	Roles          []Role
}
