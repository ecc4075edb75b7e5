package models

import "time"

// RefreshToken is a persisted capability record granting the right to mint
// new access tokens without re-presenting a password. Token is a random UUID
// string, globally unique. ExpireTime slides forward on use; MaxLifeTime is
// fixed at creation and never advanced. Records are never deleted: a status
// transition to Expired or Revoked substitutes for deletion.
type RefreshToken struct {
	ID          int64
	Token       string
	UserID      int64
	Status      TokenStatus
	ExpireTime  time.Time
	MaxLifeTime time.Time
}
