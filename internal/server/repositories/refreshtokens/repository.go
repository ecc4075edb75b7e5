// Package refreshtokens declares the repository contract for refresh-token
// records. Records are never deleted; terminal status transitions (Expired,
// Revoked) substitute for deletion so the audit trail is preserved.
package refreshtokens

import (
	"context"
	"time"

	"github.com/filmstack/idm/internal/server/models"
)

// Repository defines the refresh-token store. The three mutating calls are
// conditional on the record still being Active and report whether the update
// was applied, so two concurrent refreshes racing on the same token value
// cannot both win: exactly one conditional write succeeds and the loser
// observes applied == false.
type Repository interface {
	// Create inserts a new Active record for userID with a freshly generated
	// random token value and the given window/cap timestamps, and returns it.
	Create(ctx context.Context, userID int64, expireTime, maxLifeTime time.Time) (*models.RefreshToken, error)

	// Find looks up a record by its opaque token value.
	// Returns common.ErrorNotFound when absent.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// ExtendExpiry advances expire_time on an Active record. max_life_time is
	// never touched. Returns false when the record is no longer Active.
	ExtendExpiry(ctx context.Context, token string, newExpireTime time.Time) (bool, error)

	// MarkExpired transitions an Active record to Expired.
	// Returns false when the record is no longer Active.
	MarkExpired(ctx context.Context, token string) (bool, error)

	// MarkRevoked transitions an Active record to Revoked.
	// Returns false when the record is no longer Active.
	MarkRevoked(ctx context.Context, token string) (bool, error)
}
