// Package users declares the repository contract for identity records in
// persistent storage.
package users

import (
	"context"

	"github.com/filmstack/idm/internal/server/models"
)

// Repository defines operations for creating and looking up users. Users are
// never deleted; administrative status/role changes happen outside this
// service.
type Repository interface {
	// Create inserts a new user and returns it with the assigned id.
	// Inserting a duplicate email returns common.ErrUserAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail returns the user with the given email, roles included.
	// Returns common.ErrorNotFound when absent.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID returns the user with the given id, roles included.
	// Returns common.ErrorNotFound when absent.
	GetByID(ctx context.Context, id int64) (*models.User, error)
}
