package repomanager

import (
	"context"
	"database/sql"

	"github.com/filmstack/idm/internal/dbx"
	"github.com/filmstack/idm/internal/server/repositories/refreshtokens"
	"github.com/filmstack/idm/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so a service can run
// the same repository code against the pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
}
