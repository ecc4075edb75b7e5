package refreshtokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/filmstack/idm/internal/common"
	"github.com/filmstack/idm/internal/dbx"
	"github.com/filmstack/idm/internal/server/models"
	"github.com/google/uuid"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, userID int64, expireTime, maxLifeTime time.Time) (*models.RefreshToken, error) {
	rt := &models.RefreshToken{
		Token:       uuid.NewString(),
		UserID:      userID,
		Status:      models.TokenStatusActive,
		ExpireTime:  expireTime,
		MaxLifeTime: maxLifeTime,
	}

	query := `
		INSERT INTO refresh_tokens (token, user_id, token_status_id, expire_time, max_life_time)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		rt.Token, rt.UserID, int(rt.Status), rt.ExpireTime, rt.MaxLifeTime).Scan(&rt.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rt, nil
}

func (r *PostgresRepository) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	query := `
		SELECT id, token, user_id, token_status_id, expire_time, max_life_time
		FROM refresh_tokens
		WHERE token = $1
	`
	rt := &models.RefreshToken{}
	var statusID int
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&rt.ID, &rt.Token, &rt.UserID, &statusID, &rt.ExpireTime, &rt.MaxLifeTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	status, err := models.TokenStatusFromID(statusID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	rt.Status = status

	return rt, nil
}

func (r *PostgresRepository) ExtendExpiry(ctx context.Context, token string, newExpireTime time.Time) (bool, error) {
	query := `
		UPDATE refresh_tokens
		SET expire_time = $2
		WHERE token = $1 AND token_status_id = $3
	`
	return r.conditionalUpdate(ctx, query, token, newExpireTime, int(models.TokenStatusActive))
}

func (r *PostgresRepository) MarkExpired(ctx context.Context, token string) (bool, error) {
	return r.transition(ctx, token, models.TokenStatusExpired)
}

func (r *PostgresRepository) MarkRevoked(ctx context.Context, token string) (bool, error) {
	return r.transition(ctx, token, models.TokenStatusRevoked)
}

// transition moves an Active record into a terminal status. The status guard
// in the WHERE clause is what serializes concurrent refreshes on one record.
func (r *PostgresRepository) transition(ctx context.Context, token string, to models.TokenStatus) (bool, error) {
	query := `
		UPDATE refresh_tokens
		SET token_status_id = $2
		WHERE token = $1 AND token_status_id = $3
	`
	return r.conditionalUpdate(ctx, query, token, int(to), int(models.TokenStatusActive))
}

func (r *PostgresRepository) conditionalUpdate(ctx context.Context, query string, args ...any) (bool, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return affected > 0, nil
}
