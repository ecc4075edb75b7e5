// Package services contains the server-side business logic. This file
// implements IdentityService, which orchestrates registration, login,
// access-token authentication, and the refresh-token state machine.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/filmstack/idm/internal/common"
	"github.com/filmstack/idm/internal/dbx"
	"github.com/filmstack/idm/internal/server/config"
	"github.com/filmstack/idm/internal/server/models"
	"github.com/filmstack/idm/internal/server/password"
	"github.com/filmstack/idm/internal/server/repositories/repomanager"
	"github.com/filmstack/idm/internal/server/token"
)

// AccessTokenIssuer is the subset of token.Issuer used by the service.
type AccessTokenIssuer interface {
	IssueAccessToken(user *models.User) (string, error)
	VerifyAccessToken(tokenString string) (*token.AccessClaims, error)
}

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// RefreshOutcome tells the caller whether the presented refresh-token value
// is still usable (Renewed) or was replaced by a successor (RenewedByRotation).
type RefreshOutcome int

const (
	Renewed RefreshOutcome = iota + 1
	RenewedByRotation
)

// RefreshResult is the successful output of the refresh flow.
type RefreshResult struct {
	Outcome      RefreshOutcome
	AccessToken  string
	RefreshToken string
}

// errLostRace marks a conditional write that found the record no longer
// Active: a concurrent refresh on the same token value won.
var errLostRace = errors.New("refresh token transition lost race")

// IdentityService coordinates the credential and token lifecycle.
type IdentityService struct {
	db                      *sql.DB
	repomanager             repomanager.RepositoryManager
	issuer                  AccessTokenIssuer
	refreshTokenExpire      time.Duration
	maxRefreshTokenLifeTime time.Duration

	// now is a seam for tests.
	now func() time.Time
}

// NewIdentityService constructs an IdentityService using repositories, the
// token issuer, and server config.
func NewIdentityService(db *sql.DB, m repomanager.RepositoryManager, issuer AccessTokenIssuer, cfg *config.Config) *IdentityService {
	return &IdentityService{
		db:                      db,
		repomanager:             m,
		issuer:                  issuer,
		refreshTokenExpire:      cfg.RefreshTokenExpire,
		maxRefreshTokenLifeTime: cfg.MaxRefreshTokenLifeTime,
		now:                     time.Now,
	}
}

// Register hashes the password with a fresh salt and inserts a new Active
// user with no roles. A duplicate email yields common.ErrUserAlreadyExists.
func (s *IdentityService) Register(ctx context.Context, email string, pass []byte) (*models.User, error) {
	salt, digest, err := password.EncodeCredential(pass)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding credential: %v", common.ErrorInternal, err)
	}

	user := &models.User{
		Email:          email,
		Status:         models.UserStatusActive,
		Salt:           salt,
		HashedPassword: digest,
	}
	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrUserAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login verifies the presented password and, for an Active account, returns
// a fresh access token plus a newly created refresh token.
func (s *IdentityService) Login(ctx context.Context, email string, pass []byte) (*TokenPair, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}

	ok, err := password.VerifyEncoded(pass, user.Salt, user.HashedPassword)
	if err != nil {
		return nil, fmt.Errorf("%w: verifying credential: %v", common.ErrorInternal, err)
	}
	if !ok {
		return nil, common.ErrInvalidCredentials
	}

	switch user.Status {
	case models.UserStatusLocked:
		return nil, common.ErrUserLocked
	case models.UserStatusBanned:
		return nil, common.ErrUserBanned
	}

	access, err := s.issuer.IssueAccessToken(user)
	if err != nil {
		return nil, err
	}

	now := s.now()
	rt, err := s.repomanager.RefreshTokens(s.db).Create(ctx, user.ID,
		now.Add(s.refreshTokenExpire), now.Add(s.maxRefreshTokenLifeTime))
	if err != nil {
		return nil, fmt.Errorf("error creating refresh token: %w", err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: rt.Token}, nil
}

// Authenticate verifies a presented access token. It is pure: no store is
// touched. Failures are common.ErrTokenMalformed, common.ErrTokenSignature,
// or common.ErrTokenExpired.
func (s *IdentityService) Authenticate(ctx context.Context, accessToken string) error {
	_, err := s.issuer.VerifyAccessToken(accessToken)
	return err
}

// Refresh advances the refresh-token state machine for the presented value:
//
//  1. unknown value → ErrRefreshTokenNotFound
//  2. Revoked record → ErrRefreshTokenRevoked (terminal, no mutation)
//  3. Expired record → ErrRefreshTokenExpired (terminal, no mutation)
//  4. Active but past its window or cap → record transitions to Expired,
//     ErrRefreshTokenExpired
//  5. sliding renewal would cross the cap → the record is revoked and a
//     successor created atomically, new access token issued
//     (RenewedByRotation)
//  6. otherwise the window slides forward on the same record and a new
//     access token is issued (Renewed)
//
// All mutations are conditional on the record still being Active; when a
// concurrent refresh wins the race, the loser re-reads the record and reports
// the terminal state it finds.
func (s *IdentityService) Refresh(ctx context.Context, tokenValue string) (*RefreshResult, error) {
	repo := s.repomanager.RefreshTokens(s.db)

	rt, err := repo.Find(ctx, tokenValue)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrRefreshTokenNotFound
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}

	switch rt.Status {
	case models.TokenStatusRevoked:
		return nil, common.ErrRefreshTokenRevoked
	case models.TokenStatusExpired:
		return nil, common.ErrRefreshTokenExpired
	}

	now := s.now()

	if !now.Before(rt.ExpireTime) || !now.Before(rt.MaxLifeTime) {
		ok, err := repo.MarkExpired(ctx, rt.Token)
		if err != nil {
			return nil, fmt.Errorf("error expiring refresh token: %w", err)
		}
		if !ok {
			return nil, s.lostRaceError(ctx, rt.Token)
		}
		return nil, common.ErrRefreshTokenExpired
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, rt.UserID)
	if err != nil {
		return nil, fmt.Errorf("error fetching token owner: %w", err)
	}

	access, err := s.issuer.IssueAccessToken(user)
	if err != nil {
		return nil, err
	}

	newExpire := now.Add(s.refreshTokenExpire)
	if newExpire.After(rt.MaxLifeTime) {
		return s.rotate(ctx, rt, access, now)
	}

	ok, err := repo.ExtendExpiry(ctx, rt.Token, newExpire)
	if err != nil {
		return nil, fmt.Errorf("error extending refresh token: %w", err)
	}
	if !ok {
		return nil, s.lostRaceError(ctx, rt.Token)
	}

	return &RefreshResult{
		Outcome:      Renewed,
		AccessToken:  access,
		RefreshToken: rt.Token,
	}, nil
}

// rotate revokes the presented record and creates its successor inside one
// transaction, so either both writes land or neither does. The old value
// becomes permanently unusable and any later presentation reports Revoked.
func (s *IdentityService) rotate(ctx context.Context, rt *models.RefreshToken, access string, now time.Time) (*RefreshResult, error) {
	var successor *models.RefreshToken

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.RefreshTokens(tx)

		ok, err := repoTx.MarkRevoked(ctx, rt.Token)
		if err != nil {
			return fmt.Errorf("error revoking refresh token: %w", err)
		}
		if !ok {
			return errLostRace
		}

		successor, err = repoTx.Create(ctx, rt.UserID,
			now.Add(s.refreshTokenExpire), now.Add(s.maxRefreshTokenLifeTime))
		if err != nil {
			return fmt.Errorf("error creating successor token: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errLostRace) {
			return nil, s.lostRaceError(ctx, rt.Token)
		}
		return nil, err
	}

	return &RefreshResult{
		Outcome:      RenewedByRotation,
		AccessToken:  access,
		RefreshToken: successor.Token,
	}, nil
}

// lostRaceError re-reads a record whose conditional update was not applied
// and maps the terminal state the concurrent winner left behind.
func (s *IdentityService) lostRaceError(ctx context.Context, tokenValue string) error {
	rt, err := s.repomanager.RefreshTokens(s.db).Find(ctx, tokenValue)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrRefreshTokenNotFound
		}
		return fmt.Errorf("error re-reading refresh token: %w", err)
	}
	switch rt.Status {
	case models.TokenStatusRevoked:
		return common.ErrRefreshTokenRevoked
	case models.TokenStatusExpired:
		return common.ErrRefreshTokenExpired
	default:
		// Active records only stop matching the status guard by moving to a
		// terminal state, so this should be unreachable.
		return common.ErrorInternal
	}
}
