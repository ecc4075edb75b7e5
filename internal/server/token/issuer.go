package token

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"errors"
	"fmt"
	"time"

	"github.com/filmstack/idm/internal/common"
	"github.com/filmstack/idm/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims is the claim set carried by an access token: the standard
// registered claims plus the user id and role names.
type AccessClaims struct {
	jwt.RegisteredClaims
	UserID int64         `json:"id"`
	Roles  []models.Role `json:"roles"`
}

// Issuer builds and signs access tokens and verifies presented ones.
// Verification is pure: it never mutates any store.
type Issuer struct {
	key               *ecdsa.PrivateKey
	keyID             string
	accessTokenExpire time.Duration

	// now is a seam for tests.
	now func() time.Time
}

// NewIssuer wraps the process-wide signing key. The key must be on P-521,
// matching the ES512 signing method.
func NewIssuer(key *ecdsa.PrivateKey, accessTokenExpire time.Duration) (*Issuer, error) {
	if key == nil {
		return nil, errors.New("token: nil signing key")
	}
	if key.Curve != elliptic.P521() {
		return nil, fmt.Errorf("token: signing key must use P-521, got %s", key.Curve.Params().Name)
	}
	kid, err := KeyID(&key.PublicKey)
	if err != nil {
		return nil, err
	}
	return &Issuer{
		key:               key,
		keyID:             kid,
		accessTokenExpire: accessTokenExpire,
		now:               time.Now,
	}, nil
}

// IssueAccessToken signs a claim set for the user: subject is the email,
// issuance time is now, expiration is now+accessTokenExpire, plus the user
// id and role claims. A signing failure is a fatal backend condition and is
// reported as common.ErrorInternal.
func (i *Issuer) IssueAccessToken(user *models.User) (string, error) {
	now := i.now()
	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.accessTokenExpire)),
		},
		UserID: user.ID,
		Roles:  user.Roles,
	}

	t := jwt.NewWithClaims(jwt.SigningMethodES512, claims)
	t.Header["kid"] = i.keyID

	signed, err := t.SignedString(i.key)
	if err != nil {
		return "", fmt.Errorf("%w: signing access token: %v", common.ErrorInternal, err)
	}
	return signed, nil
}

// VerifyAccessToken checks a presented token in two explicitly ordered steps:
// structure and signature first, then freshness. It returns
//   - common.ErrTokenMalformed when the compact structure is unparseable,
//   - common.ErrTokenSignature when the signature does not verify or the
//     header's algorithm/type is not the expected ES512 JWT,
//   - common.ErrTokenExpired when now is at or after the expiration claim.
//
// On success the parsed claims are returned.
func (i *Issuer) VerifyAccessToken(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}

	// Expiration is checked manually below, in its own step after the
	// signature has been verified.
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodES512.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	parsed, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return &i.key.PublicKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return nil, common.ErrTokenMalformed
		}
		return nil, common.ErrTokenSignature
	}

	if typ, ok := parsed.Header["typ"].(string); !ok || typ != "JWT" {
		return nil, common.ErrTokenSignature
	}

	if claims.ExpiresAt == nil || !i.now().Before(claims.ExpiresAt.Time) {
		return nil, common.ErrTokenExpired
	}

	return claims, nil
}
