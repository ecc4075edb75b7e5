// Package password derives and verifies password credentials using
// PBKDF2 with HMAC-SHA-512. Digests and salts are Base64-encoded at rest.
package password

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"github.com/filmstack/idm/internal/common"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// Iterations is the PBKDF2 iteration count.
	Iterations = 10_000
	// KeyLength is the derived digest length in bytes (512 bits).
	KeyLength = 64
	// SaltLength is the generated salt length in bytes.
	SaltLength = 16
)

// Hash derives a digest from the password and salt. The derivation is
// deterministic: the same (password, salt) pair always yields the same digest.
func Hash(password, salt []byte) []byte {
	return pbkdf2.Key(password, salt, Iterations, KeyLength, sha512.New)
}

// GenerateSalt returns a fresh cryptographically random salt.
func GenerateSalt() ([]byte, error) {
	return common.MakeRandByteArray(SaltLength)
}

// Verify recomputes the digest for the presented password and compares it to
// the stored digest in constant time.
func Verify(password, salt, digest []byte) bool {
	candidate := Hash(password, salt)
	defer common.WipeByteArray(candidate)
	return subtle.ConstantTimeCompare(candidate, digest) == 1
}

// VerifyEncoded verifies a presented password against the Base64-encoded salt
// and digest stored on a user record.
func VerifyEncoded(password []byte, encodedSalt, encodedDigest string) (bool, error) {
	salt, err := base64.StdEncoding.DecodeString(encodedSalt)
	if err != nil {
		return false, fmt.Errorf("error decoding salt: %w", err)
	}
	digest, err := base64.StdEncoding.DecodeString(encodedDigest)
	if err != nil {
		return false, fmt.Errorf("error decoding digest: %w", err)
	}
	return Verify(password, salt, digest), nil
}

// EncodeCredential generates a fresh salt, derives the digest for the given
// password, and returns both Base64-encoded for storage.
func EncodeCredential(password []byte) (encodedSalt, encodedDigest string, err error) {
	salt, err := GenerateSalt()
	if err != nil {
		return "", "", err
	}
	digest := Hash(password, salt)
	defer common.WipeByteArray(digest)
	return base64.StdEncoding.EncodeToString(salt), base64.StdEncoding.EncodeToString(digest), nil
}
