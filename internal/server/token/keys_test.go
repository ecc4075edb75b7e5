package token

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEncodeAndLoadPrivateKey_RoundTrip(t *testing.T) {
	t.Parallel()

	key, err := GeneratePrivateKey()
	if err != nil {
		t.Fatalf("GeneratePrivateKey: %v", err)
	}

	pemBytes, err := EncodePrivateKey(key)
	if err != nil {
		t.Fatalf("EncodePrivateKey: %v", err)
	}

	path := filepath.Join(t.TempDir(), "signing.pem")
	if err := os.WriteFile(path, pemBytes, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	loaded, err := LoadPrivateKey(path)
	if err != nil {
		t.Fatalf("LoadPrivateKey: %v", err)
	}
	if !loaded.Equal(key) {
		t.Fatalf("loaded key differs from original")
	}
}

func TestLoadPrivateKey_MissingFile(t *testing.T) {
	t.Parallel()

	if _, err := LoadPrivateKey(filepath.Join(t.TempDir(), "absent.pem")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadPrivateKey_GarbageFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "junk.pem")
	if err := os.WriteFile(path, []byte("not a key"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := LoadPrivateKey(path); err == nil {
		t.Fatalf("expected error for garbage key file")
	}
}

func TestKeyID_StablePerKey(t *testing.T) {
	t.Parallel()

	key, err := GeneratePrivateKey()
	if err != nil {
		t.Fatalf("GeneratePrivateKey: %v", err)
	}
	a, err := KeyID(&key.PublicKey)
	if err != nil {
		t.Fatalf("KeyID: %v", err)
	}
	b, err := KeyID(&key.PublicKey)
	if err != nil {
		t.Fatalf("KeyID: %v", err)
	}
	if a == "" || a != b {
		t.Fatalf("key id must be stable and non-empty: %q vs %q", a, b)
	}

	other, err := GeneratePrivateKey()
	if err != nil {
		t.Fatalf("GeneratePrivateKey: %v", err)
	}
	c, err := KeyID(&other.PublicKey)
	if err != nil {
		t.Fatalf("KeyID: %v", err)
	}
	if a == c {
		t.Fatalf("different keys must have different ids")
	}
}
