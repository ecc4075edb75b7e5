package password

import (
	"bytes"
	"encoding/base64"
	"testing"
)

func TestHash_Deterministic(t *testing.T) {
	t.Parallel()

	salt := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	a := Hash([]byte("CorrectHorse1"), salt)
	b := Hash([]byte("CorrectHorse1"), salt)

	if len(a) != KeyLength {
		t.Fatalf("digest length = %d, want %d", len(a), KeyLength)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("same (password, salt) must yield the same digest")
	}
}

func TestHash_DifferentSalts(t *testing.T) {
	t.Parallel()

	a := Hash([]byte("CorrectHorse1"), []byte{1, 2, 3, 4})
	b := Hash([]byte("CorrectHorse1"), []byte{4, 3, 2, 1})
	if bytes.Equal(a, b) {
		t.Fatalf("different salts must yield different digests")
	}
}

func TestVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	salt, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt: %v", err)
	}
	if len(salt) != SaltLength {
		t.Fatalf("salt length = %d, want %d", len(salt), SaltLength)
	}

	digest := Hash([]byte("CorrectHorse1"), salt)
	if !Verify([]byte("CorrectHorse1"), salt, digest) {
		t.Fatalf("Verify must succeed for the original password")
	}
}

func TestVerify_SingleCharacterMutationFails(t *testing.T) {
	t.Parallel()

	salt := []byte{9, 8, 7, 6, 5, 4, 3, 2}
	original := []byte("CorrectHorse1")
	digest := Hash(original, salt)

	for i := range original {
		mutated := append([]byte(nil), original...)
		mutated[i] ^= 0x01
		if Verify(mutated, salt, digest) {
			t.Fatalf("Verify must fail for mutation at index %d", i)
		}
	}
}

func TestEncodeCredential_VerifyEncoded(t *testing.T) {
	t.Parallel()

	encSalt, encDigest, err := EncodeCredential([]byte("CorrectHorse1"))
	if err != nil {
		t.Fatalf("EncodeCredential: %v", err)
	}

	if _, err := base64.StdEncoding.DecodeString(encSalt); err != nil {
		t.Fatalf("salt is not valid base64: %v", err)
	}
	if _, err := base64.StdEncoding.DecodeString(encDigest); err != nil {
		t.Fatalf("digest is not valid base64: %v", err)
	}

	ok, err := VerifyEncoded([]byte("CorrectHorse1"), encSalt, encDigest)
	if err != nil {
		t.Fatalf("VerifyEncoded: %v", err)
	}
	if !ok {
		t.Fatalf("VerifyEncoded must succeed for the original password")
	}

	ok, err = VerifyEncoded([]byte("WrongHorse22"), encSalt, encDigest)
	if err != nil {
		t.Fatalf("VerifyEncoded: %v", err)
	}
	if ok {
		t.Fatalf("VerifyEncoded must fail for a wrong password")
	}
}

func TestVerifyEncoded_BadEncoding(t *testing.T) {
	t.Parallel()

	if _, err := VerifyEncoded([]byte("x"), "!!!", "AAAA"); err == nil {
		t.Fatalf("expected error for invalid salt encoding")
	}
	if _, err := VerifyEncoded([]byte("x"), "AAAA", "!!!"); err == nil {
		t.Fatalf("expected error for invalid digest encoding")
	}
}
