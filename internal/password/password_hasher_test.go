package password

import "testing"

func TestHashAndCompare(t *testing.T) {
	hasher := NewBcryptHasher(4) // minimum cost keeps the test fast

	hash, err := hasher.Hash("secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "secret123" {
		t.Fatal("hash must not equal the plain password")
	}

	if err := hasher.Compare(hash, "secret123"); err != nil {
		t.Fatalf("expected match, got %v", err)
	}
	if err := hasher.Compare(hash, "wrong"); err == nil {
		t.Fatal("expected mismatch error")
	}
}

func TestHashRejectsEmptyPassword(t *testing.T) {
	hasher := NewBcryptHasher(4)
	if _, err := hasher.Hash(""); err == nil {
		t.Fatal("expected error for empty password")
	}
}
