package security

import "testing"

func TestHashAndVerify(t *testing.T) {
	hash, err := HashPassword("rahasia-desa")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "rahasia-desa" {
		t.Fatal("hash must not equal plaintext")
	}
	if !VerifyPassword(hash, "rahasia-desa") {
		t.Fatal("expected password to verify")
	}
	if VerifyPassword(hash, "wrong") {
		t.Fatal("wrong password must not verify")
	}
}

func TestHashRequiresPassword(t *testing.T) {
	if _, err := HashPassword(""); err == nil {
		t.Fatal("expected error for empty password")
	}
}
