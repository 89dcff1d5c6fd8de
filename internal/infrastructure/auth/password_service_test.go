package auth

import (
	"strings"
	"testing"
)

func TestPasswordServiceImpl_HashAndVerify(t *testing.T) {
	svc := NewPasswordService()

	hash, err := svc.Hash("securepassword123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "securepassword123" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("expected a bcrypt hash, got %q", hash)
	}

	if !svc.Verify(hash, "securepassword123") {
		t.Error("correct password must verify")
	}
	if svc.Verify(hash, "wrongpassword") {
		t.Error("wrong password must not verify")
	}
}

func TestPasswordServiceImpl_HashIsSalted(t *testing.T) {
	svc := NewPasswordService()

	a, err := svc.Hash("same-password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := svc.Hash("same-password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a == b {
		t.Error("two hashes of one password must differ by salt")
	}
	if !svc.Verify(a, "same-password") || !svc.Verify(b, "same-password") {
		t.Error("both hashes must verify the original password")
	}
}

func TestPasswordServiceImpl_Verify_GarbageHash(t *testing.T) {
	svc := NewPasswordService()

	if svc.Verify("not-a-bcrypt-hash", "password") {
		t.Error("garbage hash must never verify")
	}
}
