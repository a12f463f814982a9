package bcrypt

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare(t *testing.T) {
	b := NewWithCost(bcrypt.MinCost)

	hash, err := b.HashSecret("a1b2c3")
	if err != nil {
		t.Fatalf("HashSecret() error = %v", err)
	}
	if hash == "a1b2c3" {
		t.Fatal("HashSecret() returned the plain secret")
	}
	if err := b.CompareSecret(hash, "a1b2c3"); err != nil {
		t.Errorf("CompareSecret() with right secret = %v", err)
	}
	if err := b.CompareSecret(hash, "wrong"); err == nil {
		t.Error("CompareSecret() with wrong secret should fail")
	}
}
