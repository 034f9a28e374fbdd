package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("hunter22")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "hunter22" {
		t.Fatalf("expected hash to differ from plaintext")
	}
	if !h.Compare(hash, "hunter22") {
		t.Fatalf("expected matching password to compare true")
	}
	if h.Compare(hash, "hunter23") {
		t.Fatalf("expected wrong password to compare false")
	}

	again, err := h.Hash("hunter22")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again == hash {
		t.Fatalf("expected salted hashes to differ")
	}
}

func TestNewPasswordHasher_ClampsCost(t *testing.T) {
	if h := NewPasswordHasher(0); h.Cost != bcrypt.DefaultCost {
		t.Fatalf("expected default cost, got %d", h.Cost)
	}
}
