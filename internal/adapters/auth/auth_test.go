package auth

import (
	"testing"
	"time"

	"github.com/patitas-quito/patitas/internal/core/domain"
)

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(4)

	hash, err := h.Hash("secreto")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "secreto" {
		t.Fatal("hash must not equal the password")
	}
	if err := h.Compare(hash, "secreto"); err != nil {
		t.Errorf("expected match, got %v", err)
	}
	if err := h.Compare(hash, "otro"); err == nil {
		t.Error("expected mismatch")
	}
}

func TestBcryptHasher_CostOutOfRange(t *testing.T) {
	if h := NewBcryptHasher(0); h.cost != 10 {
		t.Errorf("expected default cost 10, got %d", h.cost)
	}
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer, err := NewTokenIssuer("s3cr3t", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	token, err := issuer.Issue(&domain.User{ID: "u1", Email: "ana@example.com", Name: "Ana"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	id, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id != "u1" {
		t.Errorf("expected subject u1, got %s", id)
	}
}

func TestTokenIssuer_Expired(t *testing.T) {
	issuer, _ := NewTokenIssuer("s3cr3t", time.Minute)
	issuedAt := time.Now().Add(-time.Hour)
	issuer.now = func() time.Time { return issuedAt }

	token, err := issuer.Issue(&domain.User{ID: "u1"})
	if err != nil {
		t.Fatal(err)
	}

	issuer.now = time.Now
	if _, err := issuer.Verify(token); err == nil {
		t.Error("expected expired token to be rejected")
	}
}

func TestTokenIssuer_WrongKey(t *testing.T) {
	a, _ := NewTokenIssuer("one", time.Hour)
	b, _ := NewTokenIssuer("two", time.Hour)

	token, err := a.Issue(&domain.User{ID: "u1"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.Verify(token); err == nil {
		t.Error("expected signature mismatch")
	}
	if _, err := b.Verify("not.a.token"); err == nil {
		t.Error("expected garbage to be rejected")
	}
}

func TestNewTokenIssuer_Invalid(t *testing.T) {
	if _, err := NewTokenIssuer("", time.Hour); err == nil {
		t.Error("expected error for empty secret")
	}
	if _, err := NewTokenIssuer("x", 0); err == nil {
		t.Error("expected error for zero ttl")
	}
}
