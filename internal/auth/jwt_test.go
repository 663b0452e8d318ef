package auth

import (
	"testing"
	"time"
)

func testManager(ttl time.Duration) *Manager {
	return &Manager{
		Secret: []byte("test-secret"),
		TTL:    ttl,
		Issuer: "cawebsite-backend",
	}
}

func TestTokenRoundTrip(t *testing.T) {
	m := testManager(time.Hour)
	token, err := m.NewToken("abc123", "admin@example.com")
	if err != nil {
		t.Fatalf("NewToken error: %v", err)
	}

	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if claims.AdminID != "abc123" {
		t.Fatalf("unexpected admin id: %q", claims.AdminID)
	}
	if claims.Email != "admin@example.com" {
		t.Fatalf("unexpected email: %q", claims.Email)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	m := testManager(-time.Minute)
	token, err := m.NewToken("abc123", "admin@example.com")
	if err != nil {
		t.Fatalf("NewToken error: %v", err)
	}
	if _, err := m.Parse(token); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestWrongSecretRejected(t *testing.T) {
	m := testManager(time.Hour)
	token, err := m.NewToken("abc123", "admin@example.com")
	if err != nil {
		t.Fatalf("NewToken error: %v", err)
	}

	other := &Manager{Secret: []byte("other-secret"), TTL: time.Hour, Issuer: "cawebsite-backend"}
	if _, err := other.Parse(token); err == nil {
		t.Fatalf("expected token signed with another secret to be rejected")
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	m := testManager(time.Hour)
	if _, err := m.Parse("not-a-token"); err == nil {
		t.Fatalf("expected garbage token to be rejected")
	}
}
