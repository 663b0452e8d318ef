package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cawebsite-backend/internal/auth"
)

func testJWTManager() *auth.Manager {
	return &auth.Manager{
		Secret: []byte("test-secret"),
		TTL:    time.Hour,
		Issuer: "cawebsite-backend",
	}
}

func protectedHandler(t *testing.T, wantPrincipal bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := PrincipalFromContext(r.Context())
		if ok != wantPrincipal {
			t.Fatalf("principal presence = %v, want %v", ok, wantPrincipal)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthRejectsMissingToken(t *testing.T) {
	handler := Auth(testJWTManager())(protectedHandler(t, true))
	req := httptest.NewRequest(http.MethodPost, "/admin", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthRejectsBadToken(t *testing.T) {
	handler := Auth(testJWTManager())(protectedHandler(t, true))
	req := httptest.NewRequest(http.MethodPost, "/admin", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	expired := &auth.Manager{Secret: []byte("test-secret"), TTL: -time.Minute, Issuer: "cawebsite-backend"}
	token, err := expired.NewToken("id1", "admin@example.com")
	if err != nil {
		t.Fatalf("NewToken error: %v", err)
	}

	handler := Auth(testJWTManager())(protectedHandler(t, true))
	req := httptest.NewRequest(http.MethodPost, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthAcceptsValidToken(t *testing.T) {
	m := testJWTManager()
	token, err := m.NewToken("id1", "admin@example.com")
	if err != nil {
		t.Fatalf("NewToken error: %v", err)
	}

	handler := Auth(m)(protectedHandler(t, true))
	req := httptest.NewRequest(http.MethodPost, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestOptionalAuthIgnoresSpoofedHeader(t *testing.T) {
	handler := OptionalAuth(testJWTManager())(protectedHandler(t, false))
	req := httptest.NewRequest(http.MethodGet, "/careers", nil)
	req.Header.Set("Authorization", "Bearer spoofed")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestOptionalAuthAttachesPrincipal(t *testing.T) {
	m := testJWTManager()
	token, err := m.NewToken("id1", "admin@example.com")
	if err != nil {
		t.Fatalf("NewToken error: %v", err)
	}

	handler := OptionalAuth(m)(protectedHandler(t, true))
	req := httptest.NewRequest(http.MethodGet, "/careers", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
