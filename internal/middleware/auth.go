package middleware

import (
	"context"
	"net/http"
	"strings"

	"cawebsite-backend/internal/auth"
	"cawebsite-backend/internal/transport"
)

type principalKey struct{}

// Principal is the decoded admin identity attached to authenticated requests.
type Principal struct {
	AdminID string
	Email   string
}

// Auth rejects any request without a valid bearer token. Missing, malformed,
// expired and badly signed tokens all get the same 401.
func Auth(manager *auth.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if manager == nil {
				transport.WriteError(w, http.StatusServiceUnavailable, "admin auth not configured", nil)
				return
			}

			claims, ok := parseBearer(r, manager)
			if !ok {
				transport.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
				return
			}

			ctx := withPrincipal(r.Context(), Principal{AdminID: claims.AdminID, Email: claims.Email})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth attaches a principal when a valid bearer token is presented
// and otherwise lets the request through unauthenticated. A bogus token is
// treated as no token; it never unlocks anything.
func OptionalAuth(manager *auth.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if manager != nil {
				if claims, ok := parseBearer(r, manager); ok {
					ctx := withPrincipal(r.Context(), Principal{AdminID: claims.AdminID, Email: claims.Email})
					r = r.WithContext(ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func parseBearer(r *http.Request, manager *auth.Manager) (*auth.Claims, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return nil, false
	}
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return nil, false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, false
	}
	claims, err := manager.Parse(token)
	if err != nil {
		return nil, false
	}
	return claims, true
}

func withPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	if v := ctx.Value(principalKey{}); v != nil {
		if p, ok := v.(Principal); ok {
			return p, true
		}
	}
	return Principal{}, false
}
