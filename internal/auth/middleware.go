package auth

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey struct{}

var ctxKeyClaims = ctxKey{}

func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, ctxKeyClaims, c)
}

func ClaimsFromContext(ctx context.Context) *Claims {
	if v := ctx.Value(ctxKeyClaims); v != nil {
		if c, ok := v.(*Claims); ok {
			return c
		}
	}
	return nil
}

func JWTMiddleware(a *AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if !strings.HasPrefix(h, "Bearer ") {
				http.Error(w, "missing bearer", http.StatusUnauthorized)
				return
			}
			c, err := a.Parse(strings.TrimPrefix(h, "Bearer "))
			if err != nil || c == nil {
				http.Error(w, "bad token", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), c)))
		})
	}
}
