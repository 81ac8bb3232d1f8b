package middleware

import (
	"context"
	"net/http"

	"github.com/akoval/minesweep/internal/config"
)

type ctxKey int

const ctxPlayerClaims ctxKey = iota

// Auth parses the player's auth cookies and, when valid, stores the
// claims on the request context. Requests without valid cookies pass
// through anonymously with the cookies cleared.
func Auth(cookies *config.Cookies) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := cookies.ParsePlayerClaims(r)
			if err != nil {
				cookies.Clear(w)
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), ctxPlayerClaims, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PlayerClaims extracts the claims stored by Auth, if any.
func PlayerClaims(ctx context.Context) (*config.PlayerClaims, bool) {
	claims, ok := ctx.Value(ctxPlayerClaims).(*config.PlayerClaims)
	return claims, ok
}
