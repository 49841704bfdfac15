package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/dfameublement/catalogue-backend/internal/cart"
	"github.com/dfameublement/catalogue-backend/pkg/logger"
)

// CartTokenHeader carries the anonymous cart identity between the
// storefront and the API. The token is opaque to the client.
const CartTokenHeader = "X-Cart-Token"

type cartTokenKey struct{}

// CartToken resolves the caller's cart token, minting a fresh one when the
// request carries none or a malformed one. Only tokens this service minted
// (UUIDs) are accepted, so arbitrary header values cannot seed container
// registry entries. The resolved token is always echoed back so the
// storefront can persist it.
func CartToken(manager *cart.Manager, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(CartTokenHeader)
			if _, err := uuid.Parse(token); err != nil {
				token = manager.NewToken()
			}

			w.Header().Set(CartTokenHeader, token)

			ctx := context.WithValue(r.Context(), cartTokenKey{}, token)
			if logg != nil {
				ctx = logg.WithCartToken(ctx, token)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CartTokenFromContext returns the token resolved by CartToken, or "" when
// the middleware did not run.
func CartTokenFromContext(ctx context.Context) string {
	if token, ok := ctx.Value(cartTokenKey{}).(string); ok {
		return token
	}
	return ""
}
