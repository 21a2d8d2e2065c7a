package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/luckyegg/storefront-backend/pkg/logger"
)

const cartTokenHeader = "X-Cart-Token"

// CartToken resolves the visitor's cart token from the request header,
// minting a fresh one for first-time visitors, and echoes it back so the
// storefront can persist it.
func CartToken(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(cartTokenHeader)
			if _, err := uuid.Parse(token); err != nil {
				token = uuid.NewString()
			}

			w.Header().Set(cartTokenHeader, token)

			ctx := WithCartToken(r.Context(), token)
			if logg != nil {
				ctx = logg.WithCartToken(ctx, token)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
