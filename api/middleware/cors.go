package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/luckyegg/storefront-backend/pkg/config"
)

// CORS allows the storefront origins to call the API from the browser.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", "X-Cart-Token"},
		ExposedHeaders:   []string{"X-Request-ID", "X-Cart-Token"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
