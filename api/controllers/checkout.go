package controllers

import (
	"net/http"

	"github.com/luckyegg/storefront-backend/api/middleware"
	"github.com/luckyegg/storefront-backend/api/responses"
	"github.com/luckyegg/storefront-backend/api/validators"
	"github.com/luckyegg/storefront-backend/internal/checkout"
	pkgerrors "github.com/luckyegg/storefront-backend/pkg/errors"
	"github.com/luckyegg/storefront-backend/pkg/logger"
)

// Checkout turns the visitor's cart into an order.
func Checkout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := middleware.CartTokenFromContext(r.Context())
		if !ok || token == "" {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "cart token required"))
			return
		}

		var input checkout.Input
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Submit(r.Context(), token, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
