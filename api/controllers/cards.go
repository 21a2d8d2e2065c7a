package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/luckyegg/storefront-backend/api/responses"
	"github.com/luckyegg/storefront-backend/internal/cards"
	pkgerrors "github.com/luckyegg/storefront-backend/pkg/errors"
	"github.com/luckyegg/storefront-backend/pkg/logger"
)

// ListCards returns the active catalog, newest pulls first. ?featured=true
// narrows to the featured subset.
func ListCards(svc cards.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListActive(r.Context())
		if r.URL.Query().Get("featured") == "true" {
			list, err = svc.ListFeatured(r.Context())
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// GetCard returns one active card by id.
func GetCard(svc cards.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "cardID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		card, err := svc.GetActive(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, card)
	}
}

func pathUUID(r *http.Request, param string) (uuid.UUID, error) {
	raw := chi.URLParam(r, param)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid id in path")
	}
	return id, nil
}
