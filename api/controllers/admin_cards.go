package controllers

import (
	"net/http"

	"github.com/luckyegg/storefront-backend/api/responses"
	"github.com/luckyegg/storefront-backend/api/validators"
	"github.com/luckyegg/storefront-backend/internal/cards"
	"github.com/luckyegg/storefront-backend/pkg/logger"
)

// AdminListCards returns every card, active or not.
func AdminListCards(svc cards.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// AdminGetCard returns one card regardless of active state.
func AdminGetCard(svc cards.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "cardID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		card, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, card)
	}
}

// AdminCreateCard adds a card to the catalog.
func AdminCreateCard(svc cards.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input cards.CreateCardInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		card, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, card)
	}
}

// AdminUpdateCard applies a partial update to a card.
func AdminUpdateCard(svc cards.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "cardID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var input cards.UpdateCardInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		card, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, card)
	}
}

// AdminDeleteCard removes a card from the catalog.
func AdminDeleteCard(svc cards.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "cardID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
