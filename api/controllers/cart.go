package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/luckyegg/storefront-backend/api/middleware"
	"github.com/luckyegg/storefront-backend/api/responses"
	"github.com/luckyegg/storefront-backend/api/validators"
	"github.com/luckyegg/storefront-backend/internal/cards"
	"github.com/luckyegg/storefront-backend/internal/cart"
	pkgerrors "github.com/luckyegg/storefront-backend/pkg/errors"
	"github.com/luckyegg/storefront-backend/pkg/logger"
)

type cartView struct {
	Items    []cart.LineItem `json:"items"`
	IsOpen   bool            `json:"is_open"`
	Subtotal string          `json:"subtotal"`
	Count    int             `json:"count"`
}

func viewOf(store *cart.Store) cartView {
	return cartView{
		Items:    store.Items,
		IsOpen:   store.IsOpen,
		Subtotal: store.Subtotal().StringFixed(2),
		Count:    store.Count(),
	}
}

func cartToken(r *http.Request) (string, error) {
	token, ok := middleware.CartTokenFromContext(r.Context())
	if !ok || token == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "cart token required")
	}
	return token, nil
}

// GetCart returns the visitor's current cart.
func GetCart(svc *cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := cartToken(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := svc.Get(r.Context(), token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, viewOf(store))
	}
}

type addCartItemRequest struct {
	CardID uuid.UUID `json:"card_id" validate:"required"`
}

// AddCartItem adds one unit of a card to the cart. The card snapshot comes
// from the live catalog so stale client data cannot inflate stock.
func AddCartItem(svc *cart.Service, catalog cards.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := cartToken(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req addCartItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		card, err := catalog.GetActive(r.Context(), req.CardID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := svc.Add(r.Context(), token, cart.CardSnapshot{
			ID:            card.ID,
			Name:          card.Name,
			Price:         card.Price,
			ImageURL:      card.ImageURL,
			StockQuantity: card.StockQuantity,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, viewOf(store))
	}
}

type setCartQuantityRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

// SetCartItemQuantity sets a line's quantity; zero removes the line.
func SetCartItemQuantity(svc *cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := cartToken(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cardID, err := pathUUID(r, "cardID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req setCartQuantityRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := svc.SetQuantity(r.Context(), token, cardID, req.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, viewOf(store))
	}
}

// RemoveCartItem drops a line from the cart. Removing an absent card is a
// no-op, not an error.
func RemoveCartItem(svc *cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := cartToken(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cardID, err := pathUUID(r, "cardID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := svc.Remove(r.Context(), token, cardID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, viewOf(store))
	}
}

// OpenCart marks the drawer visible in the returned view. Visibility is not
// persisted; only line items are.
func OpenCart(svc *cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := cartToken(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := svc.Open(r.Context(), token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, viewOf(store))
	}
}

// CloseCart hides the drawer in the returned view.
func CloseCart(svc *cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := cartToken(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := svc.Close(r.Context(), token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, viewOf(store))
	}
}

// ToggleCart flips the drawer visibility in the returned view.
func ToggleCart(svc *cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := cartToken(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := svc.Toggle(r.Context(), token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, viewOf(store))
	}
}

// ClearCart empties the cart while keeping the visitor token.
func ClearCart(svc *cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := cartToken(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := svc.Clear(r.Context(), token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, viewOf(store))
	}
}
