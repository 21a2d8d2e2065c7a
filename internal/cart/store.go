package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CardSnapshot is the slice of a catalog card a cart line carries. Stock is
// captured at snapshot time and drives quantity clamping.
type CardSnapshot struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	ImageURL      string          `json:"image_url"`
	StockQuantity int             `json:"stock_quantity"`
}

// LineItem is one card with its selected quantity.
type LineItem struct {
	Card     CardSnapshot `json:"card"`
	Quantity int          `json:"quantity"`
}

// Store holds one visitor's cart. Every mutation clamps quantities to the
// card's known stock, and a clamped quantity of zero or less drops the line.
type Store struct {
	Items  []LineItem `json:"items"`
	IsOpen bool       `json:"is_open"`
}

// NewStore returns an empty, closed cart.
func NewStore() *Store {
	return &Store{Items: []LineItem{}}
}

func clampQuantity(n, stock int) int {
	if n > stock {
		n = stock
	}
	return n
}

func (s *Store) indexOf(cardID uuid.UUID) int {
	for i, item := range s.Items {
		if item.Card.ID == cardID {
			return i
		}
	}
	return -1
}

// Add increments the card's quantity by one, capped at its stock. Adding a
// card with zero stock leaves the cart unchanged. Drawer visibility is never
// touched; only Open, Close, and Toggle move it.
func (s *Store) Add(card CardSnapshot) {
	if i := s.indexOf(card.ID); i >= 0 {
		next := clampQuantity(s.Items[i].Quantity+1, card.StockQuantity)
		if next <= 0 {
			s.Items = append(s.Items[:i], s.Items[i+1:]...)
			return
		}
		s.Items[i].Card = card
		s.Items[i].Quantity = next
		return
	}

	if clampQuantity(1, card.StockQuantity) <= 0 {
		return
	}
	s.Items = append(s.Items, LineItem{Card: card, Quantity: 1})
}

// Remove drops the card's line entirely. Removing an absent card is a no-op.
func (s *Store) Remove(cardID uuid.UUID) {
	if i := s.indexOf(cardID); i >= 0 {
		s.Items = append(s.Items[:i], s.Items[i+1:]...)
	}
}

// SetQuantity sets the card's quantity, clamped to its stock. A requested
// quantity of zero or less removes the line. Setting quantity for an absent
// card is a no-op.
func (s *Store) SetQuantity(cardID uuid.UUID, quantity int) {
	i := s.indexOf(cardID)
	if i < 0 {
		return
	}
	next := clampQuantity(quantity, s.Items[i].Card.StockQuantity)
	if next <= 0 {
		s.Items = append(s.Items[:i], s.Items[i+1:]...)
		return
	}
	s.Items[i].Quantity = next
}

// Clear empties the cart but leaves the drawer state alone.
func (s *Store) Clear() {
	s.Items = []LineItem{}
}

func (s *Store) Open()   { s.IsOpen = true }
func (s *Store) Close()  { s.IsOpen = false }
func (s *Store) Toggle() { s.IsOpen = !s.IsOpen }

// Hydrate replaces the cart's contents with a persisted snapshot, re-applying
// the clamp rules so stale lines cannot exceed current stock.
func (s *Store) Hydrate(items []LineItem) {
	next := make([]LineItem, 0, len(items))
	for _, item := range items {
		q := clampQuantity(item.Quantity, item.Card.StockQuantity)
		if q <= 0 {
			continue
		}
		item.Quantity = q
		next = append(next, item)
	}
	s.Items = next
}

// Subtotal is the sum of price times quantity over all lines.
func (s *Store) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.Items {
		total = total.Add(item.Card.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// Count is the total number of units across all lines.
func (s *Store) Count() int {
	n := 0
	for _, item := range s.Items {
		n += item.Quantity
	}
	return n
}
