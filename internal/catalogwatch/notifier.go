package catalogwatch

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/luckyegg/storefront-backend/pkg/logger"
)

// CardsCollection is the channel suffix catalog events publish under.
const CardsCollection = "cards"

// Event is one catalog mutation broadcast to storefront listeners. Clients
// treat it as a refresh trigger and re-fetch the catalog.
type Event struct {
	Collection string    `json:"collection"`
	Action     string    `json:"action"`
	CardID     uuid.UUID `json:"card_id"`
	At         time.Time `json:"at"`
}

type publisher interface {
	Publish(ctx context.Context, channel string, payload string) error
	ChannelKey(collection string) string
}

// Notifier publishes catalog change events over redis pub/sub.
type Notifier struct {
	pub  publisher
	logg *logger.Logger
}

func NewNotifier(pub publisher, logg *logger.Logger) *Notifier {
	return &Notifier{pub: pub, logg: logg}
}

// CatalogChanged fans the mutation out to subscribers. Failures are logged
// and swallowed; a missed refresh must never fail the write that caused it.
func (n *Notifier) CatalogChanged(ctx context.Context, action string, cardID uuid.UUID) {
	event := Event{
		Collection: CardsCollection,
		Action:     action,
		CardID:     cardID,
		At:         time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		n.logg.Error(ctx, "encoding catalog event", err)
		return
	}
	if err := n.pub.Publish(ctx, n.pub.ChannelKey(CardsCollection), string(payload)); err != nil {
		n.logg.Error(ctx, "publishing catalog event", err)
	}
}
