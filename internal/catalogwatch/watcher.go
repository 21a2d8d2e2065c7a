package catalogwatch

import (
	"context"
	"encoding/json"

	"github.com/luckyegg/storefront-backend/pkg/logger"
)

type subscriber interface {
	Subscribe(ctx context.Context, channel string) (<-chan string, error)
	ChannelKey(collection string) string
}

// Watcher turns the redis pub/sub stream into typed catalog events.
type Watcher struct {
	sub  subscriber
	logg *logger.Logger
}

func NewWatcher(sub subscriber, logg *logger.Logger) *Watcher {
	return &Watcher{sub: sub, logg: logg}
}

// Watch subscribes to catalog changes until the context is canceled.
// Payloads that fail to decode are logged and skipped.
func (w *Watcher) Watch(ctx context.Context) (<-chan Event, error) {
	raw, err := w.sub.Subscribe(ctx, w.sub.ChannelKey(CardsCollection))
	if err != nil {
		return nil, err
	}

	out := make(chan Event)
	go func() {
		defer close(out)
		for payload := range raw {
			var event Event
			if err := json.Unmarshal([]byte(payload), &event); err != nil {
				w.logg.Warn(ctx, "skipping undecodable catalog event")
				continue
			}
			select {
			case out <- event:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
