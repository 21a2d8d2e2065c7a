package catalogwatch

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luckyegg/storefront-backend/pkg/logger"
)

type stubBus struct {
	channel  string
	payloads []string
	failPub  error
	incoming chan string
}

func (s *stubBus) Publish(_ context.Context, channel string, payload string) error {
	if s.failPub != nil {
		return s.failPub
	}
	s.channel = channel
	s.payloads = append(s.payloads, payload)
	return nil
}

func (s *stubBus) Subscribe(context.Context, string) (<-chan string, error) {
	return s.incoming, nil
}

func (s *stubBus) ChannelKey(collection string) string {
	return "le:changes:" + collection
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestNotifierPublishesEvent(t *testing.T) {
	bus := &stubBus{}
	notifier := NewNotifier(bus, testLogger())
	cardID := uuid.New()

	notifier.CatalogChanged(context.Background(), "updated", cardID)

	require.Len(t, bus.payloads, 1)
	assert.Equal(t, "le:changes:cards", bus.channel)

	var event Event
	require.NoError(t, json.Unmarshal([]byte(bus.payloads[0]), &event))
	assert.Equal(t, CardsCollection, event.Collection)
	assert.Equal(t, "updated", event.Action)
	assert.Equal(t, cardID, event.CardID)
	assert.False(t, event.At.IsZero())
}

func TestNotifierSwallowsPublishFailure(t *testing.T) {
	bus := &stubBus{failPub: errors.New("redis down")}
	notifier := NewNotifier(bus, testLogger())

	notifier.CatalogChanged(context.Background(), "created", uuid.New())
	assert.Empty(t, bus.payloads)
}

func TestWatcherDecodesAndSkipsGarbage(t *testing.T) {
	incoming := make(chan string, 3)
	bus := &stubBus{incoming: incoming}
	watcher := NewWatcher(bus, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := watcher.Watch(ctx)
	require.NoError(t, err)

	cardID := uuid.New()
	good, err := json.Marshal(Event{Collection: CardsCollection, Action: "deleted", CardID: cardID})
	require.NoError(t, err)

	incoming <- "{garbage"
	incoming <- string(good)
	close(incoming)

	event, ok := <-events
	require.True(t, ok)
	assert.Equal(t, "deleted", event.Action)
	assert.Equal(t, cardID, event.CardID)

	_, ok = <-events
	assert.False(t, ok, "channel should close when the stream ends")
}
