package cart

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luckyegg/storefront-backend/pkg/logger"
)

func newTestService() (*Service, *MemoryPersistence) {
	persistence := NewMemoryPersistence()
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("error"), Output: io.Discard})
	return NewService(persistence, logg), persistence
}

func TestServiceAddPersistsAcrossLoads(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	card := snapshot("Charizard", "10.00", 5)

	_, err := svc.Add(ctx, "visitor-1", card)
	require.NoError(t, err)

	store, err := svc.Get(ctx, "visitor-1")
	require.NoError(t, err)
	require.Len(t, store.Items, 1)
	assert.Equal(t, 1, store.Items[0].Quantity)
}

func TestServiceTokensAreIsolated(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Add(ctx, "visitor-1", snapshot("A", "1.00", 5))
	require.NoError(t, err)

	store, err := svc.Get(ctx, "visitor-2")
	require.NoError(t, err)
	assert.Empty(t, store.Items)
}

func TestServiceCorruptedPayloadBecomesEmptyCart(t *testing.T) {
	svc, persistence := newTestService()
	ctx := context.Background()

	_, err := svc.Add(ctx, "visitor-1", snapshot("A", "1.00", 5))
	require.NoError(t, err)
	persistence.Corrupt("visitor-1")

	store, err := svc.Get(ctx, "visitor-1")
	require.NoError(t, err)
	assert.Empty(t, store.Items)
}

func TestServiceSetQuantityAndRemoveRoundTrip(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	card := snapshot("Mewtwo", "10.00", 5)

	_, err := svc.Add(ctx, "v", card)
	require.NoError(t, err)

	store, err := svc.SetQuantity(ctx, "v", card.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, store.Count())

	store, err = svc.Remove(ctx, "v", card.ID)
	require.NoError(t, err)
	assert.Empty(t, store.Items)
}

func TestServiceClearAndDrop(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Add(ctx, "v", snapshot("A", "2.00", 2))
	require.NoError(t, err)

	store, err := svc.Clear(ctx, "v")
	require.NoError(t, err)
	assert.Empty(t, store.Items)

	require.NoError(t, svc.Drop(ctx, "v"))

	store, err = svc.Get(ctx, "v")
	require.NoError(t, err)
	assert.Empty(t, store.Items)
}
