// internal/domain/cart/store_test.go
package cart

import (
	"context"
	"testing"
	"time"

	"github.com/ro7arthub/storefront-backend/internal/pkg/keystore"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() *Store {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewStore(keystore.NewMemoryStore(), logger)
}

func TestAddItem(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	items, err := store.AddItem(ctx, "s1", AddItemRequest{
		ID: "1", Name: "Brush Set", UnitPrice: 150, Quantity: 2,
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, int64(300), items[0].Total())
}

func TestAddItemMergesByProductID(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	_, err := store.AddItem(ctx, "s1", AddItemRequest{ID: "1", Name: "Brush Set", UnitPrice: 150, Quantity: 1})
	require.NoError(t, err)
	_, err = store.AddItem(ctx, "s1", AddItemRequest{ID: "2", Name: "Canvas Roll", UnitPrice: 200, Quantity: 1})
	require.NoError(t, err)

	items, err := store.AddItem(ctx, "s1", AddItemRequest{ID: "1", Name: "Brush Set", UnitPrice: 150, Quantity: 3})
	require.NoError(t, err)

	// Same id merges into one line, insertion order preserved
	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].ID)
	assert.Equal(t, 4, items[0].Quantity)
	assert.Equal(t, "2", items[1].ID)
}

func TestAddItemRejectsInvalidInput(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	tests := []AddItemRequest{
		{ID: "", Name: "Brush Set", UnitPrice: 150, Quantity: 1},
		{ID: "1", Name: "", UnitPrice: 150, Quantity: 1},
		{ID: "1", Name: "Brush Set", UnitPrice: 0, Quantity: 1},
		{ID: "1", Name: "Brush Set", UnitPrice: -5, Quantity: 1},
		{ID: "1", Name: "Brush Set", UnitPrice: 150, Quantity: 0},
		{ID: "1", Name: "Brush Set", UnitPrice: 150, Quantity: -1},
	}

	for _, req := range tests {
		_, err := store.AddItem(ctx, "s1", req)
		assert.ErrorIs(t, err, ErrInvalidInput, "request %+v", req)
	}

	// Nothing was persisted by the rejected requests
	count, err := store.ItemCount(ctx, "s1")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestItemCountSumsQuantities(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	count, err := store.ItemCount(ctx, "s1")
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = store.AddItem(ctx, "s1", AddItemRequest{ID: "1", Name: "Brush Set", UnitPrice: 150, Quantity: 2})
	require.NoError(t, err)
	_, err = store.AddItem(ctx, "s1", AddItemRequest{ID: "2", Name: "Canvas Roll", UnitPrice: 200, Quantity: 3})
	require.NoError(t, err)

	count, err = store.ItemCount(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestChangeQuantity(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	_, err := store.AddItem(ctx, "s1", AddItemRequest{ID: "1", Name: "Brush Set", UnitPrice: 150, Quantity: 2})
	require.NoError(t, err)

	require.NoError(t, store.ChangeQuantity(ctx, "s1", "1", 1))

	items, err := store.Items(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 3, items[0].Quantity)

	require.NoError(t, store.ChangeQuantity(ctx, "s1", "1", -2))

	items, err = store.Items(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestChangeQuantityToZeroRemovesItem(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	_, err := store.AddItem(ctx, "s1", AddItemRequest{ID: "1", Name: "Brush Set", UnitPrice: 150, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, store.ChangeQuantity(ctx, "s1", "1", -1))

	items, err := store.Items(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestChangeQuantityMissingItem(t *testing.T) {
	store := newTestStore()

	err := store.ChangeQuantity(context.Background(), "s1", "missing", 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveItem(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	_, err := store.AddItem(ctx, "s1", AddItemRequest{ID: "1", Name: "Brush Set", UnitPrice: 150, Quantity: 1})
	require.NoError(t, err)
	_, err = store.AddItem(ctx, "s1", AddItemRequest{ID: "2", Name: "Canvas Roll", UnitPrice: 200, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, store.RemoveItem(ctx, "s1", "1"))

	items, err := store.Items(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "2", items[0].ID)

	// Removing an absent id is a no-op
	require.NoError(t, store.RemoveItem(ctx, "s1", "1"))
}

func TestClear(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	_, err := store.AddItem(ctx, "s1", AddItemRequest{ID: "1", Name: "Brush Set", UnitPrice: 150, Quantity: 2})
	require.NoError(t, err)

	require.NoError(t, store.Clear(ctx, "s1"))

	items, err := store.Items(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSessionsAreIsolated(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	_, err := store.AddItem(ctx, "s1", AddItemRequest{ID: "1", Name: "Brush Set", UnitPrice: 150, Quantity: 1})
	require.NoError(t, err)

	items, err := store.Items(ctx, "s2")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSubscribersAreNotifiedOnEveryChange(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	var events []Event
	store.Subscribe(func(ev Event) {
		events = append(events, ev)
	})

	_, err := store.AddItem(ctx, "s1", AddItemRequest{ID: "1", Name: "Brush Set", UnitPrice: 150, Quantity: 2})
	require.NoError(t, err)
	require.NoError(t, store.ChangeQuantity(ctx, "s1", "1", 1))
	require.NoError(t, store.Clear(ctx, "s1"))

	require.Len(t, events, 3)
	assert.Equal(t, 2, events[0].ItemCount)
	assert.Equal(t, 3, events[1].ItemCount)
	assert.Equal(t, 0, events[2].ItemCount)
}

func TestSubscriberMayCallBackIntoStore(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	var events []Event
	first := true
	store.Subscribe(func(ev Event) {
		events = append(events, ev)
		if first {
			first = false
			require.NoError(t, store.RemoveItem(ctx, "s1", "1"))
		}
	})

	_, err := store.AddItem(ctx, "s1", AddItemRequest{ID: "1", Name: "Brush Set", UnitPrice: 150, Quantity: 2})
	require.NoError(t, err)

	// The callback removed the item it was notified about
	items, err := store.Items(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, items)

	require.Len(t, events, 2)
	assert.Equal(t, 2, events[0].ItemCount)
	assert.Equal(t, 0, events[1].ItemCount)
}

// watchedMemoryStore is a MemoryStore whose Watch channel is fed by the test,
// standing in for the pub/sub feed a Redis-backed store provides.
type watchedMemoryStore struct {
	*keystore.MemoryStore
	events chan keystore.Event
}

func (s *watchedMemoryStore) Watch(ctx context.Context) (<-chan keystore.Event, error) {
	return s.events, nil
}

func TestWatchInvalidationsReloadsRemoteChanges(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	backing := &watchedMemoryStore{
		MemoryStore: keystore.NewMemoryStore(),
		events:      make(chan keystore.Event),
	}
	local := NewStore(backing, logger)
	remote := NewStore(backing, logger)
	ctx := context.Background()

	received := make(chan Event, 4)
	local.Subscribe(func(ev Event) { received <- ev })

	done := make(chan error, 1)
	go func() { done <- local.WatchInvalidations(ctx) }()

	// Another context writes the cart and its key invalidation arrives
	_, err := remote.AddItem(ctx, "s1", AddItemRequest{ID: "1", Name: "Brush Set", UnitPrice: 150, Quantity: 2})
	require.NoError(t, err)
	backing.events <- keystore.Event{Key: "cart:session:s1"}

	select {
	case ev := <-received:
		assert.Equal(t, "s1", ev.SessionID)
		assert.Equal(t, 2, ev.ItemCount)
		require.Len(t, ev.Items, 1)
		assert.Equal(t, "1", ev.Items[0].ID)
	case <-time.After(time.Second):
		t.Fatal("no notification after remote cart change")
	}

	// Keys outside the cart namespace are skipped, so the next notification
	// must come from the later cart key
	backing.events <- keystore.Event{Key: "promo:session:s1"}
	backing.events <- keystore.Event{Key: "cart:session:s2"}

	select {
	case ev := <-received:
		assert.Equal(t, "s2", ev.SessionID)
		assert.Zero(t, ev.ItemCount)
	case <-time.After(time.Second):
		t.Fatal("no notification after second cart change")
	}

	close(backing.events)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not exit after the feed closed")
	}
}
