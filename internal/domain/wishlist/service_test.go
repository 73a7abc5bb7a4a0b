// internal/domain/wishlist/service_test.go
package wishlist

import (
	"context"
	"testing"

	"github.com/ro7arthub/storefront-backend/internal/domain/cart"
	"github.com/ro7arthub/storefront-backend/internal/pkg/keystore"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() (*Service, *cart.Store) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	store := keystore.NewMemoryStore()
	carts := cart.NewStore(store, logger)
	return NewService(store, carts), carts
}

func TestAddAndList(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "s1", Item{ID: "1", Name: "Brush Set", Price: 150}))
	require.NoError(t, svc.Add(ctx, "s1", Item{ID: "2", Name: "Canvas Roll", Price: 200}))

	items, err := svc.Items(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].ID)
}

func TestAddDeduplicates(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "s1", Item{ID: "1", Name: "Brush Set", Price: 150}))
	require.NoError(t, svc.Add(ctx, "s1", Item{ID: "1", Name: "Brush Set", Price: 150}))

	items, err := svc.Items(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestAddRejectsInvalidItem(t *testing.T) {
	svc, _ := newTestService()

	err := svc.Add(context.Background(), "s1", Item{ID: "", Name: "Brush Set"})
	assert.ErrorIs(t, err, cart.ErrInvalidInput)
}

func TestRemove(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "s1", Item{ID: "1", Name: "Brush Set", Price: 150}))
	require.NoError(t, svc.Remove(ctx, "s1", "1"))

	items, err := svc.Items(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, items)

	// Removing an absent id is a no-op
	require.NoError(t, svc.Remove(ctx, "s1", "1"))
}

func TestMoveToCart(t *testing.T) {
	svc, carts := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "s1", Item{ID: "1", Name: "Brush Set", Price: 150}))
	require.NoError(t, svc.MoveToCart(ctx, "s1", "1"))

	// The item left the wishlist and entered the cart with quantity 1
	items, err := svc.Items(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, items)

	cartItems, err := carts.Items(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, cartItems, 1)
	assert.Equal(t, "1", cartItems[0].ID)
	assert.Equal(t, 1, cartItems[0].Quantity)
	assert.Equal(t, int64(150), cartItems[0].UnitPrice)
}

func TestMoveToCartMissingItem(t *testing.T) {
	svc, _ := newTestService()

	err := svc.MoveToCart(context.Background(), "s1", "missing")
	assert.ErrorIs(t, err, cart.ErrNotFound)
}
