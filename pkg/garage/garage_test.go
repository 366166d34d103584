package garage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"castromotors/pkg/dealership"
	"castromotors/pkg/dealership/memory"
	"castromotors/pkg/logger"
)

func newGarage(t *testing.T) (*Service, *dealership.Store) {
	t.Helper()
	store := memory.NewStore()
	return NewService(store, logger.NewNop()), store
}

func TestGarageCreatesOpenOrderOnce(t *testing.T) {
	ctx := context.Background()
	svc, store := newGarage(t)

	first, err := svc.Garage(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", first.UserID)
	assert.False(t, first.IsFinalized)
	assert.Empty(t, first.OrderItems)

	second, err := svc.Garage(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	orders, _ := store.Orders.List(ctx)
	assert.Len(t, orders, 1)

	other, err := svc.Garage(ctx, "user-2")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)
}

func TestGarageReusesOrderCreatedElsewhere(t *testing.T) {
	ctx := context.Background()
	svc, store := newGarage(t)
	require.NoError(t, store.Orders.Create(ctx, dealership.Order{ID: "done", UserID: "u", IsFinalized: true}))
	require.NoError(t, store.Orders.Create(ctx, dealership.Order{ID: "open", UserID: "u"}))

	o, err := svc.Garage(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, "open", o.ID)
}

func TestAddCarIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, store := newGarage(t)

	o, err := svc.AddCar(ctx, "user-1", "car-1")
	require.NoError(t, err)
	require.Len(t, o.OrderItems, 1)
	item := o.OrderItems[0]
	assert.Equal(t, "car-1", item.CarID)
	assert.Equal(t, o.ID, item.OrderID)
	assert.NotEmpty(t, item.ID)

	o, err = svc.AddCar(ctx, "user-1", "car-1")
	require.NoError(t, err)
	assert.Len(t, o.OrderItems, 1)

	o, err = svc.AddCar(ctx, "user-1", "car-2")
	require.NoError(t, err)
	assert.Len(t, o.OrderItems, 2)

	items, _ := store.OrderItems.List(ctx)
	assert.Len(t, items, 2)

	stored, err := svc.Garage(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, o, stored)
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()
	svc, store := newGarage(t)

	o, err := svc.AddCar(ctx, "user-1", "car-1")
	require.NoError(t, err)
	o, err = svc.AddCar(ctx, "user-1", "car-2")
	require.NoError(t, err)
	target := o.OrderItems[0]

	// removal is not scoped to the owner
	require.NoError(t, svc.RemoveItem(ctx, target.ID))

	_, err = store.OrderItems.Get(ctx, target.ID)
	assert.ErrorIs(t, err, dealership.ErrNotFound)

	o, err = svc.Garage(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, o.OrderItems, 1)
	assert.Equal(t, "car-2", o.OrderItems[0].CarID)

	err = svc.RemoveItem(ctx, target.ID)
	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.ErrorIs(t, err, dealership.ErrNotFound)
	assert.EqualError(t, err, "order item not found")
}

func TestRemoveItemWhoseOrderIsGone(t *testing.T) {
	ctx := context.Background()
	svc, store := newGarage(t)

	o, err := svc.AddCar(ctx, "user-1", "car-1")
	require.NoError(t, err)
	_, err = store.Orders.Delete(ctx, o.ID)
	require.NoError(t, err)

	assert.NoError(t, svc.RemoveItem(ctx, o.OrderItems[0].ID))
}

func TestCheckout(t *testing.T) {
	ctx := context.Background()
	svc, store := newGarage(t)

	res, err := svc.Checkout(ctx, "nobody")
	require.NoError(t, err)
	assert.False(t, res.Finalized)
	orders, _ := store.Orders.List(ctx)
	assert.Empty(t, orders)

	empty, err := svc.Garage(ctx, "user-1")
	require.NoError(t, err)
	res, err = svc.Checkout(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, res.Finalized)
	got, _ := store.Orders.Get(ctx, empty.ID)
	assert.False(t, got.IsFinalized)

	_, err = svc.AddCar(ctx, "user-1", "car-1")
	require.NoError(t, err)
	res, err = svc.Checkout(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, res.Finalized)
	assert.Equal(t, empty.ID, res.OrderID)
	got, _ = store.Orders.Get(ctx, empty.ID)
	assert.True(t, got.IsFinalized)

	next, err := svc.Garage(ctx, "user-1")
	require.NoError(t, err)
	assert.NotEqual(t, empty.ID, next.ID)
	assert.Empty(t, next.OrderItems)
}
