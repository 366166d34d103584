package dealership_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"castromotors/pkg/dealership"
	"castromotors/pkg/dealership/memory"
	"castromotors/pkg/logger"
)

func newServices() *dealership.Services {
	return dealership.NewServices(memory.NewStore(), logger.NewNop())
}

func TestCreateAssignsFreshID(t *testing.T) {
	ctx := context.Background()
	svc := newServices()

	created, err := svc.Brands.Create(ctx, dealership.Brand{ID: "caller-id", Name: "Toyota", CountryOfOrigin: "Japan", FoundedYear: 1937})
	require.NoError(t, err)

	assert.NotEqual(t, "caller-id", created.ID)
	_, err = uuid.Parse(created.ID)
	assert.NoError(t, err)

	got, err := svc.Brands.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Equal(t, "Toyota", got.Name)

	_, err = svc.Brands.Get(ctx, "caller-id")
	assert.ErrorIs(t, err, dealership.ErrNotFound)
}

func TestCreateIssuesCarRowVersion(t *testing.T) {
	ctx := context.Background()
	svc := newServices()

	car, err := svc.Cars.Create(ctx, dealership.Car{Model: "Corolla", RowVersion: []byte("client")})
	require.NoError(t, err)
	assert.Len(t, car.RowVersion, 16)
	assert.NotEqual(t, []byte("client"), car.RowVersion)
}

func TestListInsertionOrder(t *testing.T) {
	ctx := context.Background()
	svc := newServices()

	var ids []string
	for _, name := range []string{"alice", "bob", "carol"} {
		u, err := svc.Users.Create(ctx, dealership.User{Username: name})
		require.NoError(t, err)
		ids = append(ids, u.ID)
	}

	list, err := svc.Users.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, u := range list {
		assert.Equal(t, ids[i], u.ID)
	}
}

func TestUnknownIDIsNotFound(t *testing.T) {
	ctx := context.Background()
	svc := newServices()
	id := uuid.NewString()

	_, err := svc.Categories.Get(ctx, id)
	assert.ErrorIs(t, err, dealership.ErrNotFound)
	assert.ErrorIs(t, svc.Categories.Update(ctx, id, dealership.Category{Name: "x"}), dealership.ErrNotFound)
	assert.ErrorIs(t, svc.Categories.Delete(ctx, id), dealership.ErrNotFound)
}

func TestUpdateReplacesEveryField(t *testing.T) {
	ctx := context.Background()
	svc := newServices()

	car, err := svc.Cars.Create(ctx, dealership.Car{
		Model:       "Corolla",
		Year:        2024,
		Color:       "red",
		Price:       decimal.NewFromInt(25000),
		Description: "compact",
		BrandID:     "b1",
		CategoryID:  "c1",
		ImagePath:   "/img/corolla.png",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Cars.Update(ctx, car.ID, dealership.Car{ID: "ignored", Model: "Camry"}))

	got, err := svc.Cars.Get(ctx, car.ID)
	require.NoError(t, err)
	assert.Equal(t, car.ID, got.ID)
	assert.Equal(t, "Camry", got.Model)
	assert.Zero(t, got.Year)
	assert.Empty(t, got.Color)
	assert.True(t, got.Price.IsZero())
	assert.Empty(t, got.Description)
	assert.Empty(t, got.BrandID)
	assert.Empty(t, got.CategoryID)
	assert.Empty(t, got.ImagePath)
	assert.Len(t, got.RowVersion, 16)
	assert.NotEqual(t, car.RowVersion, got.RowVersion)

	_, err = svc.Cars.Get(ctx, "ignored")
	assert.ErrorIs(t, err, dealership.ErrNotFound)
}

func TestUpdateNeverReopensOrder(t *testing.T) {
	ctx := context.Background()
	svc := newServices()

	o, err := svc.Orders.Create(ctx, dealership.Order{UserID: "u1", IsFinalized: true})
	require.NoError(t, err)

	require.NoError(t, svc.Orders.Update(ctx, o.ID, dealership.Order{UserID: "u2", IsFinalized: false}))

	got, err := svc.Orders.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.True(t, got.IsFinalized)
	assert.Equal(t, "u2", got.UserID)

	open, err := svc.Orders.Create(ctx, dealership.Order{UserID: "u3"})
	require.NoError(t, err)
	require.NoError(t, svc.Orders.Update(ctx, open.ID, dealership.Order{UserID: "u3", IsFinalized: true}))
	got, _ = svc.Orders.Get(ctx, open.ID)
	assert.True(t, got.IsFinalized)
}

func TestDeleteRemovesExactlyOne(t *testing.T) {
	ctx := context.Background()
	svc := newServices()

	a, _ := svc.OrderItems.Create(ctx, dealership.OrderItem{CarID: "car-a"})
	b, _ := svc.OrderItems.Create(ctx, dealership.OrderItem{CarID: "car-b"})
	c, _ := svc.OrderItems.Create(ctx, dealership.OrderItem{CarID: "car-c"})

	require.NoError(t, svc.OrderItems.Delete(ctx, b.ID))

	list, err := svc.OrderItems.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []dealership.OrderItem{a, c}, list)

	assert.ErrorIs(t, svc.OrderItems.Delete(ctx, b.ID), dealership.ErrNotFound)
	list, _ = svc.OrderItems.List(ctx)
	assert.Len(t, list, 2)
}

func TestDanglingForeignKeysAccepted(t *testing.T) {
	ctx := context.Background()
	svc := newServices()

	car, err := svc.Cars.Create(ctx, dealership.Car{Model: "Ghost", BrandID: uuid.NewString(), CategoryID: uuid.NewString()})
	require.NoError(t, err)
	_, err = svc.Cars.Get(ctx, car.ID)
	assert.NoError(t, err)
}

func TestCarPriceIsJSONNumber(t *testing.T) {
	data, err := json.Marshal(dealership.Car{Model: "Corolla", Price: decimal.RequireFromString("25999.90")})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"price":25999.9`)

	var car dealership.Car
	require.NoError(t, json.Unmarshal([]byte(`{"price":"19999.99"}`), &car))
	assert.True(t, decimal.RequireFromString("19999.99").Equal(car.Price))
}

func TestUpdateKeepsFinalizedOrderUnderConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	svc := newServices()

	o, err := svc.Orders.Create(ctx, dealership.Order{UserID: "u1"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				svc.Orders.Update(ctx, o.ID, dealership.Order{UserID: "u1"})
			}
		}()
	}
	require.NoError(t, svc.Orders.Update(ctx, o.ID, dealership.Order{UserID: "u1", IsFinalized: true}))
	wg.Wait()

	got, err := svc.Orders.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.True(t, got.IsFinalized)
}

func TestDeleteOrderItemDetachesFromOrder(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := dealership.NewServices(store, logger.NewNop())

	keep := dealership.OrderItem{ID: "keep", OrderID: "o1", CarID: "car-a"}
	drop := dealership.OrderItem{ID: "drop", OrderID: "o1", CarID: "car-b"}
	require.NoError(t, store.OrderItems.Create(ctx, keep))
	require.NoError(t, store.OrderItems.Create(ctx, drop))
	require.NoError(t, store.Orders.Create(ctx, dealership.Order{ID: "o1", OrderItems: []dealership.OrderItem{keep, drop}}))

	require.NoError(t, svc.OrderItems.Delete(ctx, "drop"))

	o, err := svc.Orders.Get(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, []dealership.OrderItem{keep}, o.OrderItems)
	assert.False(t, o.HasCar("car-b"))

	// an item whose order is gone still deletes cleanly
	require.NoError(t, store.OrderItems.Create(ctx, dealership.OrderItem{ID: "orphan", OrderID: "missing"}))
	assert.NoError(t, svc.OrderItems.Delete(ctx, "orphan"))
}
