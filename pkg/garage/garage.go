// Package garage implements the shopping-cart style workflow over a user's
// open order: look it up (creating it when absent), add cars, remove items
// and check out.
package garage

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"castromotors/pkg/dealership"
	"castromotors/pkg/logger"
)

// ErrItemNotFound is returned by RemoveItem for an unknown order item id.
var ErrItemNotFound = fmt.Errorf("order item %w", dealership.ErrNotFound)

// CheckoutResult tells whether Checkout finalized an order.
type CheckoutResult struct {
	Finalized bool
	OrderID   string
}

// Service runs the garage workflow against the order and order item
// collections of a store.
type Service struct {
	// mu serializes operations since each touches two collections.
	mu     sync.Mutex
	orders dealership.Repository[dealership.Order]
	items  dealership.Repository[dealership.OrderItem]
	log    *logger.Logger
}

// NewService returns a garage Service over store.
func NewService(store *dealership.Store, log *logger.Logger) *Service {
	return &Service{orders: store.Orders, items: store.OrderItems, log: log}
}

// Garage returns the user's open order, creating and storing an empty one
// when the user has none.
func (s *Service) Garage(ctx context.Context, userID string) (dealership.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.openOrder(ctx, userID)
}

// AddCar puts carID in the user's open order unless it is already there.
func (s *Service) AddCar(ctx context.Context, userID, carID string) (dealership.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, err := s.openOrder(ctx, userID)
	if err != nil {
		return dealership.Order{}, err
	}
	if o.HasCar(carID) {
		return o, nil
	}

	item := dealership.OrderItem{ID: uuid.NewString(), OrderID: o.ID, CarID: carID}
	if err := s.items.Create(ctx, item); err != nil {
		return dealership.Order{}, fmt.Errorf("store order item: %w", err)
	}
	o, err = s.orders.Modify(ctx, o.ID, func(cur dealership.Order) dealership.Order {
		cur.OrderItems = append(slices.Clone(cur.OrderItems), item)
		return cur
	})
	if err != nil {
		return dealership.Order{}, fmt.Errorf("update order: %w", err)
	}
	s.log.Info(ctx, "car added to garage", "user_id", userID, "order_id", o.ID, "car_id", carID, "order_item_id", item.ID)
	return o, nil
}

// RemoveItem deletes the order item with id from whichever order holds it.
// The lookup is not scoped to a user: any caller holding an item id may
// remove it. DELETE /api/orderitems/{id} detaches the item the same way.
func (s *Service) RemoveItem(ctx context.Context, orderItemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.items.Delete(ctx, orderItemID)
	if err != nil {
		if errors.Is(err, dealership.ErrNotFound) {
			return ErrItemNotFound
		}
		return fmt.Errorf("delete order item: %w", err)
	}
	if err := dealership.DetachOrderItem(ctx, s.orders, item); err != nil {
		return err
	}
	s.log.Info(ctx, "order item removed from garage", "order_item_id", item.ID, "order_id", item.OrderID)
	return nil
}

// Checkout finalizes the user's open order when it holds at least one item.
// A missing or empty open order is not an error; Finalized reports which
// case applied.
func (s *Service) Checkout(ctx context.Context, userID string) (CheckoutResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok, err := s.findOpen(ctx, userID)
	if err != nil {
		return CheckoutResult{}, err
	}
	if !ok || len(o.OrderItems) == 0 {
		s.log.Info(ctx, "checkout skipped", "user_id", userID, "has_open_order", ok)
		return CheckoutResult{OrderID: o.ID}, nil
	}

	o, err = s.orders.Modify(ctx, o.ID, func(cur dealership.Order) dealership.Order {
		cur.IsFinalized = true
		return cur
	})
	if err != nil {
		return CheckoutResult{}, fmt.Errorf("finalize order: %w", err)
	}
	s.log.Info(ctx, "order finalized", "user_id", userID, "order_id", o.ID, "items", len(o.OrderItems))
	return CheckoutResult{Finalized: true, OrderID: o.ID}, nil
}

func (s *Service) findOpen(ctx context.Context, userID string) (dealership.Order, bool, error) {
	o, ok, err := s.orders.Find(ctx, func(o dealership.Order) bool {
		return o.UserID == userID && !o.IsFinalized
	})
	if err != nil {
		return dealership.Order{}, false, fmt.Errorf("find open order: %w", err)
	}
	return o, ok, nil
}

func (s *Service) openOrder(ctx context.Context, userID string) (dealership.Order, error) {
	o, ok, err := s.findOpen(ctx, userID)
	if err != nil || ok {
		return o, err
	}

	o = dealership.Order{
		ID:         uuid.NewString(),
		UserID:     userID,
		OrderItems: []dealership.OrderItem{},
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return dealership.Order{}, fmt.Errorf("create open order: %w", err)
	}
	s.log.Info(ctx, "garage opened", "user_id", userID, "order_id", o.ID)
	return o, nil
}
