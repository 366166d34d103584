package dealership

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

// DetachOrderItem drops item from the item list embedded in its order. An
// order that no longer exists is ignored.
func DetachOrderItem(ctx context.Context, orders Repository[Order], item OrderItem) error {
	_, err := orders.Modify(ctx, item.OrderID, func(o Order) Order {
		o.OrderItems = slices.DeleteFunc(slices.Clone(o.OrderItems), func(it OrderItem) bool {
			return it.ID == item.ID
		})
		return o
	})
	if err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("detach order item: %w", err)
	}
	return nil
}
