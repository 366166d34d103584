// Package dealership holds the car dealership domain: its entities, the
// repository contract they are stored behind and the CRUD services over them.
package dealership

import (
	"context"
	"errors"
)

// ErrNotFound indicates no entity with the requested id exists.
var ErrNotFound = errors.New("not found")

// Entity is implemented by every stored record. T is the record type itself.
type Entity[T any] interface {
	// EntityID returns the record's identifier.
	EntityID() string
	// WithID returns a copy carrying id.
	WithID(id string) T
	// Replace returns the receiver with every caller-mutable field taken
	// from in. The identifier is kept from the receiver.
	Replace(in T) T
}

// Repository defines behavior for persisting one entity kind.
type Repository[T Entity[T]] interface {
	Create(ctx context.Context, v T) error
	Get(ctx context.Context, id string) (T, error)
	List(ctx context.Context) ([]T, error)
	Update(ctx context.Context, v T) error
	// Modify applies fn to the record with id and stores the result, all
	// under one write lock.
	Modify(ctx context.Context, id string, fn func(T) T) (T, error)
	// Delete removes the record with id and returns it.
	Delete(ctx context.Context, id string) (T, error)
	// Find returns the first record, in insertion order, matching match.
	Find(ctx context.Context, match func(T) bool) (T, bool, error)
}

// Store is the set of collections backing one API process.
type Store struct {
	Users      Repository[User]
	Brands     Repository[Brand]
	Categories Repository[Category]
	Cars       Repository[Car]
	Orders     Repository[Order]
	OrderItems Repository[OrderItem]
}
