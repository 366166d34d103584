// Package memory implements an in-memory dealership repository.
package memory

import (
	"context"
	"slices"
	"sync"

	"castromotors/pkg/dealership"
)

// Repository provides an in-memory implementation of dealership.Repository.
// Records are kept in insertion order.
type Repository[T dealership.Entity[T]] struct {
	mu      sync.RWMutex
	records []T
}

// New creates a new in-memory repository.
func New[T dealership.Entity[T]]() *Repository[T] {
	return &Repository[T]{}
}

// NewStore returns a Store whose six collections live in memory.
func NewStore() *dealership.Store {
	return &dealership.Store{
		Users:      New[dealership.User](),
		Brands:     New[dealership.Brand](),
		Categories: New[dealership.Category](),
		Cars:       New[dealership.Car](),
		Orders:     New[dealership.Order](),
		OrderItems: New[dealership.OrderItem](),
	}
}

// Create appends the record.
func (r *Repository[T]) Create(ctx context.Context, v T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, v)
	return nil
}

// Get retrieves a record by ID.
func (r *Repository[T]) Get(ctx context.Context, id string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.indexOf(id)
	if i < 0 {
		var zero T
		return zero, dealership.ErrNotFound
	}
	return r.records[i], nil
}

// List returns all records.
func (r *Repository[T]) List(ctx context.Context) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]T, len(r.records))
	copy(out, r.records)
	return out, nil
}

// Update replaces the record with the same ID, keeping its position.
func (r *Repository[T]) Update(ctx context.Context, v T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(v.EntityID())
	if i < 0 {
		return dealership.ErrNotFound
	}
	r.records[i] = v
	return nil
}

// Modify replaces the record with ID by fn's result. The ID is kept even
// if fn changes it.
func (r *Repository[T]) Modify(ctx context.Context, id string, fn func(T) T) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		var zero T
		return zero, dealership.ErrNotFound
	}
	v := fn(r.records[i]).WithID(id)
	r.records[i] = v
	return v, nil
}

// Delete removes a record by ID and returns it.
func (r *Repository[T]) Delete(ctx context.Context, id string) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		var zero T
		return zero, dealership.ErrNotFound
	}
	v := r.records[i]
	r.records = slices.Delete(r.records, i, i+1)
	return v, nil
}

// Find returns the first record matching match.
func (r *Repository[T]) Find(ctx context.Context, match func(T) bool) (T, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, v := range r.records {
		if match(v) {
			return v, true, nil
		}
	}
	var zero T
	return zero, false, nil
}

func (r *Repository[T]) indexOf(id string) int {
	return slices.IndexFunc(r.records, func(v T) bool { return v.EntityID() == id })
}
