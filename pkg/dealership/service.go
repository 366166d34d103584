package dealership

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"castromotors/pkg/logger"
)

// initializer is implemented by entities that set server-owned fields on
// creation.
type initializer[T any] interface {
	Init() T
}

// Service offers list/get/create/update/delete over one entity kind.
type Service[T Entity[T]] struct {
	kind string
	repo Repository[T]
	log  *logger.Logger
	// afterDelete, when set, runs on every record Delete removed.
	afterDelete func(ctx context.Context, v T) error
}

// NewService returns a Service over repo. kind names the entity in logs.
func NewService[T Entity[T]](kind string, repo Repository[T], log *logger.Logger) *Service[T] {
	return &Service[T]{kind: kind, repo: repo, log: log}
}

// List returns every record in insertion order.
func (s *Service[T]) List(ctx context.Context) ([]T, error) {
	return s.repo.List(ctx)
}

// Get returns the record with id or ErrNotFound.
func (s *Service[T]) Get(ctx context.Context, id string) (T, error) {
	return s.repo.Get(ctx, id)
}

// Create stores in under a freshly generated id, discarding any id the
// caller supplied.
func (s *Service[T]) Create(ctx context.Context, in T) (T, error) {
	v := in.WithID(uuid.NewString())
	if i, ok := any(v).(initializer[T]); ok {
		v = i.Init()
	}
	if err := s.repo.Create(ctx, v); err != nil {
		var zero T
		return zero, fmt.Errorf("create %s: %w", s.kind, err)
	}
	s.log.Debug(ctx, "created", "kind", s.kind, "id", v.EntityID())
	return v, nil
}

// Update overwrites every mutable field of the record with id from in.
// The read and the write happen under the repository's write lock.
func (s *Service[T]) Update(ctx context.Context, id string, in T) error {
	if _, err := s.repo.Modify(ctx, id, func(cur T) T { return cur.Replace(in) }); err != nil {
		return err
	}
	s.log.Debug(ctx, "updated", "kind", s.kind, "id", id)
	return nil
}

// Delete removes the record with id.
func (s *Service[T]) Delete(ctx context.Context, id string) error {
	v, err := s.repo.Delete(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return fmt.Errorf("delete %s: %w", s.kind, err)
		}
		return err
	}
	if s.afterDelete != nil {
		if err := s.afterDelete(ctx, v); err != nil {
			return err
		}
	}
	s.log.Debug(ctx, "deleted", "kind", s.kind, "id", id)
	return nil
}

// Services bundles the CRUD service of each entity kind.
type Services struct {
	Users      *Service[User]
	Brands     *Service[Brand]
	Categories *Service[Category]
	Cars       *Service[Car]
	Orders     *Service[Order]
	OrderItems *Service[OrderItem]
}

// NewServices builds the six services over store.
func NewServices(store *Store, log *logger.Logger) *Services {
	items := NewService("order item", store.OrderItems, log)
	items.afterDelete = func(ctx context.Context, it OrderItem) error {
		return DetachOrderItem(ctx, store.Orders, it)
	}
	return &Services{
		Users:      NewService("user", store.Users, log),
		Brands:     NewService("brand", store.Brands, log),
		Categories: NewService("category", store.Categories, log),
		Cars:       NewService("car", store.Cars, log),
		Orders:     NewService("order", store.Orders, log),
		OrderItems: items,
	}
}
