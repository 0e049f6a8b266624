package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/catalog-api/internal/store"
)

// MockRecordStore implements store.RecordStore for testing.
// Each method delegates to its Fn field when set; otherwise it returns the
// zero value and a nil error.
type MockRecordStore[T any] struct {
	ListFn   func(ctx context.Context) ([]T, error)
	GetFn    func(ctx context.Context, id int) (T, error)
	CreateFn func(ctx context.Context, build func(id int) T) (T, error)
	UpdateFn func(ctx context.Context, id int, mutate func(T) T) (T, error)
	DeleteFn func(ctx context.Context, id int) error
	ExistsFn func(ctx context.Context) (bool, error)

	mu    sync.Mutex
	calls []string
}

var _ store.RecordStore[struct{}] = (*MockRecordStore[struct{}])(nil)

func (m *MockRecordStore[T]) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

// Calls returns the names of the methods invoked so far, in order.
func (m *MockRecordStore[T]) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// List implements store.RecordStore
func (m *MockRecordStore[T]) List(ctx context.Context) ([]T, error) {
	m.record("List")
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

// Get implements store.RecordStore
func (m *MockRecordStore[T]) Get(ctx context.Context, id int) (T, error) {
	m.record("Get")
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	var zero T
	return zero, nil
}

// Create implements store.RecordStore
func (m *MockRecordStore[T]) Create(ctx context.Context, build func(id int) T) (T, error) {
	m.record("Create")
	if m.CreateFn != nil {
		return m.CreateFn(ctx, build)
	}
	return build(1), nil
}

// Update implements store.RecordStore
func (m *MockRecordStore[T]) Update(ctx context.Context, id int, mutate func(T) T) (T, error) {
	m.record("Update")
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, mutate)
	}
	var zero T
	return mutate(zero), nil
}

// Delete implements store.RecordStore
func (m *MockRecordStore[T]) Delete(ctx context.Context, id int) error {
	m.record("Delete")
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

// Exists implements store.RecordStore
func (m *MockRecordStore[T]) Exists(ctx context.Context) (bool, error) {
	m.record("Exists")
	if m.ExistsFn != nil {
		return m.ExistsFn(ctx)
	}
	return false, nil
}
