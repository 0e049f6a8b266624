package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/phrazzld/catalog-api/internal/csvtable"
	"github.com/phrazzld/catalog-api/internal/platform/blob"
	"golang.org/x/sync/singleflight"
)

// IDPolicy selects how a new record's id is chosen.
type IDPolicy string

const (
	// IDPolicyLength assigns len(collection)+1. After a delete this can
	// hand out an id that is still in use.
	IDPolicyLength IDPolicy = "length"
	// IDPolicyMax assigns max(existing ids)+1.
	IDPolicyMax IDPolicy = "max"
)

// Options tune collection behaviour.
type Options struct {
	IDPolicy IDPolicy
	// SerializeWrites runs create/update/delete one at a time. Without it
	// two concurrent writes may both start from the same collection and the
	// later persist silently drops the earlier change.
	SerializeWrites bool
	Logger          *slog.Logger
}

// Schema binds a record type to its file layout and identity.
type Schema[T any] struct {
	// Entity names the record type in errors and logs.
	Entity string
	Table  csvtable.Schema[T]
	ID     func(T) int
	// NotFound is returned (wrapped) when no record has the requested id.
	NotFound error
}

// RecordStore is the set of record operations a collection offers.
type RecordStore[T any] interface {
	// List returns every record in insertion order.
	List(ctx context.Context) ([]T, error)

	// Get returns the first record with the given id.
	// Returns the schema's NotFound error if there is none.
	Get(ctx context.Context, id int) (T, error)

	// Create assigns the next id, passes it to build, appends the result and
	// persists the collection.
	Create(ctx context.Context, build func(id int) T) (T, error)

	// Update applies mutate to the record with the given id and persists
	// the collection. Returns the schema's NotFound error if there is none.
	Update(ctx context.Context, id int, mutate func(T) T) (T, error)

	// Delete removes the record with the given id and persists the collection.
	// Remaining ids are not renumbered.
	Delete(ctx context.Context, id int) error

	// Exists reports whether the collection holds at least one record.
	Exists(ctx context.Context) (bool, error)
}

// Collection is a CSV-backed RecordStore with a lazily loaded cache.
type Collection[T any] struct {
	schema Schema[T]
	blobs  blob.Store
	file   string
	opts   Options
	logger *slog.Logger

	writeMu sync.Mutex
	// persistMu holds the file write and the cache swap together; the cache
	// always matches the last file written.
	persistMu sync.Mutex
	loads     singleflight.Group

	mu     sync.RWMutex
	cache  []T
	loaded bool
}

var _ RecordStore[struct{}] = (*Collection[struct{}])(nil)

// NewCollection creates a collection stored as file in blobs. Nothing is
// read until the first operation.
func NewCollection[T any](schema Schema[T], blobs blob.Store, file string, opts Options) *Collection[T] {
	if opts.IDPolicy == "" {
		opts.IDPolicy = IDPolicyLength
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Collection[T]{
		schema: schema,
		blobs:  blobs,
		file:   file,
		opts:   opts,
		logger: logger.With(
			slog.String("component", "store"),
			slog.String("entity", schema.Entity),
		),
	}
}

// Load returns the cached collection, reading the record file on first use.
// Concurrent first loads share a single read, which is not tied to any one
// caller's context. A caller whose context ends stops waiting and gets the
// context error; the shared read carries on for the others. The returned
// slice is a copy.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	if records, ok := c.cached(); ok {
		return records, nil
	}

	shared := context.WithoutCancel(ctx)
	ch := c.loads.DoChan(c.file, func() (interface{}, error) {
		if records, ok := c.cached(); ok {
			return records, nil
		}

		records, err := c.read(shared)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		// A persist that finished while we were reading wins.
		if !c.loaded {
			c.cache = records
			c.loaded = true
		}
		return slices.Clone(c.cache), nil
	})

	select {
	case <-ctx.Done():
		return nil, NewStoreError(c.schema.Entity, "load", "wait for record file",
			fmt.Errorf("%w: %w", ErrStorageRead, ctx.Err()))
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return slices.Clone(res.Val.([]T)), nil
	}
}

func (c *Collection[T]) cached() ([]T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.loaded {
		return nil, false
	}
	return slices.Clone(c.cache), true
}

func (c *Collection[T]) read(ctx context.Context) ([]T, error) {
	data, err := c.blobs.Get(ctx, c.file)
	if errors.Is(err, blob.ErrNotFound) {
		c.logger.Debug("record file missing, starting empty", slog.String("file", c.file))
		return []T{}, nil
	}
	if err != nil {
		return nil, NewStoreError(c.schema.Entity, "load", "read record file",
			fmt.Errorf("%w: %w", ErrStorageRead, err))
	}

	records, err := c.schema.Table.Unmarshal(data)
	if err != nil {
		return nil, NewStoreError(c.schema.Entity, "load", "parse record file",
			fmt.Errorf("%w: %w", ErrStorageRead, err))
	}

	c.logger.Debug("record file loaded",
		slog.String("file", c.file),
		slog.Int("records", len(records)))
	return records, nil
}

// Persist overwrites the record file with records and, on success, makes
// them the cached collection. On failure the cache is untouched.
func (c *Collection[T]) Persist(ctx context.Context, records []T) error {
	data, err := c.schema.Table.Marshal(records)
	if err != nil {
		return NewStoreError(c.schema.Entity, "persist", "encode record file",
			fmt.Errorf("%w: %w", ErrStorageWrite, err))
	}

	c.persistMu.Lock()
	defer c.persistMu.Unlock()

	if err := c.blobs.Put(ctx, c.file, data); err != nil {
		return NewStoreError(c.schema.Entity, "persist", "write record file",
			fmt.Errorf("%w: %w", ErrStorageWrite, err))
	}

	c.mu.Lock()
	c.cache = slices.Clone(records)
	c.loaded = true
	c.mu.Unlock()

	c.logger.Debug("record file written",
		slog.String("file", c.file),
		slog.Int("records", len(records)))
	return nil
}

// List implements RecordStore.
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	return c.Load(ctx)
}

// Get implements RecordStore.
func (c *Collection[T]) Get(ctx context.Context, id int) (T, error) {
	var zero T

	records, err := c.Load(ctx)
	if err != nil {
		return zero, err
	}

	i := c.indexOf(records, id)
	if i < 0 {
		return zero, c.notFound(id)
	}
	return records[i], nil
}

// Create implements RecordStore.
func (c *Collection[T]) Create(ctx context.Context, build func(id int) T) (T, error) {
	var zero T
	defer c.lockWrites()()

	records, err := c.Load(ctx)
	if err != nil {
		return zero, err
	}

	rec := build(c.nextID(records))
	records = append(records, rec)

	if err := c.Persist(ctx, records); err != nil {
		return zero, err
	}
	return rec, nil
}

// Update implements RecordStore. The cached record is never modified in
// place; the mutated copy only becomes visible once persisted.
func (c *Collection[T]) Update(ctx context.Context, id int, mutate func(T) T) (T, error) {
	var zero T
	defer c.lockWrites()()

	records, err := c.Load(ctx)
	if err != nil {
		return zero, err
	}

	i := c.indexOf(records, id)
	if i < 0 {
		return zero, c.notFound(id)
	}
	records[i] = mutate(records[i])

	if err := c.Persist(ctx, records); err != nil {
		return zero, err
	}
	return records[i], nil
}

// Delete implements RecordStore.
func (c *Collection[T]) Delete(ctx context.Context, id int) error {
	defer c.lockWrites()()

	records, err := c.Load(ctx)
	if err != nil {
		return err
	}

	i := c.indexOf(records, id)
	if i < 0 {
		return c.notFound(id)
	}
	records = slices.Delete(records, i, i+1)

	return c.Persist(ctx, records)
}

// Exists implements RecordStore.
func (c *Collection[T]) Exists(ctx context.Context) (bool, error) {
	records, err := c.Load(ctx)
	if err != nil {
		return false, err
	}
	return len(records) > 0, nil
}

func (c *Collection[T]) lockWrites() func() {
	if !c.opts.SerializeWrites {
		return func() {}
	}
	c.writeMu.Lock()
	return c.writeMu.Unlock
}

func (c *Collection[T]) nextID(records []T) int {
	if c.opts.IDPolicy == IDPolicyMax {
		highest := 0
		for _, r := range records {
			highest = max(highest, c.schema.ID(r))
		}
		return highest + 1
	}
	return len(records) + 1
}

func (c *Collection[T]) indexOf(records []T, id int) int {
	return slices.IndexFunc(records, func(r T) bool {
		return c.schema.ID(r) == id
	})
}

func (c *Collection[T]) notFound(id int) error {
	if c.schema.NotFound != nil {
		return fmt.Errorf("%w: id %d", c.schema.NotFound, id)
	}
	return fmt.Errorf("%w: %s id %d", ErrNotFound, c.schema.Entity, id)
}
