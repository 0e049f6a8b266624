// Package blob provides the storage backends that hold record files.
//
// A record file is always read and written whole, so the abstraction is a
// flat name -> bytes store with atomic replacement semantics.
package blob

import (
	"context"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations return an error that satisfies errors.Is(err, ErrNotFound).
var ErrNotFound = os.ErrNotExist

// Store reads and replaces whole blobs by name.
type Store interface {
	// Get returns the full contents of the named blob.
	// Returns ErrNotFound if the blob does not exist.
	Get(ctx context.Context, name string) ([]byte, error)

	// Put replaces the named blob with data. A reader never observes a
	// partially written blob: either the old or the new contents.
	Put(ctx context.Context, name string, data []byte) error
}
