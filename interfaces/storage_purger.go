package interfaces

import "context"

// StoragePurger removes one directory tree from the underlying storage.
// Deleting an already-absent path must succeed, so a partial purge can be
// retried as-is.
type StoragePurger interface {
	DeleteRecursive(ctx context.Context, path string) error
}
