package lakeerrors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arvind-menon/laketable-drop-partition/internal/lake/models"
)

// Sentinel errors raised during validation, before any mutation.
var (
	// ErrNotPartitionedTable is returned when the target table has no
	// partition fields.
	ErrNotPartitionedTable = errors.New("table is not partitioned")

	// ErrEmptyPartitionSpec is returned when a spec names no fields at
	// all; an empty spec would match every partition of the table.
	ErrEmptyPartitionSpec = errors.New("partition spec is empty")

	// ErrConflictingPartitionValue is returned when two keys of one raw
	// spec resolve to the same partition field with different values.
	ErrConflictingPartitionValue = errors.New("conflicting values for partition field")
)

// UnknownPartitionColumnError reports a spec key that matches none of the
// table's partition fields.
type UnknownPartitionColumnError struct {
	Column string
	Table  string
}

func (e *UnknownPartitionColumnError) Error() string {
	return fmt.Sprintf("partition column %q does not exist in table %q", e.Column, e.Table)
}

// AmbiguousPartitionSpecError reports a partial spec that is not a leading
// prefix of the partition schema order. Resolving such a spec by string
// concatenation can produce paths that exist for no real partition, so it
// is rejected instead.
type AmbiguousPartitionSpecError struct {
	SpecFields   []string
	SchemaFields []string
}

func (e *AmbiguousPartitionSpecError) Error() string {
	return fmt.Sprintf("partial partition spec (%s) is not a leading prefix of the partition schema (%s)",
		strings.Join(e.SpecFields, ","), strings.Join(e.SchemaFields, ","))
}

// NoSuchPartitionError reports a spec that resolved to zero existing
// partitions while ifExists was not set.
type NoSuchPartitionError struct {
	Spec  string
	Table string
}

func (e *NoSuchPartitionError) Error() string {
	return fmt.Sprintf("partition (%s) does not exist in table %q", e.Spec, e.Table)
}

// InvalidTableConfigurationError reports table metadata missing a field the
// delete-partition write requires.
type InvalidTableConfigurationError struct {
	Table  string
	Reason string
}

func (e *InvalidTableConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration for table %q: %s", e.Table, e.Reason)
}

// WriteFailureError wraps a failure of the write engine's commit step. The
// commit is atomic, so no metadata was changed.
type WriteFailureError struct {
	Cause error
}

func (e *WriteFailureError) Error() string {
	return fmt.Sprintf("delete-partition commit failed: %v", e.Cause)
}

func (e *WriteFailureError) Unwrap() error { return e.Cause }

// PurgeError reports partitions whose directories could not be physically
// removed. The metadata commit already succeeded; only the purge of the
// listed paths needs to be retried.
type PurgeError struct {
	FailedPaths []models.PartitionPath
}

func (e *PurgeError) Error() string {
	paths := make([]string, len(e.FailedPaths))
	for i, p := range e.FailedPaths {
		paths[i] = string(p)
	}
	return fmt.Sprintf("failed to purge %d partition(s): %s", len(paths), strings.Join(paths, ", "))
}

// CatalogRefreshWarning reports that the post-commit catalog refresh
// failed. The drop operation itself is still successful; the catalog cache
// may serve stale partition listings until refreshed.
type CatalogRefreshWarning struct {
	Cause error
}

func (e *CatalogRefreshWarning) Error() string {
	return fmt.Sprintf("catalog refresh failed, cached metadata may be stale: %v", e.Cause)
}

func (e *CatalogRefreshWarning) Unwrap() error { return e.Cause }
