package writer

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/arvind-menon/laketable-drop-partition/internal/lake/constants"
	"github.com/arvind-menon/laketable-drop-partition/internal/lake/models"
)

// Commit is one entry of the in-memory commit log.
type Commit struct {
	CommitID  string
	Operation string
	Paths     []models.PartitionPath
}

// InMemoryExecutor is a write engine that keeps table metadata in memory.
// It honors the commit contract: a delete-partition commit removes all
// requested partitions from the partition listing atomically, or fails
// leaving the listing untouched. It serves both the write boundary and the
// metadata-listing boundary, so resolution always sees the same metadata a
// commit mutates. Used by tests and by the CLI's dry-run wiring.
type InMemoryExecutor struct {
	mu         sync.Mutex
	partitions map[string]map[models.PartitionPath]struct{}
	commits    []Commit
	failWith   error
}

func NewInMemoryExecutor() *InMemoryExecutor {
	return &InMemoryExecutor{
		partitions: make(map[string]map[models.PartitionPath]struct{}),
	}
}

// AddPartition registers an existing partition of a table.
func (e *InMemoryExecutor) AddPartition(tableName string, path models.PartitionPath) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.partitions[tableName] == nil {
		e.partitions[tableName] = make(map[models.PartitionPath]struct{})
	}
	e.partitions[tableName][path] = struct{}{}
}

// FailNextWith makes every subsequent Execute call fail with err without
// touching metadata. Pass nil to restore normal operation.
func (e *InMemoryExecutor) FailNextWith(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.failWith = err
}

func (e *InMemoryExecutor) Execute(_ context.Context, cfg models.WriteConfig) (models.CommitResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.failWith != nil {
		return models.CommitResult{}, e.failWith
	}
	if cfg.Operation != constants.OperationDeletePartition {
		return models.CommitResult{}, fmt.Errorf("unsupported operation %q", cfg.Operation)
	}

	var paths []models.PartitionPath
	for _, p := range strings.Split(cfg.PartitionsToDelete, ",") {
		if p != "" {
			paths = append(paths, models.PartitionPath(p))
		}
	}

	existing := e.partitions[cfg.TableName]
	for _, p := range paths {
		delete(existing, p)
	}

	commit := Commit{
		CommitID:  uuid.NewString(),
		Operation: cfg.Operation,
		Paths:     paths,
	}
	e.commits = append(e.commits, commit)
	return models.CommitResult{CommitID: commit.CommitID}, nil
}

func (e *InMemoryExecutor) ListPartitions(_ context.Context, table models.TableDescriptor, pathPrefix string) ([]models.PartitionPath, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var listed []models.PartitionPath
	for p := range e.partitions[table.Name] {
		if pathPrefix == "" || strings.HasPrefix(string(p), pathPrefix) {
			listed = append(listed, p)
		}
	}
	sort.Slice(listed, func(i, j int) bool { return listed[i] < listed[j] })
	return listed, nil
}

// Commits returns the commit log in order.
func (e *InMemoryExecutor) Commits() []Commit {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Commit(nil), e.commits...)
}
