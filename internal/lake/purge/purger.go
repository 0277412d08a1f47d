package purge

import (
	"context"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/arvind-menon/laketable-drop-partition/interfaces"
	"github.com/arvind-menon/laketable-drop-partition/internal/lake/constants"
	"github.com/arvind-menon/laketable-drop-partition/internal/lake/middleware"
	"github.com/arvind-menon/laketable-drop-partition/internal/lake/models"
)

// Purger deletes partition directories through a bounded worker pool.
// Deletion is best-effort: one failing directory never halts the
// remaining ones, and results are collected per path.
type Purger struct {
	backend     interfaces.StoragePurger
	parallelism int
	middleware  *middleware.Middleware
}

func NewPurger(backend interfaces.StoragePurger, parallelism int, mw *middleware.Middleware) *Purger {
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
		if parallelism > constants.DefaultPurgeParallelism {
			parallelism = constants.DefaultPurgeParallelism
		}
	}
	return &Purger{
		backend:     backend,
		parallelism: parallelism,
		middleware:  mw,
	}
}

type pathOutcome struct {
	path models.PartitionPath
	err  error
}

// Run deletes every partition directory under basePath and reports which
// paths succeeded and which failed. Absent directories count as succeeded,
// so a partial purge can be retried with the same path set.
func (p *Purger) Run(ctx context.Context, basePath string, paths []models.PartitionPath) models.PurgeResult {
	jobs := make(chan models.PartitionPath)
	outcomes := make(chan pathOutcome)

	workers := p.parallelism
	if workers > len(paths) {
		workers = len(paths)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				err := p.backend.DeleteRecursive(ctx, joinPath(basePath, string(path)))
				outcomes <- pathOutcome{path: path, err: err}
			}
		}()
	}

	var collect sync.WaitGroup
	collect.Add(1)
	result := models.PurgeResult{}
	go func() {
		defer collect.Done()
		for outcome := range outcomes {
			if outcome.err != nil {
				p.middleware.LogError("Failed to purge partition directory "+string(outcome.path), outcome.err)
				result.Failed = append(result.Failed, outcome.path)
				continue
			}
			result.Succeeded = append(result.Succeeded, outcome.path)
		}
	}()

	for _, path := range paths {
		jobs <- path
	}
	close(jobs)
	wg.Wait()
	close(outcomes)
	collect.Wait()

	sortPaths(result.Succeeded)
	sortPaths(result.Failed)
	return result
}

func joinPath(base, rel string) string {
	return strings.TrimRight(base, "/") + "/" + rel
}

func sortPaths(paths []models.PartitionPath) {
	sort.Slice(paths, func(i, j int) bool { return paths[i] < paths[j] })
}
