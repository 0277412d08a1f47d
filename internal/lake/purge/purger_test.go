package purge

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arvind-menon/laketable-drop-partition/internal/lake/middleware"
	"github.com/arvind-menon/laketable-drop-partition/internal/lake/models"
	"github.com/arvind-menon/laketable-drop-partition/internal/lake/storage"
)

// flakyBackend fails deletion of paths containing a marker substring.
type flakyBackend struct {
	mu      sync.Mutex
	failOn  string
	deleted []string
}

func (f *flakyBackend) DeleteRecursive(_ context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOn != "" && strings.Contains(path, f.failOn) {
		return fmt.Errorf("permission denied: %s", path)
	}
	f.deleted = append(f.deleted, path)
	return nil
}

func makePartitionDirs(t *testing.T, base string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		dir := filepath.Join(base, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "part-0001.parquet"), []byte("data"), 0o644))
	}
}

func TestPurgeDeletesAllDirectories(t *testing.T) {
	base := t.TempDir()
	makePartitionDirs(t, base, "year=2020/month=1", "year=2020/month=2", "year=2021/month=1")

	p := NewPurger(storage.NewLocalStorage(), 2, middleware.NewMiddleware())
	result := p.Run(context.Background(), base, []models.PartitionPath{
		"year=2020/month=1",
		"year=2020/month=2",
	})

	assert.Equal(t, []models.PartitionPath{"year=2020/month=1", "year=2020/month=2"}, result.Succeeded)
	assert.Empty(t, result.Failed)

	assert.NoDirExists(t, filepath.Join(base, "year=2020", "month=1"))
	assert.NoDirExists(t, filepath.Join(base, "year=2020", "month=2"))
	assert.DirExists(t, filepath.Join(base, "year=2021", "month=1"))
}

func TestPurgeIsIdempotent(t *testing.T) {
	base := t.TempDir()
	makePartitionDirs(t, base, "year=2020/month=1")

	p := NewPurger(storage.NewLocalStorage(), 1, middleware.NewMiddleware())
	paths := []models.PartitionPath{"year=2020/month=1"}

	first := p.Run(context.Background(), base, paths)
	require.Empty(t, first.Failed)

	// The directory is gone; the second run must still report success.
	second := p.Run(context.Background(), base, paths)
	assert.Equal(t, paths, second.Succeeded)
	assert.Empty(t, second.Failed)
}

func TestPurgeIsolatesFailures(t *testing.T) {
	backend := &flakyBackend{failOn: "month=2"}

	p := NewPurger(backend, 3, middleware.NewMiddleware())
	result := p.Run(context.Background(), "/data/events", []models.PartitionPath{
		"year=2020/month=1",
		"year=2020/month=2",
		"year=2020/month=3",
	})

	assert.Equal(t, []models.PartitionPath{"year=2020/month=1", "year=2020/month=3"}, result.Succeeded)
	assert.Equal(t, []models.PartitionPath{"year=2020/month=2"}, result.Failed)
}

func TestPurgeDefaultParallelism(t *testing.T) {
	backend := &flakyBackend{}

	p := NewPurger(backend, 0, middleware.NewMiddleware())
	result := p.Run(context.Background(), "/data/events", []models.PartitionPath{"year=2020/month=1"})

	assert.Len(t, result.Succeeded, 1)
}

func TestPurgeEmptyPathSet(t *testing.T) {
	p := NewPurger(storage.NewLocalStorage(), 4, middleware.NewMiddleware())
	result := p.Run(context.Background(), t.TempDir(), nil)

	assert.Empty(t, result.Succeeded)
	assert.Empty(t, result.Failed)
}
