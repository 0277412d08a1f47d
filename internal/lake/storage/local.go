package storage

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/arvind-menon/laketable-drop-partition/internal/lake/models"
)

// LocalStorage backs tables stored on a locally mounted filesystem. It
// serves both boundaries of the drop operation: enumerating concrete
// partitions for partial-spec resolution and recursively purging
// partition directories.
type LocalStorage struct{}

func NewLocalStorage() *LocalStorage {
	return &LocalStorage{}
}

// DeleteRecursive removes the directory tree at path. A path that no
// longer exists is a success, so retrying a partial purge is safe.
func (l *LocalStorage) DeleteRecursive(_ context.Context, path string) error {
	if path == "" || path == "/" {
		return fmt.Errorf("refusing to delete %q", path)
	}
	return os.RemoveAll(filepath.FromSlash(path))
}

// ListPartitions walks the table's base directory and returns every
// concrete partition path starting with pathPrefix. A partition is a
// directory at depth len(PartitionFields) whose every segment is a
// field=value pair; other directories (metadata, temp files) are skipped.
func (l *LocalStorage) ListPartitions(_ context.Context, table models.TableDescriptor, pathPrefix string) ([]models.PartitionPath, error) {
	base := filepath.FromSlash(table.BasePath)
	depth := len(table.PartitionFields)

	var partitions []models.PartitionPath
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() || path == base {
			return nil
		}
		rel, err := filepath.Rel(base, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		segments := strings.Split(rel, "/")
		for _, segment := range segments {
			if !strings.Contains(segment, "=") {
				return fs.SkipDir
			}
		}
		if len(segments) < depth {
			return nil
		}
		if matchesPrefix(rel, pathPrefix) {
			partitions = append(partitions, models.PartitionPath(rel))
		}
		return fs.SkipDir
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return partitions, nil
}

func matchesPrefix(path, prefix string) bool {
	if prefix == "" {
		return true
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
