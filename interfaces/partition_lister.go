package interfaces

import (
	"context"

	"github.com/arvind-menon/laketable-drop-partition/internal/lake/models"
)

// PartitionLister enumerates the concrete partitions of a table whose
// paths start with the given prefix. An empty prefix lists every
// partition.
type PartitionLister interface {
	ListPartitions(ctx context.Context, table models.TableDescriptor, pathPrefix string) ([]models.PartitionPath, error)
}
