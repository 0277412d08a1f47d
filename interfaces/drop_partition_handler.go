package interfaces

import (
	"context"

	"github.com/arvind-menon/laketable-drop-partition/internal/lake/models"
)

type DropPartitionHandler interface {
	HandleDropPartitions(ctx context.Context, input models.DropPartitionsInput) (models.DropPartitionsResult, error)
}
