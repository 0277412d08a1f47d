package interfaces

import (
	"context"

	"github.com/arvind-menon/laketable-drop-partition/internal/lake/models"
)

// WriteExecutor commits a delete-partition operation to the table's
// versioned history. The commit is atomic: either the new commit recording
// all requested partitions as deleted is durably visible to subsequent
// readers, or no metadata changes at all.
type WriteExecutor interface {
	Execute(ctx context.Context, cfg models.WriteConfig) (models.CommitResult, error)
}
