package interfaces

import (
	"context"

	"github.com/arvind-menon/laketable-drop-partition/internal/lake/models"
)

// CatalogRefresher invalidates or reloads the cached metadata an external
// catalog holds for a table.
type CatalogRefresher interface {
	Refresh(ctx context.Context, ident models.TableIdentifier) error
}
