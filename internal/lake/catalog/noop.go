package catalog

import (
	"context"

	"github.com/arvind-menon/laketable-drop-partition/internal/lake/models"
)

// NoopRefresher is used for tables with catalog sync disabled.
type NoopRefresher struct{}

func NewNoopRefresher() *NoopRefresher {
	return &NoopRefresher{}
}

func (n *NoopRefresher) Refresh(context.Context, models.TableIdentifier) error {
	return nil
}
