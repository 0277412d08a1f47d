package handler

import (
	"context"

	"github.com/arvind-menon/laketable-drop-partition/interfaces"
	"github.com/arvind-menon/laketable-drop-partition/internal/lake/domainmodel"
	"github.com/arvind-menon/laketable-drop-partition/internal/lake/middleware"
	"github.com/arvind-menon/laketable-drop-partition/internal/lake/models"
)

type DropPartitionHandler struct {
	service *domainmodel.DropPartitionService
}

func NewDropPartitionHandler(writer interfaces.WriteExecutor, lister interfaces.PartitionLister,
	storage interfaces.StoragePurger, catalog interfaces.CatalogRefresher,
	mw *middleware.Middleware) *DropPartitionHandler {

	return &DropPartitionHandler{
		service: domainmodel.NewDropPartitionService(writer, lister, storage, catalog, mw),
	}
}

func (h *DropPartitionHandler) HandleDropPartitions(ctx context.Context, input models.DropPartitionsInput) (models.DropPartitionsResult, error) {
	return h.service.DropPartitions(ctx, input)
}
