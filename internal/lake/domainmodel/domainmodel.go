package domainmodel

import (
	"context"

	"github.com/arvind-menon/laketable-drop-partition/interfaces"
	"github.com/arvind-menon/laketable-drop-partition/internal/lake/constants"
	"github.com/arvind-menon/laketable-drop-partition/internal/lake/lakeerrors"
	"github.com/arvind-menon/laketable-drop-partition/internal/lake/middleware"
	"github.com/arvind-menon/laketable-drop-partition/internal/lake/models"
	"github.com/arvind-menon/laketable-drop-partition/internal/lake/purge"
	"github.com/arvind-menon/laketable-drop-partition/internal/lake/spec"
	"github.com/arvind-menon/laketable-drop-partition/internal/lake/writeconfig"
)

// DropPartitionService sequences one drop-partitions operation:
// validate, normalize, resolve, commit, purge, refresh. Validation and
// resolution complete before any mutation; the purge never starts before
// the commit has reported success; the catalog refresh runs after the
// commit and after the purge attempt regardless of the purge outcome.
//
// The service holds no mutable state and is safe to use concurrently for
// different tables. Mutual exclusion between concurrent writers of one
// table is the write engine's responsibility.
type DropPartitionService struct {
	writer     interfaces.WriteExecutor
	lister     interfaces.PartitionLister
	storage    interfaces.StoragePurger
	catalog    interfaces.CatalogRefresher
	middleware *middleware.Middleware
}

func NewDropPartitionService(writer interfaces.WriteExecutor, lister interfaces.PartitionLister,
	storage interfaces.StoragePurger, catalog interfaces.CatalogRefresher,
	mw *middleware.Middleware) *DropPartitionService {

	return &DropPartitionService{
		writer:     writer,
		lister:     lister,
		storage:    storage,
		catalog:    catalog,
		middleware: mw,
	}
}

// DropPartitions removes the partitions addressed by the input specs from
// the table's metadata, optionally purges their directories, and refreshes
// the external catalog.
//
// On a validation or commit failure the table is unchanged and the error
// describes why. After a successful commit the metadata deletion is never
// rolled back: a *lakeerrors.PurgeError reports directories left behind,
// and a failed catalog refresh is carried on the result as a warning.
func (s *DropPartitionService) DropPartitions(ctx context.Context, input models.DropPartitionsInput) (models.DropPartitionsResult, error) {
	table := input.Table
	s.middleware.LogHandler(ctx, "Drop partitions request received",
		constants.LogRequestIDKey, ctx.Value(constants.CliRequestID),
		constants.LogTableKey, table.Name,
		"specs", len(input.Specs),
		"if-exists", input.IfExists,
		"purge", input.Purge,
		"retain-data", input.RetainData)

	request, err := s.prepare(ctx, input)
	if err != nil {
		return models.DropPartitionsResult{}, err
	}
	if len(request.Paths) == 0 {
		// Only reachable with ifExists: every spec matched nothing.
		s.middleware.LogHandler(ctx, "No matching partitions, nothing to drop",
			constants.LogRequestIDKey, ctx.Value(constants.CliRequestID),
			constants.LogTableKey, table.Name)
		return models.DropPartitionsResult{}, nil
	}

	cfg, err := writeconfig.BuildDeletePartition(table, request.Paths)
	if err != nil {
		return models.DropPartitionsResult{}, err
	}

	commit, err := s.writer.Execute(ctx, cfg)
	if err != nil {
		return models.DropPartitionsResult{}, &lakeerrors.WriteFailureError{Cause: err}
	}
	s.middleware.LogHandler(ctx, "Delete-partition commit completed",
		constants.LogRequestIDKey, ctx.Value(constants.CliRequestID),
		constants.LogTableKey, table.Name,
		"commit-id", commit.CommitID,
		"partitions", len(request.Paths))

	result := models.DropPartitionsResult{
		CommitID:     commit.CommitID,
		DroppedPaths: request.Paths,
	}

	var purgeErr error
	if request.Purge && !request.RetainData {
		purger := purge.NewPurger(s.storage, input.Parallelism, s.middleware)
		purged := purger.Run(ctx, table.BasePath, request.Paths)
		result.Purge = &purged
		if len(purged.Failed) > 0 {
			purgeErr = &lakeerrors.PurgeError{FailedPaths: purged.Failed}
		}
		s.middleware.LogHandler(ctx, "Partition purge finished",
			constants.LogRequestIDKey, ctx.Value(constants.CliRequestID),
			constants.LogTableKey, table.Name,
			"succeeded", len(purged.Succeeded),
			"failed", len(purged.Failed))
	}

	if err := s.catalog.Refresh(ctx, table.Identifier()); err != nil {
		warning := &lakeerrors.CatalogRefreshWarning{Cause: err}
		s.middleware.LogWarn("Catalog refresh failed after drop", warning)
		result.RefreshWarning = warning
	}

	return result, purgeErr
}

// prepare runs every step that must complete before mutation: validation,
// normalization of each spec, and resolution to existing partition paths.
func (s *DropPartitionService) prepare(ctx context.Context, input models.DropPartitionsInput) (models.DropRequest, error) {
	table := input.Table
	if len(table.PartitionFields) == 0 {
		return models.DropRequest{}, lakeerrors.ErrNotPartitionedTable
	}
	if len(input.Specs) == 0 {
		return models.DropRequest{}, lakeerrors.ErrEmptyPartitionSpec
	}

	normalizer := spec.Normalizer{MatchCase: input.MatchCase}
	normalized := make([]models.NormalizedPartitionSpec, 0, len(input.Specs))
	for _, raw := range input.Specs {
		n, err := normalizer.Normalize(table, raw)
		if err != nil {
			return models.DropRequest{}, err
		}
		normalized = append(normalized, n)
	}

	resolver := spec.NewPathResolver(s.lister)
	paths, err := resolver.Resolve(ctx, table, normalized, input.IfExists)
	if err != nil {
		return models.DropRequest{}, err
	}
	s.middleware.LogHandler(ctx, "Partition specs resolved",
		constants.LogRequestIDKey, ctx.Value(constants.CliRequestID),
		constants.LogTableKey, table.Name,
		"resolved-paths", len(paths))

	return models.DropRequest{
		Table:      table,
		Paths:      paths,
		Purge:      input.Purge,
		IfExists:   input.IfExists,
		RetainData: input.RetainData,
	}, nil
}
