package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/arvind-menon/laketable-drop-partition/interfaces"
	"github.com/arvind-menon/laketable-drop-partition/internal/lake/catalog"
	"github.com/arvind-menon/laketable-drop-partition/internal/lake/client"
	"github.com/arvind-menon/laketable-drop-partition/internal/lake/constants"
	"github.com/arvind-menon/laketable-drop-partition/internal/lake/ddbindex"
	"github.com/arvind-menon/laketable-drop-partition/internal/lake/handler"
	"github.com/arvind-menon/laketable-drop-partition/internal/lake/middleware"
	"github.com/arvind-menon/laketable-drop-partition/internal/lake/models"
	"github.com/arvind-menon/laketable-drop-partition/internal/lake/storage"
	"github.com/arvind-menon/laketable-drop-partition/internal/lake/writer"
)

type dropFlags struct {
	tableName       string
	basePath        string
	tableType       string
	partitionFields []string
	recordKeyFields []string
	precombineField string

	partitions []string
	ifExists   bool
	purge      bool
	retainData bool
	matchCase  bool

	parallelism int
	dryRun      bool

	endpointURL string
	awsRegion   string
	indexTable  string

	syncEnabled          bool
	syncMode             string
	syncDatabase         string
	syncTable            string
	partitionExtractor   string
	useJDBC              bool
	supportTimestampType bool
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "lakectl",
		Short: "Operational tooling for partitioned lake tables",
	}
	rootCmd.AddCommand(newDropPartitionsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newDropPartitionsCmd() *cobra.Command {
	flags := &dropFlags{}

	cmd := &cobra.Command{
		Use:   "drop-partitions",
		Short: "Drop one or more partitions from a partitioned lake table",
		Long: `Drop one or more partitions from a partitioned lake table.

Each --partition flag gives one spec as comma-separated field=value pairs.
A spec naming only a leading prefix of the partition fields drops every
partition under that prefix.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDropPartitions(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.tableName, "table", "", "table name")
	cmd.Flags().StringVar(&flags.basePath, "base-path", "", "table base path (local dir or s3://bucket/prefix)")
	cmd.Flags().StringVar(&flags.tableType, "table-type", constants.TableTypeCopyOnWrite, "table type")
	cmd.Flags().StringSliceVar(&flags.partitionFields, "partition-fields", nil, "ordered partition fields")
	cmd.Flags().StringSliceVar(&flags.recordKeyFields, "record-key-fields", nil, "record key fields")
	cmd.Flags().StringVar(&flags.precombineField, "precombine-field", "", "precombine field")

	cmd.Flags().StringArrayVar(&flags.partitions, "partition", nil, "partition spec, e.g. year=2020,month=1 (repeatable)")
	cmd.Flags().BoolVar(&flags.ifExists, "if-exists", false, "succeed when a spec matches no partition")
	cmd.Flags().BoolVar(&flags.purge, "purge", false, "also delete partition directories from storage")
	cmd.Flags().BoolVar(&flags.retainData, "retain-data", false, "keep partition data on storage even with --purge")
	cmd.Flags().BoolVar(&flags.matchCase, "match-case", false, "match partition field names case-sensitively")
	cmd.Flags().IntVar(&flags.parallelism, "parallelism", 0, "purge worker pool size (0 = default)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "resolve and report, do not purge or refresh")

	cmd.Flags().StringVar(&flags.endpointURL, "endpoint-url", "", "custom AWS endpoint for local stacks")
	cmd.Flags().StringVar(&flags.awsRegion, "region", "us-east-1", "AWS region")
	cmd.Flags().StringVar(&flags.indexTable, "partition-index-table", "", "DynamoDB partition index table to resolve partial specs")

	cmd.Flags().BoolVar(&flags.syncEnabled, "sync-enabled", false, "refresh the external catalog after the drop")
	cmd.Flags().StringVar(&flags.syncMode, "sync-mode", constants.SyncModeGlue, "catalog sync mode")
	cmd.Flags().StringVar(&flags.syncDatabase, "sync-database", "", "catalog database name")
	cmd.Flags().StringVar(&flags.syncTable, "sync-table", "", "catalog table name")
	cmd.Flags().StringVar(&flags.partitionExtractor, "partition-extractor", "", "catalog partition extraction strategy")
	cmd.Flags().BoolVar(&flags.useJDBC, "use-jdbc", false, "sync the catalog over JDBC")
	cmd.Flags().BoolVar(&flags.supportTimestampType, "support-timestamp-type", false, "sync timestamp columns as timestamps")

	for _, required := range []string{"table", "base-path", "partition-fields", "record-key-fields", "partition"} {
		_ = cmd.MarkFlagRequired(required)
	}

	return cmd
}

func runDropPartitions(ctx context.Context, flags *dropFlags) error {
	mw := middleware.NewMiddleware()
	ctx = context.WithValue(ctx, constants.CliRequestID, uuid.NewString())

	table := models.TableDescriptor{
		Name:            flags.tableName,
		BasePath:        flags.basePath,
		TableType:       flags.tableType,
		PartitionFields: flags.partitionFields,
		RecordKeyFields: flags.recordKeyFields,
		PrecombineField: flags.precombineField,
		Sync: models.SyncConfig{
			Enabled:              flags.syncEnabled,
			Mode:                 flags.syncMode,
			DatabaseName:         flags.syncDatabase,
			TableName:            flags.syncTable,
			PartitionExtractor:   flags.partitionExtractor,
			UseJDBC:              flags.useJDBC,
			SupportTimestampType: flags.supportTimestampType,
		},
	}

	specs, err := parseSpecs(flags.partitions)
	if err != nil {
		return err
	}

	purger, lister, err := buildStorage(ctx, flags)
	if err != nil {
		return err
	}

	refresher, err := buildRefresher(ctx, flags)
	if err != nil {
		return err
	}
	if flags.dryRun {
		refresher = catalog.NewNoopRefresher()
	}

	// The metadata commit is simulated against the live partition listing;
	// the purge and catalog refresh are real.
	executor := writer.NewInMemoryExecutor()
	existing, err := lister.ListPartitions(ctx, table, "")
	if err != nil {
		return err
	}
	for _, p := range existing {
		executor.AddPartition(table.Name, p)
	}

	input := models.DropPartitionsInput{
		Table:       table,
		Specs:       specs,
		IfExists:    flags.ifExists,
		Purge:       flags.purge && !flags.dryRun,
		RetainData:  flags.retainData,
		Parallelism: flags.parallelism,
		MatchCase:   flags.matchCase,
	}

	h := handler.NewDropPartitionHandler(executor, lister, purger, refresher, mw)
	result, err := h.HandleDropPartitions(ctx, input)
	if err != nil {
		return err
	}

	mw.LogHandler(ctx, "Drop partitions finished",
		constants.LogRequestIDKey, ctx.Value(constants.CliRequestID),
		constants.LogTableKey, table.Name,
		"commit-id", result.CommitID,
		"dropped", len(result.DroppedPaths),
		"dry-run", flags.dryRun)
	if result.RefreshWarning != nil {
		mw.LogWarn("Catalog may be stale", result.RefreshWarning)
	}
	return nil
}

func parseSpecs(raw []string) ([]models.PartitionSpec, error) {
	specs := make([]models.PartitionSpec, 0, len(raw))
	for _, one := range raw {
		spec := models.PartitionSpec{}
		for _, pair := range strings.Split(one, ",") {
			field, value, ok := strings.Cut(pair, "=")
			if !ok || field == "" {
				return nil, fmt.Errorf("malformed partition spec %q: expected field=value pairs", one)
			}
			spec[strings.TrimSpace(field)] = strings.TrimSpace(value)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func buildStorage(ctx context.Context, flags *dropFlags) (interfaces.StoragePurger, interfaces.PartitionLister, error) {
	if strings.HasPrefix(flags.basePath, "s3://") {
		cfg, err := client.NewAWSConfig(ctx, flags.endpointURL, flags.awsRegion)
		if err != nil {
			return nil, nil, err
		}
		s3Storage := storage.NewS3Storage(cfg)
		if flags.indexTable != "" {
			return s3Storage, ddbindex.NewLister(cfg, flags.indexTable), nil
		}
		return s3Storage, s3Storage, nil
	}

	local := storage.NewLocalStorage()
	return local, local, nil
}

func buildRefresher(ctx context.Context, flags *dropFlags) (interfaces.CatalogRefresher, error) {
	if !flags.syncEnabled {
		return catalog.NewNoopRefresher(), nil
	}
	cfg, err := client.NewAWSConfig(ctx, flags.endpointURL, flags.awsRegion)
	if err != nil {
		return nil, err
	}
	return catalog.NewGlueRefresher(cfg), nil
}
