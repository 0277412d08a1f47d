package writeconfig

import (
	"strings"

	"github.com/arvind-menon/laketable-drop-partition/internal/lake/constants"
	"github.com/arvind-menon/laketable-drop-partition/internal/lake/lakeerrors"
	"github.com/arvind-menon/laketable-drop-partition/internal/lake/models"
)

// BuildDeletePartition assembles the immutable write configuration for a
// delete-partition commit of the given resolved paths. Pure function; the
// only failures are missing required table metadata.
func BuildDeletePartition(table models.TableDescriptor, paths []models.PartitionPath) (models.WriteConfig, error) {
	if err := validate(table); err != nil {
		return models.WriteConfig{}, err
	}

	csv := make([]string, len(paths))
	for i, p := range paths {
		csv[i] = string(p)
	}

	return models.WriteConfig{
		Path:                       table.BasePath,
		TableName:                  table.Name,
		TableType:                  table.TableType,
		Operation:                  constants.OperationDeletePartition,
		PartitionsToDelete:         strings.Join(csv, ","),
		RecordKeyFields:            strings.Join(table.RecordKeyFields, ","),
		PrecombineField:            table.PrecombineField,
		PartitionPathFields:        strings.Join(table.PartitionFields, ","),
		SyncEnabled:                table.Sync.Enabled,
		SyncMode:                   table.Sync.Mode,
		SyncDatabaseName:           table.Sync.DatabaseName,
		SyncTableName:              table.Sync.TableName,
		PartitionExtractorStrategy: table.Sync.PartitionExtractor,
		UseJDBC:                    table.Sync.UseJDBC,
		SupportTimestampType:       table.Sync.SupportTimestampType,
	}, nil
}

func validate(table models.TableDescriptor) error {
	if table.Name == "" {
		return &lakeerrors.InvalidTableConfigurationError{Table: table.Name, Reason: "table name is empty"}
	}
	if table.BasePath == "" {
		return &lakeerrors.InvalidTableConfigurationError{Table: table.Name, Reason: "base path is empty"}
	}
	if len(table.RecordKeyFields) == 0 {
		return &lakeerrors.InvalidTableConfigurationError{Table: table.Name, Reason: "record key fields are not set"}
	}
	if len(table.PartitionFields) == 0 {
		return &lakeerrors.InvalidTableConfigurationError{Table: table.Name, Reason: "partition fields are not set"}
	}
	return nil
}
