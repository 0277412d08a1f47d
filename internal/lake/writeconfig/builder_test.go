package writeconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arvind-menon/laketable-drop-partition/internal/lake/constants"
	"github.com/arvind-menon/laketable-drop-partition/internal/lake/lakeerrors"
	"github.com/arvind-menon/laketable-drop-partition/internal/lake/models"
)

func syncedTable() models.TableDescriptor {
	return models.TableDescriptor{
		Name:            "events",
		BasePath:        "s3://lake/events",
		TableType:       constants.TableTypeCopyOnWrite,
		PartitionFields: []string{"year", "month"},
		RecordKeyFields: []string{"event_id", "source"},
		PrecombineField: "updated_at",
		Sync: models.SyncConfig{
			Enabled:              true,
			Mode:                 constants.SyncModeGlue,
			DatabaseName:         "analytics",
			TableName:            "events",
			PartitionExtractor:   "multi-part",
			SupportTimestampType: true,
		},
	}
}

func TestBuildDeletePartition(t *testing.T) {
	cfg, err := BuildDeletePartition(syncedTable(), []models.PartitionPath{
		"year=2020/month=1",
		"year=2020/month=2",
	})
	require.NoError(t, err)

	assert.Equal(t, constants.OperationDeletePartition, cfg.Operation)
	assert.Equal(t, "s3://lake/events", cfg.Path)
	assert.Equal(t, "year=2020/month=1,year=2020/month=2", cfg.PartitionsToDelete)
	assert.Equal(t, "event_id,source", cfg.RecordKeyFields)
	assert.Equal(t, "updated_at", cfg.PrecombineField)
	assert.Equal(t, "year,month", cfg.PartitionPathFields)
	assert.True(t, cfg.SyncEnabled)
	assert.Equal(t, "analytics", cfg.SyncDatabaseName)
}

func TestBuildDeletePartitionRequiresRecordKeys(t *testing.T) {
	table := syncedTable()
	table.RecordKeyFields = nil

	_, err := BuildDeletePartition(table, []models.PartitionPath{"year=2020/month=1"})

	var configErr *lakeerrors.InvalidTableConfigurationError
	require.ErrorAs(t, err, &configErr)
	assert.Contains(t, configErr.Reason, "record key")
}

func TestBuildDeletePartitionRequiresBasePath(t *testing.T) {
	table := syncedTable()
	table.BasePath = ""

	_, err := BuildDeletePartition(table, nil)

	var configErr *lakeerrors.InvalidTableConfigurationError
	require.ErrorAs(t, err, &configErr)
}

func TestAsOptionsUsesEngineKeys(t *testing.T) {
	cfg, err := BuildDeletePartition(syncedTable(), []models.PartitionPath{"year=2020/month=1"})
	require.NoError(t, err)

	options := cfg.AsOptions()
	assert.Equal(t, "DELETE_PARTITION", options["operation"])
	assert.Equal(t, "year=2020/month=1", options["partitionsToDelete"])
	assert.Equal(t, "true", options["syncEnabled"])
	assert.Equal(t, "false", options["useJdbc"])
	assert.Equal(t, "true", options["supportTimestampType"])

	expectedKeys := []string{
		"path", "tableName", "tableType", "operation", "partitionsToDelete",
		"recordKeyFields", "precombineField", "partitionPathFields",
		"syncEnabled", "syncMode", "syncDatabaseName", "syncTableName",
		"partitionExtractorStrategy", "useJdbc", "supportTimestampType",
	}
	assert.Len(t, options, len(expectedKeys))
	for _, key := range expectedKeys {
		assert.Contains(t, options, key)
	}
}
