package constants

import "github.com/arvind-menon/laketable-drop-partition/internal/lake/models"

const (
	CliRequestID    models.RequestID = "request-id"
	LogRequestIDKey                  = "request-id"
	LogErrorKey                      = "error"
	LogTableKey                      = "table"
)

// OperationDeletePartition is the write-engine operation kind of a
// delete-partition commit.
const OperationDeletePartition = "DELETE_PARTITION"

// Table variants.
const (
	TableTypeCopyOnWrite = "COPY_ON_WRITE"
	TableTypeMergeOnRead = "MERGE_ON_READ"
)

// Catalog sync modes.
const (
	SyncModeHMS  = "hms"
	SyncModeJDBC = "jdbc"
	SyncModeGlue = "glue"
)

// DefaultPurgeParallelism caps the purge worker pool when the caller gives
// no explicit parallelism.
const DefaultPurgeParallelism = 8

// S3DeleteBatchSize is the maximum number of keys one DeleteObjects call
// accepts.
const S3DeleteBatchSize = 1000
