package models

// TableDescriptor carries the metadata of the target table needed to drop
// partitions: where the data lives, how it is partitioned, and how the
// external catalog is kept in sync. Immutable for the duration of one
// operation.
type TableDescriptor struct {
	Name            string
	BasePath        string
	TableType       string
	PartitionFields []string
	RecordKeyFields []string
	PrecombineField string
	Sync            SyncConfig
}

// SyncConfig holds the catalog-sync toggles of a table.
type SyncConfig struct {
	Enabled              bool
	Mode                 string
	DatabaseName         string
	TableName            string
	PartitionExtractor   string
	UseJDBC              bool
	SupportTimestampType bool
}

// Identifier returns the catalog identifier the table syncs to. Falls back
// to the table's own name when no sync target is configured.
func (t TableDescriptor) Identifier() TableIdentifier {
	ident := TableIdentifier{
		Database: t.Sync.DatabaseName,
		Table:    t.Sync.TableName,
	}
	if ident.Table == "" {
		ident.Table = t.Name
	}
	return ident
}

// TableIdentifier names a table in an external catalog.
type TableIdentifier struct {
	Database string
	Table    string
}

// PartitionSpec is a raw, user-supplied partition specification: field name
// to literal value. Keys may use arbitrary casing and name any subset of
// the table's partition fields.
type PartitionSpec map[string]string

// PartitionValue is one field=value pair of a normalized spec.
type PartitionValue struct {
	Field string
	Value string
}

// NormalizedPartitionSpec is a spec whose keys have been resolved to
// canonical schema field names, ordered per the schema's partition order.
// It may still name only a subset of the partition fields.
type NormalizedPartitionSpec []PartitionValue

// Fields returns the canonical field names of the spec in order.
func (s NormalizedPartitionSpec) Fields() []string {
	fields := make([]string, len(s))
	for i, pv := range s {
		fields[i] = pv.Field
	}
	return fields
}

// PartitionPath is the storage-relative path of one concrete partition,
// composed of ordered field=value segments.
type PartitionPath string

// DropPartitionsInput is the invocation surface of the drop operation.
type DropPartitionsInput struct {
	Table       TableDescriptor
	Specs       []PartitionSpec
	IfExists    bool
	Purge       bool
	RetainData  bool
	Parallelism int
	// MatchCase makes spec keys match partition field names
	// case-sensitively. Default is case-insensitive matching.
	MatchCase bool
}

// DropRequest is the fully resolved form of a drop operation: every path in
// Paths existed in metadata at resolution time. Constructed once per
// invocation, never persisted.
type DropRequest struct {
	Table      TableDescriptor
	Paths      []PartitionPath
	Purge      bool
	IfExists   bool
	RetainData bool
}

// CommitResult identifies the durable commit produced by the write engine.
type CommitResult struct {
	CommitID string
}

// PurgeResult is the aggregate outcome of the best-effort physical purge.
type PurgeResult struct {
	Succeeded []PartitionPath
	Failed    []PartitionPath
}

// DropPartitionsResult reports the outcome of one drop operation. Purge is
// nil when no purge was attempted. RefreshWarning is non-nil when the
// catalog refresh failed; the drop itself is still successful.
type DropPartitionsResult struct {
	CommitID       string
	DroppedPaths   []PartitionPath
	Purge          *PurgeResult
	RefreshWarning error
}

// RequestID is the correlation id threaded through contexts for logging.
type RequestID string
