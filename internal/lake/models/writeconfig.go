package models

import "strconv"

// WriteConfig is the immutable configuration handed to the write engine for
// a delete-partition commit. Its fields are exactly the option keys the
// engine recognizes; AsOptions renders the engine's string map.
type WriteConfig struct {
	Path                       string
	TableName                  string
	TableType                  string
	Operation                  string
	PartitionsToDelete         string
	RecordKeyFields            string
	PrecombineField            string
	PartitionPathFields        string
	SyncEnabled                bool
	SyncMode                   string
	SyncDatabaseName           string
	SyncTableName              string
	PartitionExtractorStrategy string
	UseJDBC                    bool
	SupportTimestampType       bool
}

// AsOptions renders the configuration as the string-keyed option map the
// write boundary consumes.
func (c WriteConfig) AsOptions() map[string]string {
	return map[string]string{
		"path":                       c.Path,
		"tableName":                  c.TableName,
		"tableType":                  c.TableType,
		"operation":                  c.Operation,
		"partitionsToDelete":         c.PartitionsToDelete,
		"recordKeyFields":            c.RecordKeyFields,
		"precombineField":            c.PrecombineField,
		"partitionPathFields":        c.PartitionPathFields,
		"syncEnabled":                strconv.FormatBool(c.SyncEnabled),
		"syncMode":                   c.SyncMode,
		"syncDatabaseName":           c.SyncDatabaseName,
		"syncTableName":              c.SyncTableName,
		"partitionExtractorStrategy": c.PartitionExtractorStrategy,
		"useJdbc":                    strconv.FormatBool(c.UseJDBC),
		"supportTimestampType":       strconv.FormatBool(c.SupportTimestampType),
	}
}
