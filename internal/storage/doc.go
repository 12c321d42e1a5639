// Package storage persists assembled rows.
//
// Rows are written either to a CSV file or to a SQLite database; the sink is
// chosen by the output file's extension. Both sinks keep the fixed column set
// and never reorder rows. List fields are joined with the configured
// delimiter and absent parts are written as the configured null marker (CSV)
// or NULL (SQLite).
//
// Any write failure is classified as SINK_WRITE_FAILED.
package storage
