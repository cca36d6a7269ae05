package models

// TelemetryBatch is one validated ingest submission. The envelope (credential,
// timestamp, array shapes) has been checked; the individual records are still
// raw maps because per-record field validation is deferred to the batch
// processor, which skips incomplete records instead of rejecting the batch.
type TelemetryBatch struct {
	Timestamp string
	Events    []map[string]any
	Stats     []map[string]any
}
