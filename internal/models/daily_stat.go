package models

// DailyStat is one row of aggregate counts per calendar date (YYYY-MM-DD).
// At most one row exists per date; re-submission replaces the row as a whole,
// never merges additively. TotalCount is always recomputed as the sum of the
// three item counts at ingest time.
type DailyStat struct {
	Date           string `json:"date"`
	CanCount       int64  `json:"can_count"`
	RecyclingCount int64  `json:"recycling_count"`
	GarbageCount   int64  `json:"garbage_count"`
	TotalCount     int64  `json:"total_count"`
	Metadata       any    `json:"metadata,omitempty"`
}

// TotalsSummary is the column-wise sum over all DailyStat rows. An empty
// store yields the zero value, never an error.
type TotalsSummary struct {
	TotalCans      int64 `json:"total_cans"`
	TotalRecycling int64 `json:"total_recycling"`
	TotalGarbage   int64 `json:"total_garbage"`
	GrandTotal     int64 `json:"grand_total"`
}
