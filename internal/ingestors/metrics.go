package ingestors

import (
	"sorting-analytics/internal/shared/metrics"
)

const (
	recordKindEvent = "event"
	recordKindStat  = "stat"
)

var (
	metricBatchIngestedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubIngestion,
			Name:      "batch_ingested_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	metricRecordsAcceptedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubIngestion,
			Name:      "records_accepted_total",
		},
		[]string{metrics.FieldRecord},
	)

	metricRecordsSkippedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubIngestion,
			Name:      "records_skipped_total",
		},
		[]string{metrics.FieldRecord},
	)
)
