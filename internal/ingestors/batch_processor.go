package ingestors

import (
	"context"

	"sorting-analytics/internal/models"
	"sorting-analytics/internal/shared/loggers"
	"sorting-analytics/internal/shared/metrics"
	"sorting-analytics/internal/snapshots"
	"sorting-analytics/internal/stores"
)

// ProcessResult reports what a batch application did: how many records of
// each kind were written, how many were skipped for missing fields, and
// whether the snapshot artifacts were refreshed afterwards.
type ProcessResult struct {
	EventsAccepted     int
	EventsSkipped      int
	StatsAccepted      int
	StatsSkipped       int
	SnapshotsRefreshed bool
}

// BatchProcessor applies a validated batch to the telemetry store as one
// all-or-nothing transaction, then refreshes the snapshot artifacts.
//
// Records missing required fields are skipped and counted without aborting
// the transaction; any storage-level failure rolls back the whole batch. A
// snapshot refresh failure after commit is logged and reflected in the
// result, never rolled back: the write and the refresh are separate failure
// domains.
//
//go:generate mockgen -source=batch_processor.go -destination=./mocks/batch_processor_mock.go -package=mocks
type BatchProcessor interface {
	Process(ctx context.Context, batch *models.TelemetryBatch) (*ProcessResult, error)
}

type batchProcessor struct {
	store        stores.TelemetryStore
	materializer snapshots.Materializer
}

func NewBatchProcessor(store stores.TelemetryStore, materializer snapshots.Materializer) BatchProcessor {
	return &batchProcessor{
		store:        store,
		materializer: materializer,
	}
}

func (p *batchProcessor) Process(ctx context.Context, batch *models.TelemetryBatch) (*ProcessResult, error) {
	logger := loggers.Ctx(ctx)

	result := &ProcessResult{}

	// Field completeness is checked up front so skips are counted before any
	// storage work happens. Skips are not storage failures and never roll
	// anything back.
	var events []*models.SortEvent
	for _, record := range batch.Events {
		event, ok := eventFromRecord(record)
		if !ok {
			result.EventsSkipped++
			metricRecordsSkippedTotal.WithLabelValues(recordKindEvent).Inc()
			continue
		}
		events = append(events, event)
	}

	var dailyStats []*models.DailyStat
	for _, record := range batch.Stats {
		stat, ok := statFromRecord(record)
		if !ok {
			result.StatsSkipped++
			metricRecordsSkippedTotal.WithLabelValues(recordKindStat).Inc()
			continue
		}
		dailyStats = append(dailyStats, stat)
	}

	err := p.store.InTransaction(ctx, func(tx stores.TelemetryTx) error {
		for _, event := range events {
			if err := tx.UpsertEvent(ctx, event); err != nil {
				return err
			}
		}
		for _, stat := range dailyStats {
			if err := tx.UpsertDailyStat(ctx, stat); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		svcErr := errInternalStoreFailed(err)
		metricBatchIngestedTotal.WithLabelValues(svcErr.Code).Inc()
		return nil, svcErr
	}

	result.EventsAccepted = len(events)
	result.StatsAccepted = len(dailyStats)
	metricRecordsAcceptedTotal.WithLabelValues(recordKindEvent).Add(float64(result.EventsAccepted))
	metricRecordsAcceptedTotal.WithLabelValues(recordKindStat).Add(float64(result.StatsAccepted))

	// The batch is committed; a snapshot refresh failure is reported to the
	// caller but cannot undo the ingest.
	if err := p.materializer.Materialize(ctx); err != nil {
		logger.Error().
			Err(err).
			Str(loggers.FieldErrorCode, snapshots.CodeRefreshFailed).
			Msg("snapshot refresh failed after batch commit")
	} else {
		result.SnapshotsRefreshed = true
	}

	metricBatchIngestedTotal.WithLabelValues(metrics.ValueNoError).Inc()
	logger.Debug().
		Int("events_accepted", result.EventsAccepted).
		Int("events_skipped", result.EventsSkipped).
		Int("stats_accepted", result.StatsAccepted).
		Int("stats_skipped", result.StatsSkipped).
		Bool("snapshots_refreshed", result.SnapshotsRefreshed).
		Msg("batch processed")

	return result, nil
}

// eventFromRecord builds a typed SortEvent from a raw record. A record
// missing any required field, or with a wrong-typed required field, is
// reported as not ok and skipped by the caller.
func eventFromRecord(record map[string]any) (*models.SortEvent, bool) {
	id, ok := stringField(record, "id")
	if !ok {
		return nil, false
	}
	timestamp, ok := stringField(record, "timestamp")
	if !ok {
		return nil, false
	}
	itemType, ok := stringField(record, "item_type")
	if !ok {
		return nil, false
	}
	confidence, ok := numberField(record, "confidence")
	if !ok {
		return nil, false
	}
	sortDestination, ok := stringField(record, "sort_destination")
	if !ok {
		return nil, false
	}

	event := &models.SortEvent{
		ID:              id,
		Timestamp:       timestamp,
		ItemType:        itemType,
		Confidence:      confidence,
		SortDestination: sortDestination,
		Metadata:        record["metadata"],
	}
	event.ImageID, _ = stringField(record, "image_id")
	event.UserID, _ = stringField(record, "user_id")
	return event, true
}

// statFromRecord builds a typed DailyStat from a raw record. Only date is
// required; absent counts default to 0. The total is always recomputed as the
// sum of the three item counts, ignoring any caller-supplied total_count.
func statFromRecord(record map[string]any) (*models.DailyStat, bool) {
	date, ok := stringField(record, "date")
	if !ok {
		return nil, false
	}

	stat := &models.DailyStat{
		Date:           date,
		CanCount:       countField(record, "can_count"),
		RecyclingCount: countField(record, "recycling_count"),
		GarbageCount:   countField(record, "garbage_count"),
		Metadata:       record["metadata"],
	}
	stat.TotalCount = stat.CanCount + stat.RecyclingCount + stat.GarbageCount
	return stat, true
}

func stringField(record map[string]any, key string) (string, bool) {
	value, ok := record[key].(string)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

func numberField(record map[string]any, key string) (float64, bool) {
	value, ok := record[key].(float64)
	return value, ok
}

// countField coerces an optional count to a non-negative integer, defaulting
// to 0 when absent or not a number.
func countField(record map[string]any, key string) int64 {
	value, ok := record[key].(float64)
	if !ok || value < 0 {
		return 0
	}
	return int64(value)
}
