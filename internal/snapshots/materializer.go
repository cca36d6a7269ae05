package snapshots

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"sorting-analytics/internal/models"
	"sorting-analytics/internal/shared/filestorages"
	"sorting-analytics/internal/shared/loggers"
	"sorting-analytics/internal/shared/metrics"
	"sorting-analytics/internal/stores"
)

const (
	ArtifactTotals       = "totals.json"
	ArtifactDailySeries  = "daily.json"
	ArtifactRecentEvents = "events.json"
)

// Materializer recomputes the three derived read artifacts from current store
// state and publishes each one wholesale: the all-time totals, the ascending
// daily series, and the recent-events feed with display timestamps. The
// static dashboard reads these files directly, independent of the live query
// endpoints.
//
// Each artifact publish is independent: one failing write is collected and
// reported but never blocks the other artifacts.
//
//go:generate mockgen -source=materializer.go -destination=./mocks/materializer_mock.go -package=mocks
type Materializer interface {
	Materialize(ctx context.Context) error
}

// CodeRefreshFailed is the stable error code logged when a snapshot refresh
// fails after a committed ingest.
const CodeRefreshFailed = "SNP_9000"

type snapshotMaterializer struct {
	store             stores.TelemetryStore
	fileStorage       filestorages.FileStorage
	recentEventsLimit int
	dailySeriesLimit  int
}

func NewSnapshotMaterializer(store stores.TelemetryStore, fileStorage filestorages.FileStorage, recentEventsLimit, dailySeriesLimit int) Materializer {
	return &snapshotMaterializer{
		store:             store,
		fileStorage:       fileStorage,
		recentEventsLimit: recentEventsLimit,
		dailySeriesLimit:  dailySeriesLimit,
	}
}

func (m *snapshotMaterializer) Materialize(ctx context.Context) error {
	logger := loggers.Ctx(ctx)

	publishers := []struct {
		artifact string
		publish  func(ctx context.Context) error
	}{
		{ArtifactTotals, m.publishTotals},
		{ArtifactDailySeries, m.publishDailySeries},
		{ArtifactRecentEvents, m.publishRecentEvents},
	}

	var failures []error
	for _, p := range publishers {
		err := p.publish(ctx)
		if err != nil {
			logger.Error().
				Err(err).
				Str(loggers.FieldArtifact, p.artifact).
				Msg("failed to publish snapshot artifact")
			metricArtifactPublishedTotal.WithLabelValues(p.artifact, CodeRefreshFailed).Inc()
			failures = append(failures, fmt.Errorf("%s: %w", p.artifact, err))
			continue
		}
		metricArtifactPublishedTotal.WithLabelValues(p.artifact, metrics.ValueNoError).Inc()
	}

	return errors.Join(failures...)
}

// publishTotals writes totals.json from the column-wise sums. Empty storage
// publishes all zeros.
func (m *snapshotMaterializer) publishTotals(ctx context.Context) error {
	totals, err := m.store.SumTotals(ctx)
	if err != nil {
		return err
	}
	return m.publishJSON(ctx, ArtifactTotals, totals)
}

// publishDailySeries writes daily.json: all daily stat rows ascending by
// date, capped to the most recent rows when the table outgrows the cap.
func (m *snapshotMaterializer) publishDailySeries(ctx context.Context) error {
	dailyStats, err := m.store.ScanDailyStats(ctx, "")
	if err != nil {
		return err
	}
	if len(dailyStats) > m.dailySeriesLimit {
		dailyStats = dailyStats[len(dailyStats)-m.dailySeriesLimit:]
	}
	if dailyStats == nil {
		dailyStats = []*models.DailyStat{}
	}
	return m.publishJSON(ctx, ArtifactDailySeries, dailyStats)
}

// publishRecentEvents writes events.json: the newest events first, each with
// a display timestamp. An unparsable timestamp is shown verbatim.
func (m *snapshotMaterializer) publishRecentEvents(ctx context.Context) error {
	events, err := m.store.ScanEvents(ctx, stores.EventFilter{Limit: m.recentEventsLimit})
	if err != nil {
		return err
	}
	for _, event := range events {
		event.FormattedTime = models.FormatEventTime(event.Timestamp)
	}
	if events == nil {
		events = []*models.SortEvent{}
	}
	return m.publishJSON(ctx, ArtifactRecentEvents, events)
}

func (m *snapshotMaterializer) publishJSON(ctx context.Context, artifact string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal artifact: %w", err)
	}
	return m.fileStorage.Put(ctx, artifact, bytes.NewReader(data))
}
