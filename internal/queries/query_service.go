package queries

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"sorting-analytics/internal/models"
	"sorting-analytics/internal/stores"
)

const (
	// DefaultDailyWindowDays is the trailing window served when the caller
	// does not specify one.
	DefaultDailyWindowDays = 30

	// DefaultEventLimit caps the recent-events query when the caller does not
	// specify a limit.
	DefaultEventLimit = 50

	dateLayout = "2006-01-02"
)

// EventQuery narrows a recent-events read. Zero-value fields are not applied.
type EventQuery struct {
	ItemType      string
	MinConfidence *float64
	Limit         int
}

// QueryService serves ad-hoc reads for the live dashboard directly from the
// telemetry store, independent of snapshot regeneration.
//
//go:generate mockgen -source=query_service.go -destination=./mocks/query_service_mock.go -package=mocks
type QueryService interface {
	// Totals returns the all-time column-wise sums over daily stats.
	Totals(ctx context.Context) (*models.TotalsSummary, error)

	// DailyStats returns daily stat rows with dates in the trailing window of
	// the given number of days, ascending by date.
	DailyStats(ctx context.Context, days int) ([]*models.DailyStat, error)

	// RecentEvents returns matching events newest first, each with a display
	// timestamp.
	RecentEvents(ctx context.Context, query EventQuery) ([]*models.SortEvent, error)

	// Event returns the single event with the given ID, or a not-found error.
	Event(ctx context.Context, id string) (*models.SortEvent, error)

	// ExportStatsCSV writes every daily stat row to w as CSV, header first.
	ExportStatsCSV(ctx context.Context, w io.Writer) error
}

type queryService struct {
	store stores.TelemetryStore
	now   func() time.Time
}

func NewQueryService(store stores.TelemetryStore) QueryService {
	return &queryService{store: store, now: time.Now}
}

// NewQueryServiceWithClock is used by tests to pin the trailing-window cutoff.
func NewQueryServiceWithClock(store stores.TelemetryStore, now func() time.Time) QueryService {
	return &queryService{store: store, now: now}
}

func (s *queryService) Totals(ctx context.Context) (*models.TotalsSummary, error) {
	totals, err := s.store.SumTotals(ctx)
	if err != nil {
		return nil, errInternalStoreFailed(err)
	}
	return totals, nil
}

func (s *queryService) DailyStats(ctx context.Context, days int) ([]*models.DailyStat, error) {
	if days <= 0 {
		days = DefaultDailyWindowDays
	}
	since := s.now().UTC().AddDate(0, 0, -days).Format(dateLayout)

	stats, err := s.store.ScanDailyStats(ctx, since)
	if err != nil {
		return nil, errInternalStoreFailed(err)
	}
	if stats == nil {
		stats = []*models.DailyStat{}
	}
	return stats, nil
}

func (s *queryService) RecentEvents(ctx context.Context, query EventQuery) ([]*models.SortEvent, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = DefaultEventLimit
	}

	events, err := s.store.ScanEvents(ctx, stores.EventFilter{
		ItemType:      query.ItemType,
		MinConfidence: query.MinConfidence,
		Limit:         limit,
	})
	if err != nil {
		return nil, errInternalStoreFailed(err)
	}

	for _, event := range events {
		event.FormattedTime = models.FormatEventTime(event.Timestamp)
	}
	if events == nil {
		events = []*models.SortEvent{}
	}
	return events, nil
}

func (s *queryService) Event(ctx context.Context, id string) (*models.SortEvent, error) {
	event, err := s.store.GetEvent(ctx, id)
	if err != nil {
		return nil, errInternalStoreFailed(err)
	}
	if event == nil {
		return nil, errEventNotFound(id)
	}
	event.FormattedTime = models.FormatEventTime(event.Timestamp)
	return event, nil
}

var csvHeader = []string{"date", "can_count", "recycling_count", "garbage_count", "total_count", "metadata"}

func (s *queryService) ExportStatsCSV(ctx context.Context, w io.Writer) error {
	stats, err := s.store.ScanDailyStats(ctx, "")
	if err != nil {
		return errInternalStoreFailed(err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return errInternalExportFailed(err)
	}
	for _, stat := range stats {
		metadata, err := metadataCell(stat.Metadata)
		if err != nil {
			return errInternalExportFailed(err)
		}
		row := []string{
			stat.Date,
			strconv.FormatInt(stat.CanCount, 10),
			strconv.FormatInt(stat.RecyclingCount, 10),
			strconv.FormatInt(stat.GarbageCount, 10),
			strconv.FormatInt(stat.TotalCount, 10),
			metadata,
		}
		if err := writer.Write(row); err != nil {
			return errInternalExportFailed(err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return errInternalExportFailed(err)
	}
	return nil
}

// metadataCell serializes opaque metadata back to JSON text for its CSV cell.
// A raw-string fallback value is written as-is.
func metadataCell(metadata any) (string, error) {
	if metadata == nil {
		return "", nil
	}
	if raw, ok := metadata.(string); ok {
		return raw, nil
	}
	data, err := json.Marshal(metadata)
	if err != nil {
		return "", fmt.Errorf("failed to marshal metadata: %w", err)
	}
	return string(data), nil
}
