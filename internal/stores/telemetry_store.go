package stores

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"sorting-analytics/internal/models"
	"sorting-analytics/internal/shared/loggers"

	_ "github.com/mattn/go-sqlite3"
)

// EventFilter narrows a ScanEvents query. Zero-value fields are not applied;
// filters combine with logical AND.
type EventFilter struct {
	ItemType      string
	MinConfidence *float64
	Limit         int
}

// TelemetryStore is the durable record store for sort events and daily
// statistics, backed by SQLite.
//
// Writes go through InTransaction, which serializes transactions behind a
// mutex (single-writer discipline) and guarantees commit-or-rollback on every
// exit path. Reads may run concurrently with an in-flight transaction and see
// either the pre- or post-transaction state, never an intermediate one.
//
//go:generate mockgen -source=telemetry_store.go -destination=./mocks/telemetry_store_mock.go -package=mocks
type TelemetryStore interface {
	// InTransaction runs fn inside a single transaction. A non-nil error from
	// fn or from commit rolls back every write made through the TelemetryTx.
	InTransaction(ctx context.Context, fn func(tx TelemetryTx) error) error

	// ScanEvents returns events matching filter, newest first.
	ScanEvents(ctx context.Context, filter EventFilter) ([]*models.SortEvent, error)

	// GetEvent returns the event with the given ID, or nil when no such
	// event exists.
	GetEvent(ctx context.Context, id string) (*models.SortEvent, error)

	// ScanDailyStats returns daily stat rows ordered by date ascending,
	// bounded to dates on/after sinceDate when it is non-empty.
	ScanDailyStats(ctx context.Context, sinceDate string) ([]*models.DailyStat, error)

	// SumTotals returns the column-wise sum across all daily stat rows.
	// An empty table yields all zeros, never an error.
	SumTotals(ctx context.Context) (*models.TotalsSummary, error)

	Ping(ctx context.Context) error
	Close() error
}

// TelemetryTx exposes the write primitives available inside a transaction.
// Both upserts are full-row replaces keyed by the primary key.
type TelemetryTx interface {
	UpsertEvent(ctx context.Context, event *models.SortEvent) error
	UpsertDailyStat(ctx context.Context, stat *models.DailyStat) error
}

type telemetryStore struct {
	db      *sql.DB
	logger  loggers.Logger
	writeMu sync.Mutex
}

// NewTelemetryStore opens (creating if needed) the SQLite database at path and
// initializes the schema idempotently. WAL mode keeps readers unblocked during
// a write transaction; the busy timeout bounds how long a write waits on a
// lock held by another process before failing.
func NewTelemetryStore(path string, busyTimeout time.Duration, logger loggers.Logger) (TelemetryStore, error) {
	if path == "" {
		return nil, errors.New("database path cannot be empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=%d",
		path, busyTimeout.Milliseconds())
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &telemetryStore{db: db, logger: logger}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// initSchema creates tables and indexes if they do not exist. Safe to run on
// every startup.
func (s *telemetryStore) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sort_events (
			id TEXT PRIMARY KEY,
			timestamp TEXT NOT NULL,
			item_type TEXT NOT NULL,
			confidence REAL NOT NULL,
			sort_destination TEXT NOT NULL,
			image_id TEXT,
			user_id TEXT,
			metadata TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sort_events_timestamp ON sort_events(timestamp)`,
		`CREATE TABLE IF NOT EXISTS daily_stats (
			date TEXT PRIMARY KEY,
			can_count INTEGER NOT NULL DEFAULT 0,
			recycling_count INTEGER NOT NULL DEFAULT 0,
			garbage_count INTEGER NOT NULL DEFAULT 0,
			total_count INTEGER NOT NULL DEFAULT 0,
			metadata TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}

func (s *telemetryStore) InTransaction(ctx context.Context, fn func(tx TelemetryTx) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		// Rollback failure is secondary: log it, never mask the original error.
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			s.logger.Warn().Err(rbErr).Msg("transaction rollback failed")
		}
	}()

	if err := fn(&telemetryTx{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	committed = true
	return nil
}

func (s *telemetryStore) ScanEvents(ctx context.Context, filter EventFilter) ([]*models.SortEvent, error) {
	query := strings.Builder{}
	query.WriteString(`SELECT id, timestamp, item_type, confidence, sort_destination, image_id, user_id, metadata
		FROM sort_events`)

	var conditions []string
	var args []any
	if filter.ItemType != "" {
		conditions = append(conditions, "item_type = ?")
		args = append(args, filter.ItemType)
	}
	if filter.MinConfidence != nil {
		conditions = append(conditions, "confidence >= ?")
		args = append(args, *filter.MinConfidence)
	}
	if len(conditions) > 0 {
		query.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	query.WriteString(" ORDER BY timestamp DESC LIMIT ?")
	args = append(args, filter.Limit)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to scan events: %w", err)
	}
	defer rows.Close()

	var events []*models.SortEvent
	for rows.Next() {
		var event models.SortEvent
		var imageID, userID, metadata sql.NullString
		if err := rows.Scan(&event.ID, &event.Timestamp, &event.ItemType, &event.Confidence,
			&event.SortDestination, &imageID, &userID, &metadata); err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		event.ImageID = imageID.String
		event.UserID = userID.String
		event.Metadata = decodeMetadata(metadata)
		events = append(events, &event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan events: %w", err)
	}
	return events, nil
}

func (s *telemetryStore) GetEvent(ctx context.Context, id string) (*models.SortEvent, error) {
	var event models.SortEvent
	var imageID, userID, metadata sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT id, timestamp, item_type, confidence, sort_destination, image_id, user_id, metadata
		FROM sort_events WHERE id = ?`, id).
		Scan(&event.ID, &event.Timestamp, &event.ItemType, &event.Confidence,
			&event.SortDestination, &imageID, &userID, &metadata)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event %q: %w", id, err)
	}
	event.ImageID = imageID.String
	event.UserID = userID.String
	event.Metadata = decodeMetadata(metadata)
	return &event, nil
}

func (s *telemetryStore) ScanDailyStats(ctx context.Context, sinceDate string) ([]*models.DailyStat, error) {
	query := `SELECT date, can_count, recycling_count, garbage_count, total_count, metadata
		FROM daily_stats`
	var args []any
	if sinceDate != "" {
		query += " WHERE date >= ?"
		args = append(args, sinceDate)
	}
	query += " ORDER BY date ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to scan daily stats: %w", err)
	}
	defer rows.Close()

	var stats []*models.DailyStat
	for rows.Next() {
		var stat models.DailyStat
		var metadata sql.NullString
		if err := rows.Scan(&stat.Date, &stat.CanCount, &stat.RecyclingCount,
			&stat.GarbageCount, &stat.TotalCount, &metadata); err != nil {
			return nil, fmt.Errorf("failed to scan daily stat row: %w", err)
		}
		stat.Metadata = decodeMetadata(metadata)
		stats = append(stats, &stat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan daily stats: %w", err)
	}
	return stats, nil
}

func (s *telemetryStore) SumTotals(ctx context.Context) (*models.TotalsSummary, error) {
	var totals models.TotalsSummary
	err := s.db.QueryRowContext(ctx, `SELECT
			COALESCE(SUM(can_count), 0),
			COALESCE(SUM(recycling_count), 0),
			COALESCE(SUM(garbage_count), 0),
			COALESCE(SUM(total_count), 0)
		FROM daily_stats`).
		Scan(&totals.TotalCans, &totals.TotalRecycling, &totals.TotalGarbage, &totals.GrandTotal)
	if err != nil {
		return nil, fmt.Errorf("failed to sum totals: %w", err)
	}
	return &totals, nil
}

func (s *telemetryStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *telemetryStore) Close() error {
	return s.db.Close()
}

type telemetryTx struct {
	tx *sql.Tx
}

func (t *telemetryTx) UpsertEvent(ctx context.Context, event *models.SortEvent) error {
	metadata, err := encodeMetadata(event.Metadata)
	if err != nil {
		return fmt.Errorf("failed to encode event metadata: %w", err)
	}

	_, err = t.tx.ExecContext(ctx, `INSERT INTO sort_events
			(id, timestamp, item_type, confidence, sort_destination, image_id, user_id, metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			timestamp = excluded.timestamp,
			item_type = excluded.item_type,
			confidence = excluded.confidence,
			sort_destination = excluded.sort_destination,
			image_id = excluded.image_id,
			user_id = excluded.user_id,
			metadata = excluded.metadata`,
		event.ID, event.Timestamp, event.ItemType, event.Confidence, event.SortDestination,
		nullableString(event.ImageID), nullableString(event.UserID), metadata)
	if err != nil {
		return fmt.Errorf("failed to upsert event %q: %w", event.ID, err)
	}
	return nil
}

func (t *telemetryTx) UpsertDailyStat(ctx context.Context, stat *models.DailyStat) error {
	metadata, err := encodeMetadata(stat.Metadata)
	if err != nil {
		return fmt.Errorf("failed to encode stat metadata: %w", err)
	}

	_, err = t.tx.ExecContext(ctx, `INSERT INTO daily_stats
			(date, can_count, recycling_count, garbage_count, total_count, metadata)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			can_count = excluded.can_count,
			recycling_count = excluded.recycling_count,
			garbage_count = excluded.garbage_count,
			total_count = excluded.total_count,
			metadata = excluded.metadata`,
		stat.Date, stat.CanCount, stat.RecyclingCount, stat.GarbageCount, stat.TotalCount, metadata)
	if err != nil {
		return fmt.Errorf("failed to upsert daily stat %q: %w", stat.Date, err)
	}
	return nil
}

// encodeMetadata serializes an opaque metadata value to JSON text for the
// metadata column. Nil metadata is stored as NULL.
func encodeMetadata(metadata any) (sql.NullString, error) {
	if metadata == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(metadata)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

// decodeMetadata rehydrates a stored metadata column. Text that fails to
// decode as JSON is preserved as the raw string rather than dropped.
func decodeMetadata(column sql.NullString) any {
	if !column.Valid || column.String == "" {
		return nil
	}
	var value any
	if err := json.Unmarshal([]byte(column.String), &value); err != nil {
		return column.String
	}
	return value
}

func nullableString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
