package snapshots_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"sorting-analytics/internal/models"
	"sorting-analytics/internal/shared/filestorages"
	filestoragemocks "sorting-analytics/internal/shared/filestorages/mocks"
	"sorting-analytics/internal/snapshots"
	"sorting-analytics/internal/stores"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newSeededStore(t *testing.T) stores.TelemetryStore {
	t.Helper()

	path := filepath.Join(t.TempDir(), "telemetry.db")
	store, err := stores.NewTelemetryStore(path, 5*time.Second, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	err = store.InTransaction(context.Background(), func(tx stores.TelemetryTx) error {
		events := []*models.SortEvent{
			{ID: "evt-1", Timestamp: "2024-03-15T08:30:00", ItemType: "can", Confidence: 0.92, SortDestination: "recycling"},
			{ID: "evt-2", Timestamp: "2024-03-15T14:45:00", ItemType: "garbage", Confidence: 0.81, SortDestination: "garbage"},
			{ID: "evt-3", Timestamp: "not-a-timestamp", ItemType: "bottle", Confidence: 0.70, SortDestination: "recycling"},
		}
		for _, event := range events {
			if err := tx.UpsertEvent(context.Background(), event); err != nil {
				return err
			}
		}
		dailyStats := []*models.DailyStat{
			{Date: "2024-03-14", CanCount: 2, RecyclingCount: 1, GarbageCount: 1, TotalCount: 4},
			{Date: "2024-03-15", CanCount: 1, RecyclingCount: 1, GarbageCount: 1, TotalCount: 3},
		}
		for _, stat := range dailyStats {
			if err := tx.UpsertDailyStat(context.Background(), stat); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
	return store
}

func readArtifact(t *testing.T, dir, artifact string, out any) {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(dir, artifact))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, out))
}

func TestMaterialize_PublishesAllArtifacts(t *testing.T) {
	t.Parallel()

	store := newSeededStore(t)
	artifactDir := t.TempDir()
	fileStorage, err := filestorages.NewFileStorage(artifactDir)
	require.NoError(t, err)

	materializer := snapshots.NewSnapshotMaterializer(store, fileStorage, 50, 90)
	require.NoError(t, materializer.Materialize(context.Background()))

	var totals models.TotalsSummary
	readArtifact(t, artifactDir, snapshots.ArtifactTotals, &totals)
	assert.Equal(t, int64(3), totals.TotalCans)
	assert.Equal(t, int64(2), totals.TotalRecycling)
	assert.Equal(t, int64(2), totals.TotalGarbage)
	assert.Equal(t, int64(7), totals.GrandTotal)

	var dailyStats []*models.DailyStat
	readArtifact(t, artifactDir, snapshots.ArtifactDailySeries, &dailyStats)
	require.Len(t, dailyStats, 2)
	assert.Equal(t, "2024-03-14", dailyStats[0].Date)
	assert.Equal(t, "2024-03-15", dailyStats[1].Date)

	var events []*models.SortEvent
	readArtifact(t, artifactDir, snapshots.ArtifactRecentEvents, &events)
	require.Len(t, events, 3)
	// Newest first; the lexically greatest timestamp sorts first.
	assert.Equal(t, "evt-3", events[0].ID)
	assert.Equal(t, "not-a-timestamp", events[0].FormattedTime)
	assert.Equal(t, "evt-2", events[1].ID)
	assert.Equal(t, "Mar 15, 2024, 2:45 PM", events[1].FormattedTime)
	assert.Equal(t, "Mar 15, 2024, 8:30 AM", events[2].FormattedTime)
}

func TestMaterialize_EmptyStorePublishesEmptyArtifacts(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "telemetry.db")
	store, err := stores.NewTelemetryStore(path, 5*time.Second, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	artifactDir := t.TempDir()
	fileStorage, err := filestorages.NewFileStorage(artifactDir)
	require.NoError(t, err)

	materializer := snapshots.NewSnapshotMaterializer(store, fileStorage, 50, 90)
	require.NoError(t, materializer.Materialize(context.Background()))

	var totals models.TotalsSummary
	readArtifact(t, artifactDir, snapshots.ArtifactTotals, &totals)
	assert.Equal(t, int64(0), totals.GrandTotal)

	// Empty collections must serialize as [], not null.
	dailyData, err := os.ReadFile(filepath.Join(artifactDir, snapshots.ArtifactDailySeries))
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(dailyData))

	eventsData, err := os.ReadFile(filepath.Join(artifactDir, snapshots.ArtifactRecentEvents))
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(eventsData))
}

func TestMaterialize_DailySeriesCappedToNewestRows(t *testing.T) {
	t.Parallel()

	store := newSeededStore(t)
	artifactDir := t.TempDir()
	fileStorage, err := filestorages.NewFileStorage(artifactDir)
	require.NoError(t, err)

	materializer := snapshots.NewSnapshotMaterializer(store, fileStorage, 50, 1)
	require.NoError(t, materializer.Materialize(context.Background()))

	var dailyStats []*models.DailyStat
	readArtifact(t, artifactDir, snapshots.ArtifactDailySeries, &dailyStats)
	require.Len(t, dailyStats, 1)
	assert.Equal(t, "2024-03-15", dailyStats[0].Date, "the cap keeps the most recent dates")
}

func TestMaterialize_OneFailedArtifactDoesNotBlockOthers(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := newSeededStore(t)
	putErr := errors.New("no space left on device")

	fileStorage := filestoragemocks.NewMockFileStorage(ctrl)
	fileStorage.EXPECT().Put(gomock.Any(), snapshots.ArtifactTotals, gomock.Any()).Return(putErr)
	fileStorage.EXPECT().Put(gomock.Any(), snapshots.ArtifactDailySeries, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, r io.Reader) error {
			_, err := io.ReadAll(r)
			return err
		})
	fileStorage.EXPECT().Put(gomock.Any(), snapshots.ArtifactRecentEvents, gomock.Any()).Return(nil)

	materializer := snapshots.NewSnapshotMaterializer(store, fileStorage, 50, 90)
	err := materializer.Materialize(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, putErr)
	assert.Contains(t, err.Error(), snapshots.ArtifactTotals)
}
