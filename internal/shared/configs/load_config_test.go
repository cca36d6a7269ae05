package configs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfigYAML = `
server:
  port: 8080
  read_header_timeout: 5
  read_timeout: 30
  write_timeout: 30
  idle_timeout: 120
log:
  level: info
ingest:
  api_key: test-key
  max_batch_bytes: 2097152
storage:
  path: ./data/sorting_data.db
  busy_timeout_seconds: 5
snapshots:
  root_dir: ./static/api
  recent_events_limit: 50
  daily_series_limit: 90
`

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "configs.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_Valid(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig(writeConfigFile(t, validConfigYAML))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "test-key", cfg.Ingest.APIKey)
	assert.Equal(t, 2097152, cfg.Ingest.MaxBatchBytes)
	assert.Equal(t, "./data/sorting_data.db", cfg.Storage.Path)
	assert.Equal(t, 5, cfg.Storage.BusyTimeoutSeconds)
	assert.Equal(t, "./static/api", cfg.Snapshots.RootDir)
	assert.Equal(t, 50, cfg.Snapshots.RecentEventsLimit)
	assert.Equal(t, 90, cfg.Snapshots.DailySeriesLimit)
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_ValidationFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		yaml      string
		wantField string
	}{
		{
			name: "missing api key",
			yaml: `
server:
  port: 8080
  read_header_timeout: 5
  read_timeout: 30
  write_timeout: 30
  idle_timeout: 120
log:
  level: info
ingest:
  max_batch_bytes: 2097152
storage:
  path: ./data/sorting_data.db
  busy_timeout_seconds: 5
snapshots:
  root_dir: ./static/api
  recent_events_limit: 50
  daily_series_limit: 90
`,
			wantField: "ingest.apikey",
		},
		{
			name: "port out of range",
			yaml: `
server:
  port: 70000
  read_header_timeout: 5
  read_timeout: 30
  write_timeout: 30
  idle_timeout: 120
log:
  level: info
ingest:
  api_key: test-key
  max_batch_bytes: 2097152
storage:
  path: ./data/sorting_data.db
  busy_timeout_seconds: 5
snapshots:
  root_dir: ./static/api
  recent_events_limit: 50
  daily_series_limit: 90
`,
			wantField: "server.port",
		},
		{
			name: "batch limit below minimum",
			yaml: `
server:
  port: 8080
  read_header_timeout: 5
  read_timeout: 30
  write_timeout: 30
  idle_timeout: 120
log:
  level: info
ingest:
  api_key: test-key
  max_batch_bytes: 16
storage:
  path: ./data/sorting_data.db
  busy_timeout_seconds: 5
snapshots:
  root_dir: ./static/api
  recent_events_limit: 50
  daily_series_limit: 90
`,
			wantField: "ingest.maxbatchbytes",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := LoadConfig(writeConfigFile(t, tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config validation failed")
			assert.Contains(t, err.Error(), tt.wantField)
		})
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(writeConfigFile(t, "server: [not: valid"))
	require.Error(t, err)
}
