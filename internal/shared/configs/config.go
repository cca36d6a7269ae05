package configs

// Config holds all configuration for the application.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Log       LogConfig       `mapstructure:"log" validate:"required"`
	Ingest    IngestConfig    `mapstructure:"ingest" validate:"required"`
	Storage   StorageConfig   `mapstructure:"storage" validate:"required"`
	Snapshots SnapshotsConfig `mapstructure:"snapshots" validate:"required"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port              int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadHeaderTimeout int `mapstructure:"read_header_timeout" validate:"required,min=1"` // seconds
	ReadTimeout       int `mapstructure:"read_timeout" validate:"required,min=1"`        // seconds (headers+body)
	WriteTimeout      int `mapstructure:"write_timeout" validate:"required,min=1"`       // seconds (response)
	IdleTimeout       int `mapstructure:"idle_timeout" validate:"required,min=1"`        // seconds (keep-alive)
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required"`
}

// IngestConfig holds the upload endpoint configuration. APIKey is the shared
// secret the sorting device must present in each batch.
type IngestConfig struct {
	APIKey        string `mapstructure:"api_key" validate:"required"`
	MaxBatchBytes int    `mapstructure:"max_batch_bytes" validate:"required,min=1024"`
}

// StorageConfig holds the SQLite storage configuration.
type StorageConfig struct {
	Path               string `mapstructure:"path" validate:"required"`
	BusyTimeoutSeconds int    `mapstructure:"busy_timeout_seconds" validate:"required,min=1"`
}

// SnapshotsConfig holds the materialized artifact configuration.
type SnapshotsConfig struct {
	RootDir           string `mapstructure:"root_dir" validate:"required"`
	RecentEventsLimit int    `mapstructure:"recent_events_limit" validate:"required,min=1"`
	DailySeriesLimit  int    `mapstructure:"daily_series_limit" validate:"required,min=1"`
}
