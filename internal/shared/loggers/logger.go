package loggers

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger aliases zerolog.Logger so callers depend on this package, not on
// zerolog directly.
type Logger = zerolog.Logger

// New builds the process-wide JSON logger at the given level. An unparsable
// level string is an error, not a silent default.
func New(level string) (Logger, error) {
	zerologLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}

	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	// Create logger with JSON output, timestamp, and specified level
	logger := zerolog.New(os.Stdout).
		Level(zerologLevel).
		With().
		Timestamp().
		Caller().
		Logger()

	return logger, nil
}

// Ctx returns the request-scoped logger from ctx, or a no-op logger when
// none was attached.
var Ctx = func(ctx context.Context) *Logger {
	return zerolog.Ctx(ctx)
}
