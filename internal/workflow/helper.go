package workflow

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/aravindh-murugesan/ontap-snapoptimize-go/internal/cluster"
	"github.com/aravindh-murugesan/ontap-snapoptimize-go/internal/cluster/ontap"
	"github.com/google/uuid"
	"github.com/lmittmann/tint"
)

// SetupLogger configures the application-wide logger.
// It uses "tint" for colorized, structured logging that is easy to read in terminals.
func SetupLogger(level string, clusterName string) *slog.Logger {
	return newLogger(os.Stderr, level, false).With("cluster", clusterName)
}

func newLogger(w io.Writer, level string, noColor bool) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := tint.NewHandler(w, &tint.Options{
		Level:      logLevel,
		TimeFormat: time.DateTime,
		NoColor:    noColor,
	})

	return slog.New(handler)
}

func newRunID() string {
	return fmt.Sprintf("req-%s", uuid.New().String())
}

// connect opens a fresh session to one cluster. Sessions are never shared
// between the target and the source cluster.
func connect(ctx context.Context, profile cluster.Profile, timeouts cluster.TimeoutConfig) (*ontap.Client, error) {
	if profile.Timeout > 0 {
		timeouts.OperationTimeout = profile.Timeout
	}

	client := &ontap.Client{
		Profile:  profile,
		Timeouts: timeouts,
	}
	if err := client.NewClient(ctx); err != nil {
		return nil, err
	}
	return client, nil
}

// logSnapshots writes one debug line per snapshot, oldest first.
func logSnapshots(logger *slog.Logger, label string, snaps []cluster.Snapshot) {
	logger.Debug("Snapshot listing", "listing", label, "count", len(snaps))
	for _, s := range snaps {
		logger.Debug("Snapshot",
			"listing", label,
			"version_uuid", s.VersionUUID,
			"name", s.Name,
			"create_time", s.CreateTime.Format(time.RFC3339))
	}
}
