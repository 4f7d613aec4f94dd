package app

import "log/slog"

// Set with -ldflags "-X github.com/heartmarshall/learning-oracle/internal/app.Version=...".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// buildAttr groups the build metadata for startup log lines.
func buildAttr() slog.Attr {
	return slog.Group("build",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("time", BuildTime),
	)
}
