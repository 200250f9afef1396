package gtfs

import (
	"log/slog"
	"time"

	"gtfsreader.onebusaway.org/internal/appconf"
)

const defaultReloadInterval = 24 * time.Hour

type Config struct {
	// GtfsURL locates the feed: a zip file, a directory, an http(s) URL or
	// s3://bucket/key.
	GtfsURL string
	// GTFSDataPath is the SQLite database the feed is copied into. Empty
	// disables persistence.
	GTFSDataPath   string
	Env            appconf.Environment
	Verbose        bool
	ReloadInterval time.Duration
	S3Region       string
	S3Endpoint     string
	Logger         *slog.Logger
}

func (config Config) reloadInterval() time.Duration {
	if config.ReloadInterval <= 0 {
		return defaultReloadInterval
	}
	return config.ReloadInterval
}

func (config Config) logger() *slog.Logger {
	if config.Logger == nil {
		return slog.Default()
	}
	return config.Logger
}
