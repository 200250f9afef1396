package app

import (
	"log/slog"

	"gtfsreader.onebusaway.org/internal/appconf"
	"gtfsreader.onebusaway.org/internal/gtfs"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware.
type Application struct {
	Config      appconf.Config
	GtfsConfig  gtfs.Config
	Logger      *slog.Logger
	GtfsManager *gtfs.Manager
}
