package gtfs

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"gtfsreader.onebusaway.org/gtfs"
	"gtfsreader.onebusaway.org/gtfsdb"
	"gtfsreader.onebusaway.org/internal/metrics"
	"gtfsreader.onebusaway.org/internal/utils"
)

// Manager owns the current feed and replaces it when the source changes.
// Readers take a snapshot with Handle; a reload never mutates a handle
// that has been handed out.
type Manager struct {
	gtfsSource   string
	kind         sourceKind
	handle       *gtfs.Handle
	GtfsDB       *gtfsdb.Client
	lastUpdated  time.Time
	mu           sync.RWMutex
	reloadMu     sync.Mutex
	config       Config
	logger       *slog.Logger
	metrics      *metrics.FeedMetrics
	httpClient   *http.Client
	s3Client     *s3.Client
	shutdownChan chan struct{}
	wg           sync.WaitGroup
	shutdownOnce sync.Once
}

// InitGTFSManager loads the feed named by config.GtfsURL, optionally copies
// it into the database, and starts periodic reloads for remote sources.
func InitGTFSManager(config Config) (*Manager, error) {
	kind, err := classifySource(config.GtfsURL)
	if err != nil {
		return nil, err
	}

	manager := &Manager{
		gtfsSource:   config.GtfsURL,
		kind:         kind,
		config:       config,
		logger:       config.logger(),
		metrics:      metrics.NewFeedMetrics(config.GtfsURL),
		httpClient:   &http.Client{Timeout: 2 * time.Minute},
		shutdownChan: make(chan struct{}),
	}

	if config.GTFSDataPath != "" {
		dbConfig := gtfsdb.NewConfig(config.GTFSDataPath, config.Env, config.Verbose)
		dbConfig.Logger = manager.logger
		manager.GtfsDB, err = gtfsdb.NewClient(dbConfig)
		if err != nil {
			return nil, fmt.Errorf("error building GTFS database: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	if err := manager.Reload(ctx); err != nil {
		if manager.GtfsDB != nil {
			_ = manager.GtfsDB.Close()
		}
		return nil, err
	}

	if kind.remote() {
		manager.wg.Add(1)
		go manager.updateStaticGTFS()
	}

	return manager, nil
}

// Shutdown gracefully shuts down the manager and its background goroutines
func (manager *Manager) Shutdown() {
	manager.shutdownOnce.Do(func() {
		close(manager.shutdownChan)
		manager.wg.Wait()
		if manager.GtfsDB != nil {
			_ = manager.GtfsDB.Close()
		}
	})
}

// Handle returns the current feed handle.
func (manager *Manager) Handle() *gtfs.Handle {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return manager.handle
}

func (manager *Manager) LastUpdated() time.Time {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return manager.lastUpdated
}

func (manager *Manager) Source() string {
	return manager.gtfsSource
}

// Statistics summarises the current feed for logs and the API.
type Statistics struct {
	Source      string         `json:"source"`
	LastUpdated time.Time      `json:"lastUpdated"`
	Counts      map[string]int `json:"counts"`
	RowErrors   int            `json:"rowErrors"`
}

func (manager *Manager) Statistics() Statistics {
	manager.mu.RLock()
	handle, lastUpdated := manager.handle, manager.lastUpdated
	manager.mu.RUnlock()

	return Statistics{
		Source:      manager.gtfsSource,
		LastUpdated: lastUpdated,
		Counts:      handle.Feed().Counts(),
		RowErrors:   len(handle.RowErrors()),
	}
}

type stopWithDistance struct {
	stop     *gtfs.Stop
	distance float64
}

// GetStopsForLocation returns up to maxCount stops within radius meters of
// the point, nearest first. With a database the bounding box query runs
// there; otherwise every stop is scanned.
func (manager *Manager) GetStopsForLocation(ctx context.Context, lat, lon, radius float64, maxCount int) ([]*gtfs.Stop, error) {
	if radius == 0 {
		radius = 1000
	}
	handle := manager.Handle()
	minLat, maxLat, minLon, maxLon := utils.BoundingBox(lat, lon, radius)

	var ids []string
	if manager.GtfsDB != nil {
		dbStops, err := manager.GtfsDB.Queries.GetStopsWithinBounds(ctx, gtfsdb.GetStopsWithinBoundsParams{
			MinLat: minLat,
			MaxLat: maxLat,
			MinLon: minLon,
			MaxLon: maxLon,
		})
		if err != nil {
			return nil, err
		}
		for _, s := range dbStops {
			ids = append(ids, s.ID)
		}
	} else {
		for _, s := range handle.Feed().Stops {
			ids = append(ids, s.ID)
		}
	}

	var candidates []stopWithDistance
	for _, id := range ids {
		stop, ok := handle.Stop(id)
		if !ok || stop.Lat == nil || stop.Lon == nil {
			continue
		}
		distance := utils.Haversine(lat, lon, float64(*stop.Lat), float64(*stop.Lon))
		if distance <= radius {
			candidates = append(candidates, stopWithDistance{stop, distance})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})

	stops := make([]*gtfs.Stop, 0, len(candidates))
	for i := 0; i < len(candidates) && i < maxCount; i++ {
		stops = append(stops, candidates[i].stop)
	}
	return stops, nil
}
