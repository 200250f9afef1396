package gtfs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"gtfsreader.onebusaway.org/gtfs"
	"gtfsreader.onebusaway.org/gtfsdb"
	"gtfsreader.onebusaway.org/internal/logging"
)

type sourceKind int

const (
	localFile sourceKind = iota
	localDir
	remoteHTTP
	remoteS3
)

func (k sourceKind) remote() bool {
	return k == remoteHTTP || k == remoteS3
}

func classifySource(source string) (sourceKind, error) {
	switch {
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return remoteHTTP, nil
	case strings.HasPrefix(source, "s3://"):
		return remoteS3, nil
	case source == "":
		return 0, errors.New("no GTFS source configured")
	}

	info, err := os.Stat(source)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", gtfs.ErrSourceUnavailable, err)
	}
	if info.IsDir() {
		return localDir, nil
	}
	return localFile, nil
}

// loadedFeed is the result of one load. hash is empty for directories.
type loadedFeed struct {
	handle  *gtfs.Handle
	hash    string
	elapsed time.Duration
}

func (manager *Manager) rawGtfsData(ctx context.Context) ([]byte, error) {
	switch manager.kind {
	case localFile:
		b, err := os.ReadFile(manager.gtfsSource)
		if err != nil {
			return nil, fmt.Errorf("error reading local GTFS file: %w", err)
		}
		return b, nil
	case remoteHTTP:
		return manager.downloadHTTP(ctx)
	case remoteS3:
		return manager.downloadS3(ctx)
	}
	return nil, fmt.Errorf("source %s is not a single file", manager.gtfsSource)
}

func (manager *Manager) downloadHTTP(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, manager.gtfsSource, nil)
	if err != nil {
		return nil, err
	}

	resp, err := manager.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error downloading GTFS data: %w", err)
	}
	defer logging.SafeCloseWithLogging(resp.Body, manager.logger, "download_gtfs")

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error downloading GTFS data: unexpected status %s", resp.Status)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading GTFS data: %w", err)
	}
	return b, nil
}

// parseS3Location splits s3://bucket/key.
func parseS3Location(location string) (bucket, key string, err error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", "", err
	}
	key = strings.TrimPrefix(u.Path, "/")
	if u.Scheme != "s3" || u.Host == "" || key == "" {
		return "", "", fmt.Errorf("invalid S3 location %q, want s3://bucket/key", location)
	}
	return u.Host, key, nil
}

func (manager *Manager) downloadS3(ctx context.Context) ([]byte, error) {
	bucket, key, err := parseS3Location(manager.gtfsSource)
	if err != nil {
		return nil, err
	}

	if manager.s3Client == nil {
		opts := []func(*config.LoadOptions) error{}
		if manager.config.S3Region != "" {
			opts = append(opts, config.WithRegion(manager.config.S3Region))
		}
		awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}

		endpoint := manager.config.S3Endpoint
		manager.s3Client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if endpoint != "" {
				o.BaseEndpoint = aws.String(endpoint)
				o.UsePathStyle = true
			}
		})
	}

	result, err := manager.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get GTFS object: %w", err)
	}
	defer logging.SafeCloseWithLogging(result.Body, manager.logger, "download_gtfs_s3")

	b, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading GTFS object: %w", err)
	}
	return b, nil
}

// loadGTFSData fetches and assembles the feed without touching manager state
func (manager *Manager) loadGTFSData(ctx context.Context) (*loadedFeed, error) {
	startTime := time.Now()
	opts := []gtfs.Option{
		gtfs.WithLogger(manager.logger),
		gtfs.WithFileObserver(manager.metrics.ObserveFile),
	}

	var (
		src  *gtfs.FSSource
		hash string
		err  error
	)
	if manager.kind == localDir {
		src, err = gtfs.OpenDir(manager.gtfsSource)
	} else {
		var b []byte
		b, err = manager.rawGtfsData(ctx)
		if err == nil {
			hash = gtfsdb.HashBytes(b)
			src, err = gtfs.NewZipSource(b)
		}
	}
	if err != nil {
		return nil, err
	}

	handle, err := gtfs.Open(src, opts...)
	if err != nil {
		return nil, fmt.Errorf("error parsing GTFS data: %w", err)
	}

	return &loadedFeed{handle: handle, hash: hash, elapsed: time.Since(startTime)}, nil
}

// updateStaticGTFS reloads remote feeds on a regular schedule
func (manager *Manager) updateStaticGTFS() {
	defer manager.wg.Done()

	ticker := time.NewTicker(manager.config.reloadInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			_ = manager.Reload(ctx) // logged; the previous feed keeps serving
			cancel()
		case <-manager.shutdownChan:
			manager.logger.Info("shutting down static GTFS updates")
			return
		}
	}
}

// Reload fetches the feed again and swaps it in. On failure the current
// feed stays in place.
func (manager *Manager) Reload(ctx context.Context) error {
	manager.reloadMu.Lock()
	defer manager.reloadMu.Unlock()

	loaded, err := manager.loadGTFSData(ctx)
	if err != nil {
		manager.metrics.RecordLoad(err, nil, 0)
		logging.LogError(manager.logger, "error updating GTFS data", err,
			slog.String("source", manager.gtfsSource))
		return err
	}
	if err := manager.persist(ctx, loaded); err != nil {
		manager.metrics.RecordLoad(err, nil, loaded.elapsed)
		logging.LogError(manager.logger, "error storing GTFS data", err,
			slog.String("source", manager.gtfsSource))
		return err
	}

	manager.setStaticGTFS(loaded)
	return nil
}

func (manager *Manager) persist(ctx context.Context, loaded *loadedFeed) error {
	if manager.GtfsDB == nil {
		return nil
	}
	result, err := manager.GtfsDB.ImportFeed(ctx, loaded.handle.Feed(), gtfsdb.ImportInfo{
		Source:    manager.gtfsSource,
		Hash:      loaded.hash,
		RowErrors: len(loaded.handle.RowErrors()),
	})
	if err != nil {
		return err
	}
	if !result.Skipped {
		logging.LogOperation(manager.logger, "gtfs_data_persisted",
			slog.String("source", manager.gtfsSource),
			slog.Duration("duration", manager.GtfsDB.ImportRuntime()))
	}
	return nil
}

func (manager *Manager) setStaticGTFS(loaded *loadedFeed) {
	counts := loaded.handle.Feed().Counts()
	rowErrors := loaded.handle.RowErrors()

	manager.mu.Lock()
	manager.handle = loaded.handle
	manager.lastUpdated = time.Now()
	manager.mu.Unlock()

	manager.metrics.RecordLoad(nil, counts, loaded.elapsed)
	logging.LogFeedLoaded(manager.logger, manager.gtfsSource, counts, len(rowErrors), loaded.elapsed)
	if manager.config.Verbose {
		for _, rowErr := range rowErrors {
			logging.LogRowError(manager.logger, rowErr.File, rowErr.Line, rowErr.Column, rowErr.Err)
		}
	}
}
