package gtfsdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"

	"gtfsreader.onebusaway.org/gtfs"
	"gtfsreader.onebusaway.org/internal/logging"
)

// Client is the main entry point for the library
type Client struct {
	config        Config
	logger        *slog.Logger
	DB            *sql.DB
	Queries       *Queries
	importRuntime time.Duration
}

// ImportInfo describes where an assembled feed came from.
type ImportInfo struct {
	Source    string
	Hash      string // empty when the source has no single byte stream
	RowErrors int
}

// ImportResult reports what an import did.
type ImportResult struct {
	Skipped  bool
	Metadata ImportMetadata
	Counts   map[string]int
}

// NewClient creates a new Client with the provided configuration
func NewClient(config Config) (*Client, error) {
	db, err := createDB(config)
	if err != nil {
		return nil, fmt.Errorf("unable to create DB: %w", err)
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if config.verbose {
		logger.Info("database ready", slog.String("path", config.DBPath))
	}

	return &Client{
		config:  config,
		logger:  logger,
		DB:      db,
		Queries: New(db),
	}, nil
}

func (c *Client) Close() error {
	return c.DB.Close()
}

// ImportRuntime returns how long the last non-skipped import took.
func (c *Client) ImportRuntime() time.Duration {
	return c.importRuntime
}

// DownloadAndStore downloads a GTFS zip archive from url and imports it
func (c *Client) DownloadAndStore(ctx context.Context, url string) (ImportResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ImportResult{}, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return ImportResult{}, err
	}
	defer logging.SafeCloseWithLogging(resp.Body, c.logger, "download_feed")

	if resp.StatusCode != http.StatusOK {
		return ImportResult{}, fmt.Errorf("downloading %s: unexpected status %s", url, resp.Status)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return ImportResult{}, err
	}

	return c.ImportArchive(ctx, b, url)
}

// ImportFromFile imports a local GTFS zip archive into the database
func (c *Client) ImportFromFile(ctx context.Context, path string) (ImportResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportResult{}, err
	}

	return c.ImportArchive(ctx, data, path)
}

// ImportArchive decodes a zip archive and imports it, unless the same bytes
// from the same source were the last import.
func (c *Client) ImportArchive(ctx context.Context, data []byte, source string) (ImportResult, error) {
	hash := HashBytes(data)
	if meta, unchanged := c.unchanged(ctx, hash, source); unchanged {
		return c.skipped(meta), nil
	}

	src, err := gtfs.NewZipSource(data)
	if err != nil {
		return ImportResult{}, err
	}

	feed, rowErrs, err := gtfs.Assemble(src, gtfs.WithLogger(c.logger))
	if err != nil {
		return ImportResult{}, err
	}

	return c.ImportFeed(ctx, feed, ImportInfo{Source: source, Hash: hash, RowErrors: len(rowErrs)})
}

// ImportFeed replaces the stored feed with feed in a single transaction.
func (c *Client) ImportFeed(ctx context.Context, feed *gtfs.Feed, info ImportInfo) (ImportResult, error) {
	if meta, unchanged := c.unchanged(ctx, info.Hash, info.Source); unchanged {
		return c.skipped(meta), nil
	}

	startTime := time.Now()

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return ImportResult{}, fmt.Errorf("error starting transaction: %w", err)
	}
	defer logging.SafeRollbackWithLogging(tx, c.logger, "import_feed")

	qtx := c.Queries.WithTx(tx)
	if err := qtx.clearAllGTFSData(ctx); err != nil {
		return ImportResult{}, err
	}
	for _, b := range feedBatches(feed) {
		if err := qtx.insertBatch(ctx, b); err != nil {
			return ImportResult{}, err
		}
	}

	meta := ImportMetadata{
		RunID:      uuid.NewString(),
		FileHash:   info.Hash,
		FileSource: info.Source,
		ImportTime: time.Now().UnixMilli(),
		RowErrors:  int64(info.RowErrors),
	}
	if err := qtx.UpsertImportMetadata(ctx, meta); err != nil {
		return ImportResult{}, fmt.Errorf("error recording import: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return ImportResult{}, fmt.Errorf("error committing transaction: %w", err)
	}

	c.importRuntime = time.Since(startTime)
	counts := feed.Counts()
	logging.LogOperation(c.logger, "feed_imported",
		slog.String("run_id", meta.RunID),
		slog.String("source", info.Source),
		slog.Int("stops", counts["stops"]),
		slog.Int("stop_times", counts["stop_times"]),
		slog.Duration("duration", c.importRuntime))

	return ImportResult{Metadata: meta, Counts: counts}, nil
}

// unchanged reports whether hash and source match the last import. An empty
// hash never matches.
func (c *Client) unchanged(ctx context.Context, hash, source string) (ImportMetadata, bool) {
	if hash == "" {
		return ImportMetadata{}, false
	}
	meta, err := c.Queries.GetImportMetadata(ctx)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logging.LogError(c.logger, "failed to read import metadata", err)
		}
		return ImportMetadata{}, false
	}
	return meta, meta.FileHash == hash && meta.FileSource == source
}

func (c *Client) skipped(meta ImportMetadata) ImportResult {
	logging.LogOperation(c.logger, "feed_import_skipped",
		slog.String("source", meta.FileSource),
		slog.String("run_id", meta.RunID))
	return ImportResult{Skipped: true, Metadata: meta}
}

// TableCounts returns the number of rows in every table
func (c *Client) TableCounts() (map[string]int, error) {
	rows, err := c.DB.Query("SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'")
	if err != nil {
		return nil, fmt.Errorf("failed to query table names: %w", err)
	}

	var tables []string
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, tableName)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(tables))
	for _, table := range tables {
		var count int
		if err := c.DB.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&count); err != nil {
			return nil, err
		}
		counts[table] = count
	}

	return counts, nil
}

func (c *Client) clearAllGTFSData(ctx context.Context) error {
	return c.Queries.clearAllGTFSData(ctx)
}
