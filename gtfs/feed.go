package gtfs

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gtfsreader.onebusaway.org/internal/logging"
)

// Feed holds the typed contents of every known file of one source. Records
// keep the order they had in their file. A Feed is not modified after
// Assemble returns and may be read from several goroutines.
type Feed struct {
	Agencies       []Agency
	Stops          []Stop
	Routes         []Route
	Trips          []Trip
	StopTimes      []StopTime
	Calendars      []Calendar
	CalendarDates  []CalendarDate
	FareAttributes []FareAttribute
	FareRules      []FareRule
	Shapes         []ShapePoint
	Frequencies    []Frequency
	Transfers      []Transfer
	FeedInfo       []FeedInfo
	Pathways       []Pathway
	Levels         []Level
	Attributions   []Attribution

	lines   map[FileKind][]int
	indexes map[FileKind]map[string]int
	present map[FileKind]bool
}

func newFeed() *Feed {
	return &Feed{
		lines:   make(map[FileKind][]int),
		indexes: make(map[FileKind]map[string]int),
		present: make(map[FileKind]bool),
	}
}

// Has reports whether the file was present in the source.
func (f *Feed) Has(kind FileKind) bool {
	return f.present[kind]
}

// Count returns the number of decoded records of a file.
func (f *Feed) Count(kind FileKind) int {
	return len(f.lines[kind])
}

// Counts returns the record count of every known file, keyed by base name.
func (f *Feed) Counts() map[string]int {
	counts := make(map[string]int, len(registry.ordered))
	for _, s := range registry.ordered {
		counts[s.Kind.Base()] = f.Count(s.Kind)
	}
	return counts
}

// Line returns the source line of the i-th record of a file.
func (f *Feed) Line(kind FileKind, i int) int {
	lines := f.lines[kind]
	if i < 0 || i >= len(lines) {
		return 0
	}
	return lines[i]
}

// FileStats summarises the decoding of a single file.
type FileStats struct {
	File      FileKind
	Present   bool
	Rows      int
	RowErrors int
	Duration  time.Duration
}

// Option configures assembly.
type Option func(*settings)

type settings struct {
	logger *slog.Logger
	onFile func(FileStats)
}

// WithLogger logs per-file progress to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// WithFileObserver calls fn after every known file has been processed,
// including absent optional files.
func WithFileObserver(fn func(FileStats)) Option {
	return func(s *settings) { s.onFile = fn }
}

func newSettings(opts []Option) settings {
	var s settings
	for _, o := range opts {
		o(&s)
	}
	return s
}

// Assemble decodes every known file of src into a Feed.
//
// A missing required file, an unsatisfied conditional requirement, an
// unreadable header or a failing source abort assembly and no Feed is
// returned. Rows that fail to decode are skipped and reported in the returned
// RowErrors, which the caller inspects to decide whether the partial result
// is usable.
func Assemble(src TabularSource, opts ...Option) (*Feed, RowErrors, error) {
	cfg := newSettings(opts)
	start := time.Now()

	if err := registry.checkPresence(src); err != nil {
		logging.LogError(cfg.logger, "feed rejected", err)
		return nil, nil, err
	}

	feed := newFeed()
	var rowErrs RowErrors

	for _, s := range registry.ordered {
		stats, errs, err := assembleFile(feed, src, s)
		if err != nil {
			logging.LogError(cfg.logger, "failed to decode file", err,
				slog.String("file", string(s.Kind)))
			return nil, nil, err
		}
		rowErrs = append(rowErrs, errs...)

		if stats.Present {
			logging.LogOperation(cfg.logger, "file_decoded",
				slog.String("file", string(s.Kind)),
				slog.Int("rows", stats.Rows),
				slog.Int("row_errors", stats.RowErrors),
				slog.Duration("duration", stats.Duration))
		}
		if cfg.onFile != nil {
			cfg.onFile(stats)
		}
	}

	rowErrs = append(rowErrs, feed.buildIndexes()...)

	logging.LogOperation(cfg.logger, "feed_assembled",
		slog.Int("files", len(feed.present)),
		slog.Int("row_errors", len(rowErrs)),
		slog.Duration("duration", time.Since(start)))

	return feed, rowErrs, nil
}

func assembleFile(feed *Feed, src TabularSource, s FileSchema) (FileStats, RowErrors, error) {
	stats := FileStats{File: s.Kind}
	if !src.Has(string(s.Kind)) {
		return stats, nil, nil
	}

	start := time.Now()
	rows, err := src.Rows(string(s.Kind))
	if err != nil {
		return stats, nil, asFeedError(s.Kind, err)
	}
	defer rows.Close() // nolint:errcheck

	errs, err := s.load(feed, rows)
	if err != nil {
		return stats, nil, asFeedError(s.Kind, err)
	}

	feed.present[s.Kind] = true
	stats.Present = true
	stats.Rows = feed.Count(s.Kind)
	stats.RowErrors = len(errs)
	stats.Duration = time.Since(start)
	return stats, errs, nil
}

func asFeedError(kind FileKind, err error) error {
	var fe *FeedError
	if errors.As(err, &fe) {
		return fe
	}
	switch {
	case errors.Is(err, ErrFileNotFound):
		return &FeedError{Kind: ErrMissingRequiredFile, File: string(kind), Err: err}
	case errors.Is(err, ErrHeaderMismatch):
		return &FeedError{Kind: ErrHeaderMismatch, File: string(kind), Err: err}
	}
	return &FeedError{Kind: ErrSourceUnavailable, File: string(kind), Err: err}
}

// buildIndexes creates the id lookups of every file with an identifier
// column. A repeated identifier is reported; the first record keeps the id.
func (f *Feed) buildIndexes() RowErrors {
	var errs RowErrors
	for _, s := range registry.ordered {
		if s.ids == nil {
			continue
		}
		index := make(map[string]int)
		for i, id := range s.ids(f) {
			if id == "" {
				continue
			}
			if _, dup := index[id]; dup {
				errs = append(errs, &RowError{
					File:   string(s.Kind),
					Line:   f.Line(s.Kind, i),
					Column: s.IDColumn,
					Err:    fmt.Errorf("%w: %q", ErrDuplicateID, id),
				})
				continue
			}
			index[id] = i
		}
		f.indexes[s.Kind] = index
	}
	return errs
}

// Records returns pointers to the records of a file, in source order. The
// concrete element type is the file's record type, e.g. *Stop for stops.txt.
func (f *Feed) Records(kind FileKind) []any {
	s, ok := registry.byName[kind]
	if !ok {
		return nil
	}
	return s.records(f)
}

// Find returns the record of a file with the given identifier.
func (f *Feed) Find(kind FileKind, id string) (any, bool) {
	s, ok := registry.byName[kind]
	if !ok || s.ids == nil {
		return nil, false
	}
	i, ok := f.indexes[kind][id]
	if !ok {
		return nil, false
	}
	return s.at(f, i), true
}

func findIn[T any](f *Feed, kind FileKind, recs []T, id string) (*T, bool) {
	i, ok := f.indexes[kind][id]
	if !ok {
		return nil, false
	}
	return &recs[i], true
}

func (f *Feed) Agency(id string) (*Agency, bool) { return findIn(f, FileAgency, f.Agencies, id) }
func (f *Feed) Stop(id string) (*Stop, bool)     { return findIn(f, FileStops, f.Stops, id) }
func (f *Feed) Route(id string) (*Route, bool)   { return findIn(f, FileRoutes, f.Routes, id) }
func (f *Feed) Trip(id string) (*Trip, bool)     { return findIn(f, FileTrips, f.Trips, id) }
func (f *Feed) Level(id string) (*Level, bool)   { return findIn(f, FileLevels, f.Levels, id) }

// Calendar returns the calendar.txt entry of a service.
func (f *Feed) Calendar(serviceID string) (*Calendar, bool) {
	return findIn(f, FileCalendar, f.Calendars, serviceID)
}

func (f *Feed) FareAttribute(id string) (*FareAttribute, bool) {
	return findIn(f, FileFareAttributes, f.FareAttributes, id)
}
