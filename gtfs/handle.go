package gtfs

import (
	"errors"
	"sort"
	"sync"
)

// Handle owns an assembled feed together with the source it was read from.
// Besides the typed files it gives access to arbitrary columns through
// Custom.
type Handle struct {
	feed      *Feed
	source    TabularSource
	rowErrors RowErrors

	tripIndexOnce sync.Once
	stopTimes     map[string][]int
	shapeIndex    map[string][]int
	serviceDates  map[string][]int
}

// Open assembles src and wraps the result in a Handle.
func Open(src TabularSource, opts ...Option) (*Handle, error) {
	feed, rowErrs, err := Assemble(src, opts...)
	if err != nil {
		return nil, err
	}
	return &Handle{feed: feed, source: src, rowErrors: rowErrs}, nil
}

func (h *Handle) Feed() *Feed {
	return h.feed
}

func (h *Handle) Source() TabularSource {
	return h.source
}

// RowErrors returns the rows that were skipped during assembly.
func (h *Handle) RowErrors() RowErrors {
	return h.rowErrors
}

// EntitiesOf returns the records of a known file in source order, or nil for
// a file the registry does not know.
func (h *Handle) EntitiesOf(kind FileKind) []any {
	return h.feed.Records(kind)
}

// Lookup finds a record by identifier. Only files with an identifier column
// can be looked up.
func (h *Handle) Lookup(kind FileKind, id string) (any, bool) {
	return h.feed.Find(kind, id)
}

func (h *Handle) Agency(id string) (*Agency, bool) { return h.feed.Agency(id) }
func (h *Handle) Stop(id string) (*Stop, bool)     { return h.feed.Stop(id) }
func (h *Handle) Route(id string) (*Route, bool)   { return h.feed.Route(id) }
func (h *Handle) Trip(id string) (*Trip, bool)     { return h.feed.Trip(id) }

func (h *Handle) buildTripIndexes() {
	h.tripIndexOnce.Do(func() {
		f := h.feed
		h.stopTimes = make(map[string][]int)
		for i, st := range f.StopTimes {
			h.stopTimes[st.TripID] = append(h.stopTimes[st.TripID], i)
		}
		for _, idx := range h.stopTimes {
			sort.SliceStable(idx, func(a, b int) bool {
				return f.StopTimes[idx[a]].StopSequence < f.StopTimes[idx[b]].StopSequence
			})
		}

		h.shapeIndex = make(map[string][]int)
		for i, pt := range f.Shapes {
			h.shapeIndex[pt.ShapeID] = append(h.shapeIndex[pt.ShapeID], i)
		}
		for _, idx := range h.shapeIndex {
			sort.SliceStable(idx, func(a, b int) bool {
				return f.Shapes[idx[a]].Sequence < f.Shapes[idx[b]].Sequence
			})
		}

		h.serviceDates = make(map[string][]int)
		for i, cd := range f.CalendarDates {
			h.serviceDates[cd.ServiceID] = append(h.serviceDates[cd.ServiceID], i)
		}
	})
}

// TripStopTimes returns the stop times of a trip ordered by stop_sequence.
// Rows with equal sequence keep their file order.
func (h *Handle) TripStopTimes(tripID string) []StopTime {
	h.buildTripIndexes()
	idx := h.stopTimes[tripID]
	out := make([]StopTime, len(idx))
	for i, j := range idx {
		out[i] = h.feed.StopTimes[j]
	}
	return out
}

// TripStops resolves the stops a trip visits, in visiting order. Stop ids
// that do not resolve are returned in missing.
func (h *Handle) TripStops(tripID string) (stops []*Stop, missing []string) {
	for _, st := range h.TripStopTimes(tripID) {
		s, ok := h.feed.Stop(st.StopID)
		if !ok {
			missing = append(missing, st.StopID)
			continue
		}
		stops = append(stops, s)
	}
	return stops, missing
}

// ShapePoints returns the points of a shape ordered by shape_pt_sequence.
func (h *Handle) ShapePoints(shapeID string) []ShapePoint {
	h.buildTripIndexes()
	idx := h.shapeIndex[shapeID]
	out := make([]ShapePoint, len(idx))
	for i, j := range idx {
		out[i] = h.feed.Shapes[j]
	}
	return out
}

// CalendarDatesByService groups calendar_dates.txt by service_id.
func (h *Handle) CalendarDatesByService() map[string][]CalendarDate {
	h.buildTripIndexes()
	out := make(map[string][]CalendarDate, len(h.serviceDates))
	for id, idx := range h.serviceDates {
		dates := make([]CalendarDate, len(idx))
		for i, j := range idx {
			dates[i] = h.feed.CalendarDates[j]
		}
		out[id] = dates
	}
	return out
}

// Custom decodes an arbitrary file of the handle's source into caller
// records. See Extract.
func Custom[T any](h *Handle, filename string) ([]T, RowErrors, error) {
	return Extract[T](h.source, filename)
}

// Extract reads filename from src into records of type T, bypassing the
// registry. Fields of T are matched to columns by their csv tag (or their
// lower-cased name); pointer fields and fields tagged omitempty are optional.
// Columns T does not declare are ignored.
//
// The file must exist and its header must name every required field of T,
// otherwise no records are returned. Rows that fail to decode are skipped
// and reported.
func Extract[T any](src TabularSource, filename string) ([]T, RowErrors, error) {
	p, err := planOf[T]()
	if err != nil {
		return nil, nil, &ExtractionError{Kind: ErrUnsupportedField, File: filename, Err: err}
	}

	rows, err := src.Rows(filename)
	if err != nil {
		return nil, nil, asExtractionError(filename, err)
	}
	defer rows.Close() // nolint:errcheck

	if col, missing := p.missingColumn(rows.Header()); missing {
		return nil, nil, &ExtractionError{Kind: ErrMissingField, File: filename, Column: col}
	}

	recs, _, errs, err := decodeRows[T](p, rows)
	if err != nil {
		return nil, nil, asExtractionError(filename, err)
	}
	return recs, errs, nil
}

func asExtractionError(filename string, err error) error {
	for _, kind := range []error{ErrFileNotFound, ErrHeaderMismatch} {
		if errors.Is(err, kind) {
			return &ExtractionError{Kind: kind, File: filename, Err: err}
		}
	}
	return &ExtractionError{Kind: ErrSourceUnavailable, File: filename, Err: err}
}

// Columns lists the columns a record type reads, in field order.
func Columns[T any]() ([]Column, error) {
	p, err := planOf[T]()
	if err != nil {
		return nil, err
	}
	cols := make([]Column, len(p.fields))
	for i, f := range p.fields {
		cols[i] = Column{Name: f.column, Required: !f.optional, Kind: f.kind}
	}
	return cols, nil
}

