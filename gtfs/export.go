package gtfs

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

// WriteCSV writes records as a GTFS text file with a header row. It accepts
// a slice of any record type, known or custom, using the same csv tags the
// decoder reads.
func WriteCSV[T any](w io.Writer, records []T) error {
	cw := csv.NewWriter(w)
	if err := gocsv.MarshalCSV(records, gocsv.NewSafeCSVWriter(cw)); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// WriteFile writes the records of one known file of the feed.
func (f *Feed) WriteFile(w io.Writer, kind FileKind) error {
	switch kind {
	case FileAgency:
		return WriteCSV(w, f.Agencies)
	case FileStops:
		return WriteCSV(w, f.Stops)
	case FileRoutes:
		return WriteCSV(w, f.Routes)
	case FileTrips:
		return WriteCSV(w, f.Trips)
	case FileStopTimes:
		return WriteCSV(w, f.StopTimes)
	case FileCalendar:
		return WriteCSV(w, f.Calendars)
	case FileCalendarDates:
		return WriteCSV(w, f.CalendarDates)
	case FileFareAttributes:
		return WriteCSV(w, f.FareAttributes)
	case FileFareRules:
		return WriteCSV(w, f.FareRules)
	case FileShapes:
		return WriteCSV(w, f.Shapes)
	case FileFrequencies:
		return WriteCSV(w, f.Frequencies)
	case FileTransfers:
		return WriteCSV(w, f.Transfers)
	case FileFeedInfo:
		return WriteCSV(w, f.FeedInfo)
	case FilePathways:
		return WriteCSV(w, f.Pathways)
	case FileLevels:
		return WriteCSV(w, f.Levels)
	case FileAttributions:
		return WriteCSV(w, f.Attributions)
	}
	return fmt.Errorf("%w: %s", ErrFileNotFound, kind)
}
