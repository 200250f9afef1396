package models

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gtfsreader.onebusaway.org/gtfs"
)

func ptr[T any](v T) *T { return &v }

func TestNewStopEntry(t *testing.T) {
	tests := []struct {
		name string
		stop gtfs.Stop
		want StopEntry
	}{
		{
			name: "full stop",
			stop: gtfs.Stop{
				ID:                 "S1",
				Code:               "101",
				Name:               "Downtown",
				Lat:                ptr(gtfs.Latitude(40.5865)),
				Lon:                ptr(gtfs.Longitude(-122.3917)),
				ParentStation:      "STN",
				WheelchairBoarding: ptr(gtfs.AvailabilityAvailable),
			},
			want: StopEntry{
				ID: "S1", Code: "101", Name: "Downtown",
				Lat: 40.5865, Lon: -122.3917,
				Parent:             "STN",
				WheelchairBoarding: "ACCESSIBLE",
				Distance:           12.5,
			},
		},
		{
			name: "station without coordinates",
			stop: gtfs.Stop{
				ID:                 "STN",
				LocationType:       ptr(gtfs.LocationStation),
				WheelchairBoarding: ptr(gtfs.AvailabilityNotAvailable),
			},
			want: StopEntry{
				ID:                 "STN",
				LocationType:       1,
				WheelchairBoarding: "NOT_ACCESSIBLE",
				Distance:           12.5,
			},
		},
		{
			name: "unknown accessibility",
			stop: gtfs.Stop{ID: "S2"},
			want: StopEntry{ID: "S2", WheelchairBoarding: UnknownValue, Distance: 12.5},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewStopEntry(&tt.stop, 12.5))
		})
	}
}

func TestNewTripStopTime(t *testing.T) {
	arrival := gtfs.ServiceTime(25*3600 + 5*60)
	st := gtfs.StopTime{
		TripID:       "T1",
		ArrivalTime:  &arrival,
		StopID:       "S1",
		StopSequence: 4,
		Timepoint:    ptr(gtfs.Flag(false)),
	}

	entry := NewTripStopTime(st, &gtfs.Stop{ID: "S1", Name: "Downtown"})
	assert.Equal(t, "25:05:00", entry.ArrivalTime)
	assert.Empty(t, entry.DepartureTime)
	assert.Equal(t, "Downtown", entry.StopName)
	assert.False(t, entry.Timepoint)

	orphan := NewTripStopTime(gtfs.StopTime{StopID: "S9"}, nil)
	assert.Empty(t, orphan.StopName)
	assert.True(t, orphan.Timepoint)
}

func TestNewRowErrorEntry(t *testing.T) {
	entry := NewRowErrorEntry(&gtfs.RowError{
		File:   "stops.txt",
		Line:   3,
		Column: "stop_lat",
		Err:    errors.New("value out of range"),
	})
	assert.Equal(t, RowErrorEntry{File: "stops.txt", Line: 3, Column: "stop_lat", Message: "value out of range"}, entry)
}

func TestNewFileSummary(t *testing.T) {
	schema, ok := gtfs.Lookup("stops.txt")
	require.True(t, ok)

	src, err := gtfs.OpenDir(filepath.Join("..", "..", "testdata", "feeds", "basic"))
	require.NoError(t, err)
	feed, _, err := gtfs.Assemble(src)
	require.NoError(t, err)

	summary := NewFileSummary(schema, feed, 1)

	assert.Equal(t, "stops.txt", summary.File)
	assert.Equal(t, "required", summary.Presence)
	assert.True(t, summary.Present)
	assert.Equal(t, 4, summary.Records)
	assert.Equal(t, 1, summary.RowErrors)
	assert.Equal(t, "stop_id", summary.IDColumn)
	assert.Contains(t, summary.Required, "stop_id")
}

func TestNewEdge(t *testing.T) {
	a := CoordinatePoint{Lat: 1, Lon: 2}
	b := CoordinatePoint{Lat: 1, Lon: 1}

	assert.Equal(t, NewEdge(a, b), NewEdge(b, a))
	assert.Equal(t, b, NewEdge(a, b).A)
}
