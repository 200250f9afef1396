package gtfs

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openBasic(t *testing.T) *Handle {
	t.Helper()

	h, err := Open(openFixture(t, "basic"))
	require.NoError(t, err)
	return h
}

func TestHandleAccessors(t *testing.T) {
	h := openBasic(t)

	t.Run("entities of a file", func(t *testing.T) {
		stops := h.EntitiesOf(FileStops)
		require.Len(t, stops, 4)
		first, ok := stops[0].(*Stop)
		require.True(t, ok)
		assert.Equal(t, "S1", first.ID)

		assert.Empty(t, h.EntitiesOf(FileLevels))
		assert.Nil(t, h.EntitiesOf(FileKind("translations.txt")))
	})

	t.Run("lookup by identifier", func(t *testing.T) {
		tests := []struct {
			kind  FileKind
			id    string
			found bool
		}{
			{FileStops, "S3", true},
			{FileRoutes, "R1", true},
			{FileTrips, "T2", true},
			{FileAgency, "RABA", true},
			{FileCalendar, "WKDY", true},
			{FileRoutes, "R9", false},
			{FileStopTimes, "T1", false},
			{FileKind("translations.txt"), "x", false},
		}
		for _, tt := range tests {
			t.Run(string(tt.kind)+"/"+tt.id, func(t *testing.T) {
				_, ok := h.Lookup(tt.kind, tt.id)
				assert.Equal(t, tt.found, ok)
			})
		}
	})

	t.Run("trip stop times sorted by sequence", func(t *testing.T) {
		stopTimes := h.TripStopTimes("T1")
		require.Len(t, stopTimes, 3)
		assert.Equal(t, uint32(1), stopTimes[0].StopSequence)
		assert.Equal(t, uint32(2), stopTimes[1].StopSequence)
		assert.Equal(t, uint32(3), stopTimes[2].StopSequence)
		assert.Nil(t, stopTimes[2].ArrivalTime)
		assert.False(t, stopTimes[2].IsTimepoint())
		assert.True(t, stopTimes[0].IsTimepoint())

		assert.Empty(t, h.TripStopTimes("T3"))
	})

	t.Run("trip stops", func(t *testing.T) {
		stops, missing := h.TripStops("T2")
		assert.Empty(t, missing)
		require.Len(t, stops, 2)
		assert.Equal(t, "S3", stops[0].ID)
		assert.Equal(t, "S1", stops[1].ID)
	})

	t.Run("shape points sorted by sequence", func(t *testing.T) {
		points := h.ShapePoints("SH1")
		require.Len(t, points, 3)
		for i, pt := range points {
			assert.Equal(t, uint32(i+1), pt.Sequence)
		}
		assert.Empty(t, h.ShapePoints("nope"))
	})

	t.Run("calendar dates by service", func(t *testing.T) {
		byService := h.CalendarDatesByService()
		assert.Len(t, byService["WKND"], 2)
		require.Len(t, byService["WKDY"], 1)
		assert.Equal(t, ServiceRemoved, byService["WKDY"][0].ExceptionType)
	})

	t.Run("custom extraction shares the source", func(t *testing.T) {
		got, rowErrs, err := Custom[brigadeTrip](h, "trips.txt")
		require.NoError(t, err)
		assert.Empty(t, rowErrs)
		assert.Equal(t, []brigadeTrip{{"T1", "B-7"}, {"T2", "B-8"}, {"T3", "B-9"}}, got)
	})
}

func TestHandleConcurrentReads(t *testing.T) {
	h := openBasic(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Len(t, h.TripStopTimes("T1"), 3)
			_, ok := h.Stop("S1")
			assert.True(t, ok)
			got, _, err := Custom[brigadeTrip](h, "trips.txt")
			assert.NoError(t, err)
			assert.Len(t, got, 3)
		}()
	}
	wg.Wait()
}
