package models

import "gtfsreader.onebusaway.org/gtfs"

// TripStopTime is one call of a trip, in stop_sequence order
type TripStopTime struct {
	StopID        string `json:"stopId"`
	StopName      string `json:"stopName,omitempty"`
	StopSequence  uint32 `json:"stopSequence"`
	ArrivalTime   string `json:"arrivalTime,omitempty"`
	DepartureTime string `json:"departureTime,omitempty"`
	StopHeadsign  string `json:"stopHeadsign,omitempty"`
	Timepoint     bool   `json:"timepoint"`
}

// NewTripStopTime converts a stop time. stop may be nil when the trip
// references a stop the feed does not define.
func NewTripStopTime(st gtfs.StopTime, stop *gtfs.Stop) TripStopTime {
	entry := TripStopTime{
		StopID:       st.StopID,
		StopSequence: st.StopSequence,
		StopHeadsign: st.StopHeadsign,
		Timepoint:    st.IsTimepoint(),
	}
	if stop != nil {
		entry.StopName = stop.Name
	}
	if st.ArrivalTime != nil {
		entry.ArrivalTime = st.ArrivalTime.String()
	}
	if st.DepartureTime != nil {
		entry.DepartureTime = st.DepartureTime.String()
	}
	return entry
}
