package models

import "gtfsreader.onebusaway.org/gtfs"

type StopEntry struct {
	ID                 string  `json:"id"`
	Code               string  `json:"code"`
	Name               string  `json:"name"`
	Lat                float64 `json:"lat"`
	Lon                float64 `json:"lon"`
	LocationType       int     `json:"locationType"`
	Parent             string  `json:"parent"`
	WheelchairBoarding string  `json:"wheelchairBoarding"`
	Distance           float64 `json:"distance,omitempty"`
}

// NewStopEntry converts a feed stop. Stops without coordinates report 0, 0.
func NewStopEntry(stop *gtfs.Stop, distance float64) StopEntry {
	entry := StopEntry{
		ID:                 stop.ID,
		Code:               stop.Code,
		Name:               stop.Name,
		LocationType:       int(stop.Location()),
		Parent:             stop.ParentStation,
		WheelchairBoarding: UnknownValue,
		Distance:           distance,
	}
	if stop.Lat != nil && stop.Lon != nil {
		entry.Lat = float64(*stop.Lat)
		entry.Lon = float64(*stop.Lon)
	}
	if stop.WheelchairBoarding != nil {
		switch *stop.WheelchairBoarding {
		case gtfs.AvailabilityAvailable:
			entry.WheelchairBoarding = "ACCESSIBLE"
		case gtfs.AvailabilityNotAvailable:
			entry.WheelchairBoarding = "NOT_ACCESSIBLE"
		}
	}
	return entry
}

// UnknownValue is the fallback value when data is unavailable
const UnknownValue = "UNKNOWN"
