package restapi

import (
	"net/http"
	"time"

	"gtfsreader.onebusaway.org/internal/models"
)

type statusEntry struct {
	Source      string         `json:"source"`
	LastUpdated int64          `json:"lastUpdated"`
	Counts      map[string]int `json:"counts"`
	RowErrors   int            `json:"rowErrors"`
	Lat         float64        `json:"lat"`
	Lon         float64        `json:"lon"`
	LatSpan     float64        `json:"latSpan"`
	LonSpan     float64        `json:"lonSpan"`
}

func (api *RestAPI) statusHandler(w http.ResponseWriter, r *http.Request) {
	stats := api.GtfsManager.Statistics()
	lat, lon, latSpan, lonSpan := api.GtfsManager.GetRegionBounds()

	api.sendResponse(w, r, models.NewEntryResponse(statusEntry{
		Source:      stats.Source,
		LastUpdated: stats.LastUpdated.UnixMilli(),
		Counts:      stats.Counts,
		RowErrors:   stats.RowErrors,
		Lat:         lat,
		Lon:         lon,
		LatSpan:     latSpan,
		LonSpan:     lonSpan,
	}))
}

func (api *RestAPI) currentTimeHandler(w http.ResponseWriter, r *http.Request) {
	api.sendResponse(w, r, models.NewEntryResponse(models.NewCurrentTime(time.Now())))
}

func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	if api.GtfsManager == nil || api.GtfsManager.Handle() == nil {
		api.writeError(w, http.StatusServiceUnavailable, "feed not loaded")
		return
	}
	setJSONResponseType(&w)
	_, _ = w.Write([]byte(`{"status":"ok"}` + "\n"))
}
