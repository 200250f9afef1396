package restapi

import (
	"net/http"

	"gtfsreader.onebusaway.org/internal/models"
	"gtfsreader.onebusaway.org/internal/utils"
)

func (api *RestAPI) tripStopTimesHandler(w http.ResponseWriter, r *http.Request) {
	tripID := utils.ExtractIDFromParams(r, "id")
	if err := utils.ValidateID(tripID); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"id": {err.Error()}})
		return
	}

	handle := api.GtfsManager.Handle()
	if _, ok := handle.Trip(tripID); !ok {
		api.sendNotFound(w, r)
		return
	}

	stopTimes := handle.TripStopTimes(tripID)
	entries := make([]models.TripStopTime, 0, len(stopTimes))
	for _, st := range stopTimes {
		stop, _ := handle.Stop(st.StopID)
		entries = append(entries, models.NewTripStopTime(st, stop))
	}

	api.sendResponse(w, r, models.NewListResponse(entries, false))
}
