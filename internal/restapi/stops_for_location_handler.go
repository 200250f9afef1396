package restapi

import (
	"net/http"

	"gtfsreader.onebusaway.org/internal/models"
	"gtfsreader.onebusaway.org/internal/utils"
)

const defaultMaxCount = 100

func (api *RestAPI) stopsForLocationHandler(w http.ResponseWriter, r *http.Request) {
	queryParams := r.URL.Query()

	lat, fieldErrors := utils.ParseFloatParam(queryParams, "lat", nil)
	lon, _ := utils.ParseFloatParam(queryParams, "lon", fieldErrors)
	radius, _ := utils.ParseFloatParam(queryParams, "radius", fieldErrors)
	maxCount, _ := utils.ParseIntParam(queryParams, "maxCount", defaultMaxCount, fieldErrors)
	for _, key := range []string{"lat", "lon"} {
		if !queryParams.Has(key) {
			fieldErrors[key] = append(fieldErrors[key], "field is required")
		}
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	if locationErrors := utils.ValidateLocationParams(lat, lon, radius); len(locationErrors) > 0 {
		api.validationErrorResponse(w, r, locationErrors)
		return
	}

	ctx := r.Context()
	if ctx.Err() != nil {
		api.serverErrorResponse(w, r, ctx.Err())
		return
	}

	stops, err := api.GtfsManager.GetStopsForLocation(ctx, lat, lon, radius, maxCount+1)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	limitExceeded := len(stops) > maxCount
	if limitExceeded {
		stops = stops[:maxCount]
	}

	results := make([]models.StopEntry, 0, len(stops))
	for _, stop := range stops {
		distance := utils.Haversine(lat, lon, float64(*stop.Lat), float64(*stop.Lon))
		results = append(results, models.NewStopEntry(stop, distance))
	}

	api.sendResponse(w, r, models.NewListResponse(results, limitExceeded))
}
