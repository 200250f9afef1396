package restapi

import (
	"net/http"

	"gtfsreader.onebusaway.org/gtfs"
	"gtfsreader.onebusaway.org/internal/models"
)

func (api *RestAPI) rowErrorsHandler(w http.ResponseWriter, r *http.Request) {
	queryParams := r.URL.Query()

	p, fieldErrors := parsePage(queryParams)
	file := queryParams.Get("file")
	if file != "" {
		kind, ok := gtfs.ParseFileKind(file)
		if !ok {
			fieldErrors["file"] = append(fieldErrors["file"], "unknown GTFS file")
		}
		file = string(kind)
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	rowErrors := api.GtfsManager.Handle().RowErrors()
	if file != "" {
		rowErrors = rowErrors.ByFile()[file]
	}

	start, end, more := p.bounds(len(rowErrors))
	entries := make([]models.RowErrorEntry, 0, end-start)
	for _, rowErr := range rowErrors[start:end] {
		entries = append(entries, models.NewRowErrorEntry(rowErr))
	}

	api.sendResponse(w, r, models.NewListResponse(entries, more))
}
