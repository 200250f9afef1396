package restapi

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"

	"gtfsreader.onebusaway.org/gtfs"
	"gtfsreader.onebusaway.org/internal/models"
	"gtfsreader.onebusaway.org/internal/utils"
)

func (api *RestAPI) filesHandler(w http.ResponseWriter, r *http.Request) {
	handle := api.GtfsManager.Handle()
	byFile := handle.RowErrors().ByFile()

	schemas := gtfs.Schemas()
	files := make([]models.FileSummary, 0, len(schemas))
	for _, schema := range schemas {
		files = append(files, models.NewFileSummary(schema, handle.Feed(), len(byFile[string(schema.Kind)])))
	}

	api.sendResponse(w, r, models.NewListResponse(files, false))
}

// fileKindParam resolves the :file parameter, writing a 404 when the file
// is not known.
func (api *RestAPI) fileKindParam(w http.ResponseWriter, r *http.Request) (gtfs.FileKind, bool) {
	kind, ok := gtfs.ParseFileKind(utils.ExtractIDFromParams(r, "file"))
	if !ok {
		api.sendNotFound(w, r)
	}
	return kind, ok
}

func (api *RestAPI) fileRecordsHandler(w http.ResponseWriter, r *http.Request) {
	kind, ok := api.fileKindParam(w, r)
	if !ok {
		return
	}
	feed := api.GtfsManager.Handle().Feed()

	if r.URL.Query().Get("format") == "csv" {
		var buf bytes.Buffer
		if err := feed.WriteFile(&buf, kind); err != nil {
			api.serverErrorResponse(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", string(kind)))
		_, _ = w.Write(buf.Bytes())
		return
	}

	p, fieldErrors := parsePage(r.URL.Query())
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	rows, err := recordRows(feed, kind)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	start, end, more := p.bounds(len(rows))
	api.sendResponse(w, r, models.NewListResponse(rows[start:end], more))
}

func (api *RestAPI) fileRecordHandler(w http.ResponseWriter, r *http.Request) {
	kind, ok := api.fileKindParam(w, r)
	if !ok {
		return
	}

	id := utils.ExtractIDFromParams(r, "id")
	if err := utils.ValidateID(id); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"id": {err.Error()}})
		return
	}

	schema, _ := gtfs.Lookup(string(kind))
	if schema.IDColumn == "" {
		api.validationErrorResponse(w, r, map[string][]string{
			"file": {fmt.Sprintf("%s has no identifier column", kind)},
		})
		return
	}

	handle := api.GtfsManager.Handle()
	if _, found := handle.Lookup(kind, id); !found {
		api.sendNotFound(w, r)
		return
	}

	rows, err := recordRows(handle.Feed(), kind)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	for _, row := range rows {
		if row[schema.IDColumn] == id {
			api.sendResponse(w, r, models.NewEntryResponse(row))
			return
		}
	}
	api.sendNotFound(w, r)
}

// recordRows renders the records of a file the way they would be written
// back out, one column to value map per record. Empty values are left out.
func recordRows(feed *gtfs.Feed, kind gtfs.FileKind) ([]map[string]string, error) {
	var buf bytes.Buffer
	if err := feed.WriteFile(&buf, kind); err != nil {
		return nil, err
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []map[string]string{}, nil
	}

	header := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(header))
		for i, value := range record {
			if value != "" {
				row[header[i]] = value
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
