package webui

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/davecgh/go-spew/spew"

	"gtfsreader.onebusaway.org/gtfs"
	"gtfsreader.onebusaway.org/internal/app"
)

//go:embed debug_index.html
var templateFS embed.FS

var debugTemplate = template.Must(template.ParseFS(templateFS, "debug_index.html"))

// WebUI serves debugging pages over the loaded feed
type WebUI struct {
	*app.Application
}

type debugData struct {
	Title   string
	Pre     string
	Choices []string
}

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func dataTypes() []string {
	choices := []string{"status", "errors"}
	for _, schema := range gtfs.Schemas() {
		choices = append(choices, schema.Kind.Base())
	}
	return choices
}

func writeDebugData(w http.ResponseWriter, title string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := debugTemplate.Execute(w, debugData{
		Title:   title,
		Pre:     dumper.Sdump(data),
		Choices: dataTypes(),
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	dataType := r.URL.Query().Get("dataType")
	handle := webUI.GtfsManager.Handle()

	var data interface{}
	var title string

	switch dataType {
	case "status":
		data = webUI.GtfsManager.Statistics()
		title = "GTFS Static - Status"
	case "errors":
		data = handle.RowErrors()
		title = "GTFS Static - Skipped Rows"
	default:
		kind, ok := gtfs.ParseFileKind(dataType)
		if dataType != "" && ok {
			data = handle.EntitiesOf(kind)
			title = "GTFS Static - " + string(kind)
			break
		}
		data = map[string][]string{"choices": dataTypes()}
		title = "Choose a data type"
	}

	writeDebugData(w, title, data)
}
