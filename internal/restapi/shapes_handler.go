package restapi

import (
	"net/http"
	"strings"

	"github.com/twpayne/go-polyline"

	"gtfsreader.onebusaway.org/internal/models"
	"gtfsreader.onebusaway.org/internal/utils"
)

func (api *RestAPI) shapesHandler(w http.ResponseWriter, r *http.Request) {
	shapeID := utils.ExtractIDFromParams(r, "id")
	if err := utils.ValidateID(shapeID); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"id": {err.Error()}})
		return
	}

	coords := api.GtfsManager.ShapeCoords(shapeID)
	if len(coords) == 0 {
		api.sendNotFound(w, r)
		return
	}

	encodedPoints := encodeShape(coords)
	api.sendResponse(w, r, models.NewEntryResponse(models.ShapeEntry{
		ID:     shapeID,
		Length: len(encodedPoints),
		Levels: "",
		Points: encodedPoints,
	}))
}

// encodeShape encodes [lat, lon] points as polylines. Repeated points are
// dropped, and retracing an earlier edge ends the current line.
func encodeShape(coords [][]float64) string {
	var polylines []string
	var currentLine [][]float64
	edges := make(map[models.Edge]bool)

	var prev []float64
	for _, loc := range coords {
		if prev != nil && (prev[0] != loc[0] || prev[1] != loc[1]) {
			edge := models.NewEdge(
				models.CoordinatePoint{Lat: prev[0], Lon: prev[1]},
				models.CoordinatePoint{Lat: loc[0], Lon: loc[1]},
			)
			if edges[edge] {
				if len(currentLine) > 1 {
					polylines = append(polylines, string(polyline.EncodeCoords(currentLine)))
				}
				currentLine = [][]float64{}
			} else {
				edges[edge] = true
			}
		}
		if prev == nil || prev[0] != loc[0] || prev[1] != loc[1] {
			currentLine = append(currentLine, loc)
		}
		prev = loc
	}

	if len(currentLine) > 1 {
		polylines = append(polylines, string(polyline.EncodeCoords(currentLine)))
	}

	return strings.Join(polylines, "")
}
