package gtfs

import "math"

// GetRegionBounds returns the centre and span of the feed's shapes, or of
// its stops when it has no shapes.
func (manager *Manager) GetRegionBounds() (lat, lon, latSpan, lonSpan float64) {
	feed := manager.Handle().Feed()

	minLat, maxLat := math.Inf(1), math.Inf(-1)
	minLon, maxLon := math.Inf(1), math.Inf(-1)
	extend := func(la, lo float64) {
		minLat, maxLat = math.Min(minLat, la), math.Max(maxLat, la)
		minLon, maxLon = math.Min(minLon, lo), math.Max(maxLon, lo)
	}

	for _, point := range feed.Shapes {
		extend(float64(point.Lat), float64(point.Lon))
	}
	if len(feed.Shapes) == 0 {
		for _, stop := range feed.Stops {
			if stop.Lat != nil && stop.Lon != nil {
				extend(float64(*stop.Lat), float64(*stop.Lon))
			}
		}
	}
	if math.IsInf(minLat, 1) {
		return 0, 0, 0, 0
	}

	lat = (minLat + maxLat) / 2
	lon = (minLon + maxLon) / 2
	latSpan = maxLat - minLat
	lonSpan = maxLon - minLon
	return lat, lon, latSpan, lonSpan
}

// ShapeCoords returns the points of a shape as [lat, lon] pairs in sequence
// order.
func (manager *Manager) ShapeCoords(shapeID string) [][]float64 {
	points := manager.Handle().ShapePoints(shapeID)
	coords := make([][]float64, 0, len(points))
	for _, point := range points {
		coords = append(coords, []float64{float64(point.Lat), float64(point.Lon)})
	}
	return coords
}
