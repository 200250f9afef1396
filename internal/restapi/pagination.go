package restapi

import (
	"net/url"

	"gtfsreader.onebusaway.org/internal/utils"
)

const (
	defaultPageSize = 100
	maxPageSize     = 1000
)

type page struct {
	offset, limit int
}

func parsePage(params url.Values) (page, map[string][]string) {
	offset, fieldErrors := utils.ParseIntParam(params, "offset", 0, nil)
	limit, fieldErrors := utils.ParseIntParam(params, "limit", defaultPageSize, fieldErrors)
	if limit == 0 || limit > maxPageSize {
		fieldErrors["limit"] = append(fieldErrors["limit"], "limit must be between 1 and 1000")
	}
	return page{offset: offset, limit: limit}, fieldErrors
}

// bounds returns the slice bounds of the page over n items and whether items
// remain past it.
func (p page) bounds(n int) (start, end int, more bool) {
	start = min(p.offset, n)
	end = min(start+p.limit, n)
	return start, end, end < n
}
