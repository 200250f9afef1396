package restapi

import (
	"time"

	"gtfsreader.onebusaway.org/internal/app"
)

const defaultRateLimit = 100

type RestAPI struct {
	*app.Application
	rateLimiter *RateLimitMiddleware
}

// NewRestAPI creates a new RestAPI instance with initialized rate limiter
func NewRestAPI(app *app.Application) *RestAPI {
	limit := app.Config.RateLimit
	if limit == 0 {
		limit = defaultRateLimit
	}
	return &RestAPI{
		Application: app,
		rateLimiter: NewRateLimitMiddleware(limit, time.Second),
	}
}

// Shutdown stops background work owned by the API.
func (api *RestAPI) Shutdown() {
	if api.rateLimiter != nil {
		api.rateLimiter.Stop()
	}
}
