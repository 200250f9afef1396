package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type handlerFunc func(w http.ResponseWriter, r *http.Request)

func validateAPIKey(api *RestAPI, finalHandler handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		finalHandler(w, r)
	})
}

func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	router.Handler(http.MethodGet, "/api/current-time.json", validateAPIKey(api, api.currentTimeHandler))
	router.Handler(http.MethodGet, "/api/status", validateAPIKey(api, api.statusHandler))
	router.Handler(http.MethodGet, "/api/files", validateAPIKey(api, api.filesHandler))
	router.Handler(http.MethodGet, "/api/files/:file", validateAPIKey(api, api.fileRecordsHandler))
	router.Handler(http.MethodGet, "/api/files/:file/:id", validateAPIKey(api, api.fileRecordHandler))
	router.Handler(http.MethodGet, "/api/errors", validateAPIKey(api, api.rowErrorsHandler))
	router.Handler(http.MethodGet, "/api/trips/:id/stop-times", validateAPIKey(api, api.tripStopTimesHandler))
	router.Handler(http.MethodGet, "/api/shapes/:id", validateAPIKey(api, api.shapesHandler))
	router.Handler(http.MethodGet, "/api/stops-for-location", validateAPIKey(api, api.stopsForLocationHandler))

	router.Handler(http.MethodGet, "/metrics", promhttp.Handler())
	router.HandlerFunc(http.MethodGet, "/healthz", api.healthHandler)
	router.NotFound = http.HandlerFunc(api.sendNotFound)
}

// Routes returns the full handler chain served by the API
func (api *RestAPI) Routes() http.Handler {
	router := httprouter.New()
	api.SetRoutes(router)

	var handler http.Handler = router
	handler = CompressionMiddleware(handler)
	if api.rateLimiter != nil {
		handler = api.rateLimiter.Handler(handler)
	}
	handler = NewRequestLoggingMiddleware(api.Logger)(handler)
	return api.WithSecurityHeaders(handler)
}
