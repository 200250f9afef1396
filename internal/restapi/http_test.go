package restapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"gtfsreader.onebusaway.org/internal/app"
	"gtfsreader.onebusaway.org/internal/appconf"
	"gtfsreader.onebusaway.org/internal/gtfs"
	"gtfsreader.onebusaway.org/internal/logging"
	"gtfsreader.onebusaway.org/internal/models"
)

// createTestApiWithFeed creates a RestAPI over one of the testdata feeds.
func createTestApiWithFeed(t *testing.T, fixture string) *RestAPI {
	t.Helper()

	gtfsConfig := gtfs.Config{
		GtfsURL:      filepath.Join("..", "..", "testdata", fixture),
		GTFSDataPath: ":memory:",
		Env:          appconf.Test,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	gtfsManager, err := gtfs.InitGTFSManager(gtfsConfig)
	require.NoError(t, err)
	t.Cleanup(gtfsManager.Shutdown)

	application := &app.Application{
		Config: appconf.Config{
			Env:       appconf.Test,
			ApiKeys:   []string{"TEST"},
			RateLimit: 1000,
		},
		GtfsConfig:  gtfsConfig,
		Logger:      gtfsConfig.Logger,
		GtfsManager: gtfsManager,
	}

	api := NewRestAPI(application)
	t.Cleanup(api.Shutdown)
	return api
}

func createTestApi(t *testing.T) *RestAPI {
	return createTestApiWithFeed(t, "basic.zip")
}

// serveAndRetrieveEndpoint sets up a test server, makes a request to the specified endpoint, and returns the response
// and decoded model.
func serveAndRetrieveEndpoint(t *testing.T, endpoint string) (*RestAPI, *http.Response, models.ResponseModel) {
	api := createTestApi(t)
	resp, model := serveApiAndRetrieveEndpoint(t, api, endpoint)
	return api, resp, model
}

func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string) (*http.Response, models.ResponseModel) {
	t.Helper()

	server := httptest.NewServer(api.Routes())
	defer server.Close()
	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer logging.SafeCloseWithLogging(resp.Body,
		slog.Default().With(slog.String("component", "test")),
		"http_response_body")

	var response models.ResponseModel
	err = json.NewDecoder(resp.Body).Decode(&response)
	require.NoError(t, err)

	return resp, response
}

// listOf returns data.list of a list response
func listOf(t *testing.T, model models.ResponseModel) ([]interface{}, bool) {
	t.Helper()

	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok, "response data should be a map")
	list, ok := data["list"].([]interface{})
	require.True(t, ok, "response data should carry a list")
	limitExceeded, _ := data["limitExceeded"].(bool)
	return list, limitExceeded
}

// entryOf returns data.entry of an entry response
func entryOf(t *testing.T, model models.ResponseModel) map[string]interface{} {
	t.Helper()

	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok, "response data should be a map")
	entry, ok := data["entry"].(map[string]interface{})
	require.True(t, ok, "response data should carry an entry")
	return entry
}
