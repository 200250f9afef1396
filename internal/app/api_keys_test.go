package app

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"gtfsreader.onebusaway.org/internal/appconf"
)

func TestBlankKeyIsInvalid(t *testing.T) {
	app := &Application{
		Config: appconf.Config{
			ApiKeys: []string{"key"},
		},
	}
	assert.True(t, app.IsInvalidAPIKey(""))
}

func TestRequestHasInvalidAPIKey(t *testing.T) {
	tests := []struct {
		name    string
		keys    []string
		target  string
		invalid bool
	}{
		{"valid key", []string{"test", "other"}, "/api/files?key=other", false},
		{"wrong key", []string{"test"}, "/api/files?key=nope", true},
		{"missing key", []string{"test"}, "/api/files", true},
		{"no keys configured", nil, "/api/files", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := &Application{Config: appconf.Config{ApiKeys: tt.keys}}
			req := httptest.NewRequest("GET", tt.target, nil)
			assert.Equal(t, tt.invalid, app.RequestHasInvalidAPIKey(req))
		})
	}
}
