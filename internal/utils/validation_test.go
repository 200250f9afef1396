package utils

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr string
	}{
		{"simple id", "STN", ""},
		{"id with spaces", "Market & Placer", ""},
		{"unicode id", "Plac Wilsona", ""},
		{"empty id", "", "id cannot be empty"},
		{"id too long", strings.Repeat("a", 256), "id too long"},
		{"markup", "S1<script>", "invalid characters"},
		{"control character", "S1\x00", "invalid characters"},
		{"invalid utf-8", "S\xff", "not valid UTF-8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.id)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateLocationParams(t *testing.T) {
	tests := []struct {
		name       string
		lat        float64
		lon        float64
		radius     float64
		wantFields []string
	}{
		{"valid", 40.58, -122.39, 500, nil},
		{"latitude out of range", 91, 0, 0, []string{"lat"}},
		{"longitude out of range", 0, -181, 0, []string{"lon"}},
		{"negative radius", 0, 0, -1, []string{"radius"}},
		{"radius too large", 0, 0, 10001, []string{"radius"}},
		{"everything wrong", -91, 181, -5, []string{"lat", "lon", "radius"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fieldErrors := ValidateLocationParams(tt.lat, tt.lon, tt.radius)
			assert.Len(t, fieldErrors, len(tt.wantFields))
			for _, field := range tt.wantFields {
				assert.Contains(t, fieldErrors, field)
			}
		})
	}
}

func TestParseParams(t *testing.T) {
	params := url.Values{"lat": {"40.5"}, "lon": {"west"}, "limit": {"5"}, "offset": {"-2"}}

	lat, fieldErrors := ParseFloatParam(params, "lat", nil)
	assert.Equal(t, 40.5, lat)
	assert.Empty(t, fieldErrors)

	lon, fieldErrors := ParseFloatParam(params, "lon", fieldErrors)
	assert.Zero(t, lon)
	assert.Contains(t, fieldErrors, "lon")

	missing, fieldErrors := ParseFloatParam(params, "radius", fieldErrors)
	assert.Zero(t, missing)
	assert.NotContains(t, fieldErrors, "radius")

	limit, fieldErrors := ParseIntParam(params, "limit", 100, fieldErrors)
	assert.Equal(t, 5, limit)

	offset, fieldErrors := ParseIntParam(params, "offset", 0, fieldErrors)
	assert.Zero(t, offset)
	assert.Contains(t, fieldErrors, "offset")

	def, _ := ParseIntParam(params, "page", 7, fieldErrors)
	assert.Equal(t, 7, def)
}

func TestHaversine(t *testing.T) {
	assert.Zero(t, Haversine(40.58, -122.39, 40.58, -122.39))

	// One degree of latitude is about 111km everywhere
	assert.InDelta(t, 111195, Haversine(0, 0, 1, 0), 100)

	d := Haversine(40.5865, -122.3917, 40.5822, -122.3901)
	assert.InDelta(t, 496, d, 10)
	assert.Equal(t, d, Haversine(40.5822, -122.3901, 40.5865, -122.3917))
}

func TestBoundingBox(t *testing.T) {
	minLat, maxLat, minLon, maxLon := BoundingBox(40.5865, -122.3917, 1000)

	assert.Less(t, minLat, 40.5865)
	assert.Greater(t, maxLat, 40.5865)
	assert.Less(t, minLon, -122.3917)
	assert.Greater(t, maxLon, -122.3917)
	assert.InDelta(t, 1000, Haversine(40.5865, -122.3917, maxLat, -122.3917), 15)
	assert.Greater(t, maxLon-minLon, maxLat-minLat, "longitude degrees are shorter away from the equator")
}
