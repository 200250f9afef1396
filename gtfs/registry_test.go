package gtfs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckPresence(t *testing.T) {
	levelsOrAttributions := &Condition{
		Group:       "station-extras",
		Rule:        ExactlyOne,
		Description: "exactly one of levels.txt or attributions.txt must be present",
	}
	reg := newRegistry(
		entry(FileAgency, Required, nil, "agency_id",
			func(f *Feed) *[]Agency { return &f.Agencies }, func(a Agency) string { return a.ID }),
		entry(FileLevels, ConditionallyRequired, levelsOrAttributions, "level_id",
			func(f *Feed) *[]Level { return &f.Levels }, func(l Level) string { return l.ID }),
		entry(FileAttributions, ConditionallyRequired, levelsOrAttributions, "attribution_id",
			func(f *Feed) *[]Attribution { return &f.Attributions }, func(a Attribution) string { return a.ID }),
	)

	agency := "agency_name,agency_url,agency_timezone\nDemo,https://example.org,UTC\n"
	levels := "level_id,level_index\nL0,0\n"
	attributions := "organization_name,is_producer\nDemo,1\n"

	tests := []struct {
		name    string
		files   map[string]string
		wantErr error
		file    string
	}{
		{"exactly one rule met by levels", map[string]string{"agency.txt": agency, "levels.txt": levels}, nil, ""},
		{"exactly one rule met by attributions", map[string]string{"agency.txt": agency, "attributions.txt": attributions}, nil, ""},
		{"exactly one rule with both files", map[string]string{
			"agency.txt": agency, "levels.txt": levels, "attributions.txt": attributions,
		}, ErrAmbiguousConditionalRequirement, ""},
		{"exactly one rule with neither file", map[string]string{"agency.txt": agency}, ErrAmbiguousConditionalRequirement, ""},
		{"required file checked first", map[string]string{"levels.txt": levels}, ErrMissingRequiredFile, "agency.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := reg.checkPresence(mapSource(t, tt.files))
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)

			var feedErr *FeedError
			require.True(t, errors.As(err, &feedErr))
			assert.Equal(t, tt.file, feedErr.File)
		})
	}

	t.Run("at least one rule accepts both files", func(t *testing.T) {
		err := registry.checkPresence(mapSource(t, with(minimalFiles(), "calendar.txt",
			"service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date\n"+
				"SVC,1,1,1,1,1,1,1,20240101,20241231\n")))
		assert.NoError(t, err)
	})
}
