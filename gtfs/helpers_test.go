package gtfs

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

// fixturePath returns the absolute path of a feed under testdata/feeds.
func fixturePath(t *testing.T, name string) string {
	t.Helper()

	absPath, err := filepath.Abs(filepath.Join("..", "testdata", "feeds", name))
	require.NoError(t, err)
	return absPath
}

func openFixture(t *testing.T, name string) *FSSource {
	t.Helper()

	src, err := OpenDir(fixturePath(t, name))
	require.NoError(t, err)
	return src
}

// zipFixture packs a fixture directory into an in-memory zip archive,
// keeping relative paths.
func zipFixture(t *testing.T, name string) []byte {
	t.Helper()

	root := fixturePath(t, name)
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	err := filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		w, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	})
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// mapSource builds a source from file name to content pairs.
func mapSource(t *testing.T, files map[string]string) *FSSource {
	t.Helper()

	fsys := fstest.MapFS{}
	for name, content := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(strings.TrimLeft(content, "\n"))}
	}
	src, err := NewFSSource(fsys)
	require.NoError(t, err)
	return src
}

// minimalFiles is the smallest set of files a feed can be assembled from.
func minimalFiles() map[string]string {
	return map[string]string{
		"agency.txt": `
agency_name,agency_url,agency_timezone
Demo,https://example.org,UTC
`,
		"stops.txt": `
stop_id,stop_name,stop_lat,stop_lon
S1,First,10,20
`,
		"routes.txt": `
route_id,route_short_name,route_type
R1,1,3
`,
		"trips.txt": `
route_id,service_id,trip_id
R1,SVC,T1
`,
		"stop_times.txt": `
trip_id,arrival_time,departure_time,stop_id,stop_sequence
T1,08:00:00,08:00:00,S1,1
`,
		"calendar_dates.txt": `
service_id,date,exception_type
SVC,20240101,1
`,
	}
}

func without(files map[string]string, names ...string) map[string]string {
	out := make(map[string]string, len(files))
	for k, v := range files {
		out[k] = v
	}
	for _, n := range names {
		delete(out, n)
	}
	return out
}

func with(files map[string]string, name, content string) map[string]string {
	out := without(files)
	out[name] = content
	return out
}
