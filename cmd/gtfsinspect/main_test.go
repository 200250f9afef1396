package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gtfsreader.onebusaway.org/internal/appconf"
)

func fixture(elem ...string) string {
	return filepath.Join(append([]string{"..", "..", "testdata"}, elem...)...)
}

func TestRun(t *testing.T) {
	t.Run("no command", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		assert.ErrorIs(t, run(nil, &stdout, &stderr), errUsage)
		assert.Contains(t, stderr.String(), "usage: gtfsinspect")
	})

	t.Run("unknown command", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		assert.ErrorIs(t, run([]string{"frobnicate"}, &stdout, &stderr), errUsage)
		assert.Contains(t, stderr.String(), `unknown command "frobnicate"`)
	})

	t.Run("help", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		require.NoError(t, run([]string{"help"}, &stdout, &stderr))
		assert.Contains(t, stdout.String(), "validate")
	})
}

func TestValidate(t *testing.T) {
	t.Run("clean feed", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		require.NoError(t, run([]string{"validate", "-strict", fixture("basic.zip")}, &stdout, &stderr))

		out := stdout.String()
		assert.Contains(t, out, "stop_times")
		assert.Contains(t, out, "skipped rows: 0")
		assert.Contains(t, stderr.String(), `"msg":"feed_loaded"`)
	})

	t.Run("feed with bad rows", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		require.NoError(t, run([]string{"validate", "-gtfs-url", fixture("feeds", "broken")}, &stdout, &stderr))

		out := stdout.String()
		assert.Contains(t, out, "skipped rows: 8")
		assert.Contains(t, out, "stops.txt:3: column stop_lat")
	})

	t.Run("strict fails on bad rows", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		err := run([]string{"validate", "-strict", "-log-level", "error", fixture("broken.zip")}, &stdout, &stderr)
		assert.ErrorIs(t, err, errRowsSkipped)
		assert.NotContains(t, stderr.String(), "feed_loaded")
	})

	t.Run("missing feed", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		assert.ErrorIs(t, run([]string{"validate"}, &stdout, &stderr), errUsage)
		assert.Contains(t, stderr.String(), "no feed given")
	})

	t.Run("unreadable feed", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		assert.Error(t, run([]string{"validate", fixture("nope.zip")}, &stdout, &stderr))
	})
}

func TestExport(t *testing.T) {
	t.Run("to stdout", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		require.NoError(t, run([]string{"export", "-file", "routes", fixture("basic.zip")}, &stdout, &stderr))

		lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
		require.Len(t, lines, 3)
		assert.True(t, strings.HasPrefix(lines[0], "route_id,"))
	})

	t.Run("to a file", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "stops.txt")
		var stdout, stderr bytes.Buffer
		require.NoError(t, run([]string{"export", "-file", "stops.txt", "-o", out, fixture("feeds", "basic")}, &stdout, &stderr))

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Contains(t, string(data), "Market & Placer")
		assert.Empty(t, stdout.String())
	})

	t.Run("unknown file", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		assert.ErrorIs(t, run([]string{"export", "-file", "translations", fixture("basic.zip")}, &stdout, &stderr), errUsage)
	})
}

func TestResolve(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
server:
  port: 8080
  env: production
  api_keys: [alpha, beta]
  rate_limit: 5
  log_level: debug
feed:
  source: https://example.com/gtfs.zip
  reload_interval: 1h
  s3_region: us-west-2
`), 0o600))

	t.Run("config file fills unset flags", func(t *testing.T) {
		var opts options
		var cf commandFlags
		var stderr bytes.Buffer
		fs := newFlagSet("serve", &stderr, &opts, &cf)
		fs.IntVar(&opts.app.Port, "port", 4000, "")
		fs.StringVar(&cf.apiKeys, "api-keys", "", "")
		reloadIntervalFlag(fs, &opts.gtfs)

		require.NoError(t, resolve(fs, []string{"-config", configPath, "-port", "9000"}, &opts, &cf, &stderr))

		assert.Equal(t, 9000, opts.app.Port)
		assert.Equal(t, appconf.Production, opts.app.Env)
		assert.Equal(t, []string{"alpha", "beta"}, opts.app.ApiKeys)
		assert.Equal(t, 5, opts.app.RateLimit)
		assert.Equal(t, "debug", opts.app.LogLevel)
		assert.Equal(t, "https://example.com/gtfs.zip", opts.gtfs.GtfsURL)
		assert.Equal(t, time.Hour, opts.gtfs.ReloadInterval)
		assert.Equal(t, "us-west-2", opts.gtfs.S3Region)
		assert.Equal(t, appconf.Production, opts.gtfs.Env)
		assert.NotNil(t, opts.gtfs.Logger)
	})

	t.Run("positional feed wins over the config file", func(t *testing.T) {
		var opts options
		var cf commandFlags
		var stderr bytes.Buffer
		fs := newFlagSet("validate", &stderr, &opts, &cf)

		require.NoError(t, resolve(fs, []string{"-config", configPath, "feed.zip"}, &opts, &cf, &stderr))
		assert.Equal(t, "feed.zip", opts.gtfs.GtfsURL)
	})

	t.Run("invalid config file", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(bad, []byte("server:\n  port: 70000\n"), 0o600))

		var opts options
		var cf commandFlags
		var stderr bytes.Buffer
		fs := newFlagSet("validate", &stderr, &opts, &cf)

		err := resolve(fs, []string{"-config", bad, "feed.zip"}, &opts, &cf, &stderr)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid config")
	})

	t.Run("too many feeds", func(t *testing.T) {
		var opts options
		var cf commandFlags
		var stderr bytes.Buffer
		fs := newFlagSet("validate", &stderr, &opts, &cf)

		assert.ErrorIs(t, resolve(fs, []string{"a.zip", "b.zip"}, &opts, &cf, &stderr), errUsage)
	})
}
