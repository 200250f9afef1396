package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"time"

	"gtfsreader.onebusaway.org/internal/appconf"
	"gtfsreader.onebusaway.org/internal/gtfs"
	"gtfsreader.onebusaway.org/internal/logging"
)

// options is the resolved configuration of one command
type options struct {
	app    appconf.Config
	gtfs   gtfs.Config
	logger *slog.Logger
}

type commandFlags struct {
	configPath string
	env        string
	apiKeys    string
}

// newFlagSet declares the flags shared by every command
func newFlagSet(name string, stderr io.Writer, opts *options, cf *commandFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&cf.configPath, "config", "", "Path to a YAML config file")
	fs.StringVar(&opts.gtfs.GtfsURL, "gtfs-url", "", "GTFS feed: zip file, directory, http(s) URL or s3://bucket/key")
	fs.StringVar(&opts.gtfs.GTFSDataPath, "data-path", "", "SQLite database to copy the feed into (empty disables)")
	fs.StringVar(&cf.env, "env", "development", "Environment (development|test|production)")
	fs.StringVar(&opts.app.LogLevel, "log-level", "info", "Log level (debug|info|warn|error)")
	fs.BoolVar(&opts.gtfs.Verbose, "verbose", false, "Log every skipped row")
	fs.StringVar(&opts.gtfs.S3Region, "s3-region", "", "AWS region for s3:// feeds")
	fs.StringVar(&opts.gtfs.S3Endpoint, "s3-endpoint", "", "Custom S3 endpoint, e.g. a MinIO server")

	return fs
}

// resolve parses args, layers the config file under explicitly set flags and
// builds the logger. A single positional argument is taken as the feed.
func resolve(fs *flag.FlagSet, args []string, opts *options, cf *commandFlags, stderr io.Writer) error {
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	explicit := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	switch fs.NArg() {
	case 0:
	case 1:
		opts.gtfs.GtfsURL = fs.Arg(0)
		explicit["gtfs-url"] = true
	default:
		fmt.Fprintf(stderr, "%s: expected at most one feed argument\n", fs.Name())
		return errUsage
	}

	opts.app.Env = appconf.EnvFlagToEnvironment(cf.env)
	opts.app.ApiKeys = appconf.SplitList(cf.apiKeys)

	if cf.configPath != "" {
		fileConfig, err := appconf.LoadFile(cf.configPath)
		if err != nil {
			return err
		}
		fileConfig.Apply(&opts.app, explicit)
		applyFeedConfig(fileConfig.Feed, &opts.gtfs, explicit)
	}

	if opts.gtfs.GtfsURL == "" {
		fmt.Fprintf(stderr, "%s: no feed given; pass -gtfs-url or a feed argument\n", fs.Name())
		return errUsage
	}

	opts.logger = logging.NewStructuredLogger(stderr, logging.ParseLevel(opts.app.LogLevel))
	opts.gtfs.Env = opts.app.Env
	opts.gtfs.Logger = opts.logger
	return nil
}

func applyFeedConfig(feed appconf.FeedConfig, cfg *gtfs.Config, explicit map[string]bool) {
	if feed.Source != "" && !explicit["gtfs-url"] {
		cfg.GtfsURL = feed.Source
	}
	if feed.DataPath != "" && !explicit["data-path"] {
		cfg.GTFSDataPath = feed.DataPath
	}
	if feed.ReloadInterval != 0 && !explicit["reload-interval"] {
		cfg.ReloadInterval = feed.ReloadInterval
	}
	if feed.S3Region != "" && !explicit["s3-region"] {
		cfg.S3Region = feed.S3Region
	}
	if feed.S3Endpoint != "" && !explicit["s3-endpoint"] {
		cfg.S3Endpoint = feed.S3Endpoint
	}
}

func reloadIntervalFlag(fs *flag.FlagSet, cfg *gtfs.Config) {
	fs.DurationVar(&cfg.ReloadInterval, "reload-interval", 24*time.Hour, "How often remote feeds are fetched again")
}
