package main

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"gtfsreader.onebusaway.org/internal/gtfs"
)

var errRowsSkipped = errors.New("feed has skipped rows")

func validate(args []string, stdout, stderr io.Writer) error {
	var opts options
	var cf commandFlags
	var strict bool
	fs := newFlagSet("validate", stderr, &opts, &cf)
	fs.BoolVar(&strict, "strict", false, "Exit with an error when any row was skipped")

	if err := resolve(fs, args, &opts, &cf, stderr); err != nil {
		return err
	}

	gtfsManager, err := gtfs.InitGTFSManager(opts.gtfs)
	if err != nil {
		return err
	}
	defer gtfsManager.Shutdown()

	stats := gtfsManager.Statistics()
	fmt.Fprintf(stdout, "feed: %s\n", stats.Source)

	files := make([]string, 0, len(stats.Counts))
	for file, n := range stats.Counts {
		if n > 0 {
			files = append(files, file)
		}
	}
	sort.Strings(files)
	for _, file := range files {
		fmt.Fprintf(stdout, "  %-16s %d\n", file, stats.Counts[file])
	}

	rowErrors := gtfsManager.Handle().RowErrors()
	fmt.Fprintf(stdout, "skipped rows: %d\n", len(rowErrors))
	for _, rowErr := range rowErrors {
		fmt.Fprintf(stdout, "  %s\n", rowErr)
	}

	if strict && len(rowErrors) > 0 {
		return errRowsSkipped
	}
	return nil
}
