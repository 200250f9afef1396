package main

import (
	"fmt"
	"io"
	"os"

	feeds "gtfsreader.onebusaway.org/gtfs"
	"gtfsreader.onebusaway.org/internal/gtfs"
	"gtfsreader.onebusaway.org/internal/logging"
)

func export(args []string, stdout, stderr io.Writer) (err error) {
	var opts options
	var cf commandFlags
	var file, output string
	fs := newFlagSet("export", stderr, &opts, &cf)
	fs.StringVar(&file, "file", "", "File to export, e.g. stops.txt")
	fs.StringVar(&output, "o", "", "Output path (default stdout)")

	if err := resolve(fs, args, &opts, &cf, stderr); err != nil {
		return err
	}

	kind, ok := feeds.ParseFileKind(file)
	if !ok {
		fmt.Fprintf(stderr, "export: unknown GTFS file %q\n", file)
		return errUsage
	}

	gtfsManager, err := gtfs.InitGTFSManager(opts.gtfs)
	if err != nil {
		return err
	}
	defer gtfsManager.Shutdown()

	w := stdout
	if output != "" {
		f, createErr := os.Create(output)
		if createErr != nil {
			return createErr
		}
		defer logging.HandleDeferredError(&err, f.Close, opts.logger, "export_output")
		w = f
	}

	return gtfsManager.Handle().Feed().WriteFile(w, kind)
}
