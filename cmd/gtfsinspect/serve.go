package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julienschmidt/httprouter"

	"gtfsreader.onebusaway.org/internal/app"
	"gtfsreader.onebusaway.org/internal/appconf"
	"gtfsreader.onebusaway.org/internal/gtfs"
	"gtfsreader.onebusaway.org/internal/restapi"
	"gtfsreader.onebusaway.org/internal/webui"
)

func serve(args []string, stderr io.Writer) error {
	var opts options
	var cf commandFlags
	fs := newFlagSet("serve", stderr, &opts, &cf)
	fs.IntVar(&opts.app.Port, "port", 4000, "API server port")
	fs.StringVar(&cf.apiKeys, "api-keys", "", "Comma separated API keys (empty disables key checks)")
	fs.IntVar(&opts.app.RateLimit, "rate-limit", 100, "Requests per second allowed per API key")
	reloadIntervalFlag(fs, &opts.gtfs)

	if err := resolve(fs, args, &opts, &cf, stderr); err != nil {
		return err
	}
	logger := opts.logger

	gtfsManager, err := gtfs.InitGTFSManager(opts.gtfs)
	if err != nil {
		return fmt.Errorf("failed to initialize GTFS manager: %w", err)
	}
	defer gtfsManager.Shutdown()

	application := &app.Application{
		Config:      opts.app,
		GtfsConfig:  opts.gtfs,
		Logger:      logger,
		GtfsManager: gtfsManager,
	}
	api := restapi.NewRestAPI(application)
	defer api.Shutdown()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", opts.app.Port),
		Handler:      buildHandler(application, api),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", srv.Addr, "env", opts.app.Env.String())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildHandler mounts the API, plus the debug pages outside production
func buildHandler(application *app.Application, api *restapi.RestAPI) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", api.Routes())

	if application.Config.Env != appconf.Production {
		router := httprouter.New()
		webUI := &webui.WebUI{Application: application}
		webUI.SetWebUIRoutes(router)
		mux.Handle("/debug/", router)
	}
	return mux
}
