package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmcdole/flightdeck/internal/adapter"
	"github.com/mmcdole/flightdeck/internal/aircraft"
	"github.com/mmcdole/flightdeck/internal/api"
	"github.com/mmcdole/flightdeck/internal/flight"
	"github.com/mmcdole/flightdeck/internal/mutation"
	"github.com/mmcdole/flightdeck/internal/notify"
	"github.com/mmcdole/flightdeck/internal/search"
	"github.com/mmcdole/flightdeck/internal/store"
	"github.com/mmcdole/flightdeck/internal/waypoint"
)

// annotationStandalone marks commands that run without an API session
const annotationStandalone = "standalone"

// overrides are the persistent flags applied on top of the loaded config
type overrides struct {
	baseURL  string
	token    string
	memory   bool
	logLevel string
}

// app holds everything a command needs once config and cache are open
type app struct {
	cfg      *adapter.Config
	logger   *slog.Logger
	closeLog func() error
	cache    *store.Store

	aircraft  *aircraft.Commands
	waypoints *waypoint.Commands
	flights   *flight.Commands
	search    *search.Service

	// toasts is set for the interactive browser instead of printing
	toasts *notify.Queue
	// shown records what the user already saw, so failures are not
	// printed twice
	shown *notify.Recorder
}

func loadConfig(o *overrides) (*adapter.Config, error) {
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if o.baseURL != "" {
		cfg.API.BaseURL = o.baseURL
	}
	if o.token != "" {
		cfg.API.Token = o.token
	}
	if o.memory {
		cfg.Cache.Persist = false
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	return cfg, nil
}

// newApp opens the cache and wires the feature packages. interactive routes
// notifications to the TUI toast queue instead of out.
func newApp(cfg *adapter.Config, out io.Writer, interactive bool) (*app, error) {
	logger, closeLog, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger, closeLog = adapter.NullLogger(), func() error { return nil }
	}
	slog.SetDefault(logger)

	cache, err := store.Open(cfg.CacheDir(), cfg.API.BaseURL, logger)
	if err != nil {
		_ = closeLog()
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger, closeLog: closeLog, cache: cache, shown: &notify.Recorder{}}

	var userFacing notify.Notifier
	if interactive {
		a.toasts = notify.NewQueue(time.Duration(cfg.UI.ToastSeconds) * time.Second)
		userFacing = a.toasts
	} else {
		userFacing = notify.NewWriter(out)
	}
	env := mutation.Env{
		Cache:    cache,
		Notifier: notify.Multi{userFacing, notify.Log{Logger: logger}, a.shown},
		Logger:   logger,
	}

	transport := api.NewTransport(cfg.API.BaseURL, api.StaticToken(cfg.API.Token), logger,
		api.WithTimeout(cfg.API.Timeout),
	)
	a.aircraft = aircraft.NewCommands(transport, env)
	a.waypoints = waypoint.NewCommands(transport, env)
	a.flights = flight.NewCommands(transport, env)
	a.search = search.NewService(
		aircraft.NewQueries(cache),
		waypoint.NewQueries(cache),
		flight.NewQueries(cache),
		logger,
	)

	logger.Info("starting flightdeck", "version", Version, "server", cfg.API.BaseURL)
	return a, nil
}

func (a *app) Close() error {
	err := a.cache.Close()
	if cerr := a.closeLog(); err == nil {
		err = cerr
	}
	return err
}

func isStandalone(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationStandalone] == "true" {
			return true
		}
	}
	return false
}
