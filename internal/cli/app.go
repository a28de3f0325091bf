package cli

import (
	"context"
	"net/http"

	"github.com/randytsao24/tripmate/internal/api"
	"github.com/randytsao24/tripmate/internal/api/handlers"
	"github.com/randytsao24/tripmate/internal/config"
	"github.com/randytsao24/tripmate/internal/itinerary"
	"github.com/randytsao24/tripmate/internal/location"
	"github.com/randytsao24/tripmate/internal/logging"
	"github.com/randytsao24/tripmate/internal/models"
	"github.com/randytsao24/tripmate/internal/search"
	"github.com/randytsao24/tripmate/internal/transit"
)

// App is the wired service graph shared by every command
type App struct {
	Config    *config.Config
	Transport *search.Service
	Planner   *itinerary.Planner
	Bus       *location.Store
	Rail      *location.Store

	refreshers []*location.Refresher
	closers    []func()
}

// NewApp builds clients, loads both directories and wires the services.
// Directory failures leave that mode empty; they never fail startup.
func NewApp(ctx context.Context, cfg *config.Config) *App {
	busClient := transit.NewBusClient(cfg.Bus.BaseURL, cfg.Bus.ServiceKey, cfg.HTTPTimeout)
	railClient := transit.NewRailClient(cfg.Rail.BaseURL, cfg.Rail.ServiceKey, cfg.HTTPTimeout)
	placeClient := transit.NewPlaceClient(cfg.Places.BaseURL, cfg.Places.ServiceKey, cfg.HTTPTimeout)

	if !busClient.HasAPIKey() {
		logging.Warn().Msg("BUS_SERVICE_KEY not set - bus lookups will likely be rejected")
	}
	if !railClient.HasAPIKey() {
		logging.Warn().Msg("RAIL_SERVICE_KEY not set - rail lookups will likely be rejected")
	}
	if !placeClient.HasAPIKey() {
		logging.Warn().Msg("KAKAO_API_KEY not set - itineraries will be empty")
	}

	var busSource, railSource location.DirectoryProvider = busClient, railClient
	if cfg.Directory.File != "" {
		busSource = location.FileProvider{Path: cfg.Directory.File, Mode: models.ModeBus}
		railSource = location.FileProvider{Path: cfg.Directory.File, Mode: models.ModeRail}
	}

	app := &App{Config: cfg}
	app.Bus = location.NewStore(string(models.ModeBus), location.Build(ctx, string(models.ModeBus), busSource))
	app.Rail = location.NewStore(string(models.ModeRail), location.Build(ctx, string(models.ModeRail), railSource))
	app.refreshers = []*location.Refresher{
		location.NewRefresher(app.Bus, busSource, cfg.Directory.RefreshInterval),
		location.NewRefresher(app.Rail, railSource, cfg.Directory.RefreshInterval),
	}

	busDepartures := transit.NewResilientDepartures("bus", busClient, guardConfig(cfg.Bus, cfg))
	railDepartures := transit.NewResilientDepartures("rail", railClient, guardConfig(cfg.Rail, cfg))
	places := transit.NewResilientPlaces("places", placeClient, guardConfig(cfg.Places, cfg))
	app.closers = append(app.closers, busDepartures.Close, railDepartures.Close, places.Close)

	fanout := search.FanoutOptions{
		Concurrency: cfg.Fanout.Concurrency,
		CallTimeout: cfg.Fanout.CallTimeout,
	}
	app.Transport = search.NewService(
		search.ModeBackend{Directory: app.Bus, Fanout: search.NewFanout(models.ModeBus, busDepartures, fanout)},
		search.ModeBackend{Directory: app.Rail, Fanout: search.NewFanout(models.ModeRail, railDepartures, fanout)},
	)
	app.Planner = itinerary.NewPlanner(places)

	logging.Info().
		Int("bus_terminals", app.Bus.Load().Len()).
		Int("rail_stations", app.Rail.Load().Len()).
		Msg("directories loaded")

	return app
}

func guardConfig(p config.ProviderConfig, cfg *config.Config) transit.GuardConfig {
	return transit.GuardConfig{
		RatePerSecond: p.RatePerSecond,
		Burst:         p.Burst,
		CacheTTL:      cfg.CacheTTL,
	}
}

// Router returns the HTTP handler over the app's services
func (a *App) Router() http.Handler {
	return api.NewRouter(a.Config, api.Services{
		Transport:   a.Transport,
		Planner:     a.Planner,
		Directories: []handlers.CityDirectory{a.Bus, a.Rail},
	})
}

// Refreshers returns the directory refresh services for the supervisor
func (a *App) Refreshers() []*location.Refresher {
	return a.refreshers
}

// Close stops cache janitors
func (a *App) Close() {
	for _, c := range a.closers {
		c()
	}
}
