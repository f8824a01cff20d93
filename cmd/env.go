package main

import (
	"context"
	"time"

	"github.com/openeyemedia/climate-api/internal/analysis"
	"github.com/openeyemedia/climate-api/internal/cache"
	"github.com/openeyemedia/climate-api/internal/resolver"
	"github.com/openeyemedia/climate-api/internal/source"
	"github.com/openeyemedia/climate-api/pkg/openmeteo"
)

// appEnv holds the initialized cache, clients, and orchestrator shared by
// the serve/analyze/compare/search commands.
type appEnv struct {
	Store        cache.Store
	Resolver     *resolver.Resolver
	Orchestrator *analysis.Orchestrator
}

// Close releases resources held by the environment.
func (e *appEnv) Close() {
	if e.Store != nil {
		_ = e.Store.Close()
	}
}

// initEnv opens the cache backend, builds the upstream client, and wires
// the orchestrator. Callers should defer env.Close().
func initEnv(ctx context.Context) (*appEnv, error) {
	store, err := cache.Open(ctx, cfg.Cache.Driver, cfg.Cache.DatabaseURL)
	if err != nil {
		return nil, err
	}

	om := cfg.OpenMeteo
	client := openmeteo.NewClient(
		openmeteo.WithGeocodingBaseURL(om.GeocodingBaseURL),
		openmeteo.WithForecastBaseURL(om.ForecastBaseURL),
		openmeteo.WithArchiveBaseURL(om.ArchiveBaseURL),
		openmeteo.WithClimateBaseURL(om.ClimateBaseURL),
		openmeteo.WithRateLimit(om.RateLimitPerSec),
		openmeteo.WithTimeouts(
			time.Duration(om.GeocodeTimeoutSecs)*time.Second,
			time.Duration(om.ForecastTimeoutSecs)*time.Second,
			time.Duration(om.ArchiveTimeoutSecs)*time.Second,
			time.Duration(om.ClimateTimeoutSecs)*time.Second,
		),
	)

	res := resolver.New(client, store)
	orch := analysis.New(
		res,
		source.NewCurrent(client, store),
		source.NewBaseline(client, store),
		source.NewRecent(client, store),
		source.NewProjection(client, store, cfg.Analysis.ClimateModel, cfg.Analysis.HorizonYear),
		store,
		cfg.Analysis.HorizonYear,
	)

	return &appEnv{
		Store:        store,
		Resolver:     res,
		Orchestrator: orch,
	}, nil
}
