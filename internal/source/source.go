// Package source wraps the four upstream data fetches behind adapters that
// cache, normalize, and degrade. An adapter never returns an error across
// the boundary: a failed or empty fetch reports ok=false and the caller
// falls back to a geographic estimate.
package source

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/openeyemedia/climate-api/internal/cache"
	"github.com/openeyemedia/climate-api/internal/model"
	"github.com/openeyemedia/climate-api/pkg/openmeteo"
)

// Cache key kinds, one per data tier.
const (
	kindWeather = "weather"
	kindArchive = "archive"
	kindClimate = "climate"
)

const (
	baselineStart = "1990-01-01"
	baselineEnd   = "2020-12-31"
	baselineLabel = "1990-2020"

	forecastDays = 7
)

// CurrentAdapter fetches present conditions plus a 7-day outlook.
type CurrentAdapter struct {
	client openmeteo.Client
	store  cache.Store
}

func NewCurrent(client openmeteo.Client, store cache.Store) *CurrentAdapter {
	return &CurrentAdapter{client: client, store: store}
}

// Fetch returns normalized current climate for the coordinates. ok is false
// when the upstream is unreachable or returned an empty payload.
func (a *CurrentAdapter) Fetch(ctx context.Context, lat, lon float64) (model.CurrentClimate, bool) {
	key := cache.CoordKey(kindWeather, lat, lon, "")

	var cached model.CurrentClimate
	if cache.GetJSON(ctx, a.store, key, &cached) {
		return cached, true
	}

	resp, err := a.client.Forecast(ctx, lat, lon, forecastDays)
	if err != nil {
		zap.L().Warn("source: forecast fetch failed",
			zap.Float64("lat", lat), zap.Float64("lon", lon), zap.Error(err))
		return model.CurrentClimate{}, false
	}

	current, ok := currentFromForecast(resp)
	if !ok {
		zap.L().Warn("source: forecast payload empty",
			zap.Float64("lat", lat), zap.Float64("lon", lon))
		return model.CurrentClimate{}, false
	}

	cache.PutJSON(ctx, a.store, key, current, cache.TTLCurrentWeather)
	return current, true
}

// BaselineAdapter fetches the 1990-2020 historical reference window.
type BaselineAdapter struct {
	client openmeteo.Client
	store  cache.Store
}

func NewBaseline(client openmeteo.Client, store cache.Store) *BaselineAdapter {
	return &BaselineAdapter{client: client, store: store}
}

func (a *BaselineAdapter) Fetch(ctx context.Context, lat, lon float64) (model.ArchiveStats, bool) {
	return fetchArchive(ctx, a.client, a.store, lat, lon, baselineStart, baselineEnd, baselineLabel)
}

// RecentAdapter fetches the trailing five complete years ending last year.
// The window moves with the clock, so the clock is injectable for tests.
type RecentAdapter struct {
	client openmeteo.Client
	store  cache.Store
	now    func() time.Time
}

func NewRecent(client openmeteo.Client, store cache.Store) *RecentAdapter {
	return &RecentAdapter{client: client, store: store, now: time.Now}
}

// WithNow overrides the clock used to derive the recent window.
func (a *RecentAdapter) WithNow(now func() time.Time) *RecentAdapter {
	a.now = now
	return a
}

func (a *RecentAdapter) Fetch(ctx context.Context, lat, lon float64) (model.ArchiveStats, bool) {
	year := a.now().UTC().Year()
	start := fmt.Sprintf("%d-01-01", year-5)
	end := fmt.Sprintf("%d-12-31", year-1)
	label := fmt.Sprintf("%d-%d", year-5, year-1)
	return fetchArchive(ctx, a.client, a.store, lat, lon, start, end, label)
}

func fetchArchive(ctx context.Context, client openmeteo.Client, store cache.Store, lat, lon float64, start, end, label string) (model.ArchiveStats, bool) {
	key := cache.CoordKey(kindArchive, lat, lon, label)

	var cached model.ArchiveStats
	if cache.GetJSON(ctx, store, key, &cached) {
		return cached, true
	}

	series, err := client.Archive(ctx, lat, lon, start, end)
	if err != nil {
		zap.L().Warn("source: archive fetch failed",
			zap.Float64("lat", lat), zap.Float64("lon", lon),
			zap.String("window", label), zap.Error(err))
		return model.ArchiveStats{}, false
	}

	stats, ok := archiveStats(series, label)
	if !ok {
		zap.L().Warn("source: archive payload empty",
			zap.Float64("lat", lat), zap.Float64("lon", lon),
			zap.String("window", label))
		return model.ArchiveStats{}, false
	}

	cache.PutJSON(ctx, store, key, stats, cache.TTLArchive)
	return stats, true
}

// ProjectionAdapter fetches the 2024-2050 modeled series and reduces it to
// a Projection.
type ProjectionAdapter struct {
	client      openmeteo.Client
	store       cache.Store
	modelID     string
	startDate   string
	endDate     string
	window      string
	horizonYear int
}

func NewProjection(client openmeteo.Client, store cache.Store, modelID string, horizonYear int) *ProjectionAdapter {
	return &ProjectionAdapter{
		client:      client,
		store:       store,
		modelID:     modelID,
		startDate:   "2024-01-01",
		endDate:     fmt.Sprintf("%d-12-31", horizonYear),
		window:      fmt.Sprintf("2024-%d", horizonYear),
		horizonYear: horizonYear,
	}
}

func (a *ProjectionAdapter) Fetch(ctx context.Context, lat, lon float64) (model.Projection, bool) {
	key := cache.CoordKey(kindClimate, lat, lon, a.window)

	var cached model.Projection
	if cache.GetJSON(ctx, a.store, key, &cached) {
		return cached, true
	}

	series, err := a.client.Climate(ctx, lat, lon, a.modelID, a.startDate, a.endDate)
	if err != nil {
		zap.L().Warn("source: climate fetch failed",
			zap.Float64("lat", lat), zap.Float64("lon", lon),
			zap.String("model", a.modelID), zap.Error(err))
		return model.Projection{}, false
	}

	proj, ok := projectionFromSeries(series, a.modelID, a.horizonYear)
	if !ok {
		zap.L().Warn("source: climate payload empty",
			zap.Float64("lat", lat), zap.Float64("lon", lon),
			zap.String("model", a.modelID))
		return model.Projection{}, false
	}

	cache.PutJSON(ctx, a.store, key, proj, cache.TTLArchive)
	return proj, true
}
