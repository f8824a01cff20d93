// Package resolver turns free-text place names or explicit coordinates into
// canonical locations, with a local gazetteer fallback when geocoding is
// unavailable.
package resolver

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/openeyemedia/climate-api/internal/cache"
	"github.com/openeyemedia/climate-api/internal/model"
	"github.com/openeyemedia/climate-api/pkg/openmeteo"
)

// ErrLocationNotFound is returned when neither the geocoding upstream nor
// the local gazetteer can place a query. It is the only terminal failure in
// an analysis request.
var ErrLocationNotFound = eris.New("resolver: location not found")

// Query is a location request: either a free-text name or explicit
// coordinates. Coordinates are authoritative and skip geocoding entirely.
type Query struct {
	Name        string   `json:"name,omitempty"`
	Country     string   `json:"country,omitempty"`
	AdminRegion string   `json:"admin_region,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
}

// HasCoordinates reports whether the query carries an explicit coordinate pair.
func (q Query) HasCoordinates() bool {
	return q.Latitude != nil && q.Longitude != nil
}

// Resolver resolves queries against the geocoding upstream, caching
// successful results and falling back to the embedded gazetteer.
type Resolver struct {
	client openmeteo.Client
	store  cache.Store
}

// New creates a Resolver. store may be nil for uncached operation.
func New(client openmeteo.Client, store cache.Store) *Resolver {
	return &Resolver{client: client, store: store}
}

// Resolve turns a query into a Location. Coordinate queries always succeed;
// name queries fail with ErrLocationNotFound only when geocoding and the
// gazetteer both miss.
func (r *Resolver) Resolve(ctx context.Context, q Query) (*model.Location, error) {
	if q.HasCoordinates() {
		loc := r.fromCoordinates(q)
		return &loc, nil
	}

	if q.Name == "" {
		return nil, eris.Wrap(ErrLocationNotFound, "empty query")
	}

	normalized := Normalize(q.Name)
	key := cache.NameKey("geocode", normalized)

	var cached model.Location
	if cache.GetJSON(ctx, r.store, key, &cached) {
		return &cached, nil
	}

	results, err := r.client.Search(ctx, q.Name, 1)
	if err != nil {
		zap.L().Warn("resolver: geocoding unavailable, trying gazetteer",
			zap.String("query", q.Name),
			zap.Error(err),
		)
	}
	if len(results) > 0 {
		loc := locationFromGeoResult(results[0])
		cache.PutJSON(ctx, r.store, key, loc, cache.TTLGeocode)
		return &loc, nil
	}

	if loc, ok := lookupGazetteer(normalized); ok {
		zap.L().Info("resolver: gazetteer fallback",
			zap.String("query", q.Name),
			zap.String("matched", loc.Name),
		)
		return &loc, nil
	}

	return nil, eris.Wrapf(ErrLocationNotFound, "query %q", q.Name)
}

// Search geocodes a free-text name and returns up to limit matches, for
// location autocomplete. Results are cached briefly; an upstream failure
// surfaces as an error since there is no sensible fallback list.
func (r *Resolver) Search(ctx context.Context, name string, limit int) ([]model.Location, error) {
	if len(name) < 2 {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}

	key := cache.NameKey("search", fmt.Sprintf("%s:%d", Normalize(name), limit))
	var cached []model.Location
	if cache.GetJSON(ctx, r.store, key, &cached) {
		return cached, nil
	}

	results, err := r.client.Search(ctx, name, limit)
	if err != nil {
		return nil, eris.Wrapf(err, "resolver: search %q", name)
	}

	locs := make([]model.Location, 0, len(results))
	for _, res := range results {
		locs = append(locs, locationFromGeoResult(res))
	}
	cache.PutJSON(ctx, r.store, key, locs, cache.TTLSearch)
	return locs, nil
}

// fromCoordinates synthesizes a Location directly from a coordinate query,
// defaulting the display metadata when absent.
func (r *Resolver) fromCoordinates(q Query) model.Location {
	lat := cache.RoundCoord(*q.Latitude)
	lon := cache.RoundCoord(*q.Longitude)

	name := q.Name
	if name == "" {
		name = fmt.Sprintf("Location %.2f,%.2f", lat, lon)
	}
	country := q.Country
	if country == "" {
		country = "Unknown"
	}

	return model.Location{
		Name:        name,
		Country:     country,
		AdminRegion: q.AdminRegion,
		Latitude:    lat,
		Longitude:   lon,
	}
}

func locationFromGeoResult(res openmeteo.GeoResult) model.Location {
	return model.Location{
		Name:        res.Name,
		Country:     res.Country,
		AdminRegion: res.Admin1,
		Latitude:    res.Latitude,
		Longitude:   res.Longitude,
		Population:  res.Population,
		Timezone:    res.Timezone,
	}
}
