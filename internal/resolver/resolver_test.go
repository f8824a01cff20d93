package resolver

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openeyemedia/climate-api/internal/cache"
	"github.com/openeyemedia/climate-api/pkg/openmeteo"
)

// fakeGeoClient implements openmeteo.Client for resolver tests; only Search
// is reachable from this package.
type fakeGeoClient struct {
	results []openmeteo.GeoResult
	err     error
	calls   int
}

func (f *fakeGeoClient) Search(_ context.Context, _ string, _ int) ([]openmeteo.GeoResult, error) {
	f.calls++
	return f.results, f.err
}

func (f *fakeGeoClient) Forecast(context.Context, float64, float64, int) (*openmeteo.ForecastResponse, error) {
	panic("not used")
}

func (f *fakeGeoClient) Archive(context.Context, float64, float64, string, string) (*openmeteo.DailySeries, error) {
	panic("not used")
}

func (f *fakeGeoClient) Climate(context.Context, float64, float64, string, string, string) (*openmeteo.DailySeries, error) {
	panic("not used")
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"London, UK", "london uk"},
		{"  Paris  ", "paris"},
		{"New York", "new york"},
		{"São Paulo", "so paulo"},
		{"TOKYO!!!", "tokyo"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Normalize(tc.in), "input %q", tc.in)
	}
}

func TestLookupGazetteer(t *testing.T) {
	cases := []struct {
		query string
		name  string
		lat   float64
		lon   float64
		found bool
	}{
		{"london", "London", 51.5074, -0.1278, true},
		{"london uk", "London", 51.5074, -0.1278, true},
		{"new york", "New York", 40.7128, -74.0060, true},
		{"paris france", "Paris", 48.8566, 2.3522, true},
		{"greater tokyo area", "Tokyo", 35.6762, 139.6503, true},
		{"atlantis", "", 0, 0, false},
	}
	for _, tc := range cases {
		loc, ok := lookupGazetteer(tc.query)
		assert.Equal(t, tc.found, ok, "query %q", tc.query)
		if tc.found {
			assert.Equal(t, tc.name, loc.Name, "query %q", tc.query)
			assert.InDelta(t, tc.lat, loc.Latitude, 0.0001)
			assert.InDelta(t, tc.lon, loc.Longitude, 0.0001)
		}
	}
}

func TestResolve_Coordinates(t *testing.T) {
	lat, lon := 51.50739999, -0.12780001
	r := New(&fakeGeoClient{}, nil)

	loc, err := r.Resolve(context.Background(), Query{Latitude: &lat, Longitude: &lon})
	require.NoError(t, err)
	assert.Equal(t, "Location 51.51,-0.13", loc.Name)
	assert.Equal(t, "Unknown", loc.Country)
	assert.InDelta(t, 51.5074, loc.Latitude, 0.00001)
	assert.InDelta(t, -0.1278, loc.Longitude, 0.00001)
}

func TestResolve_CoordinatesKeepName(t *testing.T) {
	lat, lon := 48.8566, 2.3522
	r := New(&fakeGeoClient{}, nil)

	loc, err := r.Resolve(context.Background(), Query{
		Name: "Paris", Country: "France", Latitude: &lat, Longitude: &lon,
	})
	require.NoError(t, err)
	assert.Equal(t, "Paris", loc.Name)
	assert.Equal(t, "France", loc.Country)
}

func TestResolve_Geocoded(t *testing.T) {
	client := &fakeGeoClient{results: []openmeteo.GeoResult{{
		Name: "Paris", Country: "France", Admin1: "Île-de-France",
		Latitude: 48.8566, Longitude: 2.3522, Timezone: "Europe/Paris",
	}}}
	r := New(client, cache.NewMemory())

	loc, err := r.Resolve(context.Background(), Query{Name: "Paris"})
	require.NoError(t, err)
	assert.Equal(t, "Paris", loc.Name)
	assert.Equal(t, "Île-de-France", loc.AdminRegion)

	// Second call is served from cache.
	_, err = r.Resolve(context.Background(), Query{Name: "Paris"})
	require.NoError(t, err)
	assert.Equal(t, 1, client.calls)
}

func TestResolve_GazetteerFallbackOnUpstreamFailure(t *testing.T) {
	client := &fakeGeoClient{err: eris.New("connection refused")}
	r := New(client, nil)

	loc, err := r.Resolve(context.Background(), Query{Name: "London, UK"})
	require.NoError(t, err)
	assert.Equal(t, "London", loc.Name)
	assert.InDelta(t, 51.5074, loc.Latitude, 0.0001)
}

func TestResolve_NotFound(t *testing.T) {
	client := &fakeGeoClient{}
	r := New(client, nil)

	_, err := r.Resolve(context.Background(), Query{Name: "Atlantis"})
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrLocationNotFound))
}

func TestResolve_EmptyQuery(t *testing.T) {
	r := New(&fakeGeoClient{}, nil)

	_, err := r.Resolve(context.Background(), Query{})
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrLocationNotFound))
}

func TestSearch_ShortQuery(t *testing.T) {
	r := New(&fakeGeoClient{}, nil)

	locs, err := r.Search(context.Background(), "L", 10)
	require.NoError(t, err)
	assert.Nil(t, locs)
}

func TestSearch_UpstreamError(t *testing.T) {
	r := New(&fakeGeoClient{err: eris.New("timeout")}, nil)

	_, err := r.Search(context.Background(), "London", 10)
	require.Error(t, err)
}

func TestSearch_Cached(t *testing.T) {
	client := &fakeGeoClient{results: []openmeteo.GeoResult{{Name: "London", Country: "United Kingdom", Latitude: 51.5074, Longitude: -0.1278}}}
	r := New(client, cache.NewMemory())

	first, err := r.Search(context.Background(), "London", 10)
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := r.Search(context.Background(), "London", 10)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, client.calls)
}
