package openmeteo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Paris", r.URL.Query().Get("name"))
		assert.Equal(t, "5", r.URL.Query().Get("count"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"name":"Paris","country":"France","admin1":"Île-de-France","latitude":48.8566,"longitude":2.3522,"population":2138551,"timezone":"Europe/Paris"}]}`))
	}))
	defer srv.Close()

	c := NewClient(WithGeocodingBaseURL(srv.URL))
	results, err := c.Search(context.Background(), "Paris", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Paris", results[0].Name)
	assert.Equal(t, "France", results[0].Country)
	assert.InDelta(t, 48.8566, results[0].Latitude, 0.0001)
}

func TestSearch_NoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(WithGeocodingBaseURL(srv.URL))
	results, err := c.Search(context.Background(), "Nowhereville", 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestForecast_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast", r.URL.Path)
		assert.Equal(t, "7", r.URL.Query().Get("forecast_days"))
		assert.NotEmpty(t, r.URL.Query().Get("latitude"))
		w.Write([]byte(`{
			"current": {"temperature_2m": 18.5, "relative_humidity_2m": 72, "precipitation": 0.1, "weather_code": 3},
			"daily": {
				"time": ["2026-08-01","2026-08-02"],
				"temperature_2m_max": [24.1, 25.3],
				"temperature_2m_min": [14.2, 15.0],
				"precipitation_sum": [0.0, 2.4]
			}
		}`))
	}))
	defer srv.Close()

	c := NewClient(WithForecastBaseURL(srv.URL))
	resp, err := c.Forecast(context.Background(), 48.8566, 2.3522, 7)
	require.NoError(t, err)
	assert.InDelta(t, 18.5, resp.Current.Temperature, 0.001)
	require.Len(t, resp.Daily.TempMax, 2)
	assert.InDelta(t, 25.3, *resp.Daily.TempMax[1], 0.001)
}

func TestArchive_NullDaysDecoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/archive", r.URL.Path)
		assert.Equal(t, "1990-01-01", r.URL.Query().Get("start_date"))
		w.Write([]byte(`{
			"daily": {
				"time": ["1990-01-01","1990-01-02"],
				"temperature_2m_max": [5.1, null],
				"temperature_2m_min": [-1.0, null],
				"precipitation_sum": [1.2, null]
			}
		}`))
	}))
	defer srv.Close()

	c := NewClient(WithArchiveBaseURL(srv.URL))
	series, err := c.Archive(context.Background(), 51.5, -0.1, "1990-01-01", "2020-12-31")
	require.NoError(t, err)
	require.Len(t, series.Daily.TempMax, 2)
	assert.NotNil(t, series.Daily.TempMax[0])
	assert.Nil(t, series.Daily.TempMax[1])
}

func TestClimate_ModelParam(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/climate", r.URL.Path)
		assert.Equal(t, "CMCC_CM2_VHR4", r.URL.Query().Get("models"))
		w.Write([]byte(`{"daily":{"time":["2024-01-01"],"temperature_2m_max":[10.0],"temperature_2m_min":[2.0],"precipitation_sum":[0.5]}}`))
	}))
	defer srv.Close()

	c := NewClient(WithClimateBaseURL(srv.URL))
	series, err := c.Climate(context.Background(), 51.5, -0.1, "CMCC_CM2_VHR4", "2024-01-01", "2050-12-31")
	require.NoError(t, err)
	require.Len(t, series.Daily.TempMax, 1)
}

func TestGet_Non2xxStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(WithGeocodingBaseURL(srv.URL))
	_, err := c.Search(context.Background(), "Paris", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 429")
}

func TestGet_EmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(WithGeocodingBaseURL(srv.URL))
	_, err := c.Search(context.Background(), "Paris", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty response body")
}

func TestGet_BreakerOpensAfterFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(WithGeocodingBaseURL(srv.URL))
	for i := 0; i < 10; i++ {
		_, err := c.Search(context.Background(), "Paris", 1)
		require.Error(t, err)
	}
	// By now the breaker rejects without hitting the server.
	_, err := c.Search(context.Background(), "Paris", 1)
	require.Error(t, err)
}

func TestGet_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(WithGeocodingBaseURL(srv.URL))
	_, err := c.Search(ctx, "Paris", 1)
	require.Error(t, err)
}
