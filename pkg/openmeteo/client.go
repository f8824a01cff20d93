// Package openmeteo provides a client for the Open-Meteo geocoding,
// forecast, historical-archive, and climate-projection APIs.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// Client defines the four upstream operations the analysis engine consumes.
type Client interface {
	// Search geocodes a free-text place name.
	Search(ctx context.Context, name string, limit int) ([]GeoResult, error)

	// Forecast returns current conditions plus a daily forecast.
	Forecast(ctx context.Context, lat, lon float64, days int) (*ForecastResponse, error)

	// Archive returns historical daily series between start and end
	// dates (YYYY-MM-DD).
	Archive(ctx context.Context, lat, lon float64, start, end string) (*DailySeries, error)

	// Climate returns modeled daily series for the given climate model
	// between start and end dates (YYYY-MM-DD).
	Climate(ctx context.Context, lat, lon float64, model, start, end string) (*DailySeries, error)
}

// Option configures the client.
type Option func(*httpClient)

// WithHTTPClient sets a custom HTTP client for all four APIs.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithGeocodingBaseURL overrides the geocoding API base URL.
func WithGeocodingBaseURL(u string) Option {
	return func(c *httpClient) {
		c.geocodingBase = u
	}
}

// WithForecastBaseURL overrides the forecast API base URL.
func WithForecastBaseURL(u string) Option {
	return func(c *httpClient) {
		c.forecastBase = u
	}
}

// WithArchiveBaseURL overrides the archive API base URL.
func WithArchiveBaseURL(u string) Option {
	return func(c *httpClient) {
		c.archiveBase = u
	}
}

// WithClimateBaseURL overrides the climate API base URL.
func WithClimateBaseURL(u string) Option {
	return func(c *httpClient) {
		c.climateBase = u
	}
}

// WithRateLimit sets the requests-per-second limit shared by all four APIs.
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), int(rps))
	}
}

// WithTimeouts overrides the per-API call timeouts.
func WithTimeouts(geocode, forecast, archive, climate time.Duration) Option {
	return func(c *httpClient) {
		c.geocodeTimeout = geocode
		c.forecastTimeout = forecast
		c.archiveTimeout = archive
		c.climateTimeout = climate
	}
}

type httpClient struct {
	http *http.Client

	geocodingBase string
	forecastBase  string
	archiveBase   string
	climateBase   string

	geocodeTimeout  time.Duration
	forecastTimeout time.Duration
	archiveTimeout  time.Duration
	climateTimeout  time.Duration

	limiter  *rate.Limiter
	breakers map[string]*gobreaker.CircuitBreaker
}

// NewClient creates a client with the public Open-Meteo endpoints and a
// circuit breaker per API, so a dead upstream fails fast instead of holding
// every analysis at its timeout.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		http: &http.Client{
			Timeout: 45 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		geocodingBase:   "https://geocoding-api.open-meteo.com/v1",
		forecastBase:    "https://api.open-meteo.com/v1",
		archiveBase:     "https://archive-api.open-meteo.com/v1",
		climateBase:     "https://climate-api.open-meteo.com/v1",
		geocodeTimeout:  10 * time.Second,
		forecastTimeout: 15 * time.Second,
		archiveTimeout:  30 * time.Second,
		climateTimeout:  30 * time.Second,
		limiter:         rate.NewLimiter(10, 10),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.breakers = make(map[string]*gobreaker.CircuitBreaker, 4)
	for _, name := range []string{"geocoding", "forecast", "archive", "climate"} {
		c.breakers[name] = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "openmeteo-" + name,
			MaxRequests: 3,
			Interval:    time.Minute,
			Timeout:     2 * time.Minute,
		})
	}
	return c
}

func (c *httpClient) Search(ctx context.Context, name string, limit int) ([]GeoResult, error) {
	params := url.Values{}
	params.Set("name", name)
	params.Set("count", strconv.Itoa(limit))
	params.Set("language", "en")
	params.Set("format", "json")

	var resp geoResponse
	if err := c.get(ctx, "geocoding", c.geocodingBase+"/search", params, c.geocodeTimeout, &resp); err != nil {
		return nil, eris.Wrapf(err, "openmeteo: search %q", name)
	}
	return resp.Results, nil
}

func (c *httpClient) Forecast(ctx context.Context, lat, lon float64, days int) (*ForecastResponse, error) {
	params := coordParams(lat, lon)
	params.Set("current", "temperature_2m,relative_humidity_2m,precipitation,weather_code")
	params.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_sum")
	params.Set("timezone", "auto")
	params.Set("forecast_days", strconv.Itoa(days))

	var resp ForecastResponse
	if err := c.get(ctx, "forecast", c.forecastBase+"/forecast", params, c.forecastTimeout, &resp); err != nil {
		return nil, eris.Wrapf(err, "openmeteo: forecast %.4f,%.4f", lat, lon)
	}
	return &resp, nil
}

func (c *httpClient) Archive(ctx context.Context, lat, lon float64, start, end string) (*DailySeries, error) {
	params := coordParams(lat, lon)
	params.Set("start_date", start)
	params.Set("end_date", end)
	params.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_sum")
	params.Set("timezone", "auto")

	var resp DailySeries
	if err := c.get(ctx, "archive", c.archiveBase+"/archive", params, c.archiveTimeout, &resp); err != nil {
		return nil, eris.Wrapf(err, "openmeteo: archive %.4f,%.4f %s..%s", lat, lon, start, end)
	}
	return &resp, nil
}

func (c *httpClient) Climate(ctx context.Context, lat, lon float64, model, start, end string) (*DailySeries, error) {
	params := coordParams(lat, lon)
	params.Set("models", model)
	params.Set("start_date", start)
	params.Set("end_date", end)
	params.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_sum")

	var resp DailySeries
	if err := c.get(ctx, "climate", c.climateBase+"/climate", params, c.climateTimeout, &resp); err != nil {
		return nil, eris.Wrapf(err, "openmeteo: climate %.4f,%.4f model %s", lat, lon, model)
	}
	return &resp, nil
}

func coordParams(lat, lon float64) url.Values {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	return params
}

// get performs one rate-limited, breaker-guarded GET and decodes the JSON
// body into out. Non-2xx responses and empty bodies are errors.
func (c *httpClient) get(ctx context.Context, breaker, rawURL string, params url.Values, timeout time.Duration, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return eris.Wrap(err, "rate limit wait")
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_, err := c.breakers[breaker].Execute(func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL+"?"+params.Encode(), nil)
		if err != nil {
			return nil, eris.Wrap(err, "build request")
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<20))
		if err != nil {
			return nil, eris.Wrap(err, "read body")
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncate(body, 200))
		}
		if len(body) == 0 {
			return nil, eris.New("empty response body")
		}
		if err := json.Unmarshal(body, out); err != nil {
			return nil, eris.Wrap(err, "decode response")
		}
		return nil, nil
	})
	return err
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
