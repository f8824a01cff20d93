package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// No config file in the test working directory: defaults apply.
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Cache.Driver)
	assert.Equal(t, "https://geocoding-api.open-meteo.com/v1", cfg.OpenMeteo.GeocodingBaseURL)
	assert.Equal(t, "https://api.open-meteo.com/v1", cfg.OpenMeteo.ForecastBaseURL)
	assert.Equal(t, "https://archive-api.open-meteo.com/v1", cfg.OpenMeteo.ArchiveBaseURL)
	assert.Equal(t, "https://climate-api.open-meteo.com/v1", cfg.OpenMeteo.ClimateBaseURL)
	assert.Equal(t, 10, cfg.OpenMeteo.GeocodeTimeoutSecs)
	assert.Equal(t, 15, cfg.OpenMeteo.ForecastTimeoutSecs)
	assert.Equal(t, 30, cfg.OpenMeteo.ArchiveTimeoutSecs)
	assert.Equal(t, 30, cfg.OpenMeteo.ClimateTimeoutSecs)
	assert.Equal(t, "CMCC_CM2_VHR4", cfg.Analysis.ClimateModel)
	assert.Equal(t, 2050, cfg.Analysis.HorizonYear)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CLIMATE_CACHE_DRIVER", "sqlite")
	t.Setenv("CLIMATE_ANALYSIS_HORIZON_YEAR", "2060")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Cache.Driver)
	assert.Equal(t, 2060, cfg.Analysis.HorizonYear)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))

	err := InitLogger(LogConfig{Level: "nope", Format: "json"})
	require.Error(t, err)
}
