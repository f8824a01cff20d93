// Package config loads application configuration from an optional YAML file
// plus CLIMATE_-prefixed environment variables, and initializes the global
// logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Cache     CacheConfig     `yaml:"cache" mapstructure:"cache"`
	OpenMeteo OpenMeteoConfig `yaml:"openmeteo" mapstructure:"openmeteo"`
	Analysis  AnalysisConfig  `yaml:"analysis" mapstructure:"analysis"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// CacheConfig configures the cache backend. Driver "off" disables caching.
type CacheConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// OpenMeteoConfig holds the upstream API endpoints and call limits.
type OpenMeteoConfig struct {
	GeocodingBaseURL    string  `yaml:"geocoding_base_url" mapstructure:"geocoding_base_url"`
	ForecastBaseURL     string  `yaml:"forecast_base_url" mapstructure:"forecast_base_url"`
	ArchiveBaseURL      string  `yaml:"archive_base_url" mapstructure:"archive_base_url"`
	ClimateBaseURL      string  `yaml:"climate_base_url" mapstructure:"climate_base_url"`
	GeocodeTimeoutSecs  int     `yaml:"geocode_timeout_secs" mapstructure:"geocode_timeout_secs"`
	ForecastTimeoutSecs int     `yaml:"forecast_timeout_secs" mapstructure:"forecast_timeout_secs"`
	ArchiveTimeoutSecs  int     `yaml:"archive_timeout_secs" mapstructure:"archive_timeout_secs"`
	ClimateTimeoutSecs  int     `yaml:"climate_timeout_secs" mapstructure:"climate_timeout_secs"`
	RateLimitPerSec     float64 `yaml:"rate_limit_per_sec" mapstructure:"rate_limit_per_sec"`
}

// AnalysisConfig configures the projection model and horizon.
type AnalysisConfig struct {
	ClimateModel string `yaml:"climate_model" mapstructure:"climate_model"`
	HorizonYear  int    `yaml:"horizon_year" mapstructure:"horizon_year"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures the global zap logger.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads config.yaml from the working directory (optional) and the
// environment, applying defaults for everything else.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CLIMATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("cache.driver", "memory")
	v.SetDefault("openmeteo.geocoding_base_url", "https://geocoding-api.open-meteo.com/v1")
	v.SetDefault("openmeteo.forecast_base_url", "https://api.open-meteo.com/v1")
	v.SetDefault("openmeteo.archive_base_url", "https://archive-api.open-meteo.com/v1")
	v.SetDefault("openmeteo.climate_base_url", "https://climate-api.open-meteo.com/v1")
	v.SetDefault("openmeteo.geocode_timeout_secs", 10)
	v.SetDefault("openmeteo.forecast_timeout_secs", 15)
	v.SetDefault("openmeteo.archive_timeout_secs", 30)
	v.SetDefault("openmeteo.climate_timeout_secs", 30)
	v.SetDefault("openmeteo.rate_limit_per_sec", 10.0)
	v.SetDefault("analysis.climate_model", "CMCC_CM2_VHR4")
	v.SetDefault("analysis.horizon_year", 2050)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger builds the global zap logger from the log config.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
