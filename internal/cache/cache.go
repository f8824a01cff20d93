// Package cache provides the tiered key/value store used to bound upstream
// cost and staleness. Backends are interchangeable; a nil Store means the
// system runs uncached. Backend failures never propagate past this package:
// a failed read is a miss and a failed write is a no-op.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Per-tier TTLs, reflecting the volatility of each data kind.
const (
	TTLCurrentWeather = time.Hour
	TTLArchive        = 24 * time.Hour
	TTLGeocode        = 7 * 24 * time.Hour
	TTLSearch         = time.Hour
	TTLAnalysis       = 6 * time.Hour
)

// Store is a key/value store with per-entry TTL.
type Store interface {
	// Get returns the value for key, reporting false when the key is
	// absent or expired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key for the given TTL, replacing any
	// existing entry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	Close() error
}

// Purger is implemented by backends that can delete expired rows.
type Purger interface {
	Purge(ctx context.Context) (int64, error)
}

// GetJSON looks up key and unmarshals the cached entry into v. A nil store,
// backend error, missing entry, or corrupt entry all report a miss.
func GetJSON(ctx context.Context, s Store, key string, v any) bool {
	if s == nil {
		return false
	}
	data, ok, err := s.Get(ctx, key)
	if err != nil {
		zap.L().Debug("cache: read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		zap.L().Debug("cache: corrupt entry", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// PutJSON marshals v and stores it under key. Backend failures are logged
// and swallowed.
func PutJSON(ctx context.Context, s Store, key string, v any, ttl time.Duration) {
	if s == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		zap.L().Debug("cache: marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.Set(ctx, key, data, ttl); err != nil {
		zap.L().Debug("cache: write failed", zap.String("key", key), zap.Error(err))
	}
}

// Open constructs a Store for the configured driver. Driver "off" (or empty)
// returns a nil Store, which every caller treats as no-cache mode.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case "memory":
		return NewMemory(), nil
	case "sqlite":
		s, err := NewSQLite(dsn)
		if err != nil {
			return nil, err
		}
		if err := s.Migrate(ctx); err != nil {
			s.Close()
			return nil, err
		}
		return s, nil
	case "postgres":
		s, err := NewPostgresFromDSN(ctx, dsn)
		if err != nil {
			return nil, err
		}
		if err := s.Migrate(ctx); err != nil {
			s.Close()
			return nil, err
		}
		return s, nil
	case "off", "":
		return nil, nil
	default:
		return nil, eris.Errorf("cache: unknown driver %q", driver)
	}
}
