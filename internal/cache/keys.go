package cache

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// coordPrecision is the number of decimal places used for coordinate
// identity (~11 m at the equator).
const coordPrecision = 4

// RoundCoord rounds a coordinate to the cache identity precision.
func RoundCoord(v float64) float64 {
	p := math.Pow10(coordPrecision)
	return math.Round(v*p) / p
}

// FormatCoord renders a coordinate at identity precision, e.g. "51.5074".
func FormatCoord(v float64) string {
	return strconv.FormatFloat(RoundCoord(v), 'f', coordPrecision, 64)
}

// CoordKey builds a cache key scoped to a data kind, rounded coordinates,
// and an optional window label.
func CoordKey(kind string, lat, lon float64, window string) string {
	key := fmt.Sprintf("%s:%s:%s", kind, FormatCoord(lat), FormatCoord(lon))
	if window != "" {
		key += ":" + window
	}
	return key
}

// NameKey builds a cache key scoped to a data kind and a normalized name.
func NameKey(kind, name string) string {
	return kind + ":" + strings.ToLower(strings.TrimSpace(name))
}
