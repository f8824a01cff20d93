package openmeteo

// GeoResult is a single geocoding match.
type GeoResult struct {
	Name       string  `json:"name"`
	Country    string  `json:"country"`
	Admin1     string  `json:"admin1"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Population int64   `json:"population"`
	Timezone   string  `json:"timezone"`
}

type geoResponse struct {
	Results []GeoResult `json:"results"`
}

// CurrentConditions holds the instantaneous observation block.
type CurrentConditions struct {
	Temperature   float64 `json:"temperature_2m"`
	Humidity      float64 `json:"relative_humidity_2m"`
	Precipitation float64 `json:"precipitation"`
	WeatherCode   int     `json:"weather_code"`
}

// DailyBlock holds parallel daily series. Values are pointers because the
// archive and climate APIs return null for days without data.
type DailyBlock struct {
	Time             []string   `json:"time"`
	TempMax          []*float64 `json:"temperature_2m_max"`
	TempMin          []*float64 `json:"temperature_2m_min"`
	PrecipitationSum []*float64 `json:"precipitation_sum"`
}

// Empty reports whether the block carries no days at all.
func (d DailyBlock) Empty() bool {
	return len(d.Time) == 0 && len(d.TempMax) == 0
}

// ForecastResponse is the parsed forecast API payload.
type ForecastResponse struct {
	Current CurrentConditions `json:"current"`
	Daily   DailyBlock        `json:"daily"`
}

// DailySeries is the parsed archive/climate API payload.
type DailySeries struct {
	Daily DailyBlock `json:"daily"`
}
