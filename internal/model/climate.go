package model

import "time"

// DataQuality distinguishes values computed from real upstream samples from
// synthesized geographic estimates.
type DataQuality string

const (
	QualityHigh      DataQuality = "high"
	QualityEstimated DataQuality = "estimated"
)

// PeriodStats aggregates daily observations over a calendar month or a full
// year within a named date range. SampleCount is the number of upstream
// samples behind the averages; zero means the stats are synthetic.
type PeriodStats struct {
	AvgTempMax       float64 `json:"avg_temp_max"`
	AvgTempMin       float64 `json:"avg_temp_min"`
	AvgPrecipitation float64 `json:"avg_precipitation"`
	SampleCount      int     `json:"sample_count"`
}

// ArchiveStats is the normalized output of a historical-archive fetch:
// per-month aggregates plus an annual mean temperature over the window.
type ArchiveStats struct {
	Months         map[time.Month]PeriodStats `json:"months"`
	AnnualMeanTemp float64                    `json:"annual_mean_temp"`
	AnnualSamples  int                        `json:"annual_samples"`
	Period         string                     `json:"period"`
}

// Month returns the stats for m, or a zero-sample PeriodStats when the
// window carried no data for that month.
func (a ArchiveStats) Month(m time.Month) PeriodStats {
	return a.Months[m]
}

// ClimateVariation compares the recent period against the baseline for one
// calendar month.
type ClimateVariation struct {
	Month                 int         `json:"current_month"`
	MonthName             string      `json:"month_name"`
	TempMaxDelta          float64     `json:"temp_max_delta"`
	TempMinDelta          float64     `json:"temp_min_delta"`
	PrecipitationPctDelta float64     `json:"precipitation_pct_delta"`
	BaselinePeriod        string      `json:"baseline_period"`
	RecentPeriod          string      `json:"recent_period"`
	DataQuality           DataQuality `json:"data_quality"`
}

// AnnualIncrease is the baseline-to-recent change in annual mean temperature.
type AnnualIncrease struct {
	Increase       float64     `json:"increase"`
	RecentAvg      float64     `json:"recent_avg"`
	BaselineAvg    float64     `json:"baseline_avg"`
	BaselinePeriod string      `json:"baseline_period"`
	RecentPeriod   string      `json:"recent_period"`
	Confidence     DataQuality `json:"confidence"`
}

// CurrentClimate summarizes present conditions and the next seven days.
type CurrentClimate struct {
	CurrentTemperature float64 `json:"current_temperature"`
	CurrentHumidity    float64 `json:"current_humidity"`
	AvgTempMax         float64 `json:"avg_temp_max"`
	AvgTempMin         float64 `json:"avg_temp_min"`
	TotalPrecipitation float64 `json:"total_precipitation"`
	Source             string  `json:"data_source"`
}

// Projection holds modeled climate change to the configured horizon year.
type Projection struct {
	TempChangeToHorizon    float64 `json:"temp_change_to_horizon"`
	CurrentAvgTemp         float64 `json:"current_avg_temp"`
	FutureAvgTemp          float64 `json:"future_avg_temp"`
	ExtremeHeatDaysCurrent int     `json:"extreme_heat_days_current"`
	ExtremeHeatDaysFuture  int     `json:"extreme_heat_days_future"`
	PrecipitationPctChange float64 `json:"precipitation_pct_change"`
	ModelID                string  `json:"model_id"`
	HorizonYear            int     `json:"horizon_year"`
}
