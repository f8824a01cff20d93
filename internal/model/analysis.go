package model

import "time"

// RiskLevel is the qualitative tier derived from the resilience score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskHigh     RiskLevel = "High"
	RiskVeryHigh RiskLevel = "Very High"
)

// ResilienceScore is the 0-100 heuristic summarizing projected climate
// stress, with its qualitative assessment. Concerns is never empty.
type ResilienceScore struct {
	Score           int       `json:"score"`
	RiskLevel       RiskLevel `json:"risk_level"`
	Description     string    `json:"description"`
	Concerns        []string  `json:"concerns"`
	Recommendations []string  `json:"recommendations"`
}

// Analysis is the root aggregate returned for a single location. Every
// numeric field is always populated, either from live upstream data or from
// a geographic estimate; DataProvenance records which.
type Analysis struct {
	Location           Location         `json:"location"`
	CurrentClimate     CurrentClimate   `json:"current_climate"`
	ClimateVariation   ClimateVariation `json:"climate_variation"`
	AnnualTempIncrease AnnualIncrease   `json:"annual_temp_increase"`
	Projection         Projection       `json:"projection"`
	Resilience         ResilienceScore  `json:"resilience"`
	DataProvenance     []string         `json:"data_provenance"`
	GeneratedAt        time.Time        `json:"generated_at"`
}

// Comparison holds two analyses and the derived relocation insights.
type Comparison struct {
	Current  *Analysis          `json:"current_location"`
	Target   *Analysis          `json:"target_location"`
	Insights ComparisonInsights `json:"comparison_insights"`
}

// ComparisonInsights summarizes how the target location compares to the
// current one.
type ComparisonInsights struct {
	Resilience     ResilienceComparison  `json:"resilience_comparison"`
	Temperature    TemperatureComparison `json:"temperature_comparison"`
	Recommendation string                `json:"recommendation"`
}

// ResilienceComparison compares resilience scores.
type ResilienceComparison struct {
	Winner          string `json:"winner"` // "current", "target", or "tie"
	ScoreDifference int    `json:"score_difference"`
	Improvement     bool   `json:"improvement"`
}

// TemperatureComparison compares projected warming.
type TemperatureComparison struct {
	CurrentChange float64 `json:"current_change"`
	TargetChange  float64 `json:"target_change"`
	Difference    float64 `json:"difference"`
	TargetCooler  bool    `json:"target_cooler"`
}
