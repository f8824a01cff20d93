package model

import "fmt"

// Tier names one of the four independent upstream data categories.
type Tier string

const (
	TierCurrentWeather Tier = "current_weather"
	TierBaseline       Tier = "historical_baseline"
	TierRecent         Tier = "recent_period"
	TierProjection     Tier = "projection"
)

// LiveProvenance records that a tier was satisfied by a real upstream fetch.
func LiveProvenance(t Tier, source string) string {
	return fmt.Sprintf("%s: live (%s)", t, source)
}

// EstimatedProvenance records that a tier fell back to the geographic model.
func EstimatedProvenance(t Tier) string {
	return fmt.Sprintf("%s: estimated (geographic model)", t)
}
