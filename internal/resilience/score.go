// Package resilience turns a climate projection into a 0-100 resilience
// score with qualitative concerns and recommendations.
package resilience

import "github.com/openeyemedia/climate-api/internal/model"

// Score rates a projection on a 0-100 scale. 100 means no projected stress;
// penalties accumulate for warming, extreme heat growth and precipitation
// shift, then the total is clamped into [0, 100]. The function is pure: the
// same projection always yields the same score.
func Score(p model.Projection) model.ResilienceScore {
	score := 100
	var concerns []string

	switch {
	case p.TempChangeToHorizon > 3:
		score -= 40
	case p.TempChangeToHorizon > 2:
		score -= 25
	case p.TempChangeToHorizon > 1.5:
		score -= 15
	case p.TempChangeToHorizon > 1:
		score -= 10
	}
	if p.TempChangeToHorizon > 2 {
		concerns = append(concerns, "Significant temperature increase")
	}

	heatIncrease := p.ExtremeHeatDaysFuture - p.ExtremeHeatDaysCurrent
	switch {
	case heatIncrease > 30:
		score -= 20
	case heatIncrease > 15:
		score -= 10
	case heatIncrease > 5:
		score -= 5
	}
	if heatIncrease > 10 {
		concerns = append(concerns, "Increased extreme heat events")
	}

	precip := p.PrecipitationPctChange
	absPrecip := precip
	if absPrecip < 0 {
		absPrecip = -absPrecip
	}
	switch {
	case absPrecip > 30:
		score -= 15
	case absPrecip > 20:
		score -= 10
	case absPrecip > 10:
		score -= 5
	}
	if precip > 20 {
		concerns = append(concerns, "Increased flooding risk")
	} else if precip < -20 {
		concerns = append(concerns, "Increased drought risk")
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	if len(concerns) == 0 {
		concerns = append(concerns, "Stable climate conditions expected")
	}

	level, description := classify(score)

	return model.ResilienceScore{
		Score:           score,
		RiskLevel:       level,
		Description:     description,
		Concerns:        concerns,
		Recommendations: recommendations(score, p),
	}
}

func classify(score int) (model.RiskLevel, string) {
	switch {
	case score >= 80:
		return model.RiskLow, "Minimal climate risks expected. Good long-term outlook."
	case score >= 60:
		return model.RiskModerate, "Some climate challenges expected but manageable with adaptation."
	case score >= 40:
		return model.RiskHigh, "Significant climate risks. Consider adaptation measures."
	default:
		return model.RiskVeryHigh, "Severe climate risks. Relocation may be advisable."
	}
}

func recommendations(score int, p model.Projection) []string {
	var recs []string
	if score < 60 {
		recs = append(recs,
			"Consider climate adaptation measures",
			"Invest in cooling/heating systems")
	}
	if p.TempChangeToHorizon > 1.5 {
		recs = append(recs, "Prepare for increased energy costs")
	}
	if p.PrecipitationPctChange > 15 {
		recs = append(recs, "Consider flood insurance and drainage")
	} else if p.PrecipitationPctChange < -15 {
		recs = append(recs, "Plan for water conservation measures")
	}
	if score >= 80 {
		recs = append(recs, "Excellent climate stability - ideal for long-term planning")
	}
	return recs
}
