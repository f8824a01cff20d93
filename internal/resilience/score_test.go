package resilience

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openeyemedia/climate-api/internal/model"
)

func TestScore_NoStress(t *testing.T) {
	s := Score(model.Projection{})

	assert.Equal(t, 100, s.Score)
	assert.Equal(t, model.RiskLow, s.RiskLevel)
	assert.Equal(t, []string{"Stable climate conditions expected"}, s.Concerns)
	assert.Contains(t, s.Recommendations, "Excellent climate stability - ideal for long-term planning")
}

func TestScore_SevereScenario(t *testing.T) {
	s := Score(model.Projection{
		TempChangeToHorizon:    3.5,
		ExtremeHeatDaysCurrent: 5,
		ExtremeHeatDaysFuture:  40,
		PrecipitationPctChange: 35,
	})

	// 100 - 40 (temp) - 20 (heat) - 15 (precip) = 25.
	assert.Equal(t, 25, s.Score)
	assert.Equal(t, model.RiskVeryHigh, s.RiskLevel)
	assert.Equal(t, "Severe climate risks. Relocation may be advisable.", s.Description)
	assert.Contains(t, s.Concerns, "Significant temperature increase")
	assert.Contains(t, s.Concerns, "Increased extreme heat events")
	assert.Contains(t, s.Concerns, "Increased flooding risk")
	assert.Contains(t, s.Recommendations, "Consider climate adaptation measures")
	assert.Contains(t, s.Recommendations, "Consider flood insurance and drainage")
}

func TestScore_BandBoundariesAreStrict(t *testing.T) {
	// Exactly 2.0 takes the >1.5 band, not the >2 band.
	s := Score(model.Projection{TempChangeToHorizon: 2.0})
	assert.Equal(t, 85, s.Score)

	// Exactly 3.0 takes the >2 band.
	s = Score(model.Projection{TempChangeToHorizon: 3.0})
	assert.Equal(t, 75, s.Score)

	// Exactly 1.0 takes no band.
	s = Score(model.Projection{TempChangeToHorizon: 1.0})
	assert.Equal(t, 100, s.Score)
}

func TestScore_HeatBands(t *testing.T) {
	// Increase thresholds are strict: 5 clears, 6/16/31 cross a band.
	cases := []struct {
		future int
		want   int
	}{
		{5, 100},
		{6, 95},
		{16, 90},
		{31, 80},
	}
	for _, tc := range cases {
		s := Score(model.Projection{ExtremeHeatDaysFuture: tc.future})
		assert.Equal(t, tc.want, s.Score, "future heat days %d", tc.future)
	}
}

func TestScore_PrecipBandsUseAbsoluteValue(t *testing.T) {
	drought := Score(model.Projection{PrecipitationPctChange: -25})
	flood := Score(model.Projection{PrecipitationPctChange: 25})

	assert.Equal(t, 90, drought.Score)
	assert.Equal(t, flood.Score, drought.Score)
	assert.Contains(t, drought.Concerns, "Increased drought risk")
	assert.Contains(t, flood.Concerns, "Increased flooding risk")
}

func TestScore_WorstCaseStaysInRange(t *testing.T) {
	s := Score(model.Projection{
		TempChangeToHorizon:    10,
		ExtremeHeatDaysFuture:  100,
		PrecipitationPctChange: -50,
	})
	assert.Equal(t, 25, s.Score)
	assert.Equal(t, model.RiskVeryHigh, s.RiskLevel)
}

func TestScore_Recommendations(t *testing.T) {
	s := Score(model.Projection{TempChangeToHorizon: 1.6})
	assert.Contains(t, s.Recommendations, "Prepare for increased energy costs")

	s = Score(model.Projection{PrecipitationPctChange: -16})
	assert.Contains(t, s.Recommendations, "Plan for water conservation measures")

	s = Score(model.Projection{TempChangeToHorizon: 3.5, ExtremeHeatDaysFuture: 40})
	assert.Contains(t, s.Recommendations, "Consider climate adaptation measures")
	assert.Contains(t, s.Recommendations, "Invest in cooling/heating systems")
}

func TestScore_Pure(t *testing.T) {
	p := model.Projection{
		TempChangeToHorizon:    2.5,
		ExtremeHeatDaysCurrent: 10,
		ExtremeHeatDaysFuture:  28,
		PrecipitationPctChange: -12,
	}
	assert.Equal(t, Score(p), Score(p))
}
