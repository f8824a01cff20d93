// Package reconcile aligns baseline and recent archive statistics into
// comparable variation metrics.
package reconcile

import (
	"math"
	"time"

	"github.com/openeyemedia/climate-api/internal/model"
)

// Variation compares the recent period against the baseline for the given
// calendar month. Deltas are recent minus baseline; precipitation is a
// percentage change, defined as 0 when the baseline is zero or missing so a
// dry baseline month never divides by zero. DataQuality is high only when
// both sides carry real upstream samples for that month.
func Variation(baseline, recent model.ArchiveStats, month time.Month) model.ClimateVariation {
	b := baseline.Month(month)
	r := recent.Month(month)

	precipDelta := 0.0
	if b.AvgPrecipitation > 0 {
		precipDelta = (r.AvgPrecipitation - b.AvgPrecipitation) / b.AvgPrecipitation * 100
	}

	quality := model.QualityEstimated
	if b.SampleCount > 0 && r.SampleCount > 0 {
		quality = model.QualityHigh
	}

	return model.ClimateVariation{
		Month:                 int(month),
		MonthName:             month.String(),
		TempMaxDelta:          round1(r.AvgTempMax - b.AvgTempMax),
		TempMinDelta:          round1(r.AvgTempMin - b.AvgTempMin),
		PrecipitationPctDelta: round1(precipDelta),
		BaselinePeriod:        baseline.Period,
		RecentPeriod:          recent.Period,
		DataQuality:           quality,
	}
}

// AnnualIncrease compares annual mean temperatures across the two windows,
// with the same high/estimated confidence rule as Variation.
func AnnualIncrease(baseline, recent model.ArchiveStats) model.AnnualIncrease {
	confidence := model.QualityEstimated
	if baseline.AnnualSamples > 0 && recent.AnnualSamples > 0 {
		confidence = model.QualityHigh
	}

	return model.AnnualIncrease{
		Increase:       round1(recent.AnnualMeanTemp - baseline.AnnualMeanTemp),
		RecentAvg:      round1(recent.AnnualMeanTemp),
		BaselineAvg:    round1(baseline.AnnualMeanTemp),
		BaselinePeriod: baseline.Period,
		RecentPeriod:   recent.Period,
		Confidence:     confidence,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
