package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/openeyemedia/climate-api/internal/model"
)

func stats(period string, month time.Month, maxT, minT, precip float64, samples int) model.ArchiveStats {
	return model.ArchiveStats{
		Months: map[time.Month]model.PeriodStats{
			month: {AvgTempMax: maxT, AvgTempMin: minT, AvgPrecipitation: precip, SampleCount: samples},
		},
		Period: period,
	}
}

func TestVariation_Deltas(t *testing.T) {
	baseline := stats("1990-2020", time.June, 20.0, 10.0, 50.0, 930)
	recent := stats("2021-2025", time.June, 21.8, 11.5, 56.0, 150)

	v := Variation(baseline, recent, time.June)

	assert.Equal(t, 6, v.Month)
	assert.Equal(t, "June", v.MonthName)
	assert.InDelta(t, 1.8, v.TempMaxDelta, 0.001)
	assert.InDelta(t, 1.5, v.TempMinDelta, 0.001)
	assert.InDelta(t, 12.0, v.PrecipitationPctDelta, 0.001)
	assert.Equal(t, "1990-2020", v.BaselinePeriod)
	assert.Equal(t, "2021-2025", v.RecentPeriod)
	assert.Equal(t, model.QualityHigh, v.DataQuality)
}

func TestVariation_ZeroBaselinePrecip(t *testing.T) {
	baseline := stats("1990-2020", time.July, 30.0, 18.0, 0.0, 900)
	recent := stats("2021-2025", time.July, 31.0, 19.0, 5.0, 150)

	v := Variation(baseline, recent, time.July)
	assert.Zero(t, v.PrecipitationPctDelta)
}

func TestVariation_EstimatedQuality(t *testing.T) {
	// Synthetic stats carry zero sample counts.
	baseline := stats("1990-2020 (estimated)", time.June, 20.0, 10.0, 50.0, 0)
	recent := stats("2021-2025", time.June, 21.0, 11.0, 55.0, 150)

	v := Variation(baseline, recent, time.June)
	assert.Equal(t, model.QualityEstimated, v.DataQuality)
}

func TestVariation_MissingMonth(t *testing.T) {
	baseline := stats("1990-2020", time.June, 20.0, 10.0, 50.0, 930)
	recent := stats("2021-2025", time.June, 21.0, 11.0, 55.0, 150)

	// December is absent on both sides: deltas are zero, quality estimated.
	v := Variation(baseline, recent, time.December)
	assert.Zero(t, v.TempMaxDelta)
	assert.Zero(t, v.PrecipitationPctDelta)
	assert.Equal(t, model.QualityEstimated, v.DataQuality)
}

func TestVariation_Rounding(t *testing.T) {
	baseline := stats("1990-2020", time.June, 20.04, 10.0, 50.0, 930)
	recent := stats("2021-2025", time.June, 21.33, 11.0, 55.0, 150)

	v := Variation(baseline, recent, time.June)
	assert.InDelta(t, 1.3, v.TempMaxDelta, 0.0001)
}

func TestAnnualIncrease(t *testing.T) {
	baseline := model.ArchiveStats{AnnualMeanTemp: 11.2, AnnualSamples: 11315, Period: "1990-2020"}
	recent := model.ArchiveStats{AnnualMeanTemp: 12.4, AnnualSamples: 1826, Period: "2021-2025"}

	inc := AnnualIncrease(baseline, recent)
	assert.InDelta(t, 1.2, inc.Increase, 0.001)
	assert.InDelta(t, 12.4, inc.RecentAvg, 0.001)
	assert.InDelta(t, 11.2, inc.BaselineAvg, 0.001)
	assert.Equal(t, model.QualityHigh, inc.Confidence)
}

func TestAnnualIncrease_EstimatedConfidence(t *testing.T) {
	baseline := model.ArchiveStats{AnnualMeanTemp: 12.0, Period: "1990-2020 (estimated)"}
	recent := model.ArchiveStats{AnnualMeanTemp: 13.2, AnnualSamples: 1826, Period: "2021-2025"}

	inc := AnnualIncrease(baseline, recent)
	assert.Equal(t, model.QualityEstimated, inc.Confidence)
}
