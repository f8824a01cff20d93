package source

import (
	"math"
	"time"

	"github.com/openeyemedia/climate-api/internal/model"
	"github.com/openeyemedia/climate-api/pkg/openmeteo"
)

// currentFromForecast reduces a forecast payload to current conditions plus
// 7-day aggregates. Null days are skipped; a payload with no daily data at
// all is unusable.
func currentFromForecast(resp *openmeteo.ForecastResponse) (model.CurrentClimate, bool) {
	if resp == nil || resp.Daily.Empty() {
		return model.CurrentClimate{}, false
	}

	maxSum, maxN := sumNonNil(resp.Daily.TempMax)
	minSum, minN := sumNonNil(resp.Daily.TempMin)
	precipSum, _ := sumNonNil(resp.Daily.PrecipitationSum)
	if maxN == 0 || minN == 0 {
		return model.CurrentClimate{}, false
	}

	return model.CurrentClimate{
		CurrentTemperature: round1(resp.Current.Temperature),
		CurrentHumidity:    round1(resp.Current.Humidity),
		AvgTempMax:         round1(maxSum / float64(maxN)),
		AvgTempMin:         round1(minSum / float64(minN)),
		TotalPrecipitation: round1(precipSum),
		Source:             "open-meteo",
	}, true
}

type monthAccum struct {
	maxSum, minSum, precipSum float64
	samples                   int
}

// archiveStats buckets a daily series by calendar month and averages each
// bucket, plus an annual mean of the daily midpoint temperature. A day
// counts only when both temperature extremes are present; its precipitation
// is taken as 0 when null.
func archiveStats(series *openmeteo.DailySeries, label string) (model.ArchiveStats, bool) {
	if series == nil || series.Daily.Empty() {
		return model.ArchiveStats{}, false
	}
	d := series.Daily

	accums := make(map[time.Month]*monthAccum)
	var annualSum float64
	var annualN int

	for i, dateStr := range d.Time {
		if i >= len(d.TempMax) || i >= len(d.TempMin) {
			break
		}
		if d.TempMax[i] == nil || d.TempMin[i] == nil {
			continue
		}
		day, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			continue
		}

		tmax := *d.TempMax[i]
		tmin := *d.TempMin[i]
		precip := 0.0
		if i < len(d.PrecipitationSum) && d.PrecipitationSum[i] != nil {
			precip = *d.PrecipitationSum[i]
		}

		acc := accums[day.Month()]
		if acc == nil {
			acc = &monthAccum{}
			accums[day.Month()] = acc
		}
		acc.maxSum += tmax
		acc.minSum += tmin
		acc.precipSum += precip
		acc.samples++

		annualSum += (tmax + tmin) / 2
		annualN++
	}

	if annualN == 0 {
		return model.ArchiveStats{}, false
	}

	months := make(map[time.Month]model.PeriodStats, len(accums))
	for m, acc := range accums {
		n := float64(acc.samples)
		months[m] = model.PeriodStats{
			AvgTempMax:       round1(acc.maxSum / n),
			AvgTempMin:       round1(acc.minSum / n),
			AvgPrecipitation: round1(acc.precipSum / n),
			SampleCount:      acc.samples,
		}
	}

	return model.ArchiveStats{
		Months:         months,
		AnnualMeanTemp: round1(annualSum / float64(annualN)),
		AnnualSamples:  annualN,
		Period:         label,
	}, true
}

// Projection windows over the 2024-2050 modeled series: the first seven
// years stand in for the present, the last six for the horizon.
const (
	currentWindowDays = 365 * 7
	futureWindowDays  = 365 * 6
	minPrecipDays     = 365 * 10
)

func projectionFromSeries(series *openmeteo.DailySeries, modelID string, horizonYear int) (model.Projection, bool) {
	if series == nil || series.Daily.Empty() {
		return model.Projection{}, false
	}

	tmax := nonNil(series.Daily.TempMax)
	if len(tmax) == 0 {
		return model.Projection{}, false
	}

	current := head(tmax, currentWindowDays)
	future := tail(tmax, futureWindowDays)

	currentAvg := mean(current)
	futureAvg := mean(future)

	return model.Projection{
		TempChangeToHorizon:    round2(futureAvg - currentAvg),
		CurrentAvgTemp:         round1(currentAvg),
		FutureAvgTemp:          round1(futureAvg),
		ExtremeHeatDaysCurrent: countAbove(current, 35),
		ExtremeHeatDaysFuture:  countAbove(future, 35),
		PrecipitationPctChange: precipChange(nonNil(series.Daily.PrecipitationSum)),
		ModelID:                modelID,
		HorizonYear:            horizonYear,
	}, true
}

// precipChange compares mean daily precipitation across the same windows,
// reporting 0 when the series is too short or the current window is dry.
func precipChange(precip []float64) float64 {
	if len(precip) < minPrecipDays {
		return 0
	}
	currentAvg := mean(head(precip, currentWindowDays))
	futureAvg := mean(tail(precip, futureWindowDays))
	if currentAvg == 0 {
		return 0
	}
	return round1((futureAvg - currentAvg) / currentAvg * 100)
}

func sumNonNil(vals []*float64) (sum float64, n int) {
	for _, v := range vals {
		if v != nil {
			sum += *v
			n++
		}
	}
	return sum, n
}

func nonNil(vals []*float64) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if v != nil {
			out = append(out, *v)
		}
	}
	return out
}

func head(vals []float64, n int) []float64 {
	if len(vals) < n {
		return vals
	}
	return vals[:n]
}

func tail(vals []float64, n int) []float64 {
	if len(vals) < n {
		return vals
	}
	return vals[len(vals)-n:]
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func countAbove(vals []float64, threshold float64) int {
	n := 0
	for _, v := range vals {
		if v > threshold {
			n++
		}
	}
	return n
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
