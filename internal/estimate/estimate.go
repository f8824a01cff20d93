// Package estimate synthesizes deterministic geographic climate estimates
// for tiers whose upstream source is unavailable. Every function is a pure
// function of the location (latitude plus recognized country/region
// keywords), so degraded analyses stay reproducible.
package estimate

import (
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/openeyemedia/climate-api/internal/model"

	_ "embed"
)

//go:embed regions.yaml
var regionsYAML []byte

// Region is one row of the hand-tuned adjustment table. Pointer fields
// distinguish "not specified" from zero.
type Region struct {
	Keywords       []string `yaml:"keywords"`
	BaseTemp       *float64 `yaml:"base_temp"`
	TempMaxDelta   *float64 `yaml:"temp_max_delta"`
	TempMinDelta   *float64 `yaml:"temp_min_delta"`
	RainfallPct    *float64 `yaml:"rainfall_pct"`
	AnnualIncrease *float64 `yaml:"annual_increase"`
}

// Estimator produces synthetic climate data from geography alone.
type Estimator struct {
	regions []Region
}

// New loads the embedded region table.
func New() *Estimator {
	var regions []Region
	if err := yaml.Unmarshal(regionsYAML, &regions); err != nil {
		zap.L().Error("estimate: parse embedded region table", zap.Error(err))
		regions = nil
	}
	return &Estimator{regions: regions}
}

// region returns the first table row whose keyword appears in the
// uppercased display name, or nil when only the defaults apply.
func (e *Estimator) region(loc model.Location) *Region {
	display := strings.ToUpper(loc.DisplayName())
	for i := range e.regions {
		for _, kw := range e.regions[i].Keywords {
			if strings.Contains(display, kw) {
				return &e.regions[i]
			}
		}
	}
	return nil
}

// baseTemp estimates the annual mean temperature: a table override when the
// region is recognized, otherwise cooler with distance from the equator.
func (e *Estimator) baseTemp(loc model.Location) float64 {
	if r := e.region(loc); r != nil && r.BaseTemp != nil {
		return *r.BaseTemp
	}
	return 20 - math.Abs(loc.Latitude)*0.5
}

// deltas returns the estimated month-on-baseline variation triple
// (max temp, min temp, precipitation percent).
func (e *Estimator) deltas(loc model.Location) (maxDelta, minDelta, rainPct float64) {
	r := e.region(loc)
	if r != nil && r.TempMaxDelta != nil && r.TempMinDelta != nil && r.RainfallPct != nil {
		return *r.TempMaxDelta, *r.TempMinDelta, *r.RainfallPct
	}
	// Arctic amplification: warming grows with latitude.
	maxDelta = round1(1.2 + math.Abs(loc.Latitude)*0.02)
	return maxDelta, round1(maxDelta * 0.8), 8.0
}

// annualIncrease estimates warming since the baseline period.
func (e *Estimator) annualIncrease(loc model.Location) float64 {
	if r := e.region(loc); r != nil && r.AnnualIncrease != nil {
		return *r.AnnualIncrease
	}
	inc := 1.1
	switch lat := math.Abs(loc.Latitude); {
	case lat > 60:
		inc += 0.8
	case lat > 45:
		inc += 0.3
	}
	return round1(inc)
}

// CurrentClimate synthesizes present conditions from the base temperature.
func (e *Estimator) CurrentClimate(loc model.Location) model.CurrentClimate {
	base := e.baseTemp(loc)
	return model.CurrentClimate{
		CurrentTemperature: round1(base + 2),
		CurrentHumidity:    65,
		AvgTempMax:         round1(base + 8),
		AvgTempMin:         round1(base - 3),
		TotalPrecipitation: 80,
		Source:             "geographic-estimate",
	}
}

// Baseline synthesizes baseline-window archive stats shaped so that
// reconciling them against Recent reproduces the table's variation values.
// All sample counts are zero, marking the stats as synthetic.
func (e *Estimator) Baseline(loc model.Location) model.ArchiveStats {
	base := e.baseTemp(loc)
	maxDelta, minDelta, rainPct := e.deltas(loc)

	recent := e.recentMonth(loc)
	month := model.PeriodStats{
		AvgTempMax:       round1(recent.AvgTempMax - maxDelta),
		AvgTempMin:       round1(recent.AvgTempMin - minDelta),
		AvgPrecipitation: round1(recent.AvgPrecipitation / (1 + rainPct/100)),
	}

	return model.ArchiveStats{
		Months:         allMonths(month),
		AnnualMeanTemp: round1(base),
		Period:         "1990-2020 (estimated)",
	}
}

// Recent synthesizes recent-window archive stats; now anchors the window
// label.
func (e *Estimator) Recent(loc model.Location, now time.Time) model.ArchiveStats {
	base := e.baseTemp(loc)
	year := now.Year()
	return model.ArchiveStats{
		Months:         allMonths(e.recentMonth(loc)),
		AnnualMeanTemp: round1(base + e.annualIncrease(loc)),
		Period:         fmt.Sprintf("%d-%d (estimated)", year-5, year-1),
	}
}

func (e *Estimator) recentMonth(loc model.Location) model.PeriodStats {
	base := e.baseTemp(loc)
	return model.PeriodStats{
		AvgTempMax:       round1(base + 8),
		AvgTempMin:       round1(base - 3),
		AvgPrecipitation: 80,
	}
}

// Projection synthesizes modeled warming to the horizon year. Warming grows
// with latitude; extreme heat days shrink with it.
func (e *Estimator) Projection(loc model.Location, horizonYear int) model.Projection {
	lat := math.Abs(loc.Latitude)

	warming := 1.5 + lat*0.03
	switch {
	case lat > 60:
		warming += 1.0
	case lat > 45:
		warming += 0.3
	}
	warming = round1(warming)

	base := e.baseTemp(loc)
	return model.Projection{
		TempChangeToHorizon:    warming,
		CurrentAvgTemp:         round1(base),
		FutureAvgTemp:          round1(base + warming),
		ExtremeHeatDaysCurrent: maxInt(0, int((35-lat)*0.5)),
		ExtremeHeatDaysFuture:  maxInt(0, int((35-lat)*0.8)),
		PrecipitationPctChange: round1(loc.Latitude/10 + 5),
		ModelID:                "geographic-estimate",
		HorizonYear:            horizonYear,
	}
}

func allMonths(stats model.PeriodStats) map[time.Month]model.PeriodStats {
	months := make(map[time.Month]model.PeriodStats, 12)
	for m := time.January; m <= time.December; m++ {
		months[m] = stats
	}
	return months
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
