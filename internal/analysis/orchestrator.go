// Package analysis orchestrates a full climate analysis: resolve the
// location, fan out to the four data sources, fall back per tier to
// geographic estimates, reconcile, score, and assemble the aggregate.
package analysis

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/openeyemedia/climate-api/internal/cache"
	"github.com/openeyemedia/climate-api/internal/estimate"
	"github.com/openeyemedia/climate-api/internal/model"
	"github.com/openeyemedia/climate-api/internal/reconcile"
	"github.com/openeyemedia/climate-api/internal/resilience"
	"github.com/openeyemedia/climate-api/internal/resolver"
)

// LocationResolver resolves a query into a canonical location.
type LocationResolver interface {
	Resolve(ctx context.Context, q resolver.Query) (*model.Location, error)
}

// CurrentSource fetches live current conditions; ok=false means unavailable.
type CurrentSource interface {
	Fetch(ctx context.Context, lat, lon float64) (model.CurrentClimate, bool)
}

// ArchiveSource fetches one historical window; ok=false means unavailable.
type ArchiveSource interface {
	Fetch(ctx context.Context, lat, lon float64) (model.ArchiveStats, bool)
}

// ProjectionSource fetches modeled future climate; ok=false means unavailable.
type ProjectionSource interface {
	Fetch(ctx context.Context, lat, lon float64) (model.Projection, bool)
}

// Orchestrator runs the per-request analysis pipeline. Each of the four data
// tiers degrades independently to a deterministic geographic estimate; only
// an unresolvable location fails a request.
type Orchestrator struct {
	resolver   LocationResolver
	current    CurrentSource
	baseline   ArchiveSource
	recent     ArchiveSource
	projection ProjectionSource

	estimator   *estimate.Estimator
	store       cache.Store
	horizonYear int
	now         func() time.Time
}

// New wires an Orchestrator. store may be nil for uncached operation.
func New(res LocationResolver, current CurrentSource, baseline, recent ArchiveSource, projection ProjectionSource, store cache.Store, horizonYear int) *Orchestrator {
	return &Orchestrator{
		resolver:    res,
		current:     current,
		baseline:    baseline,
		recent:      recent,
		projection:  projection,
		estimator:   estimate.New(),
		store:       store,
		horizonYear: horizonYear,
		now:         time.Now,
	}
}

// WithNow overrides the clock, pinning the current month, the recent window
// label, and generated_at for tests.
func (o *Orchestrator) WithNow(now func() time.Time) *Orchestrator {
	o.now = now
	return o
}

// Analyze runs the full pipeline for a query. A cached analysis within its
// TTL is returned unchanged. The only error it can return wraps
// resolver.ErrLocationNotFound.
func (o *Orchestrator) Analyze(ctx context.Context, q resolver.Query) (*model.Analysis, error) {
	key := analysisKey(q)

	var cached model.Analysis
	if cache.GetJSON(ctx, o.store, key, &cached) {
		return &cached, nil
	}

	loc, err := o.resolver.Resolve(ctx, q)
	if err != nil {
		return nil, eris.Wrap(err, "analysis: resolve location")
	}

	result := o.build(ctx, *loc)
	cache.PutJSON(ctx, o.store, key, result, cache.TTLAnalysis)
	return result, nil
}

// AnalyzeByCoordinates analyzes an explicit coordinate pair. It never fails:
// coordinates are authoritative, so location resolution cannot miss.
func (o *Orchestrator) AnalyzeByCoordinates(ctx context.Context, lat, lon float64, name, country, adminRegion string) *model.Analysis {
	result, err := o.Analyze(ctx, resolver.Query{
		Name:        name,
		Country:     country,
		AdminRegion: adminRegion,
		Latitude:    &lat,
		Longitude:   &lon,
	})
	if err != nil {
		// Unreachable: coordinate queries always resolve.
		zap.L().Error("analysis: coordinate analysis failed", zap.Error(err))
		loc := model.Location{Name: name, Country: country, AdminRegion: adminRegion, Latitude: lat, Longitude: lon}
		return o.build(ctx, loc)
	}
	return result
}

// build runs steps 3-7 of the pipeline for a resolved location.
func (o *Orchestrator) build(ctx context.Context, loc model.Location) *model.Analysis {
	lat, lon := loc.Latitude, loc.Longitude

	var (
		current        model.CurrentClimate
		baseline       model.ArchiveStats
		recent         model.ArchiveStats
		projection     model.Projection
		currentLive    bool
		baselineLive   bool
		recentLive     bool
		projectionLive bool
	)

	// Fan out the four fetches; unavailability is a value, never an error.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		current, currentLive = o.current.Fetch(gctx, lat, lon)
		return nil
	})
	g.Go(func() error {
		baseline, baselineLive = o.baseline.Fetch(gctx, lat, lon)
		return nil
	})
	g.Go(func() error {
		recent, recentLive = o.recent.Fetch(gctx, lat, lon)
		return nil
	})
	g.Go(func() error {
		projection, projectionLive = o.projection.Fetch(gctx, lat, lon)
		return nil
	})
	_ = g.Wait()

	now := o.now().UTC()
	provenance := make([]string, 0, 4)

	if currentLive {
		provenance = append(provenance, model.LiveProvenance(model.TierCurrentWeather, current.Source))
	} else {
		current = o.estimator.CurrentClimate(loc)
		provenance = append(provenance, model.EstimatedProvenance(model.TierCurrentWeather))
	}
	if baselineLive {
		provenance = append(provenance, model.LiveProvenance(model.TierBaseline, "open-meteo-archive"))
	} else {
		baseline = o.estimator.Baseline(loc)
		provenance = append(provenance, model.EstimatedProvenance(model.TierBaseline))
	}
	if recentLive {
		provenance = append(provenance, model.LiveProvenance(model.TierRecent, "open-meteo-archive"))
	} else {
		recent = o.estimator.Recent(loc, now)
		provenance = append(provenance, model.EstimatedProvenance(model.TierRecent))
	}
	if projectionLive {
		provenance = append(provenance, model.LiveProvenance(model.TierProjection, projection.ModelID))
	} else {
		projection = o.estimator.Projection(loc, o.horizonYear)
		provenance = append(provenance, model.EstimatedProvenance(model.TierProjection))
	}

	variation := reconcile.Variation(baseline, recent, now.Month())
	annual := reconcile.AnnualIncrease(baseline, recent)
	score := resilience.Score(projection)

	return &model.Analysis{
		Location:           loc,
		CurrentClimate:     current,
		ClimateVariation:   variation,
		AnnualTempIncrease: annual,
		Projection:         projection,
		Resilience:         score,
		DataProvenance:     provenance,
		GeneratedAt:        now,
	}
}

// Compare analyzes two locations concurrently and derives relocation
// insights from the pair.
func (o *Orchestrator) Compare(ctx context.Context, current, target resolver.Query) (*model.Comparison, error) {
	var currentAnalysis, targetAnalysis *model.Analysis

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a, err := o.Analyze(gctx, current)
		if err != nil {
			return eris.Wrap(err, "current location")
		}
		currentAnalysis = a
		return nil
	})
	g.Go(func() error {
		a, err := o.Analyze(gctx, target)
		if err != nil {
			return eris.Wrap(err, "target location")
		}
		targetAnalysis = a
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &model.Comparison{
		Current:  currentAnalysis,
		Target:   targetAnalysis,
		Insights: compareInsights(currentAnalysis, targetAnalysis),
	}, nil
}

func compareInsights(current, target *model.Analysis) model.ComparisonInsights {
	currentScore := current.Resilience.Score
	targetScore := target.Resilience.Score
	currentChange := current.Projection.TempChangeToHorizon
	targetChange := target.Projection.TempChangeToHorizon

	winner := "tie"
	if targetScore > currentScore {
		winner = "target"
	} else if currentScore > targetScore {
		winner = "current"
	}

	return model.ComparisonInsights{
		Resilience: model.ResilienceComparison{
			Winner:          winner,
			ScoreDifference: targetScore - currentScore,
			Improvement:     targetScore > currentScore,
		},
		Temperature: model.TemperatureComparison{
			CurrentChange: currentChange,
			TargetChange:  targetChange,
			Difference:    targetChange - currentChange,
			TargetCooler:  targetChange < currentChange,
		},
		Recommendation: recommendation(currentScore, targetScore),
	}
}

func recommendation(currentScore, targetScore int) string {
	switch {
	case targetScore > currentScore+10:
		return "Strong recommendation to consider target location - significantly better climate resilience"
	case targetScore > currentScore:
		return "Moderate improvement expected by moving to target location"
	case targetScore < currentScore-10:
		return "Current location has significantly better climate outlook"
	default:
		return "Both locations have similar climate resilience profiles"
	}
}

// analysisKey derives the whole-analysis cache key: coordinate identity when
// present, otherwise the normalized name.
func analysisKey(q resolver.Query) string {
	if q.HasCoordinates() {
		return cache.CoordKey("analysis:coords", *q.Latitude, *q.Longitude, "")
	}
	return cache.NameKey("analysis:name", resolver.Normalize(q.Name))
}
