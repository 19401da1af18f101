package enrich

import (
	"context"
	"io"
	"sync"
	"sync/atomic"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/bomsight/bomsight/internal/config"
	"github.com/bomsight/bomsight/internal/router"
)

// ItemResult is the per-candidate outcome of a batch run. Exactly one of
// Route or Err is set.
type ItemResult struct {
	ComponentID string              `json:"component_id"`
	MPN         string              `json:"mpn"`
	Route       *router.RouteResult `json:"route,omitempty"`
	Err         error               `json:"-"`
	ErrMsg      string              `json:"error,omitempty"`
}

// BatchSummary totals one batch run.
type BatchSummary struct {
	Processed int          `json:"processed"`
	Promoted  int          `json:"promoted"`
	Queued    int          `json:"queued"`
	Rejected  int          `json:"rejected"`
	Failed    int          `json:"failed"`
	Items     []ItemResult `json:"items"`
}

// Batch routes candidates through the quality router with bounded
// concurrency. One candidate's failure is recorded and skipped, never
// allowed to abort the batch; cancellation is honored between candidates.
type Batch struct {
	router  *router.Router
	cfg     config.BatchConfig
	limiter *rate.Limiter
}

// NewBatch creates a batch runner. A zero rate disables throttling.
func NewBatch(r *router.Router, cfg config.BatchConfig) *Batch {
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 1
	}
	var limiter *rate.Limiter
	if cfg.RatePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), 1)
	}
	return &Batch{router: r, cfg: cfg, limiter: limiter}
}

// Run drains the source and routes every candidate, up to limit items when
// limit > 0. It returns a per-item result list; the only error returns are
// source failures and cancellation.
func (b *Batch) Run(ctx context.Context, source CandidateSource, limit int) (*BatchSummary, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.cfg.MaxConcurrent)

	var mu sync.Mutex
	var results []ItemResult
	var promoted, queued, rejected, failed atomic.Int64

	count := 0
	for {
		if limit > 0 && count >= limit {
			break
		}
		if err := gctx.Err(); err != nil {
			break
		}

		cand, err := source.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			g.Wait()
			return nil, eris.Wrap(err, "enrich: read candidate")
		}
		count++

		c := *cand
		g.Go(func() error {
			if b.limiter != nil {
				if err := b.limiter.Wait(gctx); err != nil {
					return nil
				}
			}

			log := zap.L().With(zap.String("component_id", c.ComponentID), zap.String("mpn", c.MPN))
			item := ItemResult{ComponentID: c.ComponentID, MPN: c.MPN}

			route, err := b.router.ProcessCandidate(gctx, c)
			if err != nil {
				failed.Add(1)
				item.Err = err
				item.ErrMsg = err.Error()
				log.Error("candidate failed", zap.Error(err))
			} else {
				item.Route = route
				switch route.Outcome {
				case router.OutcomePromoted:
					promoted.Add(1)
				case router.OutcomeReview:
					queued.Add(1)
				case router.OutcomeRejected:
					rejected.Add(1)
				}
				log.Info("candidate routed",
					zap.Int("quality_score", route.QualityScore),
					zap.String("outcome", string(route.Outcome)),
				)
			}

			mu.Lock()
			results = append(results, item)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "enrich: batch")
	}
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "enrich: batch canceled")
	}

	summary := &BatchSummary{
		Processed: count,
		Promoted:  int(promoted.Load()),
		Queued:    int(queued.Load()),
		Rejected:  int(rejected.Load()),
		Failed:    int(failed.Load()),
		Items:     results,
	}
	zap.L().Info("batch complete",
		zap.Int("processed", summary.Processed),
		zap.Int("promoted", summary.Promoted),
		zap.Int("queued", summary.Queued),
		zap.Int("rejected", summary.Rejected),
		zap.Int("failed", summary.Failed),
	)
	return summary, nil
}
