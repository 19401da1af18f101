package router

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/bomsight/bomsight/internal/model"
	"github.com/bomsight/bomsight/internal/quality"
	"github.com/bomsight/bomsight/internal/resilience"
	"github.com/bomsight/bomsight/internal/store"
)

// Config tunes the router service.
type Config struct {
	Thresholds Thresholds
	Retry      resilience.RetryConfig
}

// Router scores candidates, routes them, and drives the review state
// machine against the store. Every attempt or transition emits exactly one
// history entry before the result is returned to the caller.
type Router struct {
	store  store.Store
	schema *quality.Schema
	cfg    Config
}

// New creates a Router. A nil schema falls back to the default enrichment
// schema.
func New(st store.Store, schema *quality.Schema, cfg Config) *Router {
	if schema == nil {
		schema = quality.DefaultSchema()
	}
	if cfg.Thresholds == (Thresholds{}) {
		cfg.Thresholds = DefaultThresholds()
	}
	return &Router{store: st, schema: schema, cfg: cfg}
}

// RouteResult is the outcome of processing one candidate.
type RouteResult struct {
	ComponentID  string                  `json:"component_id"`
	MPN          string                  `json:"mpn"`
	QualityScore int                     `json:"quality_score"`
	Outcome      Outcome                 `json:"outcome"`
	Issues       []string                `json:"issues,omitempty"`
	Applied      *model.CatalogComponent `json:"-"`
}

// ProcessCandidate scores a candidate and commits the routing decision:
// auto-promote applies enrichment directly to the catalog, the review band
// creates or overwrites the component's queue entry, and low scores are
// rejected with the catalog marked failed.
func (r *Router) ProcessCandidate(ctx context.Context, cand model.EnrichedCandidate) (*RouteResult, error) {
	start := time.Now()

	scored, err := quality.Score(cand, r.schema)
	if err != nil {
		r.emitHistory(ctx, cand.ComponentID, cand.MPN, 0, cand.Sources, model.HistoryError, start)
		return nil, eris.Wrapf(err, "router: score candidate %s", cand.ComponentID)
	}

	dec := Route(scored.Score, r.cfg.Thresholds)
	result := &RouteResult{
		ComponentID:  cand.ComponentID,
		MPN:          cand.MPN,
		QualityScore: scored.Score,
		Outcome:      dec.Outcome,
		Issues:       scored.Issues,
	}

	effectErr := r.runEffects(ctx, cand, scored, dec, result)

	histStatus := dec.History
	if effectErr != nil {
		histStatus = model.HistoryError
	}
	if err := r.appendHistory(ctx, cand.ComponentID, cand.MPN, scored.Score, cand.Sources, histStatus, start); err != nil {
		return nil, err
	}
	if effectErr != nil {
		return nil, effectErr
	}

	zap.L().Info("router: candidate routed",
		zap.String("component_id", cand.ComponentID),
		zap.Int("quality_score", scored.Score),
		zap.String("outcome", string(dec.Outcome)),
	)
	return result, nil
}

func (r *Router) runEffects(ctx context.Context, cand model.EnrichedCandidate, scored quality.Result, dec Decision, result *RouteResult) error {
	for _, effect := range dec.Effects {
		switch effect {
		case EffectApplyCatalog:
			applied, err := r.applyCatalog(ctx, cand.ComponentID, cand.Fields, scored.Score, cand.Sources)
			if err != nil {
				return err
			}
			result.Applied = applied
			// A prior entry (open or closed) is refreshed so its status
			// reflects the latest enrichment attempt.
			if err := r.refreshExistingEntry(ctx, cand, scored, model.QueueApproved); err != nil {
				return err
			}

		case EffectUpsertQueue:
			entry := r.buildQueueEntry(ctx, cand, scored, model.QueueNeedsReview)
			if err := r.store.UpsertQueueEntry(ctx, entry); err != nil {
				return eris.Wrapf(err, "router: queue candidate %s", cand.ComponentID)
			}
			if err := r.setCatalogStatus(ctx, cand.ComponentID, model.EnrichmentNeedsReview); err != nil {
				return err
			}

		case EffectMarkCatalogFailed:
			// A previously closed entry is overwritten to rejected so the
			// old verdict never survives a failed re-enrichment.
			if err := r.refreshExistingEntry(ctx, cand, scored, model.QueueRejected); err != nil {
				return err
			}
			if err := r.setCatalogStatus(ctx, cand.ComponentID, model.EnrichmentFailed); err != nil {
				return err
			}
		}
	}
	return nil
}

// Approve commits the needs_review -> approved transition: it claims the
// entry via compare-and-swap, applies the enrichment to the catalog
// exactly once, and records history. Lost CAS races are retried a bounded
// number of times; a reviewer who genuinely lost surfaces
// ConcurrentModification or InvalidTransition.
func (r *Router) Approve(ctx context.Context, componentID, reviewer string) (*model.CatalogComponent, error) {
	return r.review(ctx, componentID, reviewer, ActionApprove)
}

// Reject commits needs_review -> rejected. The entry is retained for
// audit and the catalog is left untouched.
func (r *Router) Reject(ctx context.Context, componentID, reviewer string) (*model.CatalogComponent, error) {
	return r.review(ctx, componentID, reviewer, ActionReject)
}

func (r *Router) review(ctx context.Context, componentID, reviewer string, action ReviewAction) (*model.CatalogComponent, error) {
	start := time.Now()

	retryCfg := r.cfg.Retry
	retryCfg.ShouldRetry = func(err error) bool {
		return eris.Is(err, model.ErrConcurrentModification)
	}
	retryCfg.OnRetry = resilience.RetryLogger("router", string(action))

	var applied *model.CatalogComponent
	var entry *model.EnrichmentQueueEntry

	err := resilience.Do(ctx, retryCfg, func(ctx context.Context) error {
		e, err := r.store.GetQueueEntry(ctx, componentID)
		if err != nil {
			return err
		}

		next, effects, err := Transition(e.Status, action)
		if err != nil {
			return err
		}

		// Claim the entry first. The loser of a concurrent review fails
		// here without touching the catalog.
		if err := r.store.SetQueueStatus(ctx, componentID, e.Version, next, reviewer, time.Now().UTC()); err != nil {
			return err
		}
		entry = e

		for _, effect := range effects {
			if effect == EffectApplyCatalog {
				c, err := r.applyCatalog(ctx, componentID, e.EnrichmentData, e.QualityScore, e.Sources)
				if err != nil {
					return err
				}
				applied = c
			}
		}
		return nil
	})

	mpn, score, sources := "", 0, []string(nil)
	if entry != nil {
		mpn, score, sources = entry.MPN, entry.QualityScore, entry.Sources
	}

	histStatus := model.HistoryCompleted
	if action == ActionReject {
		histStatus = model.HistoryRejected
	}
	if err != nil {
		histStatus = model.HistoryError
	}
	if histErr := r.appendHistory(ctx, componentID, mpn, score, sources, histStatus, start); histErr != nil {
		return nil, histErr
	}
	if err != nil {
		return nil, eris.Wrapf(err, "router: %s %s", action, componentID)
	}

	zap.L().Info("router: review transition committed",
		zap.String("component_id", componentID),
		zap.String("action", string(action)),
		zap.String("reviewer", reviewer),
	)
	return applied, nil
}

// applyCatalog is the catalog apply step: coalesce-merge the enrichment
// fields into the production record. Idempotent; a repeat call with the
// same data is a no-op on catalog state.
func (r *Router) applyCatalog(ctx context.Context, componentID string, fields map[string]any, score int, sources []string) (*model.CatalogComponent, error) {
	c, err := r.store.MergeComponent(ctx, componentID, fields, score, sources, time.Now().UTC())
	if err != nil {
		return nil, eris.Wrapf(err, "router: apply enrichment to catalog %s", componentID)
	}
	return c, nil
}

func (r *Router) buildQueueEntry(ctx context.Context, cand model.EnrichedCandidate, scored quality.Result, status model.QueueStatus) *model.EnrichmentQueueEntry {
	entry := &model.EnrichmentQueueEntry{
		ComponentID:    cand.ComponentID,
		MPN:            cand.MPN,
		Manufacturer:   cand.Manufacturer,
		Status:         status,
		QualityScore:   scored.Score,
		EnrichmentData: cand.Fields,
		Issues:         scored.Issues,
		Sources:        cand.Sources,
	}

	// Snapshot the catalog state before enrichment so reviewers can diff.
	if current, err := r.store.GetComponent(ctx, cand.ComponentID); err == nil {
		entry.OriginalData = snapshotFields(current)
		if current.Manufacturer != "" && cand.Manufacturer != "" &&
			model.CanonicalManufacturer(current.Manufacturer) != model.CanonicalManufacturer(cand.Manufacturer) {
			zap.L().Warn("router: candidate manufacturer differs from catalog",
				zap.String("component_id", cand.ComponentID),
				zap.String("catalog", current.Manufacturer),
				zap.String("candidate", cand.Manufacturer),
			)
		}
	}
	return entry
}

// refreshExistingEntry overwrites a component's existing queue entry, if
// any, with the latest score/data and the given status. Missing entries
// are fine: auto-promoted and rejected candidates only get a row if one
// already existed.
func (r *Router) refreshExistingEntry(ctx context.Context, cand model.EnrichedCandidate, scored quality.Result, status model.QueueStatus) error {
	_, err := r.store.GetQueueEntry(ctx, cand.ComponentID)
	if err != nil {
		if eris.Is(err, model.ErrComponentNotFound) {
			return nil
		}
		return eris.Wrapf(err, "router: check queue entry %s", cand.ComponentID)
	}
	entry := r.buildQueueEntry(ctx, cand, scored, status)
	if err := r.store.UpsertQueueEntry(ctx, entry); err != nil {
		return eris.Wrapf(err, "router: refresh queue entry %s", cand.ComponentID)
	}
	return nil
}

func (r *Router) setCatalogStatus(ctx context.Context, componentID string, status model.EnrichmentStatus) error {
	err := r.store.SetEnrichmentStatus(ctx, componentID, status)
	if err != nil && !eris.Is(err, model.ErrComponentNotFound) {
		return eris.Wrapf(err, "router: mark catalog %s %s", componentID, status)
	}
	return nil
}

// appendHistory writes the audit record for one attempt. The write
// happens before the decision result is considered committed, so a
// failure here fails the operation.
func (r *Router) appendHistory(ctx context.Context, componentID, mpn string, score int, sources []string, status model.HistoryStatus, start time.Time) error {
	entry := &model.EnrichmentHistoryEntry{
		ComponentID:       componentID,
		MPN:               mpn,
		QualityScore:      score,
		SourcesSuccessful: sources,
		Status:            status,
		Timestamp:         time.Now().UTC(),
		ExecutionTimeMS:   time.Since(start).Milliseconds(),
	}
	if err := r.store.AppendHistory(ctx, entry); err != nil {
		return eris.Wrapf(err, "router: append history for %s", componentID)
	}
	return nil
}

// emitHistory is appendHistory for paths that are already failing; the
// original error wins, so an emit failure is only logged.
func (r *Router) emitHistory(ctx context.Context, componentID, mpn string, score int, sources []string, status model.HistoryStatus, start time.Time) {
	if err := r.appendHistory(ctx, componentID, mpn, score, sources, status, start); err != nil {
		zap.L().Error("router: history write failed",
			zap.String("component_id", componentID),
			zap.Error(err),
		)
	}
}

// snapshotFields captures the enrichment-bearing catalog fields for the
// reviewer's before/after diff.
func snapshotFields(c *model.CatalogComponent) map[string]any {
	snap := map[string]any{}
	if c.Description != "" {
		snap["description"] = c.Description
	}
	if c.DatasheetURL != "" {
		snap["datasheet_url"] = c.DatasheetURL
	}
	if c.ImageURL != "" {
		snap["image_url"] = c.ImageURL
	}
	if c.Lifecycle != "" {
		snap["lifecycle_status"] = string(c.Lifecycle)
	}
	if c.PackageType != "" {
		snap["package_type"] = c.PackageType
	}
	if c.RoHSCompliant != nil {
		snap["rohs_compliant"] = *c.RoHSCompliant
	}
	if c.REACHCompliant != nil {
		snap["reach_compliant"] = *c.REACHCompliant
	}
	if c.AECQualified != nil {
		snap["aec_qualified"] = *c.AECQualified
	}
	if c.LeadTimeDays != nil {
		snap["lead_time_days"] = *c.LeadTimeDays
	}
	if c.UnitPrice != nil {
		snap["unit_price"] = *c.UnitPrice
	}
	if c.StockQty != nil {
		snap["stock_qty"] = *c.StockQty
	}
	if len(snap) == 0 {
		return nil
	}
	return snap
}
