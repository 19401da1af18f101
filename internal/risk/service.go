package risk

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/bomsight/bomsight/internal/config"
	"github.com/bomsight/bomsight/internal/model"
	"github.com/bomsight/bomsight/internal/store"
)

// Service drives risk scoring against the store: per-component factor
// scores, per-line-item contextual scores, and BOM summaries.
type Service struct {
	store  store.Store
	scorer *Scorer
	cfg    config.RiskConfig
}

// NewService creates a risk Service.
func NewService(st store.Store, cfg config.RiskConfig) *Service {
	return &Service{store: st, scorer: NewScorer(cfg), cfg: cfg}
}

// Scorer exposes the pure calculator for callers that already hold their
// inputs.
func (s *Service) Scorer() *Scorer {
	return s.scorer
}

// Profile loads the organization's risk profile, falling back to the
// documented default when none is stored. The result is validated; an
// invalid stored profile fails the call rather than silently defaulting.
func (s *Service) Profile(ctx context.Context, organizationID string) (model.RiskProfile, error) {
	stored, err := s.store.GetRiskProfile(ctx, organizationID)
	if err != nil {
		return model.RiskProfile{}, eris.Wrapf(err, "risk: load profile %s", organizationID)
	}
	if stored == nil {
		return model.DefaultRiskProfile(organizationID), nil
	}
	if err := stored.Validate(); err != nil {
		return model.RiskProfile{}, eris.Wrapf(err, "risk: stored profile %s", organizationID)
	}
	return *stored, nil
}

// ScoreComponent recomputes one component's risk under the organization's
// profile. The result supersedes any prior calculation wholesale.
func (s *Service) ScoreComponent(ctx context.Context, componentID, organizationID string) (*model.ComponentRiskScore, error) {
	profile, err := s.Profile(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	c, err := s.store.GetComponent(ctx, componentID)
	if err != nil {
		return nil, eris.Wrapf(err, "risk: load component %s", componentID)
	}
	score, err := s.scorer.ScoreComponent(c, profile)
	if err != nil {
		return nil, err
	}
	return &score, nil
}

// ScoreLineItem computes and persists the contextual score for one BOM
// line item. Only this line item is touched; sibling items and the BOM
// summary are not recomputed here.
func (s *Service) ScoreLineItem(ctx context.Context, lineCtx LineItemContext, organizationID string) (*model.BomLineItemRiskScore, error) {
	profile, err := s.Profile(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	base, err := s.ScoreComponent(ctx, lineCtx.ComponentID, organizationID)
	if err != nil {
		return nil, err
	}

	item := s.scorer.ContextualScore(base.TotalRiskScore, lineCtx, profile)
	item.ID = uuid.NewString()
	if err := s.store.SaveLineItemScore(ctx, &item); err != nil {
		return nil, eris.Wrapf(err, "risk: save line item %s/%s", lineCtx.BomID, lineCtx.LineItemID)
	}
	return &item, nil
}

// SetCriticality updates one line item's user criticality level and
// recomputes only that line item's contextual score from its stored base
// score. No other line item changes.
func (s *Service) SetCriticality(ctx context.Context, bomID, lineItemID string, level int, organizationID string) (*model.BomLineItemRiskScore, error) {
	if level < 1 || level > 10 {
		return nil, eris.Errorf("risk: criticality %d out of range 1-10", level)
	}
	profile, err := s.Profile(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	current, err := s.store.GetLineItem(ctx, bomID, lineItemID)
	if err != nil {
		return nil, eris.Wrapf(err, "risk: load line item %s/%s", bomID, lineItemID)
	}

	item := s.scorer.ContextualScore(current.BaseRiskScore, LineItemContext{
		BomID:        bomID,
		LineItemID:   lineItemID,
		ComponentID:  current.ComponentID,
		Quantity:     current.Quantity,
		LeadTimeDays: current.LeadTimeDays,
		Criticality:  level,
	}, profile)
	item.ID = current.ID

	if err := s.store.SaveLineItemScore(ctx, &item); err != nil {
		return nil, eris.Wrapf(err, "risk: save line item %s/%s", bomID, lineItemID)
	}
	return &item, nil
}

// SummarizeBom reads all current line-item scores for a BOM in one
// snapshot, aggregates them, resolves the trend against the most recent
// summary older than the trend window, and persists the new summary.
func (s *Service) SummarizeBom(ctx context.Context, bomID string) (*model.BomRiskSummary, error) {
	items, err := s.store.ListLineItemsForBom(ctx, bomID)
	if err != nil {
		return nil, eris.Wrapf(err, "risk: list line items for %s", bomID)
	}

	window := time.Duration(s.cfg.TrendWindowDays) * 24 * time.Hour
	prior, err := s.store.GetPreviousSummary(ctx, bomID, time.Now().UTC().Add(-window))
	if err != nil {
		return nil, eris.Wrapf(err, "risk: load prior summary for %s", bomID)
	}

	summary := s.scorer.Aggregate(bomID, items, prior)
	summary.ID = uuid.NewString()
	if err := s.store.SaveSummary(ctx, &summary); err != nil {
		return nil, eris.Wrapf(err, "risk: save summary for %s", bomID)
	}

	zap.L().Info("risk: bom summarized",
		zap.String("bom_id", bomID),
		zap.Int("line_items", summary.TotalLineItems),
		zap.Float64("weighted_risk_score", summary.WeightedRiskScore),
		zap.String("health_grade", string(summary.HealthGrade)),
		zap.String("trend", string(summary.ScoreTrend)),
	)
	return &summary, nil
}
