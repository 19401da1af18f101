package risk

import (
	"math"
	"time"

	"github.com/rotisserie/eris"

	"github.com/bomsight/bomsight/internal/config"
	"github.com/bomsight/bomsight/internal/model"
)

// CalculationMethod tags how a ComponentRiskScore was produced.
const CalculationMethod = "weighted_factors_v1"

// Scorer computes the five risk factor sub-scores and their weighted
// total. All methods are pure: they clamp rather than fail on odd numeric
// input, and never touch a store.
type Scorer struct {
	cfg config.RiskConfig
}

// NewScorer creates a Scorer from tuning config.
func NewScorer(cfg config.RiskConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// LifecycleScore maps the production stage to risk: active parts score 0,
// NRND 50, EOL and obsolete 100. Unknown stages score the mid-point.
func (s *Scorer) LifecycleScore(status model.LifecycleStatus) float64 {
	switch status {
	case model.LifecycleActive:
		return 0
	case model.LifecycleNRND:
		return 50
	case model.LifecycleEOL, model.LifecycleObsolete:
		return 100
	default:
		return 50
	}
}

// SupplyChainScore combines stock level and lead time against the
// configured thresholds and takes the worse of the two: zero stock or a
// lead time past the threshold both mean maximum supply risk. Unknown
// values score the mid-point.
func (s *Scorer) SupplyChainScore(stockQty, leadTimeDays *int) float64 {
	stock := 50.0
	if stockQty != nil {
		floor := float64(s.cfg.StockFloorQty)
		switch {
		case *stockQty <= 0:
			stock = 100
		case floor <= 0 || float64(*stockQty) >= floor:
			stock = 0
		default:
			stock = 100 * (1 - float64(*stockQty)/floor)
		}
	}

	lead := 50.0
	if leadTimeDays != nil {
		threshold := float64(s.cfg.LeadTimeThresholdDays)
		switch {
		case *leadTimeDays <= 0:
			lead = 0
		case threshold <= 0 || float64(*leadTimeDays) >= threshold:
			lead = 100
		default:
			lead = 100 * float64(*leadTimeDays) / threshold
		}
	}

	return clamp(math.Max(stock, lead))
}

// ComplianceScore is 100 minus the share of required compliance flags that
// are present and compliant. RoHS, REACH, and AEC are the required set; a
// missing or false flag raises the score.
func (s *Scorer) ComplianceScore(c *model.CatalogComponent) float64 {
	const required = 3
	present := 0
	for _, flag := range []*bool{c.RoHSCompliant, c.REACHCompliant, c.AECQualified} {
		if flag != nil && *flag {
			present++
		}
	}
	return clamp(100 - float64(present)/required*100)
}

// ObsolescenceScore maps the predicted years until obsolescence: a horizon
// at or beyond the configured window scores 0, an expired horizon scores
// 100. An unknown horizon defaults to the configured neutral score, never 0.
func (s *Scorer) ObsolescenceScore(horizonYears *float64) float64 {
	if horizonYears == nil {
		return clamp(s.cfg.ObsolescenceNeutralScore)
	}
	window := s.cfg.ObsolescenceHorizonYears
	switch {
	case *horizonYears <= 0:
		return 100
	case window <= 0 || *horizonYears >= window:
		return 0
	default:
		return clamp(100 * (1 - *horizonYears/window))
	}
}

// SingleSourceScore is 100 for a sole supplier, scaling linearly down to
// the configured floor once the qualified supplier count reaches
// SingleSourceFullCount. An unknown count is treated as sole-sourced.
func (s *Scorer) SingleSourceScore(supplierCount *int) float64 {
	if supplierCount == nil || *supplierCount <= 1 {
		return 100
	}
	full := s.cfg.SingleSourceFullCount
	floor := s.cfg.SingleSourceFloor
	if full <= 1 || *supplierCount >= full {
		return clamp(floor)
	}
	span := float64(full - 1)
	return clamp(100 + (floor-100)*float64(*supplierCount-1)/span)
}

// ScoreComponent computes all five factors and the weighted total for one
// catalog component under the given profile. The profile is validated
// first; scoring never proceeds on an invalid profile.
func (s *Scorer) ScoreComponent(c *model.CatalogComponent, profile model.RiskProfile) (model.ComponentRiskScore, error) {
	if err := profile.Validate(); err != nil {
		return model.ComponentRiskScore{}, eris.Wrapf(err, "risk: profile %s", profile.OrganizationID)
	}

	factors := model.FactorScores{
		Lifecycle:    s.LifecycleScore(c.Lifecycle),
		SupplyChain:  s.SupplyChainScore(c.StockQty, c.LeadTimeDays),
		Compliance:   s.ComplianceScore(c),
		Obsolescence: s.ObsolescenceScore(c.ObsolescenceYrs),
		SingleSource: s.SingleSourceScore(c.SupplierCount),
	}

	w := profile.Weights
	total := clamp(math.Round(
		w.Lifecycle*factors.Lifecycle +
			w.SupplyChain*factors.SupplyChain +
			w.Compliance*factors.Compliance +
			w.Obsolescence*factors.Obsolescence +
			w.SingleSource*factors.SingleSource,
	))

	return model.ComponentRiskScore{
		ComponentID:       c.ComponentID,
		Factors:           factors,
		TotalRiskScore:    total,
		RiskLevel:         profile.Level(total),
		CalculatedAt:      time.Now().UTC(),
		CalculationMethod: CalculationMethod,
	}, nil
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
