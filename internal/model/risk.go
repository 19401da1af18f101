package model

import (
	"math"
	"time"

	"github.com/rotisserie/eris"
)

// RiskLevel buckets a 0-100 risk score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// ScoreTrend compares a BOM's weighted score against a prior snapshot.
type ScoreTrend string

const (
	TrendImproving ScoreTrend = "improving"
	TrendStable    ScoreTrend = "stable"
	TrendWorsening ScoreTrend = "worsening"
)

// HealthGrade is the A-F letter summarizing a BOM's aggregate risk.
type HealthGrade string

const (
	GradeA HealthGrade = "A"
	GradeB HealthGrade = "B"
	GradeC HealthGrade = "C"
	GradeD HealthGrade = "D"
	GradeF HealthGrade = "F"
)

// weightEpsilon is the tolerance for factor weights summing to 1.0.
const weightEpsilon = 1e-6

// FactorWeights are the five risk-factor weights of a profile. They must
// sum to 1.0 within epsilon.
type FactorWeights struct {
	Lifecycle    float64 `json:"lifecycle" yaml:"lifecycle" mapstructure:"lifecycle"`
	SupplyChain  float64 `json:"supply_chain" yaml:"supply_chain" mapstructure:"supply_chain"`
	Compliance   float64 `json:"compliance" yaml:"compliance" mapstructure:"compliance"`
	Obsolescence float64 `json:"obsolescence" yaml:"obsolescence" mapstructure:"obsolescence"`
	SingleSource float64 `json:"single_source" yaml:"single_source" mapstructure:"single_source"`
}

// Sum returns the total of all five weights.
func (w FactorWeights) Sum() float64 {
	return w.Lifecycle + w.SupplyChain + w.Compliance + w.Obsolescence + w.SingleSource
}

// RiskThresholds partition 0-100 into the four risk buckets. Strictly
// increasing: Low < Medium < High.
type RiskThresholds struct {
	Low    float64 `json:"low" yaml:"low" mapstructure:"low"`
	Medium float64 `json:"medium" yaml:"medium" mapstructure:"medium"`
	High   float64 `json:"high" yaml:"high" mapstructure:"high"`
}

// ModifierWeights scale the three contextual modifiers applied to a BOM
// line item's base score.
type ModifierWeights struct {
	Quantity    float64 `json:"quantity" yaml:"quantity" mapstructure:"quantity"`
	LeadTime    float64 `json:"lead_time" yaml:"lead_time" mapstructure:"lead_time"`
	Criticality float64 `json:"criticality" yaml:"criticality" mapstructure:"criticality"`
}

// RiskProfile is per-organization scoring configuration. Read-only during
// scoring; passed explicitly into every scoring call.
type RiskProfile struct {
	OrganizationID string          `json:"organization_id" yaml:"organization_id"`
	Name           string          `json:"name,omitempty" yaml:"name,omitempty"`
	Weights        FactorWeights   `json:"weights" yaml:"weights"`
	Thresholds     RiskThresholds  `json:"thresholds" yaml:"thresholds"`
	Modifiers      ModifierWeights `json:"modifiers" yaml:"modifiers"`
	UpdatedAt      time.Time       `json:"updated_at,omitempty" yaml:"-"`
}

// DefaultRiskProfile returns the documented default profile.
func DefaultRiskProfile(orgID string) RiskProfile {
	return RiskProfile{
		OrganizationID: orgID,
		Name:           "default",
		Weights: FactorWeights{
			Lifecycle:    0.30,
			SupplyChain:  0.25,
			Compliance:   0.20,
			Obsolescence: 0.15,
			SingleSource: 0.10,
		},
		Thresholds: RiskThresholds{Low: 25, Medium: 50, High: 75},
		Modifiers:  ModifierWeights{Quantity: 1.0, LeadTime: 1.0, Criticality: 1.0},
	}
}

// Validate checks the profile invariants: weights sum to 1.0 within epsilon
// and thresholds are strictly increasing within (0, 100). Returns
// ErrInvalidRiskProfile on violation; no scoring may proceed on an invalid
// profile.
func (p RiskProfile) Validate() error {
	if diff := math.Abs(p.Weights.Sum() - 1.0); diff > weightEpsilon {
		return eris.Wrapf(ErrInvalidRiskProfile, "weights sum to %.4f, want 1.0", p.Weights.Sum())
	}
	t := p.Thresholds
	if !(t.Low > 0 && t.Low < t.Medium && t.Medium < t.High && t.High < 100) {
		return eris.Wrapf(ErrInvalidRiskProfile,
			"thresholds (%.1f, %.1f, %.1f) must be strictly increasing within (0, 100)",
			t.Low, t.Medium, t.High)
	}
	return nil
}

// Level buckets a 0-100 score: low is [0, Low], then each bucket takes
// (prev, bound] with critical above High. Open on the lower bound, closed
// on the upper, so the partition has no gaps and no overlaps.
func (p RiskProfile) Level(score float64) RiskLevel {
	switch {
	case score <= p.Thresholds.Low:
		return RiskLow
	case score <= p.Thresholds.Medium:
		return RiskMedium
	case score <= p.Thresholds.High:
		return RiskHigh
	default:
		return RiskCritical
	}
}

// FactorScores are the five independent 0-100 sub-scores of a component.
type FactorScores struct {
	Lifecycle    float64 `json:"lifecycle"`
	SupplyChain  float64 `json:"supply_chain"`
	Compliance   float64 `json:"compliance"`
	Obsolescence float64 `json:"obsolescence"`
	SingleSource float64 `json:"single_source"`
}

// ComponentRiskScore is the complete per-component scoring result.
// Superseded wholesale by each recalculation, never merged.
type ComponentRiskScore struct {
	ComponentID       string       `json:"component_id"`
	Factors           FactorScores `json:"factors"`
	TotalRiskScore    float64      `json:"total_risk_score"`
	RiskLevel         RiskLevel    `json:"risk_level"`
	CalculatedAt      time.Time    `json:"calculated_at"`
	CalculationMethod string       `json:"calculation_method"`
}

// BomLineItemRiskScore is the contextual score for one (BOM, line item) pair.
type BomLineItemRiskScore struct {
	ID          string `json:"id"`
	BomID       string `json:"bom_id"`
	LineItemID  string `json:"line_item_id"`
	ComponentID string `json:"component_id"`

	Quantity     int `json:"quantity"`
	LeadTimeDays int `json:"lead_time_days"`
	// UserCriticality is 1-10, default mid-point 5. The only human-settable
	// value that directly perturbs a computed score.
	UserCriticality int `json:"user_criticality_level"`

	BaseRiskScore       float64   `json:"base_risk_score"`
	ContextualRiskScore float64   `json:"contextual_risk_score"`
	RiskLevel           RiskLevel `json:"risk_level"`

	QuantityModifier    float64 `json:"quantity_modifier"`
	LeadTimeModifier    float64 `json:"lead_time_modifier"`
	CriticalityModifier float64 `json:"criticality_modifier"`

	CalculatedAt time.Time `json:"calculated_at"`
}

// DefaultCriticality is the mid-point default for user_criticality_level.
const DefaultCriticality = 5

// TopRisk identifies one of the highest-risk line items in a summary.
type TopRisk struct {
	LineItemID          string    `json:"line_item_id"`
	ComponentID         string    `json:"component_id"`
	ContextualRiskScore float64   `json:"contextual_risk_score"`
	RiskLevel           RiskLevel `json:"risk_level"`
}

// BucketCounts tallies line items per risk level. Counts always sum to the
// summary's TotalLineItems.
type BucketCounts struct {
	Low      int `json:"low"`
	Medium   int `json:"medium"`
	High     int `json:"high"`
	Critical int `json:"critical"`
}

// Total returns the sum of all four buckets.
func (b BucketCounts) Total() int {
	return b.Low + b.Medium + b.High + b.Critical
}

// BomRiskSummary is the derived BOM-level health assessment. Recomputed
// wholesale from current line-item scores; never partially patched.
type BomRiskSummary struct {
	ID             string       `json:"id"`
	BomID          string       `json:"bom_id"`
	TotalLineItems int          `json:"total_line_items"`
	Buckets        BucketCounts `json:"buckets"`

	AverageRiskScore  float64     `json:"average_risk_score"`
	WeightedRiskScore float64     `json:"weighted_risk_score"`
	HealthGrade       HealthGrade `json:"health_grade"`
	ScoreTrend        ScoreTrend  `json:"score_trend"`

	TopRisks    []TopRisk `json:"top_risks,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
}
