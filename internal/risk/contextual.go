package risk

import (
	"time"

	"github.com/bomsight/bomsight/internal/model"
)

// LineItemContext is the BOM-side input to contextual scoring.
type LineItemContext struct {
	BomID        string
	LineItemID   string
	ComponentID  string
	Quantity     int
	LeadTimeDays int
	// Criticality is the user-set 1-10 level; zero means unset and falls
	// back to the mid-point default.
	Criticality int
}

// ContextualScore perturbs a component's base risk score with the line
// item's quantity, lead time, and user criticality. Each modifier is
// independently bounded to [ModifierMin, ModifierMax] before summation and
// the final score is clamped to [0,100]. Pure; changing one line item's
// criticality recomputes only that line item.
func (s *Scorer) ContextualScore(base float64, ctx LineItemContext, profile model.RiskProfile) model.BomLineItemRiskScore {
	crit := ctx.Criticality
	if crit < 1 || crit > 10 {
		crit = model.DefaultCriticality
	}

	m := profile.Modifiers
	qm := s.boundModifier(m.Quantity * pivotRatio(ctx.Quantity, s.cfg.QuantityPivot))
	lm := s.boundModifier(m.LeadTime * pivotRatio(ctx.LeadTimeDays, s.cfg.LeadTimePivotDays))
	cm := s.boundModifier(m.Criticality * float64(crit-model.DefaultCriticality) / model.DefaultCriticality)

	contextual := clamp(base * (1 + qm + lm + cm))

	return model.BomLineItemRiskScore{
		BomID:               ctx.BomID,
		LineItemID:          ctx.LineItemID,
		ComponentID:         ctx.ComponentID,
		Quantity:            ctx.Quantity,
		LeadTimeDays:        ctx.LeadTimeDays,
		UserCriticality:     crit,
		BaseRiskScore:       base,
		ContextualRiskScore: contextual,
		RiskLevel:           profile.Level(contextual),
		QuantityModifier:    qm,
		LeadTimeModifier:    lm,
		CriticalityModifier: cm,
		CalculatedAt:        time.Now().UTC(),
	}
}

// pivotRatio maps a value against its pivot to a signed fraction: 0 at the
// pivot, +1 at double, negative below.
func pivotRatio(value, pivot int) float64 {
	if pivot <= 0 || value <= 0 {
		return 0
	}
	return float64(value-pivot) / float64(pivot)
}

func (s *Scorer) boundModifier(v float64) float64 {
	if v < s.cfg.ModifierMin {
		return s.cfg.ModifierMin
	}
	if v > s.cfg.ModifierMax {
		return s.cfg.ModifierMax
	}
	return v
}
