package risk

import (
	"math"
	"sort"
	"time"

	"github.com/bomsight/bomsight/internal/model"
)

// Health grade bands, applied to 100 minus the quantity-weighted risk
// score. Fixed constants, never re-derived per call.
const (
	gradeABound = 90
	gradeBBound = 75
	gradeCBound = 60
	gradeDBound = 50
)

// HealthGradeFor maps a weighted risk score to the letter grade.
func HealthGradeFor(weightedRisk float64) model.HealthGrade {
	health := 100 - weightedRisk
	switch {
	case health >= gradeABound:
		return model.GradeA
	case health >= gradeBBound:
		return model.GradeB
	case health >= gradeCBound:
		return model.GradeC
	case health >= gradeDBound:
		return model.GradeD
	default:
		return model.GradeF
	}
}

// Aggregate folds the current line-item scores of one BOM into a summary:
// bucket tally, mean and quantity-weighted mean of contextual scores,
// health grade, trend against the prior snapshot, and the deterministic
// top-risk list. prior may be nil (trend defaults to stable).
func (s *Scorer) Aggregate(bomID string, items []model.BomLineItemRiskScore, prior *model.BomRiskSummary) model.BomRiskSummary {
	summary := model.BomRiskSummary{
		BomID:          bomID,
		TotalLineItems: len(items),
		ScoreTrend:     model.TrendStable,
		GeneratedAt:    time.Now().UTC(),
	}

	if len(items) == 0 {
		summary.HealthGrade = HealthGradeFor(0)
		return summary
	}

	var sum, weightedSum, qtySum float64
	for _, it := range items {
		switch it.RiskLevel {
		case model.RiskLow:
			summary.Buckets.Low++
		case model.RiskMedium:
			summary.Buckets.Medium++
		case model.RiskHigh:
			summary.Buckets.High++
		case model.RiskCritical:
			summary.Buckets.Critical++
		}

		sum += it.ContextualRiskScore
		qty := float64(it.Quantity)
		if qty < 1 {
			qty = 1
		}
		weightedSum += it.ContextualRiskScore * qty
		qtySum += qty
	}

	summary.AverageRiskScore = round2(sum / float64(len(items)))
	summary.WeightedRiskScore = round2(weightedSum / qtySum)
	summary.HealthGrade = HealthGradeFor(summary.WeightedRiskScore)
	summary.ScoreTrend = trend(summary.WeightedRiskScore, prior, s.cfg.TrendEpsilon)
	summary.TopRisks = topRisks(items, s.cfg.TopRisks)
	return summary
}

// trend compares against the prior snapshot: a drop beyond epsilon is
// improving, a rise beyond epsilon is worsening.
func trend(current float64, prior *model.BomRiskSummary, epsilon float64) model.ScoreTrend {
	if prior == nil {
		return model.TrendStable
	}
	delta := current - prior.WeightedRiskScore
	switch {
	case delta < -epsilon:
		return model.TrendImproving
	case delta > epsilon:
		return model.TrendWorsening
	default:
		return model.TrendStable
	}
}

// topRisks sorts by contextual score descending, ties broken by line item
// ID so repeated runs over the same data produce the same list.
func topRisks(items []model.BomLineItemRiskScore, n int) []model.TopRisk {
	if n <= 0 {
		return nil
	}
	sorted := make([]model.BomLineItemRiskScore, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].ContextualRiskScore != sorted[j].ContextualRiskScore {
			return sorted[i].ContextualRiskScore > sorted[j].ContextualRiskScore
		}
		return sorted[i].LineItemID < sorted[j].LineItemID
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	top := make([]model.TopRisk, 0, len(sorted))
	for _, it := range sorted {
		top = append(top, model.TopRisk{
			LineItemID:          it.LineItemID,
			ComponentID:         it.ComponentID,
			ContextualRiskScore: it.ContextualRiskScore,
			RiskLevel:           it.RiskLevel,
		})
	}
	return top
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
