package risk

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bomsight/bomsight/internal/config"
	"github.com/bomsight/bomsight/internal/model"
)

func testRiskConfig() config.RiskConfig {
	return config.RiskConfig{
		StockFloorQty:            500,
		LeadTimeThresholdDays:    90,
		ObsolescenceHorizonYears: 5,
		ObsolescenceNeutralScore: 50,
		SingleSourceFloor:        20,
		SingleSourceFullCount:    4,
		ModifierMin:              -0.2,
		ModifierMax:              0.3,
		QuantityPivot:            1000,
		LeadTimePivotDays:        60,
		TrendWindowDays:          7,
		TrendEpsilon:             2.0,
		TopRisks:                 10,
	}
}

func intptr(v int) *int             { return &v }
func floatptr(v float64) *float64   { return &v }
func boolptr(v bool) *bool          { return &v }

func TestLifecycleScore(t *testing.T) {
	s := NewScorer(testRiskConfig())

	assert.Equal(t, 0.0, s.LifecycleScore(model.LifecycleActive))
	assert.Equal(t, 50.0, s.LifecycleScore(model.LifecycleNRND))
	assert.Equal(t, 100.0, s.LifecycleScore(model.LifecycleEOL))
	assert.Equal(t, 100.0, s.LifecycleScore(model.LifecycleObsolete))
	assert.Equal(t, 50.0, s.LifecycleScore(model.LifecycleUnknown))
	assert.Equal(t, 50.0, s.LifecycleScore(""))
}

func TestSupplyChainScore(t *testing.T) {
	s := NewScorer(testRiskConfig())

	// Zero stock is maximum risk regardless of lead time.
	assert.Equal(t, 100.0, s.SupplyChainScore(intptr(0), intptr(5)))
	// Lead time past threshold is maximum risk even with deep stock.
	assert.Equal(t, 100.0, s.SupplyChainScore(intptr(100000), intptr(120)))
	// Deep stock, short lead: low risk.
	assert.Less(t, s.SupplyChainScore(intptr(100000), intptr(9)), 20.0)
	// Unknown values default to the mid-point.
	assert.Equal(t, 50.0, s.SupplyChainScore(nil, nil))
	// Thin stock raises the score.
	thin := s.SupplyChainScore(intptr(50), intptr(10))
	deep := s.SupplyChainScore(intptr(450), intptr(10))
	assert.Greater(t, thin, deep)
}

func TestComplianceScore(t *testing.T) {
	s := NewScorer(testRiskConfig())

	all := &model.CatalogComponent{
		RoHSCompliant: boolptr(true), REACHCompliant: boolptr(true), AECQualified: boolptr(true),
	}
	assert.Equal(t, 0.0, s.ComplianceScore(all))

	none := &model.CatalogComponent{}
	assert.Equal(t, 100.0, s.ComplianceScore(none))

	// A false flag counts the same as a missing one.
	one := &model.CatalogComponent{
		RoHSCompliant: boolptr(true), REACHCompliant: boolptr(false),
	}
	assert.InDelta(t, 100.0-100.0/3, s.ComplianceScore(one), 0.01)
}

func TestObsolescenceScore(t *testing.T) {
	s := NewScorer(testRiskConfig())

	// Unknown horizon uses the neutral default, never 0.
	assert.Equal(t, 50.0, s.ObsolescenceScore(nil))
	assert.Greater(t, s.ObsolescenceScore(nil), 0.0)

	assert.Equal(t, 0.0, s.ObsolescenceScore(floatptr(5)))
	assert.Equal(t, 0.0, s.ObsolescenceScore(floatptr(12)))
	assert.Equal(t, 100.0, s.ObsolescenceScore(floatptr(0)))
	assert.Equal(t, 100.0, s.ObsolescenceScore(floatptr(-1)))

	// Shorter horizon means higher risk.
	assert.Greater(t, s.ObsolescenceScore(floatptr(1)), s.ObsolescenceScore(floatptr(4)))
}

func TestSingleSourceScore(t *testing.T) {
	s := NewScorer(testRiskConfig())

	assert.Equal(t, 100.0, s.SingleSourceScore(intptr(1)))
	assert.Equal(t, 100.0, s.SingleSourceScore(nil))
	assert.Equal(t, 100.0, s.SingleSourceScore(intptr(0)))
	assert.Equal(t, 20.0, s.SingleSourceScore(intptr(4)))
	assert.Equal(t, 20.0, s.SingleSourceScore(intptr(12)))

	two := s.SingleSourceScore(intptr(2))
	three := s.SingleSourceScore(intptr(3))
	assert.Greater(t, two, three)
	assert.Greater(t, three, 20.0)
}

func TestScoreComponent_WeightedSum(t *testing.T) {
	s := NewScorer(testRiskConfig())
	profile := model.DefaultRiskProfile("org-1")

	// lifecycle=100, supply=20, compliance=0, obsolescence=40, single=100.
	c := &model.CatalogComponent{
		ComponentID:     "cmp-1",
		Lifecycle:       model.LifecycleEOL,
		StockQty:        intptr(400),
		LeadTimeDays:    intptr(1),
		RoHSCompliant:   boolptr(true),
		REACHCompliant:  boolptr(true),
		AECQualified:    boolptr(true),
		ObsolescenceYrs: floatptr(3),
		SupplierCount:   intptr(1),
	}

	score, err := s.ScoreComponent(c, profile)
	require.NoError(t, err)

	assert.Equal(t, 100.0, score.Factors.Lifecycle)
	assert.Equal(t, 20.0, score.Factors.SupplyChain)
	assert.Equal(t, 0.0, score.Factors.Compliance)
	assert.Equal(t, 40.0, score.Factors.Obsolescence)
	assert.Equal(t, 100.0, score.Factors.SingleSource)

	// 100*.30 + 20*.25 + 0*.20 + 40*.15 + 100*.10 = 51.
	assert.Equal(t, 51.0, score.TotalRiskScore)
	// 51 sits above the medium threshold of 50, so it buckets high.
	assert.Equal(t, model.RiskHigh, score.RiskLevel)
	assert.Equal(t, CalculationMethod, score.CalculationMethod)
}

func TestScoreComponent_FactorsInRange(t *testing.T) {
	s := NewScorer(testRiskConfig())
	profile := model.DefaultRiskProfile("org-1")

	components := []*model.CatalogComponent{
		{ComponentID: "a"},
		{ComponentID: "b", Lifecycle: model.LifecycleObsolete, StockQty: intptr(0), SupplierCount: intptr(1)},
		{ComponentID: "c", Lifecycle: model.LifecycleActive, StockQty: intptr(1000000),
			LeadTimeDays: intptr(1), RoHSCompliant: boolptr(true), REACHCompliant: boolptr(true),
			AECQualified: boolptr(true), ObsolescenceYrs: floatptr(20), SupplierCount: intptr(10)},
	}
	for _, c := range components {
		score, err := s.ScoreComponent(c, profile)
		require.NoError(t, err)
		for _, f := range []float64{
			score.Factors.Lifecycle, score.Factors.SupplyChain, score.Factors.Compliance,
			score.Factors.Obsolescence, score.Factors.SingleSource, score.TotalRiskScore,
		} {
			assert.GreaterOrEqual(t, f, 0.0)
			assert.LessOrEqual(t, f, 100.0)
		}
	}
}

func TestScoreComponent_InvalidProfileRefused(t *testing.T) {
	s := NewScorer(testRiskConfig())
	profile := model.DefaultRiskProfile("org-1")
	profile.Weights.Compliance = 0.9

	_, err := s.ScoreComponent(&model.CatalogComponent{ComponentID: "cmp-1"}, profile)
	require.Error(t, err)
	assert.True(t, eris.Is(err, model.ErrInvalidRiskProfile))
}
