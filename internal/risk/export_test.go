package risk

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/bomsight/bomsight/internal/model"
)

func TestExportXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")

	summary := &model.BomRiskSummary{
		BomID:             "bom-1",
		TotalLineItems:    2,
		Buckets:           model.BucketCounts{Low: 1, Critical: 1},
		AverageRiskScore:  55,
		WeightedRiskScore: 19,
		HealthGrade:       model.GradeB,
		ScoreTrend:        model.TrendStable,
		TopRisks: []model.TopRisk{
			{LineItemID: "li-2", ComponentID: "cmp-2", ContextualRiskScore: 100, RiskLevel: model.RiskCritical},
		},
		GeneratedAt: time.Now().UTC(),
	}
	items := []model.BomLineItemRiskScore{
		item("li-1", 10, 9, model.RiskLow),
		item("li-2", 100, 1, model.RiskCritical),
	}

	require.NoError(t, ExportXLSX(path, summary, items))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 2)
	assert.Equal(t, "Summary", f.Sheets[0].Name)
	assert.Equal(t, "Line Items", f.Sheets[1].Name)
	// Header plus one row per line item.
	assert.Len(t, f.Sheets[1].Rows, 3)
}
