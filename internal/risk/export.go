package risk

import (
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/bomsight/bomsight/internal/model"
)

// ExportXLSX writes a BOM risk report workbook: a summary sheet with the
// aggregate assessment and a line-items sheet with every contextual score.
func ExportXLSX(path string, summary *model.BomRiskSummary, items []model.BomLineItemRiskScore) error {
	f := xlsx.NewFile()

	if err := writeSummarySheet(f, summary); err != nil {
		return err
	}
	if err := writeLineItemSheet(f, items); err != nil {
		return err
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "risk: write report %s", path)
	}
	return nil
}

func writeSummarySheet(f *xlsx.File, summary *model.BomRiskSummary) error {
	sheet, err := f.AddSheet("Summary")
	if err != nil {
		return eris.Wrap(err, "risk: add summary sheet")
	}

	rows := [][]string{
		{"BOM ID", summary.BomID},
		{"Generated At", summary.GeneratedAt.Format("2006-01-02 15:04:05 UTC")},
		{"Total Line Items", strconv.Itoa(summary.TotalLineItems)},
		{"Health Grade", string(summary.HealthGrade)},
		{"Score Trend", string(summary.ScoreTrend)},
		{"Average Risk Score", formatScore(summary.AverageRiskScore)},
		{"Weighted Risk Score", formatScore(summary.WeightedRiskScore)},
		{"Low Risk", strconv.Itoa(summary.Buckets.Low)},
		{"Medium Risk", strconv.Itoa(summary.Buckets.Medium)},
		{"High Risk", strconv.Itoa(summary.Buckets.High)},
		{"Critical Risk", strconv.Itoa(summary.Buckets.Critical)},
	}
	for _, r := range rows {
		row := sheet.AddRow()
		for _, v := range r {
			row.AddCell().SetString(v)
		}
	}

	if len(summary.TopRisks) > 0 {
		sheet.AddRow()
		header := sheet.AddRow()
		for _, h := range []string{"Top Risk Line Item", "Component", "Contextual Score", "Level"} {
			header.AddCell().SetString(h)
		}
		for _, t := range summary.TopRisks {
			row := sheet.AddRow()
			row.AddCell().SetString(t.LineItemID)
			row.AddCell().SetString(t.ComponentID)
			row.AddCell().SetFloat(t.ContextualRiskScore)
			row.AddCell().SetString(string(t.RiskLevel))
		}
	}
	return nil
}

func writeLineItemSheet(f *xlsx.File, items []model.BomLineItemRiskScore) error {
	sheet, err := f.AddSheet("Line Items")
	if err != nil {
		return eris.Wrap(err, "risk: add line items sheet")
	}

	header := sheet.AddRow()
	for _, h := range []string{
		"Line Item", "Component", "Quantity", "Lead Time (days)", "Criticality",
		"Base Score", "Contextual Score", "Risk Level",
		"Quantity Modifier", "Lead Time Modifier", "Criticality Modifier",
	} {
		header.AddCell().SetString(h)
	}

	for _, it := range items {
		row := sheet.AddRow()
		row.AddCell().SetString(it.LineItemID)
		row.AddCell().SetString(it.ComponentID)
		row.AddCell().SetInt(it.Quantity)
		row.AddCell().SetInt(it.LeadTimeDays)
		row.AddCell().SetInt(it.UserCriticality)
		row.AddCell().SetFloat(it.BaseRiskScore)
		row.AddCell().SetFloat(it.ContextualRiskScore)
		row.AddCell().SetString(string(it.RiskLevel))
		row.AddCell().SetFloat(it.QuantityModifier)
		row.AddCell().SetFloat(it.LeadTimeModifier)
		row.AddCell().SetFloat(it.CriticalityModifier)
	}
	return nil
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
