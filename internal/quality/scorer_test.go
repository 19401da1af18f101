package quality

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bomsight/bomsight/internal/model"
)

func fullCandidate() model.EnrichedCandidate {
	return model.EnrichedCandidate{
		ComponentID:  "cmp-1",
		MPN:          "STM32F407VGT6",
		Manufacturer: "STMicroelectronics",
		Fields: map[string]any{
			"description":                "ARM Cortex-M4 MCU, 168 MHz, 1 MB flash",
			"datasheet_url":              "https://st.com/ds/stm32f407.pdf",
			"lifecycle_status":           "active",
			"package_type":               "LQFP-100",
			"rohs_compliant":             true,
			"lead_time_days":             float64(12),
			"unit_price":                 8.42,
			"stock_qty":                  float64(15000),
			"image_url":                  "https://st.com/img/stm32f407.png",
			"reach_compliant":            true,
			"aec_qualified":              false,
			"supplier_count":             float64(6),
			"obsolescence_horizon_years": float64(8),
		},
		Sources: []string{"octopart", "digikey"},
	}
}

func TestScore_FullCandidateScores100(t *testing.T) {
	res, err := Score(fullCandidate(), DefaultSchema())
	require.NoError(t, err)
	assert.Equal(t, 100, res.Score)
	assert.Empty(t, res.Issues)
}

func TestScore_MissingIdentityInvalid(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*model.EnrichedCandidate)
	}{
		{"no component id", func(c *model.EnrichedCandidate) { c.ComponentID = "" }},
		{"no mpn", func(c *model.EnrichedCandidate) { c.MPN = "" }},
		{"separator-only mpn", func(c *model.EnrichedCandidate) { c.MPN = "-./" }},
		{"nil fields", func(c *model.EnrichedCandidate) { c.Fields = nil }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cand := fullCandidate()
			tc.mut(&cand)
			_, err := Score(cand, DefaultSchema())
			require.Error(t, err)
			assert.True(t, eris.Is(err, model.ErrInvalidCandidate))
		})
	}
}

func TestScore_MissingRequiredFieldLowersScore(t *testing.T) {
	cand := fullCandidate()
	delete(cand.Fields, "datasheet_url")

	res, err := Score(cand, DefaultSchema())
	require.NoError(t, err)
	// 19 of 21 weight earned.
	assert.Equal(t, 90, res.Score)
	require.Len(t, res.Issues, 1)
	assert.Equal(t, "missing required field datasheet_url", res.Issues[0])
}

func TestScore_MonotonicAsFieldsBecomeValid(t *testing.T) {
	schema := DefaultSchema()
	cand := fullCandidate()
	full := cand.Fields
	cand.Fields = map[string]any{"description": full["description"]}

	prev := -1
	for _, key := range []string{
		"datasheet_url", "lifecycle_status", "package_type", "rohs_compliant",
		"lead_time_days", "unit_price", "stock_qty", "image_url",
		"reach_compliant", "aec_qualified", "supplier_count", "obsolescence_horizon_years",
	} {
		res, err := Score(cand, schema)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.Score, prev)
		assert.LessOrEqual(t, res.Score, 100)
		prev = res.Score
		cand.Fields[key] = full[key]
	}

	res, err := Score(cand, schema)
	require.NoError(t, err)
	assert.Equal(t, 100, res.Score)
}

func TestScore_InvalidValuesCounted(t *testing.T) {
	cand := fullCandidate()
	cand.Fields["datasheet_url"] = "not a url"
	cand.Fields["lifecycle_status"] = "discontinued"
	cand.Fields["lead_time_days"] = "soon"

	res, err := Score(cand, DefaultSchema())
	require.NoError(t, err)
	// 15 of 21 weight earned.
	assert.Equal(t, 71, res.Score)
	assert.Equal(t, []string{
		"invalid value for required field datasheet_url",
		"invalid value for required field lifecycle_status",
		"invalid value for required field lead_time_days",
	}, res.Issues)
}

func TestScore_IssueOrderFollowsSchemaOrder(t *testing.T) {
	cand := fullCandidate()
	delete(cand.Fields, "obsolescence_horizon_years")
	delete(cand.Fields, "description")

	res, err := Score(cand, DefaultSchema())
	require.NoError(t, err)
	require.Len(t, res.Issues, 2)
	assert.Equal(t, "missing required field description", res.Issues[0])
	assert.Equal(t, "missing optional field obsolescence_horizon_years", res.Issues[1])
}

func TestScore_Deterministic(t *testing.T) {
	cand := fullCandidate()
	delete(cand.Fields, "image_url")
	cand.Fields["unit_price"] = "free"

	first, err := Score(cand, DefaultSchema())
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Score(cand, DefaultSchema())
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestValidateEnum_AcceptsBoolForComplianceFlags(t *testing.T) {
	spec := FieldSpec{Key: "rohs_compliant", Type: TypeEnum, Enum: []string{"true", "false"}}
	assert.True(t, validateEnum(spec, true))
	assert.True(t, validateEnum(spec, false))
	assert.True(t, validateEnum(spec, "TRUE"))
	assert.False(t, validateEnum(spec, 1))
}

func TestValidateURL(t *testing.T) {
	spec := FieldSpec{Key: "datasheet_url", Type: TypeURL}
	assert.True(t, validateURL(spec, "https://example.com/ds.pdf"))
	assert.False(t, validateURL(spec, "ftp://example.com/ds.pdf"))
	assert.False(t, validateURL(spec, "://bad"))
	assert.False(t, validateURL(spec, 42))
}
