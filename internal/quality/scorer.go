package quality

import (
	"fmt"
	"math"

	"github.com/rotisserie/eris"

	"github.com/bomsight/bomsight/internal/model"
)

// Result holds the completeness score and the ordered issue list for one
// candidate. Issues follow schema order so repeated runs produce identical
// output for identical input.
type Result struct {
	Score  int      `json:"score"`
	Issues []string `json:"issues,omitempty"`
}

// Score computes the 0-100 completeness score of a candidate against the
// schema. A field counts only if present (non-nil) and valid per its
// type validator. Pure function: no side effects, deterministic.
//
// Returns ErrInvalidCandidate when the candidate lacks an identity or has
// no field data at all.
func Score(candidate model.EnrichedCandidate, schema *Schema) (Result, error) {
	if candidate.ComponentID == "" || model.CanonicalMPN(candidate.MPN) == "" {
		return Result{}, eris.Wrapf(model.ErrInvalidCandidate,
			"candidate missing identity (component_id=%q, mpn=%q)",
			candidate.ComponentID, candidate.MPN)
	}
	if candidate.Fields == nil {
		return Result{}, eris.Wrapf(model.ErrInvalidCandidate,
			"candidate %s has no field data", candidate.ComponentID)
	}

	total := schema.TotalWeight()
	if total <= 0 {
		return Result{}, eris.Wrap(model.ErrInvalidCandidate, "schema has zero total weight")
	}

	var earned float64
	var issues []string
	for _, spec := range schema.Fields {
		value, present := candidate.Fields[spec.Key]
		switch {
		case present && value != nil && schema.valid(spec, value):
			earned += spec.Weight
		case spec.Required && (!present || value == nil):
			issues = append(issues, fmt.Sprintf("missing required field %s", spec.Key))
		case spec.Required:
			issues = append(issues, fmt.Sprintf("invalid value for required field %s", spec.Key))
		case !present || value == nil:
			issues = append(issues, fmt.Sprintf("missing optional field %s", spec.Key))
		default:
			issues = append(issues, fmt.Sprintf("invalid value for optional field %s", spec.Key))
		}
	}

	score := int(math.Round(100 * earned / total))
	if score < 0 {
		score = 0
	} else if score > 100 {
		score = 100
	}

	return Result{Score: score, Issues: issues}, nil
}
