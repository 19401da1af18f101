// Package quality computes the 0-100 completeness score that drives the
// enrichment quality router.
package quality

import (
	"net/url"
	"strings"
)

// FieldType selects the validator applied to a candidate field value.
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeNumeric FieldType = "numeric"
	TypeEnum    FieldType = "enum"
	TypeURL     FieldType = "url"
)

// Validator reports whether a non-nil candidate value is acceptable for a
// field. Validators are pluggable per field type.
type Validator func(spec FieldSpec, value any) bool

// FieldSpec describes one schema field: its key in the enrichment data,
// whether it is required, its scoring weight, and how to validate it.
type FieldSpec struct {
	Key      string    `yaml:"key"`
	Type     FieldType `yaml:"type"`
	Required bool      `yaml:"required"`
	Weight   float64   `yaml:"weight"`
	// Enum lists allowed values for TypeEnum fields.
	Enum []string `yaml:"enum,omitempty"`
}

// Schema is an ordered list of field specs. Issue ordering follows schema
// order, so the order here is load-bearing for reproducibility.
type Schema struct {
	Fields     []FieldSpec
	validators map[FieldType]Validator
}

// NewSchema builds a Schema with the default validators.
func NewSchema(fields []FieldSpec) *Schema {
	return &Schema{
		Fields: fields,
		validators: map[FieldType]Validator{
			TypeString:  validateString,
			TypeNumeric: validateNumeric,
			TypeEnum:    validateEnum,
			TypeURL:     validateURL,
		},
	}
}

// SetValidator overrides the validator for a field type.
func (s *Schema) SetValidator(t FieldType, v Validator) {
	s.validators[t] = v
}

// TotalWeight returns the sum of all field weights.
func (s *Schema) TotalWeight() float64 {
	var total float64
	for _, f := range s.Fields {
		total += f.Weight
	}
	return total
}

// valid reports whether value passes the field's validator. A nil value is
// never valid.
func (s *Schema) valid(spec FieldSpec, value any) bool {
	if value == nil {
		return false
	}
	v, ok := s.validators[spec.Type]
	if !ok {
		v = validateString
	}
	return v(spec, value)
}

// DefaultSchema returns the component enrichment schema: required
// identity and sourcing fields weighted 2x over optional descriptive ones.
func DefaultSchema() *Schema {
	return NewSchema([]FieldSpec{
		{Key: "description", Type: TypeString, Required: true, Weight: 2},
		{Key: "datasheet_url", Type: TypeURL, Required: true, Weight: 2},
		{Key: "lifecycle_status", Type: TypeEnum, Required: true, Weight: 2,
			Enum: []string{"active", "nrnd", "eol", "obsolete"}},
		{Key: "package_type", Type: TypeString, Required: true, Weight: 2},
		{Key: "rohs_compliant", Type: TypeEnum, Required: true, Weight: 2,
			Enum: []string{"true", "false"}},
		{Key: "lead_time_days", Type: TypeNumeric, Required: true, Weight: 2},
		{Key: "unit_price", Type: TypeNumeric, Required: true, Weight: 2},
		{Key: "stock_qty", Type: TypeNumeric, Required: true, Weight: 2},
		{Key: "image_url", Type: TypeURL, Required: false, Weight: 1},
		{Key: "reach_compliant", Type: TypeEnum, Required: false, Weight: 1,
			Enum: []string{"true", "false"}},
		{Key: "aec_qualified", Type: TypeEnum, Required: false, Weight: 1,
			Enum: []string{"true", "false"}},
		{Key: "supplier_count", Type: TypeNumeric, Required: false, Weight: 1},
		{Key: "obsolescence_horizon_years", Type: TypeNumeric, Required: false, Weight: 1},
	})
}

func validateString(_ FieldSpec, value any) bool {
	s, ok := value.(string)
	return ok && strings.TrimSpace(s) != ""
}

func validateNumeric(_ FieldSpec, value any) bool {
	switch v := value.(type) {
	case int, int32, int64:
		return true
	case float64:
		return v == v // reject NaN
	case float32:
		return v == v
	default:
		return false
	}
}

func validateEnum(spec FieldSpec, value any) bool {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case bool:
		// Compliance flags arrive as booleans from some suppliers.
		if v {
			s = "true"
		} else {
			s = "false"
		}
	default:
		return false
	}
	for _, allowed := range spec.Enum {
		if strings.EqualFold(s, allowed) {
			return true
		}
	}
	return false
}

func validateURL(_ FieldSpec, value any) bool {
	s, ok := value.(string)
	if !ok || s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
