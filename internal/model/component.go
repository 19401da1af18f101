package model

import "time"

// LifecycleStatus is the manufacturer-reported production stage of a part.
type LifecycleStatus string

const (
	LifecycleActive   LifecycleStatus = "active"
	LifecycleNRND     LifecycleStatus = "nrnd"
	LifecycleEOL      LifecycleStatus = "eol"
	LifecycleObsolete LifecycleStatus = "obsolete"
	LifecycleUnknown  LifecycleStatus = "unknown"
)

// EnrichmentStatus tracks where a catalog component sits in the enrichment flow.
type EnrichmentStatus string

const (
	EnrichmentPending     EnrichmentStatus = "pending"
	EnrichmentEnriched    EnrichmentStatus = "enriched"
	EnrichmentNeedsReview EnrichmentStatus = "needs_review"
	EnrichmentFailed      EnrichmentStatus = "failed"
)

// EnrichedCandidate is one component's proposed field values as produced by
// the supplier-API enrichment clients, plus the sources that answered.
// Transient input; never persisted by this core.
type EnrichedCandidate struct {
	ComponentID  string         `json:"component_id"`
	MPN          string         `json:"mpn"`
	Manufacturer string         `json:"manufacturer"`
	Fields       map[string]any `json:"fields"`
	Sources      []string       `json:"sources"`
}

// CatalogComponent is the production catalog record for a part.
type CatalogComponent struct {
	ComponentID  string `json:"component_id"`
	MPN          string `json:"mpn"`
	Manufacturer string `json:"manufacturer"`

	Description     string          `json:"description,omitempty"`
	DatasheetURL    string          `json:"datasheet_url,omitempty"`
	ImageURL        string          `json:"image_url,omitempty"`
	Lifecycle       LifecycleStatus `json:"lifecycle_status,omitempty"`
	PackageType     string          `json:"package_type,omitempty"`
	RoHSCompliant   *bool           `json:"rohs_compliant,omitempty"`
	REACHCompliant  *bool           `json:"reach_compliant,omitempty"`
	AECQualified    *bool           `json:"aec_qualified,omitempty"`
	LeadTimeDays    *int            `json:"lead_time_days,omitempty"`
	UnitPrice       *float64        `json:"unit_price,omitempty"`
	StockQty        *int            `json:"stock_qty,omitempty"`
	SupplierCount   *int            `json:"supplier_count,omitempty"`
	ObsolescenceYrs *float64        `json:"obsolescence_horizon_years,omitempty"`

	EnrichmentStatus       EnrichmentStatus `json:"enrichment_status"`
	LastEnrichedAt         *time.Time       `json:"last_enriched_at,omitempty"`
	EnrichmentQualityScore int              `json:"enrichment_quality_score"`
	EnrichmentSources      []string         `json:"enrichment_sources,omitempty"`
}

// MergeEnrichment applies coalesce semantics: only keys present in fields
// overwrite the component; everything else is left untouched. Unknown keys
// are ignored. Applying the same fields twice yields the same state.
func (c *CatalogComponent) MergeEnrichment(fields map[string]any) {
	for key, raw := range fields {
		if raw == nil {
			continue
		}
		switch key {
		case "description":
			if v, ok := asString(raw); ok {
				c.Description = v
			}
		case "datasheet_url":
			if v, ok := asString(raw); ok {
				c.DatasheetURL = v
			}
		case "image_url":
			if v, ok := asString(raw); ok {
				c.ImageURL = v
			}
		case "lifecycle_status":
			if v, ok := asString(raw); ok {
				c.Lifecycle = LifecycleStatus(v)
			}
		case "package_type":
			if v, ok := asString(raw); ok {
				c.PackageType = v
			}
		case "rohs_compliant":
			if v, ok := raw.(bool); ok {
				c.RoHSCompliant = &v
			}
		case "reach_compliant":
			if v, ok := raw.(bool); ok {
				c.REACHCompliant = &v
			}
		case "aec_qualified":
			if v, ok := raw.(bool); ok {
				c.AECQualified = &v
			}
		case "lead_time_days":
			if v, ok := asInt(raw); ok {
				c.LeadTimeDays = &v
			}
		case "unit_price":
			if v, ok := asFloat(raw); ok {
				c.UnitPrice = &v
			}
		case "stock_qty":
			if v, ok := asInt(raw); ok {
				c.StockQty = &v
			}
		case "supplier_count":
			if v, ok := asInt(raw); ok {
				c.SupplierCount = &v
			}
		case "obsolescence_horizon_years":
			if v, ok := asFloat(raw); ok {
				c.ObsolescenceYrs = &v
			}
		}
	}
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok && s != ""
}

// asInt accepts int and float64 (JSON decodes numbers as float64).
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
