// Package store persists queue entries, catalog components, audit history,
// risk profiles, line-item scores, and BOM summaries behind a single
// interface with sqlite and postgres backends.
package store

import (
	"context"
	"time"

	"github.com/bomsight/bomsight/internal/model"
)

// QueueFilter specifies criteria for listing queue entries.
type QueueFilter struct {
	Status model.QueueStatus `json:"status,omitempty"`
	Limit  int               `json:"limit,omitempty"`
	Offset int               `json:"offset,omitempty"`
}

// HistoryFilter specifies criteria for listing history entries.
type HistoryFilter struct {
	ComponentID string    `json:"component_id,omitempty"`
	Since       time.Time `json:"since,omitempty"`
	Limit       int       `json:"limit,omitempty"`
}

// Store defines the persistence interface for the enrichment and risk
// engines. Both backends honor the same contracts:
//
//   - UpsertQueueEntry keeps at most one entry per component_id,
//     overwriting score/data/issues in place on re-enrichment.
//   - SetQueueStatus is a compare-and-swap on (component_id, version);
//     a version mismatch returns ErrConcurrentModification and a missing
//     row returns ErrComponentNotFound.
//   - MergeComponent applies coalesce semantics: only keys present in
//     fields overwrite catalog values.
//   - AppendHistory is append-only; rows are never mutated.
type Store interface {
	// Review queue
	UpsertQueueEntry(ctx context.Context, entry *model.EnrichmentQueueEntry) error
	GetQueueEntry(ctx context.Context, componentID string) (*model.EnrichmentQueueEntry, error)
	ListQueueEntries(ctx context.Context, filter QueueFilter) ([]model.EnrichmentQueueEntry, error)
	SetQueueStatus(ctx context.Context, componentID string, version int64, status model.QueueStatus, reviewedBy string, reviewedAt time.Time) error

	// Catalog
	GetComponent(ctx context.Context, componentID string) (*model.CatalogComponent, error)
	PutComponent(ctx context.Context, c *model.CatalogComponent) error
	MergeComponent(ctx context.Context, componentID string, fields map[string]any, qualityScore int, sources []string, enrichedAt time.Time) (*model.CatalogComponent, error)
	SetEnrichmentStatus(ctx context.Context, componentID string, status model.EnrichmentStatus) error

	// Audit history
	AppendHistory(ctx context.Context, entry *model.EnrichmentHistoryEntry) error
	ListHistory(ctx context.Context, filter HistoryFilter) ([]model.EnrichmentHistoryEntry, error)

	// Risk profiles
	GetRiskProfile(ctx context.Context, organizationID string) (*model.RiskProfile, error)
	PutRiskProfile(ctx context.Context, profile *model.RiskProfile) error

	// BOM line items
	ListLineItemsForBom(ctx context.Context, bomID string) ([]model.BomLineItemRiskScore, error)
	GetLineItem(ctx context.Context, bomID, lineItemID string) (*model.BomLineItemRiskScore, error)
	SaveLineItemScore(ctx context.Context, item *model.BomLineItemRiskScore) error

	// BOM summaries
	GetPreviousSummary(ctx context.Context, bomID string, olderThan time.Time) (*model.BomRiskSummary, error)
	GetLatestSummary(ctx context.Context, bomID string) (*model.BomRiskSummary, error)
	SaveSummary(ctx context.Context, summary *model.BomRiskSummary) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
