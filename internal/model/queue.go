package model

import "time"

// QueueStatus is the review state of an enrichment queue entry.
type QueueStatus string

const (
	QueuePending     QueueStatus = "pending"
	QueueNeedsReview QueueStatus = "needs_review"
	QueueApproved    QueueStatus = "approved"
	QueueRejected    QueueStatus = "rejected"
)

// EnrichmentQueueEntry holds a mid-quality enrichment result awaiting human
// review. At most one open entry exists per component_id; re-enrichment
// overwrites it in place rather than creating a duplicate.
//
// Invariant: ReviewedAt is set if and only if ReviewedBy is set and
// Status is approved or rejected.
type EnrichmentQueueEntry struct {
	ComponentID    string         `json:"component_id"`
	MPN            string         `json:"mpn"`
	Manufacturer   string         `json:"manufacturer"`
	Status         QueueStatus    `json:"status"`
	QualityScore   int            `json:"quality_score"`
	EnrichmentData map[string]any `json:"enrichment_data"`
	OriginalData   map[string]any `json:"original_data,omitempty"`
	Issues         []string       `json:"issues,omitempty"`
	// Sources are the supplier APIs that answered; carried so the catalog
	// apply step on approval can record them.
	Sources        []string       `json:"sources,omitempty"`
	ReviewedBy     *string        `json:"reviewed_by,omitempty"`
	ReviewedAt     *time.Time     `json:"reviewed_at,omitempty"`

	// Version supports the optimistic-concurrency contract: status changes
	// are compare-and-swap on (component_id, version).
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HistoryStatus is the terminal outcome recorded for one enrichment attempt.
type HistoryStatus string

const (
	HistoryCompleted   HistoryStatus = "completed"
	HistoryNeedsReview HistoryStatus = "needs_review"
	HistoryRejected    HistoryStatus = "rejected"
	HistoryError       HistoryStatus = "error"
)

// EnrichmentHistoryEntry is an append-only audit record. Exactly one is
// written per enrichment attempt or review transition; never mutated.
type EnrichmentHistoryEntry struct {
	ID                string        `json:"id"`
	ComponentID       string        `json:"component_id"`
	MPN               string        `json:"mpn"`
	QualityScore      int           `json:"quality_score"`
	SourcesSuccessful []string      `json:"sources_successful,omitempty"`
	Status            HistoryStatus `json:"status"`
	Timestamp         time.Time     `json:"timestamp"`
	ExecutionTimeMS   int64         `json:"execution_time_ms"`
}
