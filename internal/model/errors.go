package model

import "github.com/rotisserie/eris"

// Sentinel errors shared across the enrichment and risk subsystems.
// Callers match them with eris.Is after wrapping at package boundaries.
var (
	// ErrInvalidCandidate marks a malformed enrichment candidate. In batch
	// context the item is logged and skipped, never retried.
	ErrInvalidCandidate = eris.New("invalid candidate")

	// ErrInvalidTransition marks a review action attempted from a status
	// that disallows it. Surfaced to the caller, not retried.
	ErrInvalidTransition = eris.New("invalid transition")

	// ErrConcurrentModification marks an optimistic-lock loss on a queue
	// entry. Retried a bounded number of times, then surfaced.
	ErrConcurrentModification = eris.New("concurrent modification")

	// ErrComponentNotFound marks a missing catalog or queue record.
	ErrComponentNotFound = eris.New("component not found")

	// ErrInvalidRiskProfile marks a profile whose weights do not sum to 1.0
	// or whose thresholds are not strictly increasing. Fatal at load; no
	// scoring proceeds for that organization until corrected.
	ErrInvalidRiskProfile = eris.New("invalid risk profile")
)
