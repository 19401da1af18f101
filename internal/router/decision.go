// Package router decides what happens to a scored enrichment candidate:
// auto-promote into the catalog, queue for human review, or reject. It
// also owns the review state machine over queue entries.
package router

import (
	"github.com/rotisserie/eris"

	"github.com/bomsight/bomsight/internal/model"
)

// Outcome is the routing result for one scored candidate.
type Outcome string

const (
	OutcomePromoted Outcome = "promoted"
	OutcomeReview   Outcome = "needs_review"
	OutcomeRejected Outcome = "rejected"
)

// Effect names a side effect the caller must perform to commit a decision.
// Keeping effects explicit keeps the state machine testable without a
// database.
type Effect string

const (
	EffectApplyCatalog      Effect = "apply_catalog"
	EffectUpsertQueue       Effect = "upsert_queue"
	EffectMarkCatalogFailed Effect = "mark_catalog_failed"
)

// Thresholds are the routing score boundaries. AutoPromote must be above
// Review; scores at or above AutoPromote skip the queue, scores below
// Review are rejected outright.
type Thresholds struct {
	AutoPromote int
	Review      int
}

// DefaultThresholds returns the documented default boundaries.
func DefaultThresholds() Thresholds {
	return Thresholds{AutoPromote: 95, Review: 70}
}

// Decision is a routing verdict plus the effects that commit it. Route is
// a pure function of the score, so identical inputs always produce
// identical decisions.
type Decision struct {
	Outcome     Outcome
	QueueStatus model.QueueStatus
	History     model.HistoryStatus
	Effects     []Effect
}

// Route maps a quality score to a routing decision.
func Route(score int, t Thresholds) Decision {
	switch {
	case score >= t.AutoPromote:
		return Decision{
			Outcome:     OutcomePromoted,
			QueueStatus: model.QueueApproved,
			History:     model.HistoryCompleted,
			Effects:     []Effect{EffectApplyCatalog},
		}
	case score >= t.Review:
		return Decision{
			Outcome:     OutcomeReview,
			QueueStatus: model.QueueNeedsReview,
			History:     model.HistoryNeedsReview,
			Effects:     []Effect{EffectUpsertQueue},
		}
	default:
		return Decision{
			Outcome:     OutcomeRejected,
			QueueStatus: model.QueueRejected,
			History:     model.HistoryRejected,
			Effects:     []Effect{EffectMarkCatalogFailed},
		}
	}
}

// ReviewAction is an explicit reviewer decision on a queued entry.
type ReviewAction string

const (
	ActionApprove ReviewAction = "approve"
	ActionReject  ReviewAction = "reject"
)

// Transition validates a reviewer action against the current queue status
// and returns the next status plus the effects to perform. Approval is
// reachable only from needs_review; so is rejection. Anything else is an
// InvalidTransition.
func Transition(current model.QueueStatus, action ReviewAction) (model.QueueStatus, []Effect, error) {
	if current != model.QueueNeedsReview {
		return current, nil, eris.Wrapf(model.ErrInvalidTransition,
			"%s not allowed from status %s", action, current)
	}
	switch action {
	case ActionApprove:
		return model.QueueApproved, []Effect{EffectApplyCatalog}, nil
	case ActionReject:
		// Entry is retained for audit; the catalog is untouched.
		return model.QueueRejected, nil, nil
	default:
		return current, nil, eris.Wrapf(model.ErrInvalidTransition, "unknown action %q", action)
	}
}
