// Package monitoring builds point-in-time operational snapshots of the
// enrichment pipeline for the status command and the HTTP surface.
package monitoring

import (
	"context"
	"math"
	"time"

	"github.com/rotisserie/eris"

	"github.com/bomsight/bomsight/internal/model"
	"github.com/bomsight/bomsight/internal/store"
)

// MetricsSnapshot holds a point-in-time view of pipeline health.
type MetricsSnapshot struct {
	// Queue depth by status.
	QueuePending     int `json:"queue_pending"`
	QueueNeedsReview int `json:"queue_needs_review"`
	QueueApproved    int `json:"queue_approved"`
	QueueRejected    int `json:"queue_rejected"`

	// Enrichment attempts within the lookback window.
	AttemptsTotal       int     `json:"attempts_total"`
	AttemptsCompleted   int     `json:"attempts_completed"`
	AttemptsNeedsReview int     `json:"attempts_needs_review"`
	AttemptsRejected    int     `json:"attempts_rejected"`
	AttemptsErrored     int     `json:"attempts_errored"`
	AttemptFailRate     float64 `json:"attempt_fail_rate"`
	AvgQualityScore     float64 `json:"avg_quality_score"`
	AvgExecutionMS      int64   `json:"avg_execution_ms"`

	// Metadata.
	LookbackHours int       `json:"lookback_hours"`
	CollectedAt   time.Time `json:"collected_at"`
}

// Collector gathers metrics from the store.
type Collector struct {
	store store.Store
}

// NewCollector creates a metrics collector.
func NewCollector(st store.Store) *Collector {
	return &Collector{store: st}
}

// Collect gathers a snapshot over the given lookback window.
func (c *Collector) Collect(ctx context.Context, lookbackHours int) (*MetricsSnapshot, error) {
	snap := &MetricsSnapshot{
		LookbackHours: lookbackHours,
		CollectedAt:   time.Now().UTC(),
	}

	for _, status := range []model.QueueStatus{
		model.QueuePending, model.QueueNeedsReview, model.QueueApproved, model.QueueRejected,
	} {
		entries, err := c.store.ListQueueEntries(ctx, store.QueueFilter{Status: status, Limit: 10000})
		if err != nil {
			return nil, eris.Wrapf(err, "monitoring: list queue %s", status)
		}
		switch status {
		case model.QueuePending:
			snap.QueuePending = len(entries)
		case model.QueueNeedsReview:
			snap.QueueNeedsReview = len(entries)
		case model.QueueApproved:
			snap.QueueApproved = len(entries)
		case model.QueueRejected:
			snap.QueueRejected = len(entries)
		}
	}

	cutoff := time.Now().UTC().Add(-time.Duration(lookbackHours) * time.Hour)
	history, err := c.store.ListHistory(ctx, store.HistoryFilter{Since: cutoff, Limit: 10000})
	if err != nil {
		return nil, eris.Wrap(err, "monitoring: list history")
	}

	snap.AttemptsTotal = len(history)
	var scoreSum float64
	var execSum int64
	for _, h := range history {
		switch h.Status {
		case model.HistoryCompleted:
			snap.AttemptsCompleted++
		case model.HistoryNeedsReview:
			snap.AttemptsNeedsReview++
		case model.HistoryRejected:
			snap.AttemptsRejected++
		case model.HistoryError:
			snap.AttemptsErrored++
		}
		scoreSum += float64(h.QualityScore)
		execSum += h.ExecutionTimeMS
	}

	if snap.AttemptsTotal > 0 {
		snap.AttemptFailRate = math.Round(float64(snap.AttemptsErrored)/float64(snap.AttemptsTotal)*10000) / 10000
		snap.AvgQualityScore = math.Round(scoreSum/float64(snap.AttemptsTotal)*100) / 100
		snap.AvgExecutionMS = execSum / int64(snap.AttemptsTotal)
	}
	return snap, nil
}
