package monitoring

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bomsight/bomsight/internal/model"
	"github.com/bomsight/bomsight/internal/store"
)

func newTestCollector(t *testing.T) (*Collector, store.Store) {
	t.Helper()
	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return NewCollector(st), st
}

func TestCollect_Empty(t *testing.T) {
	c, _ := newTestCollector(t)

	snap, err := c.Collect(context.Background(), 24)
	require.NoError(t, err)
	assert.Equal(t, 0, snap.QueueNeedsReview)
	assert.Equal(t, 0, snap.AttemptsTotal)
	assert.Equal(t, 0.0, snap.AttemptFailRate)
	assert.Equal(t, 24, snap.LookbackHours)
	assert.False(t, snap.CollectedAt.IsZero())
}

func TestCollect_QueueAndHistory(t *testing.T) {
	c, st := newTestCollector(t)
	ctx := context.Background()

	for i, status := range []model.QueueStatus{
		model.QueueNeedsReview, model.QueueNeedsReview, model.QueueApproved, model.QueueRejected,
	} {
		require.NoError(t, st.UpsertQueueEntry(ctx, &model.EnrichmentQueueEntry{
			ComponentID:    "cmp-" + string(rune('a'+i)),
			MPN:            "MPN",
			Status:         status,
			QualityScore:   80,
			EnrichmentData: map[string]any{},
		}))
	}

	now := time.Now().UTC()
	attempts := []struct {
		status model.HistoryStatus
		score  int
		ms     int64
		at     time.Time
	}{
		{model.HistoryCompleted, 96, 10, now},
		{model.HistoryNeedsReview, 85, 20, now},
		{model.HistoryRejected, 40, 30, now},
		{model.HistoryError, 0, 40, now},
		// Outside the lookback window: ignored.
		{model.HistoryCompleted, 100, 50, now.Add(-48 * time.Hour)},
	}
	for _, a := range attempts {
		require.NoError(t, st.AppendHistory(ctx, &model.EnrichmentHistoryEntry{
			ComponentID: "cmp-a", MPN: "MPN", QualityScore: a.score,
			Status: a.status, Timestamp: a.at, ExecutionTimeMS: a.ms,
		}))
	}

	snap, err := c.Collect(ctx, 24)
	require.NoError(t, err)

	assert.Equal(t, 2, snap.QueueNeedsReview)
	assert.Equal(t, 1, snap.QueueApproved)
	assert.Equal(t, 1, snap.QueueRejected)
	assert.Equal(t, 0, snap.QueuePending)

	assert.Equal(t, 4, snap.AttemptsTotal)
	assert.Equal(t, 1, snap.AttemptsCompleted)
	assert.Equal(t, 1, snap.AttemptsNeedsReview)
	assert.Equal(t, 1, snap.AttemptsRejected)
	assert.Equal(t, 1, snap.AttemptsErrored)
	assert.InDelta(t, 0.25, snap.AttemptFailRate, 1e-9)
	assert.InDelta(t, (96+85+40+0)/4.0, snap.AvgQualityScore, 0.01)
	assert.Equal(t, int64(25), snap.AvgExecutionMS)
}
