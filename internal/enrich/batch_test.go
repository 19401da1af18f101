package enrich

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bomsight/bomsight/internal/config"
	"github.com/bomsight/bomsight/internal/model"
	"github.com/bomsight/bomsight/internal/router"
	"github.com/bomsight/bomsight/internal/store"
)

func newTestBatch(t *testing.T) (*Batch, store.Store) {
	t.Helper()
	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))

	r := router.New(st, nil, router.Config{})
	return NewBatch(r, config.BatchConfig{MaxConcurrent: 4}), st
}

func seedComponents(t *testing.T, st store.Store, ids ...string) {
	t.Helper()
	for _, id := range ids {
		require.NoError(t, st.PutComponent(context.Background(), &model.CatalogComponent{
			ComponentID: id, MPN: "MPN-" + id, Manufacturer: "Acme Semi",
		}))
	}
}

func goodCandidate(id string) model.EnrichedCandidate {
	return model.EnrichedCandidate{
		ComponentID: id, MPN: "MPN-" + id, Manufacturer: "Acme Semi",
		Fields: map[string]any{
			"description":                "Test part",
			"datasheet_url":              "https://acme.example.com/ds.pdf",
			"lifecycle_status":           "active",
			"package_type":               "SOIC-8",
			"rohs_compliant":             true,
			"lead_time_days":             float64(14),
			"unit_price":                 1.25,
			"stock_qty":                  float64(8000),
			"image_url":                  "https://acme.example.com/img.png",
			"reach_compliant":            true,
			"aec_qualified":              true,
			"supplier_count":             float64(5),
			"obsolescence_horizon_years": float64(6),
		},
		Sources: []string{"octopart"},
	}
}

func TestBatch_Run_MixedOutcomes(t *testing.T) {
	b, st := newTestBatch(t)
	ctx := context.Background()
	seedComponents(t, st, "a", "b", "c")

	review := goodCandidate("b")
	delete(review.Fields, "image_url")
	delete(review.Fields, "reach_compliant")
	low := goodCandidate("c")
	low.Fields = map[string]any{"description": "thin"}
	bad := model.EnrichedCandidate{ComponentID: "d", MPN: "MPN-d"} // nil fields

	summary, err := b.Run(ctx, NewSliceSource([]model.EnrichedCandidate{
		goodCandidate("a"), review, low, bad,
	}), 0)
	require.NoError(t, err)

	assert.Equal(t, 4, summary.Processed)
	assert.Equal(t, 1, summary.Promoted)
	assert.Equal(t, 1, summary.Queued)
	assert.Equal(t, 1, summary.Rejected)
	assert.Equal(t, 1, summary.Failed)
	assert.Len(t, summary.Items, 4)

	// One item's failure never aborts the batch; the failed item carries
	// its error.
	var failed *ItemResult
	for i := range summary.Items {
		if summary.Items[i].Err != nil {
			failed = &summary.Items[i]
		}
	}
	require.NotNil(t, failed)
	assert.Equal(t, "d", failed.ComponentID)
	assert.NotEmpty(t, failed.ErrMsg)
}

func TestBatch_Run_Limit(t *testing.T) {
	b, st := newTestBatch(t)
	seedComponents(t, st, "a", "b", "c")

	summary, err := b.Run(context.Background(), NewSliceSource([]model.EnrichedCandidate{
		goodCandidate("a"), goodCandidate("b"), goodCandidate("c"),
	}), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Processed)
}

func TestBatch_Run_Empty(t *testing.T) {
	b, _ := newTestBatch(t)

	summary, err := b.Run(context.Background(), NewSliceSource(nil), 0)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Processed)
	assert.Empty(t, summary.Items)
}

func TestBatch_Run_Canceled(t *testing.T) {
	b, _ := newTestBatch(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.Run(ctx, NewSliceSource([]model.EnrichedCandidate{goodCandidate("a")}), 0)
	require.Error(t, err)
}

func TestOpenJSONFile_Array(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cands.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"component_id": "a", "mpn": "MPN-a", "fields": {"description": "x"}},
		{"component_id": "b", "mpn": "MPN-b", "fields": {"description": "y"}}
	]`), 0o644))

	src, err := OpenJSONFile(path)
	require.NoError(t, err)
	defer src.Close()

	first, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, "a", first.ComponentID)
	second, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, "b", second.ComponentID)

	_, err = src.Next()
	assert.Error(t, err) // io.EOF
}

func TestOpenJSONFile_ConcatenatedObjects(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cands.ndjson")
	require.NoError(t, os.WriteFile(path, []byte(
		`{"component_id": "a", "mpn": "MPN-a", "fields": {}}
{"component_id": "b", "mpn": "MPN-b", "fields": {}}
`), 0o644))

	src, err := OpenJSONFile(path)
	require.NoError(t, err)
	defer src.Close()

	var ids []string
	for {
		c, err := src.Next()
		if err != nil {
			break
		}
		ids = append(ids, c.ComponentID)
	}
	assert.Equal(t, []string{"a", "b"}, ids)
}

func TestNewBatch_RateLimiterOptional(t *testing.T) {
	b := NewBatch(nil, config.BatchConfig{MaxConcurrent: 2, RatePerSecond: 50})
	require.NotNil(t, b.limiter)
	assert.Equal(t, 2, b.cfg.MaxConcurrent)

	start := time.Now()
	_ = b.limiter.Wait(context.Background())
	assert.Less(t, time.Since(start), time.Second)
}
