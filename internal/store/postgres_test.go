package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bomsight/bomsight/internal/model"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	s := &PostgresStore{pool: mock}
	return s, mock
}

func TestPostgresStore_GetQueueEntry_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT .* FROM queue_entries WHERE component_id = \$1`).
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetQueueEntry(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, eris.Is(err, model.ErrComponentNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpsertQueueEntry(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`INSERT INTO queue_entries`).
		WithArgs("cmp-1", "LM317T", "Texas Instruments", "needs_review", 82,
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"version", "created_at", "updated_at"}).
			AddRow(int64(2), now, now))

	entry := testQueueEntry("cmp-1")
	require.NoError(t, s.UpsertQueueEntry(context.Background(), entry))
	assert.Equal(t, int64(2), entry.Version)
	assert.Nil(t, entry.ReviewedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SetQueueStatus_OK(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`UPDATE queue_entries`).
		WithArgs("approved", "alex", pgxmock.AnyArg(), "cmp-1", int64(3)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := s.SetQueueStatus(context.Background(), "cmp-1", 3, model.QueueApproved, "alex", time.Now())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SetQueueStatus_StaleVersion(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`UPDATE queue_entries`).
		WithArgs("approved", "alex", pgxmock.AnyArg(), "cmp-1", int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectQuery(`SELECT COUNT\(1\) FROM queue_entries`).
		WithArgs("cmp-1").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))

	err := s.SetQueueStatus(context.Background(), "cmp-1", 1, model.QueueApproved, "alex", time.Now())
	require.Error(t, err)
	assert.True(t, eris.Is(err, model.ErrConcurrentModification))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SetQueueStatus_Missing(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`UPDATE queue_entries`).
		WithArgs("approved", "alex", pgxmock.AnyArg(), "ghost", int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectQuery(`SELECT COUNT\(1\) FROM queue_entries`).
		WithArgs("ghost").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))

	err := s.SetQueueStatus(context.Background(), "ghost", 1, model.QueueApproved, "alex", time.Now())
	require.Error(t, err)
	assert.True(t, eris.Is(err, model.ErrComponentNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetComponent_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT doc FROM catalog_components`).
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetComponent(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, eris.Is(err, model.ErrComponentNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_MergeComponent(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	existing, err := json.Marshal(&model.CatalogComponent{
		ComponentID: "cmp-1",
		MPN:         "LM317T",
		ImageURL:    "https://ti.com/img/lm317.png",
	})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT doc FROM catalog_components WHERE component_id = \$1 FOR UPDATE`).
		WithArgs("cmp-1").
		WillReturnRows(pgxmock.NewRows([]string{"doc"}).AddRow(existing))
	mock.ExpectExec(`UPDATE catalog_components SET doc = \$1`).
		WithArgs(pgxmock.AnyArg(), "cmp-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	merged, err := s.MergeComponent(context.Background(), "cmp-1",
		map[string]any{"description": "Adjustable linear regulator"}, 88, []string{"octopart"}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "Adjustable linear regulator", merged.Description)
	assert.Equal(t, "https://ti.com/img/lm317.png", merged.ImageURL)
	assert.Equal(t, model.EnrichmentEnriched, merged.EnrichmentStatus)
	assert.Equal(t, 88, merged.EnrichmentQualityScore)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SetEnrichmentStatus_Missing(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`UPDATE catalog_components`).
		WithArgs("failed", "ghost").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := s.SetEnrichmentStatus(context.Background(), "ghost", model.EnrichmentFailed)
	require.Error(t, err)
	assert.True(t, eris.Is(err, model.ErrComponentNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetRiskProfile_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT profile FROM risk_profiles`).
		WithArgs("org-1").
		WillReturnError(pgx.ErrNoRows)

	p, err := s.GetRiskProfile(context.Background(), "org-1")
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_AppendHistory_AssignsID(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO enrichment_history`).
		WithArgs(pgxmock.AnyArg(), "cmp-1", "LM317T", 82, pgxmock.AnyArg(),
			"completed", pgxmock.AnyArg(), int64(15)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	entry := &model.EnrichmentHistoryEntry{
		ComponentID:     "cmp-1",
		MPN:             "LM317T",
		QualityScore:    82,
		Status:          model.HistoryCompleted,
		ExecutionTimeMS: 15,
	}
	require.NoError(t, s.AppendHistory(context.Background(), entry))
	assert.NotEmpty(t, entry.ID)
	assert.False(t, entry.Timestamp.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetPreviousSummary_None(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT doc FROM bom_summaries WHERE bom_id = \$1 AND generated_at <= \$2`).
		WithArgs("bom-1", pgxmock.AnyArg()).
		WillReturnError(pgx.ErrNoRows)

	summary, err := s.GetPreviousSummary(context.Background(), "bom-1", time.Now())
	require.NoError(t, err)
	assert.Nil(t, summary)
	assert.NoError(t, mock.ExpectationsWereMet())
}
