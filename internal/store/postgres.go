package store

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/bomsight/bomsight/internal/db"
	"github.com/bomsight/bomsight/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS queue_entries (
	component_id    TEXT PRIMARY KEY,
	mpn             TEXT NOT NULL,
	manufacturer    TEXT NOT NULL DEFAULT '',
	status          TEXT NOT NULL,
	quality_score   INTEGER NOT NULL,
	enrichment_data JSONB NOT NULL,
	original_data   JSONB,
	issues          JSONB,
	sources         JSONB,
	reviewed_by     TEXT,
	reviewed_at     TIMESTAMPTZ,
	version         BIGINT NOT NULL DEFAULT 1,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS catalog_components (
	component_id TEXT PRIMARY KEY,
	mpn          TEXT NOT NULL,
	manufacturer TEXT NOT NULL DEFAULT '',
	doc          JSONB NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS enrichment_history (
	id                TEXT PRIMARY KEY,
	component_id      TEXT NOT NULL,
	mpn               TEXT NOT NULL,
	quality_score     INTEGER NOT NULL,
	sources           JSONB,
	status            TEXT NOT NULL,
	timestamp         TIMESTAMPTZ NOT NULL DEFAULT now(),
	execution_time_ms BIGINT NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS risk_profiles (
	organization_id TEXT PRIMARY KEY,
	profile         JSONB NOT NULL,
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS bom_line_scores (
	id           TEXT PRIMARY KEY,
	bom_id       TEXT NOT NULL,
	line_item_id TEXT NOT NULL,
	doc          JSONB NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE(bom_id, line_item_id)
);

CREATE TABLE IF NOT EXISTS bom_summaries (
	id           TEXT PRIMARY KEY,
	bom_id       TEXT NOT NULL,
	doc          JSONB NOT NULL,
	generated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_queue_status ON queue_entries(status);
CREATE INDEX IF NOT EXISTS idx_history_component ON enrichment_history(component_id);
CREATE INDEX IF NOT EXISTS idx_history_timestamp ON enrichment_history(timestamp);
CREATE INDEX IF NOT EXISTS idx_line_scores_bom ON bom_line_scores(bom_id);
CREATE INDEX IF NOT EXISTS idx_summaries_bom ON bom_summaries(bom_id, generated_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

// --- Review queue ---

func (s *PostgresStore) UpsertQueueEntry(ctx context.Context, entry *model.EnrichmentQueueEntry) error {
	enrichJSON, err := json.Marshal(entry.EnrichmentData)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal enrichment data")
	}
	issuesJSON, err := json.Marshal(entry.Issues)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal issues")
	}
	sourcesJSON, err := json.Marshal(entry.Sources)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal sources")
	}
	var origJSON []byte
	if entry.OriginalData != nil {
		origJSON, err = json.Marshal(entry.OriginalData)
		if err != nil {
			return eris.Wrap(err, "postgres: marshal original data")
		}
	}

	row := s.pool.QueryRow(ctx, `
		INSERT INTO queue_entries
			(component_id, mpn, manufacturer, status, quality_score, enrichment_data, original_data, issues, sources, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 1, now(), now())
		ON CONFLICT (component_id) DO UPDATE SET
			mpn             = excluded.mpn,
			manufacturer    = excluded.manufacturer,
			status          = excluded.status,
			quality_score   = excluded.quality_score,
			enrichment_data = excluded.enrichment_data,
			original_data   = excluded.original_data,
			issues          = excluded.issues,
			sources         = excluded.sources,
			reviewed_by     = NULL,
			reviewed_at     = NULL,
			version         = queue_entries.version + 1,
			updated_at      = now()
		RETURNING version, created_at, updated_at`,
		entry.ComponentID, entry.MPN, entry.Manufacturer, string(entry.Status),
		entry.QualityScore, enrichJSON, nullableBytes(origJSON), issuesJSON, sourcesJSON,
	)
	if err := row.Scan(&entry.Version, &entry.CreatedAt, &entry.UpdatedAt); err != nil {
		return eris.Wrapf(err, "postgres: upsert queue entry %s", entry.ComponentID)
	}
	entry.ReviewedBy = nil
	entry.ReviewedAt = nil
	return nil
}

const queueColumns = `component_id, mpn, manufacturer, status, quality_score,
	enrichment_data, original_data, issues, sources, reviewed_by, reviewed_at,
	version, created_at, updated_at`

func (s *PostgresStore) GetQueueEntry(ctx context.Context, componentID string) (*model.EnrichmentQueueEntry, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+queueColumns+` FROM queue_entries WHERE component_id = $1`, componentID)

	entry, err := scanPgQueueEntry(row)
	if err != nil {
		if eris.Is(err, pgx.ErrNoRows) {
			return nil, eris.Wrapf(model.ErrComponentNotFound, "queue entry %s", componentID)
		}
		return nil, eris.Wrapf(err, "postgres: get queue entry %s", componentID)
	}
	return entry, nil
}

func (s *PostgresStore) ListQueueEntries(ctx context.Context, filter QueueFilter) ([]model.EnrichmentQueueEntry, error) {
	query := `SELECT ` + queueColumns + ` FROM queue_entries`
	var args []any
	if filter.Status != "" {
		query += ` WHERE status = $1`
		args = append(args, string(filter.Status))
	}
	query += ` ORDER BY updated_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ` + itoa(filter.Limit)
		if filter.Offset > 0 {
			query += ` OFFSET ` + itoa(filter.Offset)
		}
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list queue entries")
	}
	defer rows.Close()

	var entries []model.EnrichmentQueueEntry
	for rows.Next() {
		entry, err := scanPgQueueEntry(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan queue entry")
		}
		entries = append(entries, *entry)
	}
	return entries, eris.Wrap(rows.Err(), "postgres: iterate queue entries")
}

func (s *PostgresStore) SetQueueStatus(ctx context.Context, componentID string, version int64, status model.QueueStatus, reviewedBy string, reviewedAt time.Time) error {
	var by any
	var at any
	if reviewedBy != "" {
		by = reviewedBy
		at = reviewedAt.UTC()
	}
	tag, err := s.pool.Exec(ctx, `
		UPDATE queue_entries
		SET status = $1, reviewed_by = $2, reviewed_at = $3, version = version + 1, updated_at = now()
		WHERE component_id = $4 AND version = $5`,
		string(status), by, at, componentID, version,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: set queue status %s", componentID)
	}
	if tag.RowsAffected() == 0 {
		var exists int
		row := s.pool.QueryRow(ctx,
			`SELECT COUNT(1) FROM queue_entries WHERE component_id = $1`, componentID)
		if scanErr := row.Scan(&exists); scanErr != nil {
			return eris.Wrapf(scanErr, "postgres: check queue entry %s", componentID)
		}
		if exists == 0 {
			return eris.Wrapf(model.ErrComponentNotFound, "queue entry %s", componentID)
		}
		return eris.Wrapf(model.ErrConcurrentModification,
			"queue entry %s at version %d", componentID, version)
	}
	return nil
}

// --- Catalog ---

func (s *PostgresStore) PutComponent(ctx context.Context, c *model.CatalogComponent) error {
	doc, err := json.Marshal(c)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal component")
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO catalog_components (component_id, mpn, manufacturer, doc, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (component_id) DO UPDATE SET
			mpn = excluded.mpn, manufacturer = excluded.manufacturer,
			doc = excluded.doc, updated_at = now()`,
		c.ComponentID, c.MPN, c.Manufacturer, doc,
	)
	return eris.Wrapf(err, "postgres: put component %s", c.ComponentID)
}

func (s *PostgresStore) GetComponent(ctx context.Context, componentID string) (*model.CatalogComponent, error) {
	var doc []byte
	row := s.pool.QueryRow(ctx,
		`SELECT doc FROM catalog_components WHERE component_id = $1`, componentID)
	if err := row.Scan(&doc); err != nil {
		if eris.Is(err, pgx.ErrNoRows) {
			return nil, eris.Wrapf(model.ErrComponentNotFound, "catalog component %s", componentID)
		}
		return nil, eris.Wrapf(err, "postgres: get component %s", componentID)
	}
	var c model.CatalogComponent
	if err := json.Unmarshal(doc, &c); err != nil {
		return nil, eris.Wrapf(err, "postgres: unmarshal component %s", componentID)
	}
	return &c, nil
}

func (s *PostgresStore) MergeComponent(ctx context.Context, componentID string, fields map[string]any, qualityScore int, sources []string, enrichedAt time.Time) (*model.CatalogComponent, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: begin merge")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var doc []byte
	row := tx.QueryRow(ctx,
		`SELECT doc FROM catalog_components WHERE component_id = $1 FOR UPDATE`, componentID)
	if err := row.Scan(&doc); err != nil {
		if eris.Is(err, pgx.ErrNoRows) {
			return nil, eris.Wrapf(model.ErrComponentNotFound, "catalog component %s", componentID)
		}
		return nil, eris.Wrapf(err, "postgres: load component %s", componentID)
	}

	var c model.CatalogComponent
	if err := json.Unmarshal(doc, &c); err != nil {
		return nil, eris.Wrapf(err, "postgres: unmarshal component %s", componentID)
	}

	c.MergeEnrichment(fields)
	at := enrichedAt.UTC()
	c.EnrichmentStatus = model.EnrichmentEnriched
	c.LastEnrichedAt = &at
	c.EnrichmentQualityScore = qualityScore
	c.EnrichmentSources = sources

	updated, err := json.Marshal(&c)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal merged component")
	}
	if _, err := tx.Exec(ctx,
		`UPDATE catalog_components SET doc = $1, updated_at = now() WHERE component_id = $2`,
		updated, componentID,
	); err != nil {
		return nil, eris.Wrapf(err, "postgres: store merged component %s", componentID)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, eris.Wrap(err, "postgres: commit merge")
	}
	return &c, nil
}

func (s *PostgresStore) SetEnrichmentStatus(ctx context.Context, componentID string, status model.EnrichmentStatus) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE catalog_components
		SET doc = jsonb_set(doc, '{enrichment_status}', to_jsonb($1::text)), updated_at = now()
		WHERE component_id = $2`,
		string(status), componentID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: set enrichment status %s", componentID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrapf(model.ErrComponentNotFound, "catalog component %s", componentID)
	}
	return nil
}

// --- Audit history ---

func (s *PostgresStore) AppendHistory(ctx context.Context, entry *model.EnrichmentHistoryEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	sourcesJSON, err := json.Marshal(entry.SourcesSuccessful)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal sources")
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO enrichment_history
			(id, component_id, mpn, quality_score, sources, status, timestamp, execution_time_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.ID, entry.ComponentID, entry.MPN, entry.QualityScore,
		sourcesJSON, string(entry.Status), entry.Timestamp.UTC(), entry.ExecutionTimeMS,
	)
	return eris.Wrapf(err, "postgres: append history for %s", entry.ComponentID)
}

func (s *PostgresStore) ListHistory(ctx context.Context, filter HistoryFilter) ([]model.EnrichmentHistoryEntry, error) {
	query := `
		SELECT id, component_id, mpn, quality_score, sources, status, timestamp, execution_time_ms
		FROM enrichment_history WHERE 1=1`
	var args []any
	argNum := 1
	if filter.ComponentID != "" {
		query += ` AND component_id = $` + itoa(argNum)
		args = append(args, filter.ComponentID)
		argNum++
	}
	if !filter.Since.IsZero() {
		query += ` AND timestamp >= $` + itoa(argNum)
		args = append(args, filter.Since.UTC())
		argNum++
	}
	query += ` ORDER BY timestamp DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ` + itoa(filter.Limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list history")
	}
	defer rows.Close()

	var entries []model.EnrichmentHistoryEntry
	for rows.Next() {
		var e model.EnrichmentHistoryEntry
		var sources []byte
		if err := rows.Scan(&e.ID, &e.ComponentID, &e.MPN, &e.QualityScore,
			&sources, &e.Status, &e.Timestamp, &e.ExecutionTimeMS); err != nil {
			return nil, eris.Wrap(err, "postgres: scan history entry")
		}
		if len(sources) > 0 {
			if err := json.Unmarshal(sources, &e.SourcesSuccessful); err != nil {
				return nil, eris.Wrap(err, "postgres: unmarshal sources")
			}
		}
		entries = append(entries, e)
	}
	return entries, eris.Wrap(rows.Err(), "postgres: iterate history")
}

// --- Risk profiles ---

func (s *PostgresStore) GetRiskProfile(ctx context.Context, organizationID string) (*model.RiskProfile, error) {
	var doc []byte
	row := s.pool.QueryRow(ctx,
		`SELECT profile FROM risk_profiles WHERE organization_id = $1`, organizationID)
	if err := row.Scan(&doc); err != nil {
		if eris.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "postgres: get risk profile %s", organizationID)
	}
	var p model.RiskProfile
	if err := json.Unmarshal(doc, &p); err != nil {
		return nil, eris.Wrapf(err, "postgres: unmarshal risk profile %s", organizationID)
	}
	return &p, nil
}

func (s *PostgresStore) PutRiskProfile(ctx context.Context, profile *model.RiskProfile) error {
	profile.UpdatedAt = time.Now().UTC()
	doc, err := json.Marshal(profile)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal risk profile")
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO risk_profiles (organization_id, profile, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (organization_id) DO UPDATE SET
			profile = excluded.profile, updated_at = excluded.updated_at`,
		profile.OrganizationID, doc, profile.UpdatedAt,
	)
	return eris.Wrapf(err, "postgres: put risk profile %s", profile.OrganizationID)
}

// --- BOM line items ---

func (s *PostgresStore) ListLineItemsForBom(ctx context.Context, bomID string) ([]model.BomLineItemRiskScore, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT doc FROM bom_line_scores WHERE bom_id = $1 ORDER BY line_item_id`, bomID)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: list line items for %s", bomID)
	}
	defer rows.Close()

	var items []model.BomLineItemRiskScore
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, eris.Wrap(err, "postgres: scan line item")
		}
		var item model.BomLineItemRiskScore
		if err := json.Unmarshal(doc, &item); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal line item")
		}
		items = append(items, item)
	}
	return items, eris.Wrap(rows.Err(), "postgres: iterate line items")
}

func (s *PostgresStore) GetLineItem(ctx context.Context, bomID, lineItemID string) (*model.BomLineItemRiskScore, error) {
	var doc []byte
	row := s.pool.QueryRow(ctx,
		`SELECT doc FROM bom_line_scores WHERE bom_id = $1 AND line_item_id = $2`, bomID, lineItemID)
	if err := row.Scan(&doc); err != nil {
		if eris.Is(err, pgx.ErrNoRows) {
			return nil, eris.Wrapf(model.ErrComponentNotFound, "line item %s/%s", bomID, lineItemID)
		}
		return nil, eris.Wrapf(err, "postgres: get line item %s/%s", bomID, lineItemID)
	}
	var item model.BomLineItemRiskScore
	if err := json.Unmarshal(doc, &item); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal line item")
	}
	return &item, nil
}

func (s *PostgresStore) SaveLineItemScore(ctx context.Context, item *model.BomLineItemRiskScore) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	doc, err := json.Marshal(item)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal line item")
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO bom_line_scores (id, bom_id, line_item_id, doc, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (bom_id, line_item_id) DO UPDATE SET
			doc = excluded.doc, updated_at = now()`,
		item.ID, item.BomID, item.LineItemID, doc,
	)
	return eris.Wrapf(err, "postgres: save line item %s/%s", item.BomID, item.LineItemID)
}

// --- BOM summaries ---

func (s *PostgresStore) GetPreviousSummary(ctx context.Context, bomID string, olderThan time.Time) (*model.BomRiskSummary, error) {
	return s.querySummary(ctx,
		`SELECT doc FROM bom_summaries WHERE bom_id = $1 AND generated_at <= $2 ORDER BY generated_at DESC LIMIT 1`,
		bomID, olderThan.UTC())
}

func (s *PostgresStore) GetLatestSummary(ctx context.Context, bomID string) (*model.BomRiskSummary, error) {
	return s.querySummary(ctx,
		`SELECT doc FROM bom_summaries WHERE bom_id = $1 ORDER BY generated_at DESC LIMIT 1`,
		bomID)
}

func (s *PostgresStore) querySummary(ctx context.Context, query string, args ...any) (*model.BomRiskSummary, error) {
	var doc []byte
	row := s.pool.QueryRow(ctx, query, args...)
	if err := row.Scan(&doc); err != nil {
		if eris.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrap(err, "postgres: query summary")
	}
	var summary model.BomRiskSummary
	if err := json.Unmarshal(doc, &summary); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal summary")
	}
	return &summary, nil
}

func (s *PostgresStore) SaveSummary(ctx context.Context, summary *model.BomRiskSummary) error {
	if summary.ID == "" {
		summary.ID = uuid.New().String()
	}
	doc, err := json.Marshal(summary)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal summary")
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO bom_summaries (id, bom_id, doc, generated_at)
		VALUES ($1, $2, $3, $4)`,
		summary.ID, summary.BomID, doc, summary.GeneratedAt.UTC(),
	)
	return eris.Wrapf(err, "postgres: save summary for %s", summary.BomID)
}

// --- helpers ---

func scanPgQueueEntry(row pgx.Row) (*model.EnrichmentQueueEntry, error) {
	var e model.EnrichmentQueueEntry
	var status string
	var enrichJSON []byte
	var origJSON, issuesJSON, sourcesJSON []byte
	var reviewedBy *string
	var reviewedAt *time.Time

	err := row.Scan(&e.ComponentID, &e.MPN, &e.Manufacturer, &status, &e.QualityScore,
		&enrichJSON, &origJSON, &issuesJSON, &sourcesJSON, &reviewedBy, &reviewedAt,
		&e.Version, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}

	e.Status = model.QueueStatus(status)
	if err := json.Unmarshal(enrichJSON, &e.EnrichmentData); err != nil {
		return nil, eris.Wrap(err, "unmarshal enrichment data")
	}
	if len(origJSON) > 0 {
		if err := json.Unmarshal(origJSON, &e.OriginalData); err != nil {
			return nil, eris.Wrap(err, "unmarshal original data")
		}
	}
	if len(issuesJSON) > 0 {
		if err := json.Unmarshal(issuesJSON, &e.Issues); err != nil {
			return nil, eris.Wrap(err, "unmarshal issues")
		}
	}
	if len(sourcesJSON) > 0 {
		if err := json.Unmarshal(sourcesJSON, &e.Sources); err != nil {
			return nil, eris.Wrap(err, "unmarshal sources")
		}
	}
	e.ReviewedBy = reviewedBy
	e.ReviewedAt = reviewedAt
	return &e, nil
}

func nullableBytes(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return b
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
