package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/bomsight/bomsight/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS queue_entries (
	component_id    TEXT PRIMARY KEY,
	mpn             TEXT NOT NULL,
	manufacturer    TEXT NOT NULL DEFAULT '',
	status          TEXT NOT NULL,
	quality_score   INTEGER NOT NULL,
	enrichment_data TEXT NOT NULL,
	original_data   TEXT,
	issues          TEXT,
	sources         TEXT,
	reviewed_by     TEXT,
	reviewed_at     DATETIME,
	version         INTEGER NOT NULL DEFAULT 1,
	created_at      DATETIME NOT NULL,
	updated_at      DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS catalog_components (
	component_id TEXT PRIMARY KEY,
	mpn          TEXT NOT NULL,
	manufacturer TEXT NOT NULL DEFAULT '',
	doc          TEXT NOT NULL,
	updated_at   DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS enrichment_history (
	id                TEXT PRIMARY KEY,
	component_id      TEXT NOT NULL,
	mpn               TEXT NOT NULL,
	quality_score     INTEGER NOT NULL,
	sources           TEXT,
	status            TEXT NOT NULL,
	timestamp         DATETIME NOT NULL,
	execution_time_ms INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS risk_profiles (
	organization_id TEXT PRIMARY KEY,
	profile         TEXT NOT NULL,
	updated_at      DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS bom_line_scores (
	id           TEXT PRIMARY KEY,
	bom_id       TEXT NOT NULL,
	line_item_id TEXT NOT NULL,
	doc          TEXT NOT NULL,
	updated_at   DATETIME NOT NULL,
	UNIQUE(bom_id, line_item_id)
);

CREATE TABLE IF NOT EXISTS bom_summaries (
	id           TEXT PRIMARY KEY,
	bom_id       TEXT NOT NULL,
	doc          TEXT NOT NULL,
	generated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_queue_status ON queue_entries(status);
CREATE INDEX IF NOT EXISTS idx_history_component ON enrichment_history(component_id);
CREATE INDEX IF NOT EXISTS idx_history_timestamp ON enrichment_history(timestamp);
CREATE INDEX IF NOT EXISTS idx_line_scores_bom ON bom_line_scores(bom_id);
CREATE INDEX IF NOT EXISTS idx_summaries_bom ON bom_summaries(bom_id, generated_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// --- Review queue ---

func (s *SQLiteStore) UpsertQueueEntry(ctx context.Context, entry *model.EnrichmentQueueEntry) error {
	enrichJSON, err := json.Marshal(entry.EnrichmentData)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal enrichment data")
	}
	issuesJSON, err := json.Marshal(entry.Issues)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal issues")
	}
	sourcesJSON, err := json.Marshal(entry.Sources)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal sources")
	}
	var origJSON []byte
	if entry.OriginalData != nil {
		origJSON, err = json.Marshal(entry.OriginalData)
		if err != nil {
			return eris.Wrap(err, "sqlite: marshal original data")
		}
	}

	now := time.Now().UTC()
	// Re-enrichment overwrites score/data/issues in place and resets any
	// review progress; the version bump invalidates in-flight reviewer CAS.
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO queue_entries
			(component_id, mpn, manufacturer, status, quality_score, enrichment_data, original_data, issues, sources, version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?, ?)
		ON CONFLICT(component_id) DO UPDATE SET
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
			updated_at      = excluded.updated_at`,
		entry.ComponentID, entry.MPN, entry.Manufacturer, string(entry.Status),
		entry.QualityScore, string(enrichJSON), nullableString(origJSON),
		string(issuesJSON), string(sourcesJSON), now, now,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: upsert queue entry %s", entry.ComponentID)
	}

	// Read back the authoritative version for the caller's CAS.
	row := s.db.QueryRowContext(ctx,
		`SELECT version, created_at, updated_at FROM queue_entries WHERE component_id = ?`,
		entry.ComponentID,
	)
	if err := row.Scan(&entry.Version, &entry.CreatedAt, &entry.UpdatedAt); err != nil {
		return eris.Wrapf(err, "sqlite: read back queue entry %s", entry.ComponentID)
	}
	entry.ReviewedBy = nil
	entry.ReviewedAt = nil
	return nil
}

func (s *SQLiteStore) GetQueueEntry(ctx context.Context, componentID string) (*model.EnrichmentQueueEntry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT component_id, mpn, manufacturer, status, quality_score,
		       enrichment_data, original_data, issues, sources, reviewed_by, reviewed_at,
		       version, created_at, updated_at
		FROM queue_entries WHERE component_id = ?`, componentID)

	entry, err := scanQueueEntry(row)
	if err != nil {
		if eris.Is(err, sql.ErrNoRows) {
			return nil, eris.Wrapf(model.ErrComponentNotFound, "queue entry %s", componentID)
		}
		return nil, eris.Wrapf(err, "sqlite: get queue entry %s", componentID)
	}
	return entry, nil
}

func (s *SQLiteStore) ListQueueEntries(ctx context.Context, filter QueueFilter) ([]model.EnrichmentQueueEntry, error) {
	query := `
		SELECT component_id, mpn, manufacturer, status, quality_score,
		       enrichment_data, original_data, issues, sources, reviewed_by, reviewed_at,
		       version, created_at, updated_at
		FROM queue_entries`
	var args []any
	if filter.Status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(filter.Status))
	}
	query += ` ORDER BY updated_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += ` OFFSET ?`
			args = append(args, filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list queue entries")
	}
	defer rows.Close()

	var entries []model.EnrichmentQueueEntry
	for rows.Next() {
		entry, err := scanQueueEntry(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan queue entry")
		}
		entries = append(entries, *entry)
	}
	return entries, eris.Wrap(rows.Err(), "sqlite: iterate queue entries")
}

func (s *SQLiteStore) SetQueueStatus(ctx context.Context, componentID string, version int64, status model.QueueStatus, reviewedBy string, reviewedAt time.Time) error {
	var by, at any
	if reviewedBy != "" {
		by = reviewedBy
		at = reviewedAt.UTC()
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE queue_entries
		SET status = ?, reviewed_by = ?, reviewed_at = ?, version = version + 1, updated_at = ?
		WHERE component_id = ? AND version = ?`,
		string(status), by, at, time.Now().UTC(), componentID, version,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: set queue status %s", componentID)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		// Distinguish a lost CAS from a missing row.
		var exists int
		row := s.db.QueryRowContext(ctx,
			`SELECT COUNT(1) FROM queue_entries WHERE component_id = ?`, componentID)
		if scanErr := row.Scan(&exists); scanErr != nil {
			return eris.Wrapf(scanErr, "sqlite: check queue entry %s", componentID)
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

func (s *SQLiteStore) PutComponent(ctx context.Context, c *model.CatalogComponent) error {
	doc, err := json.Marshal(c)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal component")
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO catalog_components (component_id, mpn, manufacturer, doc, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(component_id) DO UPDATE SET
			mpn = excluded.mpn, manufacturer = excluded.manufacturer,
			doc = excluded.doc, updated_at = excluded.updated_at`,
		c.ComponentID, c.MPN, c.Manufacturer, string(doc), time.Now().UTC(),
	)
	return eris.Wrapf(err, "sqlite: put component %s", c.ComponentID)
}

func (s *SQLiteStore) GetComponent(ctx context.Context, componentID string) (*model.CatalogComponent, error) {
	var doc string
	row := s.db.QueryRowContext(ctx,
		`SELECT doc FROM catalog_components WHERE component_id = ?`, componentID)
	if err := row.Scan(&doc); err != nil {
		if eris.Is(err, sql.ErrNoRows) {
			return nil, eris.Wrapf(model.ErrComponentNotFound, "catalog component %s", componentID)
		}
		return nil, eris.Wrapf(err, "sqlite: get component %s", componentID)
	}
	var c model.CatalogComponent
	if err := json.Unmarshal([]byte(doc), &c); err != nil {
		return nil, eris.Wrapf(err, "sqlite: unmarshal component %s", componentID)
	}
	return &c, nil
}

func (s *SQLiteStore) MergeComponent(ctx context.Context, componentID string, fields map[string]any, qualityScore int, sources []string, enrichedAt time.Time) (*model.CatalogComponent, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: begin merge")
	}
	defer tx.Rollback() //nolint:errcheck

	var doc string
	row := tx.QueryRowContext(ctx,
		`SELECT doc FROM catalog_components WHERE component_id = ?`, componentID)
	if err := row.Scan(&doc); err != nil {
		if eris.Is(err, sql.ErrNoRows) {
			return nil, eris.Wrapf(model.ErrComponentNotFound, "catalog component %s", componentID)
		}
		return nil, eris.Wrapf(err, "sqlite: load component %s", componentID)
	}

	var c model.CatalogComponent
	if err := json.Unmarshal([]byte(doc), &c); err != nil {
		return nil, eris.Wrapf(err, "sqlite: unmarshal component %s", componentID)
	}

	c.MergeEnrichment(fields)
	at := enrichedAt.UTC()
	c.EnrichmentStatus = model.EnrichmentEnriched
	c.LastEnrichedAt = &at
	c.EnrichmentQualityScore = qualityScore
	c.EnrichmentSources = sources

	updated, err := json.Marshal(&c)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal merged component")
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE catalog_components SET doc = ?, updated_at = ? WHERE component_id = ?`,
		string(updated), time.Now().UTC(), componentID,
	); err != nil {
		return nil, eris.Wrapf(err, "sqlite: store merged component %s", componentID)
	}

	if err := tx.Commit(); err != nil {
		return nil, eris.Wrap(err, "sqlite: commit merge")
	}
	return &c, nil
}

func (s *SQLiteStore) SetEnrichmentStatus(ctx context.Context, componentID string, status model.EnrichmentStatus) error {
	c, err := s.GetComponent(ctx, componentID)
	if err != nil {
		return err
	}
	c.EnrichmentStatus = status
	return s.PutComponent(ctx, c)
}

// --- Audit history ---

func (s *SQLiteStore) AppendHistory(ctx context.Context, entry *model.EnrichmentHistoryEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	sourcesJSON, err := json.Marshal(entry.SourcesSuccessful)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal sources")
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO enrichment_history
			(id, component_id, mpn, quality_score, sources, status, timestamp, execution_time_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.ComponentID, entry.MPN, entry.QualityScore,
		string(sourcesJSON), string(entry.Status), entry.Timestamp.UTC(), entry.ExecutionTimeMS,
	)
	return eris.Wrapf(err, "sqlite: append history for %s", entry.ComponentID)
}

func (s *SQLiteStore) ListHistory(ctx context.Context, filter HistoryFilter) ([]model.EnrichmentHistoryEntry, error) {
	query := `
		SELECT id, component_id, mpn, quality_score, sources, status, timestamp, execution_time_ms
		FROM enrichment_history WHERE 1=1`
	var args []any
	if filter.ComponentID != "" {
		query += ` AND component_id = ?`
		args = append(args, filter.ComponentID)
	}
	if !filter.Since.IsZero() {
		query += ` AND timestamp >= ?`
		args = append(args, filter.Since.UTC())
	}
	query += ` ORDER BY timestamp DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list history")
	}
	defer rows.Close()

	var entries []model.EnrichmentHistoryEntry
	for rows.Next() {
		var e model.EnrichmentHistoryEntry
		var sources sql.NullString
		if err := rows.Scan(&e.ID, &e.ComponentID, &e.MPN, &e.QualityScore,
			&sources, &e.Status, &e.Timestamp, &e.ExecutionTimeMS); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan history entry")
		}
		if sources.Valid && sources.String != "" {
			if err := json.Unmarshal([]byte(sources.String), &e.SourcesSuccessful); err != nil {
				return nil, eris.Wrap(err, "sqlite: unmarshal sources")
			}
		}
		entries = append(entries, e)
	}
	return entries, eris.Wrap(rows.Err(), "sqlite: iterate history")
}

// --- Risk profiles ---

func (s *SQLiteStore) GetRiskProfile(ctx context.Context, organizationID string) (*model.RiskProfile, error) {
	var doc string
	row := s.db.QueryRowContext(ctx,
		`SELECT profile FROM risk_profiles WHERE organization_id = ?`, organizationID)
	if err := row.Scan(&doc); err != nil {
		if eris.Is(err, sql.ErrNoRows) {
			return nil, nil // caller falls back to the default profile
		}
		return nil, eris.Wrapf(err, "sqlite: get risk profile %s", organizationID)
	}
	var p model.RiskProfile
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		return nil, eris.Wrapf(err, "sqlite: unmarshal risk profile %s", organizationID)
	}
	return &p, nil
}

func (s *SQLiteStore) PutRiskProfile(ctx context.Context, profile *model.RiskProfile) error {
	profile.UpdatedAt = time.Now().UTC()
	doc, err := json.Marshal(profile)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal risk profile")
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO risk_profiles (organization_id, profile, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(organization_id) DO UPDATE SET
			profile = excluded.profile, updated_at = excluded.updated_at`,
		profile.OrganizationID, string(doc), profile.UpdatedAt,
	)
	return eris.Wrapf(err, "sqlite: put risk profile %s", profile.OrganizationID)
}

// --- BOM line items ---

func (s *SQLiteStore) ListLineItemsForBom(ctx context.Context, bomID string) ([]model.BomLineItemRiskScore, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT doc FROM bom_line_scores WHERE bom_id = ? ORDER BY line_item_id`, bomID)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: list line items for %s", bomID)
	}
	defer rows.Close()

	var items []model.BomLineItemRiskScore
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan line item")
		}
		var item model.BomLineItemRiskScore
		if err := json.Unmarshal([]byte(doc), &item); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal line item")
		}
		items = append(items, item)
	}
	return items, eris.Wrap(rows.Err(), "sqlite: iterate line items")
}

func (s *SQLiteStore) GetLineItem(ctx context.Context, bomID, lineItemID string) (*model.BomLineItemRiskScore, error) {
	var doc string
	row := s.db.QueryRowContext(ctx,
		`SELECT doc FROM bom_line_scores WHERE bom_id = ? AND line_item_id = ?`, bomID, lineItemID)
	if err := row.Scan(&doc); err != nil {
		if eris.Is(err, sql.ErrNoRows) {
			return nil, eris.Wrapf(model.ErrComponentNotFound, "line item %s/%s", bomID, lineItemID)
		}
		return nil, eris.Wrapf(err, "sqlite: get line item %s/%s", bomID, lineItemID)
	}
	var item model.BomLineItemRiskScore
	if err := json.Unmarshal([]byte(doc), &item); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal line item")
	}
	return &item, nil
}

func (s *SQLiteStore) SaveLineItemScore(ctx context.Context, item *model.BomLineItemRiskScore) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	doc, err := json.Marshal(item)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal line item")
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO bom_line_scores (id, bom_id, line_item_id, doc, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(bom_id, line_item_id) DO UPDATE SET
			doc = excluded.doc, updated_at = excluded.updated_at`,
		item.ID, item.BomID, item.LineItemID, string(doc), time.Now().UTC(),
	)
	return eris.Wrapf(err, "sqlite: save line item %s/%s", item.BomID, item.LineItemID)
}

// --- BOM summaries ---

func (s *SQLiteStore) GetPreviousSummary(ctx context.Context, bomID string, olderThan time.Time) (*model.BomRiskSummary, error) {
	return s.querySummary(ctx,
		`SELECT doc FROM bom_summaries WHERE bom_id = ? AND generated_at <= ? ORDER BY generated_at DESC LIMIT 1`,
		bomID, olderThan.UTC())
}

func (s *SQLiteStore) GetLatestSummary(ctx context.Context, bomID string) (*model.BomRiskSummary, error) {
	return s.querySummary(ctx,
		`SELECT doc FROM bom_summaries WHERE bom_id = ? ORDER BY generated_at DESC LIMIT 1`,
		bomID)
}

func (s *SQLiteStore) querySummary(ctx context.Context, query string, args ...any) (*model.BomRiskSummary, error) {
	var doc string
	row := s.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&doc); err != nil {
		if eris.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrap(err, "sqlite: query summary")
	}
	var summary model.BomRiskSummary
	if err := json.Unmarshal([]byte(doc), &summary); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal summary")
	}
	return &summary, nil
}

func (s *SQLiteStore) SaveSummary(ctx context.Context, summary *model.BomRiskSummary) error {
	if summary.ID == "" {
		summary.ID = uuid.New().String()
	}
	doc, err := json.Marshal(summary)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal summary")
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO bom_summaries (id, bom_id, doc, generated_at)
		VALUES (?, ?, ?, ?)`,
		summary.ID, summary.BomID, string(doc), summary.GeneratedAt.UTC(),
	)
	return eris.Wrapf(err, "sqlite: save summary for %s", summary.BomID)
}

// --- helpers ---

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQueueEntry(row rowScanner) (*model.EnrichmentQueueEntry, error) {
	var e model.EnrichmentQueueEntry
	var status string
	var enrichJSON string
	var origJSON, issuesJSON, sourcesJSON, reviewedBy sql.NullString
	var reviewedAt sql.NullTime

	err := row.Scan(&e.ComponentID, &e.MPN, &e.Manufacturer, &status, &e.QualityScore,
		&enrichJSON, &origJSON, &issuesJSON, &sourcesJSON, &reviewedBy, &reviewedAt,
		&e.Version, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}

	e.Status = model.QueueStatus(status)
	if err := json.Unmarshal([]byte(enrichJSON), &e.EnrichmentData); err != nil {
		return nil, eris.Wrap(err, "unmarshal enrichment data")
	}
	if origJSON.Valid && origJSON.String != "" {
		if err := json.Unmarshal([]byte(origJSON.String), &e.OriginalData); err != nil {
			return nil, eris.Wrap(err, "unmarshal original data")
		}
	}
	if issuesJSON.Valid && issuesJSON.String != "" {
		if err := json.Unmarshal([]byte(issuesJSON.String), &e.Issues); err != nil {
			return nil, eris.Wrap(err, "unmarshal issues")
		}
	}
	if sourcesJSON.Valid && sourcesJSON.String != "" {
		if err := json.Unmarshal([]byte(sourcesJSON.String), &e.Sources); err != nil {
			return nil, eris.Wrap(err, "unmarshal sources")
		}
	}
	if reviewedBy.Valid {
		e.ReviewedBy = &reviewedBy.String
	}
	if reviewedAt.Valid {
		t := reviewedAt.Time
		e.ReviewedAt = &t
	}
	return &e, nil
}

func nullableString(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
