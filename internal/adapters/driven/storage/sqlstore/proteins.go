package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rostlab/tmvis/internal/core/domain"
)

const proteinColumns = `p.accession, p.uniprot_id, p.sequence,
	COALESCE(o.taxon_id, ''), COALESCE(o.name, ''), COALESCE(o.super_kingdom, ''), COALESCE(o.clade, ''),
	p.helix_count, p.helix_percent, p.strand_count, p.strand_percent, p.signal_count, p.signal_percent,
	p.has_alpha_helix, p.has_beta_strand, p.has_signal, p.tm_generated_at,
	p.created_at, p.updated_at`

const proteinFrom = ` FROM proteins p LEFT JOIN organisms o ON o.taxon_id = p.taxon_id`

// ProteinStore holds the shared query code. Adapters embed it and add Close.
type ProteinStore struct {
	db      *sql.DB
	dialect Dialect
	now     func() time.Time
}

// NewProteinStore wraps an open, migrated database.
func NewProteinStore(db *sql.DB, dialect Dialect) *ProteinStore {
	return &ProteinStore{db: db, dialect: dialect, now: time.Now}
}

// DB returns the underlying handle.
func (s *ProteinStore) DB() *sql.DB {
	return s.db
}

func (s *ProteinStore) q(query string) string {
	return s.dialect.Rebind(query)
}

// SaveProtein stores or updates a protein and its organism.
// CreatedAt of an existing row is kept.
func (s *ProteinStore) SaveProtein(ctx context.Context, protein *domain.Protein) error {
	if protein == nil || protein.Accession == "" {
		return fmt.Errorf("saving protein: %w", domain.ErrInvalidInput)
	}

	now := s.now().UTC()
	createdAt := protein.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	org := protein.Organism
	if org.TaxonID != "" {
		_, err = tx.ExecContext(ctx, s.q(`
			INSERT INTO organisms (taxon_id, name, super_kingdom, clade)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(taxon_id) DO UPDATE SET
				name = excluded.name,
				super_kingdom = excluded.super_kingdom,
				clade = excluded.clade
		`), org.TaxonID, org.Name, org.SuperKingdom, org.Clade)
		if err != nil {
			return fmt.Errorf("saving organism: %w", err)
		}
	}

	tm := protein.TMInfo
	_, err = tx.ExecContext(ctx, s.q(`
		INSERT INTO proteins (accession, uniprot_id, sequence, seq_length, taxon_id,
			helix_count, helix_percent, strand_count, strand_percent, signal_count, signal_percent,
			has_alpha_helix, has_beta_strand, has_signal, tm_generated_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(accession) DO UPDATE SET
			uniprot_id = excluded.uniprot_id,
			sequence = excluded.sequence,
			seq_length = excluded.seq_length,
			taxon_id = excluded.taxon_id,
			helix_count = excluded.helix_count,
			helix_percent = excluded.helix_percent,
			strand_count = excluded.strand_count,
			strand_percent = excluded.strand_percent,
			signal_count = excluded.signal_count,
			signal_percent = excluded.signal_percent,
			has_alpha_helix = excluded.has_alpha_helix,
			has_beta_strand = excluded.has_beta_strand,
			has_signal = excluded.has_signal,
			tm_generated_at = excluded.tm_generated_at,
			updated_at = excluded.updated_at
	`), protein.Accession, protein.UniProtID, protein.Sequence, protein.Length(), nullString(org.TaxonID),
		tm.HelixCount, tm.HelixPercent, tm.StrandCount, tm.StrandPercent, tm.SignalCount, tm.SignalPercent,
		tm.HasAlphaHelix, tm.HasBetaStrand, tm.HasSignal, nullTime(tm.GeneratedAt), createdAt, now)
	if err != nil {
		return fmt.Errorf("saving protein: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing protein: %w", err)
	}
	return nil
}

// GetProtein retrieves a protein by accession or entry name, case-insensitively.
// An accession match wins over an entry-name match.
func (s *ProteinStore) GetProtein(ctx context.Context, id string) (*domain.Protein, error) {
	id = strings.ToUpper(strings.TrimSpace(id))
	if id == "" {
		return nil, domain.ErrNotFound
	}
	row := s.db.QueryRowContext(ctx, s.q(`SELECT `+proteinColumns+proteinFrom+`
		WHERE UPPER(p.accession) = ? OR UPPER(p.uniprot_id) = ?
		ORDER BY CASE WHEN UPPER(p.accession) = ? THEN 0 ELSE 1 END
		LIMIT 1`), id, id, id)

	p, err := scanProtein(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning protein: %w", err)
	}
	return p, nil
}

// ListProteins returns proteins matching the filter, ordered by accession
// unless random selection is requested.
func (s *ProteinStore) ListProteins(ctx context.Context, filter domain.ProteinFilter) ([]domain.Protein, error) {
	where, args := filterClause(filter)
	query := `SELECT ` + proteinColumns + proteinFrom + where
	if filter.Random {
		query += ` ORDER BY RANDOM()`
	} else {
		query += ` ORDER BY p.accession`
	}
	query += ` LIMIT ?`
	args = append(args, filter.EffectiveLimit())

	rows, err := s.db.QueryContext(ctx, s.q(query), args...)
	if err != nil {
		return nil, fmt.Errorf("querying proteins: %w", err)
	}
	defer rows.Close()

	var proteins []domain.Protein //nolint:prealloc // size unknown from query
	for rows.Next() {
		p, err := scanProtein(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning protein: %w", err)
		}
		proteins = append(proteins, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating proteins: %w", err)
	}
	return proteins, nil
}

// filterClause mirrors domain.ProteinFilter.Matches in SQL.
func filterClause(f domain.ProteinFilter) (string, []any) {
	if f.Random {
		return "", nil
	}

	var conds []string
	var args []any

	if f.RestrictsLength() {
		conds = append(conds, "p.seq_length >= ?")
		args = append(args, f.MinLength)
		if f.MaxLength > 0 {
			conds = append(conds, "p.seq_length <= ?")
			args = append(args, f.MaxLength)
		}
	}

	switch f.Topology {
	case domain.TopologyBoth:
		conds = append(conds, "p.has_alpha_helix = ?", "p.has_beta_strand = ?")
		args = append(args, true, true)
	case domain.TopologyAlphaHelix:
		conds = append(conds, "p.has_alpha_helix = ?")
		args = append(args, true)
	case domain.TopologyBetaStrand:
		conds = append(conds, "p.has_beta_strand = ?", "p.has_signal = ?")
		args = append(args, true, f.SignalPeptide)
	}

	switch {
	case f.TaxonID != "":
		conds = append(conds, "p.taxon_id = ?")
		args = append(args, f.TaxonID)
	default:
		if f.SuperKingdom != "" {
			conds = append(conds, "o.super_kingdom = ?")
			args = append(args, f.SuperKingdom)
		}
		if f.Clade != "" {
			conds = append(conds, "o.clade = ?")
			args = append(args, f.Clade)
		}
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// CountProteins returns the number of stored proteins.
func (s *ProteinStore) CountProteins(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM proteins").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting proteins: %w", err)
	}
	return n, nil
}

// DeleteProtein removes a protein with its records and payloads.
func (s *ProteinStore) DeleteProtein(ctx context.Context, accession string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"annotations", "payloads"} {
		if _, err := tx.ExecContext(ctx, s.q("DELETE FROM "+table+" WHERE accession = ?"), accession); err != nil {
			return fmt.Errorf("deleting %s: %w", table, err)
		}
	}
	res, err := tx.ExecContext(ctx, s.q("DELETE FROM proteins WHERE accession = ?"), accession)
	if err != nil {
		return fmt.Errorf("deleting protein: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing delete: %w", err)
	}
	return nil
}

// ReplaceRecords replaces every annotation row of a protein.
// Rows without an ID get a generated one.
func (s *ProteinStore) ReplaceRecords(ctx context.Context, accession string, records []domain.RangeRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := exists(ctx, tx, s.q("SELECT 1 FROM proteins WHERE accession = ?"), accession); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, s.q("DELETE FROM annotations WHERE accession = ?"), accession); err != nil {
		return fmt.Errorf("clearing annotations: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, s.q(`
		INSERT INTO annotations (id, accession, position, start_pos, end_pos, label,
			source_db, source_db_ref, source_db_url, date_added)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`))
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	now := s.now().UTC()
	for i, r := range records {
		id := r.ID
		if id == "" {
			id = uuid.New().String()
		}
		if _, err := stmt.ExecContext(ctx, id, accession, i, r.Start, r.End, r.Label,
			r.Source, r.SourceRef, r.SourceURL, now); err != nil {
			return fmt.Errorf("inserting annotation: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing annotations: %w", err)
	}
	return nil
}

// ListRecords returns a protein's annotation rows in insertion order.
func (s *ProteinStore) ListRecords(ctx context.Context, accession string) ([]domain.RangeRecord, error) {
	rows, err := s.db.QueryContext(ctx, s.q(`
		SELECT id, start_pos, end_pos, label, source_db, source_db_ref, source_db_url
		FROM annotations WHERE accession = ? ORDER BY position
	`), accession)
	if err != nil {
		return nil, fmt.Errorf("querying annotations: %w", err)
	}
	defer rows.Close()

	records := []domain.RangeRecord{}
	for rows.Next() {
		var r domain.RangeRecord
		if err := rows.Scan(&r.ID, &r.Start, &r.End, &r.Label, &r.Source, &r.SourceRef, &r.SourceURL); err != nil {
			return nil, fmt.Errorf("scanning annotation: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating annotations: %w", err)
	}
	return records, nil
}

// SavePayload stores a raw payload, one per accession and source.
func (s *ProteinStore) SavePayload(ctx context.Context, payload domain.RawPayload) error {
	if !payload.Source.IsRegistered() {
		return &domain.UnknownSourceError{Source: payload.Source}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := exists(ctx, tx, s.q("SELECT 1 FROM proteins WHERE accession = ?"), payload.Accession); err != nil {
		return err
	}

	content := payload.Content
	if content == nil {
		content = []byte{}
	}
	_, err = tx.ExecContext(ctx, s.q(`
		INSERT INTO payloads (accession, source, mime_type, content)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(accession, source) DO UPDATE SET
			mime_type = excluded.mime_type,
			content = excluded.content
	`), payload.Accession, string(payload.Source), payload.MIMEType, content)
	if err != nil {
		return fmt.Errorf("saving payload: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing payload: %w", err)
	}
	return nil
}

// ListPayloads returns a protein's raw payloads in registry order.
func (s *ProteinStore) ListPayloads(ctx context.Context, accession string) ([]domain.RawPayload, error) {
	rows, err := s.db.QueryContext(ctx, s.q(`
		SELECT source, mime_type, content FROM payloads WHERE accession = ?
	`), accession)
	if err != nil {
		return nil, fmt.Errorf("querying payloads: %w", err)
	}
	defer rows.Close()

	bySource := make(map[domain.AnnotationSource]domain.RawPayload)
	for rows.Next() {
		var source string
		p := domain.RawPayload{Accession: accession}
		if err := rows.Scan(&source, &p.MIMEType, &p.Content); err != nil {
			return nil, fmt.Errorf("scanning payload: %w", err)
		}
		p.Source = domain.AnnotationSource(source)
		bySource[p.Source] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payloads: %w", err)
	}

	var out []domain.RawPayload
	for _, source := range domain.Sources() {
		if p, ok := bySource[source]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// ==================== Helper Functions ====================

type scanner interface {
	Scan(dest ...any) error
}

func scanProtein(row scanner) (*domain.Protein, error) {
	var p domain.Protein
	var generatedAt, createdAt, updatedAt sql.NullTime
	tm := &p.TMInfo
	if err := row.Scan(&p.Accession, &p.UniProtID, &p.Sequence,
		&p.Organism.TaxonID, &p.Organism.Name, &p.Organism.SuperKingdom, &p.Organism.Clade,
		&tm.HelixCount, &tm.HelixPercent, &tm.StrandCount, &tm.StrandPercent, &tm.SignalCount, &tm.SignalPercent,
		&tm.HasAlphaHelix, &tm.HasBetaStrand, &tm.HasSignal, &generatedAt,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if generatedAt.Valid {
		tm.GeneratedAt = generatedAt.Time
	}
	if createdAt.Valid {
		p.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		p.UpdatedAt = updatedAt.Time
	}
	return &p, nil
}

func exists(ctx context.Context, tx *sql.Tx, query string, args ...any) error {
	var one int
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("checking existence: %w", err)
	}
	return nil
}

// nullString returns a sql.NullString for optional string fields.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// nullTime returns a sql.NullTime for optional timestamps.
func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t.UTC(), Valid: !t.IsZero()}
}
