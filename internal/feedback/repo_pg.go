package feedback

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const selectRecordColumns = `
SELECT id, text_hash, assignment_type, form_level, word_count,
       readability_score, formality_score, grammar_score,
       improvement_count, source, duration_ms, created_at
FROM analysis_log`

// Create inserts a new record.
func (r *PGRepo) Create(ctx context.Context, rec AnalysisRecord) error {
	const query = `
INSERT INTO analysis_log (
	id, text_hash, assignment_type, form_level, word_count,
	readability_score, formality_score, grammar_score,
	improvement_count, source, duration_ms, created_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.DB.ExecContext(ctx, query,
		rec.ID,
		rec.TextHash,
		string(rec.AssignmentType),
		rec.FormLevel,
		rec.WordCount,
		rec.ReadabilityScore,
		rec.FormalityScore,
		rec.GrammarScore,
		rec.ImprovementCount,
		string(rec.Source),
		rec.DurationMs,
		rec.CreatedAt,
	)
	return err
}

// GetByID returns a record by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (AnalysisRecord, error) {
	row := r.DB.QueryRowContext(ctx, selectRecordColumns+`
WHERE id = $1
LIMIT 1`, id)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return AnalysisRecord{}, ErrNotFound
		}
		return AnalysisRecord{}, err
	}
	return rec, nil
}

// ListRecent returns records ordered newest first.
func (r *PGRepo) ListRecent(ctx context.Context, limit, offset int) ([]AnalysisRecord, error) {
	limit, offset = normalizePage(limit, offset)

	rows, err := r.DB.QueryContext(ctx, selectRecordColumns+`
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []AnalysisRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (AnalysisRecord, error) {
	var rec AnalysisRecord
	var assignmentType, source string
	if err := row.Scan(
		&rec.ID,
		&rec.TextHash,
		&assignmentType,
		&rec.FormLevel,
		&rec.WordCount,
		&rec.ReadabilityScore,
		&rec.FormalityScore,
		&rec.GrammarScore,
		&rec.ImprovementCount,
		&source,
		&rec.DurationMs,
		&rec.CreatedAt,
	); err != nil {
		return AnalysisRecord{}, err
	}
	rec.AssignmentType = AssignmentType(assignmentType)
	rec.Source = Source(source)
	rec.CreatedAt = rec.CreatedAt.UTC()
	return rec, nil
}
