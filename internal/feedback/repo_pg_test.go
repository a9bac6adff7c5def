package feedback

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var recordColumns = []string{
	"id", "text_hash", "assignment_type", "form_level", "word_count",
	"readability_score", "formality_score", "grammar_score",
	"improvement_count", "source", "duration_ms", "created_at",
}

func sampleRecord(id string, at time.Time) AnalysisRecord {
	return AnalysisRecord{
		ID:               id,
		TextHash:         "abc123",
		AssignmentType:   AssignmentEssay,
		FormLevel:        3,
		WordCount:        21,
		ReadabilityScore: 30,
		FormalityScore:   47.6,
		GrammarScore:     70,
		ImprovementCount: 3,
		Source:           SourceLocal,
		DurationMs:       1.5,
		CreatedAt:        at,
	}
}

func recordRow(rows *sqlmock.Rows, rec AnalysisRecord) *sqlmock.Rows {
	return rows.AddRow(
		rec.ID, rec.TextHash, string(rec.AssignmentType), rec.FormLevel, rec.WordCount,
		rec.ReadabilityScore, rec.FormalityScore, rec.GrammarScore,
		rec.ImprovementCount, string(rec.Source), rec.DurationMs, rec.CreatedAt,
	)
}

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	rec := sampleRecord("analysis-1", time.Now().UTC())

	mock.ExpectExec("INSERT INTO analysis_log").
		WithArgs(
			rec.ID,
			rec.TextHash,
			"essay",
			rec.FormLevel,
			rec.WordCount,
			rec.ReadabilityScore,
			rec.FormalityScore,
			rec.GrammarScore,
			rec.ImprovementCount,
			"local",
			rec.DurationMs,
			sqlmock.AnyArg(), // created_at
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), rec); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	at := time.Date(2026, time.February, 2, 10, 0, 0, 0, time.UTC)
	rec := sampleRecord("analysis-1", at)

	mock.ExpectQuery(`FROM analysis_log\s+WHERE id = \$1`).
		WithArgs("analysis-1").
		WillReturnRows(recordRow(sqlmock.NewRows(recordColumns), rec))

	got, err := repo.GetByID(context.Background(), "analysis-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got != rec {
		t.Fatalf("unexpected record %+v", got)
	}

	mock.ExpectQuery(`FROM analysis_log\s+WHERE id = \$1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(recordColumns))

	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListRecentNormalizesPage(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	newer := sampleRecord("analysis-2", time.Date(2026, time.February, 3, 0, 0, 0, 0, time.UTC))
	older := sampleRecord("analysis-1", time.Date(2026, time.February, 2, 0, 0, 0, 0, time.UTC))

	rows := sqlmock.NewRows(recordColumns)
	recordRow(rows, newer)
	recordRow(rows, older)
	mock.ExpectQuery(`ORDER BY created_at DESC\s+LIMIT \$1 OFFSET \$2`).
		WithArgs(maxListLimit, 0).
		WillReturnRows(rows)

	got, err := repo.ListRecent(context.Background(), 500, -3)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(got) != 2 || got[0].ID != "analysis-2" || got[1].ID != "analysis-1" {
		t.Fatalf("unexpected records %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListRecentPropagatesErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("FROM analysis_log").
		WithArgs(defaultListLimit, 10).
		WillReturnError(errors.New("connection reset"))

	repo := &PGRepo{DB: db}
	if _, err := repo.ListRecent(context.Background(), 0, 10); err == nil {
		t.Fatalf("expected query error")
	}
}
