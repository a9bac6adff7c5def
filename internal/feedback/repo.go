package feedback

import (
	"context"
	"time"
)

// AnalysisRecord is the persisted summary of one analysis. It never holds the
// submitted text, only its hash.
type AnalysisRecord struct {
	ID               string         `json:"id"`
	TextHash         string         `json:"textHash"`
	AssignmentType   AssignmentType `json:"assignmentType"`
	FormLevel        int            `json:"formLevel"`
	WordCount        int            `json:"wordCount"`
	ReadabilityScore float64        `json:"readabilityScore"`
	FormalityScore   float64        `json:"formalityScore"`
	GrammarScore     float64        `json:"grammarScore"`
	ImprovementCount int            `json:"improvementCount"`
	Source           Source         `json:"source"`
	DurationMs       float64        `json:"durationMs"`
	CreatedAt        time.Time      `json:"createdAt"`
}

// Repo defines persistence operations for the analysis log.
type Repo interface {
	Create(ctx context.Context, rec AnalysisRecord) error
	GetByID(ctx context.Context, id string) (AnalysisRecord, error)
	ListRecent(ctx context.Context, limit, offset int) ([]AnalysisRecord, error)
}

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
