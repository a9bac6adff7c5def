package feedback

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores analysis records in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu      sync.RWMutex
	byID    map[string]AnalysisRecord
	ordered []AnalysisRecord
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID: make(map[string]AnalysisRecord),
	}
}

// Create stores the record.
func (r *MemoryRepo) Create(ctx context.Context, rec AnalysisRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[rec.ID] = rec
	r.ordered = append(r.ordered, rec)
	return nil
}

// GetByID returns a record by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (AnalysisRecord, error) {
	if err := ctx.Err(); err != nil {
		return AnalysisRecord{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.byID[id]
	if !ok {
		return AnalysisRecord{}, ErrNotFound
	}
	return rec, nil
}

// ListRecent returns records newest first with limit/offset.
func (r *MemoryRepo) ListRecent(ctx context.Context, limit, offset int) ([]AnalysisRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	limit, offset = normalizePage(limit, offset)

	r.mu.RLock()
	records := make([]AnalysisRecord, len(r.ordered))
	copy(records, r.ordered)
	r.mu.RUnlock()

	if offset >= len(records) {
		return []AnalysisRecord{}, nil
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	end := len(records)
	if offset+limit < end {
		end = offset + limit
	}
	return records[offset:end], nil
}
