package feedback

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestMemoryRepoCreateAndGet(t *testing.T) {
	repo := NewMemoryRepo()
	rec := sampleRecord("analysis-1", time.Now().UTC())
	if err := repo.Create(context.Background(), rec); err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := repo.GetByID(context.Background(), "analysis-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got != rec {
		t.Fatalf("unexpected record %+v", got)
	}
	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryRepoListRecentNewestFirst(t *testing.T) {
	repo := NewMemoryRepo()
	base := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		rec := sampleRecord(fmt.Sprintf("analysis-%d", i), base.Add(time.Duration(i)*time.Minute))
		if err := repo.Create(context.Background(), rec); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := repo.ListRecent(context.Background(), 2, 1)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(got) != 2 || got[0].ID != "analysis-3" || got[1].ID != "analysis-2" {
		t.Fatalf("unexpected page %+v", got)
	}

	got, err = repo.ListRecent(context.Background(), 10, 10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty page past the end, got %#v", got)
	}
}

func TestMemoryRepoCanceledContext(t *testing.T) {
	repo := NewMemoryRepo()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := repo.Create(ctx, sampleRecord("x", time.Now())); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestMemoryRepoConcurrentCreate(t *testing.T) {
	repo := NewMemoryRepo()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = repo.Create(context.Background(), sampleRecord(fmt.Sprintf("id-%d", i), time.Now()))
		}(i)
	}
	wg.Wait()

	got, err := repo.ListRecent(context.Background(), maxListLimit, 0)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(got) != 50 {
		t.Fatalf("expected 50 records, got %d", len(got))
	}
}
