package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sandwichproject/opsdb/internal/models"
	"github.com/sandwichproject/opsdb/internal/services"
	"github.com/sandwichproject/opsdb/internal/storage"
)

var baseTime = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func seedDuplicates(t *testing.T, store storage.Store) {
	t.Helper()
	ctx := context.Background()
	seeds := []models.CollectionRecord{
		{CollectionDate: "2026-03-14", HostName: "Grace Church", IndividualSandwiches: 30, SubmittedAt: baseTime},
		{CollectionDate: "2026-03-14", HostName: "Grace Church", IndividualSandwiches: 30, SubmittedAt: baseTime.Add(time.Hour)},
		{CollectionDate: "2026-03-14", HostName: "Grace Church", IndividualSandwiches: 30, SubmittedAt: baseTime.Add(2 * time.Hour)},
		{CollectionDate: "2026-03-15", HostName: "Oak School", IndividualSandwiches: 20, SubmittedAt: baseTime},
		{CollectionDate: "2026-03-15", HostName: "Oak School", IndividualSandwiches: 20, SubmittedAt: baseTime.Add(time.Hour)},
		{CollectionDate: "2026-03-16", HostName: "Unique Host", IndividualSandwiches: 15, SubmittedAt: baseTime},
	}
	for i := range seeds {
		if _, err := store.CreateRecord(ctx, &seeds[i]); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}
}

// Analysis flags duplicates without touching data; cleanup removes only the
// redundant copies; a second cleanup finds nothing.
func TestCleanAllDuplicatesIdempotent(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemStore()
	seedDuplicates(t, store)

	report, err := services.AnalyzeRecords(ctx, store)
	if err != nil {
		t.Fatalf("AnalyzeRecords failed: %v", err)
	}
	if len(report.DuplicateGroups) != 2 {
		t.Fatalf("Expected 2 duplicate groups, got %d", len(report.DuplicateGroups))
	}

	// Analysis must not delete anything
	records, _ := store.ListRecords(ctx)
	if len(records) != 6 {
		t.Fatalf("Expected analysis to leave all 6 records, got %d", len(records))
	}

	result, err := services.CleanAllDuplicates(ctx, store)
	if err != nil {
		t.Fatalf("CleanAllDuplicates failed: %v", err)
	}
	if result.GroupsCleaned != 2 {
		t.Errorf("Expected 2 groups cleaned, got %d", result.GroupsCleaned)
	}
	if result.RecordsDeleted != 3 {
		t.Errorf("Expected 3 records deleted, got %d", result.RecordsDeleted)
	}

	records, _ = store.ListRecords(ctx)
	if len(records) != 3 {
		t.Fatalf("Expected 3 surviving records, got %d", len(records))
	}
	// The latest submission of each group survives
	for _, rec := range records {
		if rec.HostName == "Grace Church" && !rec.SubmittedAt.Equal(baseTime.Add(2*time.Hour)) {
			t.Errorf("Expected latest Grace Church submission kept, got %v", rec.SubmittedAt)
		}
	}

	// Second run: nothing left to clean
	result, err = services.CleanAllDuplicates(ctx, store)
	if err != nil {
		t.Fatalf("Repeat CleanAllDuplicates failed: %v", err)
	}
	if result.GroupsCleaned != 0 || result.RecordsDeleted != 0 {
		t.Errorf("Expected idempotent repeat, got %+v", result)
	}
}

func TestCleanDuplicateGroupByKey(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemStore()
	seedDuplicates(t, store)

	report, err := services.AnalyzeRecords(ctx, store)
	if err != nil {
		t.Fatalf("AnalyzeRecords failed: %v", err)
	}

	key := report.DuplicateGroups[0].Key
	result, err := services.CleanDuplicateGroup(ctx, store, key)
	if err != nil {
		t.Fatalf("CleanDuplicateGroup failed: %v", err)
	}
	if result.GroupsCleaned != 1 {
		t.Errorf("Expected 1 group cleaned, got %d", result.GroupsCleaned)
	}

	// The same key again: the group no longer exists
	if _, err := services.CleanDuplicateGroup(ctx, store, key); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for a cleaned group, got %v", err)
	}
}

func TestCleanSuspicious(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemStore()

	seeds := []models.CollectionRecord{
		{CollectionDate: "2026-03-14", HostName: "Host A", IndividualSandwiches: 500, SubmittedAt: baseTime},
		{CollectionDate: "2026-03-14", HostName: "Host B", IndividualSandwiches: 47, SubmittedAt: baseTime},
	}
	for i := range seeds {
		if _, err := store.CreateRecord(ctx, &seeds[i]); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	result, err := services.CleanSuspicious(ctx, store)
	if err != nil {
		t.Fatalf("CleanSuspicious failed: %v", err)
	}
	if result.RecordsDeleted != 1 {
		t.Errorf("Expected 1 suspicious record deleted, got %d", result.RecordsDeleted)
	}

	records, _ := store.ListRecords(ctx)
	if len(records) != 1 || records[0].HostName != "Host B" {
		t.Errorf("Expected only the organic record to survive, got %+v", records)
	}
}
