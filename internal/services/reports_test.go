package services_test

import (
	"context"
	"testing"

	"github.com/sandwichproject/opsdb/internal/models"
	"github.com/sandwichproject/opsdb/internal/services"
	"github.com/sandwichproject/opsdb/internal/storage"
	"github.com/sandwichproject/opsdb/internal/types"
)

func TestSummaryReport(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemStore()

	seeds := []services.RecordInput{
		{CollectionDate: "2026-03-14", HostName: "Grace Church", IndividualSandwiches: 30,
			GroupCollections: types.FlexList[models.GroupCollection]{{Name: "Scouts", Count: 40}}},
		{CollectionDate: "2026-03-21", HostName: "Grace Church", IndividualSandwiches: 20},
		{CollectionDate: "2026-03-12", HostName: "Oak School", IndividualSandwiches: 25},
	}
	for _, in := range seeds {
		if _, err := services.CreateRecord(ctx, store, in); err != nil {
			t.Fatalf("CreateRecord failed: %v", err)
		}
	}

	summary, err := services.SummaryReport(ctx, store)
	if err != nil {
		t.Fatalf("SummaryReport failed: %v", err)
	}

	if summary.TotalRecords != 3 {
		t.Errorf("Expected 3 records, got %d", summary.TotalRecords)
	}
	if summary.TotalSandwiches != 115 {
		t.Errorf("Expected 115 total sandwiches, got %d", summary.TotalSandwiches)
	}
	if summary.IndividualSandwiches != 75 || summary.GroupSandwiches != 40 {
		t.Errorf("Expected 75 individual / 40 group, got %d / %d",
			summary.IndividualSandwiches, summary.GroupSandwiches)
	}
	if summary.FirstDate != "2026-03-12" || summary.LastDate != "2026-03-21" {
		t.Errorf("Expected date range 2026-03-12..2026-03-21, got %s..%s",
			summary.FirstDate, summary.LastDate)
	}

	if len(summary.PerHost) != 2 {
		t.Fatalf("Expected 2 hosts, got %d", len(summary.PerHost))
	}
	// Sorted by sandwich count, largest first
	if summary.PerHost[0].HostName != "Grace Church" || summary.PerHost[0].Sandwiches != 90 {
		t.Errorf("Expected Grace Church first with 90, got %+v", summary.PerHost[0])
	}
	if summary.PerHost[1].HostName != "Oak School" || summary.PerHost[1].Records != 1 {
		t.Errorf("Expected Oak School second with 1 record, got %+v", summary.PerHost[1])
	}

	// Week buckets sorted ascending: W11 holds Mar 12 and Mar 14, W12 holds Mar 21
	if len(summary.PerWeek) != 2 {
		t.Fatalf("Expected 2 week buckets, got %d", len(summary.PerWeek))
	}
	if summary.PerWeek[0].Week != "2026-W11" || summary.PerWeek[0].Sandwiches != 95 {
		t.Errorf("Expected 2026-W11 with 95 sandwiches, got %+v", summary.PerWeek[0])
	}
	if summary.PerWeek[1].Week != "2026-W12" || summary.PerWeek[1].Records != 1 {
		t.Errorf("Expected 2026-W12 with 1 record, got %+v", summary.PerWeek[1])
	}
}

func TestSummaryReportEmpty(t *testing.T) {
	summary, err := services.SummaryReport(context.Background(), storage.NewMemStore())
	if err != nil {
		t.Fatalf("SummaryReport failed: %v", err)
	}
	if summary.TotalRecords != 0 || summary.FirstDate != "" {
		t.Errorf("Expected empty summary, got %+v", summary)
	}
}
