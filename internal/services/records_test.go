package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sandwichproject/opsdb/internal/models"
	"github.com/sandwichproject/opsdb/internal/services"
	"github.com/sandwichproject/opsdb/internal/storage"
	"github.com/sandwichproject/opsdb/internal/types"
)

func TestCreateRecordValidation(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemStore()

	cases := []struct {
		name  string
		input services.RecordInput
	}{
		{"missing date", services.RecordInput{HostName: "Grace Church"}},
		{"bad date format", services.RecordInput{CollectionDate: "14/03/2026", HostName: "Grace Church"}},
		{"missing host", services.RecordInput{CollectionDate: "2026-03-14"}},
		{"negative count", services.RecordInput{CollectionDate: "2026-03-14", HostName: "Grace Church", IndividualSandwiches: -1}},
		{"nameless group", services.RecordInput{
			CollectionDate: "2026-03-14",
			HostName:       "Grace Church",
			GroupCollections: types.FlexList[models.GroupCollection]{
				{Name: "  ", Count: 10},
			},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := services.CreateRecord(ctx, store, tc.input); !errors.Is(err, services.ErrValidation) {
				t.Errorf("Expected ErrValidation, got %v", err)
			}
		})
	}

	if records, _ := store.ListRecords(ctx); len(records) != 0 {
		t.Errorf("Expected rejected payloads to store nothing, got %d records", len(records))
	}
}

func TestCreateRecordMarshalsGroups(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemStore()

	created, err := services.CreateRecord(ctx, store, services.RecordInput{
		CollectionDate:       "2026-03-14",
		HostName:             "  Grace Church  ",
		IndividualSandwiches: 30,
		GroupCollections: types.FlexList[models.GroupCollection]{
			{Name: "Scouts", Count: 40},
			{Name: "PTA", Count: 25},
		},
	})
	if err != nil {
		t.Fatalf("CreateRecord failed: %v", err)
	}
	if created.HostName != "Grace Church" {
		t.Errorf("Expected trimmed host name, got %q", created.HostName)
	}
	if created.SubmittedAt.IsZero() {
		t.Error("Expected a default submission timestamp")
	}
	if created.TotalSandwiches() != 95 {
		t.Errorf("Expected total 95, got %d", created.TotalSandwiches())
	}

	groups, ok := created.Groups()
	if !ok {
		t.Fatal("Expected parseable group payload")
	}
	if len(groups) != 2 || groups[0].Name != "Scouts" {
		t.Errorf("Expected groups round-trip, got %+v", groups)
	}
}

func TestUpdateRecordMissing(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemStore()

	_, err := services.UpdateRecord(ctx, store, 999, services.RecordInput{
		CollectionDate: "2026-03-14",
		HostName:       "Grace Church",
	})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestBatchDeleteRecordsCountsRemovedRows(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemStore()

	var ids []uint64
	for i := 0; i < 3; i++ {
		rec, err := services.CreateRecord(ctx, store, services.RecordInput{
			CollectionDate: "2026-03-14",
			HostName:       "Grace Church",
		})
		if err != nil {
			t.Fatalf("CreateRecord failed: %v", err)
		}
		ids = append(ids, rec.RecordID)
	}

	// One missing ID in the batch: skipped, not an error
	deleted, err := services.BatchDeleteRecords(ctx, store, append(ids, 999))
	if err != nil {
		t.Fatalf("BatchDeleteRecords failed: %v", err)
	}
	if deleted != 3 {
		t.Errorf("Expected 3 deleted rows, got %d", deleted)
	}

	if records, _ := store.ListRecords(ctx); len(records) != 0 {
		t.Errorf("Expected empty store, got %d records", len(records))
	}
}
