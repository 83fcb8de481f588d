package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sandwichproject/opsdb/internal/services"
	"github.com/sandwichproject/opsdb/internal/storage"
)

func TestCreateHostRejectsDuplicateName(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemStore()

	if _, err := services.CreateHost(ctx, store, services.HostInput{Name: "Grace Church"}); err != nil {
		t.Fatalf("CreateHost failed: %v", err)
	}
	if _, err := services.CreateHost(ctx, store, services.HostInput{Name: "Grace Church"}); !errors.Is(err, services.ErrValidation) {
		t.Errorf("Expected duplicate name rejected, got %v", err)
	}
}

// Renaming a host rewrites the host reference on its records in the same
// operation, since records carry the host name as a plain string.
func TestRenameHostRewritesRecords(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemStore()

	host, err := services.CreateHost(ctx, store, services.HostInput{Name: "Old Name"})
	if err != nil {
		t.Fatalf("CreateHost failed: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := services.CreateRecord(ctx, store, services.RecordInput{
			CollectionDate: "2026-03-14",
			HostName:       "Old Name",
		}); err != nil {
			t.Fatalf("CreateRecord failed: %v", err)
		}
	}

	renamed, rewritten, err := services.RenameHost(ctx, store, host.HostID, "New Name")
	if err != nil {
		t.Fatalf("RenameHost failed: %v", err)
	}
	if renamed.Name != "New Name" {
		t.Errorf("Expected renamed host, got %q", renamed.Name)
	}
	if rewritten != 2 {
		t.Errorf("Expected 2 records rewritten, got %d", rewritten)
	}

	records, _ := store.ListRecords(ctx)
	for _, rec := range records {
		if rec.HostName != "New Name" {
			t.Errorf("Expected record rewritten to new name, got %q", rec.HostName)
		}
	}
}

func TestRenameHostSameNameIsNoop(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemStore()

	host, err := services.CreateHost(ctx, store, services.HostInput{Name: "Grace Church"})
	if err != nil {
		t.Fatalf("CreateHost failed: %v", err)
	}
	_, rewritten, err := services.RenameHost(ctx, store, host.HostID, "Grace Church")
	if err != nil {
		t.Fatalf("RenameHost failed: %v", err)
	}
	if rewritten != 0 {
		t.Errorf("Expected no rewrites, got %d", rewritten)
	}
}

func TestRenameHostConflict(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemStore()

	if _, err := services.CreateHost(ctx, store, services.HostInput{Name: "Taken"}); err != nil {
		t.Fatalf("CreateHost failed: %v", err)
	}
	host, err := services.CreateHost(ctx, store, services.HostInput{Name: "Old Name"})
	if err != nil {
		t.Fatalf("CreateHost failed: %v", err)
	}

	if _, _, err := services.RenameHost(ctx, store, host.HostID, "Taken"); !errors.Is(err, services.ErrValidation) {
		t.Errorf("Expected rename onto an existing name rejected, got %v", err)
	}
	if _, _, err := services.RenameHost(ctx, store, host.HostID, "   "); !errors.Is(err, services.ErrValidation) {
		t.Errorf("Expected blank name rejected, got %v", err)
	}
}

func TestUpdateHostToggleActive(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemStore()

	host, err := services.CreateHost(ctx, store, services.HostInput{Name: "Grace Church"})
	if err != nil {
		t.Fatalf("CreateHost failed: %v", err)
	}
	if !host.Active {
		t.Fatal("Expected hosts to default active")
	}

	inactive := false
	updated, rewritten, err := services.UpdateHost(ctx, store, host.HostID, services.HostInput{
		Name:   "Grace Church",
		Active: &inactive,
	})
	if err != nil {
		t.Fatalf("UpdateHost failed: %v", err)
	}
	if updated.Active {
		t.Error("Expected host deactivated")
	}
	if rewritten != 0 {
		t.Errorf("Expected no record rewrites on a status toggle, got %d", rewritten)
	}
}
