package storage_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sandwichproject/opsdb/internal/models"
	"github.com/sandwichproject/opsdb/internal/storage"
)

func TestMemStoreRecordLifecycle(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemStore()

	created, err := store.CreateRecord(ctx, &models.CollectionRecord{
		CollectionDate:       "2026-03-14",
		HostName:             "Grace Church",
		IndividualSandwiches: 30,
		SubmittedAt:          time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateRecord failed: %v", err)
	}
	if created.RecordID == 0 {
		t.Fatal("Expected an allocated record ID")
	}

	got, err := store.GetRecord(ctx, created.RecordID)
	if err != nil {
		t.Fatalf("GetRecord failed: %v", err)
	}
	if got.HostName != "Grace Church" {
		t.Errorf("Expected host name round-trip, got %q", got.HostName)
	}

	got.IndividualSandwiches = 45
	if _, err := store.UpdateRecord(ctx, got); err != nil {
		t.Fatalf("UpdateRecord failed: %v", err)
	}

	ok, err := store.DeleteRecord(ctx, created.RecordID)
	if err != nil || !ok {
		t.Fatalf("Expected delete to succeed, got ok=%v err=%v", ok, err)
	}

	// Second delete is a no-op, not an error
	ok, err = store.DeleteRecord(ctx, created.RecordID)
	if err != nil {
		t.Fatalf("Repeat delete errored: %v", err)
	}
	if ok {
		t.Error("Expected repeat delete to report no rows")
	}

	if _, err := store.GetRecord(ctx, created.RecordID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
}

func TestMemStorePreassignedIDs(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemStore()

	// Mirrored write carrying the primary's ID
	mirrored, err := store.CreateRecord(ctx, &models.CollectionRecord{
		RecordID:       42,
		CollectionDate: "2026-03-14",
		HostName:       "Oak School",
		SubmittedAt:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateRecord failed: %v", err)
	}
	if mirrored.RecordID != 42 {
		t.Fatalf("Expected pre-assigned ID 42 honored, got %d", mirrored.RecordID)
	}

	// Local create must not collide with the mirrored ID
	local, err := store.CreateRecord(ctx, &models.CollectionRecord{
		CollectionDate: "2026-03-15",
		HostName:       "Oak School",
		SubmittedAt:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateRecord failed: %v", err)
	}
	if local.RecordID <= 42 {
		t.Errorf("Expected counter advanced past mirrored ID, got %d", local.RecordID)
	}
}

func TestMemStoreRewriteHostName(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemStore()

	for _, host := range []string{"Old Name", "Old Name", "Other Host"} {
		if _, err := store.CreateRecord(ctx, &models.CollectionRecord{
			CollectionDate: "2026-03-14",
			HostName:       host,
			SubmittedAt:    time.Now().UTC(),
		}); err != nil {
			t.Fatalf("CreateRecord failed: %v", err)
		}
	}

	n, err := store.RewriteHostName(ctx, "Old Name", "New Name")
	if err != nil {
		t.Fatalf("RewriteHostName failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Expected 2 rewritten rows, got %d", n)
	}

	records, _ := store.ListRecords(ctx)
	for _, rec := range records {
		if rec.HostName == "Old Name" {
			t.Error("Expected no records left with the old host name")
		}
	}
}

func TestMemStoreTombstones(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemStore()

	if err := store.PutTombstone(ctx, storage.KindRecord, 7); err != nil {
		t.Fatalf("PutTombstone failed: %v", err)
	}
	// Idempotent put
	if err := store.PutTombstone(ctx, storage.KindRecord, 7); err != nil {
		t.Fatalf("Repeat PutTombstone failed: %v", err)
	}
	if err := store.PutTombstone(ctx, storage.KindHost, 3); err != nil {
		t.Fatalf("PutTombstone failed: %v", err)
	}

	tombstones, err := store.ListTombstones(ctx)
	if err != nil {
		t.Fatalf("ListTombstones failed: %v", err)
	}
	if len(tombstones) != 2 {
		t.Fatalf("Expected 2 tombstones, got %d", len(tombstones))
	}

	if err := store.RemoveTombstone(ctx, storage.KindRecord, 7); err != nil {
		t.Fatalf("RemoveTombstone failed: %v", err)
	}
	tombstones, _ = store.ListTombstones(ctx)
	if len(tombstones) != 1 || tombstones[0].EntityKind != string(storage.KindHost) {
		t.Errorf("Expected only the host tombstone to remain, got %+v", tombstones)
	}
}

func TestMemStoreRosterEntities(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemStore()

	d, err := store.CreateDriver(ctx, &models.Driver{Name: "Sam Driver", Active: true})
	if err != nil {
		t.Fatalf("CreateDriver failed: %v", err)
	}
	r, err := store.CreateRecipient(ctx, &models.Recipient{Name: "City Shelter", Region: "North"})
	if err != nil {
		t.Fatalf("CreateRecipient failed: %v", err)
	}
	m, err := store.CreateMeeting(ctx, &models.Meeting{Title: "Volunteer onboarding", ScheduledAt: time.Now().UTC()})
	if err != nil {
		t.Fatalf("CreateMeeting failed: %v", err)
	}
	msg, err := store.CreateMessage(ctx, &models.Message{Sender: "ops", Body: "Collection moved to Sunday", SentAt: time.Now().UTC()})
	if err != nil {
		t.Fatalf("CreateMessage failed: %v", err)
	}

	if _, err := store.GetDriver(ctx, d.DriverID); err != nil {
		t.Errorf("GetDriver failed: %v", err)
	}
	if _, err := store.GetRecipient(ctx, r.RecipientID); err != nil {
		t.Errorf("GetRecipient failed: %v", err)
	}
	if _, err := store.GetMeeting(ctx, m.MeetingID); err != nil {
		t.Errorf("GetMeeting failed: %v", err)
	}

	msgs, err := store.ListMessages(ctx)
	if err != nil || len(msgs) != 1 {
		t.Fatalf("Expected 1 message, got %d (err=%v)", len(msgs), err)
	}
	if ok, _ := store.DeleteMessage(ctx, msg.MessageID); !ok {
		t.Error("Expected message delete to succeed")
	}
}
