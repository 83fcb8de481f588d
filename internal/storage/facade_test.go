package storage_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sandwichproject/opsdb/internal/models"
	"github.com/sandwichproject/opsdb/internal/storage"
)

var errDown = errors.New("connection refused")

// flakyStore wraps a MemStore and fails the overridden operations on demand,
// standing in for a primary database that has gone away.
type flakyStore struct {
	*storage.MemStore
	down bool
}

func (s *flakyStore) CreateRecord(ctx context.Context, rec *models.CollectionRecord) (*models.CollectionRecord, error) {
	if s.down {
		return nil, errDown
	}
	return s.MemStore.CreateRecord(ctx, rec)
}

func (s *flakyStore) GetRecord(ctx context.Context, id uint64) (*models.CollectionRecord, error) {
	if s.down {
		return nil, errDown
	}
	return s.MemStore.GetRecord(ctx, id)
}

func (s *flakyStore) ListRecords(ctx context.Context) ([]models.CollectionRecord, error) {
	if s.down {
		return nil, errDown
	}
	return s.MemStore.ListRecords(ctx)
}

func (s *flakyStore) UpdateRecord(ctx context.Context, rec *models.CollectionRecord) (*models.CollectionRecord, error) {
	if s.down {
		return nil, errDown
	}
	return s.MemStore.UpdateRecord(ctx, rec)
}

func (s *flakyStore) DeleteRecord(ctx context.Context, id uint64) (bool, error) {
	if s.down {
		return false, errDown
	}
	return s.MemStore.DeleteRecord(ctx, id)
}

func newTestFacade() (*storage.Facade, *flakyStore, *storage.MemStore) {
	primary := &flakyStore{MemStore: storage.NewMemStore()}
	fallback := storage.NewMemStore()
	facade := storage.NewFacade(primary, fallback, nil, storage.BreakerSettings{
		ConsecutiveFailures: 100, // keep the breaker out of these tests
		OpenTimeout:         time.Second,
	})
	return facade, primary, fallback
}

func seedRecord(t *testing.T, store storage.Store, id uint64, host string) *models.CollectionRecord {
	t.Helper()
	rec, err := store.CreateRecord(context.Background(), &models.CollectionRecord{
		RecordID:       id,
		CollectionDate: "2026-03-14",
		HostName:       host,
		SubmittedAt:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed record failed: %v", err)
	}
	return rec
}

func TestFacadeCreateMirrorsToFallback(t *testing.T) {
	ctx := context.Background()
	facade, _, fallback := newTestFacade()

	created, err := facade.CreateRecord(ctx, &models.CollectionRecord{
		CollectionDate: "2026-03-14",
		HostName:       "Grace Church",
		SubmittedAt:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateRecord failed: %v", err)
	}

	mirrored, err := fallback.GetRecord(ctx, created.RecordID)
	if err != nil {
		t.Fatalf("Expected record mirrored to fallback: %v", err)
	}
	if mirrored.RecordID != created.RecordID {
		t.Errorf("Expected mirrored ID %d, got %d", created.RecordID, mirrored.RecordID)
	}
}

// Reads keep working from the fallback while the primary is down.
func TestFacadeReadFallsBackWhenPrimaryDown(t *testing.T) {
	ctx := context.Background()
	facade, primary, _ := newTestFacade()

	created, err := facade.CreateRecord(ctx, &models.CollectionRecord{
		CollectionDate: "2026-03-14",
		HostName:       "Grace Church",
		SubmittedAt:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateRecord failed: %v", err)
	}

	primary.down = true

	got, err := facade.GetRecord(ctx, created.RecordID)
	if err != nil {
		t.Fatalf("Expected fallback read to succeed: %v", err)
	}
	if got.HostName != "Grace Church" {
		t.Errorf("Expected mirrored data, got %q", got.HostName)
	}

	records, err := facade.ListRecords(ctx)
	if err != nil {
		t.Fatalf("Expected fallback list to succeed: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("Expected 1 record from fallback, got %d", len(records))
	}
}

// A primary miss retries the fallback, covering mirror lag.
func TestFacadeReadFallsBackOnPrimaryMiss(t *testing.T) {
	ctx := context.Background()
	facade, _, fallback := newTestFacade()

	seedRecord(t, fallback, 5, "Oak School")

	got, err := facade.GetRecord(ctx, 5)
	if err != nil {
		t.Fatalf("Expected fallback to serve the miss: %v", err)
	}
	if got.HostName != "Oak School" {
		t.Errorf("Expected fallback row, got %q", got.HostName)
	}
}

// Delete while the primary is down: the fallback row goes away, the ID is
// suppressed so it cannot resurface, and a repeat delete is a clean no-op.
func TestFacadeDeleteWhilePrimaryDown(t *testing.T) {
	ctx := context.Background()
	facade, primary, _ := newTestFacade()

	created, err := facade.CreateRecord(ctx, &models.CollectionRecord{
		CollectionDate: "2026-03-14",
		HostName:       "Grace Church",
		SubmittedAt:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateRecord failed: %v", err)
	}

	primary.down = true

	ok, err := facade.DeleteRecord(ctx, created.RecordID)
	if err != nil {
		t.Fatalf("Expected fallback delete to succeed: %v", err)
	}
	if !ok {
		t.Fatal("Expected delete to report a removed row")
	}

	if !facade.IsSuppressed(storage.KindRecord, created.RecordID) {
		t.Error("Expected deleted ID suppressed")
	}
	if _, err := facade.GetRecord(ctx, created.RecordID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}

	// Repeat delete: nothing anywhere, clean no-op
	ok, err = facade.DeleteRecord(ctx, created.RecordID)
	if err != nil {
		t.Fatalf("Repeat delete errored: %v", err)
	}
	if ok {
		t.Error("Expected repeat delete to report no rows")
	}
}

// Suppressed IDs never appear in list results, even when the primary comes
// back up still holding the stale row.
func TestFacadeListFiltersSuppressed(t *testing.T) {
	ctx := context.Background()
	facade, primary, _ := newTestFacade()

	kept := seedRecord(t, primary.MemStore, 0, "Keep Host")
	stale := seedRecord(t, primary.MemStore, 0, "Stale Host")

	facade.Suppress(storage.KindRecord, stale.RecordID)

	records, err := facade.ListRecords(ctx)
	if err != nil {
		t.Fatalf("ListRecords failed: %v", err)
	}
	if len(records) != 1 || records[0].RecordID != kept.RecordID {
		t.Errorf("Expected only the kept record, got %+v", records)
	}
}

// A delete that removes nothing anywhere rolls its suppression back.
func TestFacadeDeleteMissRollsBackSuppression(t *testing.T) {
	ctx := context.Background()
	facade, _, _ := newTestFacade()

	ok, err := facade.DeleteRecord(ctx, 999)
	if err != nil {
		t.Fatalf("Delete of missing record errored: %v", err)
	}
	if ok {
		t.Error("Expected no-op delete")
	}
	if facade.IsSuppressed(storage.KindRecord, 999) {
		t.Error("Expected suppression rolled back after no-op delete")
	}
}

// Tombstones persisted by a delete survive a restart via LoadTombstones.
func TestFacadeTombstonesSurviveRestart(t *testing.T) {
	ctx := context.Background()
	facade, primary, fallback := newTestFacade()

	created := seedRecord(t, primary.MemStore, 0, "Grace Church")

	ok, err := facade.DeleteRecord(ctx, created.RecordID)
	if err != nil || !ok {
		t.Fatalf("Delete failed: ok=%v err=%v", ok, err)
	}

	// New façade over the same stores, as after a process restart
	restarted := storage.NewFacade(primary, fallback, nil, storage.BreakerSettings{})
	if err := restarted.LoadTombstones(ctx); err != nil {
		t.Fatalf("LoadTombstones failed: %v", err)
	}
	if !restarted.IsSuppressed(storage.KindRecord, created.RecordID) {
		t.Error("Expected tombstoned ID suppressed after restart")
	}
}

// Updates mirror to the fallback, upgrading to a create when the fallback
// never saw the row.
func TestFacadeUpdateMirrorUpgradesToCreate(t *testing.T) {
	ctx := context.Background()
	facade, primary, fallback := newTestFacade()

	created := seedRecord(t, primary.MemStore, 0, "Grace Church")

	created.IndividualSandwiches = 75
	if _, err := facade.UpdateRecord(ctx, created); err != nil {
		t.Fatalf("UpdateRecord failed: %v", err)
	}

	mirrored, err := fallback.GetRecord(ctx, created.RecordID)
	if err != nil {
		t.Fatalf("Expected update mirrored as create: %v", err)
	}
	if mirrored.IndividualSandwiches != 75 {
		t.Errorf("Expected mirrored count 75, got %d", mirrored.IndividualSandwiches)
	}
}
