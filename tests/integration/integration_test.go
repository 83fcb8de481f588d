package integration_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/sandwichproject/opsdb/internal/config"
	"github.com/sandwichproject/opsdb/internal/database"
	"github.com/sandwichproject/opsdb/internal/models"
	"github.com/sandwichproject/opsdb/internal/reconciler"
	"github.com/sandwichproject/opsdb/internal/storage"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// TestWithMariaDB tests the storage layer against a real MariaDB container
func TestWithMariaDB(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	image := os.Getenv("DB_IMAGE")
	if image == "" {
		image = "mariadb:11"
	}

	// Start MariaDB container
	mariadbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{"3306/tcp"},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": "rootpass",
				"MYSQL_DATABASE":      "testdb",
				"MYSQL_USER":          "testuser",
				"MYSQL_PASSWORD":      "testpass",
			},
			WaitingFor: wait.ForLog("ready for connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start MariaDB container: %v", err)
	}
	defer func() {
		if err := mariadbContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate MariaDB container: %v", err)
		}
	}()

	// Get container host and port
	host, err := mariadbContainer.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}
	port, err := mariadbContainer.MappedPort(ctx, "3306")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	// Create config
	cfg := &config.Config{
		DBType:            "mysql",
		DBHost:            host,
		DBPort:            port.Port(),
		DBDatabase:        "testdb",
		DBUser:            "testuser",
		DBPassword:        "testpass",
		DBConnectionLimit: 5,
	}

	// Wait for database to be ready
	time.Sleep(5 * time.Second)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run migrations
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	// Run tests
	t.Run("RecordRoundTrip", func(t *testing.T) {
		testRecordRoundTrip(t, db)
	})

	t.Run("FacadeFailover", func(t *testing.T) {
		testFacadeFailover(t, db)
	})

	t.Run("ReconcilerConvergence", func(t *testing.T) {
		testReconcilerConvergence(t, db)
	})
}

func testRecordRoundTrip(t *testing.T, db *gorm.DB) {
	ctx := context.Background()
	store := storage.NewDBStore(db)

	created, err := store.CreateRecord(ctx, &models.CollectionRecord{
		CollectionDate:       "2026-03-14",
		HostName:             "Grace Church",
		IndividualSandwiches: 30,
		GroupCollections:     models.NewJSON([]byte(`[{"name":"Scouts","count":40}]`)),
		SubmittedAt:          time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateRecord failed: %v", err)
	}

	got, err := store.GetRecord(ctx, created.RecordID)
	if err != nil {
		t.Fatalf("GetRecord failed: %v", err)
	}
	if got.TotalSandwiches() != 70 {
		t.Errorf("Expected total 70, got %d", got.TotalSandwiches())
	}

	ok, err := store.DeleteRecord(ctx, created.RecordID)
	if err != nil || !ok {
		t.Fatalf("Expected delete to succeed, got ok=%v err=%v", ok, err)
	}
}

// The façade keeps serving from the in-memory fallback even when the primary
// is a real database.
func testFacadeFailover(t *testing.T, db *gorm.DB) {
	ctx := context.Background()
	primary := storage.NewDBStore(db)
	fallback := storage.NewMemStore()
	facade := storage.NewFacade(primary, fallback, nil, storage.BreakerSettings{
		ConsecutiveFailures: 3,
		OpenTimeout:         5 * time.Second,
	})

	created, err := facade.CreateRecord(ctx, &models.CollectionRecord{
		CollectionDate: "2026-03-14",
		HostName:       "Oak School",
		SubmittedAt:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateRecord failed: %v", err)
	}

	// The write is mirrored into the fallback
	if _, err := fallback.GetRecord(ctx, created.RecordID); err != nil {
		t.Fatalf("Expected record mirrored to fallback: %v", err)
	}

	// A delete removes it everywhere and leaves a tombstone
	ok, err := facade.DeleteRecord(ctx, created.RecordID)
	if err != nil || !ok {
		t.Fatalf("Expected delete to succeed, got ok=%v err=%v", ok, err)
	}
	if _, err := facade.GetRecord(ctx, created.RecordID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
}

func testReconcilerConvergence(t *testing.T, db *gorm.DB) {
	ctx := context.Background()
	primary := storage.NewDBStore(db)
	fallback := storage.NewMemStore()
	facade := storage.NewFacade(primary, fallback, nil, storage.BreakerSettings{})

	// Row written straight to the database, bypassing the façade
	direct, err := primary.CreateRecord(ctx, &models.CollectionRecord{
		CollectionDate: "2026-03-16",
		HostName:       "Direct Host",
		SubmittedAt:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateRecord failed: %v", err)
	}

	r := reconciler.New(facade, nil, "@every 1h", 1)
	if err := r.RunOnce(ctx); err != nil {
		t.Fatalf("RunOnce failed: %v", err)
	}

	if _, err := fallback.GetRecord(ctx, direct.RecordID); err != nil {
		t.Errorf("Expected direct write mirrored to fallback: %v", err)
	}
}
