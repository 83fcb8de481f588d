package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sandwichproject/opsdb/internal/analyzer"
	"github.com/sandwichproject/opsdb/internal/handlers"
	"github.com/sandwichproject/opsdb/internal/models"
	"github.com/sandwichproject/opsdb/internal/services"
	"github.com/sandwichproject/opsdb/internal/storage"
)

func setupDuplicateApp(t *testing.T) (*fiber.App, *storage.MemStore) {
	t.Helper()
	store := storage.NewMemStore()
	handler := &handlers.DuplicateHandler{Store: store}

	app := fiber.New()
	app.Get("/api/duplicates", handler.GetReport)
	app.Post("/api/duplicates/clean", handler.CleanAll)
	app.Post("/api/duplicates/clean/:key", handler.CleanGroup)
	app.Post("/api/duplicates/suspicious/clean", handler.CleanSuspicious)

	// Two identical submissions of the same collection, one clean record
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	seeds := []models.CollectionRecord{
		{CollectionDate: "2026-03-14", HostName: "Grace Church", IndividualSandwiches: 30, SubmittedAt: base},
		{CollectionDate: "2026-03-14", HostName: "Grace Church", IndividualSandwiches: 30, SubmittedAt: base.Add(time.Hour)},
		{CollectionDate: "2026-03-15", HostName: "Oak School", IndividualSandwiches: 25, SubmittedAt: base},
	}
	for i := range seeds {
		if _, err := store.CreateRecord(context.Background(), &seeds[i]); err != nil {
			t.Fatalf("seed record failed: %v", err)
		}
	}
	return app, store
}

// TestDuplicateReportAndClean walks the dashboard flow: inspect the report,
// clean everything, verify the report comes back empty.
func TestDuplicateReportAndClean(t *testing.T) {
	app, store := setupDuplicateApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/duplicates", nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var report analyzer.Report
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatalf("Failed to decode report: %v", err)
	}
	if len(report.DuplicateGroups) != 1 {
		t.Fatalf("Expected 1 duplicate group, got %d", len(report.DuplicateGroups))
	}

	// The report is read-only
	if records, _ := store.ListRecords(context.Background()); len(records) != 3 {
		t.Fatalf("Expected report to leave all 3 records, got %d", len(records))
	}

	resp, err = app.Test(httptest.NewRequest("POST", "/api/duplicates/clean", nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var result services.CleanupResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode result: %v", err)
	}
	if result.GroupsCleaned != 1 || result.RecordsDeleted != 1 {
		t.Errorf("Expected 1 group / 1 record cleaned, got %+v", result)
	}

	resp, _ = app.Test(httptest.NewRequest("GET", "/api/duplicates", nil))
	report = analyzer.Report{}
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatalf("Failed to decode report: %v", err)
	}
	if len(report.DuplicateGroups) != 0 {
		t.Errorf("Expected no duplicate groups after cleanup, got %d", len(report.DuplicateGroups))
	}
}

// TestCleanSingleGroup tests the POST /api/duplicates/clean/:key endpoint
func TestCleanSingleGroup(t *testing.T) {
	app, _ := setupDuplicateApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/duplicates", nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	var report analyzer.Report
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatalf("Failed to decode report: %v", err)
	}
	key := report.DuplicateGroups[0].Key

	resp, err = app.Test(httptest.NewRequest("POST", fmt.Sprintf("/api/duplicates/clean/%s", key), nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	// Cleaning the same key again finds nothing
	resp, _ = app.Test(httptest.NewRequest("POST", fmt.Sprintf("/api/duplicates/clean/%s", key), nil))
	if resp.StatusCode != 404 {
		t.Errorf("Expected status 404 for a cleaned key, got %d", resp.StatusCode)
	}
}

// TestCleanSuspiciousEndpoint tests the POST /api/duplicates/suspicious/clean endpoint
func TestCleanSuspiciousEndpoint(t *testing.T) {
	store := storage.NewMemStore()
	handler := &handlers.DuplicateHandler{Store: store}
	app := fiber.New()
	app.Post("/api/duplicates/suspicious/clean", handler.CleanSuspicious)

	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	seeds := []models.CollectionRecord{
		{CollectionDate: "2026-03-14", HostName: "Host A", IndividualSandwiches: 500, SubmittedAt: base},
		{CollectionDate: "2026-03-14", HostName: "Host B", IndividualSandwiches: 47, SubmittedAt: base},
	}
	for i := range seeds {
		if _, err := store.CreateRecord(context.Background(), &seeds[i]); err != nil {
			t.Fatalf("seed record failed: %v", err)
		}
	}

	resp, err := app.Test(httptest.NewRequest("POST", "/api/duplicates/suspicious/clean", nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var result services.CleanupResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode result: %v", err)
	}
	if result.RecordsDeleted != 1 {
		t.Errorf("Expected 1 suspicious record deleted, got %d", result.RecordsDeleted)
	}
}
