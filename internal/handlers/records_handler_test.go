package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sandwichproject/opsdb/internal/handlers"
	"github.com/sandwichproject/opsdb/internal/models"
	"github.com/sandwichproject/opsdb/internal/storage"
)

// setupRecordApp wires the record routes over an in-memory store.
func setupRecordApp() (*fiber.App, *storage.MemStore) {
	store := storage.NewMemStore()
	handler := &handlers.RecordHandler{Store: store}

	app := fiber.New()
	app.Get("/api/records", handler.ListRecords)
	app.Get("/api/records/:id", handler.GetRecord)
	app.Post("/api/records", handler.CreateRecord)
	app.Put("/api/records/:id", handler.UpdateRecord)
	app.Delete("/api/records", handler.BatchDeleteRecords)
	app.Delete("/api/records/:id", handler.DeleteRecord)
	return app, store
}

func seedStoreRecord(t *testing.T, store *storage.MemStore, host string, count int) *models.CollectionRecord {
	t.Helper()
	rec, err := store.CreateRecord(context.Background(), &models.CollectionRecord{
		CollectionDate:       "2026-03-14",
		HostName:             host,
		IndividualSandwiches: count,
		SubmittedAt:          time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed record failed: %v", err)
	}
	return rec
}

// TestCreateRecord tests the POST /api/records endpoint
func TestCreateRecord(t *testing.T) {
	app, store := setupRecordApp()

	body := `{
		"collectionDate": "2026-03-14",
		"hostName": "Grace Church",
		"individualSandwiches": 30,
		"groupCollections": [{"name": "Scouts", "count": 40}]
	}`
	req := httptest.NewRequest("POST", "/api/records", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Fatalf("Expected status 201, got %d", resp.StatusCode)
	}

	var created models.CollectionRecord
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if created.RecordID == 0 {
		t.Error("Expected an allocated record ID")
	}
	if created.TotalSandwiches() != 70 {
		t.Errorf("Expected total 70, got %d", created.TotalSandwiches())
	}

	if records, _ := store.ListRecords(context.Background()); len(records) != 1 {
		t.Errorf("Expected 1 stored record, got %d", len(records))
	}
}

// TestCreateRecordValidationError tests rejection of a bad payload
func TestCreateRecordValidationError(t *testing.T) {
	app, _ := setupRecordApp()

	body := `{"collectionDate": "not-a-date", "hostName": "Grace Church"}`
	req := httptest.NewRequest("POST", "/api/records", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}
}

// TestGetRecord tests the GET /api/records/:id endpoint
func TestGetRecord(t *testing.T) {
	app, store := setupRecordApp()
	rec := seedStoreRecord(t, store, "Grace Church", 30)

	resp, err := app.Test(httptest.NewRequest("GET", fmt.Sprintf("/api/records/%d", rec.RecordID), nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var got models.CollectionRecord
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if got.HostName != "Grace Church" {
		t.Errorf("Expected host name round-trip, got %q", got.HostName)
	}

	// Missing ID
	resp, _ = app.Test(httptest.NewRequest("GET", "/api/records/9999", nil))
	if resp.StatusCode != 404 {
		t.Errorf("Expected status 404 for a missing record, got %d", resp.StatusCode)
	}

	// Malformed ID
	resp, _ = app.Test(httptest.NewRequest("GET", "/api/records/abc", nil))
	if resp.StatusCode != 400 {
		t.Errorf("Expected status 400 for a malformed ID, got %d", resp.StatusCode)
	}
}

// TestListRecords tests the GET /api/records endpoint
func TestListRecords(t *testing.T) {
	app, store := setupRecordApp()
	seedStoreRecord(t, store, "Grace Church", 30)
	seedStoreRecord(t, store, "Oak School", 20)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/records", nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var records []models.CollectionRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("Expected 2 records, got %d", len(records))
	}
}

// TestDeleteRecord tests the DELETE /api/records/:id endpoint
func TestDeleteRecord(t *testing.T) {
	app, store := setupRecordApp()
	rec := seedStoreRecord(t, store, "Grace Church", 30)

	resp, err := app.Test(httptest.NewRequest("DELETE", fmt.Sprintf("/api/records/%d", rec.RecordID), nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result["affectedRows"] != float64(1) {
		t.Errorf("Expected 1 affected row, got %v", result["affectedRows"])
	}

	// Repeat delete: the row is gone
	resp, _ = app.Test(httptest.NewRequest("DELETE", fmt.Sprintf("/api/records/%d", rec.RecordID), nil))
	if resp.StatusCode != 404 {
		t.Errorf("Expected status 404 for a repeat delete, got %d", resp.StatusCode)
	}
}

// TestBatchDeleteRecords tests the DELETE /api/records endpoint
func TestBatchDeleteRecords(t *testing.T) {
	app, store := setupRecordApp()
	a := seedStoreRecord(t, store, "Grace Church", 30)
	b := seedStoreRecord(t, store, "Oak School", 20)
	seedStoreRecord(t, store, "Keep Host", 10)

	// IDs arrive as strings from some dashboard clients
	body := fmt.Sprintf(`{"ids": ["%d", %d]}`, a.RecordID, b.RecordID)
	req := httptest.NewRequest("DELETE", "/api/records", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result["affectedRows"] != float64(2) {
		t.Errorf("Expected 2 affected rows, got %v", result["affectedRows"])
	}

	// Empty ID list rejected
	req = httptest.NewRequest("DELETE", "/api/records", bytes.NewBufferString(`{"ids": []}`))
	req.Header.Set("Content-Type", "application/json")
	resp, _ = app.Test(req)
	if resp.StatusCode != 400 {
		t.Errorf("Expected status 400 for an empty batch, got %d", resp.StatusCode)
	}
}
