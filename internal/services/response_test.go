package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/complaintsys/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeBlobStore records uploads in memory.
type fakeBlobStore struct {
	uploads map[string][]byte
	failErr error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{uploads: make(map[string][]byte)}
}

func (f *fakeBlobStore) Upload(_ context.Context, blobName string, data []byte) (string, error) {
	if f.failErr != nil {
		return "", f.failErr
	}
	f.uploads[blobName] = data
	return "https://blobs.example.test/responses/" + blobName, nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.ComplaintResponse{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func TestResponseService_Save_NoAttachment(t *testing.T) {
	db := newTestDB(t)
	blobs := newFakeBlobStore()
	svc := NewResponseService(db, blobs)

	responseID, err := svc.Save(context.Background(), &SaveResponseInput{
		Complaint:        "ATM swallowed my card",
		OriginalResponse: "We are sorry to hear that.",
		EditedResponse:   "We sincerely apologize and will return your card.",
		OriginalCategory: "Channels",
		EditedCategory:   "Channels",
	})
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	if _, err := uuid.Parse(responseID); err != nil {
		t.Errorf("Save() returned non-UUID response id %q", responseID)
	}
	if len(blobs.uploads) != 0 {
		t.Errorf("no attachment was given, but %d blob(s) were uploaded", len(blobs.uploads))
	}

	var record models.ComplaintResponse
	if err := db.Where(&models.ComplaintResponse{ResponseID: responseID}).First(&record).Error; err != nil {
		t.Fatalf("saved row not found: %v", err)
	}
	if record.DocumentURL != "" {
		t.Errorf("DocumentUrl = %q, expected empty", record.DocumentURL)
	}
	if !record.IsCorrectCategory {
		t.Error("IsCorrectCategory should be true for matching categories")
	}
	if record.SavedAt.IsZero() {
		t.Error("SavedAt should be set")
	}
}

func TestResponseService_Save_IsCorrectCategory(t *testing.T) {
	tests := []struct {
		name             string
		originalCategory string
		editedCategory   string
		expected         bool
	}{
		{"matching categories", "Staff", "Staff", true},
		{"differing categories", "Staff", "Channels", false},
		{"original empty", "", "Staff", false},
		{"edited empty", "Staff", "", false},
		{"both empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newTestDB(t)
			svc := NewResponseService(db, newFakeBlobStore())

			responseID, err := svc.Save(context.Background(), &SaveResponseInput{
				OriginalResponse: "original",
				EditedResponse:   "edited",
				OriginalCategory: tt.originalCategory,
				EditedCategory:   tt.editedCategory,
			})
			if err != nil {
				t.Fatalf("Save() error: %v", err)
			}

			var record models.ComplaintResponse
			if err := db.Where(&models.ComplaintResponse{ResponseID: responseID}).First(&record).Error; err != nil {
				t.Fatalf("saved row not found: %v", err)
			}
			if record.IsCorrectCategory != tt.expected {
				t.Errorf("IsCorrectCategory = %v, expected %v", record.IsCorrectCategory, tt.expected)
			}
		})
	}
}

func TestResponseService_Save_DefaultsComplaint(t *testing.T) {
	db := newTestDB(t)
	svc := NewResponseService(db, newFakeBlobStore())

	responseID, err := svc.Save(context.Background(), &SaveResponseInput{
		OriginalResponse: "original",
		EditedResponse:   "edited",
		OriginalCategory: "Staff",
		EditedCategory:   "Staff",
	})
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	var record models.ComplaintResponse
	if err := db.Where(&models.ComplaintResponse{ResponseID: responseID}).First(&record).Error; err != nil {
		t.Fatalf("saved row not found: %v", err)
	}
	if record.Complaint != "Unknown" {
		t.Errorf("Complaint = %q, expected %q", record.Complaint, "Unknown")
	}
}

func TestResponseService_Save_WithAttachment(t *testing.T) {
	db := newTestDB(t)
	blobs := newFakeBlobStore()
	svc := NewResponseService(db, blobs)

	responseID, err := svc.Save(context.Background(), &SaveResponseInput{
		Complaint:        "Fee charged twice",
		OriginalResponse: "original",
		EditedResponse:   "edited",
		OriginalCategory: "Credit Cards",
		EditedCategory:   "Credit Cards",
		Document:         []byte("%PDF-1.4 fake"),
		DocumentName:     "evidence.pdf",
	})
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	wantBlob := responseID + "/evidence.pdf"
	if _, ok := blobs.uploads[wantBlob]; !ok {
		t.Fatalf("expected upload at %q, uploads: %v", wantBlob, blobs.uploads)
	}

	var record models.ComplaintResponse
	if err := db.Where(&models.ComplaintResponse{ResponseID: responseID}).First(&record).Error; err != nil {
		t.Fatalf("saved row not found: %v", err)
	}
	if !strings.Contains(record.DocumentURL, wantBlob) {
		t.Errorf("DocumentUrl = %q, expected it to contain %q", record.DocumentURL, wantBlob)
	}
}

func TestResponseService_Save_BlobFailure(t *testing.T) {
	db := newTestDB(t)
	blobs := newFakeBlobStore()
	blobs.failErr = errors.New("container unavailable")
	svc := NewResponseService(db, blobs)

	_, err := svc.Save(context.Background(), &SaveResponseInput{
		OriginalResponse: "original",
		EditedResponse:   "edited",
		OriginalCategory: "Staff",
		EditedCategory:   "Staff",
		Document:         []byte("data"),
		DocumentName:     "evidence.pdf",
	})
	if err == nil {
		t.Fatal("Save() should fail when the blob upload fails")
	}

	var count int64
	db.Model(&models.ComplaintResponse{}).Count(&count)
	if count != 0 {
		t.Errorf("no row should be inserted after a failed upload, got %d", count)
	}
}

func TestResponseService_List(t *testing.T) {
	db := newTestDB(t)
	svc := NewResponseService(db, newFakeBlobStore())

	results, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("List() on empty table returned %d results", len(results))
	}

	for i := 0; i < 3; i++ {
		if _, err := svc.Save(context.Background(), &SaveResponseInput{
			Complaint:        "complaint",
			OriginalResponse: "original",
			EditedResponse:   "edited",
			OriginalCategory: "Staff",
			EditedCategory:   "Staff",
		}); err != nil {
			t.Fatalf("Save() error: %v", err)
		}
	}

	results, err = svc.List(context.Background())
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("List() returned %d results, expected 3", len(results))
	}

	for _, result := range results {
		savedAt, ok := result["SavedAt"].(string)
		if !ok {
			t.Fatalf("SavedAt should be a string, got %T", result["SavedAt"])
		}
		if _, err := time.Parse(time.RFC3339, savedAt); err != nil {
			t.Errorf("SavedAt %q is not ISO-8601: %v", savedAt, err)
		}
	}

	// Listing twice without intervening writes is idempotent.
	again, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(again) != len(results) {
		t.Errorf("second List() returned %d results, expected %d", len(again), len(results))
	}
	for i := range results {
		if results[i]["ResponseId"] != again[i]["ResponseId"] {
			t.Errorf("result %d changed between listings", i)
		}
	}
}
