package services

import (
	"context"
	"fmt"
	"time"

	"github.com/complaintsys/backend/internal/models"
	"github.com/complaintsys/backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SaveResponseInput carries the validated form fields for one save operation.
// Document is nil when no attachment was submitted.
type SaveResponseInput struct {
	Complaint        string
	OriginalResponse string
	EditedResponse   string
	OriginalCategory string
	EditedCategory   string
	Document         []byte
	DocumentName     string
}

// ResponseService persists edited complaint responses and lists saved records.
type ResponseService struct {
	db    *gorm.DB
	blobs BlobStore
}

func NewResponseService(db *gorm.DB, blobs BlobStore) *ResponseService {
	return &ResponseService{db: db, blobs: blobs}
}

// Save uploads the optional attachment, inserts one row and returns the
// generated response id. The blob upload is not rolled back if the insert
// fails afterwards; the orphaned blob is logged and left in place.
func (s *ResponseService) Save(ctx context.Context, in *SaveResponseInput) (string, error) {
	complaint := in.Complaint
	if complaint == "" {
		complaint = "Unknown"
	}

	// Defensive: categories are required upstream, but the derived flag must
	// still be false if either arrives empty.
	isCorrect := in.OriginalCategory != "" && in.EditedCategory != "" &&
		in.OriginalCategory == in.EditedCategory

	responseID := uuid.NewString()

	documentURL := ""
	if len(in.Document) > 0 && in.DocumentName != "" {
		blobName := responseID + "/" + in.DocumentName
		url, err := s.blobs.Upload(ctx, blobName, in.Document)
		if err != nil {
			return "", fmt.Errorf("store attachment: %w", err)
		}
		documentURL = url
		logger.Infof("[response] uploaded document to %s", url)
	}

	record := models.ComplaintResponse{
		ResponseID:        responseID,
		Complaint:         complaint,
		OriginalResponse:  in.OriginalResponse,
		EditedResponse:    in.EditedResponse,
		OriginalCategory:  in.OriginalCategory,
		EditedCategory:    in.EditedCategory,
		DocumentURL:       documentURL,
		SavedAt:           time.Now(),
		IsCorrectCategory: isCorrect,
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		if documentURL != "" {
			logger.Warnf("[response] insert failed after upload, orphaned blob at %s", documentURL)
		}
		return "", fmt.Errorf("insert complaint response: %w", err)
	}

	logger.Infof("[response] saved response with id %s", responseID)
	return responseID, nil
}

// List reads every saved record in storage-natural order.
func (s *ResponseService) List(ctx context.Context) ([]map[string]interface{}, error) {
	var rows []models.ComplaintResponse
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("select complaint responses: %w", err)
	}

	results := make([]map[string]interface{}, 0, len(rows))
	for i := range rows {
		results = append(results, rows[i].ToMap())
	}
	return results, nil
}
