package models

import (
	"time"
)

// ComplaintResponse is one saved complaint-response record. Column names match
// the existing ComplaintResponses table, which is shared with other consumers.
type ComplaintResponse struct {
	ID                uint      `gorm:"column:Id;primaryKey" json:"Id"`
	ResponseID        string    `gorm:"column:ResponseId;size:36;index;not null" json:"ResponseId"`
	Complaint         string    `gorm:"column:Complaint;type:text" json:"Complaint"`
	OriginalResponse  string    `gorm:"column:OriginalResponse;type:text" json:"OriginalResponse"`
	EditedResponse    string    `gorm:"column:EditedResponse;type:text" json:"EditedResponse"`
	OriginalCategory  string    `gorm:"column:OriginalCategory;size:100" json:"OriginalCategory"`
	EditedCategory    string    `gorm:"column:EditedCategory;size:100" json:"EditedCategory"`
	DocumentURL       string    `gorm:"column:DocumentUrl;size:500" json:"DocumentUrl"`
	SavedAt           time.Time `gorm:"column:SavedAt" json:"SavedAt"`
	IsCorrectCategory bool      `gorm:"column:IsCorrectCategory" json:"IsCorrectCategory"`
}

func (ComplaintResponse) TableName() string { return "ComplaintResponses" }

// ToMap renders the record as a field-name-to-value mapping for the listing
// endpoint, with SavedAt as an ISO-8601 string.
func (r *ComplaintResponse) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"Id":               r.ID,
		"ResponseId":       r.ResponseID,
		"Complaint":        r.Complaint,
		"OriginalResponse": r.OriginalResponse,
		"EditedResponse":   r.EditedResponse,
		"OriginalCategory": r.OriginalCategory,
		"EditedCategory":   r.EditedCategory,
		"DocumentUrl":      r.DocumentURL,
		"SavedAt":          r.SavedAt.Format(time.RFC3339),
	}
}
