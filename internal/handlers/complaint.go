package handlers

import (
	"context"

	"github.com/complaintsys/backend/pkg/logger"
	"github.com/complaintsys/backend/pkg/response"
	"github.com/gin-gonic/gin"
)

// Completer produces a draft reply and a category label for a complaint.
type Completer interface {
	GenerateResponse(ctx context.Context, complaint, findings string) (string, error)
	ClassifyComplaint(ctx context.Context, complaint, findings string) (string, error)
}

type ComplaintHandler struct {
	completions Completer
}

func NewComplaintHandler(completions Completer) *ComplaintHandler {
	return &ComplaintHandler{completions: completions}
}

type processComplaintRequest struct {
	Complaint string `json:"complaint"`
	Findings  string `json:"findings"`
}

// Process drafts a reply and classifies the complaint in one request. Both
// upstream calls must succeed; no partial result is returned.
func (h *ComplaintHandler) Process(c *gin.Context) {
	var req processComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid JSON payload.")
		return
	}
	if req.Complaint == "" {
		response.BadRequest(c, "Complaint text is required.")
		return
	}

	ctx := c.Request.Context()

	generated, err := h.completions.GenerateResponse(ctx, req.Complaint, req.Findings)
	if err != nil {
		logger.Error().Err(err).Msg("completion service failed to generate response")
		response.Error(c, response.NewService("Failed to generate response due to completion service issue."))
		return
	}

	category, err := h.completions.ClassifyComplaint(ctx, req.Complaint, req.Findings)
	if err != nil {
		logger.Error().Err(err).Msg("completion service failed to classify complaint")
		response.Error(c, response.NewService("Failed to generate response due to completion service issue."))
		return
	}

	response.OK(c, gin.H{"category": category, "response": generated})
}
