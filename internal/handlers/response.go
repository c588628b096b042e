package handlers

import (
	"io"

	"github.com/complaintsys/backend/internal/services"
	"github.com/complaintsys/backend/pkg/logger"
	"github.com/complaintsys/backend/pkg/response"
	"github.com/gin-gonic/gin"
)

type ResponseHandler struct {
	responses *services.ResponseService
}

func NewResponseHandler(responses *services.ResponseService) *ResponseHandler {
	return &ResponseHandler{responses: responses}
}

// Save validates the multipart form, stores the optional attachment and
// inserts one ComplaintResponses row.
func (h *ResponseHandler) Save(c *gin.Context) {
	in := &services.SaveResponseInput{
		Complaint:        c.PostForm("complaint"),
		OriginalResponse: c.PostForm("originalResponse"),
		EditedResponse:   c.PostForm("editedResponse"),
		OriginalCategory: c.PostForm("originalCategory"),
		EditedCategory:   c.PostForm("editedCategory"),
	}

	if in.OriginalResponse == "" || in.EditedResponse == "" ||
		in.OriginalCategory == "" || in.EditedCategory == "" {
		response.BadRequest(c, "All response and category fields are required.")
		return
	}

	if fileHeader, err := c.FormFile("document"); err == nil {
		f, err := fileHeader.Open()
		if err != nil {
			logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("failed to open uploaded document")
			response.Error(c, response.NewInternal("An error occurred while saving the response."))
			return
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("failed to read uploaded document")
			response.Error(c, response.NewInternal("An error occurred while saving the response."))
			return
		}

		in.Document = data
		in.DocumentName = fileHeader.Filename
	}

	responseID, err := h.responses.Save(c.Request.Context(), in)
	if err != nil {
		logger.Error().Err(err).Msg("failed to save complaint response")
		response.Error(c, response.NewStorage("Failed to save response due to storage issue."))
		return
	}

	response.OK(c, gin.H{
		"status":     "Response and document saved successfully",
		"responseId": responseID,
	})
}

// List returns every saved record.
func (h *ResponseHandler) List(c *gin.Context) {
	results, err := h.responses.List(c.Request.Context())
	if err != nil {
		logger.Error().Err(err).Msg("failed to list saved responses")
		response.Error(c, response.NewStorage("Failed to retrieve saved responses due to database issue."))
		return
	}

	response.OK(c, gin.H{"responses": results})
}
