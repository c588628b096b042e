package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AppError is a structured application error. Message is the sanitized text
// returned to the client; the underlying cause is logged server-side only.
type AppError struct {
	HTTPStatus int
	Message    string
}

func (e *AppError) Error() string {
	return e.Message
}

// NewValidation reports bad or missing input. No side effects were attempted.
func NewValidation(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusBadRequest, Message: msg}
}

// NewService reports an upstream completion-service failure.
func NewService(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusInternalServerError, Message: msg}
}

// NewStorage reports a database or blob-store failure.
func NewStorage(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusInternalServerError, Message: msg}
}

// NewInternal reports an unanticipated failure.
func NewInternal(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusInternalServerError, Message: msg}
}

// OK sends a 200 response with the payload as the response body.
func OK(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

// Error sends an error body in the {"error": message} wire shape. If err is an
// *AppError its status and message are used; anything else becomes a generic
// 500 so unexpected error text never reaches the client.
func Error(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus, gin.H{"error": appErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while processing your request."})
}

// BadRequest sends a 400 error body.
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// MethodNotAllowed sends the 405 body for routes hit with the wrong verb.
func MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed."})
}
