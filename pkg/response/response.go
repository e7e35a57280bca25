package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the envelope for non-2xx responses. Success bodies are flat
// contract shapes written by the handlers directly.
type ErrorBody struct {
	Status    int         `json:"status"`
	RequestID string      `json:"request_id,omitempty"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}

// Error writes the error envelope and the matching status code.
func Error(c *gin.Context, status int, message string, details interface{}) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	c.JSON(status, ErrorBody{
		Status:    status,
		RequestID: c.GetString("request_id"),
		Message:   message,
		Details:   details,
	})
}

// AbortError writes the error envelope and stops the handler chain.
func AbortError(c *gin.Context, status int, message string, details interface{}) {
	Error(c, status, message, details)
	c.Abort()
}
