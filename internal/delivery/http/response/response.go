package response

import (
	"github.com/gin-gonic/gin"
)

// Response standardizes the API JSON envelope. The contact endpoint writes
// its SubmissionOutcome directly; this envelope covers everything else
// (health, locale, middleware errors).
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// Success sends a success response
func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: requestID(c),
	})
}

// Error sends an error response. Only the user-safe message is serialized;
// internal error detail stays in the server logs.
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Success:   false,
		Message:   message,
		RequestID: requestID(c),
	})
}

func requestID(c *gin.Context) string {
	id, _ := c.Get("RequestID")
	idStr, _ := id.(string)
	return idStr
}
