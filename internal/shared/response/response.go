package response

import (
	"github.com/gin-gonic/gin"
)

type MessageBody struct {
	Message string `json:"message"`
}

// ErrorBody keeps the "detail" key existing API clients read the message from.
type ErrorBody struct {
	Detail  string `json:"detail"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

// Success writes data as the whole response body.
func Success(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

func Message(c *gin.Context, status int, message string) {
	c.JSON(status, MessageBody{Message: message})
}

func Error(c *gin.Context, status int, errorCode string, message string, details any) {
	c.AbortWithStatusJSON(status, ErrorBody{
		Detail:  message,
		Code:    errorCode,
		Details: details,
	})
}
