package response

import (
	"log"
	"net/http"
	"strconv"

	"carbook.dev/carbook/pkg/apperror"
	"github.com/gin-gonic/gin"
)

// Message is the uniform response envelope for non-payload replies.
type Message struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// GetUserID retrieves the authenticated user ID from the context
func GetUserID(c *gin.Context) (uint, error) {
	userIDStr, exists := c.Get("user_id")
	if !exists {
		return 0, apperror.ErrUnauthorized
	}

	userID, err := strconv.ParseUint(userIDStr.(string), 10, 64)
	if err != nil {
		return 0, apperror.ErrUnauthorized
	}

	return uint(userID), nil
}

// GetOptionalUserID returns the viewer's ID when a valid token was
// presented, or nil for guests.
func GetOptionalUserID(c *gin.Context) *uint {
	userID, err := GetUserID(c)
	if err != nil {
		return nil
	}
	return &userID
}

// ResponseMessage writes a {status, message} envelope with the given code.
func ResponseMessage(c *gin.Context, code int, message string) {
	c.JSON(code, Message{Status: code, Message: message})
}

// ResponseError standardized error response
func ResponseError(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	// Log internal errors
	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error]: %v", err)
		c.JSON(code, Message{Status: code, Message: apperror.ErrInternal.Error()})
		return
	}

	c.JSON(code, Message{Status: code, Message: err.Error()})
}
