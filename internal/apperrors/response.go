package apperrors

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HandleError logs err and writes the error envelope to the response.
func HandleError(c *gin.Context, err error, context string) {
	LogError(err, context)

	var appErr *AppError
	if errors.As(err, &appErr) {
		writeError(c, appErr)
		return
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(c, New(ProjectNotFound, ""))
		return
	}

	writeError(c, New(InternalErrorCode, err.Error()))
}

func writeError(c *gin.Context, appErr *AppError) {
	body := gin.H{
		"error": gin.H{
			"code":        appErr.Code,
			"title":       appErr.Title,
			"message":     appErr.Message,
			"suggestion":  appErr.Suggestion,
			"category":    appErr.Category,
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"status_code": appErr.Status,
		},
	}
	if appErr.Data != nil {
		body["error"].(gin.H)["details"] = appErr.Data
	} else if appErr.Details != "" {
		body["error"].(gin.H)["details"] = appErr.Details
	}
	c.JSON(appErr.Status, body)
}

// Success writes the standard success envelope: {success:{...}, data:{...}}.
func Success(c *gin.Context, status int, message string, data any) {
	body := gin.H{
		"success": gin.H{
			"message":     message,
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"status_code": status,
		},
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}
