package util

import (
	"net/http"

	"github.com/linoyezra1/learning-system/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Success writes the payload as-is; success bodies are plain JSON, only
// errors are wrapped in the {"error": ...} envelope the frontend expects.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "אין הרשאה מספקת")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// LogInternalError logs the cause server-side and returns a localized
// generic message; storage failures never leak driver detail to clients.
func LogInternalError(c *gin.Context, message string, err error) {
	logger.Log.Error("internal error",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	Error(c, http.StatusInternalServerError, message)
}
