package response

import (
	"github.com/gin-gonic/gin"

	domainerrors "github.com/Dinnartec/core-dashboard-web/internal/domain/errors"
	"github.com/Dinnartec/core-dashboard-web/pkg/logger"
	"go.uber.org/zap"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Deleted sends the body shared by every delete endpoint.
func Deleted(c *gin.Context) {
	c.JSON(200, gin.H{"success": true})
}

// Error sends an error response of the form {"error": message}
func Error(c *gin.Context, err error) {
	appErr := domainerrors.FromError(err)

	if appErr.Status >= 500 {
		logger.Error(c.Request.Context(), "Request failed",
			zap.String("code", appErr.Code),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}

	c.AbortWithStatusJSON(appErr.Status, gin.H{"error": appErr.Message})
}
