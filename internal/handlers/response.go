package handlers

import (
	"net/http"

	"hospital-gin/internal/apperr"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respond writes a success envelope. extra is merged into the body.
func respond(c *gin.Context, extra gin.H) {
	body := gin.H{"success": true}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

func respondData(c *gin.Context, data any) {
	respond(c, gin.H{"data": data})
}

// fail aborts with the error envelope. Causes of server-side failures are
// logged and never sent to the client.
func (h *Handler) fail(c *gin.Context, err error) {
	appErr := apperr.As(err)
	status := apperr.StatusOf(appErr)

	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", status),
			zap.Error(appErr),
		)
	}

	body := gin.H{"success": false, "message": appErr.Message}
	if len(appErr.Fields) > 0 {
		body["errors"] = appErr.Fields
	}
	c.AbortWithStatusJSON(status, body)
}
