package middleware

import (
	"net/http"

	"github.com/firepolicepension/jsoneditor/pkg/logger"
	"github.com/gin-gonic/gin"
)

// Recovery turns a panic in a handler into a 500 JSON answer so the client
// always gets a response.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		logger.Errorf("panic serving %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal server error"})
	})
}
