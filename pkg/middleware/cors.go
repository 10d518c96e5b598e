package middleware

import "github.com/gin-gonic/gin"

// CORS marks every response as readable from any origin. Preflight requests
// are not answered here: the editor page is same-origin and unknown methods
// fall through to the 404 handler.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Next()
	}
}
