package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	resp "glimmr/internal/transport/http/response"
)

// MaxBodyBytes wraps the body in http.MaxBytesReader.
func MaxBodyBytes(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
		if c.Err() != nil && !c.Writer.Written() {
			resp.Abort(c, resp.Error(resp.CodeBadRequest, "request body too large"))
		}
	}
}
