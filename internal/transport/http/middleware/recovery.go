package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	resp "glimmr/internal/transport/http/response"
)

func Recovery(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				l.Error("panic recovered",
					zap.Any("panic", rec),
					zap.String("path", c.Request.URL.Path),
					zap.String("request_id", c.GetString(KeyRequestID)),
					zap.ByteString("stack", debug.Stack()),
				)
				resp.Abort(c, resp.Error(resp.CodeServerError, "internal error").WithCause(fmt.Errorf("%v", rec)))
			}
		}()
		c.Next()
	}
}
