package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"glimmr/internal/core/config"
	"glimmr/internal/core/server"
	mdw "glimmr/internal/transport/http/middleware"
)

// NewAPIEngine builds the storefront engine. Everything under /api is rate
// limited per client IP; /api/health and /metrics are not.
func NewAPIEngine(l *zap.Logger, cfg *config.Config, reg *Registry) *gin.Engine {
	h := cfg.App.HTTP
	r := server.NewRouter(l, cfg.CORS)

	r.Use(
		mdw.RequestID(),
		mdw.Recovery(l),
		mdw.ConcurrencyLimit(max(h.MaxInFlight, 1)),
		mdw.MaxBodyBytes(max(h.MaxBodyMB, 1)<<20),
		mdw.Timeout(time.Duration(max(h.HandlerTimeoutSec, 1))*time.Second),
		mdw.Metrics(),
	)

	r.GET("/api/health", health)
	r.GET("/metrics", gin.WrapH(mdw.MetricsHandler()))

	api := r.Group("/api")
	api.Use(mdw.RateLimitPerIP(cfg.RateLimit.Window(), cfg.RateLimit.MaxRequests))
	reg.MountAllAPI(api)

	return r
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
