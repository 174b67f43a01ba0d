package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"glimmr/internal/core/auth"
	"glimmr/internal/core/config"
	"glimmr/internal/core/server"
	"glimmr/internal/domain"
	mdw "glimmr/internal/transport/http/middleware"
)

// NewAdminEngine serves /admin/v1. The whole group requires an admin token.
func NewAdminEngine(l *zap.Logger, cfg *config.Config, jwter *auth.JWTer, reg *Registry) *gin.Engine {
	r := server.NewRouter(l, cfg.CORS)

	r.Use(
		mdw.RequestID(),
		mdw.Recovery(l),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(100),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(30*time.Second),
		mdw.Metrics(),
	)

	r.GET("/health", health)
	r.GET("/metrics", gin.WrapH(mdw.MetricsHandler()))

	admin := r.Group("/admin/v1")
	admin.Use(mdw.AuthJWT(jwter, domain.RoleAdmin))
	reg.MountAllAdmin(admin)

	return r
}
