package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"glimmr/internal/core/config"
)

// NewRouter returns an engine with zap access logging and CORS. Recovery is
// left to the caller so panics can be rendered in the response envelope.
func NewRouter(l *zap.Logger, c config.CORS) *gin.Engine {
	r := gin.New()
	r.Use(ginzap.GinzapWithConfig(l, &ginzap.Config{
		TimeFormat: time.RFC3339,
		UTC:        true,
		SkipPaths:  []string{"/api/health", "/health", "/metrics"},
		Context: func(c *gin.Context) []zapcore.Field {
			if rid := c.GetString("X-Request-ID"); rid != "" {
				return []zapcore.Field{zap.String("request_id", rid)}
			}
			return nil
		},
	}))
	r.Use(cors.New(CORSConfig(c)))
	return r
}

func CORSConfig(c config.CORS) cors.Config {
	cc := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: c.Credentials,
		MaxAge:           12 * time.Hour,
	}
	if len(c.Origins) == 0 || (len(c.Origins) == 1 && c.Origins[0] == "*") {
		cc.AllowAllOrigins = true
		cc.AllowCredentials = false
	} else {
		cc.AllowOrigins = c.Origins
	}
	return cc
}

func BuildServer(addr string, handler http.Handler, rt, wt, it time.Duration) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       rt,
		ReadHeaderTimeout: rt,
		WriteTimeout:      wt,
		IdleTimeout:       it,
		MaxHeaderBytes:    1 << 20,
	}
}

func Addr(host string, port int) string { return fmt.Sprintf("%s:%d", host, port) }

// BaseURL is the clickable form of addr printed at startup.
func BaseURL(host string, port int) string {
	if host == "" || host == "0.0.0.0" {
		host = "127.0.0.1"
	}
	return fmt.Sprintf("http://%s:%d", host, port)
}
