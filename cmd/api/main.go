package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"glimmr/internal/app"
	"glimmr/internal/core/config"
	"glimmr/internal/core/logger"
	"glimmr/internal/core/server"
	"glimmr/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.MustLoad(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.FromConfig(cfg.Log)
	defer cleanup()
	defer logger.RedirectStdLog(log, zapcore.InfoLevel)()

	if cfg.JWT.Secret == "" {
		log.Fatal("jwt secret is empty; set JWT_SECRET")
	}

	ctx := context.Background()
	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("bootstrap failed", zap.Error(err))
	}

	r := router.NewAPIEngine(log, cfg, a.Registry())

	h := cfg.App.HTTP
	addr := server.Addr(h.Host, h.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(h.ReadTimeoutSec)*time.Second,
		time.Duration(h.WriteTimeoutSec)*time.Second,
		time.Duration(h.IdleTimeoutSec)*time.Second,
	)
	srv.ErrorLog = logger.StdLogger(log, zapcore.WarnLevel)

	baseURL := server.BaseURL(h.Host, h.Port)
	log.Info("storefront api starting",
		zap.String("addr", addr),
		zap.String("env", cfg.App.Env),
		zap.String("db", cfg.DB.Driver),
		zap.Bool("cache", a.Cache != nil),
		zap.String("health", baseURL+"/api/health"),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("storefront api failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Warn("shutdown", zap.Error(err))
	}
	if err := a.Close(sctx); err != nil {
		log.Warn("close resources", zap.Error(err))
	}
	log.Info("storefront api stopped")
}
