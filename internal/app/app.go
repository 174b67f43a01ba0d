// Package app wires configuration, storage and feature services together.
// cmd/api, cmd/admin and glimmrctl all start from here.
package app

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"glimmr/internal/core/auth"
	"glimmr/internal/core/cache"
	"glimmr/internal/core/config"
	"glimmr/internal/core/llm"
	"glimmr/internal/feature/assistant"
	"glimmr/internal/feature/cart"
	"glimmr/internal/feature/catalog"
	"glimmr/internal/feature/identity"
	"glimmr/internal/feature/order"
	"glimmr/internal/feature/profile"
	"glimmr/internal/feature/wishlist"
	"glimmr/internal/store"
	mdw "glimmr/internal/transport/http/middleware"
	"glimmr/internal/transport/http/router"
)

type App struct {
	Cfg   *config.Config
	Log   *zap.Logger
	Store *store.Store
	Cache *cache.Cache // nil when redis is not configured
	JWT   *auth.JWTer

	Identity  *identity.Service
	Catalog   *catalog.Service
	Cart      *cart.Service
	Wishlist  *wishlist.Service
	Orders    *order.Service
	Assistant *assistant.Service
	Profile   *profile.Service
}

// New opens the store and optional cache named by cfg and builds every
// service. Close releases what New opened.
func New(ctx context.Context, cfg *config.Config, l *zap.Logger) (*App, error) {
	st, err := store.Open(ctx, cfg.DB, l)
	if err != nil {
		return nil, err
	}

	var c *cache.Cache
	if cfg.Redis.Addr != "" {
		c = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := c.Ping(pctx)
		cancel()
		if err != nil {
			l.Warn("redis unreachable, catalog cache disabled", zap.Error(err))
			_ = c.Close()
			c = nil
		} else {
			l.Info("redis connected", zap.String("addr", cfg.Redis.Addr))
		}
	}

	completer, err := llm.New(ctx, cfg.Chat, l)
	if err != nil {
		_ = c.Close()
		_ = st.Close(ctx)
		return nil, err
	}
	return Assemble(cfg, l, st, c, completer), nil
}

// Assemble builds the services over already opened dependencies.
func Assemble(cfg *config.Config, l *zap.Logger, st *store.Store, c *cache.Cache, completer llm.Completer) *App {
	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    cfg.JWT.TTL(),
	}
	ttl := time.Duration(cfg.Redis.CacheTTLSec) * time.Second
	return &App{
		Cfg:   cfg,
		Log:   l,
		Store: st,
		Cache: c,
		JWT:   jwter,

		Identity:  identity.NewService(st.Users, st.Carts, st.Wishlists, jwter, l),
		Catalog:   catalog.NewService(st.Products, c, ttl, l),
		Cart:      cart.NewService(st.Carts, st.Products),
		Wishlist:  wishlist.NewService(st.Wishlists, st.Products),
		Orders:    order.NewService(st.Carts, st.Products, st.Orders, l),
		Assistant: assistant.NewService(completer, st.Products, l),
		Profile:   profile.NewService(st.Users, st.Products, l),
	}
}

// Registry returns every feature module. The API engine mounts the
// MountAPI half, the admin engine the MountAdmin half.
func (a *App) Registry() *router.Registry {
	authed := mdw.AuthJWT(a.JWT, "")
	return router.NewRegistry(
		identity.NewModule(a.Identity),
		catalog.NewModule(a.Catalog),
		cart.NewModule(a.Cart, authed),
		wishlist.NewModule(a.Wishlist, authed),
		order.NewModule(a.Orders, authed),
		assistant.NewModule(a.Assistant),
		profile.NewModule(a.Profile, authed),
	)
}

func (a *App) Close(ctx context.Context) error {
	return errors.Join(a.Cache.Close(), a.Store.Close(ctx))
}
