// Package store opens the configured persistence backend and exposes its
// repositories behind the domain interfaces.
package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"glimmr/internal/core/config"
	"glimmr/internal/core/database"
	"glimmr/internal/domain"
	"glimmr/internal/store/memstore"
	"glimmr/internal/store/mongostore"
	"glimmr/internal/store/sqlstore"
)

type Store struct {
	Users     domain.UserRepository
	Products  domain.ProductRepository
	Carts     domain.CartRepository
	Wishlists domain.WishlistRepository
	Orders    domain.OrderRepository

	migrate func(context.Context) error
	close   func(context.Context) error
}

// Migrate creates tables or indexes for the backend.
func (s *Store) Migrate(ctx context.Context) error {
	if s.migrate == nil {
		return nil
	}
	return s.migrate(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

type repoSet interface {
	Users() domain.UserRepository
	Products() domain.ProductRepository
	Carts() domain.CartRepository
	Wishlists() domain.WishlistRepository
	Orders() domain.OrderRepository
}

func from(r repoSet) *Store {
	return &Store{
		Users:     r.Users(),
		Products:  r.Products(),
		Carts:     r.Carts(),
		Wishlists: r.Wishlists(),
		Orders:    r.Orders(),
	}
}

// Memory returns a fresh in-process store.
func Memory() *Store { return from(memstore.New()) }

// Open connects to the backend named by c.Driver. When c.AutoMigrate is
// set the schema is migrated before returning.
func Open(ctx context.Context, c config.DB, l *zap.Logger) (*Store, error) {
	var s *Store
	switch c.Driver {
	case "memory":
		l.Warn("using in-memory store; data is lost on exit")
		s = Memory()
	case "mongo":
		client, db, err := database.NewMongo(ctx, database.MongoOpts{
			URI:         c.DSN,
			Database:    c.Database,
			MaxPoolSize: uint64(max(c.MaxOpenConns, 0)),
			Timeout:     time.Duration(c.TimeoutSec) * time.Second,
		})
		if err != nil {
			return nil, err
		}
		ms := mongostore.New(db)
		s = from(ms)
		s.migrate = ms.EnsureIndexes
		s.close = func(ctx context.Context) error { return disconnect(ctx, client) }
		l.Info("mongo connected", zap.String("database", c.Database))
	case "postgres", "mysql":
		db, err := database.NewGorm(database.Opts{
			Driver:             c.Driver,
			DSN:                c.DSN,
			Username:           c.Username,
			Password:           c.Password,
			MaxOpenConns:       c.MaxOpenConns,
			MaxIdleConns:       c.MaxIdleConns,
			ConnMaxLifetimeMin: c.ConnMaxLifetimeMin,
			LogLevel:           c.LogLevel,
		}, l)
		if err != nil {
			return nil, err
		}
		ss := sqlstore.New(db)
		s = from(ss)
		s.migrate = ss.Migrate
		s.close = func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		}
		l.Info("sql database connected", zap.String("driver", c.Driver))
	default:
		return nil, fmt.Errorf("%w: %q", database.ErrUnsupportedDriver, c.Driver)
	}

	if c.AutoMigrate {
		if err := s.Migrate(ctx); err != nil {
			_ = s.Close(ctx)
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	return s, nil
}

func disconnect(ctx context.Context, c *mongo.Client) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return c.Disconnect(ctx)
}
