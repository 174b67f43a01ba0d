package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// Cache is a read-through cache over Redis. A nil *Cache is valid and
// always loads from the source.
type Cache struct {
	RDB    *redis.Client
	Prefix string
	sf     singleflight.Group
}

func New(addr, pass string, db int) *Cache {
	return &Cache{
		RDB:    redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
		Prefix: "glimmr:",
	}
}

// NewWithClient wraps an existing client; used by tests and the CLI.
func NewWithClient(rdb *redis.Client, prefix string) *Cache {
	return &Cache{RDB: rdb, Prefix: prefix}
}

func (c *Cache) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.RDB.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.RDB.Close()
}

func (c *Cache) key(k string) string { return c.Prefix + k }

func (c *Cache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	if c == nil {
		return load(ctx)
	}
	full := c.key(key)
	if b, err := c.RDB.Get(ctx, full).Bytes(); err == nil {
		return b, nil
	}
	// collapse concurrent misses for the same key
	v, err, _ := c.sf.Do(full, func() (any, error) {
		b, e := load(ctx)
		if e != nil {
			return nil, e
		}
		_ = c.RDB.Set(ctx, full, b, ttl).Err()
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if c == nil || len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.key(k)
	}
	return c.RDB.Del(ctx, full...).Err()
}

// Generation returns the current value of a namespace counter. Keys built
// with it go stale as soon as Bump is called.
func (c *Cache) Generation(ctx context.Context, ns string) int64 {
	if c == nil {
		return 0
	}
	n, err := c.RDB.Get(ctx, c.key("gen:"+ns)).Int64()
	if errors.Is(err, redis.Nil) || err != nil {
		return 0
	}
	return n
}

func (c *Cache) Bump(ctx context.Context, ns string) error {
	if c == nil {
		return nil
	}
	return c.RDB.Incr(ctx, c.key("gen:"+ns)).Err()
}

// GenKey builds "<ns>:<gen>:<suffix>".
func (c *Cache) GenKey(ctx context.Context, ns, suffix string) string {
	return ns + ":" + strconv.FormatInt(c.Generation(ctx, ns), 10) + ":" + suffix
}
