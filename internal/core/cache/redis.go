package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// Cache 读穿缓存。RDB 为 nil 时退化为直接回源（未配置 redis）。
type Cache struct {
	RDB    *redis.Client
	Prefix string
	sf     singleflight.Group
}

func New(addr, pass string, db int) *Cache {
	if addr == "" {
		return &Cache{}
	}
	return &Cache{
		RDB:    redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
		Prefix: "ace:",
	}
}

func (c *Cache) enabled() bool { return c != nil && c.RDB != nil }

func (c *Cache) key(k string) string { return c.Prefix + k }

func (c *Cache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	if !c.enabled() {
		return load(ctx)
	}
	if b, err := c.RDB.Get(ctx, c.key(key)).Bytes(); err == nil {
		return b, nil
	}
	// 同 key 并发回源合并
	v, err, _ := c.sf.Do(key, func() (any, error) {
		b, e := load(ctx)
		if e != nil {
			return nil, e
		}
		_ = c.RDB.Set(ctx, c.key(key), b, ttl).Err()
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Delete 写操作后失效
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if !c.enabled() || len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.key(k)
	}
	return c.RDB.Del(ctx, full...).Err()
}

func (c *Cache) Close() error {
	if !c.enabled() {
		return nil
	}
	return c.RDB.Close()
}
