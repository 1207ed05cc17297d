// Package cache provides a small process-wide cache for rendered public
// responses. By default an in-memory cache is used; UseRedisCache switches
// to a shared redis instance.
package cache

import (
	"context"
	"strings"
	"time"

	"github.com/TwiN/gocache/v2"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

// Cache keys used by the public api handlers and the admin invalidation
// middleware.
const (
	KeyPhotosPage = "photos:page"
	KeyContentMap = "content:map"
	KeyTeamList   = "team:list"
)

// DefaultTTL is the lifetime of cached public responses. The public
// listing tolerates being up to this much behind the admin's writes even
// when invalidation misses.
const DefaultTTL = 5 * time.Second

// Cache is an interface for caching data
type Cache interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte, expiration time.Duration) error
	Delete(key string) error
	Clear(prefix string) error
}

type memoryCache struct {
	c *gocache.Cache
}

func newMemoryCache() *memoryCache {
	return &memoryCache{c: gocache.NewCache()}
}

func (m *memoryCache) Get(key string) ([]byte, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, nil
	}
	data, ok := v.([]byte)
	if !ok {
		return nil, nil
	}
	return data, nil
}

func (m *memoryCache) Set(key string, value []byte, expiration time.Duration) error {
	m.c.SetWithTTL(key, value, expiration)
	return nil
}

func (m *memoryCache) Delete(key string) error {
	m.c.Delete(key)
	return nil
}

func (m *memoryCache) Clear(prefix string) error {
	if prefix == "" {
		m.c.Clear()
		return nil
	}
	for _, k := range m.c.GetKeysByPattern(prefix+"*", 0) {
		m.c.Delete(k)
	}
	return nil
}

type redisCache struct {
	client *redis.Client
}

func (r *redisCache) Get(key string) ([]byte, error) {
	data, err := r.client.Get(context.Background(), key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return data, err
}

func (r *redisCache) Set(key string, value []byte, expiration time.Duration) error {
	return r.client.Set(context.Background(), key, value, expiration).Err()
}

func (r *redisCache) Delete(key string) error {
	return r.client.Del(context.Background(), key).Err()
}

func (r *redisCache) Clear(prefix string) error {
	ctx := context.Background()
	iter := r.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

var cacheCache Cache = newMemoryCache()

// SetCache sets the Cache implementation that is used
func SetCache(cache Cache) {
	cacheCache = cache
}

// UseRedisCache switches from the in-memory cache to redis
func UseRedisCache(opts *redis.Options) error {
	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return errors.Wrap(err, "could not reach redis")
	}
	SetCache(&redisCache{client: client})
	return nil
}

// Key combines the passed segments into a single cache key.
func Key(segments ...string) string {
	return strings.Join(segments, ":")
}

// Set caches the msgpack-encoded value under key for the passed duration.
func Set(key string, value any, expiration time.Duration) error {
	data, err := msgpack.Marshal(value)
	if err != nil {
		return err
	}
	return cacheCache.Set(key, data, expiration)
}

// Get retrieves a cached value into target; the bool indicates a hit.
func Get(key string, target any) (bool, error) {
	data, err := cacheCache.Get(key)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}
	if err = msgpack.Unmarshal(data, target); err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes a single cached entry.
func Delete(key string) error {
	return cacheCache.Delete(key)
}

// Clear removes all cached entries whose key starts with prefix.
func Clear(prefix string) error {
	return cacheCache.Clear(prefix)
}
