package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/abhisek/studybuddy/internal/logger"
)

const cacheKeyPrefix = "studybuddy:llm:"

// CacheConfig configures the structured-response cache.
type CacheConfig struct {
	// URL is a redis:// URL. Empty disables caching.
	URL string `yaml:"url"`

	// TTL bounds how long a cached response is reused.
	TTL time.Duration `yaml:"ttl"`

	// Purposes lists the request purposes eligible for caching.
	Purposes []string `yaml:"purposes"`
}

// DefaultCacheConfig caches plans and explanations for a day.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		TTL:      24 * time.Hour,
		Purposes: []string{"plan", "explanation"},
	}
}

// ResponseCache is the key/value store behind CachingProvider.
type ResponseCache interface {
	// Get returns the cached bytes and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RedisCache is a ResponseCache backed by Redis.
type RedisCache struct {
	rdb *goredis.Client
}

// NewRedisCache connects to url and verifies the connection.
func NewRedisCache(ctx context.Context, url string) (*RedisCache, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opts.DialTimeout = 5 * time.Second

	rdb := goredis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisCache{rdb: rdb}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

// Close releases the Redis connection pool.
func (c *RedisCache) Close() error {
	return c.rdb.Close()
}

// CachingProvider is a decorator that reuses structured Generate results
// for identical requests. Streams and images always reach the inner provider.
type CachingProvider struct {
	inner    Provider
	cache    ResponseCache
	ttl      time.Duration
	purposes []string
	log      *logger.Logger
}

// WithCache wraps a Provider with a response cache.
func WithCache(p Provider, cache ResponseCache, cfg CacheConfig, log *logger.Logger) Provider {
	if log == nil {
		log = logger.Nop()
	}
	return &CachingProvider{
		inner:    p,
		cache:    cache,
		ttl:      cfg.TTL,
		purposes: cfg.Purposes,
		log:      log,
	}
}

func (c *CachingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	purpose := PurposeFrom(ctx)
	if req.Schema == nil || !slices.Contains(c.purposes, purpose) {
		return c.inner.Generate(ctx, req)
	}

	key := c.key(purpose, req)
	if raw, ok, err := c.cache.Get(ctx, key); err != nil {
		c.log.Warn("llm cache read failed", "error", err)
	} else if ok {
		var resp Response
		if err := json.Unmarshal(raw, &resp); err == nil {
			c.log.Debug("llm cache hit", "purpose", purpose)
			return &resp, nil
		}
	}

	resp, err := c.inner.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(resp); err == nil {
		if err := c.cache.Set(ctx, key, raw, c.ttl); err != nil {
			c.log.Warn("llm cache write failed", "error", err)
		}
	}
	return resp, nil
}

func (c *CachingProvider) Stream(ctx context.Context, req Request, fn StreamFunc) (*Response, error) {
	return c.inner.Stream(ctx, req, fn)
}

func (c *CachingProvider) GenerateImage(ctx context.Context, req ImageRequest) (*Image, error) {
	return c.inner.GenerateImage(ctx, req)
}

func (c *CachingProvider) ModelID() string {
	return c.inner.ModelID()
}

func (c *CachingProvider) key(purpose string, req Request) string {
	h := sha256.New()
	h.Write([]byte(c.inner.ModelID()))
	h.Write([]byte{0})
	h.Write([]byte(purpose))
	h.Write([]byte{0})
	h.Write([]byte(serializeRequest(req)))
	fmt.Fprintf(h, "\x00%d\x00%g", req.MaxTokens, req.Temperature)
	return cacheKeyPrefix + hex.EncodeToString(h.Sum(nil))
}
