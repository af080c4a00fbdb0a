package cache

import (
	"log"
	"time"

	"github.com/anoixa/photo-gallery/config"
)

// Factory 缓存工厂
type Factory struct {
	provider Provider
	ttl      time.Duration
}

// NewFactory 按 cache_type 创建缓存，失败时回退到内存缓存
func NewFactory(cfg *config.Config) *Factory {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	var (
		provider Provider
		err      error
	)

	switch cfg.CacheType {
	case "ristretto":
		provider, err = NewRistrettoCache(RistrettoConfig{})
	case "redis":
		provider, err = NewRedisCache(RedisConfig{
			Address:  cfg.CacheRedisAddr,
			Password: cfg.CacheRedisPassword,
			DB:       cfg.CacheRedisDB,
		})
	case "", "memory":
	default:
		log.Printf("[CacheFactory] Unknown cache type '%s'", cfg.CacheType)
	}

	if err != nil {
		log.Printf("[CacheFactory] Failed to create %s cache, falling back to memory: %v", cfg.CacheType, err)
		provider = nil
	}
	if provider == nil {
		provider = NewMemoryCache(ttl, 2*ttl)
	}

	log.Printf("[CacheFactory] Using '%s' cache, ttl=%s", provider.Name(), ttl)
	return &Factory{provider: provider, ttl: ttl}
}

// NewFactoryWithProvider 使用指定的缓存提供者创建工厂
func NewFactoryWithProvider(p Provider, ttl time.Duration) *Factory {
	return &Factory{provider: p, ttl: ttl}
}

// GetProvider 获取缓存提供者
func (f *Factory) GetProvider() Provider {
	return f.provider
}

// TTL 返回默认过期时间
func (f *Factory) TTL() time.Duration {
	return f.ttl
}

// Close 关闭缓存
func (f *Factory) Close() error {
	return f.provider.Close()
}
