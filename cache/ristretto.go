package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dgraph-io/ristretto"
)

// RistrettoConfig Ristretto 配置
type RistrettoConfig struct {
	NumCounters int64
	MaxCost     int64
	BufferItems int64
	Metrics     bool
}

// RistrettoCache 基于 ristretto 的进程内缓存，按字节计费
type RistrettoCache struct {
	client *ristretto.Cache
}

// NewRistrettoCache 创建 Ristretto 缓存
func NewRistrettoCache(cfg RistrettoConfig) (*RistrettoCache, error) {
	if cfg.NumCounters == 0 {
		cfg.NumCounters = 100000
	}
	if cfg.MaxCost == 0 {
		cfg.MaxCost = 64 << 20
	}
	if cfg.BufferItems == 0 {
		cfg.BufferItems = 64
	}

	client, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     cfg.Metrics,
	})
	if err != nil {
		return nil, err
	}

	return &RistrettoCache{client: client}, nil
}

// Set 设置缓存项
func (r *RistrettoCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	if r.client.SetWithTTL(key, data, int64(len(data)), expiration) {
		// 等待写缓冲落地，保证紧随其后的 Get 可见
		r.client.Wait()
	}
	return nil
}

// Get 获取缓存项
func (r *RistrettoCache) Get(ctx context.Context, key string, dest interface{}) error {
	value, found := r.client.Get(key)
	if !found {
		return ErrCacheMiss
	}
	data, ok := value.([]byte)
	if !ok {
		return ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

// Delete 删除缓存项
func (r *RistrettoCache) Delete(ctx context.Context, key string) error {
	r.client.Del(key)
	return nil
}

// Close 关闭缓存
func (r *RistrettoCache) Close() error {
	r.client.Close()
	return nil
}

// Name 返回缓存名称
func (r *RistrettoCache) Name() string {
	return "ristretto"
}
