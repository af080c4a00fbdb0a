package cache

import (
	"context"
	"encoding/json"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache 基于 go-cache 的进程内缓存
type MemoryCache struct {
	client *gocache.Cache
}

// NewMemoryCache 创建内存缓存
func NewMemoryCache(defaultExpiration, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		client: gocache.New(defaultExpiration, cleanupInterval),
	}
}

// Set 设置缓存项
func (m *MemoryCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.client.Set(key, data, expiration)
	return nil
}

// Get 获取缓存项
func (m *MemoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, found := m.client.Get(key)
	if !found {
		return ErrCacheMiss
	}
	return json.Unmarshal(data.([]byte), dest)
}

// Delete 删除缓存项
func (m *MemoryCache) Delete(ctx context.Context, key string) error {
	m.client.Delete(key)
	return nil
}

// Close go-cache 无需关闭
func (m *MemoryCache) Close() error {
	return nil
}

// Name 返回缓存名称
func (m *MemoryCache) Name() string {
	return "memory"
}
