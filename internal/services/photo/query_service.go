package photo

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/anoixa/photo-gallery/cache"
	"github.com/anoixa/photo-gallery/database/models"
	"github.com/anoixa/photo-gallery/database/repo/photos"
	"golang.org/x/sync/singleflight"
)

// QueryService 照片查询服务
type QueryService struct {
	repo       photos.RepositoryInterface
	cache      cache.Provider
	ttl        time.Duration
	generation atomic.Uint64
	group      singleflight.Group
}

// NewQueryService 创建查询服务，cacheProvider 为 nil 时不缓存
func NewQueryService(repo photos.RepositoryInterface, cacheProvider cache.Provider, ttl time.Duration) *QueryService {
	return &QueryService{
		repo:  repo,
		cache: cacheProvider,
		ttl:   ttl,
	}
}

func (s *QueryService) listKey() string {
	return cache.PhotoList.BuildID(s.generation.Load())
}

// List 返回全部照片，按上传时间倒序
func (s *QueryService) List(ctx context.Context) ([]*models.Photo, error) {
	key := s.listKey()

	if s.cache != nil {
		var cached []*models.Photo
		err := s.cache.Get(ctx, key, &cached)
		if err == nil {
			return cached, nil
		}
		if !cache.IsCacheMiss(err) {
			log.Printf("[PhotoQuery] Cache read failed for %s: %v", key, err)
		}
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		list, err := s.repo.List(ctx)
		if err != nil {
			return nil, err
		}
		if list == nil {
			list = []*models.Photo{}
		}

		if s.cache != nil {
			if err := s.cache.Set(ctx, key, list, s.ttl); err != nil {
				log.Printf("[PhotoQuery] Cache write failed for %s: %v", key, err)
			}
		}
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]*models.Photo), nil
}

// InvalidateList 使列表缓存失效
// 旧 generation 下写入的结果不会再被读取
func (s *QueryService) InvalidateList(ctx context.Context) {
	old := s.generation.Add(1) - 1
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.PhotoList.BuildID(old)); err != nil {
		log.Printf("[PhotoQuery] Failed to drop cached list: %v", err)
	}
}
