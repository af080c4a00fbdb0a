package di

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/anoixa/photo-gallery/api/core"
	"github.com/anoixa/photo-gallery/cache"
	"github.com/anoixa/photo-gallery/config"
	"github.com/anoixa/photo-gallery/database"
	"github.com/anoixa/photo-gallery/database/repo/photos"
	"github.com/anoixa/photo-gallery/database/repo/users"
	"github.com/anoixa/photo-gallery/internal/events"
	"github.com/anoixa/photo-gallery/internal/services/photo"
	"github.com/anoixa/photo-gallery/storage"
)

// Container 依赖注入容器 - 管理所有服务的生命周期
type Container struct {
	config          *config.Config
	databaseFactory *database.Factory
	storageFactory  *storage.Factory
	cacheFactory    *cache.Factory
	publisher       events.Publisher

	photosRepo *photos.Repository
	usersRepo  *users.Repository

	writer *photo.Writer
	query  *photo.QueryService
	ingest *photo.IngestService
	owners photo.OwnerResolver
}

// NewContainer 创建新的依赖注入容器
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config: cfg,
	}
}

// Init 初始化所有服务
func (c *Container) Init(ctx context.Context) error {
	log.Println("Initializing DI container...")

	if err := c.initDatabaseFactory(); err != nil {
		return fmt.Errorf("failed to initialize database factory: %w", err)
	}
	if err := c.initStorageFactory(); err != nil {
		return fmt.Errorf("failed to initialize storage factory: %w", err)
	}
	c.initCacheFactory()
	if err := c.initPublisher(); err != nil {
		return fmt.Errorf("failed to initialize event publisher: %w", err)
	}

	c.initRepositories()
	if err := c.initServices(ctx); err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	log.Println("DI container initialized successfully")
	return nil
}

// initDatabaseFactory 初始化数据库并迁移表结构
func (c *Container) initDatabaseFactory() error {
	factory, err := database.NewFactory(c.config)
	if err != nil {
		return err
	}
	c.databaseFactory = factory
	if err := factory.AutoMigrate(); err != nil {
		return err
	}
	log.Println("Database factory initialized")
	return nil
}

// initStorageFactory 初始化存储工厂
func (c *Container) initStorageFactory() error {
	factory, err := storage.NewFactory(c.config)
	if err != nil {
		return err
	}
	c.storageFactory = factory

	// 清理进程崩溃遗留的临时文件
	if local, ok := factory.GetDefault().(*storage.LocalStorage); ok {
		if n, err := local.CleanStaleTemp(time.Hour); err != nil {
			log.Printf("Failed to clean stale upload files: %v", err)
		} else if n > 0 {
			log.Printf("Removed %d stale upload files", n)
		}
	}
	return nil
}

// initCacheFactory 初始化缓存工厂
func (c *Container) initCacheFactory() {
	c.cacheFactory = cache.NewFactory(c.config)
}

// initPublisher 配置了 Kafka 时发布上传事件
func (c *Container) initPublisher() error {
	brokers := c.config.KafkaBrokers()
	if len(brokers) == 0 {
		c.publisher = events.NoopPublisher{}
		return nil
	}

	publisher, err := events.NewKafkaPublisher(brokers, c.config.EventsKafkaTopic)
	if err != nil {
		return err
	}
	c.publisher = publisher
	log.Printf("Publishing photo events to kafka topic '%s'", c.config.EventsKafkaTopic)
	return nil
}

// initRepositories 初始化所有仓库
func (c *Container) initRepositories() {
	provider := c.databaseFactory.GetProvider()
	c.photosRepo = photos.NewRepository(provider)
	c.usersRepo = users.NewRepository(provider)
}

// initServices 初始化业务服务，并确保默认上传者存在
func (c *Container) initServices(ctx context.Context) error {
	owners, err := photo.NewDefaultOwnerResolver(ctx, c.usersRepo,
		c.config.DefaultOwnerEmail, c.config.DefaultOwnerFirstName, c.config.DefaultOwnerLastName)
	if err != nil {
		return err
	}
	c.owners = owners

	c.writer = photo.NewWriter(c.storageFactory.GetDefault(), c.config.UploadMaxBytes())
	c.query = photo.NewQueryService(c.photosRepo, c.cacheFactory.GetProvider(), c.cacheFactory.TTL())
	c.ingest = photo.NewIngestService(c.writer, c.photosRepo, c.query, c.publisher)
	return nil
}

// RouterDependencies 组装 HTTP 层依赖
func (c *Container) RouterDependencies() *core.RouterDependencies {
	return &core.RouterDependencies{
		Config:         c.config,
		DB:             c.GetDatabaseProvider(),
		StorageFactory: c.storageFactory,
		CacheFactory:   c.cacheFactory,
		Ingest:         c.ingest,
		Query:          c.query,
		Owners:         c.owners,
		MaxUploadBytes: c.writer.MaxBytes(),
	}
}

// GetDatabaseProvider 获取数据库提供者
func (c *Container) GetDatabaseProvider() database.Provider {
	if c.databaseFactory == nil {
		return nil
	}
	return c.databaseFactory.GetProvider()
}

// GetStorageFactory 获取存储工厂
func (c *Container) GetStorageFactory() *storage.Factory {
	return c.storageFactory
}

// GetPhotosRepository 获取照片仓库
func (c *Container) GetPhotosRepository() *photos.Repository {
	return c.photosRepo
}

// GetConfig 获取配置
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// Close 关闭所有服务
func (c *Container) Close() error {
	log.Println("Closing DI container...")

	if c.publisher != nil {
		if err := c.publisher.Close(); err != nil {
			log.Printf("Error closing event publisher: %v", err)
		}
	}

	if c.cacheFactory != nil {
		if err := c.cacheFactory.Close(); err != nil {
			log.Printf("Error closing cache factory: %v", err)
		}
	}

	if c.databaseFactory != nil {
		if err := c.databaseFactory.Close(); err != nil {
			log.Printf("Error closing database factory: %v", err)
		}
	}

	log.Println("DI container closed")
	return nil
}
