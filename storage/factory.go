package storage

import (
	"fmt"
	"log"
	"time"

	"github.com/anoixa/photo-gallery/config"
)

// Factory 存储工厂，按配置创建唯一的存储提供者
type Factory struct {
	provider Provider
}

// NewFactory 根据 storage_type 初始化存储
func NewFactory(cfg *config.Config) (*Factory, error) {
	var (
		provider Provider
		err      error
	)

	switch cfg.StorageType {
	case "", "local":
		provider, err = NewLocalStorage(cfg.UploadDir)
	case "minio":
		provider, err = NewMinioStorage(MinioConfig{
			Endpoint:        cfg.MinioEndpoint,
			AccessKeyID:     cfg.MinioAccessKeyID,
			SecretAccessKey: cfg.MinioSecretAccessKey,
			BucketName:      cfg.MinioBucket,
			UseSSL:          cfg.MinioUseSSL,
		})
	case "webdav":
		provider, err = NewWebDAVStorage(WebDAVConfig{
			URL:      cfg.WebDAVURL,
			Username: cfg.WebDAVUsername,
			Password: cfg.WebDAVPassword,
			RootPath: cfg.WebDAVRootPath,
			Timeout:  30 * time.Second,
		})
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.StorageType)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s storage: %w", cfg.StorageType, err)
	}

	log.Printf("Storage provider initialized: '%s'", provider.Name())
	return &Factory{provider: provider}, nil
}

// NewFactoryWithProvider 使用已有的存储提供者创建工厂
func NewFactoryWithProvider(p Provider) *Factory {
	return &Factory{provider: p}
}

// GetDefault 获取存储提供者
func (f *Factory) GetDefault() Provider {
	return f.provider
}

// GetDefaultName 获取存储提供者名称
func (f *Factory) GetDefaultName() string {
	return f.provider.Name()
}
