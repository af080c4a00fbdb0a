package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"time"

	"github.com/studio-b12/gowebdav"
)

// WebDAVConfig WebDAV 配置结构
type WebDAVConfig struct {
	URL      string
	Username string
	Password string
	RootPath string
	Timeout  time.Duration
}

// WebDAVStorage WebDAV 存储实现
type WebDAVStorage struct {
	client   *gowebdav.Client
	baseURL  string
	rootPath string
}

// NewWebDAVStorage 创建 WebDAV 存储提供者
func NewWebDAVStorage(cfg WebDAVConfig) (*WebDAVStorage, error) {
	if cfg.URL == "" {
		return nil, errors.New("webdav URL is required")
	}

	rootPath := strings.Trim(cfg.RootPath, "/")
	if rootPath != "" {
		rootPath = "/" + rootPath
	}

	client := gowebdav.NewClient(cfg.URL, cfg.Username, cfg.Password)
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	s := &WebDAVStorage{
		client:   client,
		baseURL:  strings.TrimRight(cfg.URL, "/"),
		rootPath: rootPath,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if rootPath != "" {
		if err := s.run(ctx, func() error { return client.MkdirAll(rootPath, 0755) }); err != nil {
			return nil, fmt.Errorf("failed to create webdav root '%s': %w", rootPath, err)
		}
	}
	if err := s.Health(ctx); err != nil {
		return nil, fmt.Errorf("webdav connection test failed: %w", err)
	}

	return s, nil
}

// run 在独立 goroutine 中执行不支持 context 的 WebDAV 调用
func (s *WebDAVStorage) run(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		done <- fn()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}

func (s *WebDAVStorage) fullPath(identifier string) string {
	if s.rootPath != "" {
		return s.rootPath + "/" + identifier
	}
	return "/" + identifier
}

// SaveWithContext 先上传到临时路径，再 MOVE 到最终路径
func (s *WebDAVStorage) SaveWithContext(ctx context.Context, identifier string, file io.Reader) error {
	if !IsValidIdentifier(identifier) {
		return fmt.Errorf("invalid storage identifier: %q", identifier)
	}

	dst := s.fullPath(identifier)
	tmp := path.Join(path.Dir(dst), tempPrefix+identifier)

	err := s.run(ctx, func() error {
		return s.client.WriteStream(tmp, withContext(ctx, file), 0644)
	})
	if err != nil {
		s.discard(tmp)
		return fmt.Errorf("failed to write file '%s': %w", identifier, err)
	}

	if err := s.run(ctx, func() error { return s.client.Rename(tmp, dst, false) }); err != nil {
		s.discard(tmp)
		return fmt.Errorf("failed to move '%s' into place: %w", identifier, err)
	}
	return nil
}

// discard 清理临时文件，不受请求 context 影响
func (s *WebDAVStorage) discard(tmp string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = s.run(ctx, func() error { return s.client.Remove(tmp) })
}

// GetWithContext 从 WebDAV 获取文件流
func (s *WebDAVStorage) GetWithContext(ctx context.Context, identifier string) (*Object, error) {
	if !IsValidIdentifier(identifier) {
		return nil, fmt.Errorf("invalid storage identifier: %q", identifier)
	}
	fullPath := s.fullPath(identifier)

	var info os.FileInfo
	err := s.run(ctx, func() error {
		var statErr error
		info, statErr = s.client.Stat(fullPath)
		return statErr
	})
	if err != nil {
		if gowebdav.IsErrNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, identifier)
		}
		return nil, fmt.Errorf("failed to stat file '%s': %w", identifier, err)
	}

	var rc io.ReadCloser
	err = s.run(ctx, func() error {
		var readErr error
		rc, readErr = s.client.ReadStream(fullPath)
		return readErr
	})
	if err != nil {
		if gowebdav.IsErrNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, identifier)
		}
		return nil, fmt.Errorf("failed to read file '%s': %w", identifier, err)
	}

	return &Object{Reader: rc, Size: info.Size(), ModTime: info.ModTime()}, nil
}

// DeleteWithContext 从 WebDAV 删除文件
func (s *WebDAVStorage) DeleteWithContext(ctx context.Context, identifier string) error {
	if !IsValidIdentifier(identifier) {
		return fmt.Errorf("invalid storage identifier: %q", identifier)
	}

	if err := s.run(ctx, func() error { return s.client.Remove(s.fullPath(identifier)) }); err != nil {
		return fmt.Errorf("failed to delete file '%s': %w", identifier, err)
	}
	return nil
}

// Exists 检查文件是否存在
func (s *WebDAVStorage) Exists(ctx context.Context, identifier string) (bool, error) {
	if !IsValidIdentifier(identifier) {
		return false, fmt.Errorf("invalid storage identifier: %q", identifier)
	}

	err := s.run(ctx, func() error {
		_, statErr := s.client.Stat(s.fullPath(identifier))
		return statErr
	})
	if err != nil {
		if gowebdav.IsErrNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// List 列出根目录下的文件
func (s *WebDAVStorage) List(ctx context.Context) ([]string, error) {
	dir := s.rootPath
	if dir == "" {
		dir = "/"
	}

	var entries []os.FileInfo
	err := s.run(ctx, func() error {
		var readErr error
		entries, readErr = s.client.ReadDir(dir)
		return readErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list webdav directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), tempPrefix) {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// Locate 返回文件在 WebDAV 服务上的路径
func (s *WebDAVStorage) Locate(identifier string) string {
	return s.fullPath(identifier)
}

// Health 检查存储健康状态
func (s *WebDAVStorage) Health(ctx context.Context) error {
	dir := s.rootPath
	if dir == "" {
		dir = "/"
	}
	return s.run(ctx, func() error {
		_, err := s.client.ReadDir(dir)
		return err
	})
}

// Name 返回存储名称
func (s *WebDAVStorage) Name() string {
	return "webdav"
}
