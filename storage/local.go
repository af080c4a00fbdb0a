package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// LocalStorage 本地文件存储实现
type LocalStorage struct {
	basePath    string
	absBasePath string
}

// NewLocalStorage 创建本地存储提供者
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for '%s': %w", basePath, err)
	}

	if err := os.MkdirAll(absPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create local storage directory '%s': %w", absPath, err)
	}

	testFile := filepath.Join(absPath, tempPrefix+"write-test-"+strconv.FormatInt(time.Now().UnixNano(), 10))
	f, err := os.Create(testFile)
	if err != nil {
		return nil, fmt.Errorf("local storage directory '%s' is not writable: %w", absPath, err)
	}
	_ = f.Close()
	_ = os.Remove(testFile)

	return &LocalStorage{
		basePath:    filepath.Clean(basePath),
		absBasePath: absPath + string(os.PathSeparator),
	}, nil
}

func (s *LocalStorage) resolve(identifier string) (string, error) {
	if !IsValidIdentifier(identifier) {
		return "", fmt.Errorf("invalid storage identifier: %q", identifier)
	}

	fullPath := filepath.Join(s.absBasePath, identifier)
	if !strings.HasPrefix(fullPath, s.absBasePath) {
		return "", fmt.Errorf("invalid file path, potential directory traversal: %s", identifier)
	}
	return fullPath, nil
}

// SaveWithContext 先写入同目录临时文件，fsync 后重命名为最终文件名
func (s *LocalStorage) SaveWithContext(ctx context.Context, identifier string, file io.Reader) (err error) {
	dstPath, err := s.resolve(identifier)
	if err != nil {
		return err
	}

	// 目录可能在运行期间被外部删除
	if err := os.MkdirAll(s.absBasePath, 0755); err != nil {
		return fmt.Errorf("failed to create directory for '%s': %w", identifier, err)
	}

	tmp, err := os.CreateTemp(s.absBasePath, tempPrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for '%s': %w", identifier, err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = io.Copy(tmp, withContext(ctx, file)); err != nil {
		return fmt.Errorf("failed to copy file content to '%s': %w", identifier, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync '%s': %w", identifier, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close '%s': %w", identifier, err)
	}
	if err = os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("failed to chmod '%s': %w", identifier, err)
	}
	if err = os.Rename(tmpPath, dstPath); err != nil {
		return fmt.Errorf("failed to move '%s' into place: %w", identifier, err)
	}

	return nil
}

// GetWithContext 从本地存储获取文件，返回的 Reader 可 Seek
func (s *LocalStorage) GetWithContext(ctx context.Context, identifier string) (*Object, error) {
	fullPath, err := s.resolve(identifier)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, identifier)
		}
		return nil, fmt.Errorf("failed to open file '%s': %w", identifier, err)
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat file '%s': %w", identifier, err)
	}

	return &Object{Reader: file, Size: info.Size(), ModTime: info.ModTime()}, nil
}

// DeleteWithContext 从本地存储删除文件
func (s *LocalStorage) DeleteWithContext(ctx context.Context, identifier string) error {
	fullPath, err := s.resolve(identifier)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, identifier)
		}
		return fmt.Errorf("failed to delete local file '%s': %w", fullPath, err)
	}
	return nil
}

// Exists 检查文件是否存在
func (s *LocalStorage) Exists(ctx context.Context, identifier string) (bool, error) {
	fullPath, err := s.resolve(identifier)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(fullPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// List 列出存储目录下的文件
func (s *LocalStorage) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.absBasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read storage directory: %w", err)
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

// Locate 返回以配置目录为基准的文件路径，如 uploads/photos/xxx.png
func (s *LocalStorage) Locate(identifier string) string {
	return filepath.Join(s.basePath, identifier)
}

// Health 检查存储健康状态
func (s *LocalStorage) Health(ctx context.Context) error {
	_, err := os.ReadDir(s.absBasePath)
	return err
}

// Name 返回存储名称
func (s *LocalStorage) Name() string {
	return "local"
}

// BasePath 返回存储的绝对路径
func (s *LocalStorage) BasePath() string {
	return s.absBasePath
}

// CleanStaleTemp 删除进程崩溃遗留的临时文件
func (s *LocalStorage) CleanStaleTemp(olderThan time.Duration) (int, error) {
	entries, err := os.ReadDir(s.absBasePath)
	if err != nil {
		return 0, fmt.Errorf("failed to read storage directory: %w", err)
	}

	cutoff := time.Now().Add(-olderThan)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), tempPrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.absBasePath, entry.Name())); err != nil {
			log.Printf("[LocalStorage] Failed to remove stale temp file %s: %v", entry.Name(), err)
			continue
		}
		removed++
	}
	return removed, nil
}
