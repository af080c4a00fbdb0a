package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"
)

// ErrNotFound 存储中不存在该对象
var ErrNotFound = errors.New("storage object not found")

// tempPrefix 写入中的临时文件前缀，List 会跳过
const tempPrefix = ".upload-"

// Object 读取到的存储对象
type Object struct {
	Reader  io.ReadCloser
	Size    int64
	ModTime time.Time
}

// Provider 存储提供者接口
// identifier 是存储目录下的扁平文件名，不允许包含路径分隔符
type Provider interface {
	// SaveWithContext 保存文件，写入中途失败不会留下同名对象
	SaveWithContext(ctx context.Context, identifier string, file io.Reader) error

	// GetWithContext 获取文件，不存在时返回 ErrNotFound
	GetWithContext(ctx context.Context, identifier string) (*Object, error)

	// DeleteWithContext 删除文件，不存在时返回 ErrNotFound
	DeleteWithContext(ctx context.Context, identifier string) error

	// Exists 检查文件是否存在
	Exists(ctx context.Context, identifier string) (bool, error)

	// List 列出所有已完成写入的文件名
	List(ctx context.Context) ([]string, error)

	// Locate 返回记录到元数据中的文件路径
	Locate(identifier string) string

	// Health 检查存储健康状态
	Health(ctx context.Context) error

	// Name 返回存储名称
	Name() string
}

// IsValidIdentifier 校验存储标识是否合法
func IsValidIdentifier(identifier string) bool {
	if identifier == "" || identifier == "." || identifier == ".." {
		return false
	}
	if strings.HasPrefix(identifier, tempPrefix) {
		return false
	}

	// 只允许安全字符，不允许路径分隔符
	for _, r := range identifier {
		if (r < 'a' || r > 'z') &&
			(r < 'A' || r > 'Z') &&
			(r < '0' || r > '9') &&
			r != '-' && r != '_' && r != '.' {
			return false
		}
	}
	return !strings.Contains(identifier, "..")
}

// IdentifierFromPath 从记录的文件路径还原存储标识
func IdentifierFromPath(filePath string) string {
	return path.Base(strings.ReplaceAll(filePath, "\\", "/"))
}

// contextReader 每次读取前检查 ctx，连接断开时尽快中止写入
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

func withContext(ctx context.Context, r io.Reader) io.Reader {
	return &contextReader{ctx: ctx, r: r}
}
