package photo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/anoixa/photo-gallery/storage"
	"github.com/anoixa/photo-gallery/utils"
)

// DefaultMaxFileSize 默认单文件上限 10 MiB
const DefaultMaxFileSize int64 = 10 << 20

// nameEntropyBytes 生成文件名使用的随机字节数
const nameEntropyBytes = 16

var allowedMimeTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

// FileInfo 已写入文件的信息
type FileInfo struct {
	Filename     string
	OriginalName string
	FilePath     string
	FileSize     int64
	MimeType     string
}

// Writer 负责校验并写入上传的文件
type Writer struct {
	storage  storage.Provider
	maxBytes int64
}

// NewWriter 创建 Writer，maxBytes <= 0 时使用 DefaultMaxFileSize
func NewWriter(provider storage.Provider, maxBytes int64) *Writer {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxFileSize
	}
	return &Writer{storage: provider, maxBytes: maxBytes}
}

// MaxBytes 返回单文件上限
func (w *Writer) MaxBytes() int64 {
	return w.maxBytes
}

// ValidateType 检查声明的 MIME 类型是否在白名单中
func (w *Writer) ValidateType(mimeType string) bool {
	_, ok := allowedMimeTypes[utils.NormalizeMimeType(mimeType)]
	return ok
}

// ValidateSize 检查字节数是否在上限内
func (w *Writer) ValidateSize(n int64) bool {
	return n >= 0 && n <= w.maxBytes
}

var errSizeExceeded = errors.New("size limit exceeded")

// sizeGuard 计数读取的字节，超过上限立即报错
type sizeGuard struct {
	r     io.Reader
	n     int64
	limit int64
}

func (g *sizeGuard) Read(p []byte) (int, error) {
	n, err := g.r.Read(p)
	g.n += int64(n)
	if g.n > g.limit {
		return n, errSizeExceeded
	}
	return n, err
}

func (g *sizeGuard) exceeded() bool {
	return g.n > g.limit
}

// Store 以随机文件名写入文件，返回实际写入的字节数
// 文件名只由随机字节和安全的扩展名组成，原始文件名不会进入存储路径
func (w *Writer) Store(ctx context.Context, r io.Reader, originalFilename, mimeType string) (*FileInfo, error) {
	id, err := utils.GenerateHexID(nameEntropyBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	filename := id + utils.SafeExtension(originalFilename)

	guard := &sizeGuard{r: r, limit: w.maxBytes}
	if err := w.storage.SaveWithContext(ctx, filename, guard); err != nil {
		if guard.exceeded() {
			log.Printf("[PhotoWriter] Rejected %s: more than %d bytes received",
				utils.SanitizeLogFilename(originalFilename), w.maxBytes)
			return nil, ErrFileTooLarge
		}
		return nil, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	return &FileInfo{
		Filename:     filename,
		OriginalName: originalFilename,
		FilePath:     w.storage.Locate(filename),
		FileSize:     guard.n,
		MimeType:     utils.NormalizeMimeType(mimeType),
	}, nil
}

// Delete 尽力删除文件，失败只记录日志
func (w *Writer) Delete(ctx context.Context, filePath string) {
	identifier := storage.IdentifierFromPath(filePath)
	if err := w.storage.DeleteWithContext(ctx, identifier); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return
		}
		log.Printf("[PhotoWriter] Failed to delete %s: %v", utils.SanitizeLogMessage(filePath), err)
	}
}
