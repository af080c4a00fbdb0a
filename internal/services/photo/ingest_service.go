package photo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/anoixa/photo-gallery/database/models"
	"github.com/anoixa/photo-gallery/database/repo/photos"
	"github.com/anoixa/photo-gallery/internal/events"
	"github.com/anoixa/photo-gallery/utils"
)

const (
	cleanupTimeout = 30 * time.Second
	publishTimeout = 5 * time.Second
)

// FilePart 上传请求中的文件部分
type FilePart struct {
	Filename    string
	ContentType string
	Reader      io.Reader
	// Size 客户端声明的大小，未知时为 -1
	Size int64
}

// IngestRequest 一次上传请求
type IngestRequest struct {
	File    *FilePart
	OwnerID uint
}

// ListInvalidator 上传成功后使列表缓存失效
type ListInvalidator interface {
	InvalidateList(ctx context.Context)
}

// IngestService 照片上传服务，串联校验、写入和元数据落库
type IngestService struct {
	writer      *Writer
	repo        photos.RepositoryInterface
	invalidator ListInvalidator
	publisher   events.Publisher
}

// NewIngestService 创建上传服务
func NewIngestService(
	writer *Writer,
	repo photos.RepositoryInterface,
	invalidator ListInvalidator,
	publisher events.Publisher,
) *IngestService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &IngestService{
		writer:      writer,
		repo:        repo,
		invalidator: invalidator,
		publisher:   publisher,
	}
}

// Ingest 校验并保存上传的文件，然后创建照片记录
// 任一步失败都不会留下照片记录；记录创建失败时会删除已写入的文件
func (s *IngestService) Ingest(ctx context.Context, req IngestRequest) (*models.Photo, error) {
	if req.File == nil || req.File.Reader == nil {
		return nil, ErrNoFileProvided
	}
	if req.OwnerID == 0 {
		return nil, ErrOwnerRequired
	}

	file := req.File
	if !s.writer.ValidateType(file.ContentType) {
		return nil, ErrInvalidFileType
	}
	if file.Size >= 0 && !s.writer.ValidateSize(file.Size) {
		return nil, ErrFileTooLarge
	}

	info, err := s.writer.Store(ctx, file.Reader, file.Filename, file.ContentType)
	if err != nil {
		if !errors.Is(err, ErrFileTooLarge) {
			log.Printf("[Ingest] Failed to store %s: %v", utils.SanitizeLogFilename(file.Filename), err)
		}
		return nil, err
	}

	photo := &models.Photo{
		Title:    info.OriginalName,
		Filename: info.Filename,
		FilePath: info.FilePath,
		FileSize: info.FileSize,
		MimeType: info.MimeType,
		OwnerID:  req.OwnerID,
	}

	if err := s.repo.Create(ctx, photo); err != nil {
		// 请求可能已被取消，清理不能使用请求的 ctx
		cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
		defer cancel()
		s.writer.Delete(cleanupCtx, info.FilePath)

		log.Printf("[Ingest] Failed to save metadata for %s: %v", info.Filename, err)
		return nil, fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
	}

	if s.invalidator != nil {
		s.invalidator.InvalidateList(context.WithoutCancel(ctx))
	}
	s.publishUploaded(photo)

	log.Printf("[Ingest] Stored photo %d as %s (%d bytes)", photo.ID, photo.Filename, photo.FileSize)
	return photo, nil
}

func (s *IngestService) publishUploaded(photo *models.Photo) {
	event := events.NewPhotoUploaded(photo)
	utils.SafeGo("publish-photo-uploaded", func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := s.publisher.PublishPhotoUploaded(ctx, event); err != nil {
			log.Printf("[Ingest] Failed to publish event for photo %d: %v", event.ID, err)
		}
	})
}
