package events

import (
	"context"
	"time"

	"github.com/anoixa/photo-gallery/database/models"
)

// TypePhotoUploaded 照片上传完成事件
const TypePhotoUploaded = "photo.uploaded"

// PhotoUploaded 照片上传事件负载
type PhotoUploaded struct {
	Type       string    `json:"type"`
	ID         uint      `json:"id"`
	Slug       string    `json:"slug"`
	Filename   string    `json:"filename"`
	FileSize   int64     `json:"file_size"`
	MimeType   string    `json:"mime_type"`
	OwnerID    uint      `json:"owner_id"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// NewPhotoUploaded 从照片记录构建事件
func NewPhotoUploaded(photo *models.Photo) PhotoUploaded {
	return PhotoUploaded{
		Type:       TypePhotoUploaded,
		ID:         photo.ID,
		Slug:       photo.Slug,
		Filename:   photo.Filename,
		FileSize:   photo.FileSize,
		MimeType:   photo.MimeType,
		OwnerID:    photo.OwnerID,
		UploadedAt: photo.UploadedAt,
	}
}

// Publisher 事件发布接口
type Publisher interface {
	PublishPhotoUploaded(ctx context.Context, event PhotoUploaded) error
	Close() error
}

// NoopPublisher 未配置消息队列时使用
type NoopPublisher struct{}

// PublishPhotoUploaded 丢弃事件
func (NoopPublisher) PublishPhotoUploaded(context.Context, PhotoUploaded) error { return nil }

// Close 无需关闭
func (NoopPublisher) Close() error { return nil }
