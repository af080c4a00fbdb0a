package models

import (
	"time"

	"github.com/anoixa/photo-gallery/utils"
	"gorm.io/gorm"
)

// SlugLength 照片 slug 长度
const SlugLength = 16

// Photo 一张已落盘图片的元数据，创建后不再修改
type Photo struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Slug        string    `gorm:"uniqueIndex:slug_idx;size:32;not null" json:"slug"`
	Title       string    `json:"title"`
	Filename    string    `gorm:"not null" json:"filename"`
	FilePath    string    `gorm:"not null" json:"file_path"`
	FileSize    int64     `gorm:"not null" json:"file_size"`
	MimeType    string    `gorm:"not null" json:"mime_type"`
	Width       *int      `json:"width"`
	Height      *int      `json:"height"`
	Description *string   `json:"description"`
	OwnerID     uint      `gorm:"column:owner_id;index:owner_id_idx" json:"owner_id"`
	Owner       *User     `gorm:"foreignKey:OwnerID" json:"-"`
	UploadedAt  time.Time `gorm:"column:uploaded_at;index:uploaded_at_idx" json:"uploaded_at"`
}

// BeforeCreate 填充 slug 与上传时间
func (p *Photo) BeforeCreate(tx *gorm.DB) error {
	if p.Slug == "" {
		slug, err := utils.GenerateSlug(SlugLength)
		if err != nil {
			return err
		}
		p.Slug = slug
	}
	if p.UploadedAt.IsZero() {
		p.UploadedAt = time.Now().UTC()
	}
	return nil
}
