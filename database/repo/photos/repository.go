package photos

import (
	"context"
	"fmt"

	"github.com/anoixa/photo-gallery/database"
	"github.com/anoixa/photo-gallery/database/models"
	"gorm.io/gorm"
)

// Repository 照片仓库
type Repository struct {
	db database.Provider
}

// NewRepository 创建新的照片仓库
func NewRepository(db database.Provider) *Repository {
	return &Repository{db: db}
}

// Create 在事务中插入照片记录
func (r *Repository) Create(ctx context.Context, photo *models.Photo) error {
	return r.db.TransactionWithContext(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(photo).Error; err != nil {
			return fmt.Errorf("failed to create photo in transaction: %w", err)
		}
		return nil
	})
}

// List 获取全部照片
func (r *Repository) List(ctx context.Context) ([]*models.Photo, error) {
	var photos []*models.Photo
	err := r.db.WithContext(ctx).
		Order("uploaded_at desc").
		Order("id desc").
		Find(&photos).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	return photos, nil
}
