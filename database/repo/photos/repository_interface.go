package photos

import (
	"context"

	"github.com/anoixa/photo-gallery/database/models"
)

// RepositoryInterface 照片仓库接口
// 照片记录创建后不可变，因此这里没有更新操作
type RepositoryInterface interface {
	// Create 插入一条照片记录，ID/Slug/UploadedAt 由存储层填充
	Create(ctx context.Context, photo *models.Photo) error
	// List 获取全部照片，按上传时间倒序
	List(ctx context.Context) ([]*models.Photo, error)
}

// 确保 Repository 实现了 RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
