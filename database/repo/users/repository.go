package users

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/anoixa/photo-gallery/database"
	"github.com/anoixa/photo-gallery/database/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository 用户仓库
type Repository struct {
	db database.Provider
}

// NewRepository 创建用户仓库
func NewRepository(db database.Provider) *Repository {
	return &Repository{db: db}
}

// GetByEmail 通过邮箱获取用户
func (r *Repository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// EnsureUser 按邮箱查找用户，不存在时创建
func (r *Repository) EnsureUser(ctx context.Context, email, firstName, lastName string) (*models.User, error) {
	if email == "" {
		return nil, errors.New("email is required")
	}

	user, err := r.GetByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	user = &models.User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
	}
	// 多实例同时启动时另一方可能已写入同一邮箱
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(user)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to create user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return r.GetByEmail(ctx, email)
	}

	log.Printf("Created user %d <%s>", user.ID, email)
	return user, nil
}
