package photo

import (
	"context"
	"fmt"

	"github.com/anoixa/photo-gallery/database/repo/users"
)

// OwnerResolver 确定一次上传的归属用户
type OwnerResolver interface {
	ResolveOwner(ctx context.Context) (uint, error)
}

// StaticOwnerResolver 所有上传都归属同一个用户
type StaticOwnerResolver struct {
	ownerID uint
}

// NewStaticOwnerResolver 创建固定归属解析器
func NewStaticOwnerResolver(ownerID uint) *StaticOwnerResolver {
	return &StaticOwnerResolver{ownerID: ownerID}
}

// ResolveOwner 返回固定用户 ID
func (r *StaticOwnerResolver) ResolveOwner(ctx context.Context) (uint, error) {
	if r.ownerID == 0 {
		return 0, ErrOwnerRequired
	}
	return r.ownerID, nil
}

// NewDefaultOwnerResolver 确保默认用户存在，并以其作为上传归属
func NewDefaultOwnerResolver(ctx context.Context, repo *users.Repository, email, firstName, lastName string) (*StaticOwnerResolver, error) {
	user, err := repo.EnsureUser(ctx, email, firstName, lastName)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure default owner: %w", err)
	}
	return NewStaticOwnerResolver(user.ID), nil
}
