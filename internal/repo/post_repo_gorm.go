package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"ace-marketplace/internal/core/database"
	"ace-marketplace/internal/domain"
)

type PostRepo struct{ p *database.Provider }

func NewPostRepo(p *database.Provider) *PostRepo { return &PostRepo{p: p} }

var _ domain.PostRepository = (*PostRepo)(nil)

// 只带出 owner 的公开字段，密码哈希永不出库
func ownerProjection(db *gorm.DB) *gorm.DB {
	return db.Select("id", "username", "email", "avatar_url")
}

func (r *PostRepo) Create(ctx context.Context, p *domain.Post) error {
	db, err := r.p.DB(ctx)
	if err != nil {
		return err
	}
	owner := p.User
	p.User = nil // 不级联写 users
	err = db.Omit("User").Create(p).Error
	p.User = owner
	return err
}

func (r *PostRepo) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	db, err := r.p.DB(ctx)
	if err != nil {
		return nil, err
	}
	var p domain.Post
	err = db.Preload("User", ownerProjection).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostRepo) List(ctx context.Context, f domain.PostFilter) ([]domain.Post, error) {
	db, err := r.p.DB(ctx)
	if err != nil {
		return nil, err
	}
	q := db.Model(&domain.Post{}).Preload("User", ownerProjection)
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if s := f.Q; s != "" {
		q = q.Where("LOWER(content) LIKE ? ESCAPE '!'", "%"+escapeLike(strings.ToLower(s))+"%")
	}
	posts := make([]domain.Post, 0)
	if err := q.Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdateFields 字段级写入：并发更新同一帖子按列“后写覆盖”，无版本号
func (r *PostRepo) UpdateFields(ctx context.Context, p *domain.Post, columns ...string) error {
	if len(columns) == 0 {
		return nil
	}
	db, err := r.p.DB(ctx)
	if err != nil {
		return err
	}
	return db.Model(p).Omit("User").Select(columns).Updates(p).Error
}

func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}
