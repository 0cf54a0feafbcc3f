package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"ace-marketplace/internal/core/database"
	"ace-marketplace/internal/domain"
)

type UserRepo struct{ p *database.Provider }

func NewUserRepo(p *database.Provider) *UserRepo { return &UserRepo{p: p} }

var _ domain.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	db, err := r.p.DB(ctx)
	if err != nil {
		return err
	}
	if err := db.Create(u).Error; err != nil {
		if IsDupKey(err) {
			return domain.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *UserRepo) FindConflict(ctx context.Context, email, username, excludeID string) (*domain.User, error) {
	db, err := r.p.DB(ctx)
	if err != nil {
		return nil, err
	}
	q := db.Where("(email = ? OR username = ?)", email, username)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var u domain.User
	err = q.First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateFields 只写入指定列（updated_at 自动维护）
func (r *UserRepo) UpdateFields(ctx context.Context, u *domain.User, columns ...string) error {
	if len(columns) == 0 {
		return nil
	}
	db, err := r.p.DB(ctx)
	if err != nil {
		return err
	}
	if err := db.Model(u).Select(columns).Updates(u).Error; err != nil {
		if IsDupKey(err) {
			return domain.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *UserRepo) first(ctx context.Context, query string, args ...any) (*domain.User, error) {
	db, err := r.p.DB(ctx)
	if err != nil {
		return nil, err
	}
	var u domain.User
	err = db.Where(query, args...).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
