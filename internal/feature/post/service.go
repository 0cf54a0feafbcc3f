package post

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"ace-marketplace/internal/core/cache"
	"ace-marketplace/internal/core/media"
	"ace-marketplace/internal/domain"
	"ace-marketplace/pkg/utils"
)

var (
	ErrNotFound     = errors.New("post not found")
	ErrForbidden    = errors.New("not authorized to update this post")
	ErrUnknownOwner = errors.New("user not found")
	ErrUpload       = errors.New("image upload failed")
)

type Service struct {
	posts    domain.PostRepository
	users    domain.UserRepository
	uploader media.Uploader
	cache    *cache.Cache
	cacheTTL time.Duration
	log      *zap.Logger
}

type Option func(*Service)

func WithCache(c *cache.Cache, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = c
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

func NewService(posts domain.PostRepository, users domain.UserRepository, up media.Uploader, log *zap.Logger, opts ...Option) *Service {
	if up == nil {
		up = media.Disabled{}
	}
	s := &Service{posts: posts, users: users, uploader: up, log: log, cacheTTL: time.Minute}
	for _, o := range opts {
		o(s)
	}
	return s
}

func cacheKey(id string) string { return "post:" + id }

func (s *Service) caller(ctx context.Context, callerID string) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("load caller: %w", err)
	}
	if u == nil {
		return nil, ErrUnknownOwner
	}
	return u, nil
}

func (s *Service) upload(ctx context.Context, img *media.Image) (string, error) {
	url, err := s.uploader.Upload(ctx, *img)
	if err != nil {
		// 上传失败直接中断，帖子不会引用坏掉的图片
		return "", fmt.Errorf("%w: %w", ErrUpload, err)
	}
	return url, nil
}

// Create 校验 → (HAVE 且带图) 上传 → 落库。校验在任何写入之前完成。
func (s *Service) Create(ctx context.Context, callerID string, in *CreateInput) (*domain.Post, error) {
	owner, err := s.caller(ctx, callerID)
	if err != nil {
		return nil, err
	}
	plan, err := validateCreate(in)
	if err != nil {
		return nil, err
	}

	p := plan.post
	p.ID = utils.NewID()
	p.UserID = owner.ID
	if plan.image != nil {
		if p.ImageURL, err = s.upload(ctx, plan.image); err != nil {
			return nil, err
		}
	}
	if err := s.posts.Create(ctx, &p); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	s.log.Info("post created", zap.String("post_id", p.ID), zap.String("user_id", owner.ID), zap.String("type", string(p.Type)))
	return s.reload(ctx, p.ID)
}

// Update 部分更新：只处理请求里出现的字段，其余保持不变。
// 没有版本号，并发更新同一帖子按列后写覆盖。
func (s *Service) Update(ctx context.Context, callerID, id string, in *UpdateInput) (*domain.Post, error) {
	if _, err := s.caller(ctx, callerID); err != nil {
		return nil, err
	}
	p, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load post: %w", err)
	}
	if p == nil {
		return nil, ErrNotFound
	}
	if p.UserID != callerID {
		return nil, ErrForbidden
	}

	plan, err := validateUpdate(p, in)
	if err != nil {
		return nil, err
	}

	var cols []string
	if plan.status != nil {
		p.Status = *plan.status
		cols = append(cols, "status")
	}
	if plan.price != nil {
		pd := *p.PropertyDetails
		pd.Price = plan.price
		p.PropertyDetails = &pd
		cols = append(cols, "property_details")
	}
	if plan.setTags {
		p.Tags = plan.tags
		cols = append(cols, "tags")
	}
	switch {
	case plan.image != nil:
		url, err := s.upload(ctx, plan.image)
		if err != nil {
			return nil, err
		}
		p.ImageURL = url
		cols = append(cols, "image_url")
	case plan.clearImage:
		p.ImageURL = ""
		cols = append(cols, "image_url")
	}

	if len(cols) > 0 {
		if err := s.posts.UpdateFields(ctx, p, cols...); err != nil {
			return nil, fmt.Errorf("update post: %w", err)
		}
		if err := s.cache.Delete(ctx, cacheKey(id)); err != nil {
			s.log.Warn("post cache invalidate failed", zap.String("post_id", id), zap.Error(err))
		}
		s.log.Info("post updated", zap.String("post_id", id), zap.Strings("fields", cols))
	}
	return s.reload(ctx, id)
}

func (s *Service) reload(ctx context.Context, id string) (*domain.Post, error) {
	p, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload post: %w", err)
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

// loadRow 缓存里只放帖子本身，作者资料会随 profile 更新而变
func (s *Service) loadRow(ctx context.Context, id string) (*domain.Post, error) {
	p, err := s.posts.FindByID(ctx, id)
	if p != nil {
		p.User = nil
	}
	return p, err
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Post, error) {
	p, err := cache.GetOrLoadJSON(s.cache, ctx, cacheKey(id), s.cacheTTL, func(ctx context.Context) (*domain.Post, error) {
		return s.loadRow(ctx, id)
	})
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	if p == nil {
		return nil, ErrNotFound
	}
	owner, err := s.users.FindByID(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("load post owner: %w", err)
	}
	if owner != nil {
		p.User = &domain.User{ID: owner.ID, Username: owner.Username, Email: owner.Email, AvatarURL: owner.AvatarURL}
	}
	return p, nil
}

// List 服务端过滤，无分页
func (s *Service) List(ctx context.Context, f domain.PostFilter) ([]domain.Post, error) {
	posts, err := s.posts.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}
