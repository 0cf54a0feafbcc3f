package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"ace-marketplace/internal/core/cache"
	"ace-marketplace/internal/core/media"
	"ace-marketplace/internal/domain"
	"ace-marketplace/pkg/utils"
)

var (
	ErrDuplicate          = errors.New("email or username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("user not found")
	ErrForbidden          = errors.New("not authorized to update this profile")
	ErrUpload             = errors.New("avatar upload failed")
)

// TokenIssuer 由 auth.JWTer 实现
type TokenIssuer interface {
	Issue(id, email string) (string, error)
}

type Service struct {
	users    domain.UserRepository
	tokens   TokenIssuer
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

func NewService(users domain.UserRepository, tokens TokenIssuer, up media.Uploader, log *zap.Logger, opts ...Option) *Service {
	if up == nil {
		up = media.Disabled{}
	}
	s := &Service{users: users, tokens: tokens, uploader: up, log: log, cacheTTL: time.Minute}
	for _, o := range opts {
		o(s)
	}
	return s
}

func cacheKey(id string) string { return "user:" + id }

func (s *Service) session(u *domain.User) (*Session, error) {
	tok, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Session{Token: tok, User: NewProfile(u)}, nil
}

func (s *Service) upload(ctx context.Context, img *media.Image) (string, error) {
	url, err := s.uploader.Upload(ctx, *img)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpload, err)
	}
	return url, nil
}

// Register 校验 → 唯一性预检 → (带头像) 上传 → 落库 → 签发 token。
// 预检与插入之间的竞争由唯一索引兜底，同样返回 ErrDuplicate。
func (s *Service) Register(ctx context.Context, in *RegisterInput) (*Session, error) {
	username, email := strings.TrimSpace(in.Username), strings.TrimSpace(in.Email)
	if username == "" || email == "" || in.Password == "" {
		return nil, invalid("", msgMissingFields)
	}
	var avatar *media.Image
	if in.Avatar != "" {
		img, err := decodeAvatar(in.Avatar)
		if err != nil {
			return nil, err
		}
		avatar = img
	}

	existing, err := s.users.FindConflict(ctx, email, username, "")
	if err != nil {
		return nil, fmt.Errorf("check conflict: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicate
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &domain.User{
		ID:            utils.NewID(),
		Username:      username,
		Email:         email,
		Password:      hash,
		AvatarURL:     strings.TrimSpace(in.AvatarURL),
		LicenseNumber: strings.TrimSpace(in.LicenseNumber),
		Company:       strings.TrimSpace(in.Company),
		Phone:         strings.TrimSpace(in.Phone),
		Bio:           strings.TrimSpace(in.Bio),
		Specialties:   cleanSpecialties(in.Specialties),
		IsRealtor:     in.IsRealtor,
	}
	if avatar != nil {
		if u.AvatarURL, err = s.upload(ctx, avatar); err != nil {
			return nil, err
		}
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.log.Info("user registered", zap.String("user_id", u.ID), zap.Bool("realtor", u.IsRealtor))
	return s.session(u)
}

// Login 未知邮箱与密码错误返回同一个错误
func (s *Service) Login(ctx context.Context, in *LoginInput) (*Session, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return nil, invalid("", msgLoginMissing)
	}
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if u == nil || !utils.CheckPassword(in.Password, u.Password) {
		return nil, ErrInvalidCredentials
	}
	return s.session(u)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.User, error) {
	u, err := cache.GetOrLoadJSON(s.cache, ctx, cacheKey(id), s.cacheTTL, func(ctx context.Context) (*domain.User, error) {
		return s.users.FindByID(ctx, id)
	})
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

// UpdateProfile 只能改自己；只写请求里出现的字段
func (s *Service) UpdateProfile(ctx context.Context, callerID, id string, in *UpdateInput) (*domain.User, error) {
	if callerID != id {
		return nil, ErrForbidden
	}
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if u == nil {
		return nil, ErrNotFound
	}

	var cols []string
	set := func(col string, dst *string, v *string) {
		if v == nil {
			return
		}
		*dst = strings.TrimSpace(*v)
		cols = append(cols, col)
	}

	var newUsername, newEmail string
	if in.Username != nil {
		if newUsername = strings.TrimSpace(*in.Username); newUsername == "" {
			return nil, invalid("username", msgEmptyUsername)
		}
	}
	if in.Email != nil {
		if newEmail = strings.TrimSpace(*in.Email); newEmail == "" {
			return nil, invalid("email", msgEmptyEmail)
		}
	}
	if in.Password != nil && *in.Password == "" {
		return nil, invalid("password", msgEmptyPassword)
	}
	var avatar *media.Image
	if in.Avatar != nil && *in.Avatar != "" {
		if avatar, err = decodeAvatar(*in.Avatar); err != nil {
			return nil, err
		}
	}

	if (newUsername != "" && newUsername != u.Username) || (newEmail != "" && newEmail != u.Email) {
		conflict, err := s.users.FindConflict(ctx, newEmail, newUsername, u.ID)
		if err != nil {
			return nil, fmt.Errorf("check conflict: %w", err)
		}
		if conflict != nil {
			return nil, ErrDuplicate
		}
	}

	set("username", &u.Username, in.Username)
	set("email", &u.Email, in.Email)
	// 明文与现有哈希一致时不重新哈希
	if in.Password != nil && !utils.CheckPassword(*in.Password, u.Password) {
		hash, err := utils.HashPassword(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		u.Password = hash
		cols = append(cols, "password")
	}
	set("license_number", &u.LicenseNumber, in.LicenseNumber)
	set("company", &u.Company, in.Company)
	set("phone", &u.Phone, in.Phone)
	set("bio", &u.Bio, in.Bio)
	if in.Specialties != nil {
		u.Specialties = cleanSpecialties(*in.Specialties)
		cols = append(cols, "specialties")
	}
	if in.IsRealtor != nil {
		u.IsRealtor = *in.IsRealtor
		cols = append(cols, "is_realtor")
	}
	switch {
	case avatar != nil:
		url, err := s.upload(ctx, avatar)
		if err != nil {
			return nil, err
		}
		u.AvatarURL = url
		cols = append(cols, "avatar_url")
	default:
		set("avatar_url", &u.AvatarURL, in.AvatarURL)
	}

	if len(cols) > 0 {
		if err := s.users.UpdateFields(ctx, u, cols...); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return nil, ErrDuplicate
			}
			return nil, fmt.Errorf("update user: %w", err)
		}
		if err := s.cache.Delete(ctx, cacheKey(id)); err != nil {
			s.log.Warn("user cache invalidate failed", zap.String("user_id", id), zap.Error(err))
		}
		s.log.Info("profile updated", zap.String("user_id", id), zap.Strings("fields", cols))
	}

	fresh, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload user: %w", err)
	}
	if fresh == nil {
		return nil, ErrNotFound
	}
	return fresh, nil
}
