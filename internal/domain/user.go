package domain

import (
	"context"
	"time"
)

type User struct {
	ID        string `gorm:"primaryKey;type:varchar(32)" json:"id"`
	Username  string `gorm:"uniqueIndex;size:191;not null" json:"username"`
	Email     string `gorm:"uniqueIndex;size:191;not null" json:"email"`
	Password  string `gorm:"size:100;not null" json:"-"` // bcrypt 哈希
	AvatarURL string `gorm:"size:512" json:"avatarUrl,omitempty"`

	// 经纪人资料（可选）
	LicenseNumber string   `gorm:"size:64" json:"licenseNumber,omitempty"`
	Company       string   `gorm:"size:191" json:"company,omitempty"`
	Phone         string   `gorm:"size:32" json:"phone,omitempty"`
	Bio           string   `gorm:"type:text" json:"bio,omitempty"`
	Specialties   []string `gorm:"serializer:json;type:text" json:"specialties"`
	IsRealtor     bool     `gorm:"not null;default:false" json:"isRealtor"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	// FindConflict 返回 email 或 username 已被其他用户占用的记录（excludeID 为自身）
	FindConflict(ctx context.Context, email, username, excludeID string) (*User, error)
	UpdateFields(ctx context.Context, u *User, columns ...string) error
}
