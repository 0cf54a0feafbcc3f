package user

import (
	"time"

	"ace-marketplace/internal/domain"
)

// Profile 对外的用户资料，不含密码
type Profile struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	AvatarURL     string    `json:"avatarUrl,omitempty"`
	LicenseNumber string    `json:"licenseNumber,omitempty"`
	Company       string    `json:"company,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Bio           string    `json:"bio,omitempty"`
	Specialties   []string  `json:"specialties"`
	IsRealtor     bool      `json:"isRealtor"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func NewProfile(u *domain.User) Profile {
	sp := u.Specialties
	if sp == nil {
		sp = []string{}
	}
	return Profile{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		AvatarURL:     u.AvatarURL,
		LicenseNumber: u.LicenseNumber,
		Company:       u.Company,
		Phone:         u.Phone,
		Bio:           u.Bio,
		Specialties:   sp,
		IsRealtor:     u.IsRealtor,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

// Session 注册 / 登录的响应
type Session struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}
