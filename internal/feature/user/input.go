package user

import (
	"strings"

	"ace-marketplace/internal/core/media"
)

// ValidationError 字段级校验失败，Msg 直接返回给客户端
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string { return e.Msg }

func invalid(field, msg string) *ValidationError { return &ValidationError{Field: field, Msg: msg} }

const (
	msgMissingFields = "Missing required fields"
	msgLoginMissing  = "Email and password required"
	msgEmptyUsername = "Username cannot be empty"
	msgEmptyEmail    = "Email cannot be empty"
	msgEmptyPassword = "Password cannot be empty"
	msgAvatar        = "Invalid image payload"
)

// RegisterInput POST /auth/register；经纪人字段可选
type RegisterInput struct {
	Username      string   `json:"username"`
	Email         string   `json:"email"`
	Password      string   `json:"password"`
	AvatarURL     string   `json:"avatarUrl"`
	Avatar        string   `json:"avatar"` // base64 / data URI，优先于 avatarUrl
	LicenseNumber string   `json:"licenseNumber"`
	Company       string   `json:"company"`
	Phone         string   `json:"phone"`
	Bio           string   `json:"bio"`
	Specialties   []string `json:"specialties"`
	IsRealtor     bool     `json:"isRealtor"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateInput PUT /users/:id；nil 表示不修改
type UpdateInput struct {
	Username      *string   `json:"username"`
	Email         *string   `json:"email"`
	Password      *string   `json:"password"`
	AvatarURL     *string   `json:"avatarUrl"` // 空串清除头像
	Avatar        *string   `json:"avatar"`
	LicenseNumber *string   `json:"licenseNumber"`
	Company       *string   `json:"company"`
	Phone         *string   `json:"phone"`
	Bio           *string   `json:"bio"`
	Specialties   *[]string `json:"specialties"`
	IsRealtor     *bool     `json:"isRealtor"`
}

// cleanSpecialties 去空白并丢弃空项，结果非 nil
func cleanSpecialties(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func decodeAvatar(payload string) (*media.Image, error) {
	img, err := media.DecodeImage(payload)
	if err != nil {
		return nil, invalid("avatar", msgAvatar)
	}
	return &img, nil
}
