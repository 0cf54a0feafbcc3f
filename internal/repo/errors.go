package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// IsDupKey 唯一约束冲突（各驱动报错文案不同，兜底按字符串判断）
func IsDupKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation")
}
