package database

import (
	"gorm.io/gorm"

	"ace-marketplace/internal/domain"
)

// Migrate 建/改 users、posts 表
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.User{}, &domain.Post{})
}
