package domain

import (
	"context"
	"time"
)

type PostType string

const (
	PostNeed PostType = "NEED"
	PostHave PostType = "HAVE"
)

type SizeUnit string

const (
	SizeSqft  SizeUnit = "sqft"
	SizeAcres SizeUnit = "acres"
)

type Location struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Address string `json:"address,omitempty"`
}

type PropertyDetails struct {
	PropertyType string    `json:"propertyType,omitempty"`
	Industry     []string  `json:"industry,omitempty"`
	Location     *Location `json:"location,omitempty"`
	Size         *float64  `json:"size,omitempty"`
	SizeUnit     SizeUnit  `json:"sizeUnit,omitempty"`
	Price        *float64  `json:"price,omitempty"`
}

type Post struct {
	ID              string           `gorm:"primaryKey;type:varchar(32)"`
	Type            PostType         `gorm:"size:8;not null;index"`
	Status          string           `gorm:"size:16;not null;default:active"`
	Content         string           `gorm:"type:text;not null"`
	UserID          string           `gorm:"type:varchar(32);not null;index"`
	User            *User            `gorm:"foreignKey:UserID"`
	ImageURL        string           `gorm:"size:512"`
	PropertyDetails *PropertyDetails `gorm:"serializer:json;type:text"`
	Tags            []string         `gorm:"serializer:json;type:text"`

	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Post) TableName() string { return "posts" }

// PostFilter GET /posts 的服务端过滤；零值字段不参与
type PostFilter struct {
	UserID string
	Type   PostType
	Q      string // content 不区分大小写子串
}

type PostRepository interface {
	Create(ctx context.Context, p *Post) error
	FindByID(ctx context.Context, id string) (*Post, error)
	List(ctx context.Context, f PostFilter) ([]Post, error)
	UpdateFields(ctx context.Context, p *Post, columns ...string) error
}
