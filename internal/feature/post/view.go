package post

import (
	"time"

	"ace-marketplace/internal/domain"
)

// OwnerView 只暴露 owner 的公开字段
type OwnerView struct {
	ID        string `json:"_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

type View struct {
	ID              string                  `json:"_id"`
	Type            domain.PostType         `json:"type"`
	Status          string                  `json:"status"`
	Content         string                  `json:"content"`
	UserID          *OwnerView              `json:"userId"`
	ImageURL        string                  `json:"imageUrl,omitempty"`
	PropertyDetails *domain.PropertyDetails `json:"propertyDetails,omitempty"`
	Tags            []string                `json:"tags"`
	CreatedAt       time.Time               `json:"createdAt"`
	UpdatedAt       time.Time               `json:"updatedAt"`
}

func NewView(p *domain.Post) View {
	v := View{
		ID:              p.ID,
		Type:            p.Type,
		Status:          p.Status,
		Content:         p.Content,
		ImageURL:        p.ImageURL,
		PropertyDetails: p.PropertyDetails,
		Tags:            p.Tags,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	if v.Tags == nil {
		v.Tags = []string{}
	}
	if u := p.User; u != nil {
		v.UserID = &OwnerView{ID: u.ID, Username: u.Username, Email: u.Email, AvatarURL: u.AvatarURL}
	}
	return v
}

func NewViews(posts []domain.Post) []View {
	out := make([]View, 0, len(posts))
	for i := range posts {
		out = append(out, NewView(&posts[i]))
	}
	return out
}
