package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ace-marketplace/internal/domain"
	"ace-marketplace/internal/feature/feed"
	"ace-marketplace/internal/feature/post"
	"ace-marketplace/internal/transport/http/ez"
)

// Feed GET /feed：服务端执行列表页的组合过滤
type Feed struct {
	Posts  *post.Service
	Engine *feed.Engine
	Log    *zap.Logger
}

func (h *Feed) Priority() int { return 40 }

type feedQuery struct {
	UserID string `form:"userId"`
	Type   string `form:"type"`
	Price  string `form:"price"`
	Size   string `form:"size"`
	Search string `form:"search"`
}

func (h *Feed) MountAPI(api *gin.RouterGroup) {
	e := ez.New(api, h.Log)
	ez.RegisterAction(e, ez.Action[feedQuery, []post.View]{
		Method: http.MethodGet,
		Path:   "/feed",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *feedQuery) ([]post.View, error) {
			typ := strings.TrimSpace(in.Type)
			if typ != "" && typ != feed.All && !post.ValidType(domain.PostType(typ)) {
				return nil, ez.BadRequest("Invalid type")
			}
			if !feed.ValidPriceBucket(in.Price) {
				return nil, ez.BadRequest("Invalid price range")
			}
			if !feed.ValidSizeBucket(in.Size) {
				return nil, ez.BadRequest("Invalid size range")
			}
			posts, err := h.Posts.List(c.Request.Context(), domain.PostFilter{UserID: strings.TrimSpace(in.UserID)})
			if err != nil {
				return nil, postErr(err)
			}
			out := h.Engine.Apply(posts, feed.Query{Type: typ, Price: in.Price, Size: in.Size, Search: in.Search})
			return post.NewViews(out), nil
		},
	})
}
