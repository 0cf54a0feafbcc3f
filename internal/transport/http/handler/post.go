package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ace-marketplace/internal/domain"
	"ace-marketplace/internal/feature/post"
	"ace-marketplace/internal/transport/http/ez"
)

// Posts GET/POST /posts, GET/PUT /posts/:id
type Posts struct {
	Posts *post.Service
	Auth  gin.HandlerFunc
	Log   *zap.Logger
}

func (h *Posts) Priority() int { return 20 }

type listQuery struct {
	UserID string `form:"userId"`
	Type   string `form:"type"`
	Q      string `form:"q"`
}

func (h *Posts) MountAPI(api *gin.RouterGroup) {
	public := ez.New(api, h.Log)
	authed := ez.New(api.Group("", h.Auth), h.Log)

	ez.RegisterAction(public, ez.Action[listQuery, []post.View]{
		Method: http.MethodGet,
		Path:   "/posts",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *listQuery) ([]post.View, error) {
			posts, err := h.Posts.List(c.Request.Context(), domain.PostFilter{
				UserID: strings.TrimSpace(in.UserID),
				Type:   domain.PostType(strings.TrimSpace(in.Type)),
				Q:      strings.TrimSpace(in.Q),
			})
			if err != nil {
				return nil, postErr(err)
			}
			return post.NewViews(posts), nil
		},
	})

	ez.RegisterAction(public, ez.Action[struct{}, post.View]{
		Method: http.MethodGet,
		Path:   "/posts/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (post.View, error) {
			p, err := h.Posts.Get(c.Request.Context(), c.Param("id"))
			if err != nil {
				return post.View{}, postErr(err)
			}
			return post.NewView(p), nil
		},
	})

	ez.RegisterAction(authed, ez.Action[post.CreateInput, post.View]{
		Method: http.MethodPost,
		Path:   "/posts",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Auth:   true,
		Handler: func(c *gin.Context, in *post.CreateInput) (post.View, error) {
			p, err := h.Posts.Create(c.Request.Context(), ez.UserID(c), in)
			if err != nil {
				return post.View{}, postErr(err)
			}
			return post.NewView(p), nil
		},
	})

	ez.RegisterAction(authed, ez.Action[post.UpdateInput, post.View]{
		Method: http.MethodPut,
		Path:   "/posts/:id",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *post.UpdateInput) (post.View, error) {
			p, err := h.Posts.Update(c.Request.Context(), ez.UserID(c), c.Param("id"), in)
			if err != nil {
				return post.View{}, postErr(err)
			}
			return post.NewView(p), nil
		},
	})
}
