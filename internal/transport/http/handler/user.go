package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ace-marketplace/internal/feature/user"
	"ace-marketplace/internal/transport/http/ez"
	mdw "ace-marketplace/internal/transport/http/middleware"
)

// Users GET/PUT /users/:id
type Users struct {
	Users *user.Service
	Auth  gin.HandlerFunc
	Log   *zap.Logger
}

func (h *Users) Priority() int { return 30 }

func (h *Users) MountAPI(api *gin.RouterGroup) {
	public := ez.New(api.Group("", mdw.NoCache()), h.Log)
	ez.RegisterAction(public, ez.Action[struct{}, user.Profile]{
		Method: http.MethodGet,
		Path:   "/users/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (user.Profile, error) {
			u, err := h.Users.Get(c.Request.Context(), c.Param("id"))
			if err != nil {
				return user.Profile{}, userErr(err, "Failed to fetch user profile")
			}
			return user.NewProfile(u), nil
		},
	})

	authed := ez.New(api.Group("", h.Auth), h.Log)
	ez.RegisterAction(authed, ez.Action[user.UpdateInput, user.Profile]{
		Method: http.MethodPut,
		Path:   "/users/:id",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *user.UpdateInput) (user.Profile, error) {
			u, err := h.Users.UpdateProfile(c.Request.Context(), ez.UserID(c), c.Param("id"), in)
			if err != nil {
				return user.Profile{}, userErr(err, "Failed to update profile")
			}
			return user.NewProfile(u), nil
		},
	})
}
