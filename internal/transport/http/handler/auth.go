package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ace-marketplace/internal/feature/user"
	"ace-marketplace/internal/transport/http/ez"
)

// Auth POST /auth/register, POST /auth/login
type Auth struct {
	Users *user.Service
	Log   *zap.Logger
}

func (h *Auth) Priority() int { return 10 }

func (h *Auth) MountAPI(api *gin.RouterGroup) {
	e := ez.New(api, h.Log)

	ez.RegisterAction(e, ez.Action[user.RegisterInput, *user.Session]{
		Method: http.MethodPost,
		Path:   "/auth/register",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *user.RegisterInput) (*user.Session, error) {
			s, err := h.Users.Register(c.Request.Context(), in)
			return s, userErr(err, "Registration failed")
		},
	})

	ez.RegisterAction(e, ez.Action[user.LoginInput, *user.Session]{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *user.LoginInput) (*user.Session, error) {
			s, err := h.Users.Login(c.Request.Context(), in)
			return s, userErr(err, "Login failed")
		},
	})
}
