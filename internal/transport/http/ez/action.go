package ez

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	resp "ace-marketplace/internal/transport/http/response"
)

// KeyUserID / KeyEmail 由 AuthJWT 写入 gin.Context
const (
	KeyUserID = "userId"
	KeyEmail  = "email"
)

type EZ struct {
	g   *gin.RouterGroup
	log *zap.Logger
}

func New(g *gin.RouterGroup, l *zap.Logger) EZ {
	if l == nil {
		l = zap.NewNop()
	}
	return EZ{g: g, log: l}
}

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON 绑定
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindNone  Binder = "none"  // 不绑定，自己从 c.Param 取
)

// AErr 统一错误对象，Code 即 HTTP 状态码
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &AErr{Code: resp.CodeBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: resp.CodeUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &AErr{Code: resp.CodeForbidden, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Code: resp.CodeNotFound, Msg: msg} }
func Conflict(msg string) error     { return &AErr{Code: resp.CodeConflict, Msg: msg} }

// Internal msg 返回给客户端，err 只进日志
func Internal(msg string, err error) error {
	return &AErr{Code: resp.CodeServerError, Msg: msg, Err: err}
}

// 动作定义：I 入参，O 出参
type Action[I any, O any] struct {
	Method  string // "GET" | "POST" | "PUT"
	Path    string // 例："/auth/login"、"/posts/:id"
	Binder  Binder
	Status  int  // 成功状态码，默认 200
	Auth    bool // 要求已登录（检查 userId）
	Handler func(c *gin.Context, in *I) (O, error)
}

// UserID 当前请求的登录用户
func UserID(c *gin.Context) string { return c.GetString(KeyUserID) }

// RegisterAction 在当前 EZ 下注册动作接口
func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	status := a.Status
	if status == 0 {
		status = http.StatusOK
	}
	h := func(c *gin.Context) {
		// 1) 鉴权
		if a.Auth && UserID(c) == "" {
			c.AbortWithStatusJSON(resp.CodeUnauthorized, resp.Error(resp.CodeUnauthorized, "Missing Authorization header"))
			return
		}

		// 2) 绑定入参
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		default: // BindNone: 不绑定
		}
		if bindErr != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(bindErr, &tooLarge) {
				c.AbortWithStatusJSON(resp.CodeTooLarge, resp.Error(resp.CodeTooLarge, ""))
				return
			}
			c.AbortWithStatusJSON(resp.CodeBadRequest, resp.Error(resp.CodeBadRequest, "Invalid request body"))
			return
		}

		// 3) 执行
		out, err := a.Handler(c, &in)

		// 4) 统一错误映射
		if err != nil {
			var ae *AErr
			if !errors.As(err, &ae) {
				ae = &AErr{Code: resp.CodeServerError, Msg: "Request failed", Err: err}
			}
			if ae.Code >= resp.CodeServerError {
				e.log.Error("action failed",
					zap.String("method", c.Request.Method),
					zap.String("path", c.FullPath()),
					zap.String("user_id", UserID(c)),
					zap.Error(ae.Err),
				)
			}
			c.AbortWithStatusJSON(ae.Code, resp.Error(ae.Code, ae.Msg))
			return
		}
		c.JSON(status, out)
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default: // 默认 POST
		e.g.POST(a.Path, h)
	}
}
