package response

// 直接使用 HTTP 状态码
const (
	CodeOK             = 200
	CodeCreated        = 201
	CodeBadRequest     = 400
	CodeUnauthorized   = 401
	CodeForbidden      = 403
	CodeNotFound       = 404
	CodeConflict       = 409
	CodeTooLarge       = 413
	CodeServerError    = 500
	CodeUnavailable    = 503
	CodeGatewayTimeout = 504
)

// CodeMsgMap 默认错误文案
var CodeMsgMap = map[int]string{
	CodeOK:             "OK",
	CodeCreated:        "Created",
	CodeBadRequest:     "Bad Request",
	CodeUnauthorized:   "Unauthorized",
	CodeForbidden:      "Forbidden",
	CodeNotFound:       "Not Found",
	CodeConflict:       "Conflict",
	CodeTooLarge:       "Request body too large",
	CodeServerError:    "Internal Server Error",
	CodeUnavailable:    "Server busy",
	CodeGatewayTimeout: "Request timeout",
}
