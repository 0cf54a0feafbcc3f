package response

// ErrorBody 失败响应 {"error": "..."}；成功响应直接返回资源本身
type ErrorBody struct {
	Error string `json:"error"`
}

// Error 失败响应（可以传自定义 msg 覆盖默认）
func Error(code int, customMsg string) ErrorBody {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	if msg == "" {
		msg = "Request failed"
	}
	return ErrorBody{Error: msg}
}

// Status 健康检查
type Status struct {
	Status string `json:"status"`
}

func OK() Status { return Status{Status: "ok"} }
