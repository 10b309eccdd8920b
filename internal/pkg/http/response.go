package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"isoko/internal/pkg/apperr"
)

// ErrorResponse 错误响应（所有API共用）
// 用于统一错误响应格式
type ErrorResponse struct {
	Code    int    `json:"code"`             // 错误码（非0表示错误）
	Message string `json:"message"`          // 错误消息
	Detail  string `json:"detail,omitempty"` // 错误详情（可选）
}

// SuccessResponse 成功响应（所有API共用）
// 用于统一成功响应格式
type SuccessResponse struct {
	Code    int         `json:"code"`           // 状态码（0表示成功）
	Message string      `json:"message"`        // 响应消息
	Data    interface{} `json:"data,omitempty"` // 响应数据（可选）
}

// WriteSuccess 写入成功响应
func WriteSuccess(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, SuccessResponse{
		Code:    0,
		Message: message,
		Data:    data,
	})
}

// WriteError 将业务错误翻译为HTTP响应
// 错误种类 -> 状态码/错误码的映射是全局唯一的出口：
//
//	validation     -> 400 40001
//	authentication -> 401 40101
//	authorization  -> 403 40301（与404严格区分）
//	not_found      -> 404 40401
//	conflict       -> 409 40901
//	其他           -> 500 50001
func WriteError(c *gin.Context, err error) {
	status, code := http.StatusInternalServerError, 50001

	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		status, code = http.StatusBadRequest, 40001
	case apperr.KindAuthentication:
		status, code = http.StatusUnauthorized, 40101
	case apperr.KindAuthorization:
		status, code = http.StatusForbidden, 40301
	case apperr.KindNotFound:
		status, code = http.StatusNotFound, 40401
	case apperr.KindConflict:
		status, code = http.StatusConflict, 40901
	}

	resp := ErrorResponse{Code: code}

	var e *apperr.Error
	if errors.As(err, &e) {
		resp.Message = e.Message
		if e.Err != nil && status == http.StatusInternalServerError {
			resp.Detail = e.Err.Error()
		}
	} else {
		resp.Message = "Internal Server Error"
	}

	c.JSON(status, resp)
}

// WriteBindError 写入请求体解析失败响应
func WriteBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    40001,
		Message: "Invalid request body",
		Detail:  err.Error(),
	})
}
