// Package apperr 统一的业务错误类型
// 所有Service层错误都带有错误种类（Kind），由Handler层统一翻译为HTTP响应。
package apperr

import (
	"errors"
	"fmt"
)

// Kind 错误种类
type Kind string

const (
	KindValidation     Kind = "validation"     // 输入非法或冲突（参数校验失败、重复举报等）
	KindAuthentication Kind = "authentication" // 未认证或凭证无效
	KindAuthorization  Kind = "authorization"  // 已认证但权限不足（与NotFound区分）
	KindNotFound       Kind = "not_found"      // 资源不存在
	KindConflict       Kind = "conflict"       // 存储层唯一约束冲突（slug/举报并发竞争）
	KindInternal       Kind = "internal"       // 内部错误
)

// Error 业务错误
type Error struct {
	Kind    Kind
	Message string
	Err     error // 底层错误（可选）
}

// Error 实现error接口
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap 返回底层错误
func (e *Error) Unwrap() error {
	return e.Err
}

// New 创建业务错误
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap 包装底层错误
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Validation 创建校验错误
func Validation(message string) *Error {
	return New(KindValidation, message)
}

// Authentication 创建认证错误
func Authentication(message string) *Error {
	return New(KindAuthentication, message)
}

// Authorization 创建权限错误
func Authorization(message string) *Error {
	return New(KindAuthorization, message)
}

// NotFound 创建资源不存在错误
func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

// Conflict 创建冲突错误
func Conflict(message string) *Error {
	return New(KindConflict, message)
}

// Internal 创建内部错误
func Internal(message string, err error) *Error {
	return Wrap(KindInternal, message, err)
}

// KindOf 提取错误种类，非业务错误一律视为internal
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind 判断错误是否属于指定种类
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
