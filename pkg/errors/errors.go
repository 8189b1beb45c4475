package errors

import (
	stderrors "errors"
)

// ========== 错误码常量定义 ==========

// CodeSuccess 成功码
const (
	CodeSuccess = 0
)

// HTTP层错误码 (400-599)
const (
	CodeInvalidParam = 400
	CodeUnauthorized = 401
	CodeForbidden    = 403
	CodeNotFound     = 404
	CodeConflict     = 409
	CodeTooMany      = 429
	CodeServerError  = 500
)

// 业务错误码
const (
	CodeInvalidCredentials = 1002
)

// ========== 领域错误 ==========

// Kind 错误分类
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindDisabled
	KindInvalidCredentials
	KindAuthToken
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "ValidationError"
	case KindNotFound:
		return "NotFoundError"
	case KindConflict:
		return "ConflictError"
	case KindDisabled:
		return "DisabledError"
	case KindInvalidCredentials:
		return "InvalidCredentialsError"
	case KindAuthToken:
		return "AuthTokenError"
	default:
		return "UnknownError"
	}
}

// Code 返回分类对应的响应码
func (k Kind) Code() int {
	switch k {
	case KindValidation:
		return CodeInvalidParam
	case KindNotFound:
		return CodeNotFound
	case KindConflict:
		return CodeConflict
	case KindDisabled:
		return CodeForbidden
	case KindInvalidCredentials:
		return CodeInvalidCredentials
	case KindAuthToken:
		return CodeUnauthorized
	default:
		return CodeServerError
	}
}

// AppError 业务错误，Message 面向调用方展示
type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func newError(kind Kind, msg string) *AppError {
	return &AppError{Kind: kind, Message: msg}
}

func Validation(msg string) *AppError         { return newError(KindValidation, msg) }
func NotFound(msg string) *AppError           { return newError(KindNotFound, msg) }
func Conflict(msg string) *AppError           { return newError(KindConflict, msg) }
func Disabled(msg string) *AppError           { return newError(KindDisabled, msg) }
func InvalidCredentials(msg string) *AppError { return newError(KindInvalidCredentials, msg) }
func AuthToken(msg string) *AppError          { return newError(KindAuthToken, msg) }

// Unknown 包装存储层等非预期错误
func Unknown(msg string, err error) *AppError {
	return &AppError{Kind: KindUnknown, Message: msg, Err: err}
}

// KindOf 返回错误分类，非 AppError 一律视为 KindUnknown
func KindOf(err error) Kind {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// Is 判断错误是否属于指定分类
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
