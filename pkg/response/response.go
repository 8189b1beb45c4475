package response

import (
	stderrors "errors"
	"net/http"

	"adminhub/pkg/errors"
	"adminhub/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Response 统一返回格式
type Response struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

// PageData 分页数据
type PageData struct {
	List  interface{} `json:"list"`
	Count int64       `json:"count"`
}

// ========== 基础返回方法 ==========

// Success 成功返回
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: errors.CodeSuccess,
		Msg:  "success",
		Data: data,
	})
}

// SuccessWithMessage 成功返回（自定义消息）
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: errors.CodeSuccess,
		Msg:  message,
		Data: data,
	})
}

// SuccessWithPage 分页成功返回
func SuccessWithPage(c *gin.Context, list interface{}, count int64) {
	Success(c, PageData{List: list, Count: count})
}

// Error 通用错误返回
func Error(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Response{
		Code: code,
		Msg:  message,
	})
}

// Fail 将业务错误转换为统一返回，未知错误只记录日志不向外暴露细节
func Fail(c *gin.Context, err error) {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) && appErr.Kind != errors.KindUnknown {
		Error(c, appErr.Kind.Code(), appErr.Message)
		return
	}

	logger.FromContext(c.Request.Context()).WithField("path", c.Request.URL.Path).Errorf("request failed: %v", err)
	ServerError(c, "Unknown error")
}

// ========== HTTP错误快捷方法 ==========

func BadRequest(c *gin.Context, message string) {
	Error(c, errors.CodeInvalidParam, message)
}

func TooManyRequests(c *gin.Context, message string) {
	Error(c, errors.CodeTooMany, message)
}

func ServerError(c *gin.Context, message string) {
	Error(c, errors.CodeServerError, message)
}
