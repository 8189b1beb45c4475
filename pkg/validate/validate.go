// Package validate 对请求结构体做校验，失败时返回 ValidationError。
//
// 字段可以通过 msg 标签指定提示语：
//
//	UserName string `validate:"required" msg:"用户名不能为空"`
//	Confirm  string `validate:"required,eqfield=Password" msg:"required=确认密码不能为空,eqfield=两次输入的密码不一致"`
package validate

import (
	stderrors "errors"
	"reflect"
	"strings"
	"sync"

	"adminhub/pkg/errors"

	"github.com/go-playground/validator/v10"
)

var (
	instance *validator.Validate
	once     sync.Once
)

func get() *validator.Validate {
	once.Do(func() {
		instance = validator.New()
	})
	return instance
}

// Struct 校验结构体，只返回第一个失败字段的提示
func Struct(s interface{}) error {
	err := get().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errors.Validation("参数错误")
	}

	fe := fieldErrs[0]
	return errors.Validation(message(s, fe))
}

func message(s interface{}, fe validator.FieldError) string {
	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	field, ok := t.FieldByName(fe.StructField())
	if !ok {
		return fe.Field() + "参数错误"
	}

	tag := field.Tag.Get("msg")
	if tag == "" {
		return fe.Field() + "参数错误"
	}
	if !strings.Contains(tag, "=") {
		return tag
	}

	// 按校验规则区分提示语
	for _, part := range strings.Split(tag, ",") {
		rule, msg, found := strings.Cut(part, "=")
		if found && rule == fe.Tag() {
			return msg
		}
	}
	return fe.Field() + "参数错误"
}
