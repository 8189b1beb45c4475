package errors

import (
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
		code int
	}{
		{"validation", Validation("用户名不能为空"), KindValidation, 400},
		{"not found", NotFound("用户不存在"), KindNotFound, 404},
		{"conflict", Conflict("该用户已存在"), KindConflict, 409},
		{"disabled", Disabled("账号已禁用"), KindDisabled, 403},
		{"credentials", InvalidCredentials("密码错误"), KindInvalidCredentials, 1002},
		{"token", AuthToken("accessToken无效"), KindAuthToken, 401},
		{"wrapped", fmt.Errorf("outer: %w", Conflict("dup")), KindConflict, 409},
		{"plain", io.EOF, KindUnknown, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
			assert.Equal(t, tt.code, KindOf(tt.err).Code())
			assert.True(t, Is(tt.err, tt.want))
		})
	}
}

func TestUnknown_WrapsCause(t *testing.T) {
	err := Unknown("查询用户失败", io.ErrUnexpectedEOF)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Equal(t, "查询用户失败: unexpected EOF", err.Error())
	assert.False(t, Is(nil, KindUnknown))
}
