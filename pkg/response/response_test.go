package response

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"adminhub/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/user/list", nil)
	return c, w
}

func TestSuccessWithPage(t *testing.T) {
	c, w := newContext()
	SuccessWithPage(c, []string{"a"}, 7)

	body := decode(t, w)
	assert.EqualValues(t, 0, body["code"])
	data := body["data"].(map[string]interface{})
	assert.EqualValues(t, 7, data["count"])
	assert.Len(t, data["list"], 1)
}

func TestFail_MapsKinds(t *testing.T) {
	tests := []struct {
		err  error
		code int
		msg  string
	}{
		{errors.Validation("用户名不能为空"), 400, "用户名不能为空"},
		{errors.Disabled("账号已禁用"), 403, "账号已禁用"},
		{errors.AuthToken("accessToken无效"), 401, "accessToken无效"},
		{errors.Unknown("查询失败", io.EOF), 500, "Unknown error"},
		{io.EOF, 500, "Unknown error"},
	}

	for _, tt := range tests {
		c, w := newContext()
		Fail(c, tt.err)

		body := decode(t, w)
		assert.EqualValues(t, tt.code, body["code"])
		assert.Equal(t, tt.msg, body["msg"])
		_, hasData := body["data"]
		assert.False(t, hasData)
	}
}
