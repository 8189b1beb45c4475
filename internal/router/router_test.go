package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"adminhub/internal/models"
	"adminhub/internal/testutils"
	"adminhub/pkg/config"
	"adminhub/pkg/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

type testServer struct {
	t      *testing.T
	db     *gorm.DB
	cfg    *config.Config
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.JWT.SecretKey = "router-test-secret"
	cfg.RateLimit.Requests = 1000
	cfg.RateLimit.Burst = 1000

	db := testutils.SetupTestDB(t)
	r := SetupRouter(Dependencies{
		Config:   cfg,
		DB:       db,
		Sessions: session.NewMemoryStore(),
	})

	return &testServer{t: t, db: db, cfg: cfg, router: r}
}

func (s *testServer) do(req *http.Request) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	require.Equal(s.t, http.StatusOK, w.Code)

	var env envelope
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func (s *testServer) postJSON(path string, body interface{}, token string) envelope {
	s.t.Helper()
	data, err := json.Marshal(body)
	require.NoError(s.t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	_, env := s.do(req)
	return env
}

func (s *testServer) postForm(path string, form url.Values, token string) envelope {
	s.t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	_, env := s.do(req)
	return env
}

func (s *testServer) get(path, token string) envelope {
	s.t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	_, env := s.do(req)
	return env
}

func (s *testServer) login(userName, password string) string {
	s.t.Helper()
	env := s.postJSON("/user/login", gin.H{"userName": userName, "password": password}, "")
	require.Equal(s.t, 0, env.Code, env.Msg)

	var data struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(s.t, data.AccessToken)
	return data.AccessToken
}

func TestRouter_RequiresToken(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/user/list", "/user/info", "/role/all", "/menu/list", "/banner/list"} {
		env := s.get(path, "")
		assert.Equal(t, 401, env.Code, path)
		assert.Equal(t, "accessToken无效", env.Msg)
	}

	env := s.get("/user/info", "not-a-jwt")
	assert.Equal(t, 401, env.Code)

	env = s.get("/banner/publish_list", "")
	assert.Equal(t, 0, env.Code)

	env = s.get("/health", "")
	assert.Equal(t, 0, env.Code)
}

func TestRouter_RegisterLoginLockout(t *testing.T) {
	s := newTestServer(t)

	// 表单提交注册
	env := s.postForm("/user/register", url.Values{
		"userName":       {"alice"},
		"password":       {"pw1"},
		"secondPassword": {"pw1"},
		"isAgree":        {"1"},
	}, "")
	require.Equal(t, 0, env.Code, env.Msg)
	assert.Equal(t, "用户注册成功", env.Msg)

	env = s.postJSON("/user/register", gin.H{
		"userName": "alice", "password": "pw1", "secondPassword": "pw1", "isAgree": 1,
	}, "")
	assert.Equal(t, 409, env.Code)

	for i := 0; i < 4; i++ {
		env = s.postJSON("/user/login", gin.H{"userName": "alice", "password": "wrong"}, "")
		assert.Equal(t, 1002, env.Code)
	}

	env = s.postJSON("/user/login", gin.H{"userName": "alice", "password": "pw1"}, "")
	assert.Equal(t, 403, env.Code)
	env = s.postJSON("/user/login", gin.H{"userName": "alice", "password": "pw1"}, "")
	assert.Equal(t, 403, env.Code)

	env = s.postJSON("/user/login", gin.H{"userName": "nobody", "password": "pw1"}, "")
	assert.Equal(t, 404, env.Code)
	assert.Equal(t, "用户不存在", env.Msg)

	env = s.postJSON("/user/login", gin.H{"userName": "alice"}, "")
	assert.Equal(t, 400, env.Code)
}

func TestRouter_LoginSetsSessionCookie(t *testing.T) {
	s := newTestServer(t)
	testutils.CreateTestUser(s.db, testutils.WithUserName("bob"), testutils.WithPassword("pw"))

	req := httptest.NewRequest(http.MethodPost, "/user/login", strings.NewReader(`{"userName":"bob","password":"pw"}`))
	req.Header.Set("Content-Type", "application/json")
	w, env := s.do(req)
	require.Equal(t, 0, env.Code)

	var sid *http.Cookie
	for _, ck := range w.Result().Cookies() {
		if ck.Name == s.cfg.Session.Name {
			sid = ck
		}
	}
	require.NotNil(t, sid)
	assert.NotEmpty(t, sid.Value)
}

func TestRouter_UserInfoAndAdmin(t *testing.T) {
	s := newTestServer(t)

	route := testutils.CreateTestMenu(s.db, models.MenuTypeRoute, "user")
	btn := testutils.CreateTestMenu(s.db, models.MenuTypeButton, "user:add")
	admin := testutils.CreateTestRole(s.db, testutils.WithRoleName("超级管理员"), testutils.WithMenus(route.ID, btn.ID))
	testutils.CreateTestUser(s.db, testutils.WithUserName("root"), testutils.WithPassword("pw"), testutils.WithRoles(admin.ID))

	token := s.login("root", "pw")

	env := s.get("/user/info", token)
	require.Equal(t, 0, env.Code, env.Msg)
	var info map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &info))
	assert.Equal(t, "root", info["userName"])
	assert.Equal(t, []interface{}{"超级管理员"}, info["roleList"])
	assert.Equal(t, []interface{}{"user"}, info["routePermissionsList"])
	assert.Equal(t, []interface{}{"user:add"}, info["btnPermissionsList"])
	assert.NotContains(t, info, "password")

	// 新增用户
	env = s.postJSON("/user/save", gin.H{"userName": "carol", "email": "c@example.com", "status": 1, "roles": []int64{admin.ID}}, token)
	require.Equal(t, 0, env.Code, env.Msg)
	assert.Equal(t, "用户信息新增成功", env.Msg)

	env = s.postJSON("/user/save", gin.H{"userName": "dave"}, token)
	assert.Equal(t, 400, env.Code)
	assert.Equal(t, "所属角色不能为空", env.Msg)

	env = s.get("/user/list?userName=car&pageNumber=1&pageSize=10", token)
	require.Equal(t, 0, env.Code)
	var page struct {
		List []struct {
			ID        int64  `json:"id"`
			UserName  string `json:"userName"`
			RoleNames string `json:"roleNames"`
		} `json:"list"`
		Count int64 `json:"count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, int64(1), page.Count)
	require.Len(t, page.List, 1)
	assert.Equal(t, "超级管理员", page.List[0].RoleNames)
	carolID := page.List[0].ID

	env = s.get("/user/detail?userId="+jsonNumber(carolID), token)
	require.Equal(t, 0, env.Code)
	assert.NotContains(t, string(env.Data), "password")

	env = s.postJSON("/user/change_status", gin.H{"userId": carolID}, token)
	assert.Equal(t, 0, env.Code)
	assert.Equal(t, "用户禁用成功", env.Msg)

	env = s.postJSON("/user/reset_password", gin.H{"userId": carolID}, token)
	assert.Equal(t, 0, env.Code)

	env = s.get("/user/count", token)
	assert.Equal(t, 0, env.Code)
	assert.JSONEq(t, `{"count":2}`, string(env.Data))

	env = s.postJSON("/user/delete", gin.H{"userId": carolID}, token)
	assert.Equal(t, 0, env.Code)
	env = s.postJSON("/user/delete", gin.H{"userId": carolID}, token)
	assert.Equal(t, 404, env.Code)

	env = s.get("/user/detail", token)
	assert.Equal(t, 400, env.Code)

	env = s.postJSON("/user/logout", nil, token)
	assert.Equal(t, 0, env.Code)
}

func TestRouter_RolesMenusBanners(t *testing.T) {
	s := newTestServer(t)
	testutils.CreateTestUser(s.db, testutils.WithUserName("root"), testutils.WithPassword("pw"))
	menu := testutils.CreateTestMenu(s.db, models.MenuTypeRoute, "banner")
	token := s.login("root", "pw")

	env := s.postJSON("/role/save", gin.H{"roleName": "运营"}, token)
	require.Equal(t, 0, env.Code, env.Msg)

	env = s.get("/role/all", token)
	require.Equal(t, 0, env.Code)
	var roles []struct {
		ID       int64  `json:"id"`
		RoleName string `json:"roleName"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &roles))
	require.Len(t, roles, 1)

	env = s.postJSON("/role/set_permissions", gin.H{"roleId": roles[0].ID, "menus": []int64{menu.ID}}, token)
	assert.Equal(t, 0, env.Code, env.Msg)

	env = s.get("/menu/list", token)
	assert.Equal(t, 0, env.Code)

	env = s.postJSON("/banner/save", gin.H{"title": "首页", "imageUrl": "https://img/1.png"}, token)
	require.Equal(t, 0, env.Code, env.Msg)

	env = s.get("/banner/publish_list", "")
	assert.JSONEq(t, `[]`, string(env.Data))

	env = s.postJSON("/banner/publish", gin.H{"bannerId": 1}, token)
	require.Equal(t, 0, env.Code, env.Msg)

	env = s.get("/banner/publish_list", "")
	var published []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &published))
	require.Len(t, published, 1)
	assert.Equal(t, "root", published[0]["createBy"])

	env = s.postJSON("/role/delete", gin.H{"roleId": roles[0].ID}, token)
	assert.Equal(t, 0, env.Code)
}

func jsonNumber(v int64) string {
	data, _ := json.Marshal(v)
	return string(data)
}
