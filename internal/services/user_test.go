package services

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"adminhub/internal/models"
	"adminhub/internal/testutils"
	"adminhub/pkg/errors"
	"adminhub/pkg/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestUserService_GetPageList_Pagination(t *testing.T) {
	env := newTestEnv(t)

	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.Local)
	ids := make([]int64, 0, 25)
	for i := 0; i < 25; i++ {
		u := testutils.CreateTestUser(env.db,
			testutils.WithUserName(fmt.Sprintf("user%02d", i)),
			testutils.WithCreateTime(base.Add(time.Duration(i)*time.Minute).Format(models.TimeLayout)),
		)
		ids = append(ids, u.ID)
	}

	list, count, err := env.users.GetPageList(context.Background(), UserListQuery{
		PageParams: pagination.PageParams{PageNumber: 2, PageSize: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(25), count)
	require.Len(t, list, 10)

	// 倒序后的第11到第20条
	for i, item := range list {
		assert.Equal(t, ids[24-10-i], item.ID)
	}

	last, count, err := env.users.GetPageList(context.Background(), UserListQuery{
		PageParams: pagination.PageParams{PageNumber: 3, PageSize: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(25), count)
	assert.Len(t, last, 5)
}

func TestUserService_GetPageList_Filters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := testutils.CreateTestRole(env.db, testutils.WithRoleName("admin"))
	editor := testutils.CreateTestRole(env.db, testutils.WithRoleName("editor"))

	testutils.CreateTestUser(env.db, testutils.WithUserName("alice"), testutils.WithRoles(admin.ID, editor.ID),
		testutils.WithCreateTime("2024-03-01 08:30:15"))
	testutils.CreateTestUser(env.db, testutils.WithUserName("malice"), testutils.WithRoles(editor.ID),
		testutils.WithStatus(models.StatusDisabled))
	testutils.CreateTestUser(env.db, testutils.WithUserName("bob"), testutils.WithRoles(admin.ID))

	list, count, err := env.users.GetPageList(ctx, UserListQuery{UserName: "lic"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Len(t, list, 2)

	list, count, err = env.users.GetPageList(ctx, UserListQuery{UserName: "lic", Status: intPtr(models.StatusEnabled)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	require.Len(t, list, 1)
	assert.Equal(t, "alice", list[0].UserName)
	assert.Equal(t, "admin，editor", list[0].RoleNames)
	assert.Equal(t, "2024-03-01 08:30", list[0].CreateTime)

	_, count, err = env.users.GetPageList(ctx, UserListQuery{RoleID: admin.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	_, count, err = env.users.GetPageList(ctx, UserListQuery{RoleID: editor.ID, Status: intPtr(models.StatusDisabled)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUserService_GetPageList_UserNameWildcardsAreLiteral(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	testutils.CreateTestUser(env.db, testutils.WithUserName("alice"))
	testutils.CreateTestUser(env.db, testutils.WithUserName("bob"))
	testutils.CreateTestUser(env.db, testutils.WithUserName("ops_admin"))

	list, count, err := env.users.GetPageList(ctx, UserListQuery{UserName: "_"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	require.Len(t, list, 1)
	assert.Equal(t, "ops_admin", list[0].UserName)

	_, count, err = env.users.GetPageList(ctx, UserListQuery{UserName: "%"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestUserService_Count(t *testing.T) {
	env := newTestEnv(t)
	testutils.CreateTestUser(env.db)
	testutils.CreateTestUser(env.db)

	count, err := env.users.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestUserService_Save_CreateThenDetail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	role := testutils.CreateTestRole(env.db)

	created, err := env.users.Save(ctx, SaveUserRequest{
		UserName: "carol",
		Email:    "carol@example.com",
		Status:   models.StatusEnabled,
		Roles:    []int64{role.ID},
	})
	require.NoError(t, err)
	assert.True(t, created)

	var stored models.User
	require.NoError(t, env.db.Where("user_name = ?", "carol").First(&stored).Error)

	detail, err := env.users.GetDetail(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, detail.IsAgree)
	assert.Equal(t, []int64{role.ID}, []int64(detail.Roles))
	assert.True(t, detail.CheckPassword(env.cfg.DefaultPassword))

	data, err := json.Marshal(detail)
	require.NoError(t, err)
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &m))
	assert.NotContains(t, m, "password")
	assert.NotContains(t, m, "pk")
}

func TestUserService_Save_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	role := testutils.CreateTestRole(env.db)

	_, err := env.users.Save(ctx, SaveUserRequest{Roles: []int64{role.ID}})
	assert.True(t, errors.Is(err, errors.KindValidation))
	assert.Equal(t, "用户名不能为空", err.Error())

	_, err = env.users.Save(ctx, SaveUserRequest{UserName: "dave"})
	assert.True(t, errors.Is(err, errors.KindValidation))
	assert.Equal(t, "所属角色不能为空", err.Error())

	_, err = env.users.Save(ctx, SaveUserRequest{UserName: "dave", Roles: []int64{role.ID, 987654}})
	assert.True(t, errors.Is(err, errors.KindValidation))
}

func TestUserService_Save_CreateConflict(t *testing.T) {
	env := newTestEnv(t)
	role := testutils.CreateTestRole(env.db)
	testutils.CreateTestUser(env.db, testutils.WithUserName("erin"))

	_, err := env.users.Save(context.Background(), SaveUserRequest{UserName: "erin", Roles: []int64{role.ID}})
	assert.True(t, errors.Is(err, errors.KindConflict))
}

func TestUserService_Save_Update(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	r1 := testutils.CreateTestRole(env.db)
	r2 := testutils.CreateTestRole(env.db)
	other := testutils.CreateTestUser(env.db, testutils.WithUserName("taken"))
	u := testutils.CreateTestUser(env.db, testutils.WithRoles(r1.ID), testutils.WithFailTime(3))

	// 编辑不检查用户名重复
	created, err := env.users.Save(ctx, SaveUserRequest{
		ID:       u.ID,
		UserName: other.UserName,
		Email:    "new@example.com",
		Status:   models.StatusDisabled,
		Roles:    []int64{r2.ID, r1.ID},
	})
	require.NoError(t, err)
	assert.False(t, created)

	got := reloadUser(t, env, u.ID)
	assert.Equal(t, "taken", got.UserName)
	assert.Equal(t, "new@example.com", got.Email)
	assert.Equal(t, models.StatusDisabled, got.Status)
	assert.Equal(t, []int64{r2.ID, r1.ID}, []int64(got.Roles))
	assert.Equal(t, 0, got.FailTime)
}

func TestUserService_Save_UpdateMissing(t *testing.T) {
	env := newTestEnv(t)
	role := testutils.CreateTestRole(env.db)

	_, err := env.users.Save(context.Background(), SaveUserRequest{ID: 777777, UserName: "x", Roles: []int64{role.ID}})
	assert.True(t, errors.Is(err, errors.KindNotFound))
}

func TestUserService_ChangeStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := testutils.CreateTestUser(env.db, testutils.WithFailTime(4))

	status, err := env.users.ChangeStatus(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDisabled, status)
	got := reloadUser(t, env, u.ID)
	assert.Equal(t, models.StatusDisabled, got.Status)
	assert.Equal(t, 0, got.FailTime)

	require.NoError(t, env.db.Model(&models.User{}).Where("id = ?", u.ID).Update("fail_time", 5).Error)

	status, err = env.users.ChangeStatus(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusEnabled, status)
	got = reloadUser(t, env, u.ID)
	assert.Equal(t, models.StatusEnabled, got.Status)
	assert.Equal(t, 0, got.FailTime)

	_, err = env.users.ChangeStatus(ctx, 0)
	assert.True(t, errors.Is(err, errors.KindValidation))
	_, err = env.users.ChangeStatus(ctx, 888888)
	assert.True(t, errors.Is(err, errors.KindNotFound))
}

func TestUserService_Save_RejectsUnknownStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	role := testutils.CreateTestRole(env.db)

	_, err := env.users.Save(ctx, SaveUserRequest{UserName: "bob", Status: 2, Roles: []int64{role.ID}})
	assert.True(t, errors.Is(err, errors.KindValidation))
	assert.Equal(t, "用户状态只能是0或1", err.Error())

	count, err := env.users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

// 库中遗留的非0状态按启用处理，切换后变为禁用
func TestUserService_ChangeStatus_NonZeroStatusIsEnabled(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := testutils.CreateTestUser(env.db, testutils.WithUserName("legacy"), testutils.WithStatus(2))

	result, err := env.auth.Login(ctx, LoginRequest{UserName: "legacy", Password: testutils.DefaultPassword})
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)

	status, err := env.users.ChangeStatus(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDisabled, status)

	_, err = env.auth.Login(ctx, LoginRequest{UserName: "legacy", Password: testutils.DefaultPassword})
	assert.True(t, errors.Is(err, errors.KindDisabled))
}

func TestUserService_ResetPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := testutils.CreateTestUser(env.db, testutils.WithPassword("old"), testutils.WithFailTime(2))

	require.NoError(t, env.users.ResetPassword(ctx, u.ID))

	got := reloadUser(t, env, u.ID)
	assert.True(t, got.CheckPassword(env.cfg.DefaultPassword))
	assert.False(t, got.CheckPassword("old"))
	assert.Equal(t, 0, got.FailTime)

	assert.True(t, errors.Is(env.users.ResetPassword(ctx, 0), errors.KindValidation))
	assert.True(t, errors.Is(env.users.ResetPassword(ctx, 888888), errors.KindNotFound))
}

func TestUserService_Delete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := testutils.CreateTestUser(env.db)

	require.NoError(t, env.users.Delete(ctx, u.ID))

	var count int64
	require.NoError(t, env.db.Model(&models.User{}).Where("id = ?", u.ID).Count(&count).Error)
	assert.Zero(t, count)

	assert.True(t, errors.Is(env.users.Delete(ctx, u.ID), errors.KindNotFound))
	assert.True(t, errors.Is(env.users.Delete(ctx, 0), errors.KindValidation))
}

func TestUserService_GetDetail_Errors(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.users.GetDetail(context.Background(), 0)
	assert.True(t, errors.Is(err, errors.KindValidation))

	_, err = env.users.GetDetail(context.Background(), 999)
	assert.True(t, errors.Is(err, errors.KindNotFound))
}
