package services

import (
	"testing"
	"time"

	"adminhub/internal/testutils"
	"adminhub/pkg/config"
	"adminhub/pkg/jwt"

	"gorm.io/gorm"
)

type testEnv struct {
	db          *gorm.DB
	cfg         config.AuthConfig
	jwt         *jwt.JWTManager
	ids         *IDGenerator
	auth        *AuthService
	users       *UserService
	permissions *PermissionService
	roles       *RoleService
	menus       *MenuService
	banners     *BannerService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutils.SetupTestDB(t)
	cfg := config.Default().Auth
	jwtManager := jwt.NewJWTManager("test-secret", time.Hour)
	ids := NewIDGenerator(db)

	return &testEnv{
		db:          db,
		cfg:         cfg,
		jwt:         jwtManager,
		ids:         ids,
		auth:        NewAuthService(db, cfg, jwtManager, ids),
		users:       NewUserService(db, cfg, ids),
		permissions: NewPermissionService(db),
		roles:       NewRoleService(db, ids),
		menus:       NewMenuService(db),
		banners:     NewBannerService(db, ids),
	}
}
