package services

import (
	"context"
	stderrors "errors"

	"adminhub/internal/models"
	"adminhub/pkg/config"
	"adminhub/pkg/errors"
	"adminhub/pkg/jwt"
	"adminhub/pkg/logger"
	"adminhub/pkg/validate"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// 账号被禁用时的统一提示
const msgAccountDisabled = "您的账号已禁用，请联系管理员"

// LoginRequest 登录参数
type LoginRequest struct {
	UserName string `json:"userName" form:"userName" validate:"required" msg:"用户名不能为空"`
	Password string `json:"password" form:"password" validate:"required" msg:"密码不能为空"`
}

// LoginResult 登录结果
type LoginResult struct {
	AccessToken string `json:"accessToken"`
	UserID      int64  `json:"-"`
}

// RegisterRequest 注册参数
type RegisterRequest struct {
	UserName        string `json:"userName" form:"userName" validate:"required" msg:"用户名不能为空"`
	Password        string `json:"password" form:"password" validate:"required" msg:"密码不能为空"`
	ConfirmPassword string `json:"secondPassword" form:"secondPassword" validate:"required,eqfield=Password" msg:"required=确认密码不能为空,eqfield=两次输入的密码不一致"`
	Email           string `json:"email" form:"email"`
	IsAgree         int    `json:"isAgree" form:"isAgree" validate:"required" msg:"请同意用户注册协议"`
}

// AuthService 登录、注册、退出
type AuthService struct {
	db         *gorm.DB
	cfg        config.AuthConfig
	jwtManager *jwt.JWTManager
	ids        *IDGenerator
}

func NewAuthService(db *gorm.DB, cfg config.AuthConfig, jwtManager *jwt.JWTManager, ids *IDGenerator) *AuthService {
	return &AuthService{
		db:         db,
		cfg:        cfg,
		jwtManager: jwtManager,
		ids:        ids,
	}
}

// Login 校验账号密码并签发 accessToken
//
// 检查顺序：用户存在 -> 账号启用 -> 失败次数未超过阈值 -> 密码。
// 失败次数超过阈值时无论密码是否正确都会禁用账号。
// 登录成功不重置失败次数，只有管理员启用账号或重置密码才会清零。
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)

	var user models.User
	if err := db.Where("user_name = ?", req.UserName).First(&user).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("用户不存在")
		}
		return nil, errors.Unknown("查询用户失败", err)
	}

	if !user.IsEnabled() {
		return nil, errors.Disabled(msgAccountDisabled)
	}

	if user.FailTime > s.cfg.LockoutThreshold {
		if err := db.Model(&models.User{}).Where("id = ?", user.ID).
			Update("status", models.StatusDisabled).Error; err != nil {
			return nil, errors.Unknown("禁用用户失败", err)
		}
		logger.FromContext(ctx).WithFields(logrus.Fields{
			"user_id":   user.ID,
			"fail_time": user.FailTime,
		}).Warn("account disabled after too many failed logins")
		return nil, errors.Disabled(msgAccountDisabled)
	}

	if !user.CheckPassword(req.Password) {
		if err := db.Model(&models.User{}).Where("id = ?", user.ID).
			Update("fail_time", gorm.Expr("fail_time + 1")).Error; err != nil {
			return nil, errors.Unknown("更新登录失败次数失败", err)
		}
		return nil, errors.InvalidCredentials("该用户已存在，密码输入错误")
	}

	token, err := s.jwtManager.GenerateToken(user.ID)
	if err != nil {
		return nil, errors.Unknown("生成token失败", err)
	}

	return &LoginResult{AccessToken: token, UserID: user.ID}, nil
}

// Register 自助注册，新用户默认分配普通用户角色
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.User{}).Where("user_name = ?", req.UserName).Count(&count).Error; err != nil {
		return nil, errors.Unknown("查询用户失败", err)
	}
	if count > 0 {
		return nil, errors.Conflict("该用户已存在")
	}

	id, err := s.ids.Next(ctx, models.CounterUser)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:         id,
		UserName:   req.UserName,
		Email:      req.Email,
		Status:     models.StatusEnabled,
		FailTime:   0,
		Roles:      datatypes.JSONSlice[int64]{s.cfg.DefaultRoleID},
		IsAgree:    req.IsAgree,
		CreateTime: models.NowString(),
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, errors.Unknown("密码加密失败", err)
	}

	if err := db.Create(user).Error; err != nil {
		return nil, errors.Unknown("创建用户失败", err)
	}
	return user, nil
}

// Logout 无状态退出，token 由客户端丢弃
func (s *AuthService) Logout(ctx context.Context) error {
	return nil
}
