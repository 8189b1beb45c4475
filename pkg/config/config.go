package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	JWT       JWTConfig       `koanf:"jwt"`
	Auth      AuthConfig      `koanf:"auth"`
	Session   SessionConfig   `koanf:"session"`
	Log       LogConfig       `koanf:"log"`
	Redis     RedisConfig     `koanf:"redis"`
	CORS      CORSConfig      `koanf:"cors"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
}

type ServerConfig struct {
	Port string `koanf:"port"`
	Mode string `koanf:"mode"`
}

type DatabaseConfig struct {
	Host     string `koanf:"host"`
	Port     string `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	DBName   string `koanf:"dbname"`
	SSLMode  string `koanf:"sslmode"`
	LogLevel string `koanf:"log_level"` // silent, error, warn, info
}

type JWTConfig struct {
	SecretKey     string `koanf:"secret_key"`     // JWT密钥
	TokenDuration string `koanf:"token_duration"` // 令牌有效期，如 "24h"
}

// AuthConfig 账号相关的业务配置
type AuthConfig struct {
	DefaultPassword  string   `koanf:"default_password"`  // 管理员新增/重置密码时使用的默认密码
	DefaultRoleID    int64    `koanf:"default_role_id"`   // 自助注册用户的默认角色
	LockoutThreshold int      `koanf:"lockout_threshold"` // 失败次数超过该值后禁用账号
	AllowList        []string `koanf:"allow_list"`        // 无需token即可访问的路径
}

type SessionConfig struct {
	Name   string `koanf:"name"`    // cookie 名称
	MaxAge int    `koanf:"max_age"` // 秒
	Secure bool   `koanf:"secure"`
	Prefix string `koanf:"prefix"` // Redis key 前缀
	// 内存存储清理过期会话的 cron 表达式，仅在 Redis 不可用时生效
	SweepSpec string `koanf:"sweep_spec"`
}

type LogConfig struct {
	Service    string `koanf:"service"` // 每条日志附带的服务名
	Level      string `koanf:"level"`
	FilePath   string `koanf:"file_path"`
	MaxSize    int    `koanf:"max_size"`    // MB
	MaxBackups int    `koanf:"max_backups"` // 保留的备份文件数
	MaxAge     int    `koanf:"max_age"`     // 保留天数
	Compress   bool   `koanf:"compress"`    // 是否压缩
	Format     string `koanf:"format"`      // json 或 text
}

type RedisConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

type CORSConfig struct {
	AllowOrigins     []string `koanf:"allow_origins"`
	AllowMethods     []string `koanf:"allow_methods"`
	AllowHeaders     []string `koanf:"allow_headers"`
	ExposeHeaders    []string `koanf:"expose_headers"`
	AllowCredentials bool     `koanf:"allow_credentials"`
	MaxAge           int      `koanf:"max_age"` // 预检请求缓存时间（小时）
}

// RateLimitConfig 登录/注册接口的限流配置
type RateLimitConfig struct {
	Requests int `koanf:"requests"`   // 窗口内允许的请求数
	Window   int `koanf:"window_sec"` // 窗口长度（秒）
	Burst    int `koanf:"burst"`
}

// Duration 解析令牌有效期，非法值回退为24小时
func (c JWTConfig) Duration() time.Duration {
	d, err := time.ParseDuration(c.TokenDuration)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

// IsAllowed 判断路径是否在免token白名单中
func (c AuthConfig) IsAllowed(path string) bool {
	for _, p := range c.AllowList {
		if p == path {
			return true
		}
	}
	return false
}

// 获取环境变量，如果不存在则使用默认值
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// 获取环境变量转换为int
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// 获取环境变量转换为bool
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true"
	}
	return defaultValue
}

// 获取环境变量转换为字符串数组（逗号分隔）
func getEnvAsStringArray(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		result := make([]string, 0, len(parts))
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return defaultValue
}

// Default 返回内置默认配置
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8080",
			Mode: "debug",
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "postgres",
			DBName:   "adminhub",
			SSLMode:  "disable",
			LogLevel: "warn",
		},
		JWT: JWTConfig{
			SecretKey:     "default-secret-change-me",
			TokenDuration: "24h",
		},
		Auth: AuthConfig{
			DefaultPassword:  "123456",
			DefaultRoleID:    2,
			LockoutThreshold: 3,
			AllowList:        []string{"/user/login", "/user/register", "/banner/publish_list", "/health"},
		},
		Session: SessionConfig{
			Name:   "adminhub.sid",
			MaxAge: 86400,
			Prefix:    "adminhub:session",
			SweepSpec: "@every 1m",
		},
		Log: LogConfig{
			Service:    "adminhub",
			Level:      "info",
			FilePath:   "logs/app.log",
			MaxSize:    100,
			MaxBackups: 7,
			MaxAge:     30,
			Compress:   true,
			Format:     "json",
		},
		Redis: RedisConfig{
			Host: "localhost",
			Port: 6379,
		},
		CORS: CORSConfig{
			AllowOrigins:     []string{"*"},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
			ExposeHeaders:    []string{"Content-Length", "Content-Type", "X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           12,
		},
		RateLimit: RateLimitConfig{
			Requests: 10,
			Window:   60,
			Burst:    10,
		},
	}
}

// LoadConfig 加载配置：默认值 -> YAML配置文件（可选）-> 环境变量
func LoadConfig() (*Config, error) {
	// .env 不存在时忽略
	_ = godotenv.Load()

	cfg := Default()

	path := getEnv("CONFIG_FILE", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

// loadFile 使用 koanf 读取 YAML 配置并覆盖到 cfg 上，文件中未出现的键保持原值
func loadFile(path string, cfg *Config) error {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("加载配置文件失败: %w", err)
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return fmt.Errorf("解析配置失败: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Server.Port = getEnv("SERVER_PORT", cfg.Server.Port)
	cfg.Server.Mode = getEnv("SERVER_MODE", cfg.Server.Mode)

	cfg.Database.Host = getEnv("DB_HOST", cfg.Database.Host)
	cfg.Database.Port = getEnv("DB_PORT", cfg.Database.Port)
	cfg.Database.User = getEnv("DB_USER", cfg.Database.User)
	cfg.Database.Password = getEnv("DB_PASSWORD", cfg.Database.Password)
	cfg.Database.DBName = getEnv("DB_NAME", cfg.Database.DBName)
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", cfg.Database.SSLMode)
	cfg.Database.LogLevel = getEnv("DB_LOG_LEVEL", cfg.Database.LogLevel)

	cfg.JWT.SecretKey = getEnv("JWT_SECRET_KEY", cfg.JWT.SecretKey)
	cfg.JWT.TokenDuration = getEnv("JWT_TOKEN_DURATION", cfg.JWT.TokenDuration)

	cfg.Auth.DefaultPassword = getEnv("AUTH_DEFAULT_PASSWORD", cfg.Auth.DefaultPassword)
	cfg.Auth.DefaultRoleID = getEnvAsInt64("AUTH_DEFAULT_ROLE_ID", cfg.Auth.DefaultRoleID)
	cfg.Auth.LockoutThreshold = getEnvAsInt("AUTH_LOCKOUT_THRESHOLD", cfg.Auth.LockoutThreshold)
	cfg.Auth.AllowList = getEnvAsStringArray("AUTH_ALLOW_LIST", cfg.Auth.AllowList)

	cfg.Session.Name = getEnv("SESSION_NAME", cfg.Session.Name)
	cfg.Session.MaxAge = getEnvAsInt("SESSION_MAX_AGE", cfg.Session.MaxAge)
	cfg.Session.Secure = getEnvAsBool("SESSION_SECURE", cfg.Session.Secure)
	cfg.Session.Prefix = getEnv("SESSION_PREFIX", cfg.Session.Prefix)
	cfg.Session.SweepSpec = getEnv("SESSION_SWEEP_SPEC", cfg.Session.SweepSpec)

	cfg.Log.Service = getEnv("LOG_SERVICE", cfg.Log.Service)
	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.FilePath = getEnv("LOG_FILE_PATH", cfg.Log.FilePath)
	cfg.Log.MaxSize = getEnvAsInt("LOG_MAX_SIZE", cfg.Log.MaxSize)
	cfg.Log.MaxBackups = getEnvAsInt("LOG_MAX_BACKUPS", cfg.Log.MaxBackups)
	cfg.Log.MaxAge = getEnvAsInt("LOG_MAX_AGE", cfg.Log.MaxAge)
	cfg.Log.Compress = getEnvAsBool("LOG_COMPRESS", cfg.Log.Compress)
	cfg.Log.Format = getEnv("LOG_FORMAT", cfg.Log.Format)

	cfg.Redis.Host = getEnv("REDIS_HOST", cfg.Redis.Host)
	cfg.Redis.Port = getEnvAsInt("REDIS_PORT", cfg.Redis.Port)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getEnvAsInt("REDIS_DB", cfg.Redis.DB)

	cfg.CORS.AllowOrigins = getEnvAsStringArray("CORS_ALLOW_ORIGINS", cfg.CORS.AllowOrigins)
	cfg.CORS.AllowMethods = getEnvAsStringArray("CORS_ALLOW_METHODS", cfg.CORS.AllowMethods)
	cfg.CORS.AllowHeaders = getEnvAsStringArray("CORS_ALLOW_HEADERS", cfg.CORS.AllowHeaders)
	cfg.CORS.ExposeHeaders = getEnvAsStringArray("CORS_EXPOSE_HEADERS", cfg.CORS.ExposeHeaders)
	cfg.CORS.AllowCredentials = getEnvAsBool("CORS_ALLOW_CREDENTIALS", cfg.CORS.AllowCredentials)
	cfg.CORS.MaxAge = getEnvAsInt("CORS_MAX_AGE", cfg.CORS.MaxAge)

	cfg.RateLimit.Requests = getEnvAsInt("RATELIMIT_AUTH_REQUESTS", cfg.RateLimit.Requests)
	cfg.RateLimit.Window = getEnvAsInt("RATELIMIT_AUTH_WINDOW_SEC", cfg.RateLimit.Window)
	cfg.RateLimit.Burst = getEnvAsInt("RATELIMIT_AUTH_BURST", cfg.RateLimit.Burst)
}
