package session

import (
	"errors"
	"net/http"
	"time"

	"adminhub/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// contextKey gin 上下文中保存当前会话的键
const contextKey = "session"

// Manager 通过 cookie 维护服务端会话，会话只做簿记，不参与鉴权
type Manager struct {
	store  Store
	name   string
	maxAge int
	secure bool
	now    func() time.Time
}

func NewManager(store Store, cfg config.SessionConfig) *Manager {
	return &Manager{
		store:  store,
		name:   cfg.Name,
		maxAge: cfg.MaxAge,
		secure: cfg.Secure,
		now:    time.Now,
	}
}

func (m *Manager) ttl() time.Duration {
	return time.Duration(m.maxAge) * time.Second
}

func (m *Manager) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.name, value, maxAge, "/", "", m.secure, true)
}

// Touch 读取请求携带的会话并刷新过期时间，没有会话时不创建
func (m *Manager) Touch(c *gin.Context) error {
	id, err := c.Cookie(m.name)
	if err != nil || id == "" {
		return nil
	}

	ctx := c.Request.Context()
	sess, err := m.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}

	sess.LastSeen = m.now()
	if err := m.store.Save(ctx, sess, m.ttl()); err != nil {
		return err
	}
	m.setCookie(c, sess.ID, m.maxAge)
	c.Set(contextKey, sess)
	return nil
}

// Bind 为登录用户签发新的会话，旧会话作废
func (m *Manager) Bind(c *gin.Context, userID int64) (*Session, error) {
	ctx := c.Request.Context()
	if old, ok := Current(c); ok {
		_ = m.store.Delete(ctx, old.ID)
	}

	now := m.now()
	sess := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		LastSeen:  now,
	}
	if err := m.store.Save(ctx, sess, m.ttl()); err != nil {
		return nil, err
	}

	m.setCookie(c, sess.ID, m.maxAge)
	c.Set(contextKey, sess)
	return sess, nil
}

// Destroy 删除当前会话并清除 cookie
func (m *Manager) Destroy(c *gin.Context) error {
	m.setCookie(c, "", -1)

	id, err := c.Cookie(m.name)
	if err != nil || id == "" {
		return nil
	}
	return m.store.Delete(c.Request.Context(), id)
}

// Current 返回请求关联的会话
func Current(c *gin.Context) (*Session, bool) {
	v, ok := c.Get(contextKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*Session)
	return sess, ok
}
