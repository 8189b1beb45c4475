package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound 会话不存在或已过期
var ErrNotFound = errors.New("session not found")

// Session 服务端会话记录，仅用于会话簿记，不参与鉴权
type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	LastSeen  time.Time `json:"lastSeen"`
}

// Store 会话存储
type Store interface {
	// Save 写入会话并刷新过期时间
	Save(ctx context.Context, s *Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}
