package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, &Session{ID: "s1", UserID: 7}, time.Minute))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.UserID)

	// 过期后读取不到
	now = now.Add(2 * time.Minute)
	_, err = store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Save(ctx, &Session{ID: "s2"}, time.Minute))
	require.NoError(t, store.Delete(ctx, "s2"))
	_, err = store.Get(ctx, "s2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_SweepDropsUnreadExpiredSessions(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	for i := 0; i < 1000; i++ {
		require.NoError(t, store.Save(ctx, &Session{ID: fmt.Sprintf("old-%d", i)}, time.Millisecond))
	}
	now = now.Add(10 * time.Millisecond)
	require.NoError(t, store.Save(ctx, &Session{ID: "fresh"}, time.Minute))
	assert.Equal(t, 1001, store.Len())

	assert.Equal(t, 1000, store.Sweep())
	assert.Equal(t, 1, store.Len())

	_, err := store.Get(ctx, "fresh")
	assert.NoError(t, err)
	assert.Equal(t, 0, store.Sweep())
}

func TestMemoryStore_StartSweeper(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.StartSweeper("not a schedule", nil)
	assert.Error(t, err)

	c, err := store.StartSweeper("@every 1m", nil)
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)
	<-c.Stop().Done()
}

func TestRedisStore_Key(t *testing.T) {
	assert.Equal(t, "adminhub:session:abc", NewRedisStore(nil, "").key("abc"))
	assert.Equal(t, "p:abc", NewRedisStore(nil, "p").key("abc"))
}
