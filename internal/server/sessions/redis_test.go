package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/LeadConsult/alx-files-manager/internal/common"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, ttl), mr
}

func TestIssueThenResolve(t *testing.T) {
	store, _ := newTestStore(t, 24*time.Hour)
	ctx := context.Background()

	token, err := store.Issue(ctx, "u1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := store.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
}

func TestIssue_TokensAreUnique(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	a, err := store.Issue(ctx, "u1")
	require.NoError(t, err)
	b, err := store.Issue(ctx, "u1")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)

	// Both tokens stay live independently.
	got, err := store.Resolve(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, "u1", got)
}

func TestResolve_UnknownToken(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)

	_, err := store.Resolve(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestResolve_ExpiredToken(t *testing.T) {
	store, mr := newTestStore(t, time.Minute)
	ctx := context.Background()

	token, err := store.Issue(ctx, "u1")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = store.Resolve(ctx, token)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestRevoke_SecondCallReturnsFalse(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	token, err := store.Issue(ctx, "u1")
	require.NoError(t, err)

	ok, err := store.Revoke(ctx, token)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = store.Resolve(ctx, token)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	ok, err = store.Revoke(ctx, token)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIssue_CacheDownIsTransient(t *testing.T) {
	store, mr := newTestStore(t, time.Hour)
	mr.Close()

	_, err := store.Issue(context.Background(), "u1")
	assert.ErrorIs(t, err, common.ErrorTransientStorage)
}
