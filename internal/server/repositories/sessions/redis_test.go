package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) (*RedisRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisRepository(client), mr
}

func TestCreateAndGet(t *testing.T) {
	repo, mr := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "tok", "u-1", time.Hour))

	got, err := mr.Get("auth_tok")
	require.NoError(t, err)
	assert.Equal(t, "u-1", got)
	assert.Equal(t, time.Hour, mr.TTL("auth_tok"))

	userID, err := repo.GetUserID(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
}

func TestGetUserID_Unknown(t *testing.T) {
	repo, _ := newRepo(t)

	_, err := repo.GetUserID(context.Background(), "nope")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetUserID_Expired(t *testing.T) {
	repo, mr := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "tok", "u-1", time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := repo.GetUserID(ctx, "tok")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetUserID_StoreDown(t *testing.T) {
	repo, mr := newRepo(t)
	mr.Close()

	_, err := repo.GetUserID(context.Background(), "tok")
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
}

func TestDelete(t *testing.T) {
	repo, mr := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "tok", "u-1", time.Hour))
	require.NoError(t, repo.Delete(ctx, "tok"))
	assert.False(t, mr.Exists("auth_tok"))

	// deleting an absent session is not an error
	require.NoError(t, repo.Delete(ctx, "tok"))
}

func TestPing(t *testing.T) {
	repo, mr := newRepo(t)
	require.NoError(t, repo.Ping(context.Background()))

	mr.Close()
	require.Error(t, repo.Ping(context.Background()))
}
