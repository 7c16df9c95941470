package redis_test

import (
	"context"
	"testing"
	"time"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/session/redis"
	"go-chi-calculator/internal/session/sessiontest"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, opts ...redis.Option) (*redis.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	store := redis.NewFromClient(client, opts...)
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func TestRedisStore_Contract(t *testing.T) {
	store, _ := newStore(t)
	sessiontest.RunStoreContract(t, store)
}

func TestRedisStore_Prefix(t *testing.T) {
	store, mr := newStore(t, redis.WithPrefix("test:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "abc", calculator.State{}))
	assert.True(t, mr.Exists("test:abc"))
	assert.True(t, mr.Exists("test.index"))
}

func TestRedisStore_SessionNamedIndex(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "index", calculator.State{Overwrite: true}))
	require.NoError(t, store.Save(ctx, "other", calculator.State{}))

	got, err := store.Load(ctx, "index")
	require.NoError(t, err)
	assert.True(t, got.Overwrite)

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"index", "other"}, ids)
}

func TestRedisStore_TTL(t *testing.T) {
	store, mr := newStore(t, redis.WithTTL(time.Minute))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "short", calculator.State{}))
	assert.Equal(t, time.Minute, mr.TTL("calculator:session:short"))

	mr.FastForward(2 * time.Minute)

	_, err := store.Load(ctx, "short")
	assert.Error(t, err)
}

func TestRedisStore_Ping(t *testing.T) {
	store, _ := newStore(t)
	assert.NoError(t, store.Ping(context.Background()))
}
