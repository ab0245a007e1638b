package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/b5strbal/probability-models/pkg/adapters/redis"
	"github.com/b5strbal/probability-models/pkg/domain"
	"github.com/b5strbal/probability-models/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "Failed to start miniredis")
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := setup(t)

	store := redis.NewFromClient(client)
	ports.RunExperimentRepositoryContract(t, store)
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := setup(t)

	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()

	exp, err := domain.Picking(domain.Labels("HT"), 1, true)
	require.NoError(t, err)

	// 1. Save
	require.NoError(t, store.Save(ctx, "coin", exp))

	// 2. Verify List (immediately)
	names, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Contains(t, names, "coin")

	// 3. Fast Forward time in miniredis (for Key Expiration)
	mr.FastForward(2 * time.Second)

	// 4. Verify Get (should fail)
	_, err = store.Get(ctx, "coin")
	assert.ErrorIs(t, err, domain.ErrExperimentNotFound)

	// 5. Verify List (lazily cleaned up). The index score is wall-clock based.
	time.Sleep(1200 * time.Millisecond)

	names, err = store.List(ctx)
	assert.NoError(t, err)
	assert.Empty(t, names)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := setup(t)

	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	exp, err := domain.Picking(domain.Labels("HT"), 1, true)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, "coin", exp))

	assert.True(t, mr.Exists("custom:app:coin"), "Expected key with custom prefix to exist")
	assert.True(t, mr.Exists("custom:apps:index"), "Expected index beside the custom prefix to exist")

	raw, err := mr.Get("custom:app:coin")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"coin","happenings":[{"name":"H","probability":"1/2"},{"name":"T","probability":"1/2"}]}`, raw)
}

func TestRedisStore_CorruptDefinition(t *testing.T) {
	_, client := setup(t)
	store := redis.NewFromClient(client)
	ctx := context.Background()

	require.NoError(t, store.SaveDefinition(ctx, "broken", []byte(`{"happenings":[{"name":"A","probability":"1/3"}]}`)))

	_, err := store.Get(ctx, "broken")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRedisStore_Describe(t *testing.T) {
	_, client := setup(t)
	store := redis.NewFromClient(client)
	ctx := context.Background()

	require.NoError(t, store.SaveDefinition(ctx, "coin", []byte(`{"description":"One flip","picking":{"choices":"HT","repeats":1,"replacing":true}}`)))

	desc, err := store.Describe(ctx, "coin")
	require.NoError(t, err)
	assert.Equal(t, "One flip", desc)

	_, err = store.Describe(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrExperimentNotFound)
}

func TestRedisStore_IndexNameIsAnOrdinaryExperiment(t *testing.T) {
	mr, client := setup(t)
	store := redis.NewFromClient(client)
	ctx := context.Background()

	exp, err := domain.Picking(domain.Labels("HT"), 1, true)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, "coins", exp))
	require.NoError(t, store.Save(ctx, "index", exp))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"coins", "index"}, names)
	assert.True(t, mr.Exists("probmodels:experiment:index"))
	assert.True(t, mr.Exists("probmodels:experiments:index"))

	_, err = store.Get(ctx, "index")
	assert.NoError(t, err)
}

func TestRedisStore_ReservedNameWithBarePrefix(t *testing.T) {
	_, client := setup(t)
	store := redis.NewFromClient(client, redis.WithPrefix("exp_"))
	ctx := context.Background()

	exp, err := domain.Picking(domain.Labels("HT"), 1, true)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, "coins", exp))

	// "exp_" + "s:index" is where the index lives.
	assert.ErrorIs(t, store.Save(ctx, "s:index", exp), domain.ErrInvalidInput)
	_, err = store.Get(ctx, "s:index")
	assert.ErrorIs(t, err, domain.ErrExperimentNotFound)
	require.NoError(t, store.Delete(ctx, "s:index"))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"coins"}, names)
}
