package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisStore "github.com/pulmotools/ildflow/pkg/adapters/redis"
	"github.com/pulmotools/ildflow/pkg/domain"
	"github.com/pulmotools/ildflow/pkg/ports"
)

var _ ports.StateStore = (*redisStore.Store)(nil)

func newTestStore(t *testing.T, opts ...redisStore.Option) (*redisStore.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return redisStore.NewFromClient(client, opts...), mr
}

func TestStore_Contract(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	t.Run("LoadMissing", func(t *testing.T) {
		_, err := store.Load(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("SaveAndLoad", func(t *testing.T) {
		state := domain.NewState("environmental")
		state.History = append(state.History, "initial")
		state.Answers["environmental"] = "no"

		require.NoError(t, store.Save(ctx, "s1", state))

		loaded, err := store.Load(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, "environmental", loaded.CurrentStep)
		assert.Equal(t, []string{"initial"}, loaded.History)
		assert.Equal(t, "no", loaded.Answers["environmental"])
	})

	t.Run("List", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "s2", domain.NewState("start")))

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"s1", "s2"}, ids)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "s1"))
		_, err := store.Load(ctx, "s1")
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"s2"}, ids)
	})
}

func TestStore_TTL(t *testing.T) {
	store, mr := newTestStore(t, redisStore.WithTTL(time.Hour))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "expiring", domain.NewState("start")))

	// The session key expires and the index prunes it from List.
	mr.FastForward(2 * time.Hour)

	_, err := store.Load(ctx, "expiring")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestStore_CustomPrefix(t *testing.T) {
	store, mr := newTestStore(t, redisStore.WithPrefix("custom:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s1", domain.NewState("start")))
	assert.True(t, mr.Exists("custom:s1"))
}

func TestLocker_MutualExclusion(t *testing.T) {
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	locker := redisStore.NewLocker(client, "test:")
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "session-1", time.Minute)
	require.NoError(t, err)

	// A second acquisition attempt blocks until the context expires.
	blockedCtx, cancel := context.WithTimeout(ctx, 150*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(blockedCtx, "session-1", time.Minute)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, unlock(ctx))

	// After release the lock is free again.
	unlock2, err := locker.Lock(ctx, "session-1", time.Minute)
	require.NoError(t, err)
	require.NoError(t, unlock2(ctx))
}

func TestLocker_UnlockOnlyReleasesOwnToken(t *testing.T) {
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	locker := redisStore.NewLocker(client, "test:")
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "session-1", 100*time.Millisecond)
	require.NoError(t, err)

	// Simulate the TTL handing the lock to another holder.
	mr.FastForward(time.Second)
	unlock2, err := locker.Lock(ctx, "session-1", time.Minute)
	require.NoError(t, err)

	// The stale unlock must not release the new holder's lock.
	require.NoError(t, unlock(ctx))
	assert.True(t, mr.Exists("test:lock:session-1"))

	require.NoError(t, unlock2(ctx))
	assert.False(t, mr.Exists("test:lock:session-1"))
}
