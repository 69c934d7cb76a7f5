package redisstore_test

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/shiftwatch/sessionguard/storage"
	"github.com/shiftwatch/sessionguard/storage/redisstore"
)

func newStoreTest(t *testing.T) (*redisstore.Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return redisstore.New(client), mr
}

func TestGetSetDelete(t *testing.T) {
	store, _ := newStoreTest(t)

	_, ok := store.Get(storage.KeyAuthToken)
	require.False(t, ok)

	store.Set(storage.KeyAuthToken, "tok-1")
	v, ok := store.Get(storage.KeyAuthToken)
	require.True(t, ok)
	require.Equal(t, "tok-1", v)

	store.Set(storage.KeyAuthToken, "tok-2")
	v, _ = store.Get(storage.KeyAuthToken)
	require.Equal(t, "tok-2", v)

	store.Delete(storage.KeyAuthToken)
	_, ok = store.Get(storage.KeyAuthToken)
	require.False(t, ok)

	// Deleting an absent key stays silent.
	store.Delete(storage.KeyAuthToken)
}

func TestCounterFlooredAtZero(t *testing.T) {
	store, _ := newStoreTest(t)

	require.EqualValues(t, 1, store.Incr(storage.KeyTabCount))
	require.EqualValues(t, 2, store.Incr(storage.KeyTabCount))
	require.EqualValues(t, 1, store.Decr(storage.KeyTabCount))
	require.EqualValues(t, 0, store.Decr(storage.KeyTabCount))

	for i := 0; i < 10; i++ {
		require.EqualValues(t, 0, store.Decr(storage.KeyTabCount))
	}
	require.EqualValues(t, 1, store.Incr(storage.KeyTabCount))
}

func TestSharedAcrossClients(t *testing.T) {
	mr := miniredis.RunT(t)

	clientA := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	clientB := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = clientA.Close()
		_ = clientB.Close()
	})

	tabA := redisstore.New(clientA)
	tabB := redisstore.New(clientB)

	tabA.Set(storage.KeySelectedRole, "observer")
	v, ok := tabB.Get(storage.KeySelectedRole)
	require.True(t, ok)
	require.Equal(t, "observer", v)

	tabA.Incr(storage.KeyTabCount)
	require.EqualValues(t, 2, tabB.Incr(storage.KeyTabCount))
}

func TestUnavailableRedisDegradesToMisses(t *testing.T) {
	store, mr := newStoreTest(t)
	mr.Close()

	store.Set(storage.KeyAuthToken, "tok")
	_, ok := store.Get(storage.KeyAuthToken)
	require.False(t, ok)
	require.EqualValues(t, 0, store.Incr(storage.KeyTabCount))
	require.EqualValues(t, 0, store.Decr(storage.KeyTabCount))
}
