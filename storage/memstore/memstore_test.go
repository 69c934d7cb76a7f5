package memstore_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shiftwatch/sessionguard/storage/memstore"
)

func TestGetSetDelete(t *testing.T) {
	s := memstore.New()

	_, ok := s.Get("k")
	require.False(t, ok)

	s.Set("k", "v1")
	v, ok := s.Get("k")
	require.True(t, ok)
	require.Equal(t, "v1", v)

	s.Set("k", "v2")
	v, _ = s.Get("k")
	require.Equal(t, "v2", v)

	s.Delete("k")
	_, ok = s.Get("k")
	require.False(t, ok)
	s.Delete("k")
}

func TestCounterFloor(t *testing.T) {
	s := memstore.New()

	require.EqualValues(t, 0, s.Decr("n"))
	require.EqualValues(t, 1, s.Incr("n"))
	require.EqualValues(t, 0, s.Decr("n"))
	require.EqualValues(t, 0, s.Decr("n"))
}

func TestCookieJar(t *testing.T) {
	j := memstore.NewCookieJar()

	_, ok := j.Get("role")
	require.False(t, ok)

	j.Set("role", "observer")
	v, ok := j.Get("role")
	require.True(t, ok)
	require.Equal(t, "observer", v)

	j.Expire("role")
	_, ok = j.Get("role")
	require.False(t, ok)
	j.Expire("role")
}
