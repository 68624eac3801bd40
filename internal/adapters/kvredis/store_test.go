package kvredis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return New(client)
}

func TestStore_GetOnMissingKeyReturnsNilNil(t *testing.T) {
	s := newTestStore(t)

	val, err := s.Get(context.Background(), "absent")

	require.NoError(t, err)
	require.Nil(t, val)
}

func TestStore_SetThenGetRoundTrips(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", []byte("hello"), 0))

	val, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), val)
}

func TestStore_DeleteRemovesKey(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", []byte("v"), 0))
	require.NoError(t, s.Delete(ctx, "k"))

	val, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.Nil(t, val)
}

func TestStore_DeleteOnAbsentKeyIsNotAnError(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Delete(context.Background(), "never-existed"))
}
