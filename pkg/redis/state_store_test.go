package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStateStore_SingleUse(t *testing.T) {
	srv := useMiniredis(t)
	store := NewStateStore(10 * time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "abc", "/projects"))
	require.Equal(t, 10*time.Minute, srv.TTL("oauth_state:abc"))
	require.ErrorIs(t, store.Save(ctx, "abc", "/other"), ErrStateExists)

	redirect, err := store.Consume(ctx, "abc")
	require.NoError(t, err)
	require.Equal(t, "/projects", redirect)

	_, err = store.Consume(ctx, "abc")
	require.ErrorIs(t, err, ErrStateNotFound)
}

func TestStateStore_UnknownAndEmpty(t *testing.T) {
	useMiniredis(t)
	store := NewStateStore(time.Minute)

	_, err := store.Consume(context.Background(), "")
	require.ErrorIs(t, err, ErrStateNotFound)

	_, err = store.Consume(context.Background(), "never-saved")
	require.ErrorIs(t, err, ErrStateNotFound)
}

func TestStateStore_Expired(t *testing.T) {
	srv := useMiniredis(t)
	store := NewStateStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "late", ""))
	srv.FastForward(time.Hour)

	_, err := store.Consume(ctx, "late")
	require.ErrorIs(t, err, ErrStateNotFound)
}
