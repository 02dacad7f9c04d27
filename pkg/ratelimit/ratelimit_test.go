package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestLocalLimiterAllowsOncePerWindow(t *testing.T) {
	ctx := context.Background()
	l := New(nil, time.Hour)
	user := uuid.New()

	ok, err := l.Allow(ctx, user, "gift")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = l.Allow(ctx, user, "gift")
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = l.Allow(ctx, uuid.New(), "gift")
	require.NoError(t, err)
	require.True(t, ok, "other users are not affected")

	require.NoError(t, l.Clear(ctx, user, "gift"))
	ok, err = l.Allow(ctx, user, "gift")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestZeroWindowDisablesLimit(t *testing.T) {
	l := New(nil, 0)
	for i := 0; i < 3; i++ {
		ok, err := l.Allow(context.Background(), uuid.New(), "gift")
		require.NoError(t, err)
		require.True(t, ok)
	}
}
