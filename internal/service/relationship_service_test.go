package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/commentlog/internal/address"
	"github.com/d60-Lab/commentlog/internal/service"
)

func TestFollowUnfollow(t *testing.T) {
	eachBackend(t, func(t *testing.T, f *fixture) {
		ctx := context.Background()

		assert.ErrorIs(t, f.rels.Follow(ctx, alice, alice), service.ErrFollowSelf)
		require.NoError(t, f.rels.Follow(ctx, alice, bob))
		assert.ErrorIs(t, f.rels.Follow(ctx, alice, bob), service.ErrAlreadyFollowing)
		require.NoError(t, f.rels.Follow(ctx, carol, bob))

		ok, err := f.rels.IsFollowing(ctx, alice, bob)
		require.NoError(t, err)
		assert.True(t, ok)

		fans, err := f.rels.ListFans(ctx, bob, 1, 10)
		require.NoError(t, err)
		assert.ElementsMatch(t, []address.Address{alice, carol}, fans)

		following, err := f.rels.ListFollowing(ctx, alice, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, []address.Address{bob}, following)

		require.NoError(t, f.rels.Unfollow(ctx, alice, bob))
		assert.ErrorIs(t, f.rels.Unfollow(ctx, alice, bob), service.ErrNotFollowing)

		ok, err = f.rels.IsFollowing(ctx, alice, bob)
		require.NoError(t, err)
		assert.False(t, ok)

		// 取关后可以再次关注
		require.NoError(t, f.rels.Follow(ctx, alice, bob))
	})
}
