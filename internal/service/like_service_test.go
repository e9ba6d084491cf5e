package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/commentlog/internal/address"
	"github.com/d60-Lab/commentlog/internal/model"
	"github.com/d60-Lab/commentlog/internal/service"
	"github.com/d60-Lab/commentlog/internal/store"
)

func TestLikePostOnce(t *testing.T) {
	eachBackend(t, func(t *testing.T, f *fixture) {
		ctx := context.Background()
		post := f.newPost(t, alice)

		require.NoError(t, f.likes.LikePost(ctx, bob, post))
		assert.ErrorIs(t, f.likes.LikePost(ctx, bob, post), service.ErrAlreadyLiked)
		require.NoError(t, f.likes.LikePost(ctx, carol, post))

		prof, err := f.profiles.GetProfile(ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, uint64(2), prof.ReceivedLikeCount)

		liked, err := f.likes.HasLikedPost(ctx, bob, post)
		require.NoError(t, err)
		assert.True(t, liked)
		liked, err = f.likes.HasLikedPost(ctx, alice, post)
		require.NoError(t, err)
		assert.False(t, liked)

		missing := address.Derive(address.NamespacePost, []byte("missing"))
		assert.ErrorIs(t, f.likes.LikePost(ctx, bob, missing), service.ErrPostNotFound)
	})
}

func TestLikeCommentTwice(t *testing.T) {
	eachBackend(t, func(t *testing.T, f *fixture) {
		ctx := context.Background()
		post := f.newPost(t, alice)
		f.addComments(t, post, 8)
		page0 := address.CommentPageAddress(post, 0)

		require.NoError(t, f.likes.LikeComment(ctx, carol, post, page0, 5))
		assert.ErrorIs(t, f.likes.LikeComment(ctx, carol, post, page0, 5), service.ErrAlreadyLiked)

		pg, err := f.posts.GetPage(ctx, post, 0)
		require.NoError(t, err)
		assert.Equal(t, uint32(1), pg.Comments[5].LikeCount)
		assert.Equal(t, uint32(0), pg.Comments[4].LikeCount)

		liked, err := f.likes.HasLikedComment(ctx, carol, post, 5)
		require.NoError(t, err)
		assert.True(t, liked)
		liked, err = f.likes.HasLikedComment(ctx, carol, post, 4)
		require.NoError(t, err)
		assert.False(t, liked)

		require.NoError(t, f.likes.LikeComment(ctx, bob, post, page0, 5))
		pg, err = f.posts.GetPage(ctx, post, 0)
		require.NoError(t, err)
		assert.Equal(t, uint32(2), pg.Comments[5].LikeCount)
	})
}

func TestLikeCommentPreconditions(t *testing.T) {
	eachBackend(t, func(t *testing.T, f *fixture) {
		ctx := context.Background()
		post := f.newPost(t, alice)
		other := f.newPost(t, bob)
		f.addComments(t, post, 3)
		page0 := address.CommentPageAddress(post, 0)

		for _, idx := range []uint64{model.LikeTrackerCapacity, model.LikeTrackerCapacity + 7, model.NoParent} {
			err := f.likes.LikeComment(ctx, carol, post, address.CommentPageAddress(post, model.PageIndex(idx)), idx)
			assert.ErrorIs(t, err, service.ErrIndexOutOfBounds)
		}
		liked, err := f.likes.HasLikedComment(ctx, carol, post, model.LikeTrackerCapacity)
		require.NoError(t, err)
		assert.False(t, liked)

		assert.ErrorIs(t, f.likes.LikeComment(ctx, carol, post, page0, 12), service.ErrPageMismatch)
		assert.ErrorIs(t, f.likes.LikeComment(ctx, carol, post, address.CommentPageAddress(post, 1), 12), service.ErrPageNotFound)
		assert.ErrorIs(t, f.likes.LikeComment(ctx, carol, post, page0, 7), service.ErrCommentNotFound)
		assert.ErrorIs(t, f.likes.LikeComment(ctx, carol, other, address.CommentPageAddress(other, 0), 0), service.ErrCommentNotFound)
	})
}

func TestLikeCommentFullTrackerCapacity(t *testing.T) {
	if testing.Short() {
		t.Skip("fills 103 pages")
	}
	eachBackend(t, func(t *testing.T, f *fixture) {
		ctx := context.Background()
		post := f.newPost(t, alice)
		f.addComments(t, post, model.LikeTrackerCapacity+1)

		last := uint64(model.LikeTrackerCapacity - 1)
		require.NoError(t, f.likes.LikeComment(ctx, carol, post, address.CommentPageAddress(post, model.PageIndex(last)), last))
		over := uint64(model.LikeTrackerCapacity)
		err := f.likes.LikeComment(ctx, carol, post, address.CommentPageAddress(post, model.PageIndex(over)), over)
		assert.ErrorIs(t, err, service.ErrIndexOutOfBounds)
	})
}

func TestConcurrentFirstLikePost(t *testing.T) {
	eachBackend(t, func(t *testing.T, f *fixture) {
		ctx := context.Background()
		post := f.newPost(t, alice)

		// 乐观冲突耗尽重试时由调用方重来
		like := func(user address.Address) error {
			for {
				err := f.likes.LikePost(ctx, user, post)
				if !errors.Is(err, store.ErrConflict) {
					return err
				}
			}
		}

		const n = 12
		var wg sync.WaitGroup
		same := make([]error, n)
		distinct := make([]error, n)
		for i := 0; i < n; i++ {
			wg.Add(2)
			go func(i int) {
				defer wg.Done()
				same[i] = like(bob)
			}(i)
			go func(i int) {
				defer wg.Done()
				fan := address.Derive("test-user", []byte(fmt.Sprintf("fan-%d", i)))
				distinct[i] = like(fan)
			}(i)
		}
		wg.Wait()

		won := 0
		for _, err := range same {
			if err == nil {
				won++
				continue
			}
			assert.ErrorIs(t, err, service.ErrAlreadyLiked)
		}
		assert.Equal(t, 1, won)
		for _, err := range distinct {
			assert.NoError(t, err)
		}

		prof, err := f.profiles.GetProfile(ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, uint64(n+1), prof.ReceivedLikeCount)
	})
}
