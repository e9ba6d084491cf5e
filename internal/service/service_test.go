package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/commentlog/internal/address"
	"github.com/d60-Lab/commentlog/internal/events"
	"github.com/d60-Lab/commentlog/internal/model"
	"github.com/d60-Lab/commentlog/internal/service"
	"github.com/d60-Lab/commentlog/internal/store"
	"github.com/d60-Lab/commentlog/internal/store/storetest"
)

var (
	alice = address.Derive("test-user", []byte("alice"))
	bob   = address.Derive("test-user", []byte("bob"))
	carol = address.Derive("test-user", []byte("carol"))

	fixedNow = time.Unix(1700000000, 0)
)

type fixture struct {
	st       store.Store
	rec      *events.Recorder
	posts    service.PostService
	likes    service.LikeService
	wallet   *service.Wallet
	tips     service.TipService
	rels     service.RelationshipService
	profiles service.ProfileService
}

func newFixture(st store.Store) *fixture {
	rec := events.NewRecorder()
	opts := []service.Option{service.WithEmitter(rec), service.WithClock(func() time.Time { return fixedNow })}
	wallet := service.NewWallet(st, opts...)
	return &fixture{
		st:       st,
		rec:      rec,
		posts:    service.NewPostService(st, opts...),
		likes:    service.NewLikeService(st, opts...),
		wallet:   wallet,
		tips:     service.NewTipService(st, wallet, opts...),
		rels:     service.NewRelationshipService(st, opts...),
		profiles: service.NewProfileService(st),
	}
}

func eachBackend(t *testing.T, fn func(t *testing.T, f *fixture)) {
	for name, open := range storetest.Backends() {
		t.Run(name, func(t *testing.T) {
			fn(t, newFixture(open(t)))
		})
	}
}

func commentText(i uint64) string { return fmt.Sprintf("comment #%d", i) }

// newPost 创建帖子并分配第 0 页
func (f *fixture) newPost(t *testing.T, author address.Address) address.Address {
	t.Helper()
	ctx := context.Background()
	p, err := f.posts.CreatePost(ctx, author, "topic", "hello")
	require.NoError(t, err)
	_, err = f.posts.InitCommentPage(ctx, author, p.Address())
	require.NoError(t, err)
	return p.Address()
}

// addComments 按需分配新页，追加 n 条评论
func (f *fixture) addComments(t *testing.T, post address.Address, n int) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < n; i++ {
		p, err := f.posts.GetPost(ctx, post)
		require.NoError(t, err)
		if p.AtPageBoundary() && p.CommentCount > 0 {
			_, err = f.posts.InitCommentPage(ctx, bob, post)
			require.NoError(t, err)
		}
		page := address.CommentPageAddress(post, p.NextPageIndex())
		idx, err := f.posts.AddComment(ctx, bob, post, page, commentText(p.CommentCount), model.NoParent)
		require.NoError(t, err)
		require.Equal(t, p.CommentCount, idx)
	}
}
