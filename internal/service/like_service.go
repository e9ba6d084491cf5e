package service

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"

	"github.com/d60-Lab/commentlog/internal/address"
	"github.com/d60-Lab/commentlog/internal/events"
	"github.com/d60-Lab/commentlog/internal/model"
	"github.com/d60-Lab/commentlog/internal/repository"
	"github.com/d60-Lab/commentlog/internal/store"
)

// LikeService 帖子点赞去重与评论点赞位图
type LikeService interface {
	LikePost(ctx context.Context, user, post address.Address) error
	LikeComment(ctx context.Context, user, post, page address.Address, globalIndex uint64) error
	HasLikedPost(ctx context.Context, user, post address.Address) (bool, error)
	HasLikedComment(ctx context.Context, user, post address.Address, globalIndex uint64) (bool, error)
}

type likeService struct {
	st   store.Store
	opts options
}

func NewLikeService(st store.Store, opts ...Option) LikeService {
	return &likeService{st: st, opts: buildOptions(opts)}
}

// postAuthor 读取作者，用于声明作者档案地址
func postAuthor(ctx context.Context, st store.Store, postAddr address.Address) (address.Address, error) {
	var author address.Address
	err := st.View(ctx, []address.Address{postAddr}, func(tx store.Tx) error {
		p, err := loadPost(repository.NewRecords(tx), postAddr)
		if err != nil {
			return err
		}
		author = p.Author
		return nil
	})
	return author, err
}

func (s *likeService) LikePost(ctx context.Context, user, postAddr address.Address) (err error) {
	ctx, span := startSpan(ctx, "LikeService.LikePost", attribute.String("post", postAddr.Short()))
	defer func() { finish(span, "like_post", err) }()

	author, err := postAuthor(ctx, s.st, postAddr)
	if err != nil {
		return err
	}

	likeAddr := address.UserLikeAddress(user, postAddr)
	addrs := []address.Address{postAddr, likeAddr, address.ProfileAddress(author)}
	err = s.st.Update(ctx, addrs, func(tx store.Tx) error {
		r := repository.NewRecords(tx)
		if _, err := loadPost(r, postAddr); err != nil {
			return err
		}
		liked, err := r.Exists(likeAddr)
		if err != nil {
			return err
		}
		if liked {
			return ErrAlreadyLiked
		}
		if err := r.CreateUserLike(&model.UserLike{User: user, Post: postAddr, Timestamp: s.opts.unix()}); err != nil {
			return err
		}
		return r.UpdateProfile(author, func(p *model.UserProfile) { p.ReceivedLikeCount++ })
	})
	if err != nil {
		return err
	}
	s.opts.emitter.Emit(events.New(events.PostLiked, user, postAddr))
	return nil
}

func (s *likeService) LikeComment(ctx context.Context, user, postAddr, pageAddr address.Address, globalIndex uint64) (err error) {
	ctx, span := startSpan(ctx, "LikeService.LikeComment",
		attribute.String("post", postAddr.Short()), attribute.Int64("index", int64(globalIndex)))
	defer func() { finish(span, "like_comment", err) }()

	if globalIndex >= model.LikeTrackerCapacity {
		return ErrIndexOutOfBounds
	}
	if pageAddr != address.CommentPageAddress(postAddr, model.PageIndex(globalIndex)) {
		return ErrPageMismatch
	}

	trackerAddr := address.CommentLikesAddress(user, postAddr)
	err = s.st.Update(ctx, []address.Address{pageAddr, trackerAddr}, func(tx store.Tx) error {
		r := repository.NewRecords(tx)
		pg, err := r.CommentPage(pageAddr)
		if errors.Is(err, store.ErrNotFound) {
			return ErrPageNotFound
		}
		if err != nil {
			return err
		}
		if pg.Post != postAddr {
			return ErrPageMismatch
		}
		c, ok := pg.At(globalIndex)
		if !ok {
			return ErrCommentNotFound
		}

		tracker, exists, err := r.CommentLikes(user, postAddr)
		if err != nil {
			return err
		}
		if tracker.Bitmap.Has(globalIndex) {
			return ErrAlreadyLiked
		}
		tracker.Bitmap.Set(globalIndex)
		c.LikeCount++
		if err := r.SaveCommentLikes(tracker, exists); err != nil {
			return err
		}
		return r.SaveCommentPage(pg)
	})
	if err != nil {
		return err
	}
	s.opts.emitter.Emit(events.New(events.CommentLiked, user, postAddr).WithIndex(globalIndex))
	return nil
}

func (s *likeService) HasLikedPost(ctx context.Context, user, postAddr address.Address) (liked bool, err error) {
	likeAddr := address.UserLikeAddress(user, postAddr)
	err = s.st.View(ctx, []address.Address{likeAddr}, func(tx store.Tx) error {
		liked, err = repository.NewRecords(tx).Exists(likeAddr)
		return err
	})
	return liked, err
}

// HasLikedComment 超出位图容量的序号恒为未点赞
func (s *likeService) HasLikedComment(ctx context.Context, user, postAddr address.Address, globalIndex uint64) (liked bool, err error) {
	if globalIndex >= model.LikeTrackerCapacity {
		return false, nil
	}
	trackerAddr := address.CommentLikesAddress(user, postAddr)
	err = s.st.View(ctx, []address.Address{trackerAddr}, func(tx store.Tx) error {
		tracker, _, err := repository.NewRecords(tx).CommentLikes(user, postAddr)
		if err != nil {
			return err
		}
		liked = tracker.Bitmap.Has(globalIndex)
		return nil
	})
	return liked, err
}
