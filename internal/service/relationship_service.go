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

// RelationshipService 关系链服务：每对 (follower, target) 一条存在性记录
type RelationshipService interface {
	Follow(ctx context.Context, follower, target address.Address) error
	Unfollow(ctx context.Context, follower, target address.Address) error
	IsFollowing(ctx context.Context, follower, target address.Address) (bool, error)
	ListFollowing(ctx context.Context, user address.Address, page, pageSize int) ([]address.Address, error)
	ListFans(ctx context.Context, user address.Address, page, pageSize int) ([]address.Address, error)
}

type relationshipService struct {
	st         store.Store
	followRepo repository.FollowRepository
	opts       options
}

func NewRelationshipService(st store.Store, opts ...Option) RelationshipService {
	return &relationshipService{st: st, followRepo: repository.NewFollowRepository(st), opts: buildOptions(opts)}
}

func (s *relationshipService) Follow(ctx context.Context, follower, target address.Address) (err error) {
	ctx, span := startSpan(ctx, "RelationshipService.Follow", attribute.String("target", target.Short()))
	defer func() { finish(span, "follow_user", err) }()

	if follower == target {
		return ErrFollowSelf
	}
	err = s.st.Update(ctx, []address.Address{address.FollowAddress(follower, target)}, func(tx store.Tx) error {
		err := repository.NewRecords(tx).CreateFollow(&model.UserFollow{Follower: follower, Target: target, Timestamp: s.opts.unix()})
		if errors.Is(err, store.ErrExists) {
			return ErrAlreadyFollowing
		}
		return err
	})
	if err != nil {
		return err
	}
	s.opts.emitter.Emit(events.New(events.UserFollowed, follower, target))
	return nil
}

func (s *relationshipService) Unfollow(ctx context.Context, follower, target address.Address) (err error) {
	ctx, span := startSpan(ctx, "RelationshipService.Unfollow", attribute.String("target", target.Short()))
	defer func() { finish(span, "unfollow_user", err) }()

	err = s.st.Update(ctx, []address.Address{address.FollowAddress(follower, target)}, func(tx store.Tx) error {
		err := repository.NewRecords(tx).DeleteFollow(follower, target)
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFollowing
		}
		return err
	})
	if err != nil {
		return err
	}
	s.opts.emitter.Emit(events.New(events.UserUnfollowed, follower, target))
	return nil
}

func (s *relationshipService) IsFollowing(ctx context.Context, follower, target address.Address) (ok bool, err error) {
	addr := address.FollowAddress(follower, target)
	err = s.st.View(ctx, []address.Address{addr}, func(tx store.Tx) error {
		ok, err = repository.NewRecords(tx).Exists(addr)
		return err
	})
	return ok, err
}

func (s *relationshipService) ListFollowing(ctx context.Context, user address.Address, page, pageSize int) ([]address.Address, error) {
	offset, limit := pageWindow(page, pageSize)
	items, err := s.followRepo.ListFollowings(ctx, user, offset, limit)
	if err != nil {
		return nil, err
	}
	res := make([]address.Address, len(items))
	for i, it := range items {
		res[i] = it.Target
	}
	return res, nil
}

func (s *relationshipService) ListFans(ctx context.Context, user address.Address, page, pageSize int) ([]address.Address, error) {
	offset, limit := pageWindow(page, pageSize)
	items, err := s.followRepo.ListFans(ctx, user, offset, limit)
	if err != nil {
		return nil, err
	}
	res := make([]address.Address, len(items))
	for i, it := range items {
		res[i] = it.Follower
	}
	return res, nil
}
