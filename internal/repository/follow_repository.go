package repository

import (
	"context"
	"sort"

	"github.com/d60-Lab/commentlog/internal/address"
	"github.com/d60-Lab/commentlog/internal/model"
	"github.com/d60-Lab/commentlog/internal/store"
)

// FollowRepository 关注关系的列表查询；写入走 Records
type FollowRepository interface {
	ListFollowings(ctx context.Context, follower address.Address, offset, limit int) ([]*model.UserFollow, error)
	ListFans(ctx context.Context, target address.Address, offset, limit int) ([]*model.UserFollow, error)
}

type followRepository struct {
	st store.Store
}

func NewFollowRepository(st store.Store) FollowRepository { return &followRepository{st: st} }

func (r *followRepository) ListFollowings(ctx context.Context, follower address.Address, offset, limit int) ([]*model.UserFollow, error) {
	return r.list(ctx, offset, limit, func(f *model.UserFollow) bool { return f.Follower == follower })
}

func (r *followRepository) ListFans(ctx context.Context, target address.Address, offset, limit int) ([]*model.UserFollow, error) {
	return r.list(ctx, offset, limit, func(f *model.UserFollow) bool { return f.Target == target })
}

// list 按关注时间倒序分页
func (r *followRepository) list(ctx context.Context, offset, limit int, keep func(*model.UserFollow) bool) ([]*model.UserFollow, error) {
	entries, err := r.st.Scan(ctx, address.NamespaceFollow)
	if err != nil {
		return nil, err
	}
	var res []*model.UserFollow
	for _, e := range entries {
		f := &model.UserFollow{}
		if err := f.UnmarshalBinary(e.Data); err != nil {
			return nil, err
		}
		if keep(f) {
			res = append(res, f)
		}
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].Timestamp > res[j].Timestamp })
	return paginate(res, offset, limit), nil
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
