// Package repository 在存储事务内按类型读写定长记录
package repository

import (
	"github.com/pkg/errors"

	"github.com/d60-Lab/commentlog/internal/address"
	"github.com/d60-Lab/commentlog/internal/model"
	"github.com/d60-Lab/commentlog/internal/store"
)

// Records 包装一次事务，只能访问操作声明过的地址
type Records struct {
	tx store.Tx
}

func NewRecords(tx store.Tx) *Records { return &Records{tx: tx} }

func (r *Records) load(addr address.Address, rec model.Record) error {
	data, err := r.tx.Get(addr)
	if err != nil {
		return err
	}
	if err := rec.UnmarshalBinary(data); err != nil {
		return errors.Wrapf(err, "decode %s record %s", rec.Namespace(), addr.Short())
	}
	return nil
}

func (r *Records) create(addr address.Address, rec model.Record) error {
	data, err := rec.MarshalBinary()
	if err != nil {
		return err
	}
	return r.tx.Create(addr, rec.Namespace(), data)
}

func (r *Records) save(addr address.Address, rec model.Record) error {
	data, err := rec.MarshalBinary()
	if err != nil {
		return err
	}
	return r.tx.Put(addr, rec.Namespace(), data)
}

// Exists 只关心记录是否存在（去重记录）
func (r *Records) Exists(addr address.Address) (bool, error) {
	_, err := r.tx.Get(addr)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, store.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

// Post 不存在时返回 store.ErrNotFound
func (r *Records) Post(addr address.Address) (*model.Post, error) {
	p := &model.Post{}
	if err := r.load(addr, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *Records) CreatePost(p *model.Post) error { return r.create(p.Address(), p) }

func (r *Records) SavePost(p *model.Post) error { return r.save(p.Address(), p) }

func (r *Records) CommentPage(addr address.Address) (*model.CommentPage, error) {
	pg := &model.CommentPage{}
	if err := r.load(addr, pg); err != nil {
		return nil, err
	}
	return pg, nil
}

func (r *Records) CreateCommentPage(pg *model.CommentPage) error { return r.create(pg.Address(), pg) }

func (r *Records) SaveCommentPage(pg *model.CommentPage) error { return r.save(pg.Address(), pg) }

func (r *Records) CreateUserLike(l *model.UserLike) error {
	return r.create(address.UserLikeAddress(l.User, l.Post), l)
}

// CommentLikes 位图不存在时返回零位图，created=false
func (r *Records) CommentLikes(user, post address.Address) (cl *model.CommentLikes, created bool, err error) {
	cl = &model.CommentLikes{}
	err = r.load(address.CommentLikesAddress(user, post), cl)
	if errors.Is(err, store.ErrNotFound) {
		return &model.CommentLikes{User: user, Post: post}, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return cl, true, nil
}

// SaveCommentLikes 首次点赞时创建位图记录
func (r *Records) SaveCommentLikes(cl *model.CommentLikes, exists bool) error {
	addr := address.CommentLikesAddress(cl.User, cl.Post)
	if exists {
		return r.save(addr, cl)
	}
	return r.create(addr, cl)
}

func (r *Records) Follow(follower, target address.Address) (*model.UserFollow, error) {
	f := &model.UserFollow{}
	if err := r.load(address.FollowAddress(follower, target), f); err != nil {
		return nil, err
	}
	return f, nil
}

func (r *Records) CreateFollow(f *model.UserFollow) error {
	return r.create(address.FollowAddress(f.Follower, f.Target), f)
}

func (r *Records) DeleteFollow(follower, target address.Address) error {
	return r.tx.Delete(address.FollowAddress(follower, target))
}

// Profile 不存在时返回零值档案，首次写入时创建
func (r *Records) Profile(user address.Address) (p *model.UserProfile, exists bool, err error) {
	p = &model.UserProfile{}
	err = r.load(address.ProfileAddress(user), p)
	if errors.Is(err, store.ErrNotFound) {
		return &model.UserProfile{Authority: user}, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return p, true, nil
}

func (r *Records) SaveProfile(p *model.UserProfile, exists bool) error {
	addr := address.ProfileAddress(p.Authority)
	if exists {
		return r.save(addr, p)
	}
	return r.create(addr, p)
}

// UpdateProfile 读取（或初始化）档案，修改后写回
func (r *Records) UpdateProfile(user address.Address, mutate func(p *model.UserProfile)) error {
	p, exists, err := r.Profile(user)
	if err != nil {
		return err
	}
	mutate(p)
	return r.SaveProfile(p, exists)
}

// Balance 不存在视为余额 0
func (r *Records) Balance(owner address.Address) (b *model.Balance, exists bool, err error) {
	b = &model.Balance{}
	err = r.load(address.BalanceAddress(owner), b)
	if errors.Is(err, store.ErrNotFound) {
		return &model.Balance{Owner: owner}, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (r *Records) SaveBalance(b *model.Balance, exists bool) error {
	addr := address.BalanceAddress(b.Owner)
	if exists {
		return r.save(addr, b)
	}
	return r.create(addr, b)
}
