package repository

import (
	"context"
	"sort"

	"github.com/d60-Lab/commentlog/internal/address"
	"github.com/d60-Lab/commentlog/internal/model"
	"github.com/d60-Lab/commentlog/internal/store"
)

type PostRepository interface {
	// List 最新在前；author 非空时只返回该作者的帖子
	List(ctx context.Context, author *address.Address, offset, limit int) ([]*model.Post, error)
}

type postRepository struct {
	st store.Store
}

func NewPostRepository(st store.Store) PostRepository { return &postRepository{st: st} }

func (r *postRepository) List(ctx context.Context, author *address.Address, offset, limit int) ([]*model.Post, error) {
	entries, err := r.st.Scan(ctx, address.NamespacePost)
	if err != nil {
		return nil, err
	}
	posts := make([]*model.Post, 0, len(entries))
	for _, e := range entries {
		p := &model.Post{}
		if err := p.UnmarshalBinary(e.Data); err != nil {
			return nil, err
		}
		if author != nil && p.Author != *author {
			continue
		}
		posts = append(posts, p)
	}
	sort.SliceStable(posts, func(i, j int) bool { return posts[i].Timestamp > posts[j].Timestamp })
	return paginate(posts, offset, limit), nil
}
