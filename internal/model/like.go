package model

import "github.com/d60-Lab/commentlog/internal/address"

const (
	// LikeTrackerCapacity 每个 (user, post) 位图可追踪的评论数
	LikeTrackerCapacity = 1024
	likeBitmapBytes     = LikeTrackerCapacity / 8

	UserLikeSize     = 1 + address.Size + address.Size + 8
	CommentLikesSize = 1 + address.Size + address.Size + likeBitmapBytes
)

// UserLike 帖子点赞去重记录：存在即已点赞
type UserLike struct {
	User      address.Address `json:"user"`
	Post      address.Address `json:"post"`
	Timestamp int64           `json:"timestamp"`
}

func (*UserLike) Namespace() string { return address.NamespaceUserLike }

func (l *UserLike) MarshalBinary() ([]byte, error) {
	e := newEncoder(UserLikeSize, kindUserLike)
	e.address(l.User)
	e.address(l.Post)
	e.i64(l.Timestamp)
	return e.bytes(), nil
}

func (l *UserLike) UnmarshalBinary(data []byte) error {
	d, err := newDecoder(data, UserLikeSize, kindUserLike)
	if err != nil {
		return err
	}
	l.User = d.address()
	l.Post = d.address()
	l.Timestamp = d.i64()
	return nil
}

// LikeBitmap 1024 位定长位图，第 i 位在字节 i/8 的第 i%8 位（低位在前）
type LikeBitmap [likeBitmapBytes]byte

// Has 越界索引视为未点赞
func (b *LikeBitmap) Has(i uint64) bool {
	if i >= LikeTrackerCapacity {
		return false
	}
	return b[i/8]&(1<<(i%8)) != 0
}

// Set 置位；越界返回 false，不会扩容或回绕
func (b *LikeBitmap) Set(i uint64) bool {
	if i >= LikeTrackerCapacity {
		return false
	}
	b[i/8] |= 1 << (i % 8)
	return true
}

// Count 已置位数量
func (b *LikeBitmap) Count() int {
	n := 0
	for _, v := range b {
		for ; v != 0; v &= v - 1 {
			n++
		}
	}
	return n
}

// CommentLikes 用户在某帖子下的评论点赞位图
type CommentLikes struct {
	User   address.Address `json:"user"`
	Post   address.Address `json:"post"`
	Bitmap LikeBitmap      `json:"-"`
}

func (*CommentLikes) Namespace() string { return address.NamespaceCommentLikes }

func (c *CommentLikes) MarshalBinary() ([]byte, error) {
	e := newEncoder(CommentLikesSize, kindCommentLikes)
	e.address(c.User)
	e.address(c.Post)
	e.raw(c.Bitmap[:])
	return e.bytes(), nil
}

func (c *CommentLikes) UnmarshalBinary(data []byte) error {
	d, err := newDecoder(data, CommentLikesSize, kindCommentLikes)
	if err != nil {
		return err
	}
	c.User = d.address()
	c.Post = d.address()
	copy(c.Bitmap[:], d.raw(likeBitmapBytes))
	return nil
}
