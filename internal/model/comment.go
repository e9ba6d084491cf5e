package model

import (
	"math"

	"github.com/d60-Lab/commentlog/internal/address"
)

const (
	// CommentsPerPage 每页容量
	CommentsPerPage = 10
	// MaxCommentBytes 评论最多 100 字节
	MaxCommentBytes = 100
	// NoParent parent_index 哨兵值：顶层评论
	NoParent uint64 = math.MaxUint64

	CompactCommentSize = address.Size + 8 + 8 + (2 + MaxCommentBytes) + 4
	CommentPageSize    = 1 + address.Size + 8 + 1 + CommentsPerPage*CompactCommentSize
)

// PageIndex 全局序号所在页
func PageIndex(globalIndex uint64) uint64 { return globalIndex / CommentsPerPage }

// PageOffset 全局序号在页内的偏移
func PageOffset(globalIndex uint64) uint64 { return globalIndex % CommentsPerPage }

// CompactComment 紧凑评论
type CompactComment struct {
	Author      address.Address `json:"author"`
	Timestamp   int64           `json:"timestamp"`
	ParentIndex uint64          `json:"parent_index"`
	Content     string          `json:"content"`
	LikeCount   uint32          `json:"like_count"`
}

// HasParent 是否为回复
func (c *CompactComment) HasParent() bool { return c.ParentIndex != NoParent }

// CommentPage 定长评论页，只追加
type CommentPage struct {
	Post      address.Address  `json:"post"`
	PageIndex uint64           `json:"page_index"`
	Comments  []CompactComment `json:"comments"`
}

func (*CommentPage) Namespace() string { return address.NamespaceCommentPage }

func (pg *CommentPage) Address() address.Address {
	return address.CommentPageAddress(pg.Post, pg.PageIndex)
}

func (pg *CommentPage) Full() bool { return len(pg.Comments) >= CommentsPerPage }

// FirstGlobalIndex 页内第 0 条评论的全局序号
func (pg *CommentPage) FirstGlobalIndex() uint64 { return pg.PageIndex * CommentsPerPage }

// At 按全局序号取评论；不在本页或尚未写入时返回 false
func (pg *CommentPage) At(globalIndex uint64) (*CompactComment, bool) {
	if PageIndex(globalIndex) != pg.PageIndex {
		return nil, false
	}
	off := PageOffset(globalIndex)
	if off >= uint64(len(pg.Comments)) {
		return nil, false
	}
	return &pg.Comments[off], true
}

func (pg *CommentPage) MarshalBinary() ([]byte, error) {
	if len(pg.Comments) > CommentsPerPage {
		return nil, ErrCorruptRecord
	}
	e := newEncoder(CommentPageSize, kindCommentPage)
	e.address(pg.Post)
	e.u64(pg.PageIndex)
	e.u8(byte(len(pg.Comments)))
	for i := range pg.Comments {
		c := &pg.Comments[i]
		e.address(c.Author)
		e.i64(c.Timestamp)
		e.u64(c.ParentIndex)
		if err := e.str(c.Content, MaxCommentBytes); err != nil {
			return nil, err
		}
		e.u32(c.LikeCount)
	}
	return e.bytes(), nil
}

func (pg *CommentPage) UnmarshalBinary(data []byte) error {
	d, err := newDecoder(data, CommentPageSize, kindCommentPage)
	if err != nil {
		return err
	}
	pg.Post = d.address()
	pg.PageIndex = d.u64()
	n := int(d.u8())
	if n > CommentsPerPage {
		return ErrCorruptRecord
	}
	pg.Comments = make([]CompactComment, n)
	for i := 0; i < n; i++ {
		c := &pg.Comments[i]
		c.Author = d.address()
		c.Timestamp = d.i64()
		c.ParentIndex = d.u64()
		if c.Content, err = d.str(MaxCommentBytes); err != nil {
			return err
		}
		c.LikeCount = d.u32()
	}
	return nil
}
