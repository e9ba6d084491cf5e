package model

import (
	"github.com/google/uuid"

	"github.com/d60-Lab/commentlog/internal/address"
)

const (
	// MaxTopicChars 话题最多 50 个字符
	MaxTopicChars = 50
	// 每个字符最多 4 字节 UTF-8
	maxTopicBytes = MaxTopicChars * 4
	// MaxPostContentBytes 正文最多 280 字节
	MaxPostContentBytes = 280

	PostSize = 1 + 16 + address.Size + 8 + (2 + maxTopicBytes) + (2 + MaxPostContentBytes) + 8 + 1 + address.Size
)

// Post 帖子（评论链的根）
type Post struct {
	ID           uuid.UUID        `json:"id"`
	Author       address.Address  `json:"author"`
	Timestamp    int64            `json:"timestamp"`
	Topic        string           `json:"topic"`
	Content      string           `json:"content"`
	CommentCount uint64           `json:"comment_count"`
	TailPage     *address.Address `json:"tail_page,omitempty"`
}

func (*Post) Namespace() string { return address.NamespacePost }

// Address 帖子地址由 ID 派生
func (p *Post) Address() address.Address { return address.PostAddress(p.ID) }

// NextPageIndex 下一条评论所在的页号
func (p *Post) NextPageIndex() uint64 { return PageIndex(p.CommentCount) }

// AtPageBoundary 下一条评论需要新页
func (p *Post) AtPageBoundary() bool { return PageOffset(p.CommentCount) == 0 }

// ExpectedTailPage 当前应接收写入的页地址
func (p *Post) ExpectedTailPage() address.Address {
	return address.CommentPageAddress(p.Address(), p.NextPageIndex())
}

// PageCount 已存在评论覆盖的页数
func (p *Post) PageCount() uint64 {
	return (p.CommentCount + CommentsPerPage - 1) / CommentsPerPage
}

func (p *Post) MarshalBinary() ([]byte, error) {
	e := newEncoder(PostSize, kindPost)
	e.raw(p.ID[:])
	e.address(p.Author)
	e.i64(p.Timestamp)
	if err := e.str(p.Topic, maxTopicBytes); err != nil {
		return nil, err
	}
	if err := e.str(p.Content, MaxPostContentBytes); err != nil {
		return nil, err
	}
	e.u64(p.CommentCount)
	if p.TailPage != nil {
		e.u8(1)
		e.address(*p.TailPage)
	} else {
		e.u8(0)
	}
	return e.bytes(), nil
}

func (p *Post) UnmarshalBinary(data []byte) error {
	d, err := newDecoder(data, PostSize, kindPost)
	if err != nil {
		return err
	}
	copy(p.ID[:], d.raw(16))
	p.Author = d.address()
	p.Timestamp = d.i64()
	if p.Topic, err = d.str(maxTopicBytes); err != nil {
		return err
	}
	if p.Content, err = d.str(MaxPostContentBytes); err != nil {
		return err
	}
	p.CommentCount = d.u64()
	p.TailPage = nil
	if d.u8() == 1 {
		tail := d.address()
		p.TailPage = &tail
	}
	return nil
}
