package service

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/d60-Lab/commentlog/internal/address"
	"github.com/d60-Lab/commentlog/internal/events"
	"github.com/d60-Lab/commentlog/internal/model"
	"github.com/d60-Lab/commentlog/internal/repository"
	"github.com/d60-Lab/commentlog/internal/store"
)

// PostService 帖子与分页评论日志
type PostService interface {
	CreatePost(ctx context.Context, author address.Address, topic, content string) (*model.Post, error)
	// InitCommentPage 在 comment_count/10 处分配新页并更新 tail_page
	InitCommentPage(ctx context.Context, caller, post address.Address) (*model.CommentPage, error)
	// AddComment 返回新评论的全局序号
	AddComment(ctx context.Context, author, post, page address.Address, content string, parentIndex uint64) (uint64, error)
	GetPost(ctx context.Context, post address.Address) (*model.Post, error)
	ListPosts(ctx context.Context, author *address.Address, page, pageSize int) ([]*model.Post, error)
	GetPage(ctx context.Context, post address.Address, index uint64) (*model.CommentPage, error)
	// ListComments 分段读取，NextPage 为空表示已读到末页
	ListComments(ctx context.Context, post address.Address, fromPage uint64, pages int) (*CommentWindow, error)
}

// CommentView 带全局序号的评论
type CommentView struct {
	Index uint64 `json:"index"`
	Page  uint64 `json:"page"`
	model.CompactComment
}

// MaxListPages 单次 ListComments 最多声明的页数
const MaxListPages = 100

// CommentWindow ListComments 的一段结果
type CommentWindow struct {
	CommentCount uint64        `json:"comment_count"`
	FromPage     uint64        `json:"from_page"`
	NextPage     *uint64       `json:"next_page,omitempty"`
	List         []CommentView `json:"list"`
}

type postService struct {
	st    store.Store
	posts repository.PostRepository
	opts  options
}

func NewPostService(st store.Store, opts ...Option) PostService {
	return &postService{st: st, posts: repository.NewPostRepository(st), opts: buildOptions(opts)}
}

// loadPost 把 store.ErrNotFound 映射为 ErrPostNotFound
func loadPost(r *repository.Records, addr address.Address) (*model.Post, error) {
	p, err := r.Post(addr)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrPostNotFound
	}
	return p, err
}

func (s *postService) CreatePost(ctx context.Context, author address.Address, topic, content string) (p *model.Post, err error) {
	ctx, span := startSpan(ctx, "PostService.CreatePost", attribute.String("author", author.Short()))
	defer func() { finish(span, "create_post", err) }()

	if utf8.RuneCountInString(topic) > model.MaxTopicChars {
		return nil, ErrTopicTooLong
	}
	if len(content) > model.MaxPostContentBytes {
		return nil, ErrContentTooLong
	}

	p = &model.Post{ID: uuid.New(), Author: author, Timestamp: s.opts.unix(), Topic: topic, Content: content}
	addrs := []address.Address{p.Address(), address.ProfileAddress(author)}
	err = s.st.Update(ctx, addrs, func(tx store.Tx) error {
		r := repository.NewRecords(tx)
		if err := r.CreatePost(p); err != nil {
			if errors.Is(err, store.ErrExists) {
				return ErrAddressCollision
			}
			return err
		}
		return r.UpdateProfile(author, func(pr *model.UserProfile) { pr.PostCount++ })
	})
	if err != nil {
		return nil, err
	}
	s.opts.emitter.Emit(events.New(events.PostCreated, author, p.Address()))
	return p, nil
}

func (s *postService) InitCommentPage(ctx context.Context, caller, postAddr address.Address) (pg *model.CommentPage, err error) {
	ctx, span := startSpan(ctx, "PostService.InitCommentPage", attribute.String("post", postAddr.Short()))
	defer func() { finish(span, "init_comment_page", err) }()

	// 先读出当前计数以确定要声明的页地址
	var pageIndex uint64
	err = s.st.View(ctx, []address.Address{postAddr}, func(tx store.Tx) error {
		p, err := loadPost(repository.NewRecords(tx), postAddr)
		if err != nil {
			return err
		}
		pageIndex = p.NextPageIndex()
		return nil
	})
	if err != nil {
		return nil, err
	}

	pageAddr := address.CommentPageAddress(postAddr, pageIndex)
	err = s.st.Update(ctx, []address.Address{postAddr, pageAddr}, func(tx store.Tx) error {
		r := repository.NewRecords(tx)
		p, err := loadPost(r, postAddr)
		if err != nil {
			return err
		}
		if !p.AtPageBoundary() {
			return ErrNotAtPageBoundary
		}
		if p.NextPageIndex() != pageIndex {
			return ErrPageMismatch
		}
		page := &model.CommentPage{Post: postAddr, PageIndex: pageIndex}
		if err := r.CreateCommentPage(page); err != nil {
			if errors.Is(err, store.ErrExists) {
				return ErrAddressCollision
			}
			return err
		}
		tail := pageAddr
		p.TailPage = &tail
		if err := r.SavePost(p); err != nil {
			return err
		}
		pg = page
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.opts.emitter.Emit(events.New(events.CommentPageAllocated, caller, postAddr).WithIndex(pageIndex))
	return pg, nil
}

func (s *postService) AddComment(ctx context.Context, author, postAddr, pageAddr address.Address, content string, parentIndex uint64) (index uint64, err error) {
	ctx, span := startSpan(ctx, "PostService.AddComment",
		attribute.String("post", postAddr.Short()), attribute.String("page", pageAddr.Short()))
	defer func() { finish(span, "add_comment", err) }()

	if len(content) > model.MaxCommentBytes {
		return 0, ErrContentTooLong
	}

	err = s.st.Update(ctx, []address.Address{postAddr, pageAddr}, func(tx store.Tx) error {
		r := repository.NewRecords(tx)
		p, err := loadPost(r, postAddr)
		if err != nil {
			return err
		}
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
		if pg.Full() {
			return ErrPageFull
		}
		// 只接受当前边界对应的页，不做自动纠正
		if pageAddr != p.ExpectedTailPage() {
			return ErrPageMismatch
		}
		if parentIndex != model.NoParent && parentIndex >= p.CommentCount {
			return ErrParentNotFound
		}

		index = p.CommentCount
		pg.Comments = append(pg.Comments, model.CompactComment{
			Author:      author,
			Timestamp:   s.opts.unix(),
			ParentIndex: parentIndex,
			Content:     content,
		})
		p.CommentCount++
		if err := r.SaveCommentPage(pg); err != nil {
			return err
		}
		return r.SavePost(p)
	})
	if err != nil {
		return 0, err
	}
	s.opts.emitter.Emit(events.New(events.CommentAdded, author, postAddr).WithIndex(index))
	return index, nil
}

func (s *postService) GetPost(ctx context.Context, postAddr address.Address) (p *model.Post, err error) {
	err = s.st.View(ctx, []address.Address{postAddr}, func(tx store.Tx) error {
		p, err = loadPost(repository.NewRecords(tx), postAddr)
		return err
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *postService) ListPosts(ctx context.Context, author *address.Address, page, pageSize int) ([]*model.Post, error) {
	offset, limit := pageWindow(page, pageSize)
	return s.posts.List(ctx, author, offset, limit)
}

func (s *postService) GetPage(ctx context.Context, postAddr address.Address, index uint64) (pg *model.CommentPage, err error) {
	pageAddr := address.CommentPageAddress(postAddr, index)
	err = s.st.View(ctx, []address.Address{postAddr, pageAddr}, func(tx store.Tx) error {
		r := repository.NewRecords(tx)
		if _, err := loadPost(r, postAddr); err != nil {
			return err
		}
		pg, err = r.CommentPage(pageAddr)
		if errors.Is(err, store.ErrNotFound) {
			return ErrPageNotFound
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return pg, nil
}

// ListComments 从 fromPage 起读取至多 pages 页（上限 MaxListPages），按页号 global/10 还原评论顺序
func (s *postService) ListComments(ctx context.Context, postAddr address.Address, fromPage uint64, pages int) (*CommentWindow, error) {
	p, err := s.GetPost(ctx, postAddr)
	if err != nil {
		return nil, err
	}
	if pages <= 0 || pages > MaxListPages {
		pages = MaxListPages
	}
	w := &CommentWindow{CommentCount: p.CommentCount, FromPage: fromPage, List: []CommentView{}}
	total := p.PageCount()
	if fromPage >= total {
		return w, nil
	}
	end := min(fromPage+uint64(pages), total)
	if end < total {
		next := end
		w.NextPage = &next
	}

	addrs := make([]address.Address, 0, end-fromPage)
	for i := fromPage; i < end; i++ {
		addrs = append(addrs, address.CommentPageAddress(postAddr, i))
	}
	err = s.st.View(ctx, addrs, func(tx store.Tx) error {
		r := repository.NewRecords(tx)
		for i, a := range addrs {
			pg, err := r.CommentPage(a)
			if errors.Is(err, store.ErrNotFound) {
				return ErrPageNotFound
			}
			if err != nil {
				return err
			}
			pageIndex := fromPage + uint64(i)
			for off, c := range pg.Comments {
				w.List = append(w.List, CommentView{
					Index:          pageIndex*model.CommentsPerPage + uint64(off),
					Page:           pageIndex,
					CompactComment: c,
				})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return w, nil
}

// pageWindow 页码从 1 开始，默认每页 10 条
func pageWindow(page, pageSize int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	return (page - 1) * pageSize, pageSize
}
