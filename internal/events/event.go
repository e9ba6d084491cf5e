// Package events 提交后的领域事件：异步分发到 Kafka 或日志
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/d60-Lab/commentlog/internal/address"
)

type Type string

const (
	PostCreated          Type = "post.created"
	CommentPageAllocated Type = "comment_page.allocated"
	CommentAdded         Type = "comment.added"
	PostLiked            Type = "post.liked"
	CommentLiked         Type = "comment.liked"
	PostTipped           Type = "post.tipped"
	UserFollowed         Type = "user.followed"
	UserUnfollowed       Type = "user.unfollowed"
	FundsDeposited       Type = "wallet.deposited"
)

// Event Subject 为被作用对象（帖子或被关注用户），同时作为分区键
type Event struct {
	ID      string          `json:"id"`
	Type    Type            `json:"type"`
	Actor   address.Address `json:"actor"`
	Subject address.Address `json:"subject"`
	Index   *uint64         `json:"index,omitempty"`
	Amount  uint64          `json:"amount,omitempty"`
	At      int64           `json:"at"`
}

func New(t Type, actor, subject address.Address) Event {
	return Event{
		ID:      uuid.NewString(),
		Type:    t,
		Actor:   actor,
		Subject: subject,
		At:      time.Now().Unix(),
	}
}

// WithIndex 附带评论全局序号或页号
func (e Event) WithIndex(i uint64) Event {
	e.Index = &i
	return e
}

func (e Event) WithAmount(amount uint64) Event {
	e.Amount = amount
	return e
}

// Emitter 由服务层调用，不得阻塞
type Emitter interface {
	Emit(e Event)
}

type discard struct{}

func (discard) Emit(Event) {}

// Discard 丢弃所有事件
var Discard Emitter = discard{}

// Recorder 同步记录事件，测试用
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Emit(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

// Events 返回副本
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Types 依次返回事件类型
func (r *Recorder) Types() []Type {
	evs := r.Events()
	out := make([]Type, len(evs))
	for i, e := range evs {
		out[i] = e.Type
	}
	return out
}
