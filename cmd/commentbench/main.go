// commentbench 并发写同一帖子的评论日志并点赞评论，统计延迟、换页次数与事件投递
package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/d60-Lab/commentlog/config"
	"github.com/d60-Lab/commentlog/internal/address"
	"github.com/d60-Lab/commentlog/internal/events"
	"github.com/d60-Lab/commentlog/internal/model"
	"github.com/d60-Lab/commentlog/internal/service"
	"github.com/d60-Lab/commentlog/internal/store"
	"github.com/d60-Lab/commentlog/pkg/logger"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func envInt(name string, def int) int {
	if s := os.Getenv(name); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func pct(vs []time.Duration, p float64) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	xs := append([]time.Duration(nil), vs...)
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
	k := int(math.Ceil(p*float64(len(xs)))) - 1
	if k < 0 {
		k = 0
	}
	if k >= len(xs) {
		k = len(xs) - 1
	}
	return xs[k]
}

type counters struct {
	pageInits atomic.Int64
	pageFull  atomic.Int64
	conflicts atomic.Int64
	failed    atomic.Int64
}

// appendComment 读取 tail_page 写入；页满时分配下一页，竞争失败则重新读取
func appendComment(ctx context.Context, posts service.PostService, author, post address.Address, content string, c *counters) (uint64, error) {
	for attempt := 0; attempt < 64; attempt++ {
		p, err := posts.GetPost(ctx, post)
		if err != nil {
			return 0, err
		}
		if p.TailPage == nil || p.CommentCount%model.CommentsPerPage == 0 {
			if _, err := posts.InitCommentPage(ctx, author, post); err == nil {
				c.pageInits.Add(1)
			} else if !service.Retryable(err) && service.CodeOf(err) != service.ErrAddressCollision.Code {
				return 0, err
			}
			continue
		}
		idx, err := posts.AddComment(ctx, author, post, *p.TailPage, content, model.NoParent)
		switch {
		case err == nil:
			return idx, nil
		case errors.Is(err, service.ErrPageFull):
			c.pageFull.Add(1)
		case errors.Is(err, store.ErrConflict):
			c.conflicts.Add(1)
		case service.Retryable(err):
		default:
			return 0, err
		}
	}
	return 0, errors.New("append: too many attempts")
}

func main() {
	cfg := must(config.Load())
	_ = logger.Init(cfg.Log)
	defer logger.Sync()

	ctx := context.Background()
	st := must(store.Open(ctx, cfg))
	defer st.Close()

	producer := must(events.NewProducer(cfg.Kafka))
	defer producer.Close()
	dispatcher := events.NewDispatcher(producer, cfg.Kafka.QueueSize)
	stop := dispatcher.Start(cfg.Kafka.Workers)

	emit := service.WithEmitter(dispatcher)
	posts := service.NewPostService(st, emit)
	likes := service.NewLikeService(st, emit)

	N := envInt("N", 1000)
	CONC := envInt("CONC", 8)
	LIKES := envInt("LIKES", 200)

	users := make([]address.Address, CONC)
	for i := range users {
		users[i] = address.Derive("user", []byte(uuid.NewString()))
	}
	post := must(posts.CreatePost(ctx, users[0], "bench", "commentbench "+time.Now().Format(time.RFC3339)))
	postAddr := post.Address()

	// 事件投递延迟
	deliveries := make([]time.Duration, 0, N)
	doneDeliveries := make(chan struct{})
	stopDeliveries := make(chan struct{})
	go func() {
		defer close(doneDeliveries)
		for {
			select {
			case d := <-dispatcher.Metrics():
				deliveries = append(deliveries, d)
			case <-stopDeliveries:
				return
			}
		}
	}()

	var maxQ atomic.Int64
	quitSample := make(chan struct{})
	go func() {
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if q := int64(dispatcher.QueueLen()); q > maxQ.Load() {
					maxQ.Store(q)
				}
			case <-quitSample:
				return
			}
		}
	}()

	var c counters
	run := func(total int, op func(worker, i int) error) ([]time.Duration, time.Duration) {
		feed := make(chan int, total)
		for i := 0; i < total; i++ {
			feed <- i
		}
		close(feed)
		lat := make(chan time.Duration, total)
		done := make(chan struct{}, CONC)
		t0 := time.Now()
		for w := 0; w < CONC; w++ {
			go func(w int) {
				for i := range feed {
					began := time.Now()
					if err := op(w, i); err != nil {
						c.failed.Add(1)
					}
					lat <- time.Since(began)
				}
				done <- struct{}{}
			}(w)
		}
		for w := 0; w < CONC; w++ {
			<-done
		}
		elapsed := time.Since(t0)
		close(lat)
		out := make([]time.Duration, 0, total)
		for d := range lat {
			out = append(out, d)
		}
		return out, elapsed
	}

	commentLat, commentDur := run(N, func(w, i int) error {
		_, err := appendComment(ctx, posts, users[w], postAddr, fmt.Sprintf("comment %d from worker %d", i, w), &c)
		return err
	})

	final := must(posts.GetPost(ctx, postAddr))
	// 只对位图可追踪的序号点赞
	likeable := min(int(final.CommentCount), model.LikeTrackerCapacity)
	if LIKES > likeable {
		LIKES = likeable
	}
	likeLat, likeDur := run(LIKES, func(w, i int) error {
		page := address.CommentPageAddress(postAddr, model.PageIndex(uint64(i)))
		err := likes.LikeComment(ctx, users[w], postAddr, page, uint64(i))
		if errors.Is(err, service.ErrAlreadyLiked) {
			return nil
		}
		return err
	})

	q0 := time.Now()
	listed := 0
	for from := uint64(0); ; {
		w := must(posts.ListComments(ctx, postAddr, from, service.MaxListPages))
		listed += len(w.List)
		if w.NextPage == nil {
			break
		}
		from = *w.NextPage
	}
	listDur := time.Since(q0)

	close(quitSample)
	drainStart := time.Now()
	_ = stop(context.Background())
	drainDur := time.Since(drainStart)
	close(stopDeliveries)
	<-doneDeliveries

	fmt.Printf("store=%s N=%d CONC=%d LIKES=%d\n", cfg.Store.Backend, N, CONC, LIKES)
	fmt.Printf("AddComment total: %v, per op: %v, p50: %v, p95: %v, p99: %v\n",
		commentDur, commentDur/time.Duration(max(N, 1)), pct(commentLat, 0.50), pct(commentLat, 0.95), pct(commentLat, 0.99))
	fmt.Printf("  comment_count=%d pages=%d page_inits=%d page_full_retries=%d conflicts=%d failed=%d\n",
		final.CommentCount, (final.CommentCount+model.CommentsPerPage-1)/model.CommentsPerPage,
		c.pageInits.Load(), c.pageFull.Load(), c.conflicts.Load(), c.failed.Load())
	if LIKES > 0 {
		fmt.Printf("LikeComment total: %v, per op: %v, p50: %v, p95: %v, p99: %v\n",
			likeDur, likeDur/time.Duration(LIKES), pct(likeLat, 0.50), pct(likeLat, 0.95), pct(likeLat, 0.99))
	}
	fmt.Printf("ListComments(%d) latency: %v\n", listed, listDur)
	if len(deliveries) > 0 {
		fmt.Printf("Event delivery: samples=%d, p50=%v, p95=%v, p99=%v, maxQueue=%d, drain=%v\n",
			len(deliveries), pct(deliveries, 0.50), pct(deliveries, 0.95), pct(deliveries, 0.99), maxQ.Load(), drainDur)
	}
}
