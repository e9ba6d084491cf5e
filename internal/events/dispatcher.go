package events

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/d60-Lab/commentlog/pkg/logger"
	"github.com/d60-Lab/commentlog/pkg/metrics"
)

type job struct {
	event Event
	enqAt time.Time
}

// Dispatcher 本地异步投递：队列满时丢弃并告警，从不阻塞调用方
type Dispatcher struct {
	producer  Producer
	ch        chan job
	metricsCh chan time.Duration
}

func NewDispatcher(producer Producer, queueSize int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 10000
	}
	return &Dispatcher{producer: producer, ch: make(chan job, queueSize), metricsCh: make(chan time.Duration, 65536)}
}

// Start 启动 workers，返回的 stop 函数会排空队列后返回（或 ctx 到期）
func (d *Dispatcher) Start(workers int) func(context.Context) error {
	if workers <= 0 {
		workers = 4
	}
	stopCh := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case j := <-d.ch:
					d.deliver(j)
				case <-stopCh:
					for {
						select {
						case j := <-d.ch:
							d.deliver(j)
						default:
							return
						}
					}
				}
			}
		}()
	}
	return func(ctx context.Context) error {
		close(stopCh)
		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (d *Dispatcher) deliver(j job) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := d.producer.Publish(ctx, j.event); err != nil {
		metrics.EventsPublished.WithLabelValues("error").Inc()
		logger.Error("publish event failed", zap.String("type", string(j.event.Type)), zap.String("id", j.event.ID), zap.Error(err))
		return
	}
	metrics.EventsPublished.WithLabelValues("ok").Inc()
	select {
	case d.metricsCh <- time.Since(j.enqAt):
	default:
	}
}

func (d *Dispatcher) Emit(e Event) {
	select {
	case d.ch <- job{event: e, enqAt: time.Now()}:
	default:
		metrics.EventsDropped.Inc()
		logger.Warn("event queue full, drop event", zap.String("type", string(e.Type)), zap.String("subject", e.Subject.Short()))
	}
}

// Metrics 返回投递耗时的只读通道（每成功一条发送一次 duration）
func (d *Dispatcher) Metrics() <-chan time.Duration { return d.metricsCh }

// QueueLen 返回当前队列长度（采样值）
func (d *Dispatcher) QueueLen() int { return len(d.ch) }
