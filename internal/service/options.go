package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/d60-Lab/commentlog/internal/events"
	"github.com/d60-Lab/commentlog/pkg/logger"
	"github.com/d60-Lab/commentlog/pkg/metrics"
)

var tracer = otel.Tracer("github.com/d60-Lab/commentlog/internal/service")

type options struct {
	emitter events.Emitter
	now     func() time.Time
}

// Option 服务可选项
type Option func(*options)

// WithEmitter 提交成功后发出领域事件
func WithEmitter(e events.Emitter) Option {
	return func(o *options) {
		if e != nil {
			o.emitter = e
		}
	}
}

// WithClock 替换时间源，测试用
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{emitter: events.Discard, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) unix() int64 { return o.now().Unix() }

func startSpan(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, op, trace.WithAttributes(attrs...))
}

// finish 记录结果：领域错误按 code 计数，基础设施错误标记 span 失败
func finish(span trace.Span, op string, err error) {
	defer span.End()
	if err == nil {
		metrics.OperationsTotal.WithLabelValues(op, "ok").Inc()
		logger.Debug("operation done", zap.String("op", op))
		return
	}
	var de *Error
	if asDomain(err, &de) {
		metrics.OperationsTotal.WithLabelValues(op, de.Code).Inc()
		span.SetAttributes(attribute.String("error.code", de.Code), attribute.String("error.kind", de.Kind.String()))
		logger.Debug("operation rejected", zap.String("op", op), zap.String("code", de.Code))
		return
	}
	metrics.OperationsTotal.WithLabelValues(op, "error").Inc()
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	logger.Error("operation failed", zap.String("op", op), zap.Error(err))
}
