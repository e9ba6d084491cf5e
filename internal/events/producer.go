package events

import (
	"context"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/d60-Lab/commentlog/config"
	"github.com/d60-Lab/commentlog/pkg/logger"
)

// Producer 把单个事件投递到下游
type Producer interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// KafkaProducer 同步发送，按 Subject 分区以保证同一帖子的事件有序
type KafkaProducer struct {
	producer sarama.SyncProducer
	topic    string
}

func newSaramaConfig() *sarama.Config {
	c := sarama.NewConfig()
	c.Producer.Return.Successes = true
	c.Producer.Return.Errors = true
	c.Producer.RequiredAcks = sarama.WaitForAll
	c.Producer.Retry.Max = 3
	c.Producer.Partitioner = sarama.NewHashPartitioner
	return c
}

func NewKafkaProducer(cfg config.KafkaConfig) (*KafkaProducer, error) {
	sp, err := sarama.NewSyncProducer(cfg.Brokers, newSaramaConfig())
	if err != nil {
		return nil, errors.Wrap(err, "create kafka producer")
	}
	return NewKafkaProducerWith(sp, cfg.Topic), nil
}

// NewKafkaProducerWith 复用已有的 SyncProducer（测试里传 mocks）
func NewKafkaProducerWith(sp sarama.SyncProducer, topic string) *KafkaProducer {
	return &KafkaProducer{producer: sp, topic: topic}
}

func (p *KafkaProducer) Publish(ctx context.Context, e Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return errors.Wrap(err, "encode event")
	}
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(e.Subject.String()),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("type"), Value: []byte(e.Type)},
		},
	}
	if _, _, err := p.producer.SendMessage(msg); err != nil {
		return errors.Wrapf(err, "send %s event", e.Type)
	}
	return nil
}

func (p *KafkaProducer) Close() error { return p.producer.Close() }

// LogProducer 未配置 Kafka 时使用
type LogProducer struct{}

func (LogProducer) Publish(_ context.Context, e Event) error {
	logger.Info("domain event",
		zap.String("id", e.ID),
		zap.String("type", string(e.Type)),
		zap.String("actor", e.Actor.Short()),
		zap.String("subject", e.Subject.Short()),
	)
	return nil
}

func (LogProducer) Close() error { return nil }

// NewProducer 按配置选择 Kafka 或日志
func NewProducer(cfg config.KafkaConfig) (Producer, error) {
	if len(cfg.Brokers) == 0 {
		return LogProducer{}, nil
	}
	return NewKafkaProducer(cfg)
}
