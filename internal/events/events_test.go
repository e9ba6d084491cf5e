package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/commentlog/config"
	"github.com/d60-Lab/commentlog/internal/address"
)

func TestDispatcherDeliversToKafka(t *testing.T) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	sp := mocks.NewSyncProducer(t, cfg)

	post := address.Derive(address.NamespacePost, []byte("p1"))
	user := address.Derive("user", []byte("alice"))

	for i := 0; i < 3; i++ {
		sp.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
			var e Event
			if err := json.Unmarshal(val, &e); err != nil {
				return err
			}
			if e.Subject != post {
				return errors.New("unexpected subject")
			}
			return nil
		})
	}

	d := NewDispatcher(NewKafkaProducerWith(sp, "commentlog.events"), 16)
	stop := d.Start(2)

	d.Emit(New(PostCreated, user, post))
	d.Emit(New(CommentAdded, user, post).WithIndex(0))
	d.Emit(New(PostTipped, user, post).WithAmount(5))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, stop(ctx))
	require.NoError(t, sp.Close())

	latencies := 0
	for {
		select {
		case <-d.Metrics():
			latencies++
			continue
		default:
		}
		break
	}
	assert.Equal(t, 3, latencies)
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	d := NewDispatcher(LogProducer{}, 1)
	e := New(PostLiked, address.Zero, address.Zero)

	d.Emit(e)
	d.Emit(e)
	assert.Equal(t, 1, d.QueueLen())

	stop := d.Start(1)
	require.NoError(t, stop(context.Background()))
	assert.Equal(t, 0, d.QueueLen())
}

func TestKafkaProducerSurfacesSendError(t *testing.T) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	sp := mocks.NewSyncProducer(t, cfg)
	sp.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewKafkaProducerWith(sp, "commentlog.events")
	err := p.Publish(context.Background(), New(UserFollowed, address.Zero, address.Zero))
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, p.Close())
}

func TestEventJSONUsesHexAddresses(t *testing.T) {
	post := address.Derive(address.NamespacePost, []byte("p1"))
	e := New(CommentLiked, address.Zero, post).WithIndex(12)

	raw, err := json.Marshal(e)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, post.String(), decoded["subject"])
	assert.Equal(t, "comment.liked", decoded["type"])
	assert.EqualValues(t, 12, decoded["index"])
}

func TestNewProducerWithoutBrokersLogs(t *testing.T) {
	p, err := NewProducer(configWithoutBrokers())
	require.NoError(t, err)
	assert.IsType(t, LogProducer{}, p)
}

func configWithoutBrokers() config.KafkaConfig {
	return config.KafkaConfig{Topic: "commentlog.events", Workers: 1, QueueSize: 1}
}
