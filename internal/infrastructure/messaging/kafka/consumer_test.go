package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/LegalLens/internal/config"
)

// queueReader hands out queued messages, then blocks until cancelled.
type queueReader struct {
	mu        sync.Mutex
	queue     []kafka.Message
	committed []kafka.Message
	closed    bool
}

func (r *queueReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	if len(r.queue) > 0 {
		m := r.queue[0]
		r.queue = r.queue[1:]
		r.mu.Unlock()
		return m, nil
	}
	r.mu.Unlock()
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (r *queueReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.committed = append(r.committed, msgs...)
	return nil
}

func (r *queueReader) Close() error {
	r.closed = true
	return nil
}

func (r *queueReader) commits() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.committed)
}

type recordingPublisher struct {
	mu   sync.Mutex
	msgs []*ProducerMessage
}

func (p *recordingPublisher) Publish(_ context.Context, msg *ProducerMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, msg)
	return nil
}

func testConsumerConfig() ConsumerConfig {
	return ConsumerConfig{
		Brokers: []string{"localhost:9092"},
		GroupID: "test-group",
		Topics:  []string{TopicJudgmentReceived},
		Retry: RetryConfig{
			MaxRetries:      2,
			RetryBackoff:    time.Millisecond,
			DeadLetterTopic: TopicJudgmentDLQ,
		},
	}
}

func TestValidateConsumerConfig(t *testing.T) {
	assert.NoError(t, ValidateConsumerConfig(testConsumerConfig()))

	tests := map[string]func(*ConsumerConfig){
		"no brokers":     func(c *ConsumerConfig) { c.Brokers = nil },
		"no group":       func(c *ConsumerConfig) { c.GroupID = "" },
		"no topics":      func(c *ConsumerConfig) { c.Topics = nil },
		"bad reset":      func(c *ConsumerConfig) { c.AutoOffsetReset = "middle" },
		"negative retry": func(c *ConsumerConfig) { c.Retry.MaxRetries = -1 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := testConsumerConfig()
			mutate(&cfg)
			assert.Error(t, ValidateConsumerConfig(cfg))
		})
	}
}

func TestConsumerConfigFrom(t *testing.T) {
	cfg := config.NewDefaultConfig().Kafka
	cc := ConsumerConfigFrom(cfg)
	assert.Equal(t, []string{TopicJudgmentReceived}, cc.Topics)
	assert.Equal(t, TopicJudgmentDLQ, cc.Retry.DeadLetterTopic)
	assert.NoError(t, ValidateConsumerConfig(cc))
}

func TestConsumer_DispatchesAndCommits(t *testing.T) {
	r := &queueReader{queue: []kafka.Message{{
		Topic:   TopicJudgmentReceived,
		Offset:  7,
		Value:   []byte("payload"),
		Headers: []kafka.Header{{Key: HeaderTraceID, Value: []byte("t-1")}},
	}}}
	c := NewConsumerWithReader(r, testConsumerConfig(), nil, nil)

	got := make(chan *Message, 1)
	c.Subscribe(TopicJudgmentReceived, func(_ context.Context, m *Message) error {
		got <- m
		return nil
	})
	require.NoError(t, c.Start(context.Background()))
	assert.Equal(t, ErrAlreadyRunning, c.Start(context.Background()))

	select {
	case m := <-got:
		assert.Equal(t, "payload", string(m.Value))
		assert.Equal(t, "t-1", m.Headers[HeaderTraceID])
		assert.Equal(t, int64(7), m.Offset)
	case <-time.After(time.Second):
		t.Fatal("handler not called")
	}

	assert.Eventually(t, func() bool { return r.commits() == 1 }, time.Second, 5*time.Millisecond)
	require.NoError(t, c.Close())
	assert.True(t, r.closed)
	assert.Equal(t, int64(1), c.Stats().Processed)
}

func TestConsumer_UnroutedMessageIsCommitted(t *testing.T) {
	r := &queueReader{queue: []kafka.Message{{Topic: "other", Value: []byte("x")}}}
	c := NewConsumerWithReader(r, testConsumerConfig(), nil, nil)
	require.NoError(t, c.Start(context.Background()))

	assert.Eventually(t, func() bool { return r.commits() == 1 }, time.Second, 5*time.Millisecond)
	require.NoError(t, c.Close())
	assert.Zero(t, c.Stats().Processed)
}

func TestProcess_RetryThenSuccess(t *testing.T) {
	c := NewConsumerWithReader(&queueReader{}, testConsumerConfig(), nil, nil)

	attempts := 0
	err := c.process(context.Background(), &Message{}, func(context.Context, *Message) error {
		attempts++
		if attempts < 2 {
			return errors.New("transient")
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, int64(1), c.Stats().Retried)
}

func TestProcess_ExhaustedGoesToDeadLetter(t *testing.T) {
	dlq := &recordingPublisher{}
	c := NewConsumerWithReader(&queueReader{}, testConsumerConfig(), dlq, nil)

	boom := errors.New("bad judgment")
	msg := &Message{Topic: TopicJudgmentReceived, Key: []byte("k"), Value: []byte("v"), Headers: map[string]string{"a": "b"}}
	err := c.process(context.Background(), msg, func(context.Context, *Message) error { return boom })

	assert.ErrorIs(t, err, boom)
	require.Len(t, dlq.msgs, 1)
	dl := dlq.msgs[0]
	assert.Equal(t, TopicJudgmentDLQ, dl.Topic)
	assert.Equal(t, "v", string(dl.Value))
	assert.Equal(t, TopicJudgmentReceived, dl.Headers[HeaderOriginalTopic])
	assert.Equal(t, "bad judgment", dl.Headers[HeaderErrorMessage])
	assert.Equal(t, "3", dl.Headers[HeaderAttempts])
	assert.Equal(t, "b", dl.Headers["a"])
	assert.NotContains(t, msg.Headers, HeaderOriginalTopic, "source headers are not mutated")
	assert.Equal(t, int64(1), c.Stats().DeadLettered)
}

func TestProcess_PermanentErrorSkipsRetries(t *testing.T) {
	dlq := &recordingPublisher{}
	c := NewConsumerWithReader(&queueReader{}, testConsumerConfig(), dlq, nil)

	cause := errors.New("payload does not decode")
	calls := 0
	err := c.process(context.Background(), &Message{Topic: TopicJudgmentReceived}, func(context.Context, *Message) error {
		calls++
		return Permanent(cause)
	})

	assert.ErrorIs(t, err, cause)
	assert.True(t, IsPermanent(err))
	assert.Equal(t, 1, calls)
	assert.Equal(t, int64(0), c.Stats().Retried)
	require.Len(t, dlq.msgs, 1)
	assert.Equal(t, "1", dlq.msgs[0].Headers[HeaderAttempts])
	assert.Equal(t, "payload does not decode", dlq.msgs[0].Headers[HeaderErrorMessage])
}

func TestPermanent(t *testing.T) {
	assert.Nil(t, Permanent(nil))
	assert.False(t, IsPermanent(errors.New("transient")))

	p := Permanent(errors.New("bad"))
	assert.Same(t, p, Permanent(p), "already permanent errors are not wrapped twice")
}

func TestProcess_CancelledDuringBackoff(t *testing.T) {
	cfg := testConsumerConfig()
	cfg.Retry.RetryBackoff = time.Hour
	c := NewConsumerWithReader(&queueReader{}, cfg, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := c.process(ctx, &Message{}, func(context.Context, *Message) error { return errors.New("x") })
	assert.ErrorIs(t, err, context.Canceled)
}
