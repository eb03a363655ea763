package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/LegalLens/internal/config"
	pkgerrors "github.com/turtacn/LegalLens/pkg/errors"
)

type mockKafkaWriter struct {
	writeFunc func(ctx context.Context, msgs ...kafka.Message) error
	written   []kafka.Message
	closed    int
}

func (m *mockKafkaWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if m.writeFunc != nil {
		if err := m.writeFunc(ctx, msgs...); err != nil {
			return err
		}
	}
	m.written = append(m.written, msgs...)
	return nil
}

func (m *mockKafkaWriter) Close() error {
	m.closed++
	return nil
}

func newTestProducer(w WriterInterface) *Producer {
	return NewProducerWithWriter(w, ProducerConfig{Brokers: []string{"localhost:9092"}, MaxMessageBytes: 64}, nil)
}

func TestPublish_Success(t *testing.T) {
	w := &mockKafkaWriter{}
	p := newTestProducer(w)

	err := p.Publish(context.Background(), &ProducerMessage{
		Topic:   TopicCaseExtracted,
		Key:     []byte("SCIN01"),
		Value:   []byte(`{"ok":true}`),
		Headers: map[string]string{HeaderEventType: EventCaseExtracted},
	})
	require.NoError(t, err)
	require.Len(t, w.written, 1)

	got := w.written[0]
	assert.Equal(t, TopicCaseExtracted, got.Topic)
	assert.Equal(t, "SCIN01", string(got.Key))
	assert.False(t, got.Time.IsZero())
	assert.Equal(t, []kafka.Header{{Key: HeaderEventType, Value: []byte(EventCaseExtracted)}}, got.Headers)

	st := p.Stats()
	assert.Equal(t, int64(1), st.MessagesSent)
	assert.Equal(t, int64(len(`{"ok":true}`)), st.BytesSent)
}

func TestPublish_Validation(t *testing.T) {
	p := newTestProducer(&mockKafkaWriter{})
	ctx := context.Background()

	tests := map[string]*ProducerMessage{
		"nil message": nil,
		"no topic":    {Value: []byte("x")},
		"no value":    {Topic: "t"},
		"too large":   {Topic: "t", Value: make([]byte, 65)},
	}
	for name, msg := range tests {
		t.Run(name, func(t *testing.T) {
			err := p.Publish(ctx, msg)
			assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeValidation), "got %v", err)
		})
	}
}

func TestPublish_WriteFailure(t *testing.T) {
	boom := errors.New("leader not available")
	p := newTestProducer(&mockKafkaWriter{writeFunc: func(context.Context, ...kafka.Message) error { return boom }})

	err := p.Publish(context.Background(), &ProducerMessage{Topic: "t", Value: []byte("x")})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeMessageQueue))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int64(1), p.Stats().MessagesFailed)
}

func TestPublishBatch_PartialFailure(t *testing.T) {
	w := &mockKafkaWriter{writeFunc: func(_ context.Context, msgs ...kafka.Message) error {
		return kafka.WriteErrors{nil, errors.New("too slow"), nil}
	}}
	p := newTestProducer(w)

	msgs := []*ProducerMessage{
		{Topic: "a", Value: []byte("1")},
		{Topic: "b", Value: []byte("2")},
		{Topic: "c", Value: []byte("3")},
	}
	res, err := p.PublishBatch(context.Background(), msgs)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Succeeded)
	assert.Equal(t, 1, res.Failed)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, 1, res.Errors[0].Index)
	assert.Equal(t, "b", res.Errors[0].Topic)
}

func TestPublishBatch_WholeFailureAndEmpty(t *testing.T) {
	p := newTestProducer(&mockKafkaWriter{writeFunc: func(context.Context, ...kafka.Message) error {
		return errors.New("broker down")
	}})

	res, err := p.PublishBatch(context.Background(), []*ProducerMessage{{Topic: "a", Value: []byte("1")}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, -1, res.Errors[0].Index)

	_, err = p.PublishBatch(context.Background(), nil)
	assert.Error(t, err)
}

func TestProducer_Close(t *testing.T) {
	w := &mockKafkaWriter{}
	p := newTestProducer(w)

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
	assert.Equal(t, 1, w.closed)

	err := p.Publish(context.Background(), &ProducerMessage{Topic: "t", Value: []byte("x")})
	assert.Equal(t, ErrProducerClosed, err)
}

func TestProducerConfigFrom(t *testing.T) {
	cfg := config.NewDefaultConfig().Kafka
	pc := ProducerConfigFrom(cfg)
	assert.Equal(t, cfg.Brokers, pc.Brokers)
	assert.Equal(t, cfg.MaxRetries, pc.MaxRetries)
	assert.NoError(t, ValidateProducerConfig(pc))
	assert.Error(t, ValidateProducerConfig(ProducerConfig{}))
}
