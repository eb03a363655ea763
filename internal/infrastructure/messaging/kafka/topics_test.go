package kafka

import (
	"context"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/turtacn/LegalLens/pkg/errors"
	"github.com/turtacn/LegalLens/pkg/types/legal"
)

type mockKafkaConn struct {
	existing map[string]bool
	created  []kafka.TopicConfig
	createFn func(...kafka.TopicConfig) error
}

func (m *mockKafkaConn) CreateTopics(topics ...kafka.TopicConfig) error {
	if m.createFn != nil {
		return m.createFn(topics...)
	}
	m.created = append(m.created, topics...)
	return nil
}

func (m *mockKafkaConn) ReadPartitions(topics ...string) ([]kafka.Partition, error) {
	var out []kafka.Partition
	for _, t := range topics {
		if m.existing[t] {
			out = append(out, kafka.Partition{Topic: t})
		}
	}
	return out, nil
}

func (m *mockKafkaConn) Close() error { return nil }

func TestEnvelope_RoundTrip(t *testing.T) {
	in := JudgmentReceivedPayload{Judgment: legal.JudgmentInput{CNR: "SCIN01", Text: "The appeal is dismissed."}}
	env, err := NewEventEnvelope(EventJudgmentReceived, "test", in)
	require.NoError(t, err)
	env.TraceID = "trace-1"
	assert.NotEmpty(t, env.EventID)
	assert.Equal(t, SchemaVersion, env.SchemaVersion)

	pm, err := env.ToMessage(TopicJudgmentReceived, "SCIN01")
	require.NoError(t, err)
	assert.Equal(t, "SCIN01", string(pm.Key))
	assert.Equal(t, EventJudgmentReceived, pm.Headers[HeaderEventType])
	assert.Equal(t, "trace-1", pm.Headers[HeaderTraceID])

	back, err := EnvelopeFromMessage(&Message{Value: pm.Value})
	require.NoError(t, err)
	var out JudgmentReceivedPayload
	require.NoError(t, back.DecodePayload(&out))
	assert.Equal(t, in, out)
}

func TestEnvelope_BadInput(t *testing.T) {
	_, err := EnvelopeFromMessage(&Message{})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeExtractBadPayload))

	_, err = EnvelopeFromMessage(&Message{Value: []byte("{")})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeExtractBadPayload))

	env := &EventEnvelope{EventID: "e"}
	var out JudgmentReceivedPayload
	assert.True(t, pkgerrors.IsCode(env.DecodePayload(&out), pkgerrors.ErrCodeExtractBadPayload))

	_, err = NewEventEnvelope(EventCaseExtracted, "test", make(chan int))
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeSerialization))
}

func TestTopicManager_EnsureTopics(t *testing.T) {
	conn := &mockKafkaConn{existing: map[string]bool{TopicJudgmentReceived: true}}
	m := NewTopicManagerWithConn(conn, nil)

	topics := PipelineTopics(TopicJudgmentReceived, TopicCaseExtracted, TopicJudgmentDLQ)
	require.NoError(t, m.EnsureTopics(context.Background(), topics))

	require.Len(t, conn.created, 2, "existing topic is skipped")
	assert.Equal(t, TopicCaseExtracted, conn.created[0].Topic)
	assert.Equal(t, TopicJudgmentDLQ, conn.created[1].Topic)
	assert.Equal(t, "retention.ms", conn.created[0].ConfigEntries[0].ConfigName)
}

func TestTopicManager_CreateTopic(t *testing.T) {
	conn := &mockKafkaConn{createFn: func(...kafka.TopicConfig) error { return kafka.TopicAlreadyExists }}
	m := NewTopicManagerWithConn(conn, nil)
	ctx := context.Background()

	assert.NoError(t, m.CreateTopic(ctx, TopicConfig{Name: "x", NumPartitions: 1, ReplicationFactor: 1}))
	assert.Error(t, m.CreateTopic(ctx, TopicConfig{NumPartitions: 1, ReplicationFactor: 1}))
	assert.Error(t, m.CreateTopic(ctx, TopicConfig{Name: "x"}))
}
