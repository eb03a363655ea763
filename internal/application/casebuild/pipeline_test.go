package casebuild

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/LegalLens/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/LegalLens/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/LegalLens/internal/testutil"
	"github.com/turtacn/LegalLens/pkg/errors"
	"github.com/turtacn/LegalLens/pkg/types/legal"
)

type recordingPublisher struct {
	mu   sync.Mutex
	msgs []*kafka.ProducerMessage
	err  error
}

func (p *recordingPublisher) Publish(_ context.Context, msg *kafka.ProducerMessage) error {
	if p.err != nil {
		return p.err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, msg)
	return nil
}

func judgmentMessage(t *testing.T, in legal.JudgmentInput) (*kafka.Message, *kafka.EventEnvelope) {
	t.Helper()
	env, err := kafka.NewEventEnvelope(kafka.EventJudgmentReceived, "ingest", kafka.JudgmentReceivedPayload{Judgment: in})
	require.NoError(t, err)
	pm, err := env.ToMessage(kafka.TopicJudgmentReceived, in.CNR)
	require.NoError(t, err)
	return &kafka.Message{Topic: pm.Topic, Key: pm.Key, Value: pm.Value, Headers: pm.Headers, Offset: 7}, env
}

func newTestPipeline(t *testing.T, pub kafka.Publisher, opts ...PipelineOption) *Pipeline {
	t.Helper()
	svc, _ := newTestService(t)
	return NewPipeline(svc, pub, "", testutil.NewMockLogger(), opts...)
}

func TestPipeline_HandlePublishesRecord(t *testing.T) {
	pub := &recordingPublisher{}
	p := newTestPipeline(t, pub, WithPipelineMetrics(prometheus.NewAppMetrics(prometheus.NewNopCollector())))

	msg, in := judgmentMessage(t, legal.JudgmentInput{CNR: "SCIN01", Text: trafficText})
	require.NoError(t, p.Handle(context.Background(), msg))

	require.Len(t, pub.msgs, 1)
	out := pub.msgs[0]
	assert.Equal(t, kafka.TopicCaseExtracted, out.Topic)
	assert.Equal(t, []byte("SCIN01"), out.Key)
	assert.Equal(t, kafka.EventCaseExtracted, out.Headers[kafka.HeaderEventType])

	env, err := kafka.EnvelopeFromMessage(&kafka.Message{Value: out.Value})
	require.NoError(t, err)
	assert.Equal(t, SourceName, env.Source)
	assert.Equal(t, in.EventID, env.TraceID, "trace falls back to the source event")

	var payload kafka.CaseExtractedPayload
	require.NoError(t, env.DecodePayload(&payload))
	assert.Equal(t, in.EventID, payload.SourceEventID)
	assert.Equal(t, "SCIN01", payload.Record.CaseNumber)
	assert.Equal(t, legal.CategoryTraffic, payload.Record.Category)
	assert.Equal(t, []string{"traffic", "criminal"}, payload.Categories)
	assert.False(t, payload.ExtractedAt.IsZero())
}

func TestPipeline_KeepsTraceID(t *testing.T) {
	pub := &recordingPublisher{}
	p := newTestPipeline(t, pub)

	env, err := kafka.NewEventEnvelope(kafka.EventJudgmentReceived, "ingest", kafka.JudgmentReceivedPayload{
		Judgment: legal.JudgmentInput{CNR: "A", Text: murderText},
	})
	require.NoError(t, err)
	env.TraceID = "trace-1"
	pm, err := env.ToMessage(kafka.TopicJudgmentReceived, "A")
	require.NoError(t, err)

	require.NoError(t, p.Handle(context.Background(), &kafka.Message{Topic: pm.Topic, Value: pm.Value}))
	require.Len(t, pub.msgs, 1)
	assert.Equal(t, "trace-1", pub.msgs[0].Headers[kafka.HeaderTraceID])
}

func TestPipeline_CustomTopicAndBucketer(t *testing.T) {
	pub := &recordingPublisher{}
	b := NewBucketer(10, "kafka", nil)
	svc, _ := newTestService(t)
	p := NewPipeline(svc, pub, "custom.extracted", nil, WithBucketer(b))

	msg, _ := judgmentMessage(t, legal.JudgmentInput{CNR: "B", Text: murderText})
	require.NoError(t, p.Handle(context.Background(), msg))

	assert.Equal(t, "custom.extracted", pub.msgs[0].Topic)
	assert.Equal(t, 1, b.Counts()[legal.CategoryCriminal])
}

func TestPipeline_Failures(t *testing.T) {
	t.Run("not an envelope", func(t *testing.T) {
		pub := &recordingPublisher{}
		p := newTestPipeline(t, pub)
		err := p.Handle(context.Background(), &kafka.Message{Topic: kafka.TopicJudgmentReceived, Value: []byte("not json")})
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeExtractBadPayload))
		assert.True(t, kafka.IsPermanent(err))
		assert.Empty(t, pub.msgs)
	})

	t.Run("unparseable markup is permanent", func(t *testing.T) {
		pub := &recordingPublisher{}
		svc, _ := newTestService(t)
		svc.(*serviceImpl).markup = func(string) (string, error) { return "", assert.AnError }
		p := NewPipeline(svc, pub, "", nil)
		msg, _ := judgmentMessage(t, legal.JudgmentInput{CNR: "A", RawHTML: "<p>x</p>"})
		err := p.Handle(context.Background(), msg)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeExtractBadPayload))
		assert.True(t, kafka.IsPermanent(err))
		assert.Empty(t, pub.msgs)
	})

	t.Run("publish error is returned", func(t *testing.T) {
		pub := &recordingPublisher{err: fmt.Errorf("broker down")}
		p := newTestPipeline(t, pub)
		msg, _ := judgmentMessage(t, legal.JudgmentInput{CNR: "A", Text: murderText})
		err := p.Handle(context.Background(), msg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broker down")
		assert.False(t, kafka.IsPermanent(err), "broker errors are retried")
	})
}

func TestPipeline_EmptyJudgmentPublishesPlaceholder(t *testing.T) {
	pub := &recordingPublisher{}
	p := newTestPipeline(t, pub)

	msg, _ := judgmentMessage(t, legal.JudgmentInput{Year: 2010})
	require.NoError(t, p.Handle(context.Background(), msg))
	require.Len(t, pub.msgs, 1)

	env, err := kafka.EnvelopeFromMessage(&kafka.Message{Value: pub.msgs[0].Value})
	require.NoError(t, err)
	var payload kafka.CaseExtractedPayload
	require.NoError(t, env.DecodePayload(&payload))
	assert.Equal(t, "SC Case / Year 2010", payload.Record.CaseNumber)
	assert.Equal(t, "Crime details not available.", payload.Record.CrimeDetails)
	assert.Equal(t, "Outcome: Unknown.", payload.Record.Verdict.Detail)
	assert.Equal(t, legal.CategoryCivil, payload.Record.Category)
}
