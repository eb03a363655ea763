package casebuild

import (
	"context"
	"time"

	"github.com/turtacn/LegalLens/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/LegalLens/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/LegalLens/internal/infrastructure/monitoring/prometheus"
)

// SourceName identifies records published by the pipeline.
const SourceName = "legallens-worker"

// Pipeline consumes judgment events and publishes extracted records.
type Pipeline struct {
	service        Service
	publisher      kafka.Publisher
	extractedTopic string
	bucketer       *Bucketer
	metrics        *prometheus.AppMetrics
	logger         logging.Logger
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithBucketer also files every built record into b.
func WithBucketer(b *Bucketer) PipelineOption {
	return func(p *Pipeline) { p.bucketer = b }
}

func WithPipelineMetrics(m *prometheus.AppMetrics) PipelineOption {
	return func(p *Pipeline) { p.metrics = m }
}

// NewPipeline publishes to extractedTopic, or the default extracted topic
// when it is empty.
func NewPipeline(svc Service, pub kafka.Publisher, extractedTopic string, log logging.Logger, opts ...PipelineOption) *Pipeline {
	if extractedTopic == "" {
		extractedTopic = kafka.TopicCaseExtracted
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	p := &Pipeline{
		service:        svc,
		publisher:      pub,
		extractedTopic: extractedTopic,
		logger:         log.Named("pipeline"),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Handle is a kafka.MessageHandler.
func (p *Pipeline) Handle(ctx context.Context, msg *kafka.Message) error {
	prometheus.RecordMessage(p.metrics, msg.Topic, "consumed")

	env, err := kafka.EnvelopeFromMessage(msg)
	if err != nil {
		return p.fail(msg, kafka.Permanent(err))
	}
	var payload kafka.JudgmentReceivedPayload
	if err := env.DecodePayload(&payload); err != nil {
		return p.fail(msg, kafka.Permanent(err))
	}

	// Extraction is deterministic, so a failed build fails again on redelivery.
	res, err := p.service.Build(ctx, payload.Judgment)
	if err != nil {
		return p.fail(msg, kafka.Permanent(err))
	}
	if p.bucketer != nil {
		p.bucketer.Add(res)
	}

	cats := res.Categories()
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = string(c)
	}
	out, err := kafka.NewEventEnvelope(kafka.EventCaseExtracted, SourceName, kafka.CaseExtractedPayload{
		SourceEventID: env.EventID,
		Record:        res.Record,
		Categories:    names,
		ExtractedAt:   time.Now().UTC(),
	})
	if err != nil {
		return p.fail(msg, kafka.Permanent(err))
	}
	out.TraceID = env.TraceID
	if out.TraceID == "" {
		out.TraceID = env.EventID
	}

	pm, err := out.ToMessage(p.extractedTopic, res.Record.CaseNumber)
	if err != nil {
		return p.fail(msg, kafka.Permanent(err))
	}
	if err := p.publisher.Publish(ctx, pm); err != nil {
		return p.fail(msg, err)
	}
	prometheus.RecordMessage(p.metrics, p.extractedTopic, "produced")
	p.logger.Debug("case extracted",
		logging.String("case", res.Record.CaseNumber),
		logging.String("category", string(res.Record.Category)),
		logging.Int("sections", len(res.Record.Sections)))
	return nil
}

func (p *Pipeline) fail(msg *kafka.Message, err error) error {
	prometheus.RecordMessage(p.metrics, msg.Topic, "failed")
	p.logger.Warn("judgment event failed",
		logging.String("topic", msg.Topic),
		logging.Int64("offset", msg.Offset),
		logging.Err(err))
	return err
}
