// Package casebuild turns raw judgments into CaseRecords and files them into
// category buckets for dataset output.
package casebuild

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/turtacn/LegalLens/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/LegalLens/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/LegalLens/internal/intelligence/case_classifier"
	"github.com/turtacn/LegalLens/internal/intelligence/crime_summarizer"
	"github.com/turtacn/LegalLens/internal/intelligence/lexicon"
	"github.com/turtacn/LegalLens/internal/intelligence/section_extractor"
	"github.com/turtacn/LegalLens/internal/intelligence/textnorm"
	"github.com/turtacn/LegalLens/internal/intelligence/verdict_extractor"
	"github.com/turtacn/LegalLens/pkg/errors"
	"github.com/turtacn/LegalLens/pkg/types/legal"
)

const metaSeparator = " | "

// Result is a built record with the category signals that produced it.
type Result struct {
	Record         legal.CaseRecord               `json:"record"`
	Classification case_classifier.Classification `json:"classification"`
}

// Categories lists every bucket the record qualifies for.
func (r *Result) Categories() []legal.Category {
	return r.Classification.Categories()
}

// BatchResult is one slot of a batch build. Exactly one of Result and Err
// is set.
type BatchResult struct {
	Result *Result
	Err    error
}

// Service builds case records from judgments. A judgment with no usable
// text still yields a placeholder record; only undecodable markup fails.
type Service interface {
	Build(ctx context.Context, in legal.JudgmentInput) (*Result, error)
	// BuildBatch builds inputs concurrently; out[i] corresponds to inputs[i].
	// The returned error is set only when the whole batch was abandoned.
	BuildBatch(ctx context.Context, inputs []legal.JudgmentInput) ([]BatchResult, error)
}

// Config holds the service tunables.
type Config struct {
	Workers    int
	Summarizer crime_summarizer.Options
}

type serviceImpl struct {
	markup     func(string) (string, error)
	sections   section_extractor.Extractor
	verdicts   *verdict_extractor.Extractor
	classifier *case_classifier.Classifier
	summarizer *crime_summarizer.Summarizer
	workers    int
	metrics    *prometheus.AppMetrics
	logger     logging.Logger
}

// NewService compiles every extractor against lex; nil means the default
// lexicon.
func NewService(lex *lexicon.Lexicon, cfg Config, metrics *prometheus.AppMetrics, log logging.Logger) Service {
	if lex == nil {
		lex = lexicon.Default()
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.Summarizer == (crime_summarizer.Options{}) {
		cfg.Summarizer = crime_summarizer.DefaultOptions()
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &serviceImpl{
		markup:     textnorm.HTMLToText,
		sections:   section_extractor.NewExtractor(lex),
		verdicts:   verdict_extractor.NewExtractor(),
		classifier: case_classifier.NewClassifier(lex),
		summarizer: crime_summarizer.NewSummarizer(lex, cfg.Summarizer),
		workers:    cfg.Workers,
		metrics:    metrics,
		logger:     log.Named("casebuild"),
	}
}

func (s *serviceImpl) Build(ctx context.Context, in legal.JudgmentInput) (*Result, error) {
	start := time.Now()
	res, err := s.build(in)
	if err != nil {
		prometheus.RecordError(s.metrics, "casebuild", string(errors.GetCode(err)))
		return nil, err
	}
	s.record(res, "single", start)
	return res, nil
}

func (s *serviceImpl) build(in legal.JudgmentInput) (*Result, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" && strings.TrimSpace(in.RawHTML) != "" {
		plain, err := s.markup(in.RawHTML)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeExtractBadPayload, "judgment markup could not be parsed").WithDetail(CaseNumber(in))
		}
		text = plain
	}
	meta := MetaText(in)
	summaryMeta := meta
	if strings.Trim(meta, " |") == "" {
		summaryMeta = ""
	}

	combined := meta + "\n" + text
	cls := s.classifier.Classify(combined)
	rec := legal.CaseRecord{
		CaseNumber:    CaseNumber(in),
		Sections:      s.sections.Extract(combined),
		CrimeKeywords: s.classifier.Keywords(combined),
		CrimeDetails:  s.summarizer.Summarize(text, summaryMeta),
		Verdict:       s.verdicts.Extract(text, in.DisposalNature),
		Category:      cls.Primary(),
	}
	return &Result{Record: rec, Classification: cls}, nil
}

func (s *serviceImpl) record(res *Result, mode string, start time.Time) {
	if s.metrics == nil {
		return
	}
	cats := res.Categories()
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = string(c)
	}
	prometheus.RecordExtraction(s.metrics, names, len(res.Record.Sections))
	s.metrics.ExtractionDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())
}

func (s *serviceImpl) BuildBatch(ctx context.Context, inputs []legal.JudgmentInput) ([]BatchResult, error) {
	out := make([]BatchResult, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	var rejected int
	for i := range inputs {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			res, err := s.build(inputs[i])
			if err != nil {
				out[i].Err = err
				return nil
			}
			s.record(res, "batch", start)
			out[i].Result = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeExtractBatchFailed, "batch extraction cancelled")
	}
	for i, r := range out {
		if r.Err != nil {
			rejected++
			prometheus.RecordError(s.metrics, "casebuild", string(errors.GetCode(r.Err)))
			s.logger.Warn("judgment skipped",
				logging.Int("index", i),
				logging.String("case", CaseNumber(inputs[i])),
				logging.Err(r.Err))
		}
	}
	s.logger.Info("batch built", logging.Int("inputs", len(inputs)), logging.Int("rejected", rejected))
	return out, nil
}

// CaseNumber picks the CNR, then the title, then a year-based fallback.
// The literal "nan" counts as absent.
func CaseNumber(in legal.JudgmentInput) string {
	if v := present(in.CNR); v != "" {
		return v
	}
	if v := present(in.Title); v != "" {
		return v
	}
	if in.Year > 0 {
		return fmt.Sprintf("SC Case / Year %d", in.Year)
	}
	return "SC Case"
}

func present(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "nan") {
		return ""
	}
	return s
}

// MetaText joins title, description, disposal and citation with " | ".
// Absent fields stay as empty slots.
func MetaText(in legal.JudgmentInput) string {
	return strings.Join([]string{
		present(in.Title),
		present(in.Description),
		present(in.DisposalNature),
		present(in.Citation),
	}, metaSeparator)
}
