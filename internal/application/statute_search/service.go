// Package statute_search answers free-text relevance queries against the
// statute corpus and the historical case corpus.
package statute_search

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/turtacn/LegalLens/internal/infrastructure/corpus"
	"github.com/turtacn/LegalLens/internal/infrastructure/database/redis"
	"github.com/turtacn/LegalLens/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/LegalLens/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/LegalLens/internal/intelligence/relevance_ranker"
	"github.com/turtacn/LegalLens/internal/intelligence/textnorm"
	"github.com/turtacn/LegalLens/pkg/errors"
	"github.com/turtacn/LegalLens/pkg/types/legal"
)

// Corpus names used in results, cache keys and metrics.
const (
	CorpusStatutes   = "statutes"
	CorpusPrecedents = "precedents"
)

// SnapshotProvider yields the current corpus generation. *corpus.Store
// implements it.
type SnapshotProvider interface {
	Current() (*corpus.Snapshot, error)
}

// SearchResult is a ranked answer plus its rendered text.
type SearchResult struct {
	Corpus  string              `json:"corpus"`
	Query   string              `json:"query"`
	Limit   int                 `json:"limit"`
	Version string              `json:"corpus_version"`
	Matches []legal.RankedMatch `json:"matches"`
	// Cases holds the full record of each precedent match, in match order.
	Cases  []legal.CaseRecord `json:"cases,omitempty"`
	Text   string             `json:"text"`
	Cached bool               `json:"cached"`
}

// Service ranks the loaded corpora.
type Service interface {
	SearchStatutes(ctx context.Context, query string, limit int) (*SearchResult, error)
	SearchPrecedents(ctx context.Context, query string, limit int) (*SearchResult, error)
}

// Options tunes limits and caching.
type Options struct {
	Weights          relevance_ranker.Weights
	MaxLimit         int
	DescriptionLimit int
	CacheTTL         time.Duration
}

// DefaultOptions mirrors the configuration defaults.
func DefaultOptions() Options {
	return Options{
		Weights:          relevance_ranker.DefaultWeights(),
		MaxLimit:         100,
		DescriptionLimit: 400,
		CacheTTL:         10 * time.Minute,
	}
}

type serviceImpl struct {
	corpora SnapshotProvider
	ranker  *relevance_ranker.Ranker
	cache   redis.Cache
	opts    Options
	metrics *prometheus.AppMetrics
	logger  logging.Logger
}

// NewService builds the search service. cache and metrics may be nil.
func NewService(corpora SnapshotProvider, cache redis.Cache, opts Options, metrics *prometheus.AppMetrics, logger logging.Logger) Service {
	if opts.MaxLimit < 1 {
		opts.MaxLimit = DefaultOptions().MaxLimit
	}
	if opts.DescriptionLimit < 1 {
		opts.DescriptionLimit = DefaultOptions().DescriptionLimit
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &serviceImpl{
		corpora: corpora,
		ranker:  relevance_ranker.NewRanker(opts.Weights, textnorm.StopWords{}),
		cache:   cache,
		opts:    opts,
		metrics: metrics,
		logger:  logger.Named("search"),
	}
}

func (s *serviceImpl) SearchStatutes(ctx context.Context, query string, limit int) (*SearchResult, error) {
	res, err := s.search(ctx, CorpusStatutes, query, limit, func(snap *corpus.Snapshot) *relevance_ranker.Index {
		return snap.Statutes
	})
	if err != nil {
		return nil, err
	}
	res.Text = relevance_ranker.FormatStatutes(res.Matches, s.opts.DescriptionLimit)
	return res, nil
}

func (s *serviceImpl) SearchPrecedents(ctx context.Context, query string, limit int) (*SearchResult, error) {
	var snap *corpus.Snapshot
	res, err := s.search(ctx, CorpusPrecedents, query, limit, func(sn *corpus.Snapshot) *relevance_ranker.Index {
		snap = sn
		return sn.Precedents
	})
	if err != nil {
		return nil, err
	}
	res.Cases = make([]legal.CaseRecord, 0, len(res.Matches))
	for _, m := range res.Matches {
		if c, ok := snap.Cases[m.Entry.SectionNumber]; ok {
			res.Cases = append(res.Cases, c)
		}
	}
	res.Text = FormatPrecedents(res.Matches, snap.Cases)
	return res, nil
}

func (s *serviceImpl) search(ctx context.Context, name, query string, limit int, pick func(*corpus.Snapshot) *relevance_ranker.Index) (*SearchResult, error) {
	if limit < 1 || limit > s.opts.MaxLimit {
		return nil, errors.Newf(errors.ErrCodeRankInvalidLimit, "limit %d is outside [1, %d]", limit, s.opts.MaxLimit)
	}
	snap, err := s.corpora.Current()
	if err != nil {
		prometheus.RecordError(s.metrics, "search", string(errors.ErrCodeRankCorpusUnavailable))
		return nil, errors.Wrap(err, errors.ErrCodeRankCorpusUnavailable, "corpus is not loaded").WithDetail(name)
	}
	idx := pick(snap)

	start := time.Now()
	res := &SearchResult{Corpus: name, Query: query, Limit: limit, Version: snap.Version}
	if strings.TrimSpace(query) == "" {
		res.Matches = []legal.RankedMatch{}
		return res, nil
	}
	res.Matches, res.Cached = s.rank(ctx, name, snap.Version, query, limit, idx)
	prometheus.RecordRank(s.metrics, name, len(res.Matches), time.Since(start))

	s.logger.Debug("ranked",
		logging.String("corpus", name),
		logging.Int("limit", limit),
		logging.Int("matches", len(res.Matches)),
		logging.Bool("cached", res.Cached))
	return res, nil
}

// rank consults the cache when one is configured. Cache failures fall back
// to ranking in process.
func (s *serviceImpl) rank(ctx context.Context, name, version, query string, limit int, idx *relevance_ranker.Index) ([]legal.RankedMatch, bool) {
	compute := func() []legal.RankedMatch {
		m := s.ranker.RankIndex(query, idx, limit)
		if m == nil {
			m = []legal.RankedMatch{}
		}
		return m
	}
	if s.cache == nil {
		return compute(), false
	}

	key := CacheKey(name, version, query, limit)
	loaded := false
	var matches []legal.RankedMatch
	err := s.cache.GetOrSet(ctx, key, &matches, s.opts.CacheTTL, func(context.Context) (interface{}, error) {
		loaded = true
		return compute(), nil
	})
	if err != nil {
		s.logger.Warn("rank cache unavailable", logging.String("key", key), logging.Err(err))
		prometheus.RecordCacheAccess(s.metrics, name, false)
		return compute(), false
	}
	prometheus.RecordCacheAccess(s.metrics, name, !loaded)
	if matches == nil {
		matches = []legal.RankedMatch{}
	}
	return matches, !loaded
}

// CacheKey identifies a ranked result. The folded query is hashed so keys
// stay short; the corpus version isolates generations.
func CacheKey(corpusName, version, query string, limit int) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(textnorm.Fold(strings.TrimSpace(query))))
	return fmt.Sprintf("rank:%s:%s:%d:%016x", corpusName, version, limit, h.Sum64())
}
