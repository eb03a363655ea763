package corpus

import (
	"bytes"
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/turtacn/LegalLens/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/LegalLens/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/LegalLens/internal/intelligence/relevance_ranker"
	"github.com/turtacn/LegalLens/pkg/errors"
	"github.com/turtacn/LegalLens/pkg/types/legal"
)

var ErrNotLoaded = errors.New(errors.ErrCodeCorpusNotLoaded, "corpus not loaded")

// Snapshot is one immutable generation of the corpus.
type Snapshot struct {
	Statutes *relevance_ranker.Index
	// Cases holds the historical cases that made it into Precedents, keyed
	// by case number.
	Cases      map[string]legal.CaseRecord
	Precedents *relevance_ranker.Index
	Version    string
	LoadedAt   time.Time
	Failed     []FileError
}

// Source produces the raw corpus. LoadCases may return nil when no case
// dataset is configured.
type Source interface {
	LoadStatutes(ctx context.Context) (*LoadResult, error)
	LoadCases(ctx context.Context) (*legal.Dataset, error)
	String() string
}

// Store holds the current snapshot. Readers never block; Reload swaps the
// pointer once the new generation is fully built.
type Store struct {
	source  Source
	logger  logging.Logger
	metrics *prometheus.AppMetrics

	current atomic.Pointer[Snapshot]
	reload  sync.Mutex
}

func NewStore(source Source, log logging.Logger, metrics *prometheus.AppMetrics) *Store {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Store{source: source, logger: log.Named("corpus"), metrics: metrics}
}

// Current returns the loaded snapshot or ErrNotLoaded.
func (s *Store) Current() (*Snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrNotLoaded
	}
	return snap, nil
}

// Loaded reports whether a snapshot is available.
func (s *Store) Loaded() bool { return s.current.Load() != nil }

// Reload builds a new snapshot from the source and installs it. On failure
// the previous snapshot stays current.
func (s *Store) Reload(ctx context.Context) (*Snapshot, error) {
	s.reload.Lock()
	defer s.reload.Unlock()

	start := time.Now()
	res, err := s.source.LoadStatutes(ctx)
	if err != nil {
		prometheus.RecordCorpusLoad(s.metrics, nil, err)
		s.logger.Error("statute load failed", logging.String("source", s.source.String()), logging.Err(err))
		return nil, err
	}
	for _, f := range res.Failed {
		s.logger.Warn("statute file skipped", logging.String("file", f.Name), logging.Err(f.Err))
	}

	var cases []legal.CaseRecord
	ds, err := s.source.LoadCases(ctx)
	switch {
	case err != nil:
		s.logger.Warn("case dataset not loaded; precedent search will be empty", logging.Err(err))
	case ds != nil:
		cases = ds.Cases
	}

	snap := NewSnapshot(res.Entries, cases)
	snap.Failed = res.Failed
	s.current.Store(snap)

	byAct := make(map[string]int)
	for _, e := range res.Entries {
		byAct[e.Act]++
	}
	prometheus.RecordCorpusLoad(s.metrics, byAct, nil)
	s.logger.Info("corpus loaded",
		logging.String("source", s.source.String()),
		logging.String("version", snap.Version),
		logging.Int("statutes", snap.Statutes.Len()),
		logging.Int("precedents", snap.Precedents.Len()),
		logging.Int("files", res.Files),
		logging.Duration("took", time.Since(start)))
	return snap, nil
}

// NewSnapshot indexes statutes and cases. Cases without crime details are
// left out of the precedent index; the first record wins on a repeated case
// number.
func NewSnapshot(statutes []legal.StatuteCorpusEntry, cases []legal.CaseRecord) *Snapshot {
	byNumber := make(map[string]legal.CaseRecord, len(cases))
	entries := make([]legal.StatuteCorpusEntry, 0, len(cases))
	for _, c := range cases {
		if strings.TrimSpace(c.CrimeDetails) == "" {
			continue
		}
		if _, dup := byNumber[c.CaseNumber]; dup {
			continue
		}
		byNumber[c.CaseNumber] = c
		entries = append(entries, CaseEntry(c))
	}
	return &Snapshot{
		Statutes:   relevance_ranker.NewIndex(statutes),
		Cases:      byNumber,
		Precedents: relevance_ranker.NewIndex(entries),
		Version:    version(statutes, entries),
		LoadedAt:   time.Now().UTC(),
	}
}

// CaseEntry presents a case record as a rankable entry: the case number is
// the section, the offense names are the title and the crime details are
// the description. Act stays empty so the act-name signal never fires for
// precedents.
func CaseEntry(c legal.CaseRecord) legal.StatuteCorpusEntry {
	names := make([]string, 0, len(c.Sections))
	for _, s := range c.Sections {
		names = append(names, s.OffenseName)
	}
	return legal.StatuteCorpusEntry{
		SectionNumber: c.CaseNumber,
		Title:         strings.Join(names, ", "),
		Description:   c.CrimeDetails,
	}
}

// version is a content hash, so replicas that load the same files agree on
// it and can share cached results.
func version(parts ...[]legal.StatuteCorpusEntry) string {
	h := fnv.New64a()
	var buf bytes.Buffer
	for _, entries := range parts {
		for _, e := range entries {
			buf.Reset()
			buf.WriteString(e.Act)
			buf.WriteByte(0)
			buf.WriteString(e.SectionNumber)
			buf.WriteByte(0)
			buf.WriteString(e.Title)
			buf.WriteByte(0)
			buf.WriteString(e.Description)
			buf.WriteByte(0)
			_, _ = h.Write(buf.Bytes())
		}
		_, _ = h.Write([]byte{0xff})
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
