// Package relevance_ranker scores statute and case corpora against a free
// text query with five weighted lexical signals.
package relevance_ranker

import (
	"fmt"
	"sort"
	"strings"

	"github.com/turtacn/LegalLens/internal/intelligence/textnorm"
	"github.com/turtacn/LegalLens/pkg/types/legal"
)

// Weights are the points each signal contributes.
type Weights struct {
	Title       float64 `json:"title"`
	Description float64 `json:"description"`
	Phrase      float64 `json:"phrase"`
	Citation    float64 `json:"citation"`
	Act         float64 `json:"act"`
}

// DefaultWeights returns title 5, description 1, phrase 10, citation 50, act 20.
func DefaultWeights() Weights {
	return Weights{Title: 5, Description: 1, Phrase: 10, Citation: 50, Act: 20}
}

// Ranker is immutable and safe for concurrent use.
type Ranker struct {
	weights Weights
	stop    textnorm.StopWords
}

// NewRanker returns a Ranker. A zero StopWords means the default query set.
func NewRanker(weights Weights, stop textnorm.StopWords) *Ranker {
	if stop.Len() == 0 {
		stop = textnorm.DefaultQueryStopWords()
	}
	return &Ranker{weights: weights, stop: stop}
}

// Weights returns the configured weights.
func (r *Ranker) Weights() Weights { return r.weights }

// query is a parsed query: raw tokens for the act and phrase signals,
// keywords for the rest.
type query struct {
	raw      map[string]struct{}
	bigrams  []string
	keywords []string
	keyset   map[string]struct{}
}

func (r *Ranker) parse(q string) query {
	tokens := textnorm.Tokenize(q)
	raw := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		raw[t] = struct{}{}
	}
	keywords := textnorm.Unique(r.stop.Filter(tokens))
	keyset := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		keyset[k] = struct{}{}
	}
	return query{
		raw:      raw,
		bigrams:  textnorm.Unique(textnorm.Bigrams(tokens)),
		keywords: keywords,
		keyset:   keyset,
	}
}

// Keywords returns the distinct non-stop-word tokens of q in query order.
func (r *Ranker) Keywords(q string) []string {
	return r.parse(q).keywords
}

// Rank scores corpus against q and returns at most limit matches, best
// first. Ties keep corpus order. A query with no keywords, or a limit below
// one, yields an empty result.
func (r *Ranker) Rank(q string, corpus []legal.StatuteCorpusEntry, limit int) []legal.RankedMatch {
	return r.RankIndex(q, NewIndex(corpus), limit)
}

// RankIndex is Rank over a prepared Index.
func (r *Ranker) RankIndex(q string, idx *Index, limit int) []legal.RankedMatch {
	parsed := r.parse(q)
	if len(parsed.keywords) == 0 || limit < 1 || idx == nil {
		return []legal.RankedMatch{}
	}

	out := make([]legal.RankedMatch, 0)
	for i := range idx.entries {
		score, signals := r.score(parsed, &idx.entries[i])
		if score <= 0 {
			continue
		}
		out = append(out, legal.RankedMatch{
			Entry:     idx.entries[i].entry,
			Score:     score,
			Rationale: signals.String(),
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Score returns the score of a single entry; exposed for diagnostics.
func (r *Ranker) Score(q string, e legal.StatuteCorpusEntry) float64 {
	parsed := r.parse(q)
	if len(parsed.keywords) == 0 {
		return 0
	}
	p := prepare(e)
	s, _ := r.score(parsed, &p)
	return s
}

func (r *Ranker) score(q query, e *preparedEntry) (float64, signalSet) {
	var sig signalSet
	var score float64

	for _, k := range q.keywords {
		if _, ok := e.titleTokens[k]; ok {
			sig.title = append(sig.title, k)
			score += r.weights.Title
		}
		if _, ok := e.descTokens[k]; ok {
			sig.description = append(sig.description, k)
			score += r.weights.Description
		}
	}
	for _, bg := range q.bigrams {
		if strings.Contains(e.lowerTitle, bg) {
			sig.phrases = append(sig.phrases, bg)
			score += r.weights.Phrase
		}
	}
	if e.lowerSection != "" {
		if _, ok := q.keyset[e.lowerSection]; ok {
			sig.citation = e.entry.SectionNumber
			score += r.weights.Citation
		}
	}
	if e.lowerAct != "" {
		if _, ok := q.raw[e.lowerAct]; ok {
			sig.act = e.entry.Act
			score += r.weights.Act
		}
	}
	return score, sig
}

// signalSet records which signals fired for one entry.
type signalSet struct {
	title       []string
	description []string
	phrases     []string
	citation    string
	act         string
}

func (s signalSet) String() string {
	var parts []string
	if s.citation != "" {
		parts = append(parts, fmt.Sprintf("Exact citation %s", s.citation))
	}
	if s.act != "" {
		parts = append(parts, fmt.Sprintf("Act name %s", s.act))
	}
	if len(s.phrases) > 0 {
		quoted := make([]string, len(s.phrases))
		for i, p := range s.phrases {
			quoted[i] = `"` + p + `"`
		}
		parts = append(parts, "Phrase match: "+strings.Join(quoted, ", "))
	}
	if len(s.title) > 0 {
		parts = append(parts, "Title match: "+strings.Join(s.title, ", "))
	}
	if len(s.description) > 0 {
		parts = append(parts, "Description match: "+strings.Join(s.description, ", "))
	}
	return strings.Join(parts, "; ")
}
