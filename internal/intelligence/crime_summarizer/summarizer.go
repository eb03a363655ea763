// Package crime_summarizer picks the most informative sentences of a
// judgment as a short crime narrative.
package crime_summarizer

import (
	"sort"
	"strings"

	"github.com/turtacn/LegalLens/internal/intelligence/lexicon"
	"github.com/turtacn/LegalLens/internal/intelligence/textnorm"
)

// Placeholder is returned when neither the text nor the metadata has content.
const Placeholder = "Crime details not available."

// Options tunes sentence selection.
type Options struct {
	MinSourceLen   int // text shorter than this falls back to metadata
	MinSentenceLen int
	TopSentences   int
	MaxLen         int
	FallbackLen    int // used when no sentence qualifies
}

// DefaultOptions returns the standard selection settings.
func DefaultOptions() Options {
	return Options{
		MinSourceLen:   200,
		MinSentenceLen: 30,
		TopSentences:   4,
		MaxLen:         1000,
		FallbackLen:    500,
	}
}

// Summarizer scores sentences by how many vocabulary terms they contain.
type Summarizer struct {
	vocabulary []string
	opts       Options
}

// NewSummarizer uses lex's summary vocabulary; nil means lexicon.Default().
func NewSummarizer(lex *lexicon.Lexicon, opts Options) *Summarizer {
	if lex == nil {
		lex = lexicon.Default()
	}
	vocab := make([]string, 0, len(lex.SummaryVocabulary))
	for _, v := range lex.SummaryVocabulary {
		if v = textnorm.Fold(strings.TrimSpace(v)); v != "" {
			vocab = append(vocab, v)
		}
	}
	return &Summarizer{vocabulary: vocab, opts: opts}
}

type scoredSentence struct {
	score int
	text  string
}

// Summarize prefers text when it is long enough, otherwise meta.
func (s *Summarizer) Summarize(text, meta string) string {
	source := strings.TrimSpace(meta)
	if textnorm.RuneLen(text) > s.opts.MinSourceLen {
		source = strings.TrimSpace(text)
	}
	if source == "" {
		return Placeholder
	}

	var scored []scoredSentence
	for _, sent := range textnorm.SplitSentences(source) {
		sent = strings.TrimSpace(sent)
		if textnorm.RuneLen(sent) < s.opts.MinSentenceLen {
			continue
		}
		scored = append(scored, scoredSentence{score: s.Score(sent), text: sent})
	}
	if len(scored) == 0 {
		return textnorm.Truncate(source, s.opts.FallbackLen)
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })
	if len(scored) > s.opts.TopSentences {
		scored = scored[:s.opts.TopSentences]
	}
	parts := make([]string, len(scored))
	for i, sc := range scored {
		parts[i] = sc.text
	}
	return textnorm.Truncate(strings.Join(parts, " "), s.opts.MaxLen)
}

// Score counts the distinct vocabulary terms contained in sentence. Terms
// match as substrings.
func (s *Summarizer) Score(sentence string) int {
	folded := textnorm.Fold(sentence)
	n := 0
	for _, v := range s.vocabulary {
		if strings.Contains(folded, v) {
			n++
		}
	}
	return n
}
