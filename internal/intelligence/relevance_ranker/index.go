package relevance_ranker

import (
	"strings"

	"github.com/turtacn/LegalLens/internal/intelligence/textnorm"
	"github.com/turtacn/LegalLens/pkg/types/legal"
)

type preparedEntry struct {
	entry        legal.StatuteCorpusEntry
	titleTokens  map[string]struct{}
	descTokens   map[string]struct{}
	lowerTitle   string
	lowerSection string
	lowerAct     string
}

func prepare(e legal.StatuteCorpusEntry) preparedEntry {
	return preparedEntry{
		entry:        e,
		titleTokens:  textnorm.TokenSet(e.Title),
		descTokens:   textnorm.TokenSet(e.Description),
		lowerTitle:   textnorm.Fold(e.Title),
		lowerSection: textnorm.Fold(strings.TrimSpace(e.SectionNumber)),
		lowerAct:     textnorm.Fold(strings.TrimSpace(e.Act)),
	}
}

// Index is a corpus with its per-entry token sets computed once. It is
// read-only after NewIndex and may be shared between goroutines.
type Index struct {
	entries []preparedEntry
}

// NewIndex prepares corpus in order.
func NewIndex(corpus []legal.StatuteCorpusEntry) *Index {
	idx := &Index{entries: make([]preparedEntry, len(corpus))}
	for i, e := range corpus {
		idx.entries[i] = prepare(e)
	}
	return idx
}

// Len is the number of indexed entries.
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.entries)
}

// Entries returns a copy of the indexed entries.
func (i *Index) Entries() []legal.StatuteCorpusEntry {
	out := make([]legal.StatuteCorpusEntry, i.Len())
	for n := range out {
		out[n] = i.entries[n].entry
	}
	return out
}
