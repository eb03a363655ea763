package textnorm

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	ahocorasick "github.com/cloudflare/ahocorasick"
)

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// atBoundary reports a word boundary at byte offset i of s: exactly one of
// the runes on either side is a word rune. Text edges count as non-word.
func atBoundary(s string, i int) bool {
	before, after := false, false
	if i > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:i])
		before = isWordRune(r)
	}
	if i < len(s) {
		r, _ := utf8.DecodeRuneInString(s[i:])
		after = isWordRune(r)
	}
	return before != after
}

// ContainsWord reports whether phrase occurs in text with a word boundary on
// both sides. Both arguments are expected to be folded already.
func ContainsWord(text, phrase string) bool {
	if phrase == "" {
		return false
	}
	offset := 0
	for {
		idx := strings.Index(text[offset:], phrase)
		if idx < 0 {
			return false
		}
		start := offset + idx
		end := start + len(phrase)
		if atBoundary(text, start) && atBoundary(text, end) {
			return true
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		offset = start + size
	}
}

// PhraseMatcher finds which of a fixed list of phrases occur in a text as
// whole words. An Aho-Corasick automaton narrows the candidates in one pass;
// each candidate is then confirmed with a boundary check.
type PhraseMatcher struct {
	phrases []string
	folded  []string

	mu sync.Mutex // the automaton keeps per-scan state
	ac *ahocorasick.Matcher
}

// NewPhraseMatcher compiles phrases. Empty phrases are dropped.
func NewPhraseMatcher(phrases []string) *PhraseMatcher {
	m := &PhraseMatcher{}
	for _, p := range phrases {
		f := Fold(strings.TrimSpace(p))
		if f == "" {
			continue
		}
		m.phrases = append(m.phrases, p)
		m.folded = append(m.folded, f)
	}
	m.ac = ahocorasick.NewStringMatcher(m.folded)
	return m
}

// Phrases returns the compiled phrases in their original spelling.
func (m *PhraseMatcher) Phrases() []string {
	out := make([]string, len(m.phrases))
	copy(out, m.phrases)
	return out
}

// MatchFolded returns the indices of phrases present as whole words in the
// already folded text, in phrase-list order.
func (m *PhraseMatcher) MatchFolded(folded string) []int {
	if folded == "" || len(m.folded) == 0 {
		return nil
	}
	m.mu.Lock()
	hits := m.ac.Match([]byte(folded))
	m.mu.Unlock()

	present := make(map[int]struct{}, len(hits))
	for _, h := range hits {
		if h < len(m.folded) && ContainsWord(folded, m.folded[h]) {
			present[h] = struct{}{}
		}
	}
	out := make([]int, 0, len(present))
	for i := range m.folded {
		if _, ok := present[i]; ok {
			out = append(out, i)
		}
	}
	return out
}

// Match folds text and returns the phrases present as whole words, in
// phrase-list order and original spelling.
func (m *PhraseMatcher) Match(text string) []string {
	idx := m.MatchFolded(Fold(text))
	out := make([]string, 0, len(idx))
	for _, i := range idx {
		out = append(out, m.phrases[i])
	}
	return out
}

// Any reports whether at least one phrase is present.
func (m *PhraseMatcher) Any(text string) bool {
	return len(m.MatchFolded(Fold(text))) > 0
}
