package textnorm

import "strings"

// StopWords is an immutable set of tokens excluded from scoring.
type StopWords struct {
	set map[string]struct{}
}

// NewStopWords builds a set from one or more word lists. Words are folded
// the same way Tokenize folds text.
func NewStopWords(lists ...[]string) StopWords {
	set := make(map[string]struct{})
	for _, list := range lists {
		for _, w := range list {
			w = strings.TrimSpace(Fold(w))
			if w != "" {
				set[w] = struct{}{}
			}
		}
	}
	return StopWords{set: set}
}

// Contains reports whether token is a stop word.
func (s StopWords) Contains(token string) bool {
	_, ok := s.set[token]
	return ok
}

// Len is the number of distinct stop words.
func (s StopWords) Len() int { return len(s.set) }

// Filter returns tokens that are not stop words, in order.
func (s StopWords) Filter(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if !s.Contains(t) {
			out = append(out, t)
		}
	}
	return out
}

// FunctionWords are English closed-class words with no discriminative value.
var FunctionWords = []string{
	"a", "an", "the", "and", "or", "but", "if", "nor", "so", "than", "too", "very",
	"of", "in", "on", "at", "to", "for", "from", "by", "with", "about", "as", "into",
	"onto", "upon", "through", "over", "under", "between", "during", "before", "after",
	"above", "below", "up", "down", "out", "off", "again", "then", "once",
	"is", "are", "was", "were", "be", "been", "being", "am",
	"do", "does", "did", "has", "have", "had", "having",
	"it", "its", "this", "that", "these", "those", "there", "here",
	"i", "me", "my", "we", "our", "you", "your", "he", "him", "his", "she", "her",
	"they", "them", "their", "what", "which", "who", "whom", "whose",
	"when", "where", "why", "how", "not", "no", "can", "will", "just",
	"should", "would", "could", "may", "might", "must", "shall",
	"any", "all", "some", "such", "only", "own", "same", "both", "each", "few",
	"more", "most", "other", "also",
}

// LegalBoilerplate are words common to nearly every provision title.
var LegalBoilerplate = []string{
	"act", "acts", "section", "sections", "sec", "clause", "clauses", "sub",
	"punishment", "punishable", "punished", "offence", "offences", "offense", "offenses",
	"law", "laws", "code", "provision", "provisions", "rule", "rules", "chapter",
	"whoever", "person", "shall", "liable", "said", "thereof", "therein", "hereby",
}

// DefaultQueryStopWords is the stop set applied to ranker queries.
func DefaultQueryStopWords() StopWords {
	return NewStopWords(FunctionWords, LegalBoilerplate)
}
