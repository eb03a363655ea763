// Package textnorm holds the text utilities shared by the extraction and
// ranking engines: Unicode folding, alphanumeric tokenization, stop-word
// sets, sentence segmentation, word-boundary phrase matching and HTML
// stripping. Every function is pure and safe for concurrent use.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Fold applies NFKC compatibility normalization and lower-cases s, so that
// full-width digits and ligatures compare equal to their ASCII forms.
func Fold(s string) string {
	return strings.ToLower(norm.NFKC.String(s))
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Tokenize splits s into lower-cased runs of letters and digits. Every other
// rune is a separator.
func Tokenize(s string) []string {
	return strings.FieldsFunc(Fold(s), func(r rune) bool { return !isAlnum(r) })
}

// TokenSet returns the distinct tokens of s.
func TokenSet(s string) map[string]struct{} {
	tokens := Tokenize(s)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// Bigrams returns every adjacent token pair joined by a single space, in
// order, duplicates included.
func Bigrams(tokens []string) []string {
	if len(tokens) < 2 {
		return nil
	}
	out := make([]string, 0, len(tokens)-1)
	for i := 0; i+1 < len(tokens); i++ {
		out = append(out, tokens[i]+" "+tokens[i+1])
	}
	return out
}

// Unique returns tokens with later duplicates removed, preserving first-seen order.
func Unique(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// RuneLen is the length of s in runes.
func RuneLen(s string) int {
	return len([]rune(s))
}
