package textnorm

import (
	"unicode"
	"unicode/utf8"
)

// SplitSentences cuts s after every '.', '!' or '?' that is followed by
// whitespace. The whitespace run is dropped; nothing else is trimmed.
func SplitSentences(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	start := 0
	var prev rune
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if unicode.IsSpace(r) && isTerminal(prev) {
			end := i
			j := i
			for j < len(s) {
				r2, sz := utf8.DecodeRuneInString(s[j:])
				if !unicode.IsSpace(r2) {
					break
				}
				j += sz
			}
			out = append(out, s[start:end])
			start = j
			i = j
			prev = 0
			continue
		}
		prev = r
		i += size
	}
	return append(out, s[start:])
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
