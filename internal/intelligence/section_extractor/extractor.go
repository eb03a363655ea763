// Package section_extractor finds Indian Penal Code section citations in
// judgment text, resolves each to its offense metadata and marks a single
// primary citation.
package section_extractor

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/turtacn/LegalLens/internal/intelligence/lexicon"
	"github.com/turtacn/LegalLens/internal/intelligence/textnorm"
	"github.com/turtacn/LegalLens/pkg/types/legal"
)

// ---------------------------------------------------------------------------
// Patterns
// ---------------------------------------------------------------------------

// Abbreviation is the token the statute name is rewritten to before matching.
const Abbreviation = "IPC"

var (
	fullNameRe  = regexp.MustCompile(`(?i)\bindian\s+penal\s+code\b`)
	shortNameRe = regexp.MustCompile(`(?i)\bpenal\s+code\b`)

	// Orderings: "Section <tokens> of IPC", "IPC Section <tokens>" and
	// "under Section <tokens> of IPC". The token run is permissive; pieces
	// are validated after splitting.
	citationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:sections?|secs?|ss|s|u/ss|u/s)\b\.?\s*([\d\w\s,/()]+?)\s+(?:of\s+(?:the\s+)?)?IPC\b`),
		regexp.MustCompile(`(?i)\bIPC\s+(?:sections?|secs?|ss|s)\b\.?\s*([\d\w\s,/()]+)`),
		regexp.MustCompile(`(?i)\bunder\s+(?:sections?|secs?|ss|s)\b\.?\s*([\d\w\s,/()]+?)\s+(?:of\s+(?:the\s+)?)?IPC\b`),
	}

	pieceSplitRe  = regexp.MustCompile(`[,/]| and | read with `)
	piecePrefixRe = regexp.MustCompile(`(?i)^(?:sections?|secs?|ss|s)\b\.?\s*`)
	pieceShapeRe  = regexp.MustCompile(`^\d+[A-Za-z0-9()]*$`)
)

// ---------------------------------------------------------------------------
// Extractor
// ---------------------------------------------------------------------------

// Extractor turns judgment text into section references.
type Extractor interface {
	// Extract never fails; text without citations yields an empty slice.
	Extract(text string) []legal.StatuteSectionReference
}

type extractorImpl struct {
	lex             *lexicon.Lexicon
	keywordMatcher  *textnorm.PhraseMatcher
	keywordSections []string
}

// NewExtractor builds an Extractor over lex. A nil lex means lexicon.Default().
func NewExtractor(lex *lexicon.Lexicon) Extractor {
	if lex == nil {
		lex = lexicon.Default()
	}
	keywords := make([]string, 0, len(lex.KeywordSections))
	sections := make([]string, 0, len(lex.KeywordSections))
	for _, ks := range lex.KeywordSections {
		keywords = append(keywords, ks.Keyword)
		sections = append(sections, ks.Section)
	}
	return &extractorImpl{
		lex:             lex,
		keywordMatcher:  textnorm.NewPhraseMatcher(keywords),
		keywordSections: sections,
	}
}

func (e *extractorImpl) Extract(text string) []legal.StatuteSectionReference {
	raw := e.rawSections(text)
	if len(raw) == 0 {
		return []legal.StatuteSectionReference{}
	}

	primary := SelectPrimary(raw, e.lex.Priority)
	out := make([]legal.StatuteSectionReference, 0, len(raw))
	for _, sec := range raw {
		off := e.lex.Resolve(sec)
		out = append(out, legal.StatuteSectionReference{
			Label:           fmt.Sprintf("Section %s %s", sec, Abbreviation),
			SectionNumber:   sec,
			OffenseName:     off.Name,
			OffenseCategory: off.Category,
			IsPrimary:       sec == primary,
		})
	}
	return out
}

// rawSections returns the sorted, de-duplicated section numbers cited in
// text, falling back to offense keywords when no citation matches.
func (e *extractorImpl) rawSections(text string) []string {
	set := make(map[string]struct{})
	for _, s := range CitedSections(text) {
		set[s] = struct{}{}
	}
	if len(set) == 0 {
		for _, idx := range e.keywordMatcher.MatchFolded(textnorm.Fold(text)) {
			set[e.keywordSections[idx]] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// CitedSections applies the citation patterns to text and returns every
// well-formed section number found, in match order, possibly repeated.
// Trailing sub-clause letters are upper-cased so "498a" and "498A" agree.
func CitedSections(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	t := fullNameRe.ReplaceAllString(text, Abbreviation)
	t = shortNameRe.ReplaceAllString(t, Abbreviation)

	var out []string
	for _, re := range citationPatterns {
		for _, m := range re.FindAllStringSubmatch(t, -1) {
			for _, piece := range pieceSplitRe.Split(m[1], -1) {
				piece = strings.TrimSpace(piece)
				piece = piecePrefixRe.ReplaceAllString(piece, "")
				if pieceShapeRe.MatchString(piece) {
					out = append(out, strings.ToUpper(piece))
				}
			}
		}
	}
	return out
}

// SelectPrimary returns the first priority entry present in raw, or the
// lexicographically smallest member of raw. Empty raw yields "".
func SelectPrimary(raw []string, priority []string) string {
	if len(raw) == 0 {
		return ""
	}
	present := make(map[string]struct{}, len(raw))
	smallest := raw[0]
	for _, s := range raw {
		present[s] = struct{}{}
		if s < smallest {
			smallest = s
		}
	}
	for _, p := range priority {
		if _, ok := present[p]; ok {
			return p
		}
	}
	return smallest
}
