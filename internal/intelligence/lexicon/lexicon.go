package lexicon

import "strings"

// Lexicon bundles every table a component may need. A Lexicon is never
// modified after construction; share it freely between goroutines.
type Lexicon struct {
	Offenses          map[string]Offense
	Priority          []string
	KeywordSections   []KeywordSection
	CriminalKeywords  []string
	TrafficKeywords   []string
	CivilKeywords     []string
	SummaryVocabulary []string
}

// Default returns a copy of the built-in tables.
func Default() *Lexicon {
	off := make(map[string]Offense, len(offenses))
	for k, v := range offenses {
		off[k] = v
	}
	return &Lexicon{
		Offenses:          off,
		Priority:          clone(priority),
		KeywordSections:   append([]KeywordSection(nil), keywordSections...),
		CriminalKeywords:  clone(criminalKeywords),
		TrafficKeywords:   clone(trafficKeywords),
		CivilKeywords:     clone(civilKeywords),
		SummaryVocabulary: clone(summaryVocabulary),
	}
}

// Resolve returns the offense for section, or UnknownOffense.
func (l *Lexicon) Resolve(section string) Offense {
	if o, ok := l.Offenses[strings.ToUpper(section)]; ok {
		return o
	}
	return UnknownOffense
}

// AllKeywords is the union of the three category lists in criminal,
// traffic, civil order. Duplicates across lists are kept once.
func (l *Lexicon) AllKeywords() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, list := range [][]string{l.CriminalKeywords, l.TrafficKeywords, l.CivilKeywords} {
		for _, kw := range list {
			if _, ok := seen[kw]; ok {
				continue
			}
			seen[kw] = struct{}{}
			out = append(out, kw)
		}
	}
	return out
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}
