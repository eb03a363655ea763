// Package case_classifier tags judgment text as criminal, traffic and/or
// civil and collects the category keywords it mentions.
package case_classifier

import (
	"sort"

	"github.com/turtacn/LegalLens/internal/intelligence/lexicon"
	"github.com/turtacn/LegalLens/internal/intelligence/textnorm"
	"github.com/turtacn/LegalLens/pkg/types/legal"
)

// Classification holds three independent category signals. More than one
// may be true.
type Classification struct {
	IsCriminal bool `json:"is_criminal"`
	IsTraffic  bool `json:"is_traffic"`
	IsCivil    bool `json:"is_civil"`
}

// Categories lists the categories whose signal is set, in bucket order
// (traffic, criminal, civil). A text with neither a criminal nor a traffic
// signal always includes civil.
func (c Classification) Categories() []legal.Category {
	var out []legal.Category
	if c.IsTraffic {
		out = append(out, legal.CategoryTraffic)
	}
	if c.IsCriminal {
		out = append(out, legal.CategoryCriminal)
	}
	if c.IsCivil || (!c.IsCriminal && !c.IsTraffic) {
		out = append(out, legal.CategoryCivil)
	}
	return out
}

// Primary is the first of Categories.
func (c Classification) Primary() legal.Category {
	return c.Categories()[0]
}

// Classifier matches the lexicon's keyword lists as whole words.
type Classifier struct {
	criminal *textnorm.PhraseMatcher
	traffic  *textnorm.PhraseMatcher
	civil    *textnorm.PhraseMatcher
	all      *textnorm.PhraseMatcher
}

// NewClassifier compiles the keyword lists of lex; nil means lexicon.Default().
func NewClassifier(lex *lexicon.Lexicon) *Classifier {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &Classifier{
		criminal: textnorm.NewPhraseMatcher(lex.CriminalKeywords),
		traffic:  textnorm.NewPhraseMatcher(lex.TrafficKeywords),
		civil:    textnorm.NewPhraseMatcher(lex.CivilKeywords),
		all:      textnorm.NewPhraseMatcher(lex.AllKeywords()),
	}
}

// Classify evaluates the three category signals over text.
func (c *Classifier) Classify(text string) Classification {
	folded := textnorm.Fold(text)
	return Classification{
		IsCriminal: len(c.criminal.MatchFolded(folded)) > 0,
		IsTraffic:  len(c.traffic.MatchFolded(folded)) > 0,
		IsCivil:    len(c.civil.MatchFolded(folded)) > 0,
	}
}

// Keywords returns every keyword of any list present in text, sorted.
func (c *Classifier) Keywords(text string) []string {
	found := c.all.Match(text)
	sort.Strings(found)
	return found
}
