package statute_search

import (
	"fmt"
	"strings"

	"github.com/turtacn/LegalLens/internal/intelligence/verdict_extractor"
	"github.com/turtacn/LegalLens/pkg/types/legal"
)

// NoPrecedentsFound is rendered for an empty precedent result.
const NoPrecedentsFound = "No relevant historical cases found."

const noSections = "None specified"

// FormatPrecedent renders one historical case match. rec is the full case
// record behind m; a zero record renders with placeholders.
func FormatPrecedent(m legal.RankedMatch, rec legal.CaseRecord) string {
	facts := rec.CrimeDetails
	if facts == "" {
		facts = m.Entry.Description
	}
	sections := noSections
	if labels := rec.SectionLabels(); len(labels) > 0 {
		sections = strings.Join(labels, ", ")
	}
	v := rec.Verdict
	if v.Outcome == "" {
		v = legal.NewVerdictRecord()
	}
	return fmt.Sprintf("--- Historical Case Match (Score: %.2f) ---\nFacts: %s\nSections Applied: %s\nOutcome: %s | Jail Term: %s | Fine: Rs.%s\nVerdict Details: %s",
		m.Score, facts, sections,
		v.Outcome, v.Sentence, verdict_extractor.FormatRupees(v.FineAmount),
		v.Detail)
}

// FormatPrecedents joins rendered matches with blank lines. cases maps case
// numbers to their records.
func FormatPrecedents(matches []legal.RankedMatch, cases map[string]legal.CaseRecord) string {
	if len(matches) == 0 {
		return NoPrecedentsFound
	}
	blocks := make([]string, len(matches))
	for i, m := range matches {
		blocks[i] = FormatPrecedent(m, cases[m.Entry.SectionNumber])
	}
	return strings.Join(blocks, "\n\n")
}
