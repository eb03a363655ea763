package relevance_ranker

import (
	"fmt"
	"strings"

	"github.com/turtacn/LegalLens/internal/intelligence/textnorm"
	"github.com/turtacn/LegalLens/pkg/types/legal"
)

// NoStatutesFound is rendered for an empty statute result.
const NoStatutesFound = "No relevant laws found."

// TruncateDescription cuts desc to limit runes and appends "..." when it
// was longer.
func TruncateDescription(desc string, limit int) string {
	if textnorm.RuneLen(desc) <= limit {
		return desc
	}
	return textnorm.Truncate(desc, limit) + "..."
}

// FormatStatute renders one match as
//
//	[ACT] Section N: title
//	description
//	[Reasoning: ... (Score: x.xx)]
func FormatStatute(m legal.RankedMatch, descLimit int) string {
	return fmt.Sprintf("[%s] Section %s: %s\n%s\n[Reasoning: %s (Score: %.2f)]",
		m.Entry.Act, m.Entry.SectionNumber, m.Entry.Title,
		TruncateDescription(m.Entry.Description, descLimit),
		m.Rationale, m.Score)
}

// FormatStatutes joins rendered matches with blank lines.
func FormatStatutes(matches []legal.RankedMatch, descLimit int) string {
	if len(matches) == 0 {
		return NoStatutesFound
	}
	blocks := make([]string, len(matches))
	for i, m := range matches {
		blocks[i] = FormatStatute(m, descLimit)
	}
	return strings.Join(blocks, "\n\n")
}
