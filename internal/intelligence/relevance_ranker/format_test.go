package relevance_ranker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/turtacn/LegalLens/pkg/types/legal"
)

func TestTruncateDescription(t *testing.T) {
	assert.Equal(t, "abc", TruncateDescription("abc", 3))
	assert.Equal(t, "abc...", TruncateDescription("abcd", 3))
	assert.Equal(t, "धारा...", TruncateDescription("धाराएँ", 4))
}

func TestFormatStatutes(t *testing.T) {
	assert.Equal(t, NoStatutesFound, FormatStatutes(nil, 400))

	m := legal.RankedMatch{Entry: murder, Score: 56, Rationale: "Exact citation 302"}
	assert.Equal(t,
		"[IPC] Section 302: Punishment for murder\nWhoever commits murd...\n[Reasoning: Exact citation 302 (Score: 56.00)]",
		FormatStatute(m, 20))

	two := FormatStatutes([]legal.RankedMatch{m, {Entry: theft, Score: 1.5, Rationale: "Description match: theft"}}, 400)
	blocks := strings.Split(two, "\n\n")
	assert.Len(t, blocks, 2)
	assert.True(t, strings.HasPrefix(blocks[1], "[IPC] Section 379: Punishment for theft\n"))
	assert.True(t, strings.HasSuffix(blocks[1], "(Score: 1.50)]"))
}
