package section_extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/LegalLens/pkg/types/legal"
)

func sectionNumbers(refs []legal.StatuteSectionReference) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, r.SectionNumber)
	}
	return out
}

func primaryOf(t *testing.T, refs []legal.StatuteSectionReference) legal.StatuteSectionReference {
	t.Helper()
	var found []legal.StatuteSectionReference
	for _, r := range refs {
		if r.IsPrimary {
			found = append(found, r)
		}
	}
	require.Len(t, found, 1, "exactly one primary reference")
	return found[0]
}

func TestExtract_SingleCitation(t *testing.T) {
	ex := NewExtractor(nil)
	refs := ex.Extract("The accused was charged under Section 302 of the IPC and convicted.")

	require.Len(t, refs, 1)
	assert.Equal(t, legal.StatuteSectionReference{
		Label:           "Section 302 IPC",
		SectionNumber:   "302",
		OffenseName:     "Murder",
		OffenseCategory: "Violent Crime",
		IsPrimary:       true,
	}, refs[0])
}

func TestExtract_Orderings(t *testing.T) {
	ex := NewExtractor(nil)
	cases := []struct {
		name string
		text string
		want []string
	}{
		{"plural with and", "convicted under Sections 302, 307 and 34 of the Indian Penal Code", []string{"302", "307", "34"}},
		{"abbreviated", "offence u/s 420 IPC and s. 467 IPC", []string{"420", "467"}},
		{"statute first", "charged under IPC Section 376A/376D", []string{"376A", "376D"}},
		{"read with", "Section 302 read with Section 34 of the IPC", []string{"302", "34"}},
		{"short statute name", "Sec. 379 of Penal Code", []string{"379"}},
		{"lower case clause letter", "section 498a of ipc", []string{"498A"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, sectionNumbers(ex.Extract(tc.text)))
		})
	}
}

func TestExtract_PrimaryFollowsPriority(t *testing.T) {
	ex := NewExtractor(nil)

	a := ex.Extract("Section 34 IPC and Section 379 IPC")
	b := ex.Extract("Section 379 IPC and Section 34 IPC")
	assert.Equal(t, "379", primaryOf(t, a).SectionNumber)
	assert.Equal(t, a, b, "citation order does not change the result")

	// Neither is in the priority list: smallest string wins.
	c := ex.Extract("Section 34 IPC and Section 201 IPC")
	assert.Equal(t, "201", primaryOf(t, c).SectionNumber)
}

func TestExtract_UnknownProvision(t *testing.T) {
	refs := NewExtractor(nil).Extract("Section 9999 IPC")
	require.Len(t, refs, 1)
	assert.Equal(t, "Unknown Provision", refs[0].OffenseName)
	assert.Equal(t, "Other", refs[0].OffenseCategory)
	assert.True(t, refs[0].IsPrimary)
}

func TestExtract_KeywordFallback(t *testing.T) {
	ex := NewExtractor(nil)

	refs := ex.Extract("The deceased was a victim of murder and theft.")
	assert.Equal(t, []string{"302", "379"}, sectionNumbers(refs))
	assert.Equal(t, "302", primaryOf(t, refs).SectionNumber)

	assert.Empty(t, ex.Extract("The murderer's identity was unclear."), "keywords match whole words only")
}

func TestExtract_CitationSuppressesKeywords(t *testing.T) {
	refs := NewExtractor(nil).Extract("A case of murder, registered under Section 307 of the IPC.")
	assert.Equal(t, []string{"307"}, sectionNumbers(refs))
}

func TestExtract_EmptyAndIdempotent(t *testing.T) {
	ex := NewExtractor(nil)

	empty := ex.Extract("")
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
	assert.Empty(t, ex.Extract("The appeal was listed for hearing."))

	text := "The appellant was convicted under Sections 302 and 201 of the IPC."
	assert.Equal(t, ex.Extract(text), ex.Extract(text))
}

func TestExtract_SortedAndUnique(t *testing.T) {
	refs := NewExtractor(nil).Extract("Section 420 IPC. Later, Section 406 IPC. Again Section 420 IPC.")
	assert.Equal(t, []string{"406", "420"}, sectionNumbers(refs))
}

func TestSelectPrimary(t *testing.T) {
	prio := []string{"302", "376"}
	assert.Equal(t, "376", SelectPrimary([]string{"34", "376"}, prio))
	assert.Equal(t, "120", SelectPrimary([]string{"34", "120"}, prio))
	assert.Equal(t, "", SelectPrimary(nil, prio))
}

func TestCitedSections_RejectsMalformedPieces(t *testing.T) {
	assert.Equal(t, []string{"302"}, CitedSections("Section 302 and the other IPC"))
	assert.Empty(t, CitedSections("Section abc IPC"))
}
