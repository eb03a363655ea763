package legal

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategory_IsValid(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, c.IsValid())
	}
	assert.False(t, Category("family").IsValid())
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory(" Criminal ")
	require.NoError(t, err)
	assert.Equal(t, CategoryCriminal, c)

	_, err = ParseCategory("tax")
	assert.Error(t, err)
}

func TestNewVerdictRecord_Placeholders(t *testing.T) {
	v := NewVerdictRecord()
	assert.Equal(t, NotApplicable, v.DisposalNature)
	assert.Equal(t, NotApplicable, v.Sentence)
	assert.Zero(t, v.FineAmount)
	assert.Zero(t, v.CompensationAmount)
	assert.False(t, v.HasSentence())
}

func TestCaseRecord_JSONFieldNames(t *testing.T) {
	rec := CaseRecord{
		CaseNumber: "SCIN010000012020",
		Sections: []StatuteSectionReference{
			{Label: "Section 302 IPC", SectionNumber: "302", OffenseName: "Murder", OffenseCategory: "Violent Crime", IsPrimary: true},
		},
		CrimeKeywords: []string{"murder"},
		CrimeDetails:  "The accused was charged.",
		Verdict:       NewVerdictRecord(),
		Category:      CategoryCriminal,
	}

	raw, err := json.Marshal(rec)
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &m))
	for _, key := range []string{"case_number", "ipc_section", "crime_keywords", "crime_details", "verdict", "category"} {
		assert.Contains(t, m, key)
	}
	verdict := m["verdict"].(map[string]interface{})
	for _, key := range []string{"outcome", "disposal_nature", "sentence", "fine_amount", "compensation_amount", "detail"} {
		assert.Contains(t, verdict, key)
	}
	assert.Equal(t, float64(0), verdict["fine_amount"], "absent amounts serialise as 0, not null")
}

func TestCaseRecord_PrimarySectionAndLabels(t *testing.T) {
	rec := CaseRecord{Sections: []StatuteSectionReference{
		{Label: "Section 34 IPC", SectionNumber: "34"},
		{Label: "Section 302 IPC", SectionNumber: "302", IsPrimary: true},
	}}

	p, ok := rec.PrimarySection()
	require.True(t, ok)
	assert.Equal(t, "302", p.SectionNumber)
	assert.Equal(t, []string{"Section 34 IPC", "Section 302 IPC"}, rec.SectionLabels())

	_, ok = CaseRecord{}.PrimarySection()
	assert.False(t, ok)
}

func TestCaseRecord_WithCategoryCopies(t *testing.T) {
	base := CaseRecord{CaseNumber: "X", Category: CategoryCivil}
	crim := base.WithCategory(CategoryCriminal)
	assert.Equal(t, CategoryCivil, base.Category)
	assert.Equal(t, CategoryCriminal, crim.Category)
}

func TestStatuteCorpusEntry_IsEmpty(t *testing.T) {
	assert.True(t, StatuteCorpusEntry{Act: "IPC", SectionNumber: "  "}.IsEmpty())
	assert.False(t, StatuteCorpusEntry{Act: "IPC", Title: "Murder"}.IsEmpty())
}
