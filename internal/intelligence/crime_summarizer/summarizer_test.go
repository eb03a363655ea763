package crime_summarizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/turtacn/LegalLens/internal/intelligence/lexicon"
	"github.com/turtacn/LegalLens/internal/intelligence/textnorm"
)

const (
	sCalm     = "The weather on that day was pleasant and calm overall."
	sAttack   = "The accused attacked the victim near the market square."
	sTrial    = "The prosecution examined every witness and the evidence was held reliable by the court."
	sTraffic  = "Traffic on the main road was diverted for several hours."
	sDeceased = "The deceased was found with injuries caused by the assault."
)

func newSummarizer() *Summarizer {
	return NewSummarizer(nil, DefaultOptions())
}

func TestSummarize_Placeholder(t *testing.T) {
	assert.Equal(t, Placeholder, newSummarizer().Summarize("", ""))
	assert.Equal(t, Placeholder, newSummarizer().Summarize("   ", "  \n "))
}

func TestSummarize_PicksTopSentencesStably(t *testing.T) {
	text := strings.Join([]string{sCalm, sAttack, sTrial, "Tiny.", sTraffic, sDeceased}, " ")
	got := newSummarizer().Summarize(text, "ignored metadata")

	want := strings.Join([]string{sTrial, sAttack, sDeceased, sCalm}, " ")
	assert.Equal(t, want, got)
}

func TestSummarize_ShortTextUsesMeta(t *testing.T) {
	s := newSummarizer()
	meta := "The accused was tried for the robbery of a jewellery shop. Appeal dismissed."
	got := s.Summarize("Too short to use.", meta)
	assert.Equal(t, "The accused was tried for the robbery of a jewellery shop.", got)

	assert.Equal(t, "Short meta", s.Summarize("", "  Short meta "), "no qualifying sentence falls back to the source")
}

func TestSummarize_FallbackWhenNoSentenceQualifies(t *testing.T) {
	text := strings.Repeat("Short one. ", 30)
	got := newSummarizer().Summarize(text, "")
	assert.Equal(t, strings.TrimSpace(text), got)

	choppy := strings.Repeat("x. ", 300)
	assert.Equal(t, 500, textnorm.RuneLen(newSummarizer().Summarize(choppy, "")))
}

func TestSummarize_CapsLength(t *testing.T) {
	sentence := "The accused " + strings.Repeat("ran ", 100) + "away."
	text := strings.Repeat(sentence+" ", 4)
	got := newSummarizer().Summarize(text, "")
	assert.Equal(t, 1000, textnorm.RuneLen(got))
}

func TestSummarize_Idempotent(t *testing.T) {
	text := strings.Join([]string{sDeceased, sTrial, sAttack, sCalm, sTraffic}, " ")
	s := newSummarizer()
	assert.Equal(t, s.Summarize(text, ""), s.Summarize(text, ""))
}

func TestScore(t *testing.T) {
	s := newSummarizer()
	assert.Equal(t, 0, s.Score(sCalm))
	assert.Equal(t, 2, s.Score(sAttack))
	assert.Equal(t, 5, s.Score(sTrial))
	assert.Equal(t, 1, s.Score("Kidnapping, kidnapping and more kidnapping"), "each term counts once")
}

func TestNewSummarizer_CustomVocabulary(t *testing.T) {
	lex := lexicon.Default()
	lex.SummaryVocabulary = []string{"Tribunal", " "}
	s := NewSummarizer(lex, DefaultOptions())
	assert.Equal(t, 1, s.Score("before the tribunal"))
	assert.Equal(t, 0, s.Score("The accused"))
}
