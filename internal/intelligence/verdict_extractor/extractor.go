// Package verdict_extractor reads the outcome, sentence and monetary orders
// out of judgment text.
package verdict_extractor

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/turtacn/LegalLens/internal/intelligence/textnorm"
	"github.com/turtacn/LegalLens/pkg/types/legal"
)

const (
	SentenceLife         = "Life Imprisonment"
	SentenceUnspecified  = "Imprisonment (duration not specified)"
	sentenceKindRigorous = "Rigorous"
	sentenceKindSimple   = "Simple"
)

var (
	durationRe     = regexp.MustCompile(`(\d+)\s*years?\s*(?:rigorous|simple|r\.i\.|s\.i\.)?[\s\w]*imprisonment`)
	fineRe         = regexp.MustCompile(`\bfined?\s+(?:of\s+)?(?:rs\.?|rupees?|inr)\.?\s*([\d,]+)`)
	compensationRe = regexp.MustCompile(`\bcompensation\s+of\s+(?:rs\.?|rupees?|inr)\.?\s*([\d,]+)`)
)

// Extractor applies the outcome decision table and the sentence and amount
// patterns. The zero value is not usable; call NewExtractor.
type Extractor struct {
	rules []OutcomeRule
}

// NewExtractor returns an Extractor over the built-in outcome rules.
func NewExtractor() *Extractor {
	return &Extractor{rules: OutcomeRules()}
}

// Extract builds a VerdictRecord from judgment text and the court's raw
// disposal string. Either may be empty.
func (e *Extractor) Extract(text, disposal string) legal.VerdictRecord {
	t := textnorm.Fold(text)
	disposal = strings.TrimSpace(disposal)

	v := legal.NewVerdictRecord()
	v.Outcome = e.Outcome(t, disposal)
	if disposal != "" {
		v.DisposalNature = disposal
	}
	if s := Sentence(t); s != "" {
		v.Sentence = s
	}
	v.FineAmount = amount(fineRe, t)
	v.CompensationAmount = amount(compensationRe, t)
	v.Detail = Detail(v, disposal)
	return v
}

// Outcome returns the label of the first matching rule for the lower-cased
// text t, else disposal, else legal.OutcomeUnknown.
func (e *Extractor) Outcome(t, disposal string) string {
	for _, r := range e.rules {
		if r.Match(t) {
			return r.Label
		}
	}
	if disposal != "" {
		return disposal
	}
	return legal.OutcomeUnknown
}

// Sentence classifies the imprisonment term in lower-cased text t, or
// returns "" when none is mentioned.
func Sentence(t string) string {
	if strings.Contains(t, "life imprisonment") {
		return SentenceLife
	}
	if m := durationRe.FindStringSubmatch(t); m != nil {
		if years, err := strconv.Atoi(m[1]); err == nil {
			kind := sentenceKindSimple
			if strings.Contains(t, "rigorous") {
				kind = sentenceKindRigorous
			}
			return fmt.Sprintf("%d Years %s Imprisonment", years, kind)
		}
	}
	if strings.Contains(t, "imprisonment") {
		return SentenceUnspecified
	}
	return ""
}

// amount returns the first rupee figure captured by re, or 0.
func amount(re *regexp.Regexp, t string) int64 {
	m := re.FindStringSubmatch(t)
	if m == nil {
		return 0
	}
	n, err := strconv.ParseInt(strings.ReplaceAll(m[1], ",", ""), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Detail renders the human-readable verdict summary. The outcome clause is
// always present, Unknown included; legal.DetailFallback is only returned
// for a record with no outcome at all.
func Detail(v legal.VerdictRecord, disposal string) string {
	var parts []string
	if v.Outcome != "" {
		parts = append(parts, fmt.Sprintf("Outcome: %s.", v.Outcome))
	}
	if v.HasSentence() {
		parts = append(parts, fmt.Sprintf("Sentence: %s.", v.Sentence))
	}
	if v.FineAmount > 0 {
		parts = append(parts, fmt.Sprintf("Fine: Rs.%s.", FormatRupees(v.FineAmount)))
	}
	if v.CompensationAmount > 0 {
		parts = append(parts, fmt.Sprintf("Compensation to victim: Rs.%s.", FormatRupees(v.CompensationAmount)))
	}
	if disposal != "" && !strings.Contains(v.Outcome, disposal) {
		parts = append(parts, fmt.Sprintf("Disposal: %s.", disposal))
	}
	if len(parts) == 0 {
		return legal.DetailFallback
	}
	return strings.Join(parts, " ")
}

// FormatRupees groups digits in threes: 1500000 → "1,500,000".
func FormatRupees(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
