// Package legal holds the public data shapes exchanged by LegalLens: case
// records produced by the extraction pipeline, statute corpus entries, and
// ranked matches. All types are JSON-serialisable with stable field names.
package legal

import (
	"fmt"
	"strings"
	"time"
)

const (
	// NotApplicable is the placeholder for absent textual verdict fields.
	NotApplicable = "Not Applicable"
	// OutcomeUnknown is recorded when no rule and no disposal string apply.
	OutcomeUnknown = "Unknown"
	// DetailFallback is the verdict detail when nothing was extracted.
	DetailFallback = "See full judgment."
)

// Category is the dataset bucket a case record belongs to.
type Category string

const (
	CategoryCivil    Category = "civil"
	CategoryCriminal Category = "criminal"
	CategoryTraffic  Category = "traffic"
)

// Categories lists every category in bucket-evaluation order.
var Categories = []Category{CategoryTraffic, CategoryCriminal, CategoryCivil}

func (c Category) IsValid() bool {
	switch c {
	case CategoryCivil, CategoryCriminal, CategoryTraffic:
		return true
	default:
		return false
	}
}

// ParseCategory accepts any casing of a category name.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", fmt.Errorf("legal: unknown category %q", s)
	}
	return c, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Extraction output
// ─────────────────────────────────────────────────────────────────────────────

// StatuteSectionReference is one penal-code section cited by a judgment.
type StatuteSectionReference struct {
	Label           string `json:"label"`
	SectionNumber   string `json:"section_number"`
	OffenseName     string `json:"offense_name"`
	OffenseCategory string `json:"offense_category"`
	IsPrimary       bool   `json:"is_primary"`
}

// VerdictRecord summarises how a case was decided. Absent text fields hold
// NotApplicable and absent amounts hold 0.
type VerdictRecord struct {
	Outcome            string `json:"outcome"`
	DisposalNature     string `json:"disposal_nature"`
	Sentence           string `json:"sentence"`
	FineAmount         int64  `json:"fine_amount"`
	CompensationAmount int64  `json:"compensation_amount"`
	Detail             string `json:"detail"`
}

// NewVerdictRecord returns a record with every placeholder applied.
func NewVerdictRecord() VerdictRecord {
	return VerdictRecord{
		Outcome:        OutcomeUnknown,
		DisposalNature: NotApplicable,
		Sentence:       NotApplicable,
		Detail:         DetailFallback,
	}
}

// HasSentence reports whether a sentence was recorded.
func (v VerdictRecord) HasSentence() bool {
	return v.Sentence != "" && v.Sentence != NotApplicable
}

// CaseRecord is the structured form of one judgment.
type CaseRecord struct {
	CaseNumber    string                    `json:"case_number"`
	Sections      []StatuteSectionReference `json:"ipc_section"`
	CrimeKeywords []string                  `json:"crime_keywords"`
	CrimeDetails  string                    `json:"crime_details"`
	Verdict       VerdictRecord             `json:"verdict"`
	Category      Category                  `json:"category"`
}

// PrimarySection returns the primary citation, if any.
func (r CaseRecord) PrimarySection() (StatuteSectionReference, bool) {
	for _, s := range r.Sections {
		if s.IsPrimary {
			return s, true
		}
	}
	return StatuteSectionReference{}, false
}

// SectionLabels returns the citation labels in record order.
func (r CaseRecord) SectionLabels() []string {
	out := make([]string, 0, len(r.Sections))
	for _, s := range r.Sections {
		out = append(out, s.Label)
	}
	return out
}

// WithCategory returns a copy of r filed under c. Slices are shared; records
// are never mutated after construction.
func (r CaseRecord) WithCategory(c Category) CaseRecord {
	r.Category = c
	return r
}

// JudgmentInput is one raw judgment with its light court metadata.
type JudgmentInput struct {
	CNR            string `json:"cnr,omitempty"`
	Title          string `json:"title,omitempty"`
	Description    string `json:"description,omitempty"`
	DisposalNature string `json:"disposal_nature,omitempty"`
	Citation       string `json:"citation,omitempty"`
	Text           string `json:"text,omitempty"`
	RawHTML        string `json:"raw_html,omitempty"`
	Year           int    `json:"year,omitempty"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Ranking
// ─────────────────────────────────────────────────────────────────────────────

// StatuteCorpusEntry is one searchable provision. Section numbers are text.
type StatuteCorpusEntry struct {
	Act           string `json:"act"`
	SectionNumber string `json:"section_number"`
	Title         string `json:"title"`
	Description   string `json:"description"`
}

// IsEmpty reports whether the entry carries no searchable content.
func (e StatuteCorpusEntry) IsEmpty() bool {
	return strings.TrimSpace(e.SectionNumber) == "" &&
		strings.TrimSpace(e.Title) == "" &&
		strings.TrimSpace(e.Description) == ""
}

// RankedMatch pairs a corpus entry with its relevance score.
type RankedMatch struct {
	Entry     StatuteCorpusEntry `json:"entry"`
	Score     float64            `json:"score"`
	Rationale string             `json:"rationale"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Dataset
// ─────────────────────────────────────────────────────────────────────────────

// DatasetMetadata is the "_metadata" block of a dataset file.
type DatasetMetadata struct {
	RunID         string            `json:"run_id"`
	TotalCases    int               `json:"total_cases"`
	CivilCases    int               `json:"civil_cases"`
	CriminalCases int               `json:"criminal_cases"`
	TrafficCases  int               `json:"traffic_cases"`
	BucketCap     int               `json:"bucket_cap"`
	Source        string            `json:"source,omitempty"`
	StartedAt     time.Time         `json:"started_at"`
	GeneratedAt   time.Time         `json:"generated_at"`
	OutputFields  map[string]string `json:"output_fields"`
}

// Dataset is the on-disk form of a bucketed case collection.
type Dataset struct {
	Metadata DatasetMetadata `json:"_metadata"`
	Cases    []CaseRecord    `json:"cases"`
}

// OutputFields documents the record fields for dataset consumers.
func OutputFields() map[string]string {
	return map[string]string{
		"case_number":    "CNR, case title, or SC Case / Year fallback",
		"ipc_section":    "cited penal-code sections [{label, section_number, offense_name, offense_category, is_primary}]",
		"crime_keywords": "classifier keywords found in the judgment",
		"crime_details":  "extractive crime summary, at most 1000 characters",
		"verdict":        "{outcome, disposal_nature, sentence, fine_amount, compensation_amount, detail}",
		"category":       "civil | criminal | traffic",
	}
}
