package verdict_extractor

import "strings"

// Outcome labels.
const (
	OutcomeAcquitted        = "Acquitted"
	OutcomeDeathCommuted    = "Death Sentence Commuted to Life Imprisonment"
	OutcomeDeathConfirmed   = "Death Sentence Confirmed"
	OutcomeSentenceModified = "Convicted — Sentence Modified"
	OutcomeConvicted        = "Convicted"
	OutcomeRemanded         = "Remanded for Fresh Trial"
	OutcomeAppealAllowed    = "Appeal Allowed"
	OutcomeAppealDismissed  = "Appeal Dismissed"
	OutcomeSLPDismissed     = "SLP Dismissed"
	OutcomeBailGranted      = "Bail Granted"
)

// OutcomeRule is one row of the outcome decision table. Match receives the
// lower-cased judgment text.
type OutcomeRule struct {
	Tag   string
	Label string
	Match func(t string) bool
}

// outcomeRules is evaluated top to bottom; the first match wins.
var outcomeRules = []OutcomeRule{
	{
		Tag:   "acquittal",
		Label: OutcomeAcquitted,
		Match: func(t string) bool { return containsAny(t, "acquitted", "acquittal", "not guilty") },
	},
	{
		Tag:   "death-commuted",
		Label: OutcomeDeathCommuted,
		Match: func(t string) bool {
			return strings.Contains(t, "death sentence") && containsAny(t, "commuted", "reduced")
		},
	},
	{
		Tag:   "death-confirmed",
		Label: OutcomeDeathConfirmed,
		Match: func(t string) bool { return containsAny(t, "death sentence", "capital punishment") },
	},
	{
		Tag:   "conviction-modified",
		Label: OutcomeSentenceModified,
		Match: func(t string) bool {
			return isConviction(t) && containsAny(t, "modified", "reduced", "partly")
		},
	},
	{
		Tag:   "conviction",
		Label: OutcomeConvicted,
		Match: isConviction,
	},
	{
		Tag:   "remand",
		Label: OutcomeRemanded,
		Match: func(t string) bool { return containsAny(t, "remanded", "fresh trial") },
	},
	{
		Tag:   "appeal-allowed",
		Label: OutcomeAppealAllowed,
		Match: func(t string) bool {
			return strings.Contains(t, "appeal") && containsAny(t, "allowed", "accepted")
		},
	},
	{
		Tag:   "appeal-dismissed",
		Label: OutcomeAppealDismissed,
		Match: func(t string) bool {
			return strings.Contains(t, "appeal") && strings.Contains(t, "dismissed")
		},
	},
	{
		Tag:   "slp-dismissed",
		Label: OutcomeSLPDismissed,
		Match: func(t string) bool { return strings.Contains(t, "slp dismissed") },
	},
	{
		Tag:   "bail-granted",
		Label: OutcomeBailGranted,
		Match: func(t string) bool {
			return strings.Contains(t, "bail") && strings.Contains(t, "granted")
		},
	},
}

// OutcomeRules returns a copy of the decision table in evaluation order.
func OutcomeRules() []OutcomeRule {
	return append([]OutcomeRule(nil), outcomeRules...)
}

func isConviction(t string) bool {
	return containsAny(t, "convicted", "conviction", "found guilty")
}

func containsAny(t string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(t, w) {
			return true
		}
	}
	return false
}
