package casebuild

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/LegalLens/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/LegalLens/internal/testutil"
	"github.com/turtacn/LegalLens/pkg/errors"
	"github.com/turtacn/LegalLens/pkg/types/legal"
)

const (
	murderText  = "The accused was convicted under Section 302 of the IPC for the murder of his neighbour."
	trafficText = "The appellant was convicted for rash driving under Section 279 IPC causing a road accident."
	civilText   = "This writ petition concerns land acquisition and the compensation payable to the owners."
)

func newTestService(t *testing.T) (Service, *testutil.MockLogger) {
	t.Helper()
	log := testutil.NewMockLogger()
	metrics := prometheus.NewAppMetrics(prometheus.NewNopCollector())
	return NewService(nil, Config{Workers: 4}, metrics, log), log
}

func TestCaseNumber(t *testing.T) {
	cases := []struct {
		name string
		in   legal.JudgmentInput
		want string
	}{
		{"cnr wins", legal.JudgmentInput{CNR: "SCIN010000012020", Title: "A v. B", Year: 2020}, "SCIN010000012020"},
		{"nan cnr falls back to title", legal.JudgmentInput{CNR: "nan", Title: "State v. Ramesh", Year: 2020}, "State v. Ramesh"},
		{"year fallback", legal.JudgmentInput{CNR: " ", Title: "NaN", Year: 2019}, "SC Case / Year 2019"},
		{"no year", legal.JudgmentInput{}, "SC Case"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CaseNumber(tc.in))
		})
	}
}

func TestMetaText_KeepsEmptySlots(t *testing.T) {
	in := legal.JudgmentInput{Title: "State v. Ramesh", DisposalNature: "Dismissed", Citation: "nan"}
	assert.Equal(t, "State v. Ramesh |  | Dismissed | ", MetaText(in))
}

func TestBuild_CriminalJudgment(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.Build(context.Background(), legal.JudgmentInput{
		CNR:            "SCIN010000012020",
		Title:          "State v. Ramesh",
		DisposalNature: "Dismissed",
		Text:           murderText,
	})
	require.NoError(t, err)

	rec := res.Record
	assert.Equal(t, "SCIN010000012020", rec.CaseNumber)
	require.NotEmpty(t, rec.Sections)
	primary, ok := rec.PrimarySection()
	require.True(t, ok)
	assert.Equal(t, "302", primary.SectionNumber)
	assert.Contains(t, rec.CrimeKeywords, "murder")
	assert.Equal(t, legal.CategoryCriminal, rec.Category)
	assert.True(t, res.Classification.IsCriminal)
	assert.NotEmpty(t, rec.CrimeDetails)
	assert.NotEmpty(t, rec.Verdict.Outcome)
}

func TestBuild_RawHTMLIsStripped(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.Build(context.Background(), legal.JudgmentInput{
		Title:   "Suresh v. State",
		RawHTML: "<html><head><script>var x = 1;</script></head><body><p>" + trafficText + "</p></body></html>",
	})
	require.NoError(t, err)

	assert.Equal(t, legal.CategoryTraffic, res.Record.Category)
	assert.Equal(t, []legal.Category{legal.CategoryTraffic, legal.CategoryCriminal}, res.Categories())
	assert.Contains(t, res.Record.SectionLabels(), "Section 279 IPC")
	assert.NotContains(t, res.Record.CrimeDetails, "var x")
}

func TestBuild_TextTakesPrecedenceOverHTML(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.Build(context.Background(), legal.JudgmentInput{
		Text:    civilText,
		RawHTML: "<p>" + murderText + "</p>",
	})
	require.NoError(t, err)
	assert.Equal(t, legal.CategoryCivil, res.Record.Category)
	assert.Empty(t, res.Record.Sections)
}

func TestBuild_MetadataOnly(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.Build(context.Background(), legal.JudgmentInput{
		Title:       "Property dispute between co-owners",
		Description: "Civil appeal on possession of ancestral property",
		Year:        2018,
	})
	require.NoError(t, err)
	assert.Equal(t, "Property dispute between co-owners", res.Record.CaseNumber)
	assert.Equal(t, legal.CategoryCivil, res.Record.Category)
	assert.NotEmpty(t, res.Record.CrimeDetails)
}

func TestBuild_EmptyJudgmentYieldsPlaceholder(t *testing.T) {
	svc, _ := newTestService(t)

	for name, tc := range map[string]struct {
		in       legal.JudgmentInput
		wantCase string
	}{
		"zero value":   {legal.JudgmentInput{}, "SC Case"},
		"only nan":     {legal.JudgmentInput{CNR: "nan", Title: "nan", Year: 2010}, "SC Case / Year 2010"},
		"blank markup": {legal.JudgmentInput{RawHTML: "   ", Year: 2010}, "SC Case / Year 2010"},
	} {
		t.Run(name, func(t *testing.T) {
			res, err := svc.Build(context.Background(), tc.in)
			require.NoError(t, err)
			rec := res.Record
			assert.Equal(t, tc.wantCase, rec.CaseNumber)
			assert.Empty(t, rec.Sections)
			assert.Empty(t, rec.CrimeKeywords)
			assert.Equal(t, "Crime details not available.", rec.CrimeDetails)
			assert.Equal(t, legal.OutcomeUnknown, rec.Verdict.Outcome)
			assert.Equal(t, "Outcome: Unknown.", rec.Verdict.Detail)
			assert.Equal(t, legal.CategoryCivil, rec.Category)
		})
	}
}

func TestBuild_BadMarkupIsRejected(t *testing.T) {
	svc, _ := newTestService(t)
	svc.(*serviceImpl).markup = func(string) (string, error) { return "", assert.AnError }

	_, err := svc.Build(context.Background(), legal.JudgmentInput{CNR: "B", RawHTML: "<p>x</p>"})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeExtractBadPayload))
	assert.ErrorIs(t, err, assert.AnError)
}

func TestBuildBatch_PreservesOrderAndReportsPerSlotErrors(t *testing.T) {
	svc, log := newTestService(t)
	svc.(*serviceImpl).markup = func(string) (string, error) { return "", assert.AnError }

	inputs := []legal.JudgmentInput{
		{CNR: "A", Text: murderText},
		{CNR: "B", RawHTML: "<p>unparseable</p>"},
		{CNR: "C", Text: civilText},
		{CNR: "D", Text: trafficText},
		{},
	}
	out, err := svc.BuildBatch(context.Background(), inputs)
	require.NoError(t, err)
	require.Len(t, out, len(inputs))

	assert.Equal(t, "A", out[0].Result.Record.CaseNumber)
	assert.Nil(t, out[1].Result)
	assert.True(t, errors.IsCode(out[1].Err, errors.ErrCodeExtractBadPayload))
	assert.Equal(t, "C", out[2].Result.Record.CaseNumber)
	assert.Equal(t, legal.CategoryCivil, out[2].Result.Record.Category)
	assert.Equal(t, legal.CategoryTraffic, out[3].Result.Record.Category)
	require.NoError(t, out[4].Err)
	assert.Equal(t, "Crime details not available.", out[4].Result.Record.CrimeDetails)

	assert.Equal(t, 1, log.Count("warn", "judgment skipped"))
	idx, ok := log.Field("judgment skipped", "index")
	require.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestBuildBatch_MatchesSingleBuild(t *testing.T) {
	svc, _ := newTestService(t)
	in := legal.JudgmentInput{CNR: "X", Title: "State v. X", Text: murderText}

	single, err := svc.Build(context.Background(), in)
	require.NoError(t, err)
	batch, err := svc.BuildBatch(context.Background(), []legal.JudgmentInput{in, in, in})
	require.NoError(t, err)
	for _, r := range batch {
		require.NoError(t, r.Err)
		assert.Equal(t, single.Record, r.Result.Record)
	}
}

func TestBuildBatch_CancelledContext(t *testing.T) {
	svc, _ := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.BuildBatch(ctx, []legal.JudgmentInput{{Text: murderText}, {Text: civilText}})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeExtractBatchFailed))
}
