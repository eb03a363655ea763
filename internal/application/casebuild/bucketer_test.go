package casebuild

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/LegalLens/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/LegalLens/internal/intelligence/case_classifier"
	"github.com/turtacn/LegalLens/pkg/types/legal"
)

func result(id string, cls case_classifier.Classification) *Result {
	return &Result{
		Record:         legal.CaseRecord{CaseNumber: id, Category: cls.Primary(), Verdict: legal.NewVerdictRecord()},
		Classification: cls,
	}
}

func TestBucketer_OverlappingBuckets(t *testing.T) {
	b := NewBucketer(10, "test", nil)

	added := b.Add(result("X", case_classifier.Classification{IsCriminal: true, IsTraffic: true}))
	assert.Equal(t, []legal.Category{legal.CategoryTraffic, legal.CategoryCriminal}, added)

	ds := b.Dataset()
	require.Len(t, ds.Cases, 2, "overlapping buckets count the record once per bucket")
	assert.Equal(t, 2, ds.Metadata.TotalCases)
	assert.Equal(t, 1, ds.Metadata.CriminalCases)
	assert.Equal(t, 1, ds.Metadata.TrafficCases)
	assert.Equal(t, 0, ds.Metadata.CivilCases)

	assert.Equal(t, "X", ds.Cases[0].CaseNumber)
	assert.Equal(t, legal.CategoryCriminal, ds.Cases[0].Category)
	assert.Equal(t, "X", ds.Cases[1].CaseNumber)
	assert.Equal(t, legal.CategoryTraffic, ds.Cases[1].Category)
}

func TestBucketer_CivilCatchAll(t *testing.T) {
	b := NewBucketer(10, "", nil)
	added := b.Add(result("C", case_classifier.Classification{}))
	assert.Equal(t, []legal.Category{legal.CategoryCivil}, added)
}

func TestBucketer_IndependentCaps(t *testing.T) {
	b := NewBucketer(1, "", prometheus.NewAppMetrics(prometheus.NewNopCollector()))

	assert.Len(t, b.Add(result("1", case_classifier.Classification{IsCivil: true})), 1)
	assert.Empty(t, b.Add(result("2", case_classifier.Classification{IsCivil: true})), "civil bucket is full")
	assert.False(t, b.Full())

	added := b.Add(result("3", case_classifier.Classification{IsCriminal: true, IsCivil: true}))
	assert.Equal(t, []legal.Category{legal.CategoryCriminal}, added, "a full bucket does not block the others")
	assert.False(t, b.Full())

	b.Add(result("4", case_classifier.Classification{IsTraffic: true}))
	assert.True(t, b.Full())

	assert.Equal(t, map[legal.Category]int{
		legal.CategoryCivil:    1,
		legal.CategoryCriminal: 1,
		legal.CategoryTraffic:  1,
	}, b.Counts())
}

func TestBucketer_DatasetOrderAndMetadata(t *testing.T) {
	b := NewBucketer(0, "judgments.jsonl", nil)
	b.Add(result("T", case_classifier.Classification{IsTraffic: true}))
	b.Add(result("K", case_classifier.Classification{IsCriminal: true}))
	b.Add(result("V", case_classifier.Classification{IsCivil: true}))

	ds := b.Dataset()
	ids := []string{ds.Cases[0].CaseNumber, ds.Cases[1].CaseNumber, ds.Cases[2].CaseNumber}
	assert.Equal(t, []string{"V", "K", "T"}, ids, "civil, then criminal, then traffic")

	md := ds.Metadata
	assert.NotEmpty(t, md.RunID)
	assert.Equal(t, 10000, md.BucketCap)
	assert.Equal(t, "judgments.jsonl", md.Source)
	assert.False(t, md.GeneratedAt.Before(md.StartedAt))
	assert.Contains(t, md.OutputFields, "crime_details")
}

func TestBucketer_AddNil(t *testing.T) {
	b := NewBucketer(5, "", nil)
	assert.Nil(t, b.Add(nil))
	assert.Empty(t, b.Dataset().Cases)
}
