package casebuild

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/LegalLens/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/LegalLens/pkg/types/legal"
)

// Bucketer files built records into per-category buckets. Each bucket has
// its own cap and a record may land in several buckets.
type Bucketer struct {
	mu        sync.Mutex
	cap       int
	buckets   map[legal.Category][]legal.CaseRecord
	runID     string
	source    string
	startedAt time.Time
	metrics   *prometheus.AppMetrics
}

// NewBucketer creates a bucketer whose buckets each hold at most cap
// records. cap < 1 falls back to 10000.
func NewBucketer(cap int, source string, metrics *prometheus.AppMetrics) *Bucketer {
	if cap < 1 {
		cap = 10000
	}
	return &Bucketer{
		cap:       cap,
		buckets:   make(map[legal.Category][]legal.CaseRecord, len(legal.Categories)),
		runID:     uuid.NewString(),
		source:    source,
		startedAt: time.Now().UTC(),
		metrics:   metrics,
	}
}

// Add files res into every qualifying bucket that still has room and
// returns the categories it was added to.
func (b *Bucketer) Add(res *Result) []legal.Category {
	if res == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	var added []legal.Category
	for _, c := range res.Categories() {
		if len(b.buckets[c]) >= b.cap {
			continue
		}
		b.buckets[c] = append(b.buckets[c], res.Record.WithCategory(c))
		added = append(added, c)
		if b.metrics != nil {
			b.metrics.DatasetBucketSize.WithLabelValues(string(c)).Set(float64(len(b.buckets[c])))
		}
	}
	return added
}

// Full reports whether every bucket reached its cap.
func (b *Bucketer) Full() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, c := range legal.Categories {
		if len(b.buckets[c]) < b.cap {
			return false
		}
	}
	return true
}

// Counts returns the size of each bucket.
func (b *Bucketer) Counts() map[legal.Category]int {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make(map[legal.Category]int, len(legal.Categories))
	for _, c := range legal.Categories {
		out[c] = len(b.buckets[c])
	}
	return out
}

// Dataset merges the buckets in civil, criminal, traffic order and attaches
// the metadata block. A record in two buckets appears twice.
func (b *Bucketer) Dataset() *legal.Dataset {
	b.mu.Lock()
	defer b.mu.Unlock()

	civil := b.buckets[legal.CategoryCivil]
	criminal := b.buckets[legal.CategoryCriminal]
	traffic := b.buckets[legal.CategoryTraffic]

	cases := make([]legal.CaseRecord, 0, len(civil)+len(criminal)+len(traffic))
	cases = append(cases, civil...)
	cases = append(cases, criminal...)
	cases = append(cases, traffic...)

	return &legal.Dataset{
		Metadata: legal.DatasetMetadata{
			RunID:         b.runID,
			TotalCases:    len(cases),
			CivilCases:    len(civil),
			CriminalCases: len(criminal),
			TrafficCases:  len(traffic),
			BucketCap:     b.cap,
			Source:        b.source,
			StartedAt:     b.startedAt,
			GeneratedAt:   time.Now().UTC(),
			OutputFields:  legal.OutputFields(),
		},
		Cases: cases,
	}
}
