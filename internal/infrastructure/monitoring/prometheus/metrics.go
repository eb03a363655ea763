package prometheus

import (
	"strconv"
	"time"
)

// AppMetrics is every metric LegalLens records. A nil *AppMetrics is valid
// for the Record helpers and records nothing.
type AppMetrics struct {
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPActiveRequests  GaugeVec

	CasesExtractedTotal CounterVec
	SectionsPerCase     HistogramVec
	ExtractionDuration  HistogramVec
	DatasetBucketSize   GaugeVec

	RankQueriesTotal CounterVec
	RankResultCount  HistogramVec
	RankDuration     HistogramVec

	CacheHitsTotal   CounterVec
	CacheMissesTotal CounterVec

	CorpusEntries      GaugeVec
	CorpusReloadsTotal CounterVec

	MessagesTotal CounterVec

	ErrorsTotal CounterVec
}

var (
	DefaultHTTPDurationBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	DefaultRankDurationBuckets = []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5}
	DefaultCountBuckets        = []float64{0, 1, 2, 3, 5, 8, 13, 21, 50, 100}
)

// NewAppMetrics registers every metric on collector.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	m := &AppMetrics{}

	m.HTTPRequestsTotal = collector.RegisterCounter("http_requests_total", "HTTP requests by route and status", "method", "path", "status_code")
	m.HTTPRequestDuration = collector.RegisterHistogram("http_request_duration_seconds", "HTTP request latency", DefaultHTTPDurationBuckets, "method", "path")
	m.HTTPActiveRequests = collector.RegisterGauge("http_active_requests", "In-flight HTTP requests", "method")

	m.CasesExtractedTotal = collector.RegisterCounter("cases_extracted_total", "Case records built, by category", "category")
	m.SectionsPerCase = collector.RegisterHistogram("sections_per_case", "Penal code sections cited per case", DefaultCountBuckets)
	m.ExtractionDuration = collector.RegisterHistogram("extraction_duration_seconds", "Time to build case records", DefaultHTTPDurationBuckets, "mode")
	m.DatasetBucketSize = collector.RegisterGauge("dataset_bucket_size", "Records in each dataset bucket", "category")

	m.RankQueriesTotal = collector.RegisterCounter("rank_queries_total", "Relevance queries by corpus and result", "corpus", "result")
	m.RankResultCount = collector.RegisterHistogram("rank_result_count", "Matches returned per query", DefaultCountBuckets, "corpus")
	m.RankDuration = collector.RegisterHistogram("rank_duration_seconds", "Relevance ranking latency", DefaultRankDurationBuckets, "corpus")

	m.CacheHitsTotal = collector.RegisterCounter("cache_hits_total", "Cache hits", "cache")
	m.CacheMissesTotal = collector.RegisterCounter("cache_misses_total", "Cache misses", "cache")

	m.CorpusEntries = collector.RegisterGauge("corpus_entries", "Statute entries loaded, by act", "act")
	m.CorpusReloadsTotal = collector.RegisterCounter("corpus_reloads_total", "Corpus reload attempts", "status")

	m.MessagesTotal = collector.RegisterCounter("messages_total", "Kafka messages by topic and result", "topic", "result")

	m.ErrorsTotal = collector.RegisterCounter("errors_total", "Errors by component and code", "component", "code")

	return m
}

func RecordHTTPRequest(m *AppMetrics, method, path string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

// RecordExtraction counts one built record under each of its categories.
func RecordExtraction(m *AppMetrics, categories []string, sections int) {
	if m == nil {
		return
	}
	for _, c := range categories {
		m.CasesExtractedTotal.WithLabelValues(c).Inc()
	}
	m.SectionsPerCase.WithLabelValues().Observe(float64(sections))
}

// RecordRank records one ranking call. result is "hit" when at least one
// match was returned, else "empty".
func RecordRank(m *AppMetrics, corpus string, results int, d time.Duration) {
	if m == nil {
		return
	}
	result := "hit"
	if results == 0 {
		result = "empty"
	}
	m.RankQueriesTotal.WithLabelValues(corpus, result).Inc()
	m.RankResultCount.WithLabelValues(corpus).Observe(float64(results))
	m.RankDuration.WithLabelValues(corpus).Observe(d.Seconds())
}

func RecordCacheAccess(m *AppMetrics, cache string, hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheHitsTotal.WithLabelValues(cache).Inc()
		return
	}
	m.CacheMissesTotal.WithLabelValues(cache).Inc()
}

// RecordCorpusLoad sets the per-act entry gauges after a successful load,
// or counts a failed reload when err is non-nil.
func RecordCorpusLoad(m *AppMetrics, entriesByAct map[string]int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.CorpusReloadsTotal.WithLabelValues("failure").Inc()
		return
	}
	m.CorpusReloadsTotal.WithLabelValues("success").Inc()
	for act, n := range entriesByAct {
		m.CorpusEntries.WithLabelValues(act).Set(float64(n))
	}
}

// RecordMessage counts a Kafka message; result is consumed, produced,
// failed or dead_lettered.
func RecordMessage(m *AppMetrics, topic, result string) {
	if m == nil {
		return
	}
	m.MessagesTotal.WithLabelValues(topic, result).Inc()
}

func RecordError(m *AppMetrics, component, code string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(component, code).Inc()
}
