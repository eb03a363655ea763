package config

import "time"

const (
	DefaultServerPort            = 8080
	DefaultServerMode            = "release"
	DefaultServerReadTimeout     = 15 * time.Second
	DefaultServerWriteTimeout    = 30 * time.Second
	DefaultServerShutdownTimeout = 20 * time.Second
	DefaultServerMaxBodySize     = 8 << 20
	DefaultServerSlowThreshold   = 2 * time.Second

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultRedisAddr     = "localhost:6379"
	DefaultRedisPoolSize = 10
	DefaultRedisTimeout  = 3 * time.Second
	DefaultRedisTTL      = 10 * time.Minute
	DefaultRedisPrefix   = "legallens:"

	DefaultKafkaBroker         = "localhost:9092"
	DefaultKafkaGroupID        = "legallens-extractor"
	DefaultKafkaJudgmentTopic  = "legallens.judgment.received"
	DefaultKafkaExtractedTopic = "legallens.case.extracted"
	DefaultKafkaDLQTopic       = "legallens.judgment.dlq"
	DefaultKafkaBatchSize      = 100
	DefaultKafkaBatchTimeout   = time.Second
	DefaultKafkaMaxRetries     = 3

	DefaultMinIOEndpoint      = "localhost:9000"
	DefaultMinIOBucket        = "legallens"
	DefaultMinIORegion        = "us-east-1"
	DefaultMinIOCorpusPrefix  = "laws/"
	DefaultMinIODatasetPrefix = "datasets/"

	DefaultCorpusSource  = "dir"
	DefaultCorpusLawsDir = "./data/laws_json"

	DefaultTitleWeight       = 5.0
	DefaultDescriptionWeight = 1.0
	DefaultPhraseWeight      = 10.0
	DefaultCitationWeight    = 50.0
	DefaultActWeight         = 20.0
	DefaultRankLimit         = 15
	DefaultRankMaxLimit      = 100
	DefaultDescriptionLimit  = 400

	DefaultExtractionWorkers = 8
	DefaultBucketCap         = 10000

	DefaultMetricsPath      = "/metrics"
	DefaultMetricsNamespace = "legallens"
)

// ApplyDefaults fills zero-valued fields of cfg. Explicit values are kept.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Server ────────────────────────────────────────────────────────────────
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultServerReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultServerWriteTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultServerShutdownTimeout
	}
	if cfg.Server.MaxBodySize == 0 {
		cfg.Server.MaxBodySize = DefaultServerMaxBodySize
	}
	if cfg.Server.SlowThreshold == 0 {
		cfg.Server.SlowThreshold = DefaultServerSlowThreshold
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	// ── Redis ─────────────────────────────────────────────────────────────────
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Redis.PoolSize == 0 {
		cfg.Redis.PoolSize = DefaultRedisPoolSize
	}
	if cfg.Redis.DialTimeout == 0 {
		cfg.Redis.DialTimeout = DefaultRedisTimeout
	}
	if cfg.Redis.ReadTimeout == 0 {
		cfg.Redis.ReadTimeout = DefaultRedisTimeout
	}
	if cfg.Redis.WriteTimeout == 0 {
		cfg.Redis.WriteTimeout = DefaultRedisTimeout
	}
	if cfg.Redis.DefaultTTL == 0 {
		cfg.Redis.DefaultTTL = DefaultRedisTTL
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = DefaultRedisPrefix
	}

	// ── Kafka ─────────────────────────────────────────────────────────────────
	if len(cfg.Kafka.Brokers) == 0 {
		cfg.Kafka.Brokers = []string{DefaultKafkaBroker}
	}
	if cfg.Kafka.GroupID == "" {
		cfg.Kafka.GroupID = DefaultKafkaGroupID
	}
	if cfg.Kafka.JudgmentTopic == "" {
		cfg.Kafka.JudgmentTopic = DefaultKafkaJudgmentTopic
	}
	if cfg.Kafka.ExtractedTopic == "" {
		cfg.Kafka.ExtractedTopic = DefaultKafkaExtractedTopic
	}
	if cfg.Kafka.DLQTopic == "" {
		cfg.Kafka.DLQTopic = DefaultKafkaDLQTopic
	}
	if cfg.Kafka.BatchSize == 0 {
		cfg.Kafka.BatchSize = DefaultKafkaBatchSize
	}
	if cfg.Kafka.BatchTimeout == 0 {
		cfg.Kafka.BatchTimeout = DefaultKafkaBatchTimeout
	}
	if cfg.Kafka.MaxRetries == 0 {
		cfg.Kafka.MaxRetries = DefaultKafkaMaxRetries
	}

	// ── MinIO ─────────────────────────────────────────────────────────────────
	if cfg.MinIO.Endpoint == "" {
		cfg.MinIO.Endpoint = DefaultMinIOEndpoint
	}
	if cfg.MinIO.Bucket == "" {
		cfg.MinIO.Bucket = DefaultMinIOBucket
	}
	if cfg.MinIO.Region == "" {
		cfg.MinIO.Region = DefaultMinIORegion
	}
	if cfg.MinIO.CorpusPrefix == "" {
		cfg.MinIO.CorpusPrefix = DefaultMinIOCorpusPrefix
	}
	if cfg.MinIO.DatasetPrefix == "" {
		cfg.MinIO.DatasetPrefix = DefaultMinIODatasetPrefix
	}

	// ── Corpus ────────────────────────────────────────────────────────────────
	if cfg.Corpus.Source == "" {
		cfg.Corpus.Source = DefaultCorpusSource
	}
	if cfg.Corpus.LawsDir == "" {
		cfg.Corpus.LawsDir = DefaultCorpusLawsDir
	}

	// ── Ranker ────────────────────────────────────────────────────────────────
	if cfg.Ranker.TitleWeight == 0 {
		cfg.Ranker.TitleWeight = DefaultTitleWeight
	}
	if cfg.Ranker.DescriptionWeight == 0 {
		cfg.Ranker.DescriptionWeight = DefaultDescriptionWeight
	}
	if cfg.Ranker.PhraseWeight == 0 {
		cfg.Ranker.PhraseWeight = DefaultPhraseWeight
	}
	if cfg.Ranker.CitationWeight == 0 {
		cfg.Ranker.CitationWeight = DefaultCitationWeight
	}
	if cfg.Ranker.ActWeight == 0 {
		cfg.Ranker.ActWeight = DefaultActWeight
	}
	if cfg.Ranker.DefaultLimit == 0 {
		cfg.Ranker.DefaultLimit = DefaultRankLimit
	}
	if cfg.Ranker.MaxLimit == 0 {
		cfg.Ranker.MaxLimit = DefaultRankMaxLimit
	}
	if cfg.Ranker.DescriptionLimit == 0 {
		cfg.Ranker.DescriptionLimit = DefaultDescriptionLimit
	}

	// ── Extraction ────────────────────────────────────────────────────────────
	if cfg.Extraction.Workers == 0 {
		cfg.Extraction.Workers = DefaultExtractionWorkers
	}
	if cfg.Extraction.BucketCap == 0 {
		cfg.Extraction.BucketCap = DefaultBucketCap
	}

	// ── Metrics ───────────────────────────────────────────────────────────────
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
}

// NewDefaultConfig returns a Config with every default applied.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
