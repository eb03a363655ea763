// Package config defines the LegalLens configuration tree. This file holds
// only the data types and their validation; reading and defaults live in
// loader.go and defaults.go.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/turtacn/LegalLens/internal/infrastructure/monitoring/logging"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sections
// ─────────────────────────────────────────────────────────────────────────────

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // gin mode: debug | release | test
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxBodySize     int64         `mapstructure:"max_body_size"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	SlowThreshold   time.Duration `mapstructure:"slow_threshold"`
}

// RedisConfig controls the ranked-result cache. Disabled means no cache.
type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	DefaultTTL   time.Duration `mapstructure:"default_ttl"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
}

// KafkaConfig controls the judgment ingestion pipeline.
type KafkaConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	Brokers        []string      `mapstructure:"brokers"`
	GroupID        string        `mapstructure:"group_id"`
	JudgmentTopic  string        `mapstructure:"judgment_topic"`
	ExtractedTopic string        `mapstructure:"extracted_topic"`
	DLQTopic       string        `mapstructure:"dlq_topic"`
	BatchSize      int           `mapstructure:"batch_size"`
	BatchTimeout   time.Duration `mapstructure:"batch_timeout"`
	MaxRetries     int           `mapstructure:"max_retries"`
}

// MinIOConfig points at the bucket holding statute files and dataset output.
type MinIOConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	Bucket        string `mapstructure:"bucket"`
	Region        string `mapstructure:"region"`
	UseSSL        bool   `mapstructure:"use_ssl"`
	CorpusPrefix  string `mapstructure:"corpus_prefix"`
	DatasetPrefix string `mapstructure:"dataset_prefix"`
}

// CorpusConfig says where statute and case corpora come from.
type CorpusConfig struct {
	Source    string `mapstructure:"source"` // dir | minio
	LawsDir   string `mapstructure:"laws_dir"`
	CasesFile string `mapstructure:"cases_file"`
	Watch     bool   `mapstructure:"watch"`
}

// RankerConfig carries the relevance weights and result limits.
type RankerConfig struct {
	TitleWeight       float64 `mapstructure:"title_weight"`
	DescriptionWeight float64 `mapstructure:"description_weight"`
	PhraseWeight      float64 `mapstructure:"phrase_weight"`
	CitationWeight    float64 `mapstructure:"citation_weight"`
	ActWeight         float64 `mapstructure:"act_weight"`
	DefaultLimit      int     `mapstructure:"default_limit"`
	MaxLimit          int     `mapstructure:"max_limit"`
	DescriptionLimit  int     `mapstructure:"description_limit"`
}

// ExtractionConfig tunes batch extraction and dataset bucketing.
type ExtractionConfig struct {
	Workers   int `mapstructure:"workers"`
	BucketCap int `mapstructure:"bucket_cap"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Path      string `mapstructure:"path"`
	Namespace string `mapstructure:"namespace"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root of the configuration tree.
type Config struct {
	Server     ServerConfig      `mapstructure:"server"`
	Log        logging.LogConfig `mapstructure:"log"`
	Redis      RedisConfig       `mapstructure:"redis"`
	Kafka      KafkaConfig       `mapstructure:"kafka"`
	MinIO      MinIOConfig       `mapstructure:"minio"`
	Corpus     CorpusConfig      `mapstructure:"corpus"`
	Ranker     RankerConfig      `mapstructure:"ranker"`
	Extraction ExtractionConfig  `mapstructure:"extraction"`
	Metrics    MetricsConfig     `mapstructure:"metrics"`
}

// Validate checks a defaulted Config and returns the first problem found.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("config: redis.addr is required when redis is enabled")
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("config: redis.db must be >= 0, got %d", c.Redis.DB)
	}

	if c.Kafka.Enabled {
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("config: kafka.brokers must contain at least one broker when kafka is enabled")
		}
		if c.Kafka.JudgmentTopic == c.Kafka.ExtractedTopic {
			return fmt.Errorf("config: kafka.judgment_topic and kafka.extracted_topic must differ")
		}
	}

	if c.MinIO.Enabled && (c.MinIO.Endpoint == "" || c.MinIO.Bucket == "") {
		return fmt.Errorf("config: minio.endpoint and minio.bucket are required when minio is enabled")
	}

	switch c.Corpus.Source {
	case "dir":
	case "minio":
		if !c.MinIO.Enabled {
			return fmt.Errorf("config: corpus.source=minio requires minio.enabled")
		}
	default:
		return fmt.Errorf("config: corpus.source %q is invalid; expected dir|minio", c.Corpus.Source)
	}

	r := c.Ranker
	for name, w := range map[string]float64{
		"title_weight":       r.TitleWeight,
		"description_weight": r.DescriptionWeight,
		"phrase_weight":      r.PhraseWeight,
		"citation_weight":    r.CitationWeight,
		"act_weight":         r.ActWeight,
	} {
		if w < 0 {
			return fmt.Errorf("config: ranker.%s must be >= 0, got %v", name, w)
		}
	}
	if r.DefaultLimit < 1 || r.DefaultLimit > r.MaxLimit {
		return fmt.Errorf("config: ranker.default_limit %d must be within [1, max_limit=%d]", r.DefaultLimit, r.MaxLimit)
	}

	if c.Extraction.Workers < 1 {
		return fmt.Errorf("config: extraction.workers must be >= 1, got %d", c.Extraction.Workers)
	}
	if c.Extraction.BucketCap < 1 {
		return fmt.Errorf("config: extraction.bucket_cap must be >= 1, got %d", c.Extraction.BucketCap)
	}

	return nil
}
