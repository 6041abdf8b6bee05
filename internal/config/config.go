package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Sentiment model endpoint
	ClassifierURL string

	// Auth
	SecsentAPIKey string

	// External data sources
	FREDAPIKey     string
	FREDBaseURL    string
	EdgarUserAgent string

	// Worker pool
	WorkerCount           int
	MaxQueueSize          int
	MaxConcurrentClassify int

	// Upload limits
	MaxUploadBytes int64

	// Section chunking
	MaxSectionWords int

	// Cleaning
	MinSentenceLength int

	// Job state
	JobTTL time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		ClassifierURL: envOr("CLASSIFIER_URL", "http://localhost:8501"),
		SecsentAPIKey: os.Getenv("SECSENT_API_KEY"),

		FREDAPIKey:     os.Getenv("FRED_API_KEY"),
		FREDBaseURL:    os.Getenv("FRED_BASE_URL"),
		EdgarUserAgent: envOr("EDGAR_USER_AGENT", "secsent research@example.com"),

		WorkerCount:           envInt("WORKER_COUNT", 4),
		MaxQueueSize:          envInt("MAX_QUEUE_SIZE", 100),
		MaxConcurrentClassify: envInt("MAX_CONCURRENT_CLASSIFY", 5),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		MaxSectionWords:   envInt("MAX_SECTION_WORDS", 2000),
		MinSentenceLength: envInt("MIN_SENTENCE_LENGTH", 20),

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxConcurrentClassify <= 0 {
		cfg.MaxConcurrentClassify = 5
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.MaxSectionWords <= 0 {
		cfg.MaxSectionWords = 2000
	}
	if cfg.MinSentenceLength <= 0 {
		cfg.MinSentenceLength = 20
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.ClassifierURL == "" {
		return fmt.Errorf("CLASSIFIER_URL is required")
	}
	if c.SecsentAPIKey == "" {
		return fmt.Errorf("SECSENT_API_KEY is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
