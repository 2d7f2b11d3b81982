// Relevance - Content Recommendation and Similarity Engine
// Copyright 2026 The Unipub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/unipub/relevance

// Package config loads the application configuration with layered
// precedence: built-in defaults, then an optional YAML file, then
// environment variables.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Database  DatabaseConfig  `koanf:"database"`
	Cache     CacheConfig     `koanf:"cache"`
	Analyzer  AnalyzerConfig  `koanf:"analyzer"`
	Recommend RecommendConfig `koanf:"recommend"`
	Refresh   RefreshConfig   `koanf:"refresh"`
	Metrics   MetricsConfig   `koanf:"metrics"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// DatabaseConfig configures the DuckDB store.
type DatabaseConfig struct {
	// Path is the database file path. Empty runs in-memory.
	Path string `koanf:"path"`

	// MaxMemory is the DuckDB memory limit, e.g. "1GB".
	MaxMemory string `koanf:"max_memory"`

	// Threads is the DuckDB thread count. 0 = runtime.NumCPU().
	Threads int `koanf:"threads"`

	// QueryTimeout bounds individual queries.
	QueryTimeout time.Duration `koanf:"query_timeout"`
}

// CacheConfig configures the in-memory result cache.
type CacheConfig struct {
	// TTL is the default entry lifetime.
	TTL time.Duration `koanf:"ttl"`
}

// AnalyzerConfig configures content analysis.
type AnalyzerConfig struct {
	// VectorTTL bounds cached TF-IDF vector staleness.
	VectorTTL time.Duration `koanf:"vector_ttl"`

	// ProfileKeywordLimit is keywords per document feeding user profiles.
	ProfileKeywordLimit int `koanf:"profile_keyword_limit"`

	// ScoreKeywordLimit is target-document keywords matched when scoring.
	ScoreKeywordLimit int `koanf:"score_keyword_limit"`

	// SignificantWeight is the minimum interaction weight feeding profiles.
	SignificantWeight float64 `koanf:"significant_weight"`

	// GenreBonus is added to same-genre candidates in similarity ranking.
	GenreBonus float64 `koanf:"genre_bonus"`
}

// RecommendConfig configures the recommendation engine.
type RecommendConfig struct {
	// ContentShare is the fraction of results drawn from content-based
	// candidates.
	ContentShare float64 `koanf:"content_share"`

	// GenreFloor is the score for genres the user never tried.
	GenreFloor float64 `koanf:"genre_floor"`

	// CandidateMultiplier scales the limit when fetching candidates.
	CandidateMultiplier int `koanf:"candidate_multiplier"`

	// LookbackDays is the profile history window.
	LookbackDays int `koanf:"lookback_days"`

	// SignificantWeight is the profile signal cutoff.
	SignificantWeight float64 `koanf:"significant_weight"`

	// DefaultLimit applies when callers pass no limit.
	DefaultLimit int `koanf:"default_limit"`

	// MaxLimit caps any requested limit.
	MaxLimit int `koanf:"max_limit"`

	// CacheTTL bounds cached recommendation lists. 0 disables.
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

// RefreshConfig configures the background vector refresh job.
type RefreshConfig struct {
	Enabled          bool          `koanf:"enabled"`
	RefreshOnStartup bool          `koanf:"refresh_on_startup"`
	Interval         time.Duration `koanf:"interval"`
	Workers          int           `koanf:"workers"`
	RunTimeout       time.Duration `koanf:"run_timeout"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns the built-in defaults, applied before file and
// environment layers.
func defaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:         "/data/relevance.duckdb",
			MaxMemory:    "1GB",
			Threads:      0, // 0 = use runtime.NumCPU()
			QueryTimeout: 10 * time.Second,
		},
		Cache: CacheConfig{
			TTL: time.Hour,
		},
		Analyzer: AnalyzerConfig{
			VectorTTL:           time.Hour,
			ProfileKeywordLimit: 10,
			ScoreKeywordLimit:   20,
			SignificantWeight:   2.0,
			GenreBonus:          0.3,
		},
		Recommend: RecommendConfig{
			ContentShare:        0.6,
			GenreFloor:          0.1,
			CandidateMultiplier: 2,
			LookbackDays:        30,
			SignificantWeight:   2.0,
			DefaultLimit:        10,
			MaxLimit:            100,
			CacheTTL:            5 * time.Minute,
		},
		Refresh: RefreshConfig{
			Enabled:          true,
			RefreshOnStartup: true,
			Interval:         30 * time.Minute,
			Workers:          4,
			RunTimeout:       10 * time.Minute,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Addr:    ":9091",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Validate checks the loaded configuration for invalid values.
func (c *Config) Validate() error {
	if c.Database.QueryTimeout < 0 {
		return errors.New("database.query_timeout must not be negative")
	}
	if c.Cache.TTL <= 0 {
		return errors.New("cache.ttl must be positive")
	}
	if c.Analyzer.VectorTTL < 0 {
		return errors.New("analyzer.vector_ttl must not be negative")
	}
	if c.Recommend.ContentShare < 0 || c.Recommend.ContentShare > 1 {
		return errors.New("recommend.content_share must be in [0,1]")
	}
	if c.Recommend.DefaultLimit <= 0 {
		return errors.New("recommend.default_limit must be positive")
	}
	if c.Recommend.MaxLimit < c.Recommend.DefaultLimit {
		return errors.New("recommend.max_limit must be at least recommend.default_limit")
	}
	if c.Refresh.Enabled && c.Refresh.Interval <= 0 {
		return errors.New("refresh.interval must be positive when refresh is enabled")
	}
	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return errors.New("metrics.addr required when metrics are enabled")
	}
	switch c.Logging.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("logging.format %q not recognized", c.Logging.Format)
	}
	return nil
}
