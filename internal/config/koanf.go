// Relevance - Content Recommendation and Similarity Engine
// Copyright 2026 The Unipub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/unipub/relevance

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists where config files are searched, in order.
// The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/relevance/config.yaml",
	"/etc/relevance/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// envPrefix namespaces this process's environment variables.
const envPrefix = "RELEVANCE_"

// Load reads configuration with layered precedence:
//  1. Built-in defaults
//  2. Optional YAML config file
//  3. RELEVANCE_* environment variables (highest)
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", configPath, err)
		}
	}

	envProvider := env.Provider(envPrefix, ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file path.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envMappings maps RELEVANCE_-stripped, lowercased variable names to
// config paths. Snake-case keys inside sections make a naive separator
// replacement ambiguous, so the mapping is explicit.
var envMappings = map[string]string{
	"database_path":          "database.path",
	"database_max_memory":    "database.max_memory",
	"database_threads":       "database.threads",
	"database_query_timeout": "database.query_timeout",

	"cache_ttl": "cache.ttl",

	"analyzer_vector_ttl":            "analyzer.vector_ttl",
	"analyzer_profile_keyword_limit": "analyzer.profile_keyword_limit",
	"analyzer_score_keyword_limit":   "analyzer.score_keyword_limit",
	"analyzer_significant_weight":    "analyzer.significant_weight",
	"analyzer_genre_bonus":           "analyzer.genre_bonus",

	"recommend_content_share":        "recommend.content_share",
	"recommend_genre_floor":          "recommend.genre_floor",
	"recommend_candidate_multiplier": "recommend.candidate_multiplier",
	"recommend_lookback_days":        "recommend.lookback_days",
	"recommend_significant_weight":   "recommend.significant_weight",
	"recommend_default_limit":        "recommend.default_limit",
	"recommend_max_limit":            "recommend.max_limit",
	"recommend_cache_ttl":            "recommend.cache_ttl",

	"refresh_enabled":            "refresh.enabled",
	"refresh_refresh_on_startup": "refresh.refresh_on_startup",
	"refresh_interval":           "refresh.interval",
	"refresh_workers":            "refresh.workers",
	"refresh_run_timeout":        "refresh.run_timeout",

	"metrics_enabled": "metrics.enabled",
	"metrics_addr":    "metrics.addr",

	"logging_level":  "logging.level",
	"logging_format": "logging.format",
	"logging_caller": "logging.caller",
}

// envTransformFunc maps RELEVANCE_DATABASE_PATH to database.path and so
// on. Unknown variables are dropped rather than guessed at.
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
	if path, ok := envMappings[key]; ok {
		return path
	}
	return ""
}
