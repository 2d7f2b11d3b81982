// Relevance - Content Recommendation and Similarity Engine
// Copyright 2026 The Unipub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/unipub/relevance

package recommend

import (
	"errors"
	"time"
)

// Config holds recommendation engine tuning parameters.
type Config struct {
	Blend   BlendConfig
	Profile ProfileConfig
	Limits  LimitsConfig

	// CacheTTL bounds how long a computed recommendation list may be
	// served from cache. Zero disables response caching.
	CacheTTL time.Duration
}

// BlendConfig controls how content-based and collaborative candidates
// are interleaved.
type BlendConfig struct {
	// ContentShare is the fraction of the final list drawn from
	// content-based candidates; the remainder comes from collaborative
	// ones. A policy knob, not an algorithmic necessity.
	ContentShare float64

	// GenreFloor is the score assigned to candidates in genres the user
	// has no recorded weight for, so untried genres are not starved.
	GenreFloor float64

	// CandidateMultiplier scales the requested limit when fetching
	// candidates from each source, leaving headroom for dedupe.
	CandidateMultiplier int
}

// ProfileConfig controls user preference profile construction.
type ProfileConfig struct {
	// LookbackDays is the interaction history window feeding the
	// profile. Older events still count toward exclusion.
	LookbackDays int

	// SignificantWeight is the minimum weight for an interaction to
	// count as a meaningful preference signal.
	SignificantWeight float64
}

// LimitsConfig bounds request sizes.
type LimitsConfig struct {
	// DefaultLimit applies when a caller passes no limit.
	DefaultLimit int

	// MaxLimit caps any requested limit.
	MaxLimit int
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		Blend: BlendConfig{
			ContentShare:        0.6,
			GenreFloor:          0.1,
			CandidateMultiplier: 2,
		},
		Profile: ProfileConfig{
			LookbackDays:      30,
			SignificantWeight: 2.0,
		},
		Limits: LimitsConfig{
			DefaultLimit: 10,
			MaxLimit:     100,
		},
		CacheTTL: 5 * time.Minute,
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Blend.ContentShare < 0 || c.Blend.ContentShare > 1 {
		return errors.New("recommend: blend content share must be in [0,1]")
	}
	if c.Blend.GenreFloor < 0 {
		return errors.New("recommend: genre floor must not be negative")
	}
	if c.Blend.CandidateMultiplier < 1 {
		return errors.New("recommend: candidate multiplier must be at least 1")
	}
	if c.Profile.LookbackDays < 0 {
		return errors.New("recommend: lookback days must not be negative")
	}
	if c.Limits.DefaultLimit <= 0 {
		return errors.New("recommend: default limit must be positive")
	}
	if c.Limits.MaxLimit < c.Limits.DefaultLimit {
		return errors.New("recommend: max limit must be at least the default limit")
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() Config {
	return *c
}
