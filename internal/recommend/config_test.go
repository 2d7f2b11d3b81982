// Relevance - Content Recommendation and Similarity Engine
// Copyright 2026 The Unipub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/unipub/relevance

package recommend

import "testing"

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "content share above one", mutate: func(c *Config) { c.Blend.ContentShare = 1.5 }},
		{name: "negative content share", mutate: func(c *Config) { c.Blend.ContentShare = -0.1 }},
		{name: "negative genre floor", mutate: func(c *Config) { c.Blend.GenreFloor = -1 }},
		{name: "zero candidate multiplier", mutate: func(c *Config) { c.Blend.CandidateMultiplier = 0 }},
		{name: "negative lookback", mutate: func(c *Config) { c.Profile.LookbackDays = -1 }},
		{name: "zero default limit", mutate: func(c *Config) { c.Limits.DefaultLimit = 0 }},
		{name: "max below default", mutate: func(c *Config) { c.Limits.MaxLimit = 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestConfigClone(t *testing.T) {
	cfg := DefaultConfig()
	clone := cfg.Clone()

	clone.Blend.ContentShare = 0.9
	if cfg.Blend.ContentShare == 0.9 {
		t.Error("mutating clone changed original")
	}
}
