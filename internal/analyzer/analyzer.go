// Relevance - Content Recommendation and Similarity Engine
// Copyright 2026 The Unipub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/unipub/relevance

// Package analyzer turns raw document text into comparable numeric
// signatures: weighted keyword sets, TF-IDF vectors, and cosine
// similarity between documents. It also derives per-user content
// preference profiles from interaction history and scores documents
// against them.
//
// The analyzer reads documents and interactions through a store
// interface and writes nothing, apart from an optional result cache
// keyed by document id. It has no dependency on the recommendation
// engine; the engine builds on top of it.
package analyzer

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/unipub/relevance/internal/cache"
	"github.com/unipub/relevance/internal/store"
)

// Config holds analyzer tuning parameters.
type Config struct {
	// VectorTTL bounds how long a computed TF-IDF vector may be served
	// from cache. Stale vectors against a changed corpus are accepted
	// up to this horizon.
	VectorTTL time.Duration

	// ProfileKeywordLimit is how many top keywords per document feed a
	// user's content preference profile.
	ProfileKeywordLimit int

	// ScoreKeywordLimit is how many top keywords of the target document
	// are matched against the profile when scoring.
	ScoreKeywordLimit int

	// SignificantWeight is the minimum interaction weight for an event
	// to contribute to a content preference profile. Filters out weak
	// signals like brief views.
	SignificantWeight float64

	// GenreBonus is added to the similarity score of candidates sharing
	// the query document's genre when ranking similar documents.
	GenreBonus float64
}

// DefaultConfig returns the default analyzer configuration.
func DefaultConfig() Config {
	return Config{
		VectorTTL:           time.Hour,
		ProfileKeywordLimit: 10,
		ScoreKeywordLimit:   20,
		SignificantWeight:   2.0,
		GenreBonus:          0.3,
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.VectorTTL < 0 {
		return errNegativeTTL
	}
	if c.ProfileKeywordLimit <= 0 || c.ScoreKeywordLimit <= 0 {
		return errNonPositiveKeywordLimit
	}
	return nil
}

// Analyzer computes keyword and similarity signatures over the document
// corpus held by its store. Safe for concurrent use: it carries no
// mutable state beyond the thread-safe cache.
type Analyzer struct {
	store  store.Store
	cache  cache.Cacher
	cfg    Config
	logger zerolog.Logger
}

// New creates an Analyzer. The cache may be nil, in which case every
// vector is recomputed per call.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(st store.Store, c cache.Cacher, cfg Config, logger zerolog.Logger) *Analyzer {
	return &Analyzer{
		store:  st,
		cache:  c,
		cfg:    cfg,
		logger: logger.With().Str("component", "analyzer").Logger(),
	}
}
