// Relevance - Content Recommendation and Similarity Engine
// Copyright 2026 The Unipub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/unipub/relevance

// Package services provides suture service wrappers for the background
// parts of the process.
package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/unipub/relevance/internal/analyzer"
	"github.com/unipub/relevance/internal/cache"
	"github.com/unipub/relevance/internal/metrics"
	"github.com/unipub/relevance/internal/store"
)

// RefreshServiceConfig holds configuration for the vector refresh job.
type RefreshServiceConfig struct {
	// RefreshOnStartup triggers a full refresh when the service starts,
	// warming the vector cache before the first request.
	RefreshOnStartup bool

	// Interval is how often to refresh all vectors. Should not exceed
	// the vector TTL or requests will recompute cold.
	Interval time.Duration

	// Workers is the number of documents processed concurrently.
	Workers int

	// RunTimeout bounds a single full-corpus refresh.
	RunTimeout time.Duration
}

// RefreshService periodically recomputes TF-IDF vectors for every
// published document so request paths serve from a warm cache. Each
// document's computation is independent, so a worker pool fans the
// corpus out with no ordering guarantee.
type RefreshService struct {
	analyzer *analyzer.Analyzer
	store    store.Store
	cache    cache.Cacher
	config   RefreshServiceConfig
	logger   zerolog.Logger
	name     string
}

// NewRefreshService creates a vector refresh service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRefreshService(a *analyzer.Analyzer, st store.Store, c cache.Cacher, cfg RefreshServiceConfig, logger zerolog.Logger) *RefreshService {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Minute
	}
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = 10 * time.Minute
	}
	return &RefreshService{
		analyzer: a,
		store:    st,
		cache:    c,
		config:   cfg,
		logger:   logger.With().Str("service", "refresh").Logger(),
		name:     "refresh-service",
	}
}

// Serve implements the suture.Service interface.
func (s *RefreshService) Serve(ctx context.Context) error {
	s.logger.Info().
		Dur("interval", s.config.Interval).
		Int("workers", s.config.Workers).
		Msg("refresh service starting")

	if s.config.RefreshOnStartup {
		if err := s.refresh(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("startup refresh failed (will retry on schedule)")
		}
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("refresh service shutting down")
			return ctx.Err()

		case <-ticker.C:
			if err := s.refresh(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("scheduled refresh failed")
			}
		}
	}
}

// refresh recomputes vectors for the whole published corpus.
func (s *RefreshService) refresh(ctx context.Context) error {
	runCtx, cancel := context.WithTimeout(ctx, s.config.RunTimeout)
	defer cancel()

	start := time.Now()

	docs, err := s.store.ListPublishedDocuments(runCtx)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(runCtx)
	g.SetLimit(s.config.Workers)

	for _, doc := range docs {
		id := doc.ID
		g.Go(func() error {
			// Drop the cached vector first so the corpus change since
			// the last run is reflected, then recompute to warm.
			s.analyzer.InvalidateVector(id)
			if _, err := s.analyzer.ComputeTFIDF(gctx, id); err != nil {
				metrics.VectorRefreshDocuments.WithLabelValues("error").Inc()
				s.logger.Warn().Err(err).Int64("document_id", id).Msg("vector refresh failed")
				return nil
			}
			metrics.VectorRefreshDocuments.WithLabelValues("ok").Inc()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	elapsed := time.Since(start)
	metrics.VectorRefreshDuration.Observe(elapsed.Seconds())
	if s.cache != nil {
		metrics.CacheHitRate.Set(s.cache.HitRate())
	}

	s.logger.Info().
		Int("documents", len(docs)).
		Dur("duration", elapsed).
		Msg("vector refresh complete")

	return nil
}

// String returns the service name for logging.
func (s *RefreshService) String() string {
	return s.name
}
