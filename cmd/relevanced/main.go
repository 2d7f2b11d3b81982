// Relevance - Content Recommendation and Similarity Engine
// Copyright 2026 The Unipub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/unipub/relevance

// Package main is the entry point for the relevanced daemon.
//
// Relevance is the content-recommendation core of a publication
// platform: TF-IDF keyword analysis, document similarity, and hybrid
// (content-based plus collaborative) personalized ranking over an
// interaction event log. The scoring API is consumed in-process by the
// surrounding application; this daemon hosts the parts that need a
// process of their own:
//
//  1. Configuration: layered Koanf v2 load (defaults, YAML file, env)
//  2. Store: embedded DuckDB holding documents and interaction events
//  3. Analyzer and engine: wired against the store and a TTL cache
//  4. Refresh job: periodic full-corpus TF-IDF recomputation under a
//     suture supervision tree, fanning documents across a worker pool
//  5. Metrics: Prometheus endpoint for scrape
//
// Shutdown is graceful on SIGINT/SIGTERM: the supervision tree stops
// its services, then the store is closed.
package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/unipub/relevance/internal/analyzer"
	"github.com/unipub/relevance/internal/cache"
	"github.com/unipub/relevance/internal/config"
	"github.com/unipub/relevance/internal/logging"
	"github.com/unipub/relevance/internal/recommend"
	"github.com/unipub/relevance/internal/store"
	"github.com/unipub/relevance/internal/supervisor"
	"github.com/unipub/relevance/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Dur("vector_ttl", cfg.Analyzer.VectorTTL).
		Dur("refresh_interval", cfg.Refresh.Interval).
		Msg("starting relevanced")

	db, err := store.OpenDuckDB(store.DuckDBOptions{
		Path:         cfg.Database.Path,
		MaxMemory:    cfg.Database.MaxMemory,
		Threads:      cfg.Database.Threads,
		QueryTimeout: cfg.Database.QueryTimeout,
	}, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to open store")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("error closing store")
		}
	}()

	resultCache := cache.New(cfg.Cache.TTL)

	contentAnalyzer := analyzer.New(db, resultCache, analyzer.Config{
		VectorTTL:           cfg.Analyzer.VectorTTL,
		ProfileKeywordLimit: cfg.Analyzer.ProfileKeywordLimit,
		ScoreKeywordLimit:   cfg.Analyzer.ScoreKeywordLimit,
		SignificantWeight:   cfg.Analyzer.SignificantWeight,
		GenreBonus:          cfg.Analyzer.GenreBonus,
	}, logging.Logger())

	engine, err := recommend.NewEngine(db, resultCache, recommend.Config{
		Blend: recommend.BlendConfig{
			ContentShare:        cfg.Recommend.ContentShare,
			GenreFloor:          cfg.Recommend.GenreFloor,
			CandidateMultiplier: cfg.Recommend.CandidateMultiplier,
		},
		Profile: recommend.ProfileConfig{
			LookbackDays:      cfg.Recommend.LookbackDays,
			SignificantWeight: cfg.Recommend.SignificantWeight,
		},
		Limits: recommend.LimitsConfig{
			DefaultLimit: cfg.Recommend.DefaultLimit,
			MaxLimit:     cfg.Recommend.MaxLimit,
		},
		CacheTTL: cfg.Recommend.CacheTTL,
	}, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to create recommendation engine")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())

	if cfg.Refresh.Enabled {
		tree.AddJob(services.NewRefreshService(contentAnalyzer, db, resultCache, services.RefreshServiceConfig{
			RefreshOnStartup: cfg.Refresh.RefreshOnStartup,
			Interval:         cfg.Refresh.Interval,
			Workers:          cfg.Refresh.Workers,
			RunTimeout:       cfg.Refresh.RunTimeout,
		}, logging.Logger()))
	}

	if cfg.Metrics.Enabled {
		tree.AddTelemetry(services.NewMetricsService(cfg.Metrics.Addr, logging.Logger()))
	}

	logging.Info().Msg("supervision tree starting")

	err = tree.Serve(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("supervision tree exited")
	}

	personalized, fallback, recorded, failures := engine.Stats()
	logging.Info().
		Int64("personalized", personalized).
		Int64("fallback", fallback).
		Int64("interactions_recorded", recorded).
		Int64("record_failures", failures).
		Float64("cache_hit_rate", resultCache.HitRate()).
		Msg("relevanced stopped")
}
