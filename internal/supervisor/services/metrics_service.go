// Relevance - Content Recommendation and Similarity Engine
// Copyright 2026 The Unipub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/unipub/relevance

package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// MetricsService serves the Prometheus scrape endpoint under suture
// supervision.
type MetricsService struct {
	addr   string
	logger zerolog.Logger
	name   string
}

// NewMetricsService creates a metrics endpoint service listening on addr.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewMetricsService(addr string, logger zerolog.Logger) *MetricsService {
	return &MetricsService{
		addr:   addr,
		logger: logger.With().Str("service", "metrics").Logger(),
		name:   "metrics-service",
	}
}

// Serve implements the suture.Service interface.
func (s *MetricsService) Serve(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info().Str("addr", s.addr).Msg("metrics endpoint listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn().Err(err).Msg("metrics endpoint shutdown failed")
		}
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// String returns the service name for logging.
func (s *MetricsService) String() string {
	return s.name
}
