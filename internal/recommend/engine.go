// Relevance - Content Recommendation and Similarity Engine
// Copyright 2026 The Unipub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/unipub/relevance

// Package recommend produces ranked, deduplicated document lists
// personalized to a user, blending content-based candidates (genre
// affinity) with collaborative ones (documents similar users reacted
// positively to), and records new interaction signals best-effort.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"

	"github.com/unipub/relevance/internal/cache"
	"github.com/unipub/relevance/internal/metrics"
	"github.com/unipub/relevance/internal/store"
)

// ErrInvalidLimit is returned for non-positive limits. A caller bug,
// rejected before any computation.
var ErrInvalidLimit = errors.New("recommend: limit must be positive")

// ErrUnknownKind is returned when an unrecognized interaction kind is
// recorded. Signals an integration bug, rejected before any weight
// computation or persistence.
var ErrUnknownKind = errors.New("recommend: unknown interaction kind")

// Engine orchestrates personalized ranking over the document corpus.
// Stateless apart from counters and the optional response cache; safe
// for concurrent use.
type Engine struct {
	store   store.Store
	cache   cache.Cacher
	cfg     Config
	logger  zerolog.Logger
	breaker *gobreaker.CircuitBreaker[string]

	personalizedCount atomic.Int64
	fallbackCount     atomic.Int64
	recordedCount     atomic.Int64
	recordFailures    atomic.Int64
}

// NewEngine creates an Engine. The cache may be nil to disable response
// caching.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(st store.Store, c cache.Cacher, cfg Config, logger zerolog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		store:  st,
		cache:  c,
		cfg:    cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
	}

	// Interaction appends are best-effort; the breaker keeps a failing
	// store from stalling every user action with a doomed write.
	e.breaker = gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name: "interaction-append",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return e, nil
}

// Stats reports engine request counters since startup.
func (e *Engine) Stats() (personalized, fallback, recorded, recordFailures int64) {
	return e.personalizedCount.Load(), e.fallbackCount.Load(),
		e.recordedCount.Load(), e.recordFailures.Load()
}

type scoredDoc struct {
	doc   store.Document
	score float64
}

// Recommendations returns up to limit published documents ranked for
// the user. Anonymous users (id <= 0) get the popularity fallback. A
// cold-start user still receives content-based results ranked by the
// genre floor; no user ever gets an error for lack of history.
func (e *Engine) Recommendations(ctx context.Context, userID int64, limit int) ([]store.Document, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	if limit > e.cfg.Limits.MaxLimit {
		limit = e.cfg.Limits.MaxLimit
	}

	if userID <= 0 {
		return e.FallbackRecommendations(ctx, limit)
	}

	cacheKey := ""
	if e.cache != nil && e.cfg.CacheTTL > 0 {
		cacheKey = cache.GenerateKey("recommendations", struct {
			UserID int64
			Limit  int
		}{userID, limit})
		if cached, ok := e.cache.Get(cacheKey); ok {
			if docs, ok := cached.([]store.Document); ok {
				return docs, nil
			}
		}
	}

	history, err := e.store.GetUserInteractions(ctx, userID, 0)
	if err != nil {
		return nil, fmt.Errorf("load interactions for user %d: %w", userID, err)
	}

	profile := BuildProfile(history, e.cfg.Profile.LookbackDays)

	// Exclusion covers the full history, not just the profile window:
	// a document read months ago is still not a recommendation.
	seen := make(map[int64]struct{}, len(history))
	for _, ev := range history {
		seen[ev.DocumentID] = struct{}{}
	}

	candidateLimit := e.cfg.Blend.CandidateMultiplier * limit

	content, err := e.contentCandidates(ctx, &profile, seen, candidateLimit)
	if err != nil {
		return nil, err
	}

	collaborative, err := e.collaborativeCandidates(ctx, userID, seen, candidateLimit)
	if err != nil {
		return nil, err
	}

	result := e.blend(content, collaborative, limit)

	e.personalizedCount.Add(1)
	metrics.RecommendationRequests.WithLabelValues("personalized").Inc()

	e.logger.Debug().
		Int64("user_id", userID).
		Int("content_candidates", len(content)).
		Int("collaborative_candidates", len(collaborative)).
		Int("results", len(result)).
		Msg("recommendations computed")

	if cacheKey != "" {
		e.cache.SetWithTTL(cacheKey, result, e.cfg.CacheTTL)
	}

	return result, nil
}

// contentCandidates ranks unseen published documents by the user's
// genre affinity. Genres without a recorded weight score the flat
// floor so untried genres are never starved entirely.
func (e *Engine) contentCandidates(ctx context.Context, profile *Profile, seen map[int64]struct{}, limit int) ([]store.Document, error) {
	docs, err := e.store.ListPublishedDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list published documents: %w", err)
	}

	maxGenre := 0.0
	for _, w := range profile.GenreWeights {
		if w > maxGenre {
			maxGenre = w
		}
	}

	candidates := make([]scoredDoc, 0, len(docs))
	for _, doc := range docs {
		if _, ok := seen[doc.ID]; ok {
			continue
		}

		score := e.cfg.Blend.GenreFloor
		if w, ok := profile.GenreWeights[doc.Genre]; ok && maxGenre > 0 {
			score = w / maxGenre
		}
		candidates = append(candidates, scoredDoc{doc: doc, score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	result := make([]store.Document, len(candidates))
	for i, c := range candidates {
		result[i] = c.doc
	}
	return result, nil
}

// collaborativeCandidates ranks documents that users sharing a genre
// with this user reacted to positively (like, heart, wow), by count of
// such reactions.
func (e *Engine) collaborativeCandidates(ctx context.Context, userID int64, seen map[int64]struct{}, limit int) ([]store.Document, error) {
	similar, err := e.store.GetUsersSharingGenreInteractions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find similar users: %w", err)
	}
	if len(similar) == 0 {
		return nil, nil
	}

	reactions := make(map[int64]int)
	var order []int64
	for _, other := range similar {
		events, err := e.store.GetUserInteractions(ctx, other, 0)
		if err != nil {
			return nil, fmt.Errorf("load interactions for user %d: %w", other, err)
		}
		for _, ev := range events {
			if !ev.Kind.Positive() {
				continue
			}
			if _, ok := seen[ev.DocumentID]; ok {
				continue
			}
			if _, counted := reactions[ev.DocumentID]; !counted {
				order = append(order, ev.DocumentID)
			}
			reactions[ev.DocumentID]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return reactions[order[i]] > reactions[order[j]]
	})
	if len(order) > limit {
		order = order[:limit]
	}

	result := make([]store.Document, 0, len(order))
	for _, id := range order {
		doc, err := e.store.GetDocument(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load document %d: %w", id, err)
		}
		if !doc.Published() {
			continue
		}
		result = append(result, *doc)
	}
	return result, nil
}

// blend interleaves the two candidate lists: the content share of the
// limit first, collaborative for the remainder, deduplicated with
// first occurrence winning, then topped up from either source so a
// cold-start user with no collaborative signal still fills the limit.
func (e *Engine) blend(content, collaborative []store.Document, limit int) []store.Document {
	contentTake := int(math.Ceil(e.cfg.Blend.ContentShare * float64(limit)))
	if contentTake > len(content) {
		contentTake = len(content)
	}
	collabTake := limit - contentTake
	if collabTake > len(collaborative) {
		collabTake = len(collaborative)
	}

	result := make([]store.Document, 0, limit)
	taken := make(map[int64]struct{}, limit)

	appendDoc := func(doc store.Document) {
		if len(result) >= limit {
			return
		}
		if _, dup := taken[doc.ID]; dup {
			return
		}
		taken[doc.ID] = struct{}{}
		result = append(result, doc)
	}

	for _, doc := range content[:contentTake] {
		appendDoc(doc)
	}
	for _, doc := range collaborative[:collabTake] {
		appendDoc(doc)
	}

	// Top up from whatever remains.
	for _, doc := range content[contentTake:] {
		appendDoc(doc)
	}
	for _, doc := range collaborative[collabTake:] {
		appendDoc(doc)
	}

	return result
}

// FallbackRecommendations ranks all published documents by the fixed
// popularity score visits + 2*likes, descending. Serves anonymous
// users and any path with no usable personal signal.
func (e *Engine) FallbackRecommendations(ctx context.Context, limit int) ([]store.Document, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	if limit > e.cfg.Limits.MaxLimit {
		limit = e.cfg.Limits.MaxLimit
	}

	docs, err := e.store.ListPublishedDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list published documents: %w", err)
	}

	sort.SliceStable(docs, func(i, j int) bool {
		return popularity(&docs[i]) > popularity(&docs[j])
	})

	if len(docs) > limit {
		docs = docs[:limit]
	}

	e.fallbackCount.Add(1)
	metrics.RecommendationRequests.WithLabelValues("fallback").Inc()

	return docs, nil
}

func popularity(doc *store.Document) int64 {
	return doc.Visits + 2*doc.Likes
}
