// Relevance - Content Recommendation and Similarity Engine
// Copyright 2026 The Unipub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/unipub/relevance

package analyzer

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/unipub/relevance/internal/store"
)

// CosineSimilarity computes the cosine similarity of two vectors over
// the union of their keys, treating missing entries as 0. Returns 0
// when either magnitude is 0 so degenerate vectors never produce NaN.
func CosineSimilarity(a, b Vector) float64 {
	union := make(map[string]struct{}, len(a)+len(b))
	for word := range a {
		union[word] = struct{}{}
	}
	for word := range b {
		union[word] = struct{}{}
	}

	var dot, magA, magB float64
	for word := range union {
		va := a[word]
		vb := b[word]
		dot += va * vb
		magA += va * va
		magB += vb * vb
	}

	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

// Similarity computes the TF-IDF cosine similarity between two
// documents. Either document having an empty vector yields 0.
func (a *Analyzer) Similarity(ctx context.Context, docA, docB int64) (float64, error) {
	vecA, err := a.ComputeTFIDF(ctx, docA)
	if err != nil {
		return 0, err
	}
	vecB, err := a.ComputeTFIDF(ctx, docB)
	if err != nil {
		return 0, err
	}
	return CosineSimilarity(vecA, vecB), nil
}

// FindSimilarDocuments ranks every other published document by TF-IDF
// similarity to the query document, adding GenreBonus for candidates
// sharing the query's genre, and returns the top limit documents. The
// query document itself is never included.
//
// Cost is O(corpus) similarity computations per call; with a cold cache
// each computation scans the corpus again for document frequencies, so
// callers on large corpora should keep the vector cache warm.
func (a *Analyzer) FindSimilarDocuments(ctx context.Context, documentID int64, limit int) ([]store.Document, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	target, err := a.store.GetDocument(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("load document %d: %w", documentID, err)
	}

	targetVec, err := a.ComputeTFIDF(ctx, documentID)
	if err != nil {
		return nil, err
	}

	corpus, err := a.store.ListPublishedDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list corpus: %w", err)
	}

	type scored struct {
		doc   store.Document
		score float64
	}
	candidates := make([]scored, 0, len(corpus))

	for _, doc := range corpus {
		if doc.ID == documentID {
			continue
		}

		vec, err := a.ComputeTFIDF(ctx, doc.ID)
		if err != nil {
			return nil, err
		}

		score := CosineSimilarity(targetVec, vec)
		if doc.Genre == target.Genre {
			score += a.cfg.GenreBonus
		}
		candidates = append(candidates, scored{doc: doc, score: score})
	}

	// Stable sort keeps corpus iteration order among equal scores.
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
