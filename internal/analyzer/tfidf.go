// Relevance - Content Recommendation and Similarity Engine
// Copyright 2026 The Unipub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/unipub/relevance

package analyzer

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/unipub/relevance/internal/store"
)

// Vector is a TF-IDF vector: stemmed word to normalized score in [0,1].
// Scores are normalized by the maximum score within the vector.
type Vector map[string]float64

// documentKeywordLimit caps how many keywords per document enter the
// TF-IDF vector.
const documentKeywordLimit = 20

// ComputeTFIDF computes the TF-IDF vector for a document. The vector is
// served from cache within VectorTTL when a cache is configured; the
// corpus may drift within that horizon, which callers accept.
//
// A missing document yields an empty vector, not an error: absence of
// data is a normal steady state for drafts and deleted ids.
func (a *Analyzer) ComputeTFIDF(ctx context.Context, documentID int64) (Vector, error) {
	cacheKey := fmt.Sprintf("tfidf:%d", documentID)
	if a.cache != nil {
		if cached, ok := a.cache.Get(cacheKey); ok {
			if vec, ok := cached.(Vector); ok {
				return vec, nil
			}
		}
	}

	doc, err := a.store.GetDocument(ctx, documentID)
	if errors.Is(err, store.ErrNotFound) {
		return Vector{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load document %d: %w", documentID, err)
	}

	total, err := a.store.CountPublishedDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("count corpus: %w", err)
	}

	keywords := ExtractKeywords(doc.Title+" "+doc.Content, documentKeywordLimit)

	vec := make(Vector, len(keywords))
	maxScore := 0.0
	for _, kw := range keywords {
		tf := float64(kw.Count)

		df, err := a.store.CountPublishedDocumentsContaining(ctx, kw.Stem)
		if err != nil {
			return nil, fmt.Errorf("document frequency for %q: %w", kw.Stem, err)
		}

		// No matching document means the word carries no corpus signal.
		idf := 0.0
		if df > 0 && total > 0 {
			idf = math.Log(float64(total) / float64(df))
		}

		score := tf * idf
		vec[kw.Stem] = score
		if score > maxScore {
			maxScore = score
		}
	}

	// Normalize by the vector's own maximum. A zero maximum leaves all
	// scores at 0 rather than dividing by zero.
	if maxScore > 0 {
		for word, score := range vec {
			vec[word] = score / maxScore
		}
	}

	if a.cache != nil {
		a.cache.SetWithTTL(cacheKey, vec, a.cfg.VectorTTL)
	}

	a.logger.Debug().
		Int64("document_id", documentID).
		Int("terms", len(vec)).
		Msg("tfidf vector computed")

	return vec, nil
}

// InvalidateVector drops a document's cached TF-IDF vector. Called when
// a document's text changes so the next read recomputes.
func (a *Analyzer) InvalidateVector(documentID int64) {
	if a.cache != nil {
		a.cache.Delete(fmt.Sprintf("tfidf:%d", documentID))
	}
}
