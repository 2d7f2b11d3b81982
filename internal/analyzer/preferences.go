// Relevance - Content Recommendation and Similarity Engine
// Copyright 2026 The Unipub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/unipub/relevance

package analyzer

import (
	"context"
	"errors"
	"fmt"

	"github.com/unipub/relevance/internal/store"
)

// UserContentPreferences builds a user's keyword preference profile:
// for every interaction above the significant-weight cutoff, the
// interacted document's top keywords accumulate frequency times event
// weight, then the whole map is normalized by its maximum.
//
// A user with no qualifying interactions gets an empty map.
func (a *Analyzer) UserContentPreferences(ctx context.Context, userID int64) (map[string]float64, error) {
	events, err := a.store.GetUserInteractions(ctx, userID, 0)
	if err != nil {
		return nil, fmt.Errorf("load interactions for user %d: %w", userID, err)
	}

	prefs := make(map[string]float64)
	for _, ev := range events {
		if ev.Weight <= a.cfg.SignificantWeight {
			continue
		}

		doc, err := a.store.GetDocument(ctx, ev.DocumentID)
		if errors.Is(err, store.ErrNotFound) {
			// Document removed since the interaction; signal is gone.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load document %d: %w", ev.DocumentID, err)
		}

		for _, kw := range ExtractKeywords(doc.Title+" "+doc.Content, a.cfg.ProfileKeywordLimit) {
			prefs[kw.Stem] += float64(kw.Count) * ev.Weight
		}
	}

	maxWeight := 0.0
	for _, w := range prefs {
		if w > maxWeight {
			maxWeight = w
		}
	}
	if maxWeight > 0 {
		for word, w := range prefs {
			prefs[word] = w / maxWeight
		}
	}

	return prefs, nil
}

// ScoreDocumentForUser scores a document against a user's content
// preference profile: the mean of profileWeight times documentFrequency
// over keywords present in both. An empty profile or zero keyword
// overlap scores 0.
func (a *Analyzer) ScoreDocumentForUser(ctx context.Context, documentID, userID int64) (float64, error) {
	prefs, err := a.UserContentPreferences(ctx, userID)
	if err != nil {
		return 0, err
	}
	if len(prefs) == 0 {
		return 0, nil
	}

	doc, err := a.store.GetDocument(ctx, documentID)
	if errors.Is(err, store.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load document %d: %w", documentID, err)
	}

	var sum float64
	matches := 0
	for _, kw := range ExtractKeywords(doc.Title+" "+doc.Content, a.cfg.ScoreKeywordLimit) {
		if weight, ok := prefs[kw.Stem]; ok {
			sum += weight * float64(kw.Count)
			matches++
		}
	}

	if matches == 0 {
		return 0, nil
	}
	return sum / float64(matches), nil
}
