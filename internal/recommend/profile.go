// Relevance - Content Recommendation and Similarity Engine
// Copyright 2026 The Unipub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/unipub/relevance

package recommend

import (
	"sort"
	"time"

	"github.com/unipub/relevance/internal/store"
)

// Profile is a user's derived preference aggregate. It is computed
// fresh from interaction history per request and never persisted.
type Profile struct {
	// GenreWeights maps genre to summed interaction weight within the
	// lookback window.
	GenreWeights map[string]float64

	// AvgTimeSpent is the mean seconds per time-spent event.
	AvgTimeSpent float64

	// PreferredKinds ranks interaction kinds by total weight,
	// strongest first.
	PreferredKinds []store.Kind
}

// Empty reports whether the profile carries no genre signal.
func (p *Profile) Empty() bool {
	return len(p.GenreWeights) == 0
}

// BuildProfile aggregates a user's interactions into a Profile. Only
// events within lookbackDays contribute; pass the user's full history
// and the window is applied here. A lookback of 0 uses all events.
func BuildProfile(events []store.Interaction, lookbackDays int) Profile {
	var cutoff time.Time
	if lookbackDays > 0 {
		cutoff = time.Now().AddDate(0, 0, -lookbackDays)
	}

	profile := Profile{GenreWeights: make(map[string]float64)}
	kindWeights := make(map[store.Kind]float64)

	var timeSpentSum float64
	timeSpentCount := 0

	for _, ev := range events {
		if !cutoff.IsZero() && ev.CreatedAt.Before(cutoff) {
			continue
		}

		if ev.Genre != "" {
			profile.GenreWeights[ev.Genre] += ev.Weight
		}
		kindWeights[ev.Kind] += ev.Weight

		if ev.Kind == store.KindTimeSpent {
			timeSpentSum += ev.TimeSpentSeconds
			timeSpentCount++
		}
	}

	if timeSpentCount > 0 {
		profile.AvgTimeSpent = timeSpentSum / float64(timeSpentCount)
	}

	kinds := make([]store.Kind, 0, len(kindWeights))
	for k := range kindWeights {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool {
		if kindWeights[kinds[i]] != kindWeights[kinds[j]] {
			return kindWeights[kinds[i]] > kindWeights[kinds[j]]
		}
		return kinds[i] < kinds[j]
	})
	profile.PreferredKinds = kinds

	return profile
}
