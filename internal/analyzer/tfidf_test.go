// Relevance - Content Recommendation and Similarity Engine
// Copyright 2026 The Unipub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/unipub/relevance

package analyzer

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/unipub/relevance/internal/cache"
	"github.com/unipub/relevance/internal/logging"
	"github.com/unipub/relevance/internal/store"
)

func newTestAnalyzer(mem *store.Memory) *Analyzer {
	return New(mem, nil, DefaultConfig(), logging.NewTestLogger(io.Discard))
}

func TestComputeTFIDF(t *testing.T) {
	mem := store.NewMemory()
	// Three published documents sharing the keyword "technology" at
	// frequencies 5, 2 and 0.
	mem.PutDocument(store.Document{
		ID: 1, Status: store.StatusPublished, Genre: "science",
		Title:   "Technology Review",
		Content: strings.Repeat("technology ", 4) + "advances shape research",
	})
	mem.PutDocument(store.Document{
		ID: 2, Status: store.StatusPublished, Genre: "science",
		Title:   "Campus News",
		Content: "technology technology transforms teaching",
	})
	mem.PutDocument(store.Document{
		ID: 3, Status: store.StatusPublished, Genre: "science",
		Title:   "Sports Report",
		Content: "football season opens with record attendance",
	})

	a := newTestAnalyzer(mem)

	vec, err := a.ComputeTFIDF(context.Background(), 1)
	if err != nil {
		t.Fatalf("ComputeTFIDF() error = %v", err)
	}

	score, ok := vec["technology"]
	if !ok {
		t.Fatalf("vector missing 'technology': %v", vec)
	}
	if score <= 0 || score > 1 {
		t.Errorf("technology score = %v, want in (0,1]", score)
	}

	vec3, err := a.ComputeTFIDF(context.Background(), 3)
	if err != nil {
		t.Fatalf("ComputeTFIDF() error = %v", err)
	}
	if _, ok := vec3["technology"]; ok {
		t.Error("document 3 should have no 'technology' entry")
	}
}

func TestComputeTFIDFNormalized(t *testing.T) {
	mem := store.NewMemory()
	mem.PutDocument(store.Document{
		ID: 1, Status: store.StatusPublished,
		Content: "compiler compiler compiler optimization passes rewrite loops",
	})
	mem.PutDocument(store.Document{
		ID: 2, Status: store.StatusPublished,
		Content: "garbage collection pauses",
	})

	a := newTestAnalyzer(mem)

	vec, err := a.ComputeTFIDF(context.Background(), 1)
	if err != nil {
		t.Fatalf("ComputeTFIDF() error = %v", err)
	}

	sawMax := false
	for word, score := range vec {
		if score < 0 || score > 1 {
			t.Errorf("score for %q = %v, outside [0,1]", word, score)
		}
		if score == 1 {
			sawMax = true
		}
	}
	if len(vec) > 0 && !sawMax {
		t.Errorf("no score normalized to 1: %v", vec)
	}
}

func TestComputeTFIDFMissingDocument(t *testing.T) {
	a := newTestAnalyzer(store.NewMemory())

	vec, err := a.ComputeTFIDF(context.Background(), 404)
	if err != nil {
		t.Fatalf("ComputeTFIDF() error = %v", err)
	}
	if len(vec) != 0 {
		t.Errorf("got %v, want empty vector", vec)
	}
}

func TestComputeTFIDFUsesCache(t *testing.T) {
	mem := store.NewMemory()
	mem.PutDocument(store.Document{
		ID: 1, Status: store.StatusPublished,
		Content: "storage engines tradeoffs",
	})

	c := cache.New(time.Minute)
	a := New(mem, c, DefaultConfig(), logging.NewTestLogger(io.Discard))

	if _, err := a.ComputeTFIDF(context.Background(), 1); err != nil {
		t.Fatalf("ComputeTFIDF() error = %v", err)
	}
	if _, err := a.ComputeTFIDF(context.Background(), 1); err != nil {
		t.Fatalf("ComputeTFIDF() error = %v", err)
	}

	if stats := c.GetStats(); stats.Hits == 0 {
		t.Error("second computation should hit the cache")
	}
}
