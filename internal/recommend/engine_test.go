// Relevance - Content Recommendation and Similarity Engine
// Copyright 2026 The Unipub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/unipub/relevance

package recommend

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/unipub/relevance/internal/logging"
	"github.com/unipub/relevance/internal/store"
)

func newTestEngine(t *testing.T, mem *store.Memory) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	cfg.CacheTTL = 0
	e, err := NewEngine(mem, nil, cfg, logging.NewTestLogger(io.Discard))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

func seedCorpus(mem *store.Memory) {
	docs := []store.Document{
		{ID: 1, Genre: "science", Status: store.StatusPublished, Visits: 100, Likes: 10},
		{ID: 2, Genre: "science", Status: store.StatusPublished, Visits: 50, Likes: 40},
		{ID: 3, Genre: "arts", Status: store.StatusPublished, Visits: 200, Likes: 0},
		{ID: 4, Genre: "arts", Status: store.StatusPublished, Visits: 10, Likes: 1},
		{ID: 5, Genre: "sports", Status: store.StatusPublished, Visits: 5, Likes: 0},
		{ID: 6, Genre: "sports", Status: store.StatusDraft, Visits: 999, Likes: 999},
	}
	for _, d := range docs {
		mem.PutDocument(d)
	}
}

func TestFallbackRecommendations(t *testing.T) {
	mem := store.NewMemory()
	seedCorpus(mem)
	e := newTestEngine(t, mem)

	got, err := e.FallbackRecommendations(context.Background(), 3)
	if err != nil {
		t.Fatalf("FallbackRecommendations() error = %v", err)
	}

	// Popularity = visits + 2*likes: doc3=200, doc2=130, doc1=120.
	wantOrder := []int64{3, 2, 1}
	if len(got) != len(wantOrder) {
		t.Fatalf("got %d documents, want %d", len(got), len(wantOrder))
	}
	for i, want := range wantOrder {
		if got[i].ID != want {
			t.Errorf("position %d = %d, want %d", i, got[i].ID, want)
		}
	}
}

func TestFallbackExcludesDrafts(t *testing.T) {
	mem := store.NewMemory()
	seedCorpus(mem)
	e := newTestEngine(t, mem)

	got, err := e.FallbackRecommendations(context.Background(), 10)
	if err != nil {
		t.Fatalf("FallbackRecommendations() error = %v", err)
	}
	for _, doc := range got {
		if doc.ID == 6 {
			t.Error("draft document surfaced in fallback ranking")
		}
	}
}

func TestRecommendationsAnonymousUsesFallback(t *testing.T) {
	mem := store.NewMemory()
	seedCorpus(mem)
	e := newTestEngine(t, mem)

	got, err := e.Recommendations(context.Background(), 0, 5)
	if err != nil {
		t.Fatalf("Recommendations() error = %v", err)
	}
	if len(got) == 0 {
		t.Fatal("expected fallback results for anonymous user")
	}
	if got[0].ID != 3 {
		t.Errorf("top result = %d, want most popular document 3", got[0].ID)
	}

	seenIDs := make(map[int64]struct{})
	for _, doc := range got {
		if _, dup := seenIDs[doc.ID]; dup {
			t.Errorf("duplicate document %d in result", doc.ID)
		}
		seenIDs[doc.ID] = struct{}{}
	}
}

func TestRecommendationsExcludesInteracted(t *testing.T) {
	mem := store.NewMemory()
	seedCorpus(mem)
	ctx := context.Background()

	if _, err := mem.AppendInteraction(ctx, store.Interaction{
		UserID: 7, DocumentID: 1, Kind: store.KindLike, Weight: 3.0, Genre: "science",
	}); err != nil {
		t.Fatal(err)
	}

	e := newTestEngine(t, mem)

	got, err := e.Recommendations(ctx, 7, 3)
	if err != nil {
		t.Fatalf("Recommendations() error = %v", err)
	}
	for _, doc := range got {
		if doc.ID == 1 {
			t.Error("already-interacted document recommended")
		}
	}
}

func TestRecommendationsGenreAffinity(t *testing.T) {
	mem := store.NewMemory()
	seedCorpus(mem)
	ctx := context.Background()

	// Strong science signal: the unseen science document should rank
	// ahead of the floor-scored genres.
	if _, err := mem.AppendInteraction(ctx, store.Interaction{
		UserID: 7, DocumentID: 1, Kind: store.KindHeart, Weight: 4.0, Genre: "science",
	}); err != nil {
		t.Fatal(err)
	}

	e := newTestEngine(t, mem)

	got, err := e.Recommendations(ctx, 7, 4)
	if err != nil {
		t.Fatalf("Recommendations() error = %v", err)
	}
	if len(got) == 0 {
		t.Fatal("expected results")
	}
	if got[0].ID != 2 {
		t.Errorf("top result = %d, want science document 2", got[0].ID)
	}
}

func TestRecommendationsColdStart(t *testing.T) {
	mem := store.NewMemory()
	seedCorpus(mem)
	e := newTestEngine(t, mem)

	// User 42 has no history at all; content-based candidates degrade
	// to the flat floor and collaborative ones are empty, but the
	// caller still gets a full list.
	got, err := e.Recommendations(context.Background(), 42, 4)
	if err != nil {
		t.Fatalf("Recommendations() error = %v", err)
	}
	if len(got) != 4 {
		t.Errorf("got %d documents, want 4", len(got))
	}
}

func TestRecommendationsCollaborative(t *testing.T) {
	mem := store.NewMemory()
	seedCorpus(mem)
	ctx := context.Background()

	// User 7 and user 8 share the science genre; user 8 hearted the
	// arts document 4, making it a collaborative candidate for user 7.
	seed := []store.Interaction{
		{UserID: 7, DocumentID: 1, Kind: store.KindView, Weight: 1.0, Genre: "science"},
		{UserID: 8, DocumentID: 2, Kind: store.KindView, Weight: 1.0, Genre: "science"},
		{UserID: 8, DocumentID: 4, Kind: store.KindHeart, Weight: 4.0, Genre: "arts"},
	}
	for _, ev := range seed {
		if _, err := mem.AppendInteraction(ctx, ev); err != nil {
			t.Fatal(err)
		}
	}

	e := newTestEngine(t, mem)

	got, err := e.Recommendations(ctx, 7, 5)
	if err != nil {
		t.Fatalf("Recommendations() error = %v", err)
	}

	found := false
	for _, doc := range got {
		if doc.ID == 4 {
			found = true
		}
	}
	if !found {
		t.Errorf("collaborative candidate 4 missing from %v", ids(got))
	}
}

func TestRecommendationsInvalidLimit(t *testing.T) {
	e := newTestEngine(t, store.NewMemory())

	if _, err := e.Recommendations(context.Background(), 7, 0); !errors.Is(err, ErrInvalidLimit) {
		t.Errorf("zero limit error = %v, want ErrInvalidLimit", err)
	}
	if _, err := e.FallbackRecommendations(context.Background(), -1); !errors.Is(err, ErrInvalidLimit) {
		t.Errorf("negative limit error = %v, want ErrInvalidLimit", err)
	}
}

func TestRecommendationsLimitClamped(t *testing.T) {
	mem := store.NewMemory()
	seedCorpus(mem)

	cfg := DefaultConfig()
	cfg.Limits.DefaultLimit = 2
	cfg.Limits.MaxLimit = 2
	cfg.CacheTTL = 0
	e, err := NewEngine(mem, nil, cfg, logging.NewTestLogger(io.Discard))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	got, err := e.Recommendations(context.Background(), 42, 50)
	if err != nil {
		t.Fatalf("Recommendations() error = %v", err)
	}
	if len(got) > 2 {
		t.Errorf("got %d documents, want at most the max limit 2", len(got))
	}
}

func ids(docs []store.Document) []int64 {
	out := make([]int64, len(docs))
	for i, d := range docs {
		out[i] = d.ID
	}
	return out
}
