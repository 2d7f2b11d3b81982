// Relevance - Content Recommendation and Similarity Engine
// Copyright 2026 The Unipub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/unipub/relevance

package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestKindWeight(t *testing.T) {
	tests := []struct {
		name   string
		kind   Kind
		extras Extras
		want   float64
	}{
		{name: "view", kind: KindView, want: 1.0},
		{name: "like", kind: KindLike, want: 3.0},
		{name: "heart", kind: KindHeart, want: 4.0},
		{name: "wow", kind: KindWow, want: 2.5},
		{name: "sad", kind: KindSad, want: 1.5},
		{name: "time spent scales", kind: KindTimeSpent, extras: Extras{TimeSpentSeconds: 120}, want: 12.0},
		{name: "scroll scales", kind: KindScroll, extras: Extras{ScrollPercent: 50}, want: 1.0},
		{name: "unknown kind", kind: Kind("share"), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.kind.Weight(tt.extras); got != tt.want {
				t.Errorf("Weight() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKindValid(t *testing.T) {
	for _, k := range Kinds {
		if !k.Valid() {
			t.Errorf("Kind %q should be valid", k)
		}
	}
	if Kind("share").Valid() {
		t.Error("unknown kind should be invalid")
	}
}

func TestMemoryGetDocument(t *testing.T) {
	mem := NewMemory()
	mem.PutDocument(Document{ID: 1, Title: "Go Concurrency", Status: StatusPublished})

	doc, err := mem.GetDocument(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetDocument() error = %v", err)
	}
	if doc.Title != "Go Concurrency" {
		t.Errorf("Title = %q, want %q", doc.Title, "Go Concurrency")
	}

	if _, err := mem.GetDocument(context.Background(), 99); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetDocument(99) error = %v, want ErrNotFound", err)
	}
}

func TestMemoryListPublishedDocuments(t *testing.T) {
	mem := NewMemory()
	mem.PutDocument(Document{ID: 1, Title: "published one", Status: StatusPublished})
	mem.PutDocument(Document{ID: 2, Title: "draft", Status: StatusDraft})
	mem.PutDocument(Document{ID: 3, Title: "published two", Status: StatusPublished})

	docs, err := mem.ListPublishedDocuments(context.Background())
	if err != nil {
		t.Fatalf("ListPublishedDocuments() error = %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d documents, want 2", len(docs))
	}
	// Insertion order is stable.
	if docs[0].ID != 1 || docs[1].ID != 3 {
		t.Errorf("got ids %d,%d, want 1,3", docs[0].ID, docs[1].ID)
	}
}

func TestMemoryCountPublishedDocumentsContaining(t *testing.T) {
	mem := NewMemory()
	mem.PutDocument(Document{ID: 1, Title: "Machine Learning", Content: "neural networks", Status: StatusPublished})
	mem.PutDocument(Document{ID: 2, Title: "Databases", Content: "query planning and learning to rank", Status: StatusPublished})
	mem.PutDocument(Document{ID: 3, Title: "Learning Draft", Content: "unpublished", Status: StatusDraft})

	tests := []struct {
		word string
		want int
	}{
		{word: "learning", want: 2},
		{word: "LEARNING", want: 2},
		{word: "neural", want: 1},
		{word: "missing", want: 0},
	}

	for _, tt := range tests {
		got, err := mem.CountPublishedDocumentsContaining(context.Background(), tt.word)
		if err != nil {
			t.Fatalf("CountPublishedDocumentsContaining(%q) error = %v", tt.word, err)
		}
		if got != tt.want {
			t.Errorf("CountPublishedDocumentsContaining(%q) = %d, want %d", tt.word, got, tt.want)
		}
	}
}

func TestMemoryInteractions(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	old := Interaction{UserID: 7, DocumentID: 1, Kind: KindView, Weight: 1.0,
		Genre: "science", CreatedAt: time.Now().AddDate(0, 0, -60)}
	recent := Interaction{UserID: 7, DocumentID: 2, Kind: KindLike, Weight: 3.0,
		Genre: "science", CreatedAt: time.Now().AddDate(0, 0, -1)}

	if _, err := mem.AppendInteraction(ctx, old); err != nil {
		t.Fatalf("AppendInteraction() error = %v", err)
	}
	id, err := mem.AppendInteraction(ctx, recent)
	if err != nil {
		t.Fatalf("AppendInteraction() error = %v", err)
	}
	if id == "" {
		t.Error("AppendInteraction() returned empty id")
	}

	all, err := mem.GetUserInteractions(ctx, 7, 0)
	if err != nil {
		t.Fatalf("GetUserInteractions() error = %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d interactions, want 2", len(all))
	}
	// Newest first.
	if all[0].DocumentID != 2 {
		t.Errorf("first interaction document = %d, want 2", all[0].DocumentID)
	}

	windowed, err := mem.GetUserInteractions(ctx, 7, 30)
	if err != nil {
		t.Fatalf("GetUserInteractions() error = %v", err)
	}
	if len(windowed) != 1 {
		t.Errorf("got %d interactions in 30-day window, want 1", len(windowed))
	}
}

func TestMemoryUsersSharingGenre(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	seed := []Interaction{
		{UserID: 1, DocumentID: 10, Kind: KindView, Genre: "science"},
		{UserID: 2, DocumentID: 11, Kind: KindView, Genre: "science"},
		{UserID: 3, DocumentID: 12, Kind: KindView, Genre: "arts"},
		{UserID: 0, DocumentID: 13, Kind: KindView, Genre: "science"}, // anonymous
	}
	for _, ev := range seed {
		if _, err := mem.AppendInteraction(ctx, ev); err != nil {
			t.Fatalf("AppendInteraction() error = %v", err)
		}
	}

	users, err := mem.GetUsersSharingGenreInteractions(ctx, 1)
	if err != nil {
		t.Fatalf("GetUsersSharingGenreInteractions() error = %v", err)
	}
	if len(users) != 1 || users[0] != 2 {
		t.Errorf("got users %v, want [2]", users)
	}
}
