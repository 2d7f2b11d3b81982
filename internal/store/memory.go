// Relevance - Content Recommendation and Similarity Engine
// Copyright 2026 The Unipub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/unipub/relevance

package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Memory is an in-memory Store for tests and in-process embedding.
// Safe for concurrent use.
type Memory struct {
	mu           sync.RWMutex
	documents    map[int64]Document
	docOrder     []int64
	interactions []Interaction
	nextEventID  int64
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		documents: make(map[int64]Document),
	}
}

// PutDocument inserts or replaces a document. Insertion order is preserved
// for corpus listing.
func (m *Memory) PutDocument(doc Document) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.documents[doc.ID]; !exists {
		m.docOrder = append(m.docOrder, doc.ID)
	}
	m.documents[doc.ID] = doc
}

// GetDocument implements Store.
func (m *Memory) GetDocument(ctx context.Context, id int64) (*Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.documents[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &doc, nil
}

// ListPublishedDocuments implements Store.
func (m *Memory) ListPublishedDocuments(ctx context.Context) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	docs := make([]Document, 0, len(m.docOrder))
	for _, id := range m.docOrder {
		doc := m.documents[id]
		if doc.Published() {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

// CountPublishedDocuments implements Store.
func (m *Memory) CountPublishedDocuments(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, doc := range m.documents {
		if doc.Published() {
			count++
		}
	}
	return count, nil
}

// CountPublishedDocumentsContaining implements Store.
func (m *Memory) CountPublishedDocumentsContaining(ctx context.Context, word string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	word = strings.ToLower(word)
	count := 0
	for _, doc := range m.documents {
		if !doc.Published() {
			continue
		}
		if strings.Contains(strings.ToLower(doc.Title), word) ||
			strings.Contains(strings.ToLower(doc.Content), word) {
			count++
		}
	}
	return count, nil
}

// GetUserInteractions implements Store.
func (m *Memory) GetUserInteractions(ctx context.Context, userID int64, sinceDays int) ([]Interaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var cutoff time.Time
	if sinceDays > 0 {
		cutoff = time.Now().AddDate(0, 0, -sinceDays)
	}

	var events []Interaction
	for _, ev := range m.interactions {
		if ev.UserID != userID {
			continue
		}
		if !cutoff.IsZero() && ev.CreatedAt.Before(cutoff) {
			continue
		}
		events = append(events, ev)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})
	return events, nil
}

// GetUsersSharingGenreInteractions implements Store.
func (m *Memory) GetUsersSharingGenreInteractions(ctx context.Context, userID int64) ([]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	genres := make(map[string]struct{})
	for _, ev := range m.interactions {
		if ev.UserID == userID && ev.Genre != "" {
			genres[ev.Genre] = struct{}{}
		}
	}
	if len(genres) == 0 {
		return nil, nil
	}

	seen := make(map[int64]struct{})
	var users []int64
	for _, ev := range m.interactions {
		if ev.UserID <= 0 || ev.UserID == userID {
			continue
		}
		if _, shared := genres[ev.Genre]; !shared {
			continue
		}
		if _, dup := seen[ev.UserID]; dup {
			continue
		}
		seen[ev.UserID] = struct{}{}
		users = append(users, ev.UserID)
	}
	return users, nil
}

// AppendInteraction implements Store.
func (m *Memory) AppendInteraction(ctx context.Context, ev Interaction) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ev.ID == "" {
		m.nextEventID++
		ev.ID = fmt.Sprintf("mem-%d", m.nextEventID)
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now()
	}
	m.interactions = append(m.interactions, ev)
	return ev.ID, nil
}

// InteractionCount returns the number of stored interactions. Test helper.
func (m *Memory) InteractionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.interactions)
}

// Ensure interface compliance.
var _ Store = (*Memory)(nil)
