// Relevance - Content Recommendation and Similarity Engine
// Copyright 2026 The Unipub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/unipub/relevance

// Package store defines the document/interaction repository consumed by the
// analyzer and the recommendation engine, together with its data model.
//
// The scoring logic never talks to a database directly; it goes through the
// Store interface so any persistence technology can back it. Two
// implementations ship with the module: a DuckDB-backed store for the daemon
// and an in-memory store for tests and in-process embedding.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("store: document not found")

// Store is the repository interface for documents and interaction events.
// Implementations must be safe for concurrent use.
//
// Absence of data is a normal steady state: list and count methods return
// empty results rather than errors when nothing matches.
type Store interface {
	// GetDocument returns the document with the given id, or ErrNotFound.
	GetDocument(ctx context.Context, id int64) (*Document, error)

	// ListPublishedDocuments returns all published documents in stable
	// corpus order.
	ListPublishedDocuments(ctx context.Context) ([]Document, error)

	// CountPublishedDocuments returns the published corpus size.
	CountPublishedDocuments(ctx context.Context) (int, error)

	// CountPublishedDocumentsContaining returns how many published
	// documents contain the word as a case-insensitive substring of
	// their title or body.
	CountPublishedDocumentsContaining(ctx context.Context, word string) (int, error)

	// GetUserInteractions returns a user's interactions, newest first.
	// sinceDays limits the lookback window; zero or negative means all.
	GetUserInteractions(ctx context.Context, userID int64, sinceDays int) ([]Interaction, error)

	// GetUsersSharingGenreInteractions returns ids of users who have
	// interacted with at least one genre the given user has also
	// interacted with. The given user is excluded.
	GetUsersSharingGenreInteractions(ctx context.Context, userID int64) ([]int64, error)

	// AppendInteraction persists one interaction event and returns its id.
	// Events are append-only; the store never mutates or deletes them.
	AppendInteraction(ctx context.Context, ev Interaction) (string, error)
}
