// Relevance - Content Recommendation and Similarity Engine
// Copyright 2026 The Unipub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/unipub/relevance

package store

import "time"

// DocumentStatus is the lifecycle state of a document.
type DocumentStatus string

const (
	// StatusDraft marks an unpublished document. Drafts are invisible to
	// the analyzer and the recommendation engine.
	StatusDraft DocumentStatus = "draft"

	// StatusPublished marks a document visible to readers.
	StatusPublished DocumentStatus = "published"
)

// Document is an article owned by the surrounding publication platform.
// The recommendation core treats documents as read-only input.
type Document struct {
	// ID is the stable document identifier.
	ID int64 `json:"id"`

	// Title is the document title.
	Title string `json:"title"`

	// Content is the raw body text. May contain markup.
	Content string `json:"content"`

	// Genre is the enumerated category tag (e.g. "technology", "sports").
	Genre string `json:"genre"`

	// Status is the lifecycle state.
	Status DocumentStatus `json:"status"`

	// PublishedAt is when the document went live. Zero for drafts.
	PublishedAt time.Time `json:"published_at"`

	// Visits is the total recorded visit count.
	Visits int64 `json:"visits"`

	// Likes is the total recorded like count.
	Likes int64 `json:"likes"`
}

// Published reports whether the document is visible to readers.
func (d *Document) Published() bool {
	return d.Status == StatusPublished
}

// Kind classifies a user interaction with a document.
type Kind string

const (
	// KindView is a page view.
	KindView Kind = "view"
	// KindLike is a like reaction.
	KindLike Kind = "like"
	// KindHeart is a heart reaction.
	KindHeart Kind = "heart"
	// KindWow is a wow reaction.
	KindWow Kind = "wow"
	// KindSad is a sad reaction.
	KindSad Kind = "sad"
	// KindTimeSpent is a dwell-time measurement.
	KindTimeSpent Kind = "time_spent"
	// KindScroll is a scroll-depth measurement.
	KindScroll Kind = "scroll"
)

// Kinds lists all valid interaction kinds.
var Kinds = []Kind{KindView, KindLike, KindHeart, KindWow, KindSad, KindTimeSpent, KindScroll}

// Valid reports whether k is a recognized interaction kind.
func (k Kind) Valid() bool {
	switch k {
	case KindView, KindLike, KindHeart, KindWow, KindSad, KindTimeSpent, KindScroll:
		return true
	default:
		return false
	}
}

// Positive reports whether k is a positive reaction. Positive reactions
// drive collaborative candidate ranking.
func (k Kind) Positive() bool {
	switch k {
	case KindLike, KindHeart, KindWow:
		return true
	default:
		return false
	}
}

// Extras carries optional raw measurements supplied with an interaction.
type Extras struct {
	// TimeSpentSeconds is the dwell time for time_spent interactions.
	TimeSpentSeconds float64 `json:"time_spent,omitempty"`

	// ScrollPercent is the scroll depth (0-100) for scroll interactions.
	ScrollPercent float64 `json:"scroll_percentage,omitempty"`

	// SessionID groups interactions within a browsing session.
	SessionID string `json:"session_id,omitempty"`
}

// Weight derives the interaction weight from the kind and raw measurements.
// The table is fixed; weights are never caller-supplied. Missing measurements
// default to zero, which yields a zero weight for the measured kinds.
func (k Kind) Weight(ex Extras) float64 {
	switch k {
	case KindView:
		return 1.0
	case KindLike:
		return 3.0
	case KindHeart:
		return 4.0
	case KindWow:
		return 2.5
	case KindSad:
		return 1.5
	case KindTimeSpent:
		return ex.TimeSpentSeconds * 0.1
	case KindScroll:
		return ex.ScrollPercent * 0.02
	default:
		return 0
	}
}

// Interaction is one user action on one document. Immutable once appended;
// retention is the surrounding platform's concern.
type Interaction struct {
	// ID is the event identifier, assigned at append time.
	ID string `json:"id"`

	// UserID identifies the acting user. Zero for anonymous visitors.
	UserID int64 `json:"user_id,omitempty"`

	// DocumentID identifies the target document.
	DocumentID int64 `json:"document_id"`

	// Kind classifies the interaction.
	Kind Kind `json:"kind"`

	// Weight is derived from Kind and the raw measurements at append time.
	Weight float64 `json:"weight"`

	// TimeSpentSeconds is the raw dwell time, if measured.
	TimeSpentSeconds float64 `json:"time_spent,omitempty"`

	// ScrollPercent is the raw scroll depth, if measured.
	ScrollPercent float64 `json:"scroll_percentage,omitempty"`

	// Genre is the document's genre snapshotted at write time, so profile
	// aggregation survives later re-categorization.
	Genre string `json:"genre,omitempty"`

	// SessionID groups interactions within a browsing session.
	SessionID string `json:"session_id,omitempty"`

	// CreatedAt is when the interaction was recorded.
	CreatedAt time.Time `json:"created_at"`
}

// Anonymous reports whether the interaction has no associated user.
func (i *Interaction) Anonymous() bool {
	return i.UserID <= 0
}
