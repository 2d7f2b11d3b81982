// Relevance - Content Recommendation and Similarity Engine
// Copyright 2026 The Unipub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/unipub/relevance

package analyzer

import "errors"

// ErrInvalidLimit is returned when a caller passes a non-positive limit.
// A programming error on the caller's side, rejected before any work.
var ErrInvalidLimit = errors.New("analyzer: limit must be positive")

var (
	errNegativeTTL             = errors.New("analyzer: vector TTL must not be negative")
	errNonPositiveKeywordLimit = errors.New("analyzer: keyword limits must be positive")
)
