// Relevance - Content Recommendation and Similarity Engine
// Copyright 2026 The Unipub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/unipub/relevance

package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/unipub/relevance/internal/metrics"
	"github.com/unipub/relevance/internal/store"
)

// RecordInteraction validates and persists one interaction event. The
// weight is derived from the kind and extras via the fixed weight
// table; the document's current genre is snapshotted at write time.
//
// Persistence is best-effort: a failing append is logged and swallowed
// so the user action that produced the signal never fails because of
// it. The only error surfaced is an unrecognized kind, which is
// rejected before any weight computation or store call.
func (e *Engine) RecordInteraction(ctx context.Context, userID, documentID int64, kind store.Kind, extras store.Extras) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	weight := kind.Weight(extras)

	// Genre snapshot. A missing or unreadable document leaves the
	// snapshot empty rather than failing the caller.
	genre := ""
	doc, err := e.store.GetDocument(ctx, documentID)
	switch {
	case err == nil:
		genre = doc.Genre
	case errors.Is(err, store.ErrNotFound):
	default:
		e.logger.Warn().Err(err).
			Int64("document_id", documentID).
			Msg("genre snapshot unavailable")
	}

	ev := store.Interaction{
		ID:               uuid.NewString(),
		UserID:           userID,
		DocumentID:       documentID,
		Kind:             kind,
		Weight:           weight,
		TimeSpentSeconds: extras.TimeSpentSeconds,
		ScrollPercent:    extras.ScrollPercent,
		Genre:            genre,
		SessionID:        extras.SessionID,
		CreatedAt:        time.Now(),
	}

	_, err = e.breaker.Execute(func() (string, error) {
		return e.store.AppendInteraction(ctx, ev)
	})
	if err != nil {
		e.recordFailures.Add(1)
		metrics.InteractionRecordFailures.Inc()
		e.logger.Error().Err(err).
			Int64("user_id", userID).
			Int64("document_id", documentID).
			Str("kind", string(kind)).
			Msg("interaction append failed")
		return nil
	}

	e.recordedCount.Add(1)
	metrics.InteractionsRecorded.WithLabelValues(string(kind)).Inc()
	return nil
}
