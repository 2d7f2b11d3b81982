// Relevance - Content Recommendation and Similarity Engine
// Copyright 2026 The Unipub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/unipub/relevance

package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DuckDBOptions configures the DuckDB-backed store.
type DuckDBOptions struct {
	// Path is the database file path. Empty means in-memory.
	Path string

	// MaxMemory is the DuckDB memory limit (e.g. "2GB").
	MaxMemory string

	// Threads is the DuckDB thread count. Zero means runtime.NumCPU().
	Threads int

	// QueryTimeout bounds individual queries. Default 10s.
	QueryTimeout time.Duration
}

// DuckDB is a Store backed by an embedded DuckDB database.
type DuckDB struct {
	conn         *sql.DB
	queryTimeout time.Duration
	logger       zerolog.Logger
}

// OpenDuckDB opens (creating if necessary) a DuckDB-backed store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func OpenDuckDB(opts DuckDBOptions, logger zerolog.Logger) (*DuckDB, error) {
	numThreads := opts.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}
	if opts.MaxMemory == "" {
		opts.MaxMemory = "1GB"
	}
	if opts.QueryTimeout <= 0 {
		opts.QueryTimeout = 10 * time.Second
	}

	dsn := ""
	if opts.Path != "" {
		dbDir := filepath.Dir(opts.Path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("create database directory %s: %w", dbDir, err)
			}
		}
		dsn = fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s",
			opts.Path, numThreads, opts.MaxMemory)
	}

	conn, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db := &DuckDB{
		conn:         conn,
		queryTimeout: opts.QueryTimeout,
		logger:       logger.With().Str("component", "store").Logger(),
	}

	if err := db.initialize(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	db.logger.Info().Str("path", opts.Path).Msg("store opened")
	return db, nil
}

// initialize creates the documents and interactions tables if missing.
func (db *DuckDB) initialize() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			id BIGINT PRIMARY KEY,
			title VARCHAR NOT NULL,
			content VARCHAR NOT NULL,
			genre VARCHAR NOT NULL,
			status VARCHAR NOT NULL DEFAULT 'draft',
			published_at TIMESTAMP,
			visits BIGINT NOT NULL DEFAULT 0,
			likes BIGINT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS interactions (
			id VARCHAR PRIMARY KEY,
			user_id BIGINT NOT NULL DEFAULT 0,
			document_id BIGINT NOT NULL,
			kind VARCHAR NOT NULL,
			weight DOUBLE NOT NULL,
			time_spent_seconds DOUBLE NOT NULL DEFAULT 0,
			scroll_percent DOUBLE NOT NULL DEFAULT 0,
			genre VARCHAR NOT NULL DEFAULT '',
			session_id VARCHAR NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_interactions_user ON interactions (user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_interactions_document ON interactions (document_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.conn.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", strings.Fields(stmt)[2], err)
		}
	}
	return nil
}

// Close closes the underlying connection.
func (db *DuckDB) Close() error {
	return db.conn.Close()
}

// PutDocument inserts or replaces a document. Used by import tooling and
// tests; the scoring core itself never writes documents.
func (db *DuckDB) PutDocument(ctx context.Context, doc Document) error {
	ctx, cancel := context.WithTimeout(ctx, db.queryTimeout)
	defer cancel()

	_, err := db.conn.ExecContext(ctx, `
		INSERT OR REPLACE INTO documents (id, title, content, genre, status, published_at, visits, likes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		doc.ID, doc.Title, doc.Content, doc.Genre, string(doc.Status), doc.PublishedAt, doc.Visits, doc.Likes)
	if err != nil {
		return fmt.Errorf("put document: %w", err)
	}
	return nil
}

// GetDocument implements Store.
func (db *DuckDB) GetDocument(ctx context.Context, id int64) (*Document, error) {
	ctx, cancel := context.WithTimeout(ctx, db.queryTimeout)
	defer cancel()

	row := db.conn.QueryRowContext(ctx, `
		SELECT id, title, content, genre, status, COALESCE(published_at, TIMESTAMP '1970-01-01'), visits, likes
		FROM documents
		WHERE id = ?`, id)

	doc, err := scanDocument(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query document: %w", err)
	}
	return doc, nil
}

// ListPublishedDocuments implements Store.
func (db *DuckDB) ListPublishedDocuments(ctx context.Context) ([]Document, error) {
	ctx, cancel := context.WithTimeout(ctx, db.queryTimeout)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, title, content, genre, status, COALESCE(published_at, TIMESTAMP '1970-01-01'), visits, likes
		FROM documents
		WHERE status = 'published'
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query published documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return docs, nil
}

// CountPublishedDocuments implements Store.
func (db *DuckDB) CountPublishedDocuments(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, db.queryTimeout)
	defer cancel()

	var count int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM documents WHERE status = 'published'`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count published documents: %w", err)
	}
	return count, nil
}

// CountPublishedDocumentsContaining implements Store.
func (db *DuckDB) CountPublishedDocumentsContaining(ctx context.Context, word string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, db.queryTimeout)
	defer cancel()

	pattern := "%" + strings.ToLower(word) + "%"

	var count int
	err := db.conn.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM documents
		WHERE status = 'published'
		  AND (lower(title) LIKE ? OR lower(content) LIKE ?)`,
		pattern, pattern).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count documents containing: %w", err)
	}
	return count, nil
}

// GetUserInteractions implements Store.
func (db *DuckDB) GetUserInteractions(ctx context.Context, userID int64, sinceDays int) ([]Interaction, error) {
	ctx, cancel := context.WithTimeout(ctx, db.queryTimeout)
	defer cancel()

	query := `
		SELECT id, user_id, document_id, kind, weight, time_spent_seconds, scroll_percent, genre, session_id, created_at
		FROM interactions
		WHERE user_id = ?`
	args := []any{userID}

	if sinceDays > 0 {
		query += ` AND created_at >= ?`
		args = append(args, time.Now().AddDate(0, 0, -sinceDays))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query interactions: %w", err)
	}
	defer rows.Close()

	var events []Interaction
	for rows.Next() {
		var (
			ev   Interaction
			kind string
		)
		if err := rows.Scan(&ev.ID, &ev.UserID, &ev.DocumentID, &kind, &ev.Weight,
			&ev.TimeSpentSeconds, &ev.ScrollPercent, &ev.Genre, &ev.SessionID, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		ev.Kind = Kind(kind)
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interactions: %w", err)
	}
	return events, nil
}

// GetUsersSharingGenreInteractions implements Store.
func (db *DuckDB) GetUsersSharingGenreInteractions(ctx context.Context, userID int64) ([]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, db.queryTimeout)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, `
		SELECT DISTINCT other.user_id
		FROM interactions AS own
		JOIN interactions AS other
		  ON other.genre = own.genre
		WHERE own.user_id = ?
		  AND own.genre != ''
		  AND other.user_id > 0
		  AND other.user_id != ?`,
		userID, userID)
	if err != nil {
		return nil, fmt.Errorf("query similar users: %w", err)
	}
	defer rows.Close()

	var users []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		users = append(users, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate similar users: %w", err)
	}
	return users, nil
}

// AppendInteraction implements Store.
func (db *DuckDB) AppendInteraction(ctx context.Context, ev Interaction) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, db.queryTimeout)
	defer cancel()

	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now()
	}

	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO interactions (id, user_id, document_id, kind, weight, time_spent_seconds, scroll_percent, genre, session_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.ID, ev.UserID, ev.DocumentID, string(ev.Kind), ev.Weight,
		ev.TimeSpentSeconds, ev.ScrollPercent, ev.Genre, ev.SessionID, ev.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("append interaction: %w", err)
	}
	return ev.ID, nil
}

// scanner abstracts sql.Row and sql.Rows for shared scanning.
type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(s scanner) (*Document, error) {
	var (
		doc    Document
		status string
	)
	if err := s.Scan(&doc.ID, &doc.Title, &doc.Content, &doc.Genre, &status,
		&doc.PublishedAt, &doc.Visits, &doc.Likes); err != nil {
		return nil, err
	}
	doc.Status = DocumentStatus(status)
	return &doc, nil
}

// Ensure interface compliance.
var _ Store = (*DuckDB)(nil)
