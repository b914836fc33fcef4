// Package storage persists completed run results in an embedded
// SQLite database and stages uploaded files on disk for probing.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"clipinsight/internal/apperr"
	"clipinsight/internal/pipeline"
)

const transcriptPreviewLen = 100

// ResultStore records completed runs. The pipeline itself keeps no
// history; persistence happens here, after a run completes.
type ResultStore struct {
	db *sql.DB
}

// ResultSummary is the list-view row.
type ResultSummary struct {
	ID                string `json:"id"`
	SourceLabel       string `json:"source_label"`
	Sentiment         string `json:"sentiment"`
	WordCount         int    `json:"word_count"`
	DurationLabel     string `json:"duration_label"`
	TranscriptPreview string `json:"transcript_preview"`
	ProcessedAt       string `json:"processed_at"`
}

// NewResultStore opens (and if needed initializes) the database at
// dbPath.
func NewResultStore(dbPath string) (*ResultStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS results (
		id TEXT PRIMARY KEY,
		source_file_name TEXT,
		source_file_size TEXT,
		source_url TEXT,
		transcript TEXT NOT NULL,
		summary TEXT NOT NULL,
		key_insights TEXT NOT NULL,
		sentiment TEXT NOT NULL,
		topics TEXT NOT NULL,
		action_items TEXT NOT NULL,
		duration_label TEXT NOT NULL,
		word_count INTEGER NOT NULL,
		processed_at TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_results_created_at ON results(created_at);
	`
	if _, err := db.Exec(createTableSQL); err != nil {
		return nil, fmt.Errorf("failed to create results table: %w", err)
	}

	return &ResultStore{db: db}, nil
}

// Save records one completed result.
func (s *ResultStore) Save(r *pipeline.Result) error {
	insights, _ := json.Marshal(r.KeyInsights)
	topics, _ := json.Marshal(r.Topics)
	actions, _ := json.Marshal(r.ActionItems)

	_, err := s.db.Exec(`
	INSERT INTO results (id, source_file_name, source_file_size, source_url, transcript,
		summary, key_insights, sentiment, topics, action_items,
		duration_label, word_count, processed_at, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.SourceFileName, r.SourceFileSizeLabel, r.SourceURL, r.TranscriptText,
		r.Summary, string(insights), r.Sentiment, string(topics), string(actions),
		r.DurationLabel, r.WordCount, r.ProcessedAt, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}
	return nil
}

// Get returns one stored result by ID.
func (s *ResultStore) Get(id string) (*pipeline.Result, error) {
	row := s.db.QueryRow(`
	SELECT id, source_file_name, source_file_size, source_url, transcript,
		summary, key_insights, sentiment, topics, action_items,
		duration_label, word_count, processed_at
	FROM results WHERE id = ?`, id)

	var (
		r                         pipeline.Result
		insights, topics, actions string
	)
	err := row.Scan(&r.ID, &r.SourceFileName, &r.SourceFileSizeLabel, &r.SourceURL,
		&r.TranscriptText, &r.Summary, &insights, &r.Sentiment, &topics, &actions,
		&r.DurationLabel, &r.WordCount, &r.ProcessedAt)
	if err == sql.ErrNoRows {
		return nil, &apperr.NotFoundError{Resource: "result " + id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load result: %w", err)
	}

	json.Unmarshal([]byte(insights), &r.KeyInsights)
	json.Unmarshal([]byte(topics), &r.Topics)
	json.Unmarshal([]byte(actions), &r.ActionItems)
	return &r, nil
}

// List returns summaries of the most recent runs, newest first.
func (s *ResultStore) List(limit, offset int) ([]ResultSummary, error) {
	rows, err := s.db.Query(`
	SELECT id, source_file_name, source_url, transcript, sentiment,
		word_count, duration_label, processed_at
	FROM results ORDER BY created_at DESC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	defer rows.Close()

	summaries := make([]ResultSummary, 0)
	for rows.Next() {
		var (
			item                  ResultSummary
			fileName, url, trans  string
		)
		if err := rows.Scan(&item.ID, &fileName, &url, &trans, &item.Sentiment,
			&item.WordCount, &item.DurationLabel, &item.ProcessedAt); err != nil {
			continue
		}
		if fileName != "" {
			item.SourceLabel = fileName
		} else {
			item.SourceLabel = url
		}
		if len(trans) > transcriptPreviewLen {
			trans = trans[:transcriptPreviewLen] + "..."
		}
		item.TranscriptPreview = trans
		summaries = append(summaries, item)
	}
	return summaries, rows.Err()
}

// Delete removes one stored result.
func (s *ResultStore) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM results WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete result: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &apperr.NotFoundError{Resource: "result " + id}
	}
	return nil
}

// Close closes the database.
func (s *ResultStore) Close() error {
	return s.db.Close()
}
