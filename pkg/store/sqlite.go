package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/digitalocean/contact-form/pkg/models"
)

// SqliteStore keeps submissions in a SQLite database file
type SqliteStore struct {
	db *sql.DB
}

// OpenSqlite opens or creates the submissions database at path and makes sure
// the schema exists.
func OpenSqlite(path string) (*SqliteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS form_submissions (
			submission_id TEXT PRIMARY KEY,
			page_id TEXT NOT NULL,
			form_data TEXT NOT NULL,
			digest TEXT NOT NULL,
			submitted_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS form_submissions_page
			ON form_submissions (page_id, submitted_at);`

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SqliteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SqliteStore) Close() error {
	return s.db.Close()
}

// Save inserts a new submission row.
func (s *SqliteStore) Save(ctx context.Context, sub models.Submission) (models.Submission, error) {
	sub = prepare(sub)

	data, err := json.Marshal(sub.Data)
	if err != nil {
		return models.Submission{}, fmt.Errorf("encode form data: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO form_submissions (submission_id, page_id, form_data, digest, submitted_at)
		 VALUES (?, ?, ?, ?, ?)`,
		sub.ID,
		sub.PageID,
		string(data),
		sub.Digest,
		sub.SubmittedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return models.Submission{}, fmt.Errorf("insert submission: %w", err)
	}
	return sub, nil
}

// Count returns the number of submissions stored for a page.
func (s *SqliteStore) Count(ctx context.Context, pageID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM form_submissions WHERE page_id = ?`, pageID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count submissions: %w", err)
	}
	return n, nil
}

// List returns the submissions of a page, oldest first.
func (s *SqliteStore) List(ctx context.Context, pageID string) ([]models.Submission, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT submission_id, page_id, form_data, digest, submitted_at
		 FROM form_submissions WHERE page_id = ?
		 ORDER BY submitted_at, submission_id`, pageID)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var out []models.Submission
	for rows.Next() {
		var (
			sub         models.Submission
			data        string
			submittedAt string
		)
		if err := rows.Scan(&sub.ID, &sub.PageID, &data, &sub.Digest, &submittedAt); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		if err := json.Unmarshal([]byte(data), &sub.Data); err != nil {
			return nil, fmt.Errorf("decode form data %s: %w", sub.ID, err)
		}
		sub.SubmittedAt, err = time.Parse(time.RFC3339Nano, submittedAt)
		if err != nil {
			return nil, fmt.Errorf("parse submitted_at %s: %w", sub.ID, err)
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}
