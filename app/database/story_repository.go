package database

import (
	"database/sql"
	"fmt"
	"time"
)

// SQLiteStoryRepository handles database operations for seen stories
type SQLiteStoryRepository struct {
	db *DB
}

var _ StoryRepository = (*SQLiteStoryRepository)(nil)

// NewStoryRepository creates a new story repository
func NewStoryRepository(db *DB) *SQLiteStoryRepository {
	return &SQLiteStoryRepository{db: db}
}

// StoryExists reports whether a story with exactly this URL has been posted
func (r *SQLiteStoryRepository) StoryExists(url string) (bool, error) {
	var exists int
	err := r.db.QueryRow(`SELECT 1 FROM stories WHERE url = ? LIMIT 1`, url).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check story: %w", err)
	}

	return true, nil
}

// UpsertStory inserts a story or replaces title and summary of an existing one
func (r *SQLiteStoryRepository) UpsertStory(url, title, summary string) error {
	_, err := r.db.Exec(`
		INSERT INTO stories (url, title, summary, posted_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (url) DO UPDATE SET
			title = excluded.title,
			summary = excluded.summary,
			posted_at = excluded.posted_at
	`, url, title, summary, time.Now().UTC())

	if err != nil {
		return fmt.Errorf("failed to upsert story: %w", err)
	}

	return nil
}

// GetStory retrieves a story by URL, nil if it was never posted
func (r *SQLiteStoryRepository) GetStory(url string) (*Story, error) {
	var story Story
	var postedAt sql.NullTime
	err := r.db.QueryRow(`
		SELECT url, COALESCE(title, ''), COALESCE(summary, ''), posted_at
		FROM stories
		WHERE url = ?
	`, url).Scan(&story.URL, &story.Title, &story.Summary, &postedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get story: %w", err)
	}

	if postedAt.Valid {
		story.PostedAt = &postedAt.Time
	}

	return &story, nil
}

// GetStoryCount returns the total number of posted stories
func (r *SQLiteStoryRepository) GetStoryCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM stories").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get story count: %w", err)
	}
	return count, nil
}
