package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/videodl/videodl/internal/model"
)

// Record is one finished download as stored in history
type Record struct {
	ID            int64
	JobID         string
	URL           string
	Title         string
	OutputPath    string
	Status        string
	FileSizeBytes int64
	DurationSec   int64
	FinishedAt    time.Time
}

// Store persists finished download jobs
type Store struct {
	db *sql.DB
}

// NewStore creates a new history store
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// RecordJob stores a terminal job. Non-terminal jobs are rejected.
func (s *Store) RecordJob(job *model.DownloadJob) error {
	if !job.Status.IsTerminal() {
		return fmt.Errorf("job is not finished: %s", job.Status)
	}

	var durationSec int64
	if !job.StartedAt.IsZero() && !job.FinishedAt.IsZero() {
		durationSec = int64(job.FinishedAt.Sub(job.StartedAt).Seconds())
	}

	query := `
		INSERT INTO downloads
		(job_id, url, title, output_path, status, file_size_bytes, duration_sec, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query,
		job.ID,
		job.URL,
		job.Title,
		job.OutputPath,
		job.Status.String(),
		job.FileSize,
		durationSec,
		job.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record download: %w", err)
	}

	return nil
}

// Recent returns the newest records, most recent first
func (s *Store) Recent(limit int) ([]Record, error) {
	query := `
		SELECT id, job_id, url, title, output_path, status, file_size_bytes, duration_sec, finished_at
		FROM downloads
		ORDER BY finished_at DESC, id DESC
		LIMIT ?
	`

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.JobID, &r.URL, &r.Title, &r.OutputPath,
			&r.Status, &r.FileSizeBytes, &r.DurationSec, &r.FinishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		records = append(records, r)
	}

	return records, rows.Err()
}

// Count returns the total number of history records
func (s *Store) Count() (int64, error) {
	var count int64
	err := s.db.QueryRow("SELECT COUNT(*) FROM downloads").Scan(&count)
	return count, err
}

// Clear removes all history records
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM downloads"); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}
