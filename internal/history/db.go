package history

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite"
)

// DB wraps the sqlite connection used for download history
type DB struct {
	*sql.DB
}

// Open opens (or creates) the history database at path
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping history db: %w", err)
	}
	return &DB{DB: db}, nil
}

// Migrate runs all database migrations
func (db *DB) Migrate() error {
	log.Debug("running history migrations")

	migrations := []string{
		`CREATE TABLE IF NOT EXISTS downloads (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			job_id TEXT NOT NULL,
			url TEXT NOT NULL,
			title TEXT,
			output_path TEXT,
			status TEXT NOT NULL,
			file_size_bytes INTEGER,
			duration_sec INTEGER,
			finished_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_downloads_url ON downloads(url)`,
		`CREATE INDEX IF NOT EXISTS idx_downloads_finished_at ON downloads(finished_at)`,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}

	return nil
}
