package history_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/videodl/videodl/internal/history"
	"github.com/videodl/videodl/internal/model"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test db: %v", err)
	}

	dbWrapper := &history.DB{DB: db}
	if err := dbWrapper.Migrate(); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return db
}

func finishedJob(id, url, status string) *model.DownloadJob {
	now := time.Now()
	return &model.DownloadJob{
		ID:         id,
		URL:        url,
		Title:      "Test Video",
		OutputPath: "/downloads/test.mp4",
		Status:     model.JobStatus(status),
		FileSize:   1024000,
		StartedAt:  now.Add(-30 * time.Second),
		FinishedAt: now,
	}
}

func TestStore_RecordJob(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	store := history.NewStore(db)

	err := store.RecordJob(finishedJob("job-1", "https://youtube.com/watch?v=abc", "Succeeded"))
	if err != nil {
		t.Fatalf("Failed to record job: %v", err)
	}

	count, err := store.Count()
	if err != nil {
		t.Fatalf("Failed to count: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected count 1, got %d", count)
	}
}

func TestStore_RecordJob_RejectsActiveJob(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	store := history.NewStore(db)

	job := finishedJob("job-1", "https://youtube.com/watch?v=abc", "Running")
	if err := store.RecordJob(job); err == nil {
		t.Error("Expected error recording a non-terminal job, got nil")
	}
}

func TestStore_Recent(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	store := history.NewStore(db)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		job := finishedJob("job-"+string(rune('a'+i)), "https://youtube.com/watch?v=v"+string(rune('a'+i)), "Succeeded")
		job.FinishedAt = base.Add(time.Duration(i) * time.Minute)
		if err := store.RecordJob(job); err != nil {
			t.Fatalf("Failed to record job %d: %v", i, err)
		}
	}

	records, err := store.Recent(3)
	if err != nil {
		t.Fatalf("Failed to query recent: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}

	// Newest first
	if records[0].JobID != "job-e" {
		t.Errorf("Expected newest record first (job-e), got %s", records[0].JobID)
	}
	if records[0].Title != "Test Video" {
		t.Errorf("Expected title 'Test Video', got %s", records[0].Title)
	}
	if records[0].FileSizeBytes != 1024000 {
		t.Errorf("Expected file size 1024000, got %d", records[0].FileSizeBytes)
	}
	if records[0].DurationSec != 30 {
		t.Errorf("Expected duration 30s, got %d", records[0].DurationSec)
	}
}

func TestStore_RecentEmpty(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	store := history.NewStore(db)

	records, err := store.Recent(10)
	if err != nil {
		t.Fatalf("Failed to query recent: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Expected no records, got %d", len(records))
	}
}

func TestStore_Clear(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	store := history.NewStore(db)

	if err := store.RecordJob(finishedJob("job-1", "https://youtube.com/watch?v=abc", "Failed")); err != nil {
		t.Fatalf("Failed to record job: %v", err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Failed to clear: %v", err)
	}

	count, err := store.Count()
	if err != nil {
		t.Fatalf("Failed to count: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected empty history after clear, got %d", count)
	}
}
