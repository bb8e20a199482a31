package model

import (
	"fmt"
	"testing"
	"time"
)

func TestDownloadJob_GetETAString(t *testing.T) {
	tests := []struct {
		etaSec   int
		expected string
	}{
		{-1, "—"},
		{0, "—"},
		{30, "00:30"},
		{90, "01:30"},
		{3600, "01:00:00"},
		{3661, "01:01:01"},
		{7323, "02:02:03"},
	}

	for _, test := range tests {
		job := &DownloadJob{ETASec: test.etaSec}
		result := job.GetETAString()
		if result != test.expected {
			t.Errorf("GetETAString() with ETASec=%d = %s, expected %s", test.etaSec, result, test.expected)
		}
	}
}

func TestDownloadJob_GetDisplayTitle(t *testing.T) {
	tests := []struct {
		title      string
		outputPath string
		url        string
		expected   string
	}{
		{"Video Title", "", "https://youtube.com/watch?v=123", "Video Title"},
		{"", "", "https://youtube.com/watch?v=123", "https://youtube.com/watch?v=123"},
		{"", "/home/user/Downloads/My Clip.mp4", "https://youtube.com/watch?v=456", "My Clip"},
		{"https://youtube.com/watch?v=789", "", "https://youtube.com/watch?v=789", "https://youtube.com/watch?v=789"},
	}

	for _, test := range tests {
		job := &DownloadJob{
			Title:      test.title,
			OutputPath: test.outputPath,
			URL:        test.url,
		}
		result := job.GetDisplayTitle()
		if result != test.expected {
			t.Errorf("GetDisplayTitle() with title='%s', path='%s', url='%s' = '%s', expected '%s'",
				test.title, test.outputPath, test.url, result, test.expected)
		}
	}
}

func TestDownloadJob_Creation(t *testing.T) {
	now := time.Now()
	job := &DownloadJob{
		ID:        "job-123",
		URL:       "https://youtube.com/watch?v=test",
		Status:    JobStatusQueued,
		Progress:  0.0,
		Percent:   0,
		ETASec:    -1,
		StartedAt: now,
	}

	if job.ID != "job-123" {
		t.Errorf("Expected ID to be 'job-123', got '%s'", job.ID)
	}

	if job.Status != JobStatusQueued {
		t.Errorf("Expected status to be JobStatusQueued, got %s", job.Status)
	}

	if !job.StartedAt.Equal(now) {
		t.Errorf("Expected StartedAt to be %v, got %v", now, job.StartedAt)
	}
}

func TestDownloadJob_AppendLogBounded(t *testing.T) {
	job := &DownloadJob{}

	for i := 0; i < MaxLogLines+50; i++ {
		job.AppendLog(fmt.Sprintf("line %d", i))
	}

	lines := job.LogLines()
	if len(lines) != MaxLogLines {
		t.Fatalf("Expected %d buffered lines, got %d", MaxLogLines, len(lines))
	}

	if lines[0] != "line 50" {
		t.Errorf("Expected oldest kept line to be 'line 50', got '%s'", lines[0])
	}
	if lines[len(lines)-1] != fmt.Sprintf("line %d", MaxLogLines+49) {
		t.Errorf("Expected newest line to be 'line %d', got '%s'", MaxLogLines+49, lines[len(lines)-1])
	}
}

func TestDownloadJob_LogTail(t *testing.T) {
	job := &DownloadJob{}
	job.AppendLog("first")
	job.AppendLog("second\n")
	job.AppendLog("")
	job.AppendLog("third")

	if got := job.LogTail(2); got != "second\nthird" {
		t.Errorf("LogTail(2) = %q, expected %q", got, "second\nthird")
	}
	if got := job.LogTail(10); got != "first\nsecond\nthird" {
		t.Errorf("LogTail(10) = %q, expected %q", got, "first\nsecond\nthird")
	}
	if got := job.LogTail(0); got != "" {
		t.Errorf("LogTail(0) = %q, expected empty", got)
	}
}
