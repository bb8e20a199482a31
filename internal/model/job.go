package model

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// MaxLogLines bounds the per-job log buffer. yt-dlp can emit thousands of
// progress lines on long downloads; only the newest ones matter for
// diagnostics.
const MaxLogLines = 500

// DownloadJob represents a single user-submitted URL tracked through the pool
type DownloadJob struct {
	ID         string
	URL        string
	OutputDir  string
	Status     JobStatus
	Progress   float64   // 0.0 to 1.0
	Percent    int       // 0 to 100
	Speed      string    // human readable speed (e.g., "1.2MB/s")
	ETASec     int       // ETA in seconds, -1 if unknown
	LastError  string    // last error message if any
	OutputPath string    // path to downloaded file
	Title      string    // video title
	FileSize   int64     // file size in bytes
	StartedAt  time.Time // when the job was submitted
	FinishedAt time.Time // when the job reached a terminal state

	logMu    sync.Mutex
	logLines []string
}

// AppendLog appends one line of external-tool output to the job log.
// Workers and the UI read the buffer concurrently, so access is guarded.
func (dj *DownloadJob) AppendLog(line string) {
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return
	}

	dj.logMu.Lock()
	defer dj.logMu.Unlock()

	dj.logLines = append(dj.logLines, line)
	if len(dj.logLines) > MaxLogLines {
		dj.logLines = dj.logLines[len(dj.logLines)-MaxLogLines:]
	}
}

// LogLines returns a copy of the buffered log lines in order
func (dj *DownloadJob) LogLines() []string {
	dj.logMu.Lock()
	defer dj.logMu.Unlock()

	out := make([]string, len(dj.logLines))
	copy(out, dj.logLines)
	return out
}

// LogTail returns the newest n log lines joined with newlines
func (dj *DownloadJob) LogTail(n int) string {
	dj.logMu.Lock()
	defer dj.logMu.Unlock()

	if n <= 0 || len(dj.logLines) == 0 {
		return ""
	}
	start := len(dj.logLines) - n
	if start < 0 {
		start = 0
	}
	return strings.Join(dj.logLines[start:], "\n")
}

// GetETAString returns ETA formatted as hh:mm:ss, or "—" if unknown
func (dj *DownloadJob) GetETAString() string {
	if dj.ETASec <= 0 {
		return "—"
	}

	hours := dj.ETASec / 3600
	minutes := (dj.ETASec % 3600) / 60
	seconds := dj.ETASec % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// GetDisplayTitle returns title, filename, or URL in order of preference
func (dj *DownloadJob) GetDisplayTitle() string {
	// First priority: video title (non-URL)
	if dj.Title != "" && !strings.HasPrefix(dj.Title, "http") {
		return dj.Title
	}

	// Second priority: filename from OutputPath
	if dj.OutputPath != "" {
		parts := strings.FieldsFunc(dj.OutputPath, func(r rune) bool {
			return r == '/' || r == '\\'
		})
		if len(parts) > 0 {
			filename := parts[len(parts)-1]
			if idx := strings.LastIndex(filename, "."); idx > 0 {
				filename = filename[:idx]
			}
			return filename
		}
	}

	return dj.URL
}
