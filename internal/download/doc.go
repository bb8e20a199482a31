package download

// Package download implements the core download pipeline built on top of
// yt-dlp (via the tool package). It manages job lifecycle, the bounded
// worker pool, and progress/log propagation to the UI.
