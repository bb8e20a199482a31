package tool

// Package tool wraps the external yt-dlp binary: a per-URL invocation adapter
// with progress and log streaming, and a startup updater that fetches or
// refreshes the binary before any download runs.
