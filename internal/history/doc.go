package history

// Package history records finished download jobs in a local sqlite database
// and serves them back to the UI's history dialog.
