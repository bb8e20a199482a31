package model

// JobStatus represents the status of a download job
type JobStatus string

const (
	// JobStatusQueued means the job is waiting for a free worker slot
	JobStatusQueued JobStatus = "Queued"

	// JobStatusStarting means a worker picked the job up and is spawning yt-dlp
	JobStatusStarting JobStatus = "Starting"

	// JobStatusRunning means the download is in progress
	JobStatusRunning JobStatus = "Running"

	// JobStatusStopping means a stop was requested and the invocation is being cancelled
	JobStatusStopping JobStatus = "Stopping"

	// JobStatusStopped means the job was stopped by the user
	JobStatusStopped JobStatus = "Stopped"

	// JobStatusSucceeded means yt-dlp exited cleanly
	JobStatusSucceeded JobStatus = "Succeeded"

	// JobStatusFailed means the job failed with an error
	JobStatusFailed JobStatus = "Failed"
)

// String returns the string representation of JobStatus
func (js JobStatus) String() string {
	return string(js)
}

// IsActive returns true if the job currently occupies a worker slot
func (js JobStatus) IsActive() bool {
	return js == JobStatusStarting || js == JobStatusRunning || js == JobStatusStopping
}

// IsTerminal returns true if the job reached a final state (succeeded, stopped, or failed)
func (js JobStatus) IsTerminal() bool {
	return js == JobStatusSucceeded || js == JobStatusStopped || js == JobStatusFailed
}
