package download

import (
	"github.com/videodl/videodl/internal/model"
)

// Downloader defines the interface for the download service.
type Downloader interface {
	SetUpdateCallback(func(*model.DownloadJob))
	SetLogCallback(func(jobID, line string))
	SetFinishedCallback(func(*model.DownloadJob))

	Enqueue(url string) (*model.DownloadJob, error)
	EnqueueAll(urls []string) []*model.DownloadJob
	GetJob(id string) (*model.DownloadJob, bool)
	GetAllJobs() []*model.DownloadJob
	Stop(id string) error
	StopAll()
	Restart(id string) error

	// SetMaxParallel sets the maximum number of parallel downloads (1..10)
	SetMaxParallel(max int)

	// SetOutputDirectory sets the directory downloads are written to
	SetOutputDirectory(dir string)

	// SetQualityPreset configures quality selection for downloads (best/medium/audio)
	SetQualityPreset(preset string)

	// SetFilenameTemplate sets the yt-dlp output filename template
	SetFilenameTemplate(template string)

	Close()
}
