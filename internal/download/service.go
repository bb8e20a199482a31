package download

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/videodl/videodl/internal/model"
	"github.com/videodl/videodl/internal/platform"
	"github.com/videodl/videodl/internal/tool"
)

// Concurrency bounds for the worker pool
const (
	MinParallel = 1
	MaxParallel = 10
)

// Service runs download jobs through a bounded worker pool. Jobs are admitted
// in submission order; at most maxParallel invocations run at once.
type Service struct {
	logger  *log.Logger
	invoker tool.Invoker

	mu               sync.RWMutex
	jobs             map[string]*model.DownloadJob
	order            []string // job IDs in submission order
	cancels          map[string]context.CancelFunc
	maxParallel      int
	outputDir        string
	qualityPreset    string
	filenameTemplate string

	// sem always holds MaxParallel units; MaxParallel-maxParallel of them
	// are parked as reserve, so available units equal free worker slots.
	// Resizes adjust the reserve through the resize channel.
	sem    *semaphore.Weighted
	resize chan int

	ready      func() bool
	onUpdate   func(*model.DownloadJob)
	onLog      func(jobID, line string)
	onFinished func(*model.DownloadJob)

	baseCtx    context.Context
	baseCancel context.CancelFunc
	wake       chan struct{}
}

// NewService creates a new download service and starts its dispatcher
func NewService(invoker tool.Invoker, outputDir string, maxParallel int, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	maxParallel = clampParallel(maxParallel)

	baseCtx, baseCancel := context.WithCancel(context.Background())

	s := &Service{
		logger:      logger.WithPrefix("pool"),
		invoker:     invoker,
		jobs:        make(map[string]*model.DownloadJob),
		cancels:     make(map[string]context.CancelFunc),
		sem:         semaphore.NewWeighted(MaxParallel),
		resize:      make(chan int, MaxParallel),
		maxParallel: maxParallel,
		outputDir:   outputDir,
		ready:       func() bool { return true },
		baseCtx:     baseCtx,
		baseCancel:  baseCancel,
		wake:        make(chan struct{}, 1),
	}

	// Park the capacity above the initial limit
	if reserve := MaxParallel - maxParallel; reserve > 0 {
		s.sem.TryAcquire(int64(reserve))
	}

	go s.dispatchLoop()
	go s.resizeLoop()

	return s
}

// SetUpdateCallback sets the callback function for job status updates
func (s *Service) SetUpdateCallback(callback func(*model.DownloadJob)) {
	s.onUpdate = callback
}

// SetLogCallback sets the callback for appended job log lines
func (s *Service) SetLogCallback(callback func(jobID, line string)) {
	s.onLog = callback
}

// SetFinishedCallback sets the callback invoked once per job on reaching a
// terminal state
func (s *Service) SetFinishedCallback(callback func(*model.DownloadJob)) {
	s.onFinished = callback
}

// SetReadyCheck gates job admission on an external readiness condition,
// typically the yt-dlp updater.
func (s *Service) SetReadyCheck(ready func() bool) {
	if ready != nil {
		s.ready = ready
	}
}

// Enqueue adds a new download job for the URL
func (s *Service) Enqueue(url string) (*model.DownloadJob, error) {
	if !s.ready() {
		return nil, fmt.Errorf("downloader is not ready")
	}

	s.mu.Lock()
	// Reject duplicates that are still queued or active
	for _, job := range s.jobs {
		if job.URL == url && !job.Status.IsTerminal() {
			s.mu.Unlock()
			return nil, fmt.Errorf("job already exists for URL: %s", url)
		}
	}

	job := &model.DownloadJob{
		ID:        generateJobID(),
		URL:       url,
		OutputDir: s.outputDir,
		Status:    model.JobStatusQueued,
		ETASec:    -1,
		StartedAt: time.Now(),
	}
	s.jobs[job.ID] = job
	s.order = append(s.order, job.ID)
	s.mu.Unlock()

	s.logger.Infof("queued %s as %s", url, job.ID)
	s.notifyUpdate(job)
	s.signalWake()

	return job, nil
}

// EnqueueAll adds jobs for every URL, skipping duplicates
func (s *Service) EnqueueAll(urls []string) []*model.DownloadJob {
	jobs := make([]*model.DownloadJob, 0, len(urls))
	for _, url := range urls {
		job, err := s.Enqueue(url)
		if err != nil {
			s.logger.Warnf("skipping %s: %v", url, err)
			continue
		}
		jobs = append(jobs, job)
	}
	return jobs
}

// GetJob returns a job by ID
func (s *Service) GetJob(id string) (*model.DownloadJob, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, exists := s.jobs[id]
	return job, exists
}

// GetAllJobs returns all jobs in submission order
func (s *Service) GetAllJobs() []*model.DownloadJob {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jobs := make([]*model.DownloadJob, 0, len(s.order))
	for _, id := range s.order {
		if job, ok := s.jobs[id]; ok {
			jobs = append(jobs, job)
		}
	}
	return jobs
}

// Stop stops a queued or running job. Queued jobs go straight to Stopped;
// running jobs are cancelled and settle once the subprocess exits.
func (s *Service) Stop(id string) error {
	s.mu.Lock()
	job, exists := s.jobs[id]
	if !exists {
		s.mu.Unlock()
		return fmt.Errorf("job not found: %s", id)
	}

	switch {
	case job.Status == model.JobStatusQueued:
		job.Status = model.JobStatusStopped
		job.FinishedAt = time.Now()
		s.mu.Unlock()
		s.notifyUpdate(job)
		s.notifyFinished(job)
		return nil
	case job.Status.IsActive():
		job.Status = model.JobStatusStopping
		cancel := s.cancels[id]
		s.mu.Unlock()
		s.notifyUpdate(job)
		if cancel != nil {
			cancel()
		}
		return nil
	default:
		s.mu.Unlock()
		return fmt.Errorf("job is not stoppable: %s", job.Status)
	}
}

// StopAll stops every queued and running job
func (s *Service) StopAll() {
	for _, job := range s.GetAllJobs() {
		if job.Status == model.JobStatusQueued || job.Status.IsActive() {
			if err := s.Stop(job.ID); err != nil {
				s.logger.Warnf("stop %s: %v", job.ID, err)
			}
		}
	}
}

// Restart re-queues a terminal job at the end of the queue
func (s *Service) Restart(id string) error {
	s.mu.Lock()
	job, exists := s.jobs[id]
	if !exists {
		s.mu.Unlock()
		return fmt.Errorf("job not found: %s", id)
	}
	if !job.Status.IsTerminal() {
		s.mu.Unlock()
		return fmt.Errorf("job is not finished: %s", job.Status)
	}

	job.Status = model.JobStatusQueued
	job.Progress = 0
	job.Percent = 0
	job.Speed = ""
	job.ETASec = -1
	job.LastError = ""
	job.OutputDir = s.outputDir
	job.StartedAt = time.Now()
	job.FinishedAt = time.Time{}

	// Move to the back of the submission order
	for i, orderedID := range s.order {
		if orderedID == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.order = append(s.order, id)
	s.mu.Unlock()

	s.logger.Infof("restarting %s", id)
	s.notifyUpdate(job)
	s.signalWake()
	return nil
}

// SetMaxParallel resizes the worker pool. Running jobs are never interrupted;
// when shrinking, the new limit applies as slots free up.
func (s *Service) SetMaxParallel(max int) {
	max = clampParallel(max)

	s.mu.Lock()
	delta := max - s.maxParallel
	if delta == 0 {
		s.mu.Unlock()
		return
	}
	s.maxParallel = max
	s.mu.Unlock()

	select {
	case s.resize <- delta:
	case <-s.baseCtx.Done():
		return
	}
	s.logger.Infof("max parallel downloads set to %d", max)
}

// SetOutputDirectory sets the directory for new jobs
func (s *Service) SetOutputDirectory(dir string) {
	s.mu.Lock()
	s.outputDir = dir
	s.mu.Unlock()
}

// SetQualityPreset sets the quality preset for new jobs
func (s *Service) SetQualityPreset(preset string) {
	s.mu.Lock()
	s.qualityPreset = preset
	s.mu.Unlock()
}

// SetFilenameTemplate sets the yt-dlp output template for new jobs
func (s *Service) SetFilenameTemplate(template string) {
	s.mu.Lock()
	s.filenameTemplate = template
	s.mu.Unlock()
}

// Close stops the dispatcher and cancels all in-flight jobs
func (s *Service) Close() {
	s.baseCancel()
}

// dispatchLoop admits queued jobs in submission order while pool capacity
// remains. It is the only goroutine that moves jobs out of Queued.
func (s *Service) dispatchLoop() {
	for {
		job := s.nextQueued()
		if job == nil {
			select {
			case <-s.wake:
				continue
			case <-s.baseCtx.Done():
				return
			}
		}

		// TryAcquire fails while the pool is full or a shrink is parking
		// capacity, so a resize never over-admits.
		if !s.sem.TryAcquire(1) {
			select {
			case <-s.wake:
			case <-s.baseCtx.Done():
				return
			}
			continue
		}

		if !s.markStarting(job) {
			// Job was stopped while waiting for a slot
			s.sem.Release(1)
			continue
		}

		go s.runJob(job)
	}
}

// resizeLoop applies pool size changes one at a time. Growing releases parked
// capacity immediately; shrinking re-parks the removed capacity, blocking
// further admissions until enough running jobs free their slots.
func (s *Service) resizeLoop() {
	for {
		select {
		case delta := <-s.resize:
			if delta > 0 {
				s.sem.Release(int64(delta))
				s.signalWake()
				continue
			}
			if err := s.sem.Acquire(s.baseCtx, int64(-delta)); err != nil {
				return
			}
		case <-s.baseCtx.Done():
			return
		}
	}
}

// nextQueued returns the oldest Queued job, or nil
func (s *Service) nextQueued() *model.DownloadJob {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.order {
		if job, ok := s.jobs[id]; ok && job.Status == model.JobStatusQueued {
			return job
		}
	}
	return nil
}

// markStarting transitions a job from Queued to Starting
func (s *Service) markStarting(job *model.DownloadJob) bool {
	s.mu.Lock()
	if job.Status != model.JobStatusQueued {
		s.mu.Unlock()
		return false
	}
	job.Status = model.JobStatusStarting
	s.mu.Unlock()

	s.notifyUpdate(job)
	return true
}

// runJob executes one yt-dlp invocation and settles the job's terminal state
func (s *Service) runJob(job *model.DownloadJob) {
	defer func() {
		s.sem.Release(1)
		s.signalWake()
	}()

	ctx, cancel := context.WithCancel(s.baseCtx)
	defer cancel()

	s.mu.Lock()
	s.cancels[job.ID] = cancel
	outputDir := s.outputDir
	opts := tool.Options{
		OutputDir:        outputDir,
		FilenameTemplate: s.filenameTemplate,
		QualityPreset:    s.qualityPreset,
	}
	job.OutputDir = outputDir
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.cancels, job.ID)
		s.mu.Unlock()
	}()

	if err := platform.CreateDirectoryIfNotExists(outputDir); err != nil {
		s.settle(job, "", fmt.Errorf("create output directory: %w", err))
		return
	}

	s.mu.Lock()
	if job.Status != model.JobStatusStarting {
		// Stop raced the start; never spawn the subprocess
		s.mu.Unlock()
		s.settle(job, "", context.Canceled)
		return
	}
	job.Status = model.JobStatusRunning
	s.mu.Unlock()
	s.notifyUpdate(job)

	hooks := tool.Hooks{
		OnProgress: func(p tool.Progress) {
			s.applyProgress(job, p)
		},
		OnLog: func(line string) {
			job.AppendLog(line)
			if s.onLog != nil {
				s.onLog(job.ID, line)
			}
		},
	}

	outputPath, err := s.invoker.Run(ctx, job.URL, opts, hooks)
	s.settle(job, outputPath, err)
}

// settle records the terminal state of a job
func (s *Service) settle(job *model.DownloadJob, outputPath string, err error) {
	s.mu.Lock()
	switch {
	case err == nil:
		job.Status = model.JobStatusSucceeded
		job.Progress = 1.0
		job.Percent = 100
		job.ETASec = -1
		if outputPath != "" {
			job.OutputPath = outputPath
			if info, statErr := os.Stat(outputPath); statErr == nil {
				job.FileSize = info.Size()
			}
		}
	case errors.Is(err, context.Canceled):
		job.Status = model.JobStatusStopped
	default:
		job.Status = model.JobStatusFailed
		job.LastError = err.Error()
	}
	job.FinishedAt = time.Now()
	status := job.Status
	s.mu.Unlock()

	s.logger.Infof("job %s finished: %s", job.ID, status)
	s.notifyUpdate(job)
	s.notifyFinished(job)
}

// applyProgress folds a progress snapshot into the job
func (s *Service) applyProgress(job *model.DownloadJob, p tool.Progress) {
	s.mu.Lock()
	if job.Status.IsTerminal() {
		s.mu.Unlock()
		return
	}
	if p.Percent > 0 {
		job.Percent = int(p.Percent)
		job.Progress = p.Percent / 100.0
	}
	if p.Speed != "" {
		job.Speed = p.Speed
	}
	if p.ETASec > 0 {
		job.ETASec = p.ETASec
	}
	if p.TotalBytes > 0 {
		job.FileSize = p.TotalBytes
	}
	if p.Title != "" && job.Title == "" {
		job.Title = p.Title
	}
	if p.Filename != "" {
		job.OutputPath = p.Filename
	}
	s.mu.Unlock()

	s.notifyUpdate(job)
}

// signalWake nudges the dispatcher without blocking
func (s *Service) signalWake() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(job *model.DownloadJob) {
	if s.onUpdate != nil {
		s.onUpdate(job)
	}
}

// notifyFinished calls the finished callback if set
func (s *Service) notifyFinished(job *model.DownloadJob) {
	if s.onFinished != nil {
		s.onFinished(job)
	}
}

// clampParallel bounds the pool size to the supported range
func clampParallel(n int) int {
	if n < MinParallel {
		return MinParallel
	}
	if n > MaxParallel {
		return MaxParallel
	}
	return n
}

// generateJobID generates a unique job ID
func generateJobID() string {
	return "job-" + uuid.NewString()
}
