package tool

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/lrstanley/go-ytdlp"
)

// UpdateState is the lifecycle of the yt-dlp binary check on startup
type UpdateState string

const (
	// UpdateStateChecking means the updater is resolving the current binary
	UpdateStateChecking UpdateState = "Checking"

	// UpdateStateDownloading means a binary fetch is in progress
	UpdateStateDownloading UpdateState = "Downloading"

	// UpdateStateReady means a usable binary is resolved and downloads may start
	UpdateStateReady UpdateState = "Ready"

	// UpdateStateError means no usable binary could be resolved this session
	UpdateStateError UpdateState = "Error"
)

// installFunc matches ytdlp.Install, injectable for tests
type installFunc func(ctx context.Context, opts *ytdlp.InstallOptions) (*ytdlp.ResolvedInstall, error)

// Updater fetches or refreshes the yt-dlp binary on startup and exposes the
// outcome so the UI can gate downloads until a binary is available.
type Updater struct {
	logger   *log.Logger
	install  installFunc
	onChange func(UpdateState, string)

	mu      sync.RWMutex
	state   UpdateState
	version string
	lastErr string
}

// NewUpdater creates a new updater
func NewUpdater(logger *log.Logger) *Updater {
	if logger == nil {
		logger = log.Default()
	}
	return &Updater{
		logger:  logger.WithPrefix("updater"),
		install: ytdlp.Install,
		state:   UpdateStateChecking,
	}
}

// SetChangeCallback sets the callback invoked on every state change.
// The second argument is the resolved version (Ready) or the error text (Error).
func (u *Updater) SetChangeCallback(callback func(UpdateState, string)) {
	u.onChange = callback
}

// Ensure resolves a usable yt-dlp binary, downloading the latest release when
// possible. On fetch failure it falls back to a previously cached or system
// copy; only when none exists does the updater end in the Error state.
func (u *Updater) Ensure(ctx context.Context) error {
	u.setState(UpdateStateChecking, "")
	u.logger.Info("checking yt-dlp binary")

	u.setState(UpdateStateDownloading, "")
	resolved, err := u.install(ctx, &ytdlp.InstallOptions{})
	if err != nil {
		u.logger.Warnf("yt-dlp fetch failed: %v", err)

		// Fall back to whatever binary is already on disk
		resolved, err = u.install(ctx, &ytdlp.InstallOptions{
			DisableDownload:      true,
			AllowVersionMismatch: true,
		})
		if err != nil {
			u.logger.Errorf("no usable yt-dlp binary: %v", err)
			u.setState(UpdateStateError, err.Error())
			return fmt.Errorf("resolve yt-dlp binary: %w", err)
		}
		u.logger.Warnf("using existing yt-dlp %s at %s", resolved.Version, resolved.Executable)
	}

	if resolved.Downloaded {
		u.logger.Infof("fetched yt-dlp %s", resolved.Version)
	} else {
		u.logger.Infof("yt-dlp %s already up to date", resolved.Version)
	}

	u.setState(UpdateStateReady, resolved.Version)
	return nil
}

// State returns the current updater state
func (u *Updater) State() UpdateState {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.state
}

// Version returns the resolved yt-dlp version, empty until Ready
func (u *Updater) Version() string {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.version
}

// LastError returns the failure text when the updater is in the Error state
func (u *Updater) LastError() string {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.lastErr
}

// IsReady reports whether downloads may start
func (u *Updater) IsReady() bool {
	return u.State() == UpdateStateReady
}

func (u *Updater) setState(state UpdateState, detail string) {
	u.mu.Lock()
	u.state = state
	switch state {
	case UpdateStateReady:
		u.version = detail
		u.lastErr = ""
	case UpdateStateError:
		u.lastErr = detail
	}
	u.mu.Unlock()

	if u.onChange != nil {
		u.onChange(state, detail)
	}
}
