package tool

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lrstanley/go-ytdlp"
)

// Progress reporting interval for yt-dlp invocations
const (
	ProgressInterval = 500 * time.Millisecond
)

// Quality preset names, mirrored from the settings layer
const (
	PresetBest   = "best"
	PresetMedium = "medium"
	PresetAudio  = "audio"
)

// Options configures a single yt-dlp invocation
type Options struct {
	OutputDir        string
	FilenameTemplate string // yt-dlp output template, e.g. %(title)s.%(ext)s
	QualityPreset    string // best, medium, or audio
}

// Progress is a snapshot of download progress for one URL
type Progress struct {
	Percent         float64
	DownloadedBytes int64
	TotalBytes      int64
	Speed           string
	ETASec          int
	Title           string
	Filename        string
}

// Hooks receive progress snapshots and raw output lines during a run.
// Both are called from the invocation goroutine.
type Hooks struct {
	OnProgress func(Progress)
	OnLog      func(line string)
}

// Invoker runs one yt-dlp invocation per URL and reports the resulting
// output path. Implementations must honor context cancellation by
// terminating the subprocess.
type Invoker interface {
	Run(ctx context.Context, url string, opts Options, hooks Hooks) (string, error)
}

// YTDLPInvoker is the production Invoker backed by the yt-dlp binary
type YTDLPInvoker struct {
	logger *log.Logger
}

// NewYTDLPInvoker creates a new yt-dlp invoker
func NewYTDLPInvoker(logger *log.Logger) *YTDLPInvoker {
	if logger == nil {
		logger = log.Default()
	}
	return &YTDLPInvoker{logger: logger.WithPrefix("ytdlp")}
}

// Run downloads a single URL. It returns the path of the downloaded file on
// success. A cancelled context surfaces as ctx.Err().
func (i *YTDLPInvoker) Run(ctx context.Context, url string, opts Options, hooks Hooks) (string, error) {
	cmd := buildCommand(opts)

	cmd.ProgressFunc(ProgressInterval, func(update ytdlp.ProgressUpdate) {
		if hooks.OnProgress != nil {
			hooks.OnProgress(snapshotProgress(&update))
		}
	})

	i.logger.Infof("downloading %s", url)
	result, err := cmd.Run(ctx, url)

	// yt-dlp output is worth keeping either way: on failure it is the
	// diagnostic, on success it records what was fetched.
	if result != nil && hooks.OnLog != nil {
		for _, line := range result.OutputLogs {
			if line != nil {
				hooks.OnLog(line.Line)
			}
		}
	}

	if err != nil {
		if ctx.Err() != nil {
			i.logger.Warnf("download cancelled for %s", url)
			return "", ctx.Err()
		}
		i.logger.Warnf("download failed for %s: %v", url, err)
		return "", fmt.Errorf("yt-dlp run: %w", err)
	}

	outputPath := extractOutputPath(result)
	i.logger.Infof("downloaded %s -> %s", url, outputPath)
	return outputPath, nil
}

// buildCommand translates Options into a yt-dlp command
func buildCommand(opts Options) *ytdlp.Command {
	template := opts.FilenameTemplate
	if template == "" {
		template = "%(title)s.%(ext)s"
	}

	cmd := ytdlp.New().
		NoCallHome().
		Newline().
		RestrictFilenames().
		NoOverwrites().
		Continue().
		Output(filepath.Join(opts.OutputDir, template))

	if format := FormatForPreset(opts.QualityPreset); format != "" {
		cmd.Format(format)
	}

	return cmd
}

// FormatForPreset maps a quality preset to a yt-dlp format selector.
// An empty string means yt-dlp's default selection.
func FormatForPreset(preset string) string {
	switch preset {
	case PresetMedium:
		return "bv*[height<=720]+ba/b[height<=720]"
	case PresetAudio:
		return "bestaudio/best"
	default:
		return ""
	}
}

// snapshotProgress converts a yt-dlp progress update into a Progress value
func snapshotProgress(update *ytdlp.ProgressUpdate) Progress {
	p := Progress{
		DownloadedBytes: int64(update.DownloadedBytes),
		TotalBytes:      int64(update.TotalBytes),
		ETASec:          -1,
		Filename:        update.Filename,
	}

	if update.TotalBytes > 0 {
		p.Percent = float64(update.DownloadedBytes) / float64(update.TotalBytes) * 100
	}

	if !update.Started.IsZero() {
		p.Speed = CalcSpeed(int64(update.DownloadedBytes), time.Since(update.Started))
	}

	if eta := update.ETA(); eta > 0 {
		p.ETASec = int(eta.Seconds())
	}

	if update.Info != nil && update.Info.Title != nil {
		p.Title = *update.Info.Title
	}

	return p
}

// CalcSpeed formats an average download speed over the elapsed duration
func CalcSpeed(downloadedBytes int64, elapsed time.Duration) string {
	if elapsed.Seconds() <= 0 || downloadedBytes <= 0 {
		return ""
	}
	bytesPerSecond := float64(downloadedBytes) / elapsed.Seconds()
	return fmt.Sprintf("%.1fMB/s", bytesPerSecond/1024/1024)
}

// extractOutputPath pulls the downloaded file path from a yt-dlp result
func extractOutputPath(result *ytdlp.Result) string {
	if result == nil {
		return ""
	}
	info, err := result.GetExtractedInfo()
	if err != nil || len(info) == 0 {
		return ""
	}
	if info[0].Filename != nil {
		return *info[0].Filename
	}
	return ""
}
