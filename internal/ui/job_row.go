package ui

import (
	"fmt"
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/videodl/videodl/internal/model"
)

// File size formatting constants
const (
	FileSizeUnit  = 1024
	FileSizeUnits = "KMGTPE"
)

// Progress calculation constants
const (
	MaxProgressPercent = 100
)

// formatFileSize formats file size in bytes to human readable format
func formatFileSize(bytes int64) string {
	if bytes < FileSizeUnit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(FileSizeUnit), 0
	for n := bytes / FileSizeUnit; n >= FileSizeUnit; n /= FileSizeUnit {
		div *= FileSizeUnit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), FileSizeUnits[exp])
}

// isFilePath reports whether the string is a usable local file path
func isFilePath(path string) bool {
	if path == "" || strings.HasPrefix(path, "http") {
		return false
	}
	return strings.Contains(path, "/") || strings.Contains(path, "\\")
}

// JobRowCallbacks bundles the per-row actions wired by the root UI
type JobRowCallbacks struct {
	OnStop     func(jobID string)
	OnRetry    func(jobID string)
	OnShowLog  func(jobID string)
	OnReveal   func(filePath string)
	OnOpen     func(filePath string)
	OnCopyPath func(filePath string)
}

// JobRow represents a compact download job row widget
type JobRow struct {
	widget.BaseWidget

	job          *model.DownloadJob
	localization *Localization
	callbacks    JobRowCallbacks

	titleLabel    *widget.Label
	statusLabel   *widget.Label
	progressLabel *widget.Label
	speedEtaLabel *widget.Label

	stopRetryBtn *widget.Button
	logBtn       *widget.Button
	revealBtn    *widget.Button
	playBtn      *widget.Button
	copyBtn      *widget.Button
}

// NewJobRow creates a new job row widget
func NewJobRow(job *model.DownloadJob, localization *Localization) *JobRow {
	if job == nil {
		job = &model.DownloadJob{ID: "placeholder", Status: model.JobStatusQueued}
	}

	jr := &JobRow{
		job:          job,
		localization: localization,
	}
	jr.ExtendBaseWidget(jr)
	jr.createUI()
	jr.updateFromJob()
	return jr
}

// SetCallbacks sets the action callbacks
func (jr *JobRow) SetCallbacks(callbacks JobRowCallbacks) {
	jr.callbacks = callbacks
}

// UpdateJob updates the row with new job data
func (jr *JobRow) UpdateJob(job *model.DownloadJob) {
	if job == nil {
		return
	}
	jr.job = job
	jr.updateFromJob()
	jr.Refresh()
}

// createUI creates the UI components
func (jr *JobRow) createUI() {
	jr.titleLabel = widget.NewLabel("")
	jr.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	jr.titleLabel.Truncation = fyne.TextTruncateEllipsis
	jr.titleLabel.Alignment = fyne.TextAlignLeading

	jr.statusLabel = widget.NewLabel("")
	jr.statusLabel.Alignment = fyne.TextAlignTrailing
	jr.progressLabel = widget.NewLabel("")
	jr.progressLabel.Alignment = fyne.TextAlignTrailing
	jr.speedEtaLabel = widget.NewLabel("")
	jr.speedEtaLabel.TextStyle = fyne.TextStyle{Monospace: true}

	jr.stopRetryBtn = widget.NewButton(jr.localization.GetText(KeyStop), func() {
		job := jr.job
		if job.Status.IsTerminal() {
			if jr.callbacks.OnRetry != nil {
				jr.callbacks.OnRetry(job.ID)
			}
			return
		}
		if jr.callbacks.OnStop != nil {
			jr.callbacks.OnStop(job.ID)
		}
	})
	jr.stopRetryBtn.Importance = widget.MediumImportance

	jr.logBtn = widget.NewButton(jr.localization.GetText(KeyLog), func() {
		if jr.callbacks.OnShowLog != nil {
			jr.callbacks.OnShowLog(jr.job.ID)
		}
	})
	jr.logBtn.Importance = widget.LowImportance

	// reveal in file manager
	jr.revealBtn = widget.NewButton(IconFolder, func() {
		job := jr.job
		if !isFilePath(job.OutputPath) {
			widget.ShowPopUp(widget.NewLabel("File path not available yet"),
				fyne.CurrentApp().Driver().CanvasForObject(jr.revealBtn))
			return
		}
		if jr.callbacks.OnReveal != nil {
			jr.callbacks.OnReveal(job.OutputPath)
		}
	})
	jr.revealBtn.Importance = widget.MediumImportance

	// open with default app
	jr.playBtn = widget.NewButton(IconPlay, func() {
		job := jr.job
		if isFilePath(job.OutputPath) && jr.callbacks.OnOpen != nil {
			jr.callbacks.OnOpen(job.OutputPath)
		}
	})
	jr.playBtn.Importance = widget.MediumImportance

	jr.copyBtn = widget.NewButton(IconCopy, func() {
		job := jr.job
		if isFilePath(job.OutputPath) && jr.callbacks.OnCopyPath != nil {
			jr.callbacks.OnCopyPath(job.OutputPath)
		}
	})
	jr.copyBtn.Importance = widget.LowImportance
}

// updateFromJob updates UI components based on job state
func (jr *JobRow) updateFromJob() {
	if jr.job == nil {
		return
	}

	title := strings.TrimSpace(jr.job.GetDisplayTitle())
	title = strings.ReplaceAll(title, "\n", " ")
	jr.titleLabel.SetText(title)

	// Status label color and text
	switch jr.job.Status {
	case model.JobStatusFailed:
		jr.statusLabel.Importance = widget.DangerImportance
		jr.statusLabel.SetText(IconError + " " + jr.job.Status.String())
	case model.JobStatusSucceeded:
		jr.statusLabel.Importance = widget.SuccessImportance
		jr.statusLabel.SetText(jr.job.Status.String())
	case model.JobStatusRunning:
		jr.statusLabel.Importance = widget.HighImportance
		jr.statusLabel.SetText(IconPlay + " " + jr.job.Status.String())
	case model.JobStatusQueued:
		jr.statusLabel.Importance = widget.MediumImportance
		jr.statusLabel.SetText(IconClock + " " + jr.job.Status.String())
	case model.JobStatusStopped:
		jr.statusLabel.Importance = widget.MediumImportance
		jr.statusLabel.SetText(IconStop + " " + jr.job.Status.String())
	default:
		jr.statusLabel.Importance = widget.MediumImportance
		jr.statusLabel.SetText(jr.job.Status.String())
	}

	// Progress percent
	percent := jr.job.Percent
	if jr.job.Status == model.JobStatusSucceeded {
		percent = MaxProgressPercent
	} else if percent <= 0 && jr.job.Progress > 0 {
		percent = int(jr.job.Progress * MaxProgressPercent)
	}
	if percent < 0 {
		percent = 0
	}
	if percent > MaxProgressPercent {
		percent = MaxProgressPercent
	}
	if jr.job.Status == model.JobStatusSucceeded {
		jr.progressLabel.SetText("")
	} else {
		jr.progressLabel.SetText(fmt.Sprintf(ProgressLabelFormat, percent))
	}

	// Speed and ETA line
	speedEta := ""
	switch jr.job.Status {
	case model.JobStatusRunning:
		if jr.job.Speed != "" {
			speedEta = jr.job.Speed
		}
		if jr.job.ETASec > 0 {
			if speedEta != "" {
				speedEta += MiddleDotSeparator
			}
			speedEta += jr.job.GetETAString()
		}
		if speedEta == "" {
			speedEta = DashPlaceholder
		}
	case model.JobStatusSucceeded:
		if jr.job.FileSize > 0 {
			speedEta = formatFileSize(jr.job.FileSize)
		}
	case model.JobStatusFailed:
		speedEta = firstLogLine(jr.job.LastError)
	}
	jr.speedEtaLabel.SetText(speedEta)

	jr.updateButtons()
}

// firstLogLine keeps row error text to one line
func firstLogLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}

// updateButtons updates button states based on job status
func (jr *JobRow) updateButtons() {
	switch {
	case jr.job.Status.IsTerminal():
		jr.stopRetryBtn.SetText(jr.localization.GetText(KeyRetry))
		jr.stopRetryBtn.Enable()
	case jr.job.Status == model.JobStatusStopping:
		jr.stopRetryBtn.SetText(jr.localization.GetText(KeyStop))
		jr.stopRetryBtn.Disable()
	default:
		jr.stopRetryBtn.SetText(jr.localization.GetText(KeyStop))
		jr.stopRetryBtn.Enable()
	}

	if len(jr.job.LogLines()) > 0 {
		jr.logBtn.Enable()
	} else {
		jr.logBtn.Disable()
	}

	if isFilePath(jr.job.OutputPath) {
		jr.revealBtn.Enable()
		jr.playBtn.Enable()
		jr.copyBtn.Enable()
	} else {
		jr.revealBtn.Disable()
		jr.playBtn.Disable()
		jr.copyBtn.Disable()
	}
}

// CreateRenderer creates the widget renderer
func (jr *JobRow) CreateRenderer() fyne.WidgetRenderer {
	fixedWidth := func(w float32, obj fyne.CanvasObject) fyne.CanvasObject {
		spacer := canvas.NewRectangle(color.RGBA{0, 0, 0, 0})
		spacer.SetMinSize(fyne.NewSize(w, obj.MinSize().Height))
		return container.NewStack(spacer, obj)
	}

	rightSide := container.NewVBox(
		fixedWidth(StatusLabelWidth, jr.statusLabel),
		container.NewHBox(
			fixedWidth(SpeedLabelWidth, jr.speedEtaLabel),
			fixedWidth(PercentLabelWidth, jr.progressLabel),
		),
	)

	actionRow := container.NewHBox(
		jr.stopRetryBtn,
		jr.logBtn,
		jr.revealBtn,
		jr.playBtn,
		jr.copyBtn,
	)

	rightCluster := container.NewBorder(nil, nil, nil, actionRow, rightSide)
	mainContent := container.NewBorder(nil, nil, nil, rightCluster, jr.titleLabel)

	layout := container.NewVBox(
		mainContent,
		widget.NewSeparator(),
	)

	return widget.NewSimpleRenderer(layout)
}
