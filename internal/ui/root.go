package ui

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"

	"github.com/videodl/videodl/internal/config"
	"github.com/videodl/videodl/internal/download"
	"github.com/videodl/videodl/internal/history"
	"github.com/videodl/videodl/internal/model"
	"github.com/videodl/videodl/internal/platform"
	"github.com/videodl/videodl/internal/tool"
)

// History dialog row limit
const (
	HistoryRecentLimit = 50
)

// RootUI represents the main UI structure
type RootUI struct {
	window fyne.Window
	logger *log.Logger

	urlEntry       *widget.Entry
	dirEntry       *widget.Entry
	parallelSelect *widget.Select
	startBtn       *widget.Button
	stopAllBtn     *widget.Button
	jobList        *widget.List
	visibleJobs    []*model.DownloadJob

	downloadSvc  download.Downloader
	updater      *tool.Updater
	historyStore *history.Store
	settings     *config.Settings
	localization *Localization
	expander     *platform.PlaylistExpander

	settingsDialog *SettingsDialog

	// Notification panel under the input area
	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	notificationSpinner   *widget.ProgressBarInfinite
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, downloadSvc download.Downloader, updater *tool.Updater, historyStore *history.Store, logger *log.Logger) *RootUI {
	if logger == nil {
		logger = log.Default()
	}

	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	outputDir := settings.GetOutputDirectory()
	platform.CreateDirectoryIfNotExists(outputDir)

	ui := &RootUI{
		window:       window,
		logger:       logger.WithPrefix("ui"),
		downloadSvc:  downloadSvc,
		updater:      updater,
		historyStore: historyStore,
		settings:     settings,
		localization: localization,
		expander:     platform.NewPlaylistExpander(),
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.downloadSvc.SetUpdateCallback(ui.onJobUpdate)
	if ui.updater != nil {
		ui.updater.SetChangeCallback(ui.onUpdaterChange)
	}

	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.urlEntry = widget.NewMultiLineEntry()
	ui.urlEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterURLs))
	ui.urlEntry.Wrapping = fyne.TextWrapOff
	ui.urlEntry.SetMinRowsVisible(4)

	ui.dirEntry = widget.NewEntry()
	ui.dirEntry.SetText(ui.settings.GetOutputDirectory())
	browseBtn := widget.NewButton(ui.localization.GetText(KeyBrowse), ui.onBrowseDirectory)
	dirRow := container.NewBorder(nil, nil,
		widget.NewLabel(ui.localization.GetText(KeyOutputDirectory)+":"), browseBtn, ui.dirEntry)

	parallelOptions := make([]string, 0, download.MaxParallel)
	for i := download.MinParallel; i <= download.MaxParallel; i++ {
		parallelOptions = append(parallelOptions, strconv.Itoa(i))
	}
	ui.parallelSelect = widget.NewSelect(parallelOptions, nil)
	ui.parallelSelect.SetSelected(strconv.Itoa(ui.settings.GetMaxParallelDownloads()))
	parallelRow := container.NewHBox(
		widget.NewLabel(ui.localization.GetText(KeyMaxParallel)+":"), ui.parallelSelect)

	ui.startBtn = widget.NewButton(ui.localization.GetText(KeyStartDownloads), ui.onStartClick)
	ui.startBtn.Importance = widget.HighImportance
	if ui.updater != nil && !ui.updater.IsReady() {
		ui.startBtn.Disable()
	}

	ui.stopAllBtn = widget.NewButton(ui.localization.GetText(KeyStopAll), ui.onStopAllClick)

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	logo, err := LoadLogoResource()
	var logoImage *canvas.Image
	if err == nil {
		logoImage = canvas.NewImageFromResource(logo)
		logoImage.SetMinSize(fyne.NewSize(32, 32))
		logoImage.FillMode = canvas.ImageFillContain
	}

	buttonRow := container.NewHBox(ui.startBtn, ui.stopAllBtn)
	var controlRow *fyne.Container
	if logoImage != nil {
		controlRow = container.NewBorder(nil, nil, container.NewHBox(logoImage, settingsBtn, parallelRow), buttonRow, nil)
	} else {
		controlRow = container.NewBorder(nil, nil, container.NewHBox(settingsBtn, parallelRow), buttonRow, nil)
	}

	// Notification panel (hidden by default)
	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Alignment = fyne.TextAlignLeading
	ui.notificationSpinner = widget.NewProgressBarInfinite()
	ui.notificationSpinner.Hide()
	ui.notificationContainer = container.NewHBox(ui.notificationSpinner, container.NewPadded(ui.notificationLabel))
	ui.notificationContainer.Hide()

	topCombined := container.NewVBox(ui.urlEntry, dirRow, controlRow, ui.notificationContainer)

	ui.jobList = widget.NewList(
		func() int {
			return len(ui.visibleJobs)
		},
		func() fyne.CanvasObject { return ui.createJobItem() },
		func(id widget.ListItemID, obj fyne.CanvasObject) { ui.updateJobItem(id, obj) },
	)

	content := container.NewBorder(
		topCombined, // top
		nil,         // bottom
		nil,         // left
		nil,         // right
		ui.jobList,  // center
	)

	ui.window.SetContent(content)
	ui.refreshJobList()
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)
	historyItem := fyne.NewMenuItem(ui.localization.GetText(KeyHistory), ui.onShowHistory)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))

	availableLanguages := ui.localization.GetAvailableLanguages()
	codes := make([]string, 0, len(availableLanguages))
	for code := range availableLanguages {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(availableLanguages[code], func() {
			ui.onLanguageChange(langCode)
		})

		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}

		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem, historyItem),
		languageMenu,
	)

	ui.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	// Recreate menu to update checkmarks
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.urlEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterURLs))
	ui.startBtn.SetText(ui.localization.GetText(KeyStartDownloads))
	ui.stopAllBtn.SetText(ui.localization.GetText(KeyStopAll))
	ui.jobList.Refresh()
}

// onBrowseDirectory opens the output directory picker
func (ui *RootUI) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		ui.dirEntry.SetText(uri.Path())
	}, ui.window)
}

// onStartClick validates the input area and enqueues every accepted URL
func (ui *RootUI) onStartClick() {
	urls := platform.CleanURLList(ui.urlEntry.Text)
	if len(urls) == 0 {
		ui.showNotification(ui.localization.GetText(KeyNoValidURLs), false)
		return
	}

	outputDir := strings.TrimSpace(ui.dirEntry.Text)
	if outputDir == "" {
		ui.showNotification(ui.localization.GetText(KeyNoOutputDirectory), false)
		return
	}

	// Apply current control values before dispatching
	ui.settings.SetOutputDirectory(outputDir)
	ui.downloadSvc.SetOutputDirectory(outputDir)
	if maxParallel, err := strconv.Atoi(ui.parallelSelect.Selected); err == nil {
		ui.settings.SetMaxParallelDownloads(maxParallel)
		ui.downloadSvc.SetMaxParallel(maxParallel)
	}

	var direct []string
	var playlists []string
	for _, u := range urls {
		if platform.IsPlaylistURL(u) {
			playlists = append(playlists, u)
		} else {
			direct = append(direct, u)
		}
	}

	if len(direct) > 0 {
		jobs := ui.downloadSvc.EnqueueAll(direct)
		ui.logger.Infof("queued %d of %d urls", len(jobs), len(direct))
	}

	for _, playlistURL := range playlists {
		ui.expandPlaylist(playlistURL)
	}

	ui.urlEntry.SetText("")
	ui.showNotification(ui.localization.GetText(KeyDownloadsQueued), false)
	ui.refreshJobList()
}

// expandPlaylist resolves playlist entries in the background and enqueues them
func (ui *RootUI) expandPlaylist(playlistURL string) {
	ui.showNotification(ui.localization.GetText(KeyExpandingPlaylist), true)

	go func() {
		entries, err := ui.expander.Expand(context.Background(), playlistURL)

		fyne.Do(func() {
			if err != nil {
				ui.logger.Warnf("playlist expansion failed: %v", err)
				ui.showNotification(ui.localization.GetText(KeyPlaylistFailed)+": "+err.Error(), false)
				return
			}

			videoURLs := make([]string, 0, len(entries))
			for _, entry := range entries {
				videoURLs = append(videoURLs, entry.URL)
			}
			jobs := ui.downloadSvc.EnqueueAll(videoURLs)
			ui.logger.Infof("playlist expanded: %d entries, %d queued", len(entries), len(jobs))

			ui.showNotification(fmt.Sprintf("%s (%d)", ui.localization.GetText(KeyDownloadsQueued), len(jobs)), false)
			ui.refreshJobList()
		})
	}()
}

// onStopAllClick stops every queued and active job
func (ui *RootUI) onStopAllClick() {
	ui.downloadSvc.StopAll()
	ui.refreshJobList()
}

// showNotification displays a message in the notification panel under the input area.
// When spinning is true, a spinner is shown to indicate background activity.
func (ui *RootUI) showNotification(message string, spinning bool) {
	if ui.notificationLabel == nil || ui.notificationContainer == nil || ui.notificationSpinner == nil {
		return
	}
	fyne.Do(func() {
		ui.notificationLabel.SetText(message)
		if spinning {
			ui.notificationSpinner.Show()
		} else {
			ui.notificationSpinner.Hide()
		}
		ui.notificationContainer.Show()
		ui.notificationContainer.Refresh()
	})
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	if ui.settingsDialog == nil {
		ui.settingsDialog = NewSettingsDialog(ui.settings, ui.localization, ui.window)
		ui.settingsDialog.SetOnSaved(ui.applySettings)
	}
	ui.settingsDialog.Show()
}

// applySettings pushes persisted settings into the running download service
func (ui *RootUI) applySettings() {
	ui.downloadSvc.SetOutputDirectory(ui.settings.GetOutputDirectory())
	ui.downloadSvc.SetMaxParallel(ui.settings.GetMaxParallelDownloads())
	ui.downloadSvc.SetQualityPreset(string(ui.settings.GetQualityPreset()))
	ui.downloadSvc.SetFilenameTemplate(ui.settings.GetFilenameTemplate())

	ui.dirEntry.SetText(ui.settings.GetOutputDirectory())
	ui.parallelSelect.SetSelected(strconv.Itoa(ui.settings.GetMaxParallelDownloads()))
	ui.localization.SetLanguage(ui.settings.GetLanguage())
	ui.refreshUITexts()
	ui.createMenu()
}

// onShowHistory shows finished downloads recorded in the history store
func (ui *RootUI) onShowHistory() {
	var items []fyne.CanvasObject

	if ui.historyStore != nil {
		records, err := ui.historyStore.Recent(HistoryRecentLimit)
		if err != nil {
			ui.logger.Errorf("history query failed: %v", err)
		}
		for _, rec := range records {
			title := rec.Title
			if title == "" {
				title = rec.URL
			}
			line := fmt.Sprintf("%s  %s", rec.FinishedAt.Format("2006-01-02 15:04"), title)
			label := widget.NewLabel(line)
			label.Truncation = fyne.TextTruncateEllipsis

			detail := rec.Status
			if rec.FileSizeBytes > 0 {
				detail += MiddleDotSeparator + formatFileSize(rec.FileSizeBytes)
			}
			detailLabel := widget.NewLabel(detail)
			detailLabel.TextStyle = fyne.TextStyle{Italic: true}

			items = append(items, container.NewVBox(label, detailLabel, widget.NewSeparator()))
		}
	}

	if len(items) == 0 {
		items = append(items, widget.NewLabel(ui.localization.GetText(KeyHistoryEmpty)))
	}

	content := container.NewVScroll(container.NewVBox(items...))
	d := dialog.NewCustom(ui.localization.GetText(KeyHistory), ui.localization.GetText(KeyCancel), content, ui.window)
	d.Resize(fyne.NewSize(HistoryDialogWidth, HistoryDialogHeight))
	d.Show()
}

// createJobItem creates a new job row widget for the list
func (ui *RootUI) createJobItem() fyne.CanvasObject {
	row := NewJobRow(nil, ui.localization)
	row.SetCallbacks(ui.jobRowCallbacks())
	return row
}

// updateJobItem updates a list row with current job data
func (ui *RootUI) updateJobItem(id widget.ListItemID, item fyne.CanvasObject) {
	if id >= len(ui.visibleJobs) {
		return
	}

	job := ui.visibleJobs[id]
	if job == nil {
		return
	}

	if row, ok := item.(*JobRow); ok {
		row.SetCallbacks(ui.jobRowCallbacks())
		row.UpdateJob(job)
	}
}

// jobRowCallbacks wires per-row actions back to the root UI
func (ui *RootUI) jobRowCallbacks() JobRowCallbacks {
	return JobRowCallbacks{
		OnStop:     ui.onStopJob,
		OnRetry:    ui.onRetryJob,
		OnShowLog:  ui.onShowLog,
		OnReveal:   ui.onRevealFile,
		OnOpen:     ui.onOpenFile,
		OnCopyPath: ui.onCopyPath,
	}
}

// refreshJobList re-snapshots jobs from the service and refreshes the list
func (ui *RootUI) refreshJobList() {
	ui.visibleJobs = ui.downloadSvc.GetAllJobs()
	ui.jobList.Refresh()
}

// onJobUpdate handles job updates from the download service
func (ui *RootUI) onJobUpdate(job *model.DownloadJob) {
	fyne.Do(func() {
		ui.refreshJobList()

		if job.Status == model.JobStatusSucceeded {
			ui.sendCompletionNotification(job)
		}
	})
}

// onUpdaterChange reflects yt-dlp provisioning state in the UI.
// Downloads are gated on the binary being ready.
func (ui *RootUI) onUpdaterChange(state tool.UpdateState, detail string) {
	fyne.Do(func() {
		switch state {
		case tool.UpdateStateChecking:
			ui.startBtn.Disable()
			ui.showNotification(ui.localization.GetText(KeyUpdaterChecking), true)
		case tool.UpdateStateDownloading:
			ui.startBtn.Disable()
			ui.showNotification(ui.localization.GetText(KeyUpdaterDownloading), true)
		case tool.UpdateStateReady:
			ui.startBtn.Enable()
			msg := ui.localization.GetText(KeyUpdaterReady)
			if detail != "" {
				msg += " (" + detail + ")"
			}
			ui.showNotification(msg, false)
		case tool.UpdateStateError:
			ui.startBtn.Disable()
			msg := ui.localization.GetText(KeyUpdaterFailed)
			if detail != "" {
				msg += ": " + detail
			}
			ui.showNotification(msg, false)
		}
	})
}

// onStopJob handles a stop request from a job row
func (ui *RootUI) onStopJob(jobID string) {
	if err := ui.downloadSvc.Stop(jobID); err != nil {
		ui.logger.Warnf("stop %s: %v", jobID, err)
		widget.ShowPopUp(widget.NewLabel(ui.localization.GetText(KeyErrorStoppingJob)+": "+err.Error()), ui.window.Canvas())
		return
	}
	ui.refreshJobList()
}

// onRetryJob re-queues a finished job
func (ui *RootUI) onRetryJob(jobID string) {
	if err := ui.downloadSvc.Restart(jobID); err != nil {
		ui.logger.Warnf("restart %s: %v", jobID, err)
		widget.ShowPopUp(widget.NewLabel("Error: "+err.Error()), ui.window.Canvas())
		return
	}
	ui.refreshJobList()
}

// onShowLog opens a dialog with the job's captured tool output
func (ui *RootUI) onShowLog(jobID string) {
	job, exists := ui.downloadSvc.GetJob(jobID)
	if !exists {
		return
	}

	logEntry := widget.NewMultiLineEntry()
	logEntry.SetText(job.LogTail(LogTailLines))
	logEntry.Wrapping = fyne.TextWrapWord
	logEntry.Disable()

	content := container.NewVScroll(logEntry)
	d := dialog.NewCustom(job.GetDisplayTitle(), ui.localization.GetText(KeyCancel), content, ui.window)
	d.Resize(fyne.NewSize(LogDialogWidth, LogDialogHeight))
	d.Show()
}

// onRevealFile handles revealing a file in the system file manager
func (ui *RootUI) onRevealFile(filePath string) {
	if filePath == "" || strings.HasPrefix(filePath, "http") {
		widget.ShowPopUp(widget.NewLabel("Error: No file path provided"), ui.window.Canvas())
		return
	}

	if err := platform.OpenFileInManager(filePath); err != nil {
		ui.logger.Warnf("reveal %s: %v", filePath, err)
		widget.ShowPopUp(widget.NewLabel(ui.localization.GetText(KeyErrorOpeningFile)+": "+err.Error()), ui.window.Canvas())
	}
}

// onOpenFile handles opening a downloaded file with the default application
func (ui *RootUI) onOpenFile(filePath string) {
	if filePath == "" || strings.HasPrefix(filePath, "http") {
		widget.ShowPopUp(widget.NewLabel("Error: No file path provided"), ui.window.Canvas())
		return
	}

	if err := platform.OpenFileWithDefaultApp(filePath); err != nil {
		ui.logger.Warnf("open %s: %v", filePath, err)
		widget.ShowPopUp(widget.NewLabel(ui.localization.GetText(KeyErrorOpeningFile)+": "+err.Error()), ui.window.Canvas())
	}
}

// onCopyPath handles copying a file path to the clipboard
func (ui *RootUI) onCopyPath(filePath string) {
	if filePath == "" || strings.HasPrefix(filePath, "http") {
		return
	}

	fyne.CurrentApp().Clipboard().SetContent(filePath)
	widget.ShowPopUp(widget.NewLabel(ui.localization.GetText(KeyPathCopied)), ui.window.Canvas())
}

// sendCompletionNotification sends a system notification for a finished download
func (ui *RootUI) sendCompletionNotification(job *model.DownloadJob) {
	title := ui.localization.GetText(KeyDownloadCompleted)
	message := job.GetDisplayTitle()

	fyne.CurrentApp().SendNotification(&fyne.Notification{
		Title:   title,
		Content: message,
	})

	ui.showToastNotification(job)
}

// showToastNotification shows an in-app toast notification with action buttons
func (ui *RootUI) showToastNotification(job *model.DownloadJob) {
	titleLabel := widget.NewLabel(ui.localization.GetText(KeyDownloadCompleted))
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}

	messageLabel := widget.NewLabel(job.GetDisplayTitle())
	messageLabel.Truncation = fyne.TextTruncateEllipsis

	revealBtn := widget.NewButton(IconFolder, func() {
		if job.OutputPath != "" {
			ui.onRevealFile(job.OutputPath)
		}
	})
	revealBtn.Importance = widget.HighImportance

	openBtn := widget.NewButton(ui.localization.GetText(KeyOpen), func() {
		if job.OutputPath != "" {
			ui.onOpenFile(job.OutputPath)
		}
	})
	openBtn.Importance = widget.MediumImportance

	var toastPopup *widget.PopUp
	closeBtn := widget.NewButton(IconClose, func() {
		if toastPopup != nil {
			toastPopup.Hide()
		}
	})
	closeBtn.Importance = widget.LowImportance

	header := container.NewBorder(nil, nil, titleLabel, closeBtn)
	actions := container.NewHBox(revealBtn, openBtn)
	content := container.NewVBox(
		header,
		messageLabel,
		actions,
	)

	toastPopup = widget.NewModalPopUp(content, ui.window.Canvas())

	// Position in top-right corner
	canvasSize := ui.window.Canvas().Size()
	toastSize := fyne.NewSize(ToastWidth, ToastHeight)
	toastPos := fyne.NewPos(canvasSize.Width-toastSize.Width-ToastMargin, ToastMargin)

	toastPopup.Resize(toastSize)
	toastPopup.Move(toastPos)
	toastPopup.Show()

	go func() {
		time.Sleep(ToastAutoHide)
		if toastPopup != nil {
			fyne.Do(toastPopup.Hide)
		}
	}()
}
