package main

import (
	"context"
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/charmbracelet/log"

	"github.com/videodl/videodl/internal/config"
	"github.com/videodl/videodl/internal/download"
	"github.com/videodl/videodl/internal/history"
	"github.com/videodl/videodl/internal/model"
	"github.com/videodl/videodl/internal/platform"
	"github.com/videodl/videodl/internal/tool"
	"github.com/videodl/videodl/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.videodl.videodl"
	AppName = "VideoDL"

	WindowWidth  = 800
	WindowHeight = 600

	HistoryFileName = "history.db"
)

func main() {
	logger := log.Default()
	logger.Infof("%s v%s starting", AppName, version)

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	settings := config.NewSettings(myApp)
	outputDir := settings.GetOutputDirectory()
	if err := platform.CreateDirectoryIfNotExists(outputDir); err != nil {
		logger.Warnf("failed to ensure output dir: %v", err)
	}

	// Download history is optional; the app runs without it.
	var historyStore *history.Store
	historyPath := filepath.Join(myApp.Storage().RootURI().Path(), HistoryFileName)
	db, err := history.Open(historyPath)
	if err != nil {
		logger.Warnf("history database unavailable: %v", err)
	} else if err := db.Migrate(); err != nil {
		logger.Warnf("history migration failed: %v", err)
		db.Close()
	} else {
		historyStore = history.NewStore(db.DB)
	}

	invoker := tool.NewYTDLPInvoker(logger)
	downloadSvc := download.NewService(invoker, outputDir, settings.GetMaxParallelDownloads(), logger)
	defer downloadSvc.Close()

	// Provision yt-dlp in the background; downloads stay gated until ready.
	updater := tool.NewUpdater(logger)
	downloadSvc.SetReadyCheck(updater.IsReady)
	go func() {
		if err := updater.Ensure(context.Background()); err != nil {
			logger.Errorf("yt-dlp provisioning failed: %v", err)
		}
	}()

	if historyStore != nil {
		downloadSvc.SetFinishedCallback(func(job *model.DownloadJob) {
			if !settings.GetKeepHistory() {
				return
			}
			if err := historyStore.RecordJob(job); err != nil {
				logger.Warnf("failed to record history for %s: %v", job.ID, err)
			}
		})
	}

	ui.NewRootUI(myWindow, myApp, downloadSvc, updater, historyStore, logger)

	myWindow.ShowAndRun()
}
