package main

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/charmbracelet/log"

	"github.com/videodl/videodl/internal/config"
	"github.com/videodl/videodl/internal/download"
	"github.com/videodl/videodl/internal/tool"
	"github.com/videodl/videodl/internal/ui"
)

func main() {
	logger := log.Default()

	myApp := app.NewWithID("com.videodl.videodl")
	myApp.Settings().SetTheme(ui.NewCompactTheme())
	myWindow := myApp.NewWindow("VideoDL")
	myWindow.Resize(fyne.NewSize(800, 600))

	settings := config.NewSettings(myApp)

	invoker := tool.NewYTDLPInvoker(logger)
	downloadSvc := download.NewService(invoker, settings.GetOutputDirectory(), settings.GetMaxParallelDownloads(), logger)
	defer downloadSvc.Close()

	updater := tool.NewUpdater(logger)
	downloadSvc.SetReadyCheck(updater.IsReady)
	go func() {
		if err := updater.Ensure(context.Background()); err != nil {
			logger.Errorf("yt-dlp provisioning failed: %v", err)
		}
	}()

	ui.NewRootUI(myWindow, myApp, downloadSvc, updater, nil, logger)

	myWindow.ShowAndRun()
}
