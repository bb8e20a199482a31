package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconPlay     = "▶"
	IconFolder   = "📁"
	IconCopy     = "📋"
	IconClose    = "×"
	IconError    = "❌"
	IconClock    = "⏳"
	IconStop     = "⏹"
)

// Text fragments
const (
	MiddleDotSeparator  = " · "
	DashPlaceholder     = "—"
	ProgressLabelFormat = "%d%%"
)

// Layout sizing (JobRow / lists)
const (
	StatusLabelWidth  float32 = 96
	SpeedLabelWidth   float32 = 100
	PercentLabelWidth float32 = 48
)

// Dialog sizing
const (
	LogDialogWidth      float32 = 560
	LogDialogHeight     float32 = 400
	HistoryDialogWidth  float32 = 560
	HistoryDialogHeight float32 = 420
	SettingsDialogW     float32 = 500
	SettingsDialogH     float32 = 420
)

// Toast notification sizing and behavior
const (
	ToastWidth    float32 = 300
	ToastHeight   float32 = 120
	ToastMargin   float32 = 20
	ToastAutoHide         = 5 * time.Second
)

// Lines shown in the per-job log dialog
const (
	LogTailLines = 200
)
