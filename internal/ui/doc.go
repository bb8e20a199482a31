package ui

// Package ui contains the Fyne-based desktop user interface for the
// application. It wires user interactions to the download service, the
// yt-dlp updater, and the history store, and renders job rows, dialogs,
// and notifications. All UI strings are localized via Localization.
