package ui

// Package ui contains the Fyne-based desktop user interface for the application.
// It renders the course catalog as selectable cards, keeps the status line and
// the download button in sync with the selection, and runs the download
// service in the background. All UI strings are localized via Localization.
