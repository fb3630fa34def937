package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconFolder   = "📁"
	IconOpen     = "📄"
	IconClose    = "×"
	IconStop     = "■"
)

// Window sizing
const (
	WindowWidth  float32 = 900
	WindowHeight float32 = 640
)

// Course card sizing
const (
	CardWidth           float32 = 200
	CardHeight          float32 = 190
	CardThumbnailHeight float32 = 110
	CardCornerRadius    float32 = 6
	CardBorderWidth     float32 = 2
)

// Toast notification sizing and behavior
const (
	ToastWidth    float32 = 320
	ToastHeight   float32 = 120
	ToastMargin   float32 = 20
	ToastAutoHide         = 5 * time.Second
)

// Thumbnail download limits
const (
	ThumbnailTimeout  = 15 * time.Second
	ThumbnailMaxBytes = 4 << 20
)
