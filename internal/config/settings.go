package config

import (
	"time"

	"fyne.io/fyne/v2"

	"github.com/ytget/mycourses-downloader/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyBrowserPath        = "browser_path"
	KeyHeadless           = "headless"
	KeyOutputDir          = "output_directory"
	KeyLoginTimeout       = "login_timeout_seconds"
	KeyLanguage           = "app_language"
	KeyAutoRevealComplete = "auto_reveal_on_complete"
)

// Default values
const (
	DefaultLoginTimeoutSeconds = 20
	DefaultLanguage            = "system"
	DefaultAutoRevealComplete  = true

	MinLoginTimeoutSeconds = 5
	MaxLoginTimeoutSeconds = 600
)

// Settings manages application configuration persisted between sessions
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetBrowserPath returns the configured browser executable, empty for auto-detect
func (s *Settings) GetBrowserPath() string {
	return s.app.Preferences().String(KeyBrowserPath)
}

// SetBrowserPath sets the browser executable path
func (s *Settings) SetBrowserPath(path string) {
	s.app.Preferences().SetString(KeyBrowserPath, path)
}

// GetHeadless returns whether the browser runs without a window
func (s *Settings) GetHeadless() bool {
	return s.app.Preferences().BoolWithFallback(KeyHeadless, false)
}

// SetHeadless sets whether the browser runs without a window
func (s *Settings) SetHeadless(headless bool) {
	s.app.Preferences().SetBool(KeyHeadless, headless)
}

// GetOutputDirectory returns the directory receiving archives
func (s *Settings) GetOutputDirectory() string {
	dir := s.app.Preferences().String(KeyOutputDir)
	if dir == "" {
		// Use system default Downloads directory
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			return ""
		}
		return defaultDir
	}
	return dir
}

// SetOutputDirectory sets the directory receiving archives
func (s *Settings) SetOutputDirectory(dir string) {
	s.app.Preferences().SetString(KeyOutputDir, dir)
}

// GetLoginTimeout returns how long to wait for the login to complete
func (s *Settings) GetLoginTimeout() time.Duration {
	value := s.app.Preferences().Int(KeyLoginTimeout)
	if value <= 0 {
		s.SetLoginTimeoutSeconds(DefaultLoginTimeoutSeconds)
		value = DefaultLoginTimeoutSeconds
	}
	return time.Duration(value) * time.Second
}

// SetLoginTimeoutSeconds sets the login timeout, clamped to a sane range
func (s *Settings) SetLoginTimeoutSeconds(seconds int) {
	if seconds < MinLoginTimeoutSeconds {
		seconds = MinLoginTimeoutSeconds
	}
	if seconds > MaxLoginTimeoutSeconds {
		seconds = MaxLoginTimeoutSeconds
	}
	s.app.Preferences().SetInt(KeyLoginTimeout, seconds)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetAutoRevealOnComplete returns whether to reveal the archive after a run
func (s *Settings) GetAutoRevealOnComplete() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoRevealComplete, DefaultAutoRevealComplete)
}

// SetAutoRevealOnComplete sets whether to reveal the archive after a run
func (s *Settings) SetAutoRevealOnComplete(autoReveal bool) {
	s.app.Preferences().SetBool(KeyAutoRevealComplete, autoReveal)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"fr":     "Français",
	}
}

// Apply overlays the persisted settings on top of the runtime options.
// Values given explicitly on the command line win over stored ones.
func (s *Settings) Apply(opts Options) Options {
	if opts.BrowserPath == "" {
		opts.BrowserPath = s.GetBrowserPath()
	}
	if !opts.HeadlessSet {
		opts.Headless = s.GetHeadless()
	}
	if opts.OutputDir == "" {
		opts.OutputDir = s.app.Preferences().String(KeyOutputDir)
	}
	if opts.LoginTimeout <= 0 {
		opts.LoginTimeout = s.GetLoginTimeout()
	}
	return opts
}
