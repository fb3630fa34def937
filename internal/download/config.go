package download

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Defaults for the McGill myCourses (D2L Brightspace) deployment
const (
	DefaultBaseURL          = "https://mycourses2.mcgill.ca"
	DefaultLoginPath        = "/d2l/loginh/"
	DefaultSignInSelector   = `//a[@id="link1"]`
	DefaultLoggedInSelector = "d2l-my-courses"
	DefaultLoginTimeout     = 20 * time.Second
	DefaultSettleTimeout    = 30 * time.Minute
	DefaultPollInterval     = 100 * time.Millisecond
	DefaultQuietPeriod      = 3 * time.Second
	DefaultWorkDirName      = "mycourses-downloader"
)

// Config holds the orchestrator settings
type Config struct {
	BaseURL          string
	LoginPath        string
	SignInSelector   string
	LoggedInSelector string

	// LoginTimeout bounds the wait for the post-login marker
	LoginTimeout time.Duration
	// SettleTimeout bounds the wait for in-progress downloads
	SettleTimeout time.Duration
	PollInterval  time.Duration
	// QuietPeriod is how long the batch must stay unchanged before it is
	// considered settled when fewer files than planned arrived
	QuietPeriod time.Duration

	// WorkDir is created fresh for every run and removed afterwards
	WorkDir string
	// OutputDir receives the archive; empty means the user's downloads folder
	OutputDir string
}

// DefaultConfig returns the configuration for myCourses
func DefaultConfig() Config {
	return Config{
		BaseURL:          DefaultBaseURL,
		LoginPath:        DefaultLoginPath,
		SignInSelector:   DefaultSignInSelector,
		LoggedInSelector: DefaultLoggedInSelector,
		LoginTimeout:     DefaultLoginTimeout,
		SettleTimeout:    DefaultSettleTimeout,
		PollInterval:     DefaultPollInterval,
		QuietPeriod:      DefaultQuietPeriod,
		WorkDir:          filepath.Join(os.TempDir(), DefaultWorkDirName),
	}
}

// LoginURL returns the absolute login page URL
func (c Config) LoginURL() string {
	return strings.TrimRight(c.BaseURL, "/") + c.LoginPath
}

// withDefaults fills zero values from DefaultConfig
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.BaseURL == "" {
		c.BaseURL = d.BaseURL
	}
	if c.LoginPath == "" {
		c.LoginPath = d.LoginPath
	}
	if c.SignInSelector == "" {
		c.SignInSelector = d.SignInSelector
	}
	if c.LoggedInSelector == "" {
		c.LoggedInSelector = d.LoggedInSelector
	}
	if c.LoginTimeout <= 0 {
		c.LoginTimeout = d.LoginTimeout
	}
	if c.SettleTimeout <= 0 {
		c.SettleTimeout = d.SettleTimeout
	}
	if c.PollInterval <= 0 {
		c.PollInterval = d.PollInterval
	}
	if c.QuietPeriod <= 0 {
		c.QuietPeriod = d.QuietPeriod
	}
	if c.WorkDir == "" {
		c.WorkDir = d.WorkDir
	}
	return c
}
