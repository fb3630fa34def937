package config

import (
	"time"

	"github.com/urfave/cli/v3"

	"github.com/ytget/mycourses-downloader/internal/browser"
	"github.com/ytget/mycourses-downloader/internal/compress"
	"github.com/ytget/mycourses-downloader/internal/download"
)

// Options holds the runtime settings shared by the GUI and the headless mode
type Options struct {
	BrowserPath   string
	Headless      bool
	UserDataDir   string
	CatalogPath   string
	BaseURL       string
	WorkDir       string
	OutputDir     string
	ArchiveName   string
	LoginTimeout  time.Duration
	SettleTimeout time.Duration

	// HeadlessSet is true when --headless came from the command line or
	// the environment, so the stored setting must not replace it
	HeadlessSet bool
}

// Flags returns CLI flags for the runtime options
func (o *Options) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "browser",
			Usage:       "Path to the Chromium-based browser executable (empty: auto-detect)",
			Destination: &o.BrowserPath,
			Sources:     cli.EnvVars("MYCOURSES_BROWSER_PATH"),
		},
		&cli.BoolFlag{
			Name:        "headless",
			Usage:       "Run the browser without a window",
			Destination: &o.Headless,
			Sources:     cli.EnvVars("MYCOURSES_HEADLESS"),
		},
		&cli.StringFlag{
			Name:        "user-data-dir",
			Usage:       "Browser profile directory, keeps the login between runs",
			Destination: &o.UserDataDir,
			Sources:     cli.EnvVars("MYCOURSES_USER_DATA_DIR"),
		},
		&cli.StringFlag{
			Name:        "catalog",
			Usage:       "Course catalog TOML file (empty: built-in catalog)",
			Destination: &o.CatalogPath,
			Sources:     cli.EnvVars("MYCOURSES_CATALOG"),
		},
		&cli.StringFlag{
			Name:        "base-url",
			Usage:       "Base URL of the myCourses site",
			Value:       download.DefaultBaseURL,
			Destination: &o.BaseURL,
			Sources:     cli.EnvVars("MYCOURSES_BASE_URL"),
		},
		&cli.StringFlag{
			Name:        "work-dir",
			Usage:       "Temporary directory receiving the browser downloads",
			Destination: &o.WorkDir,
			Sources:     cli.EnvVars("MYCOURSES_WORK_DIR"),
		},
		&cli.StringFlag{
			Name:        "output-dir",
			Usage:       "Directory receiving the archive (empty: the Downloads folder)",
			Destination: &o.OutputDir,
			Sources:     cli.EnvVars("MYCOURSES_OUTPUT_DIR"),
		},
		&cli.StringFlag{
			Name:        "archive-name",
			Usage:       "Archive base name, numbered on collision",
			Value:       compress.DefaultArchiveBaseName,
			Destination: &o.ArchiveName,
			Sources:     cli.EnvVars("MYCOURSES_ARCHIVE_NAME"),
		},
		&cli.DurationFlag{
			Name:        "login-timeout",
			Usage:       "How long to wait for the login to complete",
			Destination: &o.LoginTimeout,
			Sources:     cli.EnvVars("MYCOURSES_LOGIN_TIMEOUT"),
		},
		&cli.DurationFlag{
			Name:        "settle-timeout",
			Usage:       "How long to wait for in-progress downloads",
			Value:       download.DefaultSettleTimeout,
			Destination: &o.SettleTimeout,
			Sources:     cli.EnvVars("MYCOURSES_SETTLE_TIMEOUT"),
		},
	}
}

// DownloadConfig builds the orchestrator configuration. Zero values fall
// back to the download package defaults.
func (o Options) DownloadConfig() download.Config {
	cfg := download.DefaultConfig()
	if o.BaseURL != "" {
		cfg.BaseURL = o.BaseURL
	}
	if o.WorkDir != "" {
		cfg.WorkDir = o.WorkDir
	}
	if o.LoginTimeout > 0 {
		cfg.LoginTimeout = o.LoginTimeout
	}
	if o.SettleTimeout > 0 {
		cfg.SettleTimeout = o.SettleTimeout
	}
	cfg.OutputDir = o.OutputDir
	return cfg
}

// Archiver builds the archive writer for the configured base name
func (o Options) Archiver() *compress.Service {
	return compress.NewServiceWithName(o.ArchiveName)
}

// RodOptions builds the browser driver options
func (o Options) RodOptions() browser.RodOptions {
	return browser.RodOptions{
		BinPath:     o.BrowserPath,
		Headless:    o.Headless,
		UserDataDir: o.UserDataDir,
	}
}
