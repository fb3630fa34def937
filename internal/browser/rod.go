package browser

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/m-mizutani/goerr/v2"
)

// ErrElementTimeout is returned when a waited-for element never appears
var ErrElementTimeout = errors.New("element did not appear in time")

// DefaultClickTimeout bounds how long Click waits for its target to render
const DefaultClickTimeout = 30 * time.Second

// RodOptions configures the rod driver
type RodOptions struct {
	// BinPath is the browser executable; empty means look up the system browser
	BinPath  string
	Headless bool
	// UserDataDir keeps cookies between runs when set
	UserDataDir string
}

// RodDriver launches Chromium through go-rod
type RodDriver struct {
	opts   RodOptions
	logger *slog.Logger
}

// NewRodDriver creates a new rod-backed driver
func NewRodDriver(opts RodOptions, logger *slog.Logger) *RodDriver {
	if logger == nil {
		logger = slog.Default()
	}
	return &RodDriver{opts: opts, logger: logger}
}

// OpenSession launches the browser, points its downloads at downloadDir and
// opens a blank page
func (d *RodDriver) OpenSession(ctx context.Context, downloadDir string) (Session, error) {
	l := launcher.New().
		Context(ctx).
		Headless(d.opts.Headless).
		Set("disable-blink-features", "AutomationControlled")

	binPath := d.opts.BinPath
	if binPath == "" {
		if path, found := launcher.LookPath(); found {
			binPath = path
		}
	}
	if binPath != "" {
		d.logger.Debug("using browser binary", "path", binPath)
		l = l.Bin(binPath)
	}
	if d.opts.UserDataDir != "" {
		l = l.UserDataDir(d.opts.UserDataDir)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to launch browser", goerr.V("bin", binPath))
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		l.Kill()
		return nil, goerr.Wrap(err, "failed to connect to browser")
	}

	err = proto.BrowserSetDownloadBehavior{
		Behavior:     proto.BrowserSetDownloadBehaviorBehaviorAllow,
		DownloadPath: downloadDir,
	}.Call(b)
	if err != nil {
		b.Close()
		l.Kill()
		return nil, goerr.Wrap(err, "failed to set download directory", goerr.V("dir", downloadDir))
	}

	page, err := b.Page(proto.TargetCreateTarget{})
	if err != nil {
		b.Close()
		l.Kill()
		return nil, goerr.Wrap(err, "failed to open page")
	}

	return &rodSession{launcher: l, browser: b, page: page, logger: d.logger}, nil
}

type rodSession struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
	logger   *slog.Logger
}

func (s *rodSession) Navigate(ctx context.Context, url string) error {
	if err := s.page.Context(ctx).Navigate(url); err != nil {
		return goerr.Wrap(err, "navigation failed", goerr.V("url", url))
	}
	return nil
}

func (s *rodSession) Click(ctx context.Context, selector string) error {
	page := s.page.Context(ctx).Timeout(DefaultClickTimeout)
	// The element shares the page timeout, so it must outlive the click
	defer page.CancelTimeout()

	el, err := findElement(ctx, page, selector, DefaultClickTimeout)
	if err != nil {
		return err
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return goerr.Wrap(err, "click failed", goerr.V("selector", selector))
	}
	return nil
}

func (s *rodSession) WaitForElement(ctx context.Context, selector string, timeout time.Duration) error {
	page := s.page.Context(ctx).Timeout(timeout)
	defer page.CancelTimeout()

	_, err := findElement(ctx, page, selector, timeout)
	return err
}

// findElement locates selector on a page already bound to a timeout
func findElement(ctx context.Context, page *rod.Page, selector string, timeout time.Duration) (*rod.Element, error) {
	var (
		el  *rod.Element
		err error
	)
	if IsXPath(selector) {
		el, err = page.ElementX(selector)
	} else {
		el, err = page.Element(selector)
	}

	if err != nil {
		return nil, locateError(ctx, err, selector, timeout)
	}
	return el, nil
}

// locateError tells a locator timeout apart from a cancelled run
func locateError(ctx context.Context, err error, selector string, timeout time.Duration) error {
	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		return goerr.Wrap(ErrElementTimeout, "locator timed out",
			goerr.V("selector", selector), goerr.V("timeout", timeout))
	}
	return goerr.Wrap(err, "failed to locate element", goerr.V("selector", selector))
}

func (s *rodSession) Close() error {
	err := s.browser.Close()
	s.launcher.Kill()
	if err != nil {
		s.logger.Debug("browser close returned error", "error", err)
		return goerr.Wrap(err, "failed to close browser")
	}
	return nil
}

// IsXPath reports whether the selector should be evaluated as XPath
func IsXPath(selector string) bool {
	s := strings.TrimSpace(selector)
	return strings.HasPrefix(s, "/") || strings.HasPrefix(s, "(")
}
