package download

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/ytget/mycourses-downloader/internal/browser"
	"github.com/ytget/mycourses-downloader/internal/compress"
	"github.com/ytget/mycourses-downloader/internal/model"
	"github.com/ytget/mycourses-downloader/internal/platform"
)

const (
	RunIDPrefix        = "run-"
	WorkDirPermissions = 0700
	// LockFileSuffix names the lock file next to the work directory
	LockFileSuffix = ".lock"
)

var (
	ErrWorkDirExists   = errors.New("work directory already exists")
	ErrLoginTimeout    = errors.New("login marker did not appear in time")
	ErrSettleTimeout   = errors.New("downloads did not settle in time")
	ErrRunInProgress   = errors.New("a download run is already in progress")
	ErrNothingSelected = errors.New("no files to download")
)

// Service runs download-and-archive operations, one at a time
type Service struct {
	cfg      Config
	catalog  *model.Catalog
	driver   browser.Driver
	archiver compress.Archiver
	logger   *slog.Logger

	mu       sync.Mutex
	run      *model.DownloadRun
	cancel   context.CancelFunc
	onUpdate func(*model.DownloadRun) // callback for UI updates
}

// NewService creates a new download service
func NewService(cfg Config, catalog *model.Catalog, driver browser.Driver, archiver compress.Archiver, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		cfg:      cfg.withDefaults(),
		catalog:  catalog,
		driver:   driver,
		archiver: archiver,
		logger:   logger,
	}
}

// SetUpdateCallback sets the callback function for run updates
func (s *Service) SetUpdateCallback(callback func(*model.DownloadRun)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onUpdate = callback
}

// CurrentRun returns a snapshot of the latest run
func (s *Service) CurrentRun() (*model.DownloadRun, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.run == nil {
		return nil, false
	}
	return s.run.Snapshot(), true
}

// Cancel stops the in-flight run
func (s *Service) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
}

// DownloadSelected downloads every file of the given courses and archives them.
// It blocks until the archive is written or the run fails.
func (s *Service) DownloadSelected(ctx context.Context, courseIDs []int) (*model.DownloadRun, error) {
	items := s.catalog.Items(s.cfg.BaseURL, courseIDs)
	if len(items) == 0 {
		return nil, goerr.Wrap(ErrNothingSelected, "nothing to download", goerr.V("course_ids", courseIDs))
	}

	s.mu.Lock()
	if s.cancel != nil {
		s.mu.Unlock()
		return nil, goerr.Wrap(ErrRunInProgress, "cannot start download")
	}
	ctx, cancel := context.WithCancel(ctx)
	run := &model.DownloadRun{
		ID:        generateRunID(),
		CourseIDs: append([]int(nil), courseIDs...),
		Status:    model.RunStatusPending,
		Planned:   len(items),
		WorkDir:   s.cfg.WorkDir,
		StartedAt: time.Now(),
	}
	s.run = run
	s.cancel = cancel
	s.mu.Unlock()

	defer func() {
		cancel()
		s.mu.Lock()
		s.cancel = nil
		s.mu.Unlock()
	}()

	logger := s.logger.With("run_id", run.ID)
	logger.Info("download run started", "courses", courseIDs, "files", len(items))

	err := s.execute(ctx, run, items, logger)
	result := s.finish(run, err)

	if err != nil {
		logger.Error("download run failed", "error", err, "status", result.Status)
		return result, err
	}

	logger.Info("download run completed",
		"archive", result.ArchivePath,
		"archived", result.Archived,
		"planned", result.Planned,
		"elapsed", result.Elapsed(),
	)
	return result, nil
}

// execute performs the run steps in order; each depends on the previous one
func (s *Service) execute(ctx context.Context, run *model.DownloadRun, items []model.DownloadItem, logger *slog.Logger) error {
	s.setStatus(run, model.RunStatusStarting)

	// Other processes share the same work directory path
	lock := flock.New(s.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return goerr.Wrap(err, "failed to acquire run lock", goerr.V("lock", lock.Path()))
	}
	if !locked {
		return goerr.Wrap(ErrRunInProgress, "another process is downloading", goerr.V("lock", lock.Path()))
	}
	defer func() {
		// Removed while still held so a waiting opener never locks a stale file
		if err := os.Remove(lock.Path()); err != nil && !os.IsNotExist(err) {
			logger.Warn("failed to remove run lock", "lock", lock.Path(), "error", err)
		}
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release run lock", "lock", lock.Path(), "error", err)
		}
	}()

	if err := os.Mkdir(s.cfg.WorkDir, WorkDirPermissions); err != nil {
		if os.IsExist(err) {
			return goerr.Wrap(ErrWorkDirExists, "refusing to reuse work directory", goerr.V("work_dir", s.cfg.WorkDir))
		}
		return goerr.Wrap(err, "failed to create work directory", goerr.V("work_dir", s.cfg.WorkDir))
	}
	defer s.removeWorkDir(logger)

	session, err := s.driver.OpenSession(ctx, s.cfg.WorkDir)
	if err != nil {
		return goerr.Wrap(err, "failed to open browser session")
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.Warn("failed to close browser session", "error", err)
		}
	}()

	if err := s.login(ctx, session, logger); err != nil {
		return err
	}

	s.setStatus(run, model.RunStatusDownloading)
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return err
		}

		// Chromium aborts the navigation once the response turns into a
		// download, so an error here says nothing about the file itself.
		if err := session.Navigate(ctx, item.URL); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Debug("download navigation returned error",
				"course_id", item.CourseID, "file_id", item.FileID, "error", err)
		}

		s.update(run, func(r *model.DownloadRun) { r.Requested++ })
		logger.Debug("download requested", "course_id", item.CourseID, "folder", item.Folder, "file_id", item.FileID)
	}

	s.setStatus(run, model.RunStatusSettling)
	snap, err := s.waitForSettle(ctx, len(items), logger)
	if err != nil {
		return err
	}
	logger.Info("download batch settled", "files", len(snap.Complete))

	s.setStatus(run, model.RunStatusArchiving)
	outputDir, err := s.outputDir()
	if err != nil {
		return err
	}
	if err := platform.CreateDirectoryIfNotExists(outputDir); err != nil {
		return goerr.Wrap(err, "failed to create output directory", goerr.V("dir", outputDir))
	}

	dest, err := s.archiver.NextArchivePath(outputDir)
	if err != nil {
		return err
	}
	count, err := s.archiver.ArchiveDir(s.cfg.WorkDir, dest)
	if err != nil {
		return err
	}

	s.update(run, func(r *model.DownloadRun) {
		r.ArchivePath = dest
		r.Archived = count
	})

	if count < len(items) {
		logger.Warn("some files are missing from the archive", "planned", len(items), "archived", count)
	}
	logger.Info("files have been downloaded and zipped", "archive", dest)
	return nil
}

// login opens the login page, clicks the sign-in link and waits for the
// post-login marker
func (s *Service) login(ctx context.Context, session browser.Session, logger *slog.Logger) error {
	loginURL := s.cfg.LoginURL()
	logger.Info("opening login page", "url", loginURL)

	if err := session.Navigate(ctx, loginURL); err != nil {
		return goerr.Wrap(err, "failed to open login page", goerr.V("url", loginURL))
	}

	if err := session.Click(ctx, s.cfg.SignInSelector); err != nil {
		return goerr.Wrap(err, "failed to click sign-in link", goerr.V("selector", s.cfg.SignInSelector))
	}

	err := session.WaitForElement(ctx, s.cfg.LoggedInSelector, s.cfg.LoginTimeout)
	if err != nil {
		if errors.Is(err, browser.ErrElementTimeout) {
			return goerr.Wrap(ErrLoginTimeout, "login did not complete",
				goerr.V("selector", s.cfg.LoggedInSelector),
				goerr.V("timeout", s.cfg.LoginTimeout),
			)
		}
		return goerr.Wrap(err, "failed waiting for login")
	}

	logger.Info("logged in")
	return nil
}

// LockPath returns the file used to serialize runs across processes
func (s *Service) LockPath() string {
	return filepath.Clean(s.cfg.WorkDir) + LockFileSuffix
}

// outputDir returns the archive destination directory
func (s *Service) outputDir() (string, error) {
	if s.cfg.OutputDir != "" {
		return s.cfg.OutputDir, nil
	}
	dir, err := platform.GetHomeDownloadsDir()
	if err != nil {
		return "", goerr.Wrap(err, "failed to resolve downloads folder")
	}
	return dir, nil
}

// removeWorkDir deletes the batch directory and everything in it
func (s *Service) removeWorkDir(logger *slog.Logger) {
	if err := os.RemoveAll(s.cfg.WorkDir); err != nil {
		logger.Warn("failed to remove work directory", "work_dir", s.cfg.WorkDir, "error", err)
	}
}

// finish records the final status and returns a snapshot of the run
func (s *Service) finish(run *model.DownloadRun, err error) *model.DownloadRun {
	s.mu.Lock()
	switch {
	case err == nil:
		run.Status = model.RunStatusCompleted
	case errors.Is(err, context.Canceled):
		run.Status = model.RunStatusStopped
	default:
		run.Status = model.RunStatusError
		run.LastError = err.Error()
	}
	run.FinishedAt = time.Now()
	snap := run.Snapshot()
	s.mu.Unlock()

	s.notifyUpdate(snap)
	return snap
}

func (s *Service) setStatus(run *model.DownloadRun, status model.RunStatus) {
	s.update(run, func(r *model.DownloadRun) { r.Status = status })
}

// update mutates the run under the lock and publishes a snapshot
func (s *Service) update(run *model.DownloadRun, fn func(*model.DownloadRun)) {
	s.mu.Lock()
	fn(run)
	snap := run.Snapshot()
	s.mu.Unlock()

	s.notifyUpdate(snap)
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(run *model.DownloadRun) {
	s.mu.Lock()
	callback := s.onUpdate
	s.mu.Unlock()

	if callback != nil {
		callback(run)
	}
}

// generateRunID generates a unique, time-ordered run ID using UUID v7
func generateRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(RunIDPrefix+"%d", time.Now().UnixNano())
	}
	return RunIDPrefix + id.String()
}
