package download_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ytget/mycourses-downloader/internal/browser"
)

// fakeDriver simulates a browser that saves one file per direct-download
// navigation into the session's download directory
type fakeDriver struct {
	mu          sync.Mutex
	downloadDir string
	navigated   []string
	clicked     []string
	closed      bool

	// stall leaves a .crdownload marker instead of a finished file
	stall bool
	// finishAfter writes the .crdownload marker first and renames it to the
	// final name once the delay passes
	finishAfter time.Duration
	finished    int
	// skip lists file ids that never produce a file
	skip map[string]bool
	// loginErr is returned from WaitForElement
	loginErr error
	// loginGate blocks WaitForElement until closed
	loginGate chan struct{}
	// opened is closed when OpenSession runs
	opened chan struct{}
}

func (d *fakeDriver) OpenSession(ctx context.Context, downloadDir string) (browser.Session, error) {
	d.mu.Lock()
	d.downloadDir = downloadDir
	d.mu.Unlock()
	if d.opened != nil {
		close(d.opened)
	}
	return &fakeSession{driver: d}, nil
}

func (d *fakeDriver) downloadURLs() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var urls []string
	for _, u := range d.navigated {
		if strings.HasSuffix(u, "/DirectFileTopicDownload") {
			urls = append(urls, u)
		}
	}
	return urls
}

func (d *fakeDriver) isClosed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

type fakeSession struct {
	driver *fakeDriver
}

func (s *fakeSession) Navigate(ctx context.Context, url string) error {
	d := s.driver
	d.mu.Lock()
	d.navigated = append(d.navigated, url)
	dir := d.downloadDir
	d.mu.Unlock()

	if !strings.HasSuffix(url, "/DirectFileTopicDownload") {
		return nil
	}

	parts := strings.Split(url, "/")
	fileID := parts[len(parts)-2]
	if d.skip[fileID] {
		return fmt.Errorf("navigation failed: net::ERR_ABORTED")
	}

	name := fileID + ".pdf"
	if d.stall || d.finishAfter > 0 {
		name += ".crdownload"
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("content of "+fileID), 0644); err != nil {
		return err
	}
	if d.finishAfter > 0 && !d.stall {
		time.AfterFunc(d.finishAfter, func() {
			if err := os.Rename(path, strings.TrimSuffix(path, ".crdownload")); err != nil {
				return
			}
			d.mu.Lock()
			d.finished++
			d.mu.Unlock()
		})
	}
	return fmt.Errorf("navigation failed: net::ERR_ABORTED")
}

func (d *fakeDriver) finishedCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.finished
}

func (s *fakeSession) Click(ctx context.Context, selector string) error {
	s.driver.mu.Lock()
	defer s.driver.mu.Unlock()
	s.driver.clicked = append(s.driver.clicked, selector)
	return nil
}

func (s *fakeSession) WaitForElement(ctx context.Context, selector string, timeout time.Duration) error {
	if s.driver.loginGate != nil {
		select {
		case <-s.driver.loginGate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return s.driver.loginErr
}

func (s *fakeSession) Close() error {
	s.driver.mu.Lock()
	defer s.driver.mu.Unlock()
	s.driver.closed = true
	return nil
}
