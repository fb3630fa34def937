package browser

import (
	"context"
	"time"
)

// Driver opens automated browser sessions.
type Driver interface {
	// OpenSession starts a browser that saves downloads into downloadDir
	// without prompting.
	OpenSession(ctx context.Context, downloadDir string) (Session, error)
}

// Session is one running browser with a single active page.
// Selectors starting with "/" or "(" are XPath, anything else is CSS.
type Session interface {
	Navigate(ctx context.Context, url string) error
	Click(ctx context.Context, selector string) error
	WaitForElement(ctx context.Context, selector string, timeout time.Duration) error
	Close() error
}
