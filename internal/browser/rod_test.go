package browser

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-rod/rod/lib/launcher"
)

func TestIsXPath(t *testing.T) {
	tests := []struct {
		selector string
		expected bool
	}{
		{`//a[@id="link1"]`, true},
		{`(//a)[1]`, true},
		{`  //div`, true},
		{`d2l-my-courses`, false},
		{`a#link1`, false},
		{`[data-id="1"]`, false},
	}

	for _, test := range tests {
		if result := IsXPath(test.selector); result != test.expected {
			t.Errorf("IsXPath(%q) = %v, expected %v", test.selector, result, test.expected)
		}
	}
}

func TestNewRodDriver_DefaultLogger(t *testing.T) {
	d := NewRodDriver(RodOptions{Headless: true}, nil)
	if d.logger == nil {
		t.Error("Expected default logger to be set")
	}
	if !d.opts.Headless {
		t.Error("Expected headless option to be kept")
	}
}

func TestLocateError(t *testing.T) {
	timedOut := fmt.Errorf("wait: %w", context.DeadlineExceeded)

	err := locateError(context.Background(), timedOut, "d2l-my-courses", time.Second)
	if !errors.Is(err, ErrElementTimeout) {
		t.Errorf("Expected ErrElementTimeout while the run is alive, got %v", err)
	}

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	err = locateError(cancelled, timedOut, "d2l-my-courses", time.Second)
	if errors.Is(err, ErrElementTimeout) {
		t.Errorf("Cancelled run should not report a locator timeout, got %v", err)
	}

	other := errors.New("cdp closed")
	err = locateError(context.Background(), other, "a#link1", time.Second)
	if !errors.Is(err, other) {
		t.Errorf("Expected the cause to be kept, got %v", err)
	}
}

func TestRodSession_ClickAndWait(t *testing.T) {
	if _, found := launcher.LookPath(); !found {
		t.Skip("no Chromium-based browser installed")
	}

	ctx := context.Background()
	session, err := NewRodDriver(RodOptions{Headless: true}, nil).OpenSession(ctx, t.TempDir())
	if err != nil {
		t.Fatalf("Failed to open session: %v", err)
	}
	defer session.Close()

	page := `data:text/html,<a id="link1" onclick="document.body.appendChild(document.createElement('d2l-my-courses'))">sign in</a>`
	if err := session.Navigate(ctx, page); err != nil {
		t.Fatalf("Failed to navigate: %v", err)
	}

	if err := session.Click(ctx, `//a[@id="link1"]`); err != nil {
		t.Fatalf("Click failed: %v", err)
	}
	if err := session.WaitForElement(ctx, "d2l-my-courses", 5*time.Second); err != nil {
		t.Errorf("Expected element after click, got %v", err)
	}

	err = session.WaitForElement(ctx, "#missing", 200*time.Millisecond)
	if !errors.Is(err, ErrElementTimeout) {
		t.Errorf("Expected ErrElementTimeout, got %v", err)
	}
}
