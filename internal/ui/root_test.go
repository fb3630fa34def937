package ui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/mycourses-downloader/internal/config"
	"github.com/ytget/mycourses-downloader/internal/download"
	"github.com/ytget/mycourses-downloader/internal/model"
)

type fakeDownloader struct {
	mu       sync.Mutex
	callback func(*model.DownloadRun)
	started  chan []int
	cancel   bool
}

func (f *fakeDownloader) SetUpdateCallback(cb func(*model.DownloadRun)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.callback = cb
}

func (f *fakeDownloader) DownloadSelected(_ context.Context, ids []int) (*model.DownloadRun, error) {
	f.started <- ids
	return &model.DownloadRun{Status: model.RunStatusCompleted, CourseIDs: ids}, nil
}

func (f *fakeDownloader) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancel = true
}

func (f *fakeDownloader) CurrentRun() (*model.DownloadRun, bool) {
	return nil, false
}

func newTestCatalog(t *testing.T) *model.Catalog {
	t.Helper()
	catalog, err := model.NewCatalog([]model.Course{
		{
			ID:   779615,
			Name: "FACC 300",
			Folders: []model.Folder{
				{Name: "Course Material", FileIDs: []string{"8286939", "8286940", "8286941"}},
				{Name: "Course Notes", FileIDs: []string{"8286970"}},
			},
		},
		{
			ID:   762082,
			Name: "ECSE 343",
			Folders: []model.Folder{
				{Name: "Course Outline", FileIDs: []string{"8267885"}},
				{Name: "Lecture Schedule/Handouts", FileIDs: []string{"8268066"}},
			},
		},
		{ID: 700001, Name: "Empty"},
	})
	if err != nil {
		t.Fatalf("failed to build catalog: %v", err)
	}
	return catalog
}

func newTestUI(t *testing.T, factory DownloaderFactory) *RootUI {
	t.Helper()
	app := test.NewApp()
	t.Cleanup(app.Quit)

	config.NewSettings(app).SetAutoRevealOnComplete(false)
	window := app.NewWindow("test")

	if factory == nil {
		factory = func() (download.Downloader, error) {
			t.Error("downloader should not be created")
			return nil, errors.New("unexpected")
		}
	}
	return NewRootUI(window, app, newTestCatalog(t), factory, nil)
}

func TestRootUIInitialState(t *testing.T) {
	ui := newTestUI(t, nil)

	if got := ui.statusLabel.Text; got != "Selected courses: None | Total selected content: 0" {
		t.Errorf("unexpected status line %q", got)
	}
	if got := ui.downloadBtn.Text; got != "Download 0 file(s)" {
		t.Errorf("unexpected button text %q", got)
	}
	if got := ui.headerLabel.Text; got != "MyCourses Downloads" {
		t.Errorf("unexpected header %q", got)
	}
	if len(ui.cards) != 3 {
		t.Errorf("expected 3 course cards, got %d", len(ui.cards))
	}
	if !ui.cancelBtn.Disabled() {
		t.Error("cancel should be disabled without an active run")
	}
}

func TestRootUITapTogglesSelection(t *testing.T) {
	ui := newTestUI(t, nil)

	test.Tap(ui.cards[779615])
	if got := ui.statusLabel.Text; got != "Selected courses: 779615 | Total selected content: 4" {
		t.Errorf("unexpected status line %q", got)
	}
	if got := ui.downloadBtn.Text; got != "Download 4 file(s)" {
		t.Errorf("unexpected button text %q", got)
	}
	if !ui.cards[779615].IsSelected() {
		t.Error("tapped card should be highlighted")
	}

	test.Tap(ui.cards[762082])
	if got := ui.statusLabel.Text; got != "Selected courses: 762082, 779615 | Total selected content: 6" {
		t.Errorf("unexpected status line %q", got)
	}

	// Tapping again removes the course
	test.Tap(ui.cards[779615])
	if got := ui.statusLabel.Text; got != "Selected courses: 762082 | Total selected content: 2" {
		t.Errorf("unexpected status line %q", got)
	}
	if ui.cards[779615].IsSelected() {
		t.Error("card should not be highlighted after second tap")
	}
	if got := ui.downloadBtn.Text; got != "Download 2 file(s)" {
		t.Errorf("unexpected button text %q", got)
	}
}

func TestRootUIDownloadNothingSelected(t *testing.T) {
	ui := newTestUI(t, nil)

	// A course without files does not count as content
	test.Tap(ui.cards[700001])
	test.Tap(ui.downloadBtn)

	if got := ui.notificationLabel.Text; got != ui.localization.GetText(KeyNothingSelected) {
		t.Errorf("unexpected notification %q", got)
	}
	if ui.isRunning() {
		t.Error("no run should be active")
	}
}

func TestRootUIDownloadStartsSelectedCourses(t *testing.T) {
	fake := &fakeDownloader{started: make(chan []int, 1)}
	ui := newTestUI(t, func() (download.Downloader, error) { return fake, nil })

	test.Tap(ui.cards[779615])
	test.Tap(ui.cards[762082])
	test.Tap(ui.downloadBtn)

	select {
	case ids := <-fake.started:
		if len(ids) != 2 || ids[0] != 762082 || ids[1] != 779615 {
			t.Errorf("unexpected course ids %v", ids)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("download was not started")
	}
}

func TestRootUIFactoryError(t *testing.T) {
	ui := newTestUI(t, func() (download.Downloader, error) {
		return nil, errors.New("browser not found")
	})

	test.Tap(ui.cards[762082])
	ui.onDownloadClick()

	if !strings.Contains(ui.notificationLabel.Text, "browser not found") {
		t.Errorf("notification should carry the error, got %q", ui.notificationLabel.Text)
	}
	if ui.isRunning() {
		t.Error("no run should be active after a factory error")
	}
}

func TestRootUICancel(t *testing.T) {
	ui := newTestUI(t, nil)
	fake := &fakeDownloader{}
	ui.active = fake
	ui.updateButtons()

	if ui.cancelBtn.Disabled() {
		t.Fatal("cancel should be enabled during a run")
	}
	if !ui.downloadBtn.Disabled() {
		t.Error("download should be disabled during a run")
	}

	test.Tap(ui.cancelBtn)
	if !fake.cancel {
		t.Error("cancel should reach the downloader")
	}
}

func TestRootUIRunFinished(t *testing.T) {
	tests := []struct {
		name string
		run  *model.DownloadRun
		err  error
		want string
	}{
		{
			name: "completed",
			run:  &model.DownloadRun{Status: model.RunStatusCompleted, Planned: 2, Archived: 2, ArchivePath: "/tmp/combined_files.zip"},
			want: "Saved 2 file(s) to /tmp/combined_files.zip",
		},
		{
			name: "completed with missing files",
			run:  &model.DownloadRun{Status: model.RunStatusCompleted, Planned: 4, Archived: 3, ArchivePath: "/tmp/combined_files (1).zip"},
			want: "Saved 3 file(s) to /tmp/combined_files (1).zip · 1 file(s) could not be downloaded",
		},
		{
			name: "cancelled",
			run:  &model.DownloadRun{Status: model.RunStatusStopped},
			err:  context.Canceled,
			want: "Download cancelled",
		},
		{
			name: "failed",
			run:  &model.DownloadRun{Status: model.RunStatusError},
			err:  download.ErrLoginTimeout,
			want: "Download failed: " + download.ErrLoginTimeout.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ui := newTestUI(t, nil)
			ui.active = &fakeDownloader{}

			ui.onRunFinished(tt.run, tt.err)

			if got := ui.notificationLabel.Text; got != tt.want {
				t.Errorf("expected notification %q, got %q", tt.want, got)
			}
			if ui.isRunning() {
				t.Error("run should be cleared")
			}
			if ui.downloadBtn.Disabled() {
				t.Error("download should be enabled again")
			}
		})
	}
}

func TestRootUIRunMessage(t *testing.T) {
	ui := newTestUI(t, nil)

	tests := []struct {
		run  *model.DownloadRun
		want string
	}{
		{&model.DownloadRun{Status: model.RunStatusStarting}, "Opening the browser and signing in..."},
		{&model.DownloadRun{Status: model.RunStatusDownloading, Requested: 3, Planned: 6}, "Requesting files 3/6"},
		{&model.DownloadRun{Status: model.RunStatusSettling}, "Waiting for downloads to finish..."},
		{&model.DownloadRun{Status: model.RunStatusArchiving}, "Creating the archive..."},
	}

	for _, tt := range tests {
		if got := ui.runMessage(tt.run); got != tt.want {
			t.Errorf("runMessage(%s) = %q, want %q", tt.run.Status, got, tt.want)
		}
	}
}

func TestRootUILanguageChange(t *testing.T) {
	ui := newTestUI(t, nil)

	ui.onLanguageChange("fr")

	if got := ui.headerLabel.Text; got != "Téléchargements MyCourses" {
		t.Errorf("unexpected header %q", got)
	}
	if got := ui.settings.GetLanguage(); got != "fr" {
		t.Errorf("language should be persisted, got %q", got)
	}
	// The status line keeps its fixed format
	if got := ui.statusLabel.Text; got != "Selected courses: None | Total selected content: 0" {
		t.Errorf("unexpected status line %q", got)
	}
}

func TestRootUIRunUpdateProgress(t *testing.T) {
	ui := newTestUI(t, nil)

	ui.onRunUpdate(&model.DownloadRun{Status: model.RunStatusDownloading, Requested: 3, Planned: 6})
	if !ui.notificationProgress.Visible() {
		t.Fatal("progress bar should show while requesting files")
	}
	if ui.notificationSpinner.Visible() {
		t.Error("spinner should hide while the progress bar shows")
	}
	if got := ui.notificationProgress.Value; got != 0.5 {
		t.Errorf("expected progress 0.5, got %v", got)
	}
	if got := ui.notificationLabel.Text; got != "Requesting files 3/6" {
		t.Errorf("unexpected notification %q", got)
	}

	ui.onRunUpdate(&model.DownloadRun{Status: model.RunStatusSettling, Requested: 6, Planned: 6})
	if ui.notificationProgress.Visible() {
		t.Error("progress bar should hide once requests are done")
	}
	if !ui.notificationSpinner.Visible() {
		t.Error("spinner should show while waiting for downloads")
	}

	// Finished runs are reported by onRunFinished only
	ui.onRunUpdate(&model.DownloadRun{Status: model.RunStatusCompleted, Requested: 6, Planned: 6})
	if got := ui.notificationLabel.Text; got != "Waiting for downloads to finish..." {
		t.Errorf("finished update should not change the notification, got %q", got)
	}
}

func TestRootUIQuitMenu(t *testing.T) {
	ui := newTestUI(t, nil)

	fileMenu := ui.window.MainMenu().Items[0]
	quit := fileMenu.Items[len(fileMenu.Items)-1]
	if !quit.IsQuit {
		t.Error("last file menu item should be the quit item")
	}
	if quit.Label != "Quit" {
		t.Errorf("unexpected quit label %q", quit.Label)
	}

	ui.onLanguageChange("fr")
	fileMenu = ui.window.MainMenu().Items[0]
	if got := fileMenu.Items[len(fileMenu.Items)-1].Label; got != "Quitter" {
		t.Errorf("unexpected localized quit label %q", got)
	}
}

func TestRootUIToastActions(t *testing.T) {
	ui := newTestUI(t, nil)
	ui.window.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	ui.showToastNotification(&model.DownloadRun{Status: model.RunStatusCompleted, ArchivePath: "/tmp/combined_files.zip"})

	popup, ok := ui.window.Canvas().Overlays().Top().(*widget.PopUp)
	if !ok {
		t.Fatal("expected the toast popup on the canvas")
	}

	var labels []string
	var walk func(obj fyne.CanvasObject)
	walk = func(obj fyne.CanvasObject) {
		switch o := obj.(type) {
		case *widget.Button:
			labels = append(labels, o.Text)
		case *fyne.Container:
			for _, child := range o.Objects {
				walk(child)
			}
		}
	}
	walk(popup.Content)

	want := []string{IconClose, IconOpen + " Open", IconFolder + " Reveal"}
	if strings.Join(labels, "|") != strings.Join(want, "|") {
		t.Errorf("expected toast buttons %q, got %q", want, labels)
	}
}

func TestRootUIOpenFileWithoutPath(t *testing.T) {
	ui := newTestUI(t, nil)

	ui.onOpenFile("")
	if ui.notificationContainer.Visible() {
		t.Error("opening nothing should not report an error")
	}
}
