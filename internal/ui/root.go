package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/mycourses-downloader/internal/config"
	"github.com/ytget/mycourses-downloader/internal/download"
	"github.com/ytget/mycourses-downloader/internal/model"
	"github.com/ytget/mycourses-downloader/internal/platform"
)

// MiddleDotSeparator joins parts of a notification
const MiddleDotSeparator = " · "

// DownloaderFactory builds a download service from the current settings.
// It is called for every run so that saved settings take effect.
type DownloaderFactory func() (download.Downloader, error)

// RootUI represents the main UI structure
type RootUI struct {
	window        fyne.Window
	app           fyne.App
	catalog       *model.Catalog
	selection     *model.Selection
	settings      *config.Settings
	localization  *Localization
	newDownloader DownloaderFactory
	thumbnails    *thumbnailCache
	logger        *slog.Logger

	headerLabel *widget.Label
	statusLabel *widget.Label
	downloadBtn *widget.Button
	cancelBtn   *widget.Button
	settingsBtn *widget.Button
	cards       map[int]*CourseCard

	// Notification panel
	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	notificationSpinner   *widget.ProgressBarInfinite
	notificationProgress  *widget.ProgressBar

	mu     sync.Mutex
	active download.Downloader
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, catalog *model.Catalog, newDownloader DownloaderFactory, logger *slog.Logger) *RootUI {
	if logger == nil {
		logger = slog.Default()
	}

	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:        window,
		app:           app,
		catalog:       catalog,
		selection:     model.NewSelection(catalog),
		settings:      settings,
		localization:  localization,
		newDownloader: newDownloader,
		thumbnails:    newThumbnailCache(),
		logger:        logger,
		cards:         make(map[int]*CourseCard),
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.setupUI()
	logger.Debug("UI setup completed", "courses", catalog.Len())
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.headerLabel = widget.NewLabelWithStyle(ui.localization.GetText(KeyHeader), fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	ui.statusLabel = widget.NewLabel("")
	ui.statusLabel.Alignment = fyne.TextAlignCenter

	// Notification panel under the status line (hidden by default)
	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Wrapping = fyne.TextWrapWord
	ui.notificationSpinner = widget.NewProgressBarInfinite()
	ui.notificationSpinner.Hide()
	ui.notificationProgress = widget.NewProgressBar()
	ui.notificationProgress.Hide()
	ui.notificationContainer = container.NewBorder(nil, nil, nil, nil,
		container.NewVBox(ui.notificationSpinner, ui.notificationProgress, ui.notificationLabel))
	ui.notificationContainer.Hide()

	top := container.NewVBox(ui.headerLabel, ui.statusLabel, ui.notificationContainer)

	// Course card grid in catalog order
	cards := make([]fyne.CanvasObject, 0, ui.catalog.Len())
	for _, course := range ui.catalog.Courses() {
		card := NewCourseCard(course, ui.onCourseTapped)
		ui.cards[course.ID] = card
		cards = append(cards, card)
	}
	grid := container.NewVScroll(container.NewGridWrap(fyne.NewSize(CardWidth, CardHeight), cards...))

	ui.downloadBtn = widget.NewButton("", ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance

	ui.cancelBtn = widget.NewButton(IconStop+" "+ui.localization.GetText(KeyCancel), ui.onCancelClick)
	ui.cancelBtn.Disable()

	ui.settingsBtn = widget.NewButton(IconSettings, ui.onShowSettings)
	ui.settingsBtn.Importance = widget.LowImportance

	footer := container.NewBorder(nil, nil, ui.settingsBtn, ui.cancelBtn, ui.downloadBtn)

	ui.window.SetContent(container.NewBorder(top, footer, nil, nil, grid))

	ui.refreshSelection()
	ui.loadThumbnails()
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)
	quitItem := fyne.NewMenuItem(ui.localization.GetText(KeyQuit), ui.onQuit)
	quitItem.IsQuit = true

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem, fyne.NewMenuItemSeparator(), quitItem),
		languageMenu,
	))
}

// onQuit stops the active run and closes the application
func (ui *RootUI) onQuit() {
	ui.onCancelClick()
	ui.app.Quit()
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.headerLabel.SetText(ui.localization.GetText(KeyHeader))
	ui.cancelBtn.SetText(IconStop + " " + ui.localization.GetText(KeyCancel))
}

// loadThumbnails fetches course images in the background
func (ui *RootUI) loadThumbnails() {
	for _, course := range ui.catalog.Courses() {
		if course.ThumbnailURL == "" {
			continue
		}
		card := ui.cards[course.ID]
		url := course.ThumbnailURL
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), ThumbnailTimeout)
			defer cancel()

			res, err := ui.thumbnails.Load(ctx, url)
			if err != nil {
				ui.logger.Debug("thumbnail not loaded", "url", url, "error", err)
				return
			}
			fyne.Do(func() { card.SetThumbnail(res) })
		}()
	}
}

// onCourseTapped toggles a course and refreshes everything derived from the
// selection
func (ui *RootUI) onCourseTapped(courseID int) {
	selected := ui.selection.Toggle(courseID)
	if card, ok := ui.cards[courseID]; ok {
		card.SetSelected(selected)
	}
	ui.logger.Debug("course toggled", "course_id", courseID, "selected", selected)
	ui.refreshSelection()
}

// refreshSelection recomputes the status line and the button label
func (ui *RootUI) refreshSelection() {
	ui.statusLabel.SetText(ui.selection.StatusText())
	ui.downloadBtn.SetText(ui.selection.ButtonText())
	ui.updateButtons()
}

// updateButtons enables the actions allowed in the current state
func (ui *RootUI) updateButtons() {
	if ui.isRunning() {
		ui.downloadBtn.Disable()
		ui.settingsBtn.Disable()
		ui.cancelBtn.Enable()
		return
	}
	ui.downloadBtn.Enable()
	ui.settingsBtn.Enable()
	ui.cancelBtn.Disable()
}

func (ui *RootUI) isRunning() bool {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	return ui.active != nil
}

// onDownloadClick starts a run for the selected courses
func (ui *RootUI) onDownloadClick() {
	if ui.selection.TotalSelectedContent() == 0 {
		ui.showNotification(ui.localization.GetText(KeyNothingSelected), false)
		return
	}
	ids := ui.selection.IDs()

	ui.mu.Lock()
	if ui.active != nil {
		ui.mu.Unlock()
		ui.showNotification(ui.localization.GetText(KeyRunInProgress), false)
		return
	}
	downloader, err := ui.newDownloader()
	if err != nil {
		ui.mu.Unlock()
		ui.logger.Error("failed to prepare download", "error", err)
		ui.showNotification(ui.localization.GetText(KeyRunFailed)+": "+err.Error(), false)
		dialog.ShowError(err, ui.window)
		return
	}
	ui.active = downloader
	ui.mu.Unlock()

	downloader.SetUpdateCallback(ui.onRunUpdate)
	ui.updateButtons()
	ui.showNotification(ui.localization.GetText(KeyRunStarting), true)

	ui.logger.Info("starting download", "courses", ids, "files", ui.selection.TotalSelectedContent())
	go func() {
		run, err := downloader.DownloadSelected(context.Background(), ids)
		fyne.Do(func() { ui.onRunFinished(run, err) })
	}()
}

// onCancelClick stops the active run
func (ui *RootUI) onCancelClick() {
	ui.mu.Lock()
	active := ui.active
	ui.mu.Unlock()

	if active != nil {
		ui.logger.Info("cancelling download")
		active.Cancel()
	}
}

// onRunUpdate receives progress from the download service goroutine
func (ui *RootUI) onRunUpdate(run *model.DownloadRun) {
	if run.Status.IsFinished() {
		return
	}
	message := ui.runMessage(run)
	if run.Status == model.RunStatusDownloading {
		progress := run.Progress()
		fyne.Do(func() { ui.showProgress(message, progress) })
		return
	}
	fyne.Do(func() { ui.showNotification(message, true) })
}

// onRunFinished reports the run outcome. It runs on the UI goroutine.
func (ui *RootUI) onRunFinished(run *model.DownloadRun, err error) {
	ui.mu.Lock()
	ui.active = nil
	ui.mu.Unlock()
	ui.updateButtons()

	switch {
	case err == nil && run != nil:
		message := fmt.Sprintf(ui.localization.GetText(KeyRunCompleted), run.Archived, run.ArchivePath)
		if missing := run.Missing(); missing > 0 {
			message += MiddleDotSeparator + fmt.Sprintf(ui.localization.GetText(KeyRunMissing), missing)
		}
		ui.showNotification(message, false)
		ui.app.SendNotification(fyne.NewNotification(ui.localization.GetText(KeyDownloadCompleted), message))

		if ui.settings.GetAutoRevealOnComplete() {
			ui.onRevealFile(run.ArchivePath)
		} else {
			ui.showToastNotification(run)
		}
	case errors.Is(err, context.Canceled):
		ui.showNotification(ui.localization.GetText(KeyRunStopped), false)
	case errors.Is(err, download.ErrRunInProgress):
		ui.showNotification(ui.localization.GetText(KeyRunInProgress), false)
	default:
		ui.showNotification(ui.localization.GetText(KeyRunFailed)+": "+errorText(err), false)
		if err != nil {
			dialog.ShowError(err, ui.window)
		}
	}
}

// runMessage describes an active run
func (ui *RootUI) runMessage(run *model.DownloadRun) string {
	switch run.Status {
	case model.RunStatusPending, model.RunStatusStarting:
		return ui.localization.GetText(KeyRunStarting)
	case model.RunStatusDownloading:
		return fmt.Sprintf(ui.localization.GetText(KeyRunDownloading), run.Requested, run.Planned)
	case model.RunStatusSettling:
		return ui.localization.GetText(KeyRunSettling)
	case model.RunStatusArchiving:
		return ui.localization.GetText(KeyRunArchiving)
	default:
		return run.Status.String()
	}
}

func errorText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}

// showNotification displays a message in the notification panel under the
// status line. Must be called on the UI goroutine.
func (ui *RootUI) showNotification(message string, spinning bool) {
	ui.notificationLabel.SetText(message)
	ui.notificationProgress.Hide()
	if spinning {
		ui.notificationSpinner.Show()
	} else {
		ui.notificationSpinner.Hide()
	}
	ui.notificationContainer.Show()
	ui.notificationContainer.Refresh()
}

// showProgress displays a message with a determinate progress bar.
// Must be called on the UI goroutine.
func (ui *RootUI) showProgress(message string, value float64) {
	ui.notificationLabel.SetText(message)
	ui.notificationSpinner.Hide()
	ui.notificationProgress.SetValue(value)
	ui.notificationProgress.Show()
	ui.notificationContainer.Show()
	ui.notificationContainer.Refresh()
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, func() {
		ui.localization.SetLanguage(ui.settings.GetLanguage())
		ui.refreshUITexts()
		ui.createMenu()
		ui.showNotification(ui.localization.GetText(KeySettingsSaved), false)
	})
}

// onRevealFile reveals the archive in the system file manager
func (ui *RootUI) onRevealFile(filePath string) {
	if filePath == "" {
		return
	}
	if err := platform.OpenFileInManager(filePath); err != nil {
		ui.logger.Warn("failed to reveal archive", "path", filePath, "error", err)
		ui.showNotification(ui.localization.GetText(KeyErrorOpeningFile)+": "+err.Error(), false)
	}
}

// onOpenFile opens the archive with the default application
func (ui *RootUI) onOpenFile(filePath string) {
	if filePath == "" {
		return
	}
	if err := platform.OpenFileWithDefaultApp(filePath); err != nil {
		ui.logger.Warn("failed to open archive", "path", filePath, "error", err)
		ui.showNotification(ui.localization.GetText(KeyErrorOpeningFile)+": "+err.Error(), false)
	}
}

// showToastNotification shows an in-app toast with open and reveal actions
func (ui *RootUI) showToastNotification(run *model.DownloadRun) {
	titleLabel := widget.NewLabel(ui.localization.GetText(KeyDownloadCompleted))
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}

	messageLabel := widget.NewLabel(run.ArchivePath)
	messageLabel.Truncation = fyne.TextTruncateEllipsis

	var toastPopup *widget.PopUp
	revealBtn := widget.NewButton(IconFolder+" "+ui.localization.GetText(KeyReveal), func() {
		toastPopup.Hide()
		ui.onRevealFile(run.ArchivePath)
	})
	revealBtn.Importance = widget.HighImportance

	openBtn := widget.NewButton(IconOpen+" "+ui.localization.GetText(KeyOpen), func() {
		toastPopup.Hide()
		ui.onOpenFile(run.ArchivePath)
	})

	closeBtn := widget.NewButton(IconClose, func() { toastPopup.Hide() })
	closeBtn.Importance = widget.LowImportance

	content := container.NewVBox(
		container.NewBorder(nil, nil, titleLabel, closeBtn),
		messageLabel,
		container.NewHBox(openBtn, revealBtn),
	)

	toastPopup = widget.NewPopUp(content, ui.window.Canvas())

	// Top-right corner
	canvasSize := ui.window.Canvas().Size()
	toastSize := fyne.NewSize(ToastWidth, ToastHeight)
	toastPopup.Resize(toastSize)
	toastPopup.Move(fyne.NewPos(canvasSize.Width-toastSize.Width-ToastMargin, ToastMargin))
	toastPopup.Show()

	time.AfterFunc(ToastAutoHide, func() {
		fyne.Do(toastPopup.Hide)
	})
}
