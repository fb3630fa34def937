package ui

import (
	"sort"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/mycourses-downloader/internal/config"
)

// Settings dialog sizing
const (
	SettingsDialogWidth  float32 = 520
	SettingsDialogHeight float32 = 420
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	browserEntry      *widget.Entry
	headlessCheck     *widget.Check
	outputDirEntry    *widget.Entry
	loginTimeoutEntry *widget.Entry
	languageSelect    *widget.Select
	autoRevealCheck   *widget.Check
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// ShowSettingsDialog creates and shows the settings dialog
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, onSaved func()) {
	NewSettingsDialog(settings, localization, window, onSaved).Show()
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	text := sd.localization.GetText

	sd.browserEntry = widget.NewEntry()
	sd.browserEntry.SetPlaceHolder(text(KeyBrowserAuto))
	browseBrowserBtn := widget.NewButton(text(KeyBrowse), sd.onBrowseBrowser)
	browserRow := container.NewBorder(nil, nil, nil, browseBrowserBtn, sd.browserEntry)

	sd.headlessCheck = widget.NewCheck(text(KeyHeadless), nil)

	sd.outputDirEntry = widget.NewEntry()
	browseDirBtn := widget.NewButton(text(KeyBrowse), sd.onBrowseDirectory)
	outputDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.outputDirEntry)

	sd.loginTimeoutEntry = widget.NewEntry()
	sd.loginTimeoutEntry.SetPlaceHolder(strconv.Itoa(config.DefaultLoginTimeoutSeconds))

	languageOptions := make([]string, 0, len(sd.settings.GetLanguageOptions()))
	for code := range sd.settings.GetLanguageOptions() {
		languageOptions = append(languageOptions, code)
	}
	sort.Strings(languageOptions)
	sd.languageSelect = widget.NewSelect(languageOptions, nil)

	sd.autoRevealCheck = widget.NewCheck(text(KeyAutoReveal), nil)

	form := container.NewVBox(
		widget.NewLabel(text(KeyBrowserPath)+":"),
		browserRow,
		sd.headlessCheck,

		widget.NewLabel(text(KeyLoginTimeout)+":"),
		sd.loginTimeoutEntry,

		widget.NewSeparator(),

		widget.NewLabel(text(KeyOutputDirectory)+":"),
		outputDirRow,
		sd.autoRevealCheck,

		widget.NewSeparator(),

		widget.NewLabel(text(KeyLanguage)+":"),
		sd.languageSelect,
	)

	sd.dialog = dialog.NewCustomConfirm(
		text(KeySettings),
		text(KeySave),
		text(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.browserEntry.SetText(sd.settings.GetBrowserPath())
	sd.headlessCheck.SetChecked(sd.settings.GetHeadless())
	sd.outputDirEntry.SetText(sd.settings.GetOutputDirectory())
	sd.loginTimeoutEntry.SetText(strconv.Itoa(int(sd.settings.GetLoginTimeout().Seconds())))
	sd.languageSelect.SetSelected(sd.settings.GetLanguage())
	sd.autoRevealCheck.SetChecked(sd.settings.GetAutoRevealOnComplete())
}

// onBrowseBrowser picks the browser executable
func (sd *SettingsDialog) onBrowseBrowser() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		sd.browserEntry.SetText(reader.URI().Path())
	}, sd.window)
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.outputDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	// Empty path means auto-detect, so it is saved as is
	sd.settings.SetBrowserPath(strings.TrimSpace(sd.browserEntry.Text))
	sd.settings.SetHeadless(sd.headlessCheck.Checked)

	if dir := strings.TrimSpace(sd.outputDirEntry.Text); dir != "" {
		sd.settings.SetOutputDirectory(dir)
	}

	if seconds, err := strconv.Atoi(strings.TrimSpace(sd.loginTimeoutEntry.Text)); err == nil {
		sd.settings.SetLoginTimeoutSeconds(seconds)
	}

	if sd.languageSelect.Selected != "" {
		sd.settings.SetLanguage(sd.languageSelect.Selected)
	}

	sd.settings.SetAutoRevealOnComplete(sd.autoRevealCheck.Checked)

	if sd.onSaved != nil {
		sd.onSaved()
	}
}
