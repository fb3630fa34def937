package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyHeader            = "header"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeyQuit              = "quit"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeyBrowse            = "browse"
	KeyReveal            = "reveal"
	KeyOpen              = "open"
	KeyBrowserPath       = "browser_path"
	KeyBrowserAuto       = "browser_auto"
	KeyHeadless          = "headless"
	KeyOutputDirectory   = "output_directory"
	KeyLoginTimeout      = "login_timeout"
	KeyAutoReveal        = "auto_reveal"
	KeySettingsSaved     = "settings_saved"
	KeyNothingSelected   = "nothing_selected"
	KeyRunInProgress     = "run_in_progress"
	KeyRunStarting       = "run_starting"
	KeyRunDownloading    = "run_downloading"
	KeyRunSettling       = "run_settling"
	KeyRunArchiving      = "run_archiving"
	KeyRunCompleted      = "run_completed"
	KeyRunMissing        = "run_missing"
	KeyRunStopped        = "run_stopped"
	KeyRunFailed         = "run_failed"
	KeyDownloadCompleted = "download_completed"
	KeyErrorOpeningFile  = "error_opening_file"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"fr": "Français",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "MyCourses Downloader",
		KeyHeader:            "MyCourses Downloads",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeyQuit:              "Quit",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeyBrowse:            "Browse",
		KeyReveal:            "Reveal",
		KeyOpen:              "Open",
		KeyBrowserPath:       "Browser executable",
		KeyBrowserAuto:       "Detect automatically",
		KeyHeadless:          "Hide the browser window",
		KeyOutputDirectory:   "Archive directory",
		KeyLoginTimeout:      "Login timeout (seconds)",
		KeyAutoReveal:        "Reveal the archive when done",
		KeySettingsSaved:     "Settings saved successfully!",
		KeyNothingSelected:   "Select at least one course with files",
		KeyRunInProgress:     "A download is already running",
		KeyRunStarting:       "Opening the browser and signing in...",
		KeyRunDownloading:    "Requesting files %d/%d",
		KeyRunSettling:       "Waiting for downloads to finish...",
		KeyRunArchiving:      "Creating the archive...",
		KeyRunCompleted:      "Saved %d file(s) to %s",
		KeyRunMissing:        "%d file(s) could not be downloaded",
		KeyRunStopped:        "Download cancelled",
		KeyRunFailed:         "Download failed",
		KeyDownloadCompleted: "Download completed",
		KeyErrorOpeningFile:  "Error opening file",
	}

	// French texts
	l.texts["fr"] = map[string]string{
		KeyAppTitle:          "MyCourses Downloader",
		KeyHeader:            "Téléchargements MyCourses",
		KeySettings:          "Paramètres",
		KeyFile:              "Fichier",
		KeyLanguage:          "Langue",
		KeyQuit:              "Quitter",
		KeySave:              "Enregistrer",
		KeyCancel:            "Annuler",
		KeyBrowse:            "Parcourir",
		KeyReveal:            "Afficher",
		KeyOpen:              "Ouvrir",
		KeyBrowserPath:       "Exécutable du navigateur",
		KeyBrowserAuto:       "Détection automatique",
		KeyHeadless:          "Masquer la fenêtre du navigateur",
		KeyOutputDirectory:   "Dossier des archives",
		KeyLoginTimeout:      "Délai de connexion (secondes)",
		KeyAutoReveal:        "Afficher l'archive à la fin",
		KeySettingsSaved:     "Paramètres enregistrés !",
		KeyNothingSelected:   "Sélectionnez au moins un cours avec des fichiers",
		KeyRunInProgress:     "Un téléchargement est déjà en cours",
		KeyRunStarting:       "Ouverture du navigateur et connexion...",
		KeyRunDownloading:    "Demande des fichiers %d/%d",
		KeyRunSettling:       "Attente de la fin des téléchargements...",
		KeyRunArchiving:      "Création de l'archive...",
		KeyRunCompleted:      "%d fichier(s) enregistré(s) dans %s",
		KeyRunMissing:        "%d fichier(s) n'ont pas pu être téléchargés",
		KeyRunStopped:        "Téléchargement annulé",
		KeyRunFailed:         "Échec du téléchargement",
		KeyDownloadCompleted: "Téléchargement terminé",
		KeyErrorOpeningFile:  "Erreur à l'ouverture du fichier",
	}
}
