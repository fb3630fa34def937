package cli

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/mycourses-downloader/internal/browser"
	"github.com/ytget/mycourses-downloader/internal/config"
	"github.com/ytget/mycourses-downloader/internal/download"
	"github.com/ytget/mycourses-downloader/internal/ui"
)

const (
	AppID   = "com.ytget.mycourses-downloader"
	AppName = "MyCourses Downloader"
)

// runGUI opens the desktop window and blocks until it is closed
func runGUI(ctx context.Context, st *state) error {
	catalog, err := config.LoadCatalog(st.opts.CatalogPath)
	if err != nil {
		return err
	}

	st.logger.Info("starting GUI", "version", Version, "courses", catalog.Len())

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, Version))
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	settings := config.NewSettings(myApp)
	archiver := st.opts.Archiver()

	// Settings may change between runs, so the service is rebuilt each time
	newDownloader := func() (download.Downloader, error) {
		opts := settings.Apply(st.opts)
		driver := browser.NewRodDriver(opts.RodOptions(), st.logger)
		return download.NewService(opts.DownloadConfig(), catalog, driver, archiver, st.logger), nil
	}

	ui.NewRootUI(myWindow, myApp, catalog, newDownloader, st.logger)

	go func() {
		<-ctx.Done()
		fyne.Do(myApp.Quit)
	}()

	myWindow.ShowAndRun()
	return nil
}
