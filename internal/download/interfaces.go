package download

import (
	"context"

	"github.com/ytget/mycourses-downloader/internal/model"
)

// Downloader defines the interface for the download service.
type Downloader interface {
	SetUpdateCallback(func(*model.DownloadRun))

	// DownloadSelected runs the whole pipeline for the given courses and
	// blocks until the archive is written or the run fails
	DownloadSelected(ctx context.Context, courseIDs []int) (*model.DownloadRun, error)

	// Cancel stops the in-flight run, if any
	Cancel()

	// CurrentRun returns a snapshot of the latest run
	CurrentRun() (*model.DownloadRun, bool)
}
