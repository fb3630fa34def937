package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/ytget/mycourses-downloader/internal/browser"
	"github.com/ytget/mycourses-downloader/internal/config"
	"github.com/ytget/mycourses-downloader/internal/download"
	"github.com/ytget/mycourses-downloader/internal/model"
)

func cmdDownload(st *state) *cli.Command {
	var (
		courseIDs []int
		all       bool
	)

	return &cli.Command{
		Name:  "download",
		Usage: "Download the files of the given courses without opening the window",
		Flags: []cli.Flag{
			&cli.IntSliceFlag{
				Name:        "course",
				Aliases:     []string{"c"},
				Usage:       "Course id to download, repeatable",
				Destination: &courseIDs,
			},
			&cli.BoolFlag{
				Name:        "all",
				Usage:       "Download every course of the catalog",
				Destination: &all,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			catalog, err := config.LoadCatalog(st.opts.CatalogPath)
			if err != nil {
				return err
			}

			selection := model.NewSelection(catalog)
			ids := courseIDs
			if all {
				ids = catalog.IDs()
			}
			for _, id := range ids {
				if _, ok := catalog.Course(id); !ok {
					return goerr.Wrap(download.ErrNothingSelected, "unknown course id", goerr.V("course_id", id))
				}
				if !selection.IsSelected(id) {
					selection.Toggle(id)
				}
			}

			w := output(c)
			s := newStyles(w)
			fmt.Fprintln(w, s.title.Render(selection.StatusText()))

			driver := browser.NewRodDriver(st.opts.RodOptions(), st.logger)
			svc := download.NewService(st.opts.DownloadConfig(), catalog, driver, st.opts.Archiver(), st.logger)
			svc.SetUpdateCallback(progressPrinter(w, s))

			run, err := svc.DownloadSelected(ctx, selection.IDs())
			if err != nil {
				return err
			}

			printSummary(w, s, run)
			return nil
		},
	}
}

// progressPrinter prints one line per status change
func progressPrinter(w io.Writer, s styles) func(*model.DownloadRun) {
	last := model.RunStatusPending
	return func(run *model.DownloadRun) {
		if run.Status == last || run.Status.IsFinished() {
			return
		}
		last = run.Status
		fmt.Fprintln(w, s.muted.Render(fmt.Sprintf("%s (%d/%d requested)", run.Status, run.Requested, run.Planned)))
	}
}

func printSummary(w io.Writer, s styles, run *model.DownloadRun) {
	fmt.Fprintf(w, "%s %s\n", s.ok.Render("Archive:"), run.ArchivePath)
	fmt.Fprintf(w, "%d of %d file(s) archived in %s\n", run.Archived, run.Planned, run.Elapsed().Round(time.Second))
	if missing := run.Missing(); missing > 0 {
		fmt.Fprintln(w, s.warn.Render(fmt.Sprintf("%d file(s) missing", missing)))
	}
}
