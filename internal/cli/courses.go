package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/ytget/mycourses-downloader/internal/config"
	"github.com/ytget/mycourses-downloader/internal/model"
)

func cmdCourses(st *state) *cli.Command {
	return &cli.Command{
		Name:  "courses",
		Usage: "List the courses of the catalog",
		Action: func(ctx context.Context, c *cli.Command) error {
			catalog, err := config.LoadCatalog(st.opts.CatalogPath)
			if err != nil {
				return err
			}

			w := output(c)
			s := newStyles(w)

			fmt.Fprintln(w, s.title.Render(fmt.Sprintf("Catalog: %d course(s)", catalog.Len())))
			for _, course := range catalog.Courses() {
				fmt.Fprintf(w, "%s %s  %s\n",
					s.id.Render(fmt.Sprint(course.ID)),
					s.name.Render(course.Name),
					s.muted.Render(model.FileBadge(course.FileCount())),
				)
				for _, folder := range course.Folders {
					fmt.Fprintf(w, "         %s\n", s.muted.Render(fmt.Sprintf("%s (%d)", folder.Name, len(folder.FileIDs))))
				}
			}
			return nil
		},
	}
}
