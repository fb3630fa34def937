package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/ytget/mycourses-downloader/internal/config"
)

// Version is set by main from the build version
var Version = "dev"

// state carries values configured by the root command to its actions
type state struct {
	loggerCfg config.Logger
	opts      config.Options
	logger    *slog.Logger
}

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	st := &state{}
	app := newCommand(st)

	if err := app.Run(ctx, args); err != nil {
		logger := st.logger
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("CLI execution failed", slog.Any("error", err))
		return err
	}

	return nil
}

func newCommand(st *state) *cli.Command {
	flags := append(st.loggerCfg.Flags(), st.opts.Flags()...)

	return &cli.Command{
		Name:    "mycourses-downloader",
		Usage:   "Bulk-download myCourses files into a single zip archive",
		Version: Version,
		Flags:   flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, err := st.loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			st.logger = logger
			st.opts.HeadlessSet = c.IsSet("headless")
			return ctx, nil
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return runGUI(ctx, st)
		},
		Commands: []*cli.Command{
			cmdDownload(st),
			cmdCourses(st),
		},
	}
}

// output returns the writer commands print to
func output(c *cli.Command) io.Writer {
	if w := c.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}
