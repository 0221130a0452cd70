package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"vidconv/internal/api"
	"vidconv/internal/queue"
	"vidconv/internal/watch"
)

func newQueueWatchCommand(ctx *commandContext) *cobra.Command {
	var settle time.Duration
	var existing bool

	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Queue video files as they appear in a directory",
		Long: "Watch a directory and append each new video file to the queue once it has\n" +
			"stopped changing for the settle interval. Runs until interrupted.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *queue.Store) error {
				w, err := watch.New(args[0], store, watch.WithSettle(settle), watch.WithLogger(logger))
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if existing {
					files, err := w.Existing()
					if err != nil {
						return err
					}
					result, err := api.AddFiles(cmd.Context(), store, files)
					if err != nil {
						return err
					}
					for _, item := range result.Items {
						fmt.Fprintln(out, describeAddResult(item))
					}
				}

				runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()
				fmt.Fprintf(out, "Watching %s (Ctrl-C to stop)\n", w.Dir())
				return w.Run(runCtx, func(item api.AddFileResult) {
					fmt.Fprintln(out, describeAddResult(item))
				})
			})
		},
	}

	cmd.Flags().DurationVar(&settle, "settle", watch.DefaultSettle, "Quiet period before a new file is queued")
	cmd.Flags().BoolVar(&existing, "existing", false, "Also queue video files already in the directory")
	return cmd
}
