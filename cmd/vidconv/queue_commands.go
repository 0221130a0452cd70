package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"vidconv/internal/api"
	"vidconv/internal/queue"
	"vidconv/internal/services"
)

func newQueueCommand(ctx *commandContext) *cobra.Command {
	queueCmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect and manage the conversion queue",
	}

	queueCmd.AddCommand(newQueueAddCommand(ctx))
	queueCmd.AddCommand(newQueueListCommand(ctx))
	queueCmd.AddCommand(newQueueRemoveCommand(ctx))
	queueCmd.AddCommand(newQueueClearCommand(ctx))
	queueCmd.AddCommand(newQueueWatchCommand(ctx))

	return queueCmd
}

func newQueueAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <file>...",
		Short: "Append video files to the queue",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *queue.Store) error {
				result, err := api.AddFiles(cmd.Context(), store, args)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, item := range result.Items {
					fmt.Fprintln(out, describeAddResult(item))
				}
				if result.QueuedCount == 0 {
					return services.Wrap(services.ErrValidation, "queue", "add", "no files were queued", nil)
				}
				return nil
			})
		},
	}
}

func describeAddResult(item api.AddFileResult) string {
	switch item.Outcome {
	case api.AddFileQueued:
		return fmt.Sprintf("Queued #%d %s", item.Position, filepath.Base(item.Path))
	case api.AddFileDuplicate:
		return fmt.Sprintf("Skipped %s (already queued)", item.Path)
	case api.AddFileUnsupported:
		return fmt.Sprintf("Skipped %s (unsupported extension)", item.Path)
	case api.AddFileMissing:
		return fmt.Sprintf("Skipped %s (file not found)", item.Path)
	default:
		return fmt.Sprintf("Skipped %s", item.Path)
	}
}

func newQueueListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List queued files in conversion order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *queue.Store) error {
				items, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(items) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Queue is empty")
					return nil
				}
				table := renderTable(
					[]string{"#", "File", "Size", "Added", "Folder"},
					buildQueueListRows(items, time.Now()),
					[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft, alignLeft},
					nil,
				)
				fmt.Fprint(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}
}

func buildQueueListRows(items []queue.Item, now time.Time) [][]string {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		size := "missing"
		if info, err := os.Stat(item.SourcePath); err == nil {
			size = humanize.IBytes(uint64(info.Size()))
		}
		added := ""
		if !item.CreatedAt.IsZero() {
			added = humanize.RelTime(item.CreatedAt, now, "ago", "from now")
		}
		rows = append(rows, []string{
			strconv.Itoa(item.Position),
			filepath.Base(item.SourcePath),
			size,
			added,
			filepath.Dir(item.SourcePath),
		})
	}
	return rows
}

func newQueueRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <position>",
		Short: "Remove the item at a queue position (see queue list)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			position, err := strconv.Atoi(strings.TrimSpace(args[0]))
			if err != nil {
				return services.Wrap(services.ErrValidation, "queue", "remove", fmt.Sprintf("invalid position %q", args[0]), nil)
			}
			return ctx.withStore(func(store *queue.Store) error {
				item, err := store.Remove(cmd.Context(), position)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed #%d %s\n", item.Position, filepath.Base(item.SourcePath))
				return nil
			})
		},
	}
}

func newQueueClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every queued file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *queue.Store) error {
				removed, err := store.Clear(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d %s\n", removed, pluralize(int(removed), "item", "items"))
				return nil
			})
		},
	}
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
