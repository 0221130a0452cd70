package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"vidconv/internal/api"
	"vidconv/internal/config"
	"vidconv/internal/convert"
	"vidconv/internal/logging"
	"vidconv/internal/preflight"
	"vidconv/internal/presets"
	"vidconv/internal/queue"
	"vidconv/internal/runlock"
	"vidconv/internal/services"
)

type selectionFlags struct {
	format     string
	codec      string
	quality    string
	resolution string
	disc       string
}

func (f selectionFlags) apply(sel presets.Selection) presets.Selection {
	override := func(target *string, value string) {
		if value = strings.TrimSpace(value); value != "" {
			*target = value
		}
	}
	override(&sel.Format, f.format)
	override(&sel.Codec, f.codec)
	override(&sel.Quality, f.quality)
	override(&sel.Resolution, f.resolution)
	override(&sel.DiscProfile, f.disc)
	return sel
}

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var flags selectionFlags
	var outputDir string

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert every queued file with ffmpeg",
		Long: "Convert every queued file, in queue order, into <stem>_convertido.<format>.\n" +
			"Outputs land in the output directory, or next to each source when none is set.\n" +
			"Press Ctrl-C to cancel; the current ffmpeg is stopped and no further items start.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			conf, err := presets.Resolve(flags.apply(cfg.Selection()))
			if err != nil {
				return services.Wrap(services.ErrValidation, "convert", "presets", "", err)
			}
			outDir, err := resolveOutputDir(outputDir, cfg)
			if err != nil {
				return err
			}

			var sources []string
			if err := ctx.withStore(func(store *queue.Store) error {
				sources, err = store.Paths(cmd.Context())
				return err
			}); err != nil {
				return err
			}

			svc, err := ctx.newService()
			if err != nil {
				return err
			}
			lock, err := runlock.Acquire(cfg.LockPath())
			if err != nil {
				return err
			}
			defer func() {
				if err := lock.Release(); err != nil {
					logger.Warn("failed to release run lock", logging.Error(err))
				}
			}()

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			printer := newProgressPrinter(cmd.ErrOrStderr(), time.Now())
			summary, err := svc.Convert(runCtx, api.ConversionRequest{
				Queue:     sources,
				OutputDir: outDir,
				Config:    conf,
			}, printer.handle)
			printer.finish()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, summary.String())
			fmt.Fprintln(out)
			fmt.Fprint(out, renderResultsTable(summary))

			switch {
			case summary.Canceled():
				return context.Canceled
			case summary.Failed > 0:
				return services.Wrap(services.ErrExternalTool, "convert", "run",
					fmt.Sprintf("%d of %d items failed", summary.Failed, summary.Total), nil)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "", "Container: "+strings.Join(presets.Formats, ", "))
	cmd.Flags().StringVar(&flags.codec, "codec", "", "Video codec id or label")
	cmd.Flags().StringVar(&flags.quality, "quality", "", "Quality tier id or label")
	cmd.Flags().StringVar(&flags.resolution, "resolution", "", "Target resolution id or label")
	cmd.Flags().StringVar(&flags.disc, "disc", "", "Disc profile (off, ntsc, pal); overrides format, codec, quality, and resolution")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for converted files (default: paths.output_dir, else next to each source)")
	return cmd
}

// resolveOutputDir picks the flag value over the configured directory and
// checks that it is writable before any item starts.
func resolveOutputDir(flagValue string, cfg *config.Config) (string, error) {
	dir := strings.TrimSpace(flagValue)
	if dir != "" {
		expanded, err := config.ExpandPath(dir)
		if err != nil {
			return "", fmt.Errorf("resolve output directory: %w", err)
		}
		dir = expanded
	} else {
		dir = cfg.Paths.OutputDir
	}
	if dir == "" {
		return "", nil
	}
	if result := preflight.CheckDirectoryAccess("Output directory", dir); !result.Passed {
		return "", services.Wrap(services.ErrValidation, "output", "access", result.Detail, nil)
	}
	return dir, nil
}

func renderResultsTable(summary convert.Summary) string {
	if len(summary.Results) == 0 {
		return ""
	}
	var totalBytes uint64
	rows := make([][]string, 0, len(summary.Results))
	for i, result := range summary.Results {
		size := "-"
		output := "-"
		if result.Status == convert.JobSucceeded {
			output = filepath.Base(result.Destination)
			if info, err := os.Stat(result.Destination); err == nil {
				totalBytes += uint64(info.Size())
				size = humanize.IBytes(uint64(info.Size()))
			}
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			filepath.Base(result.Source),
			result.Status.String(),
			output,
			size,
			formatClock(result.Elapsed),
		})
	}
	footer := []string{
		"",
		"Total",
		fmt.Sprintf("%d ok / %d failed", summary.Succeeded(), summary.Failed),
		"",
		humanize.IBytes(totalBytes),
		formatClock(summary.Elapsed),
	}
	return renderTable(
		[]string{"#", "Source", "Status", "Output", "Size", "Elapsed"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignRight},
		footer,
	)
}
