package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vidconv/internal/deps"
	"vidconv/internal/preflight"
	"vidconv/internal/presets"
	"vidconv/internal/queue"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show tool availability, directories, and queue size",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			var lines []string
			lines = append(lines, renderSectionHeader("Tools", colorize)...)
			for _, status := range preflight.CheckSystemDeps(cmd.Context(), cfg) {
				lines = append(lines, dependencyStatusLine(status, colorize))
			}

			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Paths", colorize)...)
			for _, result := range preflight.RunAll(cmd.Context(), cfg) {
				lines = append(lines, preflightStatusLine(result, colorize))
			}
			spaceDir := cfg.Paths.OutputDir
			if spaceDir == "" {
				spaceDir = cfg.Paths.StateDir
			}
			lines = append(lines, freeSpaceStatusLine(preflight.CheckFreeSpace("Free space", spaceDir, preflight.MinFreeBytes), colorize))

			var count int
			if err := ctx.withStore(func(store *queue.Store) error {
				count, err = store.Count(cmd.Context())
				return err
			}); err != nil {
				return err
			}
			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Queue", colorize)...)
			lines = append(lines, renderStatusLine("Items", statusInfo, fmt.Sprintf("%d %s", count, pluralize(count, "file", "files")), colorize))
			if profile, err := presets.LookupDiscProfile(cfg.Conversion.DiscProfile); err == nil {
				lines = append(lines, renderStatusLine("Disc target", statusInfo, fmt.Sprintf("%s (%s)", yesNo(profile.Enabled()), profile.Label), colorize))
			}

			fmt.Fprintln(out, strings.Join(lines, "\n"))
			return nil
		},
	}
}

func dependencyStatusLine(status deps.Status, colorize bool) string {
	switch {
	case status.Available:
		detail := status.Command
		if status.Detail != "" {
			detail += " (" + status.Detail + ")"
		}
		return renderStatusLine(status.Name, statusOK, detail, colorize)
	case status.Optional:
		return renderStatusLine(status.Name, statusWarn, status.Detail+" - "+status.Description, colorize)
	default:
		return renderStatusLine(status.Name, statusError, status.Detail+" - "+status.Description, colorize)
	}
}

func preflightStatusLine(result preflight.Result, colorize bool) string {
	if result.Passed {
		return renderStatusLine(result.Name, statusOK, result.Detail, colorize)
	}
	return renderStatusLine(result.Name, statusError, result.Detail, colorize)
}

func freeSpaceStatusLine(result preflight.Result, colorize bool) string {
	if result.Passed {
		return renderStatusLine(result.Name, statusInfo, result.Detail, colorize)
	}
	return renderStatusLine(result.Name, statusWarn, result.Detail, colorize)
}
