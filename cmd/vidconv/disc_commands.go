package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vidconv/internal/api"
	"vidconv/internal/presets"
	"vidconv/internal/queue"
	"vidconv/internal/services"
)

func newDiscCommand(ctx *commandContext) *cobra.Command {
	discCmd := &cobra.Command{
		Use:   "disc",
		Short: "DVD authoring from disc-target conversions",
	}
	discCmd.AddCommand(newDiscCreateCommand(ctx))
	return discCmd
}

func newDiscCreateCommand(ctx *commandContext) *cobra.Command {
	var outputDir string
	var profileFlag string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Build a VIDEO_TS folder from the converted .mpg files",
		Long: "Build VIDEO_TS with dvdauthor from the .mpg outputs of the queued files.\n" +
			"When none of those exist, every .mpg in the output directory is used.\n" +
			"Each run writes into a new DVD_OUTPUT_<n> folder.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			value := cfg.Conversion.DiscProfile
			if strings.TrimSpace(profileFlag) != "" {
				value = profileFlag
			}
			profile, err := presets.LookupDiscProfile(value)
			if err != nil {
				return services.Wrap(services.ErrValidation, "disc", "profile", "", err)
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
			res, err := svc.Author(cmd.Context(), api.AuthoringRequest{
				Queue:     sources,
				OutputDir: outDir,
				Profile:   profile,
			})
			if err != nil {
				return err
			}
			if !res.OK {
				return services.Wrap(services.ErrExternalTool, "disc", "create", res.Message, nil)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, res.Message)
			fmt.Fprintf(out, "Titles: %d (%s)\n", len(res.Sources), strings.ToUpper(profile.AuthoringFormat()))
			if res.ViaShim {
				fmt.Fprintf(out, "dvdauthor ran through %s\n", cfg.Tools.Shim)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory holding the .mpg files and the new DVD_OUTPUT_<n> (default: paths.output_dir)")
	cmd.Flags().StringVar(&profileFlag, "disc", "", "Video standard (ntsc or pal); defaults to conversion.disc_profile")
	return cmd
}
