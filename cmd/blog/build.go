package main

import (
	"fmt"
	"os"

	blog "github.com/goliatone/go-blog"
	staticcmd "github.com/goliatone/go-blog/internal/commands/static"
	"github.com/spf13/cobra"
)

var (
	buildDryRun      bool
	buildWorkers     int
	buildDrafts      bool
	buildIncremental bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Renders the site into the output directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		if buildDrafts {
			cfg.Generator.IncludeDrafts = true
		}
		if buildIncremental {
			cfg.Generator.Incremental = true
			cfg.Generator.CleanBuild = false
		}

		module, err := blog.New(cfg)
		if err != nil {
			return err
		}

		var result *blog.BuildResult
		handler := staticcmd.NewBuildSiteHandler(module.Generator(), module.Logger("cli"))
		execErr := handler.Execute(cmd.Context(), staticcmd.BuildSiteCommand{
			DryRun:  buildDryRun,
			Workers: buildWorkers,
			ResultCallback: func(envelope staticcmd.ResultEnvelope) {
				result = envelope.Result
			},
		})

		if result == nil {
			return execErr
		}

		failures := 0
		for _, diag := range result.Diagnostics {
			if diag.Err == nil {
				continue
			}
			failures++
			fmt.Fprintf(os.Stderr, "error: %s: %v\n", diag.Path, diag.Err)
		}

		if failures > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Rendered %d pages, %d failed (%s)\n",
				result.PagesBuilt, failures, result.Duration.Round(timeRounding))
			return fmt.Errorf("build completed with %d failed documents", failures)
		}
		if execErr != nil {
			return execErr
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Rendered %d pages in %s", result.PagesBuilt, result.Duration.Round(timeRounding))
		if result.PagesSkipped > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), " (%d unchanged)", result.PagesSkipped)
		}
		if result.DryRun {
			fmt.Fprint(cmd.OutOrStdout(), " [dry run]")
		}
		fmt.Fprintln(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	buildCmd.Flags().BoolVar(&buildDryRun, "dry-run", false, "render everything but write nothing")
	buildCmd.Flags().IntVar(&buildWorkers, "workers", 0, "number of render workers (0 uses all CPUs)")
	buildCmd.Flags().BoolVar(&buildDrafts, "drafts", false, "include draft documents")
	buildCmd.Flags().BoolVar(&buildIncremental, "incremental", false, "skip documents unchanged since the last build")
}
