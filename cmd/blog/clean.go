package main

import (
	"fmt"

	blog "github.com/goliatone/go-blog"
	staticcmd "github.com/goliatone/go-blog/internal/commands/static"
	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Removes generated artifacts from the output directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		module, err := blog.New(cfg)
		if err != nil {
			return err
		}

		handler := staticcmd.NewCleanSiteHandler(module.Generator(), module.Logger("cli"))
		if err := handler.Execute(cmd.Context(), staticcmd.CleanSiteCommand{}); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", cfg.Generator.OutputDir)
		return nil
	},
}
