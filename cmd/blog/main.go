package main

import (
	"errors"
	"fmt"
	"os"

	blog "github.com/goliatone/go-blog"
	"github.com/spf13/cobra"
)

const defaultConfigFile = "blog.yaml"

var (
	cfgFile string
	cfg     blog.Config
)

var rootCmd = &cobra.Command{
	Use:   "blog",
	Short: "Builds and serves a markdown-driven personal blog",
	Long: `blog turns a directory of markdown documents into a static site:
pages, navigation menus, a sitemap, and an RSS feed. It can also serve
the generated site locally and rebuild it when sources change.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "site configuration file (default blog.yaml when present)")
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(cleanCmd)
}

func loadConfig() error {
	if cfgFile != "" {
		loaded, err := blog.LoadConfig(cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	}

	if _, err := os.Stat(defaultConfigFile); err == nil {
		loaded, err := blog.LoadConfig(defaultConfigFile)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	cfg = blog.DefaultConfig()
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
