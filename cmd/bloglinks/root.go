package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile string
	logLevel   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bloglinks",
	Short: "Extract and download the linked images of a Blogger blog",
	Long: `bloglinks walks every post of a Blogspot blog through the Blogger JSON API
and finds images that are links to another image: an <img> wrapped in an <a>
whose target is an image file, either directly or via an HTML page that
embeds one.

An API key is required; Google issues them for free.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.RangeArgs(0, 3),
	// Invoking the binary with bare positional arguments behaves like the
	// crawl subcommand.
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		if len(args) < 2 {
			return fmt.Errorf("requires a blog URL and an API key, got %d argument(s)", len(args))
		}
		return runCrawl(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is .bloglinks.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.SetVersionTemplate(`bloglinks {{.Version}}
Go Version: ` + runtime.Version() + `
`)
}
