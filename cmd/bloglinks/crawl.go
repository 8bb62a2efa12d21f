package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"bloglinks/pkg/config"
	"bloglinks/pkg/logger"
	"bloglinks/pkg/scraper"
	"bloglinks/pkg/ui"
)

// crawlCmd represents the crawl command
var crawlCmd = &cobra.Command{
	Use:   "crawl <blogURL> <apiKey> [destDir]",
	Short: "Crawl a blog's posts for images that link to other images",
	Long: `Walks every post of the blog, finds images wrapped in anchors that point at
another image (directly, or via an HTML page embedding one), and prints each
resolved image URL, one per line.

With a destination directory the resolved images are downloaded instead; the
directory is created if missing and each line reports the file's size.`,
	Example: `  # print the linked image URLs
  bloglinks crawl http://myblog.blogspot.com <API key>

  # download them
  bloglinks crawl http://myblog.blogspot.com <API key> ./images`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runCrawl,
}

func init() {
	rootCmd.AddCommand(crawlCmd)
}

func runCrawl(cmd *cobra.Command, args []string) error {
	blogURL := strings.TrimSpace(args[0])
	apiKey := strings.TrimSpace(args[1])

	flags := map[string]interface{}{
		"api-key": apiKey,
	}
	if logLevel != "" {
		flags["log-level"] = logLevel
	}

	cfg, err := config.Load(configFile, flags)
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		os.Exit(1)
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		ui.PrintError("Failed to initialize logging", err.Error())
		os.Exit(1)
	}

	logger.WithField("blog_url", blogURL).Info("starting crawl")

	s, err := scraper.New(cfg)
	if err != nil {
		ui.PrintError("Failed to initialize scraper", err.Error())
		os.Exit(1)
	}

	if len(args) == 3 {
		err = s.Download(blogURL, args[2], os.Stdout)
	} else {
		err = s.Print(blogURL, os.Stdout)
	}

	if err != nil {
		logger.WithError(err).WithField("blog_url", blogURL).Error("crawl failed")
		ui.PrintError("CRAWL FAILED", err.Error())
		os.Exit(1)
	}

	logger.WithField("blog_url", blogURL).Info("crawl completed")
	return nil
}
