package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/brogergvhs/taoscrape/internal/config"
	"github.com/brogergvhs/taoscrape/internal/index"
	"github.com/brogergvhs/taoscrape/internal/ui"
	"github.com/brogergvhs/taoscrape/internal/util"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	flagLinksIndexURL string
	flagLinksSource   string
	flagLinksPDF      bool
)

var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "Collect and print the translation links from the index page, without scraping them",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := config.LoadMerged(config.Options{
			IgnoreConfig: flagIgnoreConfig,
			Debug:        flagDebug,
			IndexURL:     flagLinksIndexURL,
		})
		if err != nil {
			return err
		}

		logSvc := ui.NewLogger(cfg.Debug)

		client, err := util.NewHTTPClient(util.HTTPClientOptions{
			Timeout:          time.Duration(cfg.TimeoutSeconds) * time.Second,
			UserAgent:        util.PickUserAgent(cfg.UserAgent),
			CloudflareBypass: cfg.CloudflareBypass,
			DebugLogger:      logSvc,
		})
		if err != nil {
			return err
		}

		sources, err := index.Collect(context.Background(), client, cfg.IndexURL, cfg.Retries)
		if err != nil {
			return err
		}

		sources = index.FilterLabel(sources, flagLinksSource)
		if !flagLinksPDF {
			sources = index.FilterScrapable(sources)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Label", "URL", "PDF"})

		for _, s := range sources {
			pdf := ""
			if s.PDF {
				pdf = "yes"
			}
			t.AppendRow(table.Row{s.Label, s.URL, pdf})
		}

		t.SetStyle(table.StyleRounded)
		t.Render()

		fmt.Printf("\n%d sources.\n", len(sources))
		return nil
	},
}

func init() {
	linksCmd.Flags().StringVar(&flagLinksIndexURL, "index-url", "", "translation index page URL")
	linksCmd.Flags().StringVar(&flagLinksSource, "source", "", "only show sources whose label contains this text")
	linksCmd.Flags().BoolVar(&flagLinksPDF, "include-pdf", false, "also list PDF-only sources")

	rootCmd.AddCommand(linksCmd)
}
