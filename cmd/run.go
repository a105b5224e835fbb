package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/brogergvhs/taoscrape/internal/config"
	"github.com/brogergvhs/taoscrape/internal/corpus"
	"github.com/brogergvhs/taoscrape/internal/extract"
	"github.com/brogergvhs/taoscrape/internal/index"
	"github.com/brogergvhs/taoscrape/internal/ui"
	"github.com/brogergvhs/taoscrape/internal/util"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	// selection
	flagIndexURL string
	flagSource   string
	flagLimit    int

	// runtime
	flagOutput        string
	flagManualDir     string
	flagSourceWorkers int
	flagTimeout       int
	flagRetries       int
	flagDryRun        bool
	flagStats         bool

	// output formats
	flagDuckDB  bool
	flagKeepRaw bool

	// headers
	flagUserAgent string
	flagCFBypass  bool
)

func init() {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline: collect links, extract chapters, merge manual additions, write the corpus",
		RunE:  runScrape,
	}

	registerRunFlags(runCmd)
	registerRunFlags(rootCmd)

	rootCmd.AddCommand(runCmd)
}

func registerRunFlags(cmd *cobra.Command) {
	// selection
	cmd.Flags().StringVar(&flagIndexURL, "index-url", "", "translation index page URL")
	cmd.Flags().StringVar(&flagSource, "source", "", "only scrape sources whose label contains this text")
	cmd.Flags().IntVar(&flagLimit, "limit", 0, "stop after this many sources (0 = all)")

	// runtime
	cmd.Flags().StringVar(&flagOutput, "output", "", "output folder for corpus files")
	cmd.Flags().StringVar(&flagManualDir, "manual-dir", "", "folder with manually transcribed translation JSON files")
	cmd.Flags().IntVar(&flagSourceWorkers, "source-workers", 0, "parallel source scrapes")
	cmd.Flags().IntVar(&flagTimeout, "timeout", 0, "per-request timeout in seconds")
	cmd.Flags().IntVar(&flagRetries, "retries", 0, "fetch attempts per page")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "list discovered sources, don't scrape")
	cmd.Flags().BoolVar(&flagStats, "stats", false, "print text length statistics and outliers")

	// output formats
	cmd.Flags().BoolVar(&flagDuckDB, "duckdb", false, "also write corpus.duckdb")
	cmd.Flags().BoolVar(&flagKeepRaw, "keep-raw", false, "keep raw HTML of every scraped page under output/raw")

	// headers
	cmd.Flags().StringVar(&flagUserAgent, "user-agent", "", "override User-Agent")
	cmd.Flags().BoolVar(&flagCFBypass, "cf-bypass", false, "enable cloudflare bypass transport")
}

func runScrape(cmd *cobra.Command, _ []string) error {
	cfg, usedPath, err := config.LoadMerged(config.Options{
		IgnoreConfig:     flagIgnoreConfig,
		Debug:            flagDebug,
		IndexURL:         flagIndexURL,
		Output:           flagOutput,
		ManualDir:        flagManualDir,
		SourceWorkers:    flagSourceWorkers,
		TimeoutSeconds:   flagTimeout,
		Retries:          flagRetries,
		UserAgent:        flagUserAgent,
		CloudflareBypass: flagCFBypass,
		DuckDB:           flagDuckDB,
		KeepRaw:          flagKeepRaw,
	})
	if err != nil {
		return err
	}

	logSvc := ui.NewLogger(cfg.Debug)
	if usedPath != "" {
		fmt.Printf("Config file: %s\n", usedPath)
	}

	fmt.Println("Full config:")
	cfg.Print()
	fmt.Println()

	client, err := util.NewHTTPClient(util.HTTPClientOptions{
		Timeout:          time.Duration(cfg.TimeoutSeconds) * time.Second,
		UserAgent:        util.PickUserAgent(cfg.UserAgent),
		CloudflareBypass: cfg.CloudflareBypass,
		DebugLogger:      logSvc,
	})
	if err != nil {
		return err
	}

	ctx := context.Background()

	// The index fetch is the only fatal network call: without the link
	// list there is nothing to do.
	sources, err := index.Collect(ctx, client, cfg.IndexURL, cfg.Retries)
	if err != nil {
		return err
	}

	sources = index.FilterLabel(sources, flagSource)
	scrapable := index.FilterScrapable(sources)
	if skipped := len(sources) - len(scrapable); skipped > 0 {
		logSvc.Infof("skipping %d PDF-only sources\n", skipped)
	}
	if flagLimit > 0 && len(scrapable) > flagLimit {
		scrapable = scrapable[:flagLimit]
	}

	if len(scrapable) == 0 {
		return fmt.Errorf("no scrapable sources match the selection")
	}

	fmt.Printf("Found %d translation sources on the index.\n\n", len(scrapable))

	if flagDryRun {
		renderSources(scrapable)
		return nil
	}

	if err := os.MkdirAll(cfg.Output, 0755); err != nil {
		return fmt.Errorf("cannot create output folder: %w", err)
	}
	util.SetupInterruptHandler(cfg.Output)

	pm := ui.NewProgressManager(cfg.SourceWorkers)
	stats := &ui.Stats{}
	ext := extract.New(client, logSvc, cfg.Retries, cfg.KeepRaw)
	start := time.Now()

	results := make([]*extract.Result, len(scrapable))
	sem := make(chan struct{}, max(1, cfg.SourceWorkers))
	var wg sync.WaitGroup

	for i, src := range scrapable {
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			handle := pm.Register(src.Label)
			res, err := ext.Extract(ctx, src, handle.Update)
			if err != nil {
				// per-source isolation: log, skip, keep going
				logSvc.Warnf("skipping %s: %v\n", src.Label, err)
				stats.SourcesSkipped.Add(1)
				handle.MarkDone()
				return
			}

			results[i] = res
			stats.SourcesOK.Add(1)
			stats.TotalChapters.Add(int64(len(res.Chapters)))
			stats.TotalBytes.Add(res.Bytes)
			handle.MarkDone()
		}()
	}
	wg.Wait()
	pm.Close()

	crp := corpus.New()
	for _, res := range results {
		if res == nil {
			continue
		}

		for _, w := range res.Warnings {
			logSvc.Warnf("%s: %s\n", res.Source.Label, w)
		}

		if cfg.KeepRaw && res.HTML != "" {
			rawPath := filepath.Join(cfg.Output, "raw", util.SanitizeFilename(res.Source.Label)+".html")
			if err := util.WriteFileAtomic(rawPath, []byte(res.HTML)); err != nil {
				logSvc.Warnf("raw dump for %s: %v\n", res.Source.Label, err)
			}
		}

		crp.Add(corpus.Translation{
			Label:     res.Source.Label,
			URL:       res.Source.URL,
			ScrapedAt: res.ScrapedAt,
			Chapters:  res.Chapters,
			Warnings:  res.Warnings,
		})

		for _, ch := range res.Chapters {
			if ch.Inferred {
				stats.InferredChapters.Add(1)
			}
		}
	}

	if cfg.ManualDir != "" {
		added, err := crp.MergeManualDir(cfg.ManualDir, logSvc)
		if err != nil {
			logSvc.Warnf("manual additions: %v\n", err)
		} else if added > 0 {
			logSvc.Infof("merged %d manual translations from %s\n", added, cfg.ManualDir)
		}
	}

	jsonPath := filepath.Join(cfg.Output, "corpus.json")
	if err := crp.WriteJSON(jsonPath); err != nil {
		return err
	}

	csvPath := filepath.Join(cfg.Output, "corpus.csv")
	if err := crp.WriteCSV(csvPath); err != nil {
		return err
	}

	if cfg.DuckDB {
		dbPath := filepath.Join(cfg.Output, "corpus.duckdb")
		if err := crp.WriteDuckDB(dbPath); err != nil {
			return err
		}
	}

	fmt.Println()
	renderSummary(crp, stats, time.Since(start))

	if flagStats {
		fmt.Println()
		renderStats(crp)
	}

	return nil
}

func renderSources(sources []index.Source) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Label", "URL"})

	for _, s := range sources {
		t.AppendRow(table.Row{s.Label, s.URL})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()
}

func renderSummary(crp *corpus.Corpus, stats *ui.Stats, elapsed time.Duration) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Source", "Chapters", "Inferred", "Notes"})

	for _, tr := range crp.Translations {
		notes := ""
		if len(tr.Warnings) > 0 {
			notes = strings.Join(tr.Warnings, "; ")
		}
		t.AppendRow(table.Row{tr.Label, len(tr.Chapters), tr.InferredCount(), notes})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()

	fmt.Println()
	fmt.Println("Scrape Summary:")
	fmt.Printf("Sources ok:      %d\n", stats.SourcesOK.Load())
	fmt.Printf("Sources skipped: %d\n", stats.SourcesSkipped.Load())
	fmt.Printf("Chapters:        %d (%d inferred)\n", stats.TotalChapters.Load(), stats.InferredChapters.Load())
	fmt.Printf("Data:            %s\n", util.Human(stats.TotalBytes.Load()))
	fmt.Printf("Time:            %s\n", elapsed.Round(time.Second))
	fmt.Println("\nAll done.")
}

func renderStats(crp *corpus.Corpus) {
	rows := crp.Rows()
	s := corpus.Lengths(rows)

	fmt.Println("Text Length Statistics:")
	fmt.Printf("Chapters: %d  Mean: %.1f  Stddev: %.1f  Min: %d  Max: %d\n\n",
		s.Count, s.Mean, s.Stddev, s.Min, s.Max)

	outliers := corpus.Outliers(rows, 2)
	if len(outliers) == 0 {
		fmt.Println("No outliers beyond 2 standard deviations.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Source", "Chapter", "Length"})

	for _, r := range outliers {
		t.AppendRow(table.Row{r.Label, r.Chapter, len(r.Text)})
	}

	t.SetStyle(table.StyleRounded)
	t.SetTitle("Outliers (>2 sigma), review these extractions")
	t.Render()
}
