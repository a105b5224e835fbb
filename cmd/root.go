package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagIgnoreConfig bool
	flagDebug        bool
)

var rootCmd = &cobra.Command{
	Use:   "taoscrape",
	Short: "Tao Te Ching translation corpus scraper",
	Long: "taoscrape downloads every translation linked from the terebess index page,\n" +
		"splits each one into the work's 81 chapters and writes a flat corpus table\n" +
		"for notebook analysis. Running it without arguments executes the full pipeline.",
	RunE: runScrape,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagIgnoreConfig, "ignore-config", false, "ignore config and use only CLI flags")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
