package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cfgpkg "salescope/internal/config"
)

var (
	// Global flags
	cfgFile string
	debug   bool
	// HTTP timeout override for remote narrative calls
	flagHTTPTimeoutSec int

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "salescope",
	Short: "Salescope: turn a sales CSV into KPIs, charts, and an executive summary",
	Long: `Salescope ingests a sales CSV with arbitrary column headers, infers which
columns carry dates, products, regions, quantities, and prices, and computes
filtered KPIs, grouped breakdowns, and chart series. An executive summary can
be composed locally or by a remote text-generation backend.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.salescope/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().IntVar(&flagHTTPTimeoutSec, "http-timeout", 0, "HTTP client timeout in seconds (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		cfg = &cfgpkg.Global{Provider: "local", Currency: "USD", HTTPTimeoutSec: 60}
		return
	}
	cfg = c
	if rootCmd.PersistentFlags().Changed("http-timeout") && flagHTTPTimeoutSec > 0 {
		cfg.HTTPTimeoutSec = flagHTTPTimeoutSec
	}
}
