package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"salescope/internal/dataset"
	"salescope/internal/pipeline"
	"salescope/internal/server"
)

var (
	serveAddr   string
	serveSample string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard JSON API",
	Long: `Serve exposes the pipeline over HTTP: POST /api/dataset uploads a CSV,
GET /api/summary and /api/charts answer filtered queries, and /api/narrative
composes the executive summary.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if serveSample != "" {
			cfg.SamplePath = serveSample
		}
		var rules pipeline.RuleTable
		if cfg.RulesFile != "" {
			t, err := pipeline.LoadRules(cfg.RulesFile)
			if err != nil {
				return err
			}
			rules = t
		}
		srv := server.New(cfg, dataset.NewSession(rules))
		fmt.Printf("✓ Listening on %s\n", serveAddr)
		return srv.Run(serveAddr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	serveCmd.Flags().StringVar(&serveSample, "sample", "", "path to the local sample CSV (overrides config)")
}
