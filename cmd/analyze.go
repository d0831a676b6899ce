package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"salescope/internal/pipeline"
	"salescope/internal/render"
)

var anaOutputPath string

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a sales CSV and print KPIs, callouts, and breakdowns",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := loadSession(args[0])
		if err != nil {
			return err
		}
		if debug {
			fmt.Fprintf(os.Stderr, "inferred columns: %v\n", sess.Columns)
		}
		crit := criteriaFromFlags()
		res := pipeline.Aggregate(pipeline.Filter(sess.Records, crit))
		rep := &render.Report{
			Dataset:  sess.Name,
			Criteria: crit,
			Result:   res,
			Currency: cfg.Currency,
		}
		md := rep.Markdown()
		if anaOutputPath != "" {
			if err := os.WriteFile(anaOutputPath, []byte(md), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Printf("✓ Wrote analysis to %s\n", anaOutputPath)
			return nil
		}
		fmt.Println(md)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "optional path to write the report (Markdown)")
	analyzeCmd.Flags().StringVar(&flagProduct, "product", "", "filter: exact product name")
	analyzeCmd.Flags().StringVar(&flagRegion, "region", "", "filter: exact region name")
	analyzeCmd.Flags().StringVar(&flagLocation, "location", "", "filter: exact location name")
	analyzeCmd.Flags().StringVar(&flagFrom, "from", "", "filter: start date (YYYY-MM-DD, inclusive)")
	analyzeCmd.Flags().StringVar(&flagTo, "to", "", "filter: end date (YYYY-MM-DD, inclusive)")
	analyzeCmd.Flags().StringVar(&flagRules, "rules", "", "custom column rules file (YAML)")
}
