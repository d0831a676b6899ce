package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"salescope/internal/ai"
	"salescope/internal/narrative"
	"salescope/internal/pipeline"
)

var (
	sumProvider string
	sumModel    string
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <file>",
	Short: "Compose an executive summary for a sales CSV",
	Long: `Summarize filters and aggregates the dataset, then composes a short
executive summary. The local provider fills a deterministic template; hf and
space delegate to a remote text-generation backend. Remote failures print an
error message in place of the summary.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := loadSession(args[0])
		if err != nil {
			return err
		}
		res := pipeline.Aggregate(pipeline.Filter(sess.Records, criteriaFromFlags()))

		provider := sumProvider
		if provider == "" {
			provider = cfg.Provider
		}
		model := sumModel
		if model == "" {
			model = cfg.Model
		}
		var rt ai.Runtime
		if provider != "" && provider != ai.ProviderLocal {
			r, ok := ai.GetRuntime(provider, ai.RuntimeConfig{
				APIKey:      cfg.APIKey,
				Endpoint:    cfg.SpaceURL,
				Model:       model,
				HTTPTimeout: time.Duration(cfg.HTTPTimeoutSec) * time.Second,
			})
			if !ok {
				return fmt.Errorf("unknown provider %q (use local, hf, or space)", provider)
			}
			rt = r
		}

		composer := &narrative.Composer{Runtime: rt, Currency: cfg.Currency}
		ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(cfg.HTTPTimeoutSec)*time.Second)
		defer cancel()
		text, err := composer.Compose(ctx, res)
		if err != nil {
			// Cosmetic failure: the message is the output.
			text = narrative.RenderError(err)
		}
		fmt.Println(text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
	summarizeCmd.Flags().StringVar(&sumProvider, "provider", "", "narrative provider: local | hf | space (default from config)")
	summarizeCmd.Flags().StringVar(&sumModel, "model", "", "remote model identifier (hf provider)")
	summarizeCmd.Flags().StringVar(&flagProduct, "product", "", "filter: exact product name")
	summarizeCmd.Flags().StringVar(&flagRegion, "region", "", "filter: exact region name")
	summarizeCmd.Flags().StringVar(&flagLocation, "location", "", "filter: exact location name")
	summarizeCmd.Flags().StringVar(&flagFrom, "from", "", "filter: start date (YYYY-MM-DD, inclusive)")
	summarizeCmd.Flags().StringVar(&flagTo, "to", "", "filter: end date (YYYY-MM-DD, inclusive)")
	summarizeCmd.Flags().StringVar(&flagRules, "rules", "", "custom column rules file (YAML)")
}
