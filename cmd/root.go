package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leadscout/internal/config"
	"github.com/sells-group/leadscout/internal/pipeline"
	"github.com/sells-group/leadscout/pkg/anthropic"
	"github.com/sells-group/leadscout/pkg/jina"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "leadscout",
	Short: "ICP-driven lead extraction pipeline",
	Long:  "Turns an ideal customer profile into scored B2B leads: builds search queries, retrieves web evidence, extracts structured leads via Claude, enriches contacts, and scores against the profile.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// newPipeline builds the pipeline from configured credentials.
func newPipeline() (*pipeline.Pipeline, error) {
	if cfg.Jina.Key == "" {
		return nil, eris.Wrap(pipeline.ErrNotConfigured, "missing jina api key")
	}
	if cfg.Anthropic.Key == "" {
		return nil, eris.Wrap(pipeline.ErrNotConfigured, "missing anthropic api key")
	}

	search := jina.NewClient(cfg.Jina.Key, jina.WithBaseURL(cfg.Jina.SearchBaseURL))
	ai := anthropic.NewClient(cfg.Anthropic.Key)
	return pipeline.New(cfg, search, ai), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
