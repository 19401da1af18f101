package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bomsight/bomsight/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "bomsight",
	Short: "Component catalog enrichment quality router and BOM risk engine",
	Long:  "Scores enriched component records for completeness, routes them to auto-promotion, human review, or rejection, and computes per-line-item and BOM-level supply risk.",
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

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
