package main

import (
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/bomsight/bomsight/internal/enrich"
)

var (
	enrichFile        string
	enrichLimit       int
	enrichConcurrency int
	enrichRPS         float64
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Route enriched candidates from a file through the quality gate",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		source, err := enrich.OpenJSONFile(enrichFile)
		if err != nil {
			return err
		}
		defer source.Close()

		batchCfg := cfg.Batch
		if enrichConcurrency > 0 {
			batchCfg.MaxConcurrent = enrichConcurrency
		}
		if cmd.Flags().Changed("rps") {
			batchCfg.RatePerSecond = enrichRPS
		}

		batch := enrich.NewBatch(initRouter(st), batchCfg)
		summary, err := batch.Run(ctx, source, enrichLimit)
		if err != nil {
			return eris.Wrap(err, "enrich batch")
		}

		cmd.Printf("processed=%d promoted=%d queued=%d rejected=%d failed=%d\n",
			summary.Processed, summary.Promoted, summary.Queued, summary.Rejected, summary.Failed)
		return nil
	},
}

func init() {
	enrichCmd.Flags().StringVar(&enrichFile, "file", "", "JSON file of enriched candidates (array or concatenated objects)")
	enrichCmd.Flags().IntVar(&enrichLimit, "limit", 0, "max number of candidates to process (0 = all)")
	enrichCmd.Flags().IntVar(&enrichConcurrency, "concurrency", 0, "override batch.max_concurrent")
	enrichCmd.Flags().Float64Var(&enrichRPS, "rps", 0, "override batch.rate_per_second (0 = unlimited)")
	enrichCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(enrichCmd)
}
