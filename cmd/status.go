package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bomsight/bomsight/internal/monitoring"
)

var (
	statusLookback int
	statusJSON     bool
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show queue depth and enrichment throughput",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := initStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		snap, err := monitoring.NewCollector(st).Collect(cmd.Context(), statusLookback)
		if err != nil {
			return err
		}

		if statusJSON {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(snap)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "queue: pending=%d needs_review=%d approved=%d rejected=%d\n",
			snap.QueuePending, snap.QueueNeedsReview, snap.QueueApproved, snap.QueueRejected)
		fmt.Fprintf(out, "last %dh: attempts=%d completed=%d needs_review=%d rejected=%d errored=%d\n",
			snap.LookbackHours, snap.AttemptsTotal, snap.AttemptsCompleted,
			snap.AttemptsNeedsReview, snap.AttemptsRejected, snap.AttemptsErrored)
		fmt.Fprintf(out, "avg quality score=%.2f avg exec=%dms fail rate=%.2f%%\n",
			snap.AvgQualityScore, snap.AvgExecutionMS, snap.AttemptFailRate*100)
		return nil
	},
}

func init() {
	statusCmd.Flags().IntVar(&statusLookback, "hours", 24, "lookback window in hours")
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "emit JSON")
	rootCmd.AddCommand(statusCmd)
}
