package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bomsight/bomsight/internal/model"
	"github.com/bomsight/bomsight/internal/store"
)

var (
	reviewStatus   string
	reviewLimit    int
	reviewReviewer string
	reviewJSON     bool
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Inspect and decide queued enrichment entries",
}

var reviewListCmd = &cobra.Command{
	Use:   "list",
	Short: "List review queue entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := initStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		entries, err := st.ListQueueEntries(cmd.Context(), store.QueueFilter{
			Status: model.QueueStatus(reviewStatus),
			Limit:  reviewLimit,
		})
		if err != nil {
			return err
		}

		if reviewJSON {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(entries)
		}

		for _, e := range entries {
			issues := ""
			if len(e.Issues) > 0 {
				issues = " " + strings.Join(e.Issues, "; ")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-24s %-20s score=%-3d %s%s\n",
				e.ComponentID, e.MPN, e.QualityScore, e.Status, issues)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d entries\n", len(entries))
		return nil
	},
}

var reviewApproveCmd = &cobra.Command{
	Use:   "approve <component-id>",
	Short: "Approve a needs_review entry and apply its enrichment to the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := initStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		applied, err := initRouter(st).Approve(cmd.Context(), args[0], reviewReviewer)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "approved %s (catalog quality score %d)\n",
			args[0], applied.EnrichmentQualityScore)
		return nil
	},
}

var reviewRejectCmd = &cobra.Command{
	Use:   "reject <component-id>",
	Short: "Reject a needs_review entry; the catalog is left untouched",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := initStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		if _, err := initRouter(st).Reject(cmd.Context(), args[0], reviewReviewer); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "rejected %s\n", args[0])
		return nil
	},
}

func init() {
	reviewListCmd.Flags().StringVar(&reviewStatus, "status", "needs_review", "filter by status (pending|needs_review|approved|rejected, empty = all)")
	reviewListCmd.Flags().IntVar(&reviewLimit, "limit", 50, "max entries to list")
	reviewListCmd.Flags().BoolVar(&reviewJSON, "json", false, "emit JSON")

	for _, c := range []*cobra.Command{reviewApproveCmd, reviewRejectCmd} {
		c.Flags().StringVar(&reviewReviewer, "reviewer", "", "reviewer identity recorded on the entry")
		c.MarkFlagRequired("reviewer")
	}

	reviewCmd.AddCommand(reviewListCmd, reviewApproveCmd, reviewRejectCmd)
	rootCmd.AddCommand(reviewCmd)
}
