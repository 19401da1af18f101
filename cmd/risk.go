package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bomsight/bomsight/internal/risk"
)

var (
	riskOrg         string
	riskOut         string
	riskCriticality int
)

var riskCmd = &cobra.Command{
	Use:   "risk",
	Short: "Compute component, line-item, and BOM risk scores",
}

var riskComponentCmd = &cobra.Command{
	Use:   "component <component-id>",
	Short: "Score one catalog component's risk factors",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := initStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		score, err := risk.NewService(st, cfg.Risk).ScoreComponent(cmd.Context(), args[0], riskOrg)
		if err != nil {
			return err
		}
		return json.NewEncoder(cmd.OutOrStdout()).Encode(score)
	},
}

var riskBomCmd = &cobra.Command{
	Use:   "bom <bom-id>",
	Short: "Recompute and print the BOM risk summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := initStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		summary, err := risk.NewService(st, cfg.Risk).SummarizeBom(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return json.NewEncoder(cmd.OutOrStdout()).Encode(summary)
	},
}

var riskCriticalityCmd = &cobra.Command{
	Use:   "criticality <bom-id> <line-item-id>",
	Short: "Set a line item's criticality and recompute only that line item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := initStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		item, err := risk.NewService(st, cfg.Risk).SetCriticality(
			cmd.Context(), args[0], args[1], riskCriticality, riskOrg)
		if err != nil {
			return err
		}
		return json.NewEncoder(cmd.OutOrStdout()).Encode(item)
	},
}

var riskExportCmd = &cobra.Command{
	Use:   "export <bom-id>",
	Short: "Write a BOM risk report workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := initStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		svc := risk.NewService(st, cfg.Risk)
		summary, err := svc.SummarizeBom(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		items, err := st.ListLineItemsForBom(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if err := risk.ExportXLSX(riskOut, summary, items); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d line items)\n", riskOut, len(items))
		return nil
	},
}

func init() {
	riskCmd.PersistentFlags().StringVar(&riskOrg, "org", "default", "organization whose risk profile applies")
	riskCriticalityCmd.Flags().IntVar(&riskCriticality, "level", 5, "criticality level 1-10")
	riskExportCmd.Flags().StringVar(&riskOut, "out", "bom-risk.xlsx", "output workbook path")

	riskCmd.AddCommand(riskComponentCmd, riskBomCmd, riskCriticalityCmd, riskExportCmd)
	rootCmd.AddCommand(riskCmd)
}
