package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bomsight/bomsight/internal/model"
	"github.com/bomsight/bomsight/internal/risk"
)

var (
	profileOrg    string
	profilePreset string
	profileFile   string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage per-organization risk profiles",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the organization's effective risk profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := initStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		profile, err := risk.NewService(st, cfg.Risk).Profile(cmd.Context(), profileOrg)
		if err != nil {
			return err
		}
		return json.NewEncoder(cmd.OutOrStdout()).Encode(profile)
	},
}

var profileValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a risk profile YAML file without storing it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := risk.LoadProfileFile(args[0], profileOrg)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "profile %q valid (weights sum %.4f, thresholds %.0f/%.0f/%.0f)\n",
			profile.Name, profile.Weights.Sum(),
			profile.Thresholds.Low, profile.Thresholds.Medium, profile.Thresholds.High)
		return nil
	},
}

var profileApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Store a risk profile for an organization from a preset or file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if (profilePreset == "") == (profileFile == "") {
			return fmt.Errorf("exactly one of --preset or --file is required")
		}

		st, err := initStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		var p model.RiskProfile
		if profilePreset != "" {
			p, err = risk.Preset(profilePreset, profileOrg)
		} else {
			p, err = risk.LoadProfileFile(profileFile, profileOrg)
		}
		if err != nil {
			return err
		}
		p.UpdatedAt = time.Now().UTC()

		if err := st.PutRiskProfile(cmd.Context(), &p); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "applied profile %q for organization %s\n", p.Name, profileOrg)
		return nil
	},
}

func init() {
	profileCmd.PersistentFlags().StringVar(&profileOrg, "org", "default", "organization the profile belongs to")
	profileApplyCmd.Flags().StringVar(&profilePreset, "preset", "",
		fmt.Sprintf("builtin preset (%s)", strings.Join(risk.PresetNames(), "|")))
	profileApplyCmd.Flags().StringVar(&profileFile, "file", "", "risk profile YAML file")

	profileCmd.AddCommand(profileShowCmd, profileValidateCmd, profileApplyCmd)
	rootCmd.AddCommand(profileCmd)
}
