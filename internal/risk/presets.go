package risk

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/bomsight/bomsight/internal/model"
)

// Presets bundled for `profile apply --preset`. The conservative preset
// leans on lifecycle and sourcing; aggressive tolerates more supply risk.
var builtinPresets = map[string]model.RiskProfile{
	"balanced": model.DefaultRiskProfile(""),
	"conservative": {
		Name: "conservative",
		Weights: model.FactorWeights{
			Lifecycle:    0.35,
			SupplyChain:  0.20,
			Compliance:   0.15,
			Obsolescence: 0.15,
			SingleSource: 0.15,
		},
		Thresholds: model.RiskThresholds{Low: 20, Medium: 40, High: 65},
		Modifiers:  model.ModifierWeights{Quantity: 1.0, LeadTime: 1.0, Criticality: 1.0},
	},
	"aggressive": {
		Name: "aggressive",
		Weights: model.FactorWeights{
			Lifecycle:    0.25,
			SupplyChain:  0.30,
			Compliance:   0.20,
			Obsolescence: 0.15,
			SingleSource: 0.10,
		},
		Thresholds: model.RiskThresholds{Low: 35, Medium: 60, High: 85},
		Modifiers:  model.ModifierWeights{Quantity: 1.0, LeadTime: 1.0, Criticality: 1.0},
	},
}

// Preset returns a named builtin profile bound to the organization.
func Preset(name, organizationID string) (model.RiskProfile, error) {
	p, ok := builtinPresets[name]
	if !ok {
		return model.RiskProfile{}, eris.Errorf("risk: unknown preset %q", name)
	}
	p.OrganizationID = organizationID
	p.Name = name
	return p, nil
}

// PresetNames lists the builtin presets.
func PresetNames() []string {
	return []string{"aggressive", "balanced", "conservative"}
}

// LoadProfileFile reads a risk profile from a YAML file and validates it.
// Fields omitted in the file fall back to the default profile's values.
func LoadProfileFile(path, organizationID string) (model.RiskProfile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.RiskProfile{}, eris.Wrapf(err, "risk: read profile file %s", path)
	}

	p := model.DefaultRiskProfile(organizationID)
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return model.RiskProfile{}, eris.Wrapf(err, "risk: parse profile file %s", path)
	}
	p.OrganizationID = organizationID
	if err := p.Validate(); err != nil {
		return model.RiskProfile{}, eris.Wrapf(err, "risk: profile file %s", path)
	}
	return p, nil
}
