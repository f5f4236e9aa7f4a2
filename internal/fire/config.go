package fire

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Params holds the tunable rates and thresholds of the simulation phases.
// All of them are fixed at engine construction and treated as immutable for
// the session, except where the HUD setters explicitly allow adjustment.
type Params struct {
	// Diffusion phase.
	DiffusionRate       float64 `yaml:"diffusion_rate"`
	OxygenDiffusionRate float64 `yaml:"oxygen_diffusion_rate"`
	ConvectionRate      float64 `yaml:"convection_rate"`
	CoolRate            float64 `yaml:"cool_rate"`
	OxygenRecoverRate   float64 `yaml:"oxygen_recover_rate"`
	BuoyancyThreshold   float64 `yaml:"buoyancy_threshold"`

	// Combustion phase.
	CombustionRate float64 `yaml:"combustion_rate"` // global burn multiplier
	OxygenMin      float64 `yaml:"oxygen_min"`
	TempFactorCap  float64 `yaml:"temp_factor_cap"`
	HeatPerFuel    float64 `yaml:"heat_per_fuel"`
	SmokeScale     float64 `yaml:"smoke_scale"`
	SpreadFactor   float64 `yaml:"spread_factor"`
	SpreadCap      float64 `yaml:"spread_cap"`
	SpreadHeat     float64 `yaml:"spread_heat"`

	// Fluid phase.
	SettleRate  float64 `yaml:"settle_rate"`
	SettleCap   float64 `yaml:"settle_cap"`
	BuoyRate    float64 `yaml:"buoy_rate"`
	BuoyCap     float64 `yaml:"buoy_cap"`
	FlowRate    float64 `yaml:"flow_rate"`
	FlowCap     float64 `yaml:"flow_cap"`
	GasFlowRate float64 `yaml:"gas_flow_rate"`
	DryRate     float64 `yaml:"dry_rate"`
	DryTempRate float64 `yaml:"dry_temp_rate"`

	// Scene seeding used by Reset.
	WoodPatchCount     int     `yaml:"wood_patch_count"`
	WoodPatchRadiusMin int     `yaml:"wood_patch_radius_min"`
	WoodPatchRadiusMax int     `yaml:"wood_patch_radius_max"`
	OilPoolCount       int     `yaml:"oil_pool_count"`
	OilPoolRadius      int     `yaml:"oil_pool_radius"`
	GrassChance        float64 `yaml:"grass_chance"`
}

// Config controls the world dimensions, the fixed-step loop and the per-frame
// update budget.
type Config struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	Seed int64 `yaml:"seed"`

	TickRate    int     `yaml:"tick_rate"`    // simulation ticks per second
	AmbientTemp float64 `yaml:"ambient_temp"` // resting temperature

	// FrameBudget is the number of cell-updates granted per rendered frame.
	// Unspent budget carries into the next frame up to
	// FrameBudget*BudgetCarryFactor, bounding catch-up after a stall.
	FrameBudget       int `yaml:"frame_budget"`
	BudgetCarryFactor int `yaml:"budget_carry_factor"`

	// DeactivationDelay is how long a chunk may sit idle, in seconds, before
	// it drops out of the active set.
	DeactivationDelay float64 `yaml:"deactivation_delay"`

	Params Params `yaml:"params"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:             256,
		Height:            192,
		Seed:              1337,
		TickRate:          30,
		AmbientTemp:       20,
		FrameBudget:       8192,
		BudgetCarryFactor: 4,
		DeactivationDelay: 2,
		Params: Params{
			DiffusionRate:       2.4,
			OxygenDiffusionRate: 1.6,
			ConvectionRate:      0.02,
			CoolRate:            0.05,
			OxygenRecoverRate:   3,
			BuoyancyThreshold:   100,

			CombustionRate: 1,
			OxygenMin:      0.12,
			TempFactorCap:  2,
			HeatPerFuel:    60,
			SmokeScale:     4,
			SpreadFactor:   0.002,
			SpreadCap:      0.9,
			SpreadHeat:     40,

			SettleRate:  8,
			SettleCap:   0.45,
			BuoyRate:    6,
			BuoyCap:     0.4,
			FlowRate:    2,
			FlowCap:     0.25,
			GasFlowRate: 1.2,
			DryRate:     0.02,
			DryTempRate: 0.0015,

			WoodPatchCount:     10,
			WoodPatchRadiusMin: 2,
			WoodPatchRadiusMax: 5,
			OilPoolCount:       2,
			OilPoolRadius:      6,
			GrassChance:        0.15,
		},
	}
}

// TickSeconds returns the fixed timestep length.
func (c Config) TickSeconds() float64 {
	tps := c.TickRate
	if tps <= 0 {
		tps = 30
	}
	return 1 / float64(tps)
}

// LoadConfig reads a YAML configuration file over the defaults, so partial
// files only override the keys they mention.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("fire config %s: %w", path, err)
	}
	return cfg.sanitized(), nil
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["tick_rate"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.TickRate = parsed
		}
	}
	if v, ok := cfg["frame_budget"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.FrameBudget = parsed
		}
	}
	if v, ok := cfg["budget_carry_factor"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.BudgetCarryFactor = parsed
		}
	}
	if v, ok := cfg["deactivation_delay"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.DeactivationDelay = parsed
		}
	}
	if v, ok := cfg["combustion_rate"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.CombustionRate = parsed
		}
	}
	if v, ok := cfg["diffusion_rate"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.DiffusionRate = parsed
		}
	}
	if v, ok := cfg["wood_patch_count"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.WoodPatchCount = parsed
		}
	}
	if v, ok := cfg["oil_pool_count"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.OilPoolCount = parsed
		}
	}
	if v, ok := cfg["grass_chance"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.GrassChance = parsed
		}
	}
	return c.sanitized()
}

// sanitized clamps nonsensical values back to workable ones.
func (c Config) sanitized() Config {
	if c.Width <= 0 {
		c.Width = 1
	}
	if c.Height <= 0 {
		c.Height = 1
	}
	if c.TickRate <= 0 {
		c.TickRate = 30
	}
	if c.FrameBudget <= 0 {
		c.FrameBudget = 8192
	}
	if c.BudgetCarryFactor < 1 {
		c.BudgetCarryFactor = 1
	}
	if c.DeactivationDelay < 0 {
		c.DeactivationDelay = 0
	}
	if c.Params.WoodPatchRadiusMax < c.Params.WoodPatchRadiusMin {
		c.Params.WoodPatchRadiusMax = c.Params.WoodPatchRadiusMin
	}
	return c
}
