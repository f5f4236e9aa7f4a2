package fire

import (
	"strconv"

	"firegrid/internal/core"
)

func (e *Engine) Parameters() core.ParameterSnapshot {
	params := e.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", e.cfg.Width),
				intParam("h", "Height", e.cfg.Height),
				int64Param("seed", "Seed", e.cfg.Seed),
				intParam("tick_rate", "Tick rate", e.cfg.TickRate),
				floatParam("ambient_temp", "Ambient temperature", e.cfg.AmbientTemp),
			},
		},
		{
			Name: "Budget",
			Params: []core.Parameter{
				intParam("frame_budget", "Frame budget", e.cfg.FrameBudget),
				intParam("budget_carry_factor", "Budget carry factor", e.cfg.BudgetCarryFactor),
				floatParam("deactivation_delay", "Deactivation delay", e.cfg.DeactivationDelay),
			},
		},
		{
			Name: "Diffusion",
			Params: []core.Parameter{
				floatParam("diffusion_rate", "Heat diffusion rate", params.DiffusionRate),
				floatParam("oxygen_diffusion_rate", "Oxygen diffusion rate", params.OxygenDiffusionRate),
				floatParam("convection_rate", "Convection rate", params.ConvectionRate),
				floatParam("cool_rate", "Passive cooling rate", params.CoolRate),
				floatParam("oxygen_recover_rate", "Oxygen recovery rate", params.OxygenRecoverRate),
				floatParam("buoyancy_threshold", "Buoyancy threshold", params.BuoyancyThreshold),
			},
		},
		{
			Name: "Combustion",
			Params: []core.Parameter{
				floatParam("combustion_rate", "Combustion rate", params.CombustionRate),
				floatParam("oxygen_min", "Oxygen floor", params.OxygenMin),
				floatParam("temp_factor_cap", "Temperature factor cap", params.TempFactorCap),
				floatParam("heat_per_fuel", "Heat per fuel", params.HeatPerFuel),
				floatParam("smoke_scale", "Smoke scale", params.SmokeScale),
				floatParam("spread_factor", "Spread factor", params.SpreadFactor),
				floatParam("spread_cap", "Spread cap", params.SpreadCap),
				floatParam("spread_heat", "Spread heat", params.SpreadHeat),
			},
		},
		{
			Name: "Fluids",
			Params: []core.Parameter{
				floatParam("settle_rate", "Settle rate", params.SettleRate),
				floatParam("settle_cap", "Settle cap", params.SettleCap),
				floatParam("buoy_rate", "Buoyancy rate", params.BuoyRate),
				floatParam("buoy_cap", "Buoyancy cap", params.BuoyCap),
				floatParam("flow_rate", "Liquid flow rate", params.FlowRate),
				floatParam("flow_cap", "Flow cap", params.FlowCap),
				floatParam("gas_flow_rate", "Gas flow rate", params.GasFlowRate),
				floatParam("dry_rate", "Drying rate", params.DryRate),
				floatParam("dry_temp_rate", "Heated drying rate", params.DryTempRate),
			},
		},
		{
			Name: "Scene",
			Params: []core.Parameter{
				intParam("wood_patch_count", "Wood patch count", params.WoodPatchCount),
				intParam("wood_patch_radius_min", "Wood patch radius min", params.WoodPatchRadiusMin),
				intParam("wood_patch_radius_max", "Wood patch radius max", params.WoodPatchRadiusMax),
				intParam("oil_pool_count", "Oil pool count", params.OilPoolCount),
				intParam("oil_pool_radius", "Oil pool radius", params.OilPoolRadius),
				floatParam("grass_chance", "Grass chance", params.GrassChance),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the tunables worth adjusting live from the HUD.
// Rates feed the phase kernels through the tuning mirror, so setters rebuild
// it.
func (e *Engine) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "combustion_rate", Label: "Combustion rate", Type: core.ParamTypeFloat, Step: 0.1, Min: 0, Max: 10, HasMin: true, HasMax: true},
		{Key: "diffusion_rate", Label: "Heat diffusion rate", Type: core.ParamTypeFloat, Step: 0.1, Min: 0, Max: 10, HasMin: true, HasMax: true},
		{Key: "cool_rate", Label: "Passive cooling rate", Type: core.ParamTypeFloat, Step: 0.01, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "spread_factor", Label: "Spread factor", Type: core.ParamTypeFloat, Step: 0.0005, Min: 0, Max: 0.01, HasMin: true, HasMax: true},
		{Key: "frame_budget", Label: "Frame budget", Type: core.ParamTypeInt, Step: 1024, Min: 1024, Max: 262144, HasMin: true, HasMax: true},
	}
}

func (e *Engine) SetFloatParameter(key string, value float64) bool {
	if value < 0 {
		return false
	}
	switch key {
	case "combustion_rate":
		e.cfg.Params.CombustionRate = value
	case "diffusion_rate":
		e.cfg.Params.DiffusionRate = value
	case "cool_rate":
		e.cfg.Params.CoolRate = value
	case "spread_factor":
		e.cfg.Params.SpreadFactor = value
	default:
		return false
	}
	e.tun = makeTuning(e.cfg)
	return true
}

func (e *Engine) SetIntParameter(key string, value int) bool {
	switch key {
	case "frame_budget":
		if value < chunkCells {
			return false
		}
		e.cfg.FrameBudget = value
	default:
		return false
	}
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}
