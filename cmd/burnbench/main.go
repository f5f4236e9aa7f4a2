package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"firegrid/internal/fire"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func main() {
	steps := flag.Int("steps", 1200, "number of ticks to simulate")
	width := flag.Int("width", 256, "map width for the run")
	height := flag.Int("height", 192, "map height for the run")
	seed := flag.Int64("seed", 1337, "seed used for the deterministic run")
	configPath := flag.String("config", "", "path to a YAML config file")
	var overrides kvList
	flag.Var(&overrides, "set", "parameter override in key=value form (repeatable)")
	flag.Parse()

	cfg := fire.DefaultConfig()
	if *configPath != "" {
		loaded, err := fire.LoadConfig(*configPath)
		if err != nil {
			fmt.Println(err)
			return
		}
		cfg = loaded
	}
	cfg.Width = *width
	cfg.Height = *height
	cfg.Seed = *seed

	for _, kv := range overrides {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			continue
		}
		applyOverride(&cfg.Params, parts[0], parts[1])
	}

	result := fire.BurnScenarioResult(cfg, *steps)

	fmt.Printf("Burn run: max distance %.2f (at step %d), last fire step %d/%d, peak burning %d\n",
		result.MaxDistance, result.MaxDistanceStep, result.LastBurningStep, result.StepsSimulated, result.PeakBurningCells)
	fmt.Printf("Fuel consumed %.1f, peak active chunks %d, total cost %d cell-updates (%.0f per step)\n",
		result.FuelConsumed, result.PeakActiveChunks, result.TotalCost, avgCost(result))
}

func avgCost(r fire.BurnResult) float64 {
	if r.StepsSimulated == 0 {
		return 0
	}
	return float64(r.TotalCost) / float64(r.StepsSimulated)
}

func applyOverride(params *fire.Params, key, value string) {
	switch key {
	case "combustion_rate":
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			params.CombustionRate = v
		}
	case "diffusion_rate":
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			params.DiffusionRate = v
		}
	case "cool_rate":
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			params.CoolRate = v
		}
	case "spread_factor":
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			params.SpreadFactor = v
		}
	case "spread_heat":
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			params.SpreadHeat = v
		}
	case "heat_per_fuel":
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			params.HeatPerFuel = v
		}
	case "oxygen_min":
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			params.OxygenMin = v
		}
	case "wood_patch_count":
		if v, err := strconv.Atoi(value); err == nil {
			params.WoodPatchCount = v
		}
	case "oil_pool_count":
		if v, err := strconv.Atoi(value); err == nil {
			params.OilPoolCount = v
		}
	case "grass_chance":
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			params.GrassChance = v
		}
	}
}
