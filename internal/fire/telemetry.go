package fire

import "math"

// BurnResult captures telemetry from a deterministic burn run used for tuning
// and benchmarking.
type BurnResult struct {
	// MaxDistance records the farthest Euclidean distance (in cells) that a
	// burning cell reached from the ignition centre.
	MaxDistance float64
	// MaxDistanceStep stores the tick at which the farthest distance was
	// first achieved.
	MaxDistanceStep int
	// PeakBurningCells tracks the maximum number of burning cells present at
	// any step.
	PeakBurningCells int
	// LastBurningStep records the final tick that still contained fire.
	LastBurningStep int
	// StepsSimulated reports how many ticks the simulation executed.
	StepsSimulated int
	// FuelConsumed totals the fuel burned away over the run.
	FuelConsumed float64
	// PeakActiveChunks tracks the widest the active region ever got.
	PeakActiveChunks int
	// TotalCost accumulates cell-update cost across all executed steps.
	TotalCost int
}

// BurnScenarioResult runs a deterministic ignition scenario with the provided
// configuration and returns the fire spread telemetry.
//
// The helper seeds the configured scene, ignites a wood disc at the map
// centre, steps the simulation for the requested number of ticks, and tracks
// how far and how long the fire burns. The run ends early once the fire has
// been out for a sustained stretch.
func BurnScenarioResult(cfg Config, steps int) BurnResult {
	if steps <= 0 {
		return BurnResult{}
	}

	eng := New(cfg, nil)
	eng.Reset(0)

	cx := cfg.Width / 2
	cy := cfg.Height / 2
	const igniteRadius = 4
	eng.IgniteCircle(cx, cy, igniteRadius, MatWood, 600)

	fuelAt := func() float64 {
		var total float64
		for _, c := range eng.grid.chunks {
			if c == nil {
				continue
			}
			for _, f := range c.fuel {
				total += float64(f)
			}
		}
		return total
	}
	initialFuel := fuelAt()

	centreX := float64(cx) + 0.5
	centreY := float64(cy) + 0.5

	result := BurnResult{}

	measureStep := func(step int) int {
		burning := 0
		for _, c := range eng.grid.chunks {
			if c == nil {
				continue
			}
			baseX := c.cx * ChunkSize
			baseY := c.cy * ChunkSize
			for i, b := range c.burning {
				if !b {
					continue
				}
				burning++
				x := baseX + i/ChunkSize
				y := baseY + i%ChunkSize
				dist := math.Hypot(float64(x)+0.5-centreX, float64(y)+0.5-centreY)
				if dist > result.MaxDistance {
					result.MaxDistance = dist
					result.MaxDistanceStep = step
				}
			}
		}
		if burning > result.PeakBurningCells {
			result.PeakBurningCells = burning
		}
		if burning > 0 {
			result.LastBurningStep = step
		}
		return burning
	}

	inactiveLimit := 64
	inactive := 0

	for step := 1; step <= steps; step++ {
		eng.Step()
		result.StepsSimulated = step
		result.TotalCost += eng.lastStepCost
		stats := eng.Stats()
		if stats.ActiveChunks > result.PeakActiveChunks {
			result.PeakActiveChunks = stats.ActiveChunks
		}
		if measureStep(step) == 0 {
			inactive++
			if inactive >= inactiveLimit {
				break
			}
			continue
		}
		inactive = 0
	}

	result.FuelConsumed = initialFuel - fuelAt()
	if result.FuelConsumed < 0 {
		result.FuelConsumed = 0
	}
	return result
}
