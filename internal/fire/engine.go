package fire

import (
	"math"
	"time"

	"firegrid/internal/core"
	pcore "firegrid/pkg/core"
)

// maxFrameDelta bounds the wall time folded into the accumulator per frame so
// a long stall cannot queue unbounded catch-up work.
const maxFrameDelta = 0.25

// Engine orchestrates the fixed-timestep simulation loop over the grid's
// active region and exposes the mutation/query surface other systems use.
// All external interaction passes through its methods; nothing else mutates
// cell state, which keeps the budget and activation bookkeeping consistent.
//
// The engine is single-threaded and frame-synchronous: the whole update runs
// inside the caller's frame, there is no background execution.
type Engine struct {
	cfg  Config
	tun  tuning
	mats *MaterialSet
	grid *Grid
	rng  *pcore.RNG

	tick            uint64
	tickDur         float64
	deactivateTicks uint64

	acc    float64
	budget float64

	active   []*chunk
	scratch  [][2]int
	deposits []heatDeposit

	display  *core.ByteGrid
	heatMask []float32
	oxyMask  []float32

	burningCells   int
	lastStepCost   int
	frameCost      int
	stepsLastFrame int
}

// tuning mirrors Params in float32 so the phase kernels avoid per-cell
// conversions.
type tuning struct {
	diffusionRate   float32
	oxyDiffusion    float32
	convectionRate  float32
	coolRate        float32
	oxyRecoverRate  float32
	buoyThreshold   float32
	combustionRate  float32
	oxygenMin       float32
	tempFactorCap   float32
	heatPerFuel     float32
	smokeScale      float32
	spreadFactor    float32
	spreadCap       float32
	spreadHeat      float32
	settleRate      float32
	settleCap       float32
	buoyRate        float32
	buoyCap         float32
	flowRate        float32
	flowCap         float32
	gasFlowRate     float32
	dryRate         float32
	dryTempRate     float32
	ambient         float32
}

func makeTuning(cfg Config) tuning {
	p := cfg.Params
	return tuning{
		diffusionRate:  float32(p.DiffusionRate),
		oxyDiffusion:   float32(p.OxygenDiffusionRate),
		convectionRate: float32(p.ConvectionRate),
		coolRate:       float32(p.CoolRate),
		oxyRecoverRate: float32(p.OxygenRecoverRate),
		buoyThreshold:  float32(p.BuoyancyThreshold),
		combustionRate: float32(p.CombustionRate),
		oxygenMin:      float32(p.OxygenMin),
		tempFactorCap:  float32(p.TempFactorCap),
		heatPerFuel:    float32(p.HeatPerFuel),
		smokeScale:     float32(p.SmokeScale),
		spreadFactor:   float32(p.SpreadFactor),
		spreadCap:      float32(p.SpreadCap),
		spreadHeat:     float32(p.SpreadHeat),
		settleRate:     float32(p.SettleRate),
		settleCap:      float32(p.SettleCap),
		buoyRate:       float32(p.BuoyRate),
		buoyCap:        float32(p.BuoyCap),
		flowRate:       float32(p.FlowRate),
		flowCap:        float32(p.FlowCap),
		gasFlowRate:    float32(p.GasFlowRate),
		dryRate:        float32(p.DryRate),
		dryTempRate:    float32(p.DryTempRate),
		ambient:        float32(cfg.AmbientTemp),
	}
}

// New constructs an engine. A nil material set selects DefaultMaterials. The
// configuration is fixed for the session; the world starts empty (ambient air)
// until Reset seeds a scene or callers write cells through the public API.
func New(cfg Config, mats *MaterialSet) *Engine {
	cfg = cfg.sanitized()
	if mats == nil {
		mats = DefaultMaterials()
	}
	e := &Engine{
		cfg:     cfg,
		tun:     makeTuning(cfg),
		mats:    mats,
		rng:     pcore.NewRNG(cfg.Seed),
		tickDur: cfg.TickSeconds(),
		scratch: make([][2]int, 0, 8),
	}
	e.deactivateTicks = uint64(math.Round(cfg.DeactivationDelay / e.tickDur))
	if e.deactivateTicks < 1 {
		e.deactivateTicks = 1
	}
	e.grid = NewGrid(cfg.Width, cfg.Height, mats, e.tun.ambient)
	e.display = core.NewByteGrid(cfg.Width, cfg.Height)
	return e
}

// Name returns the simulation identifier.
func (e *Engine) Name() string { return "fire" }

// Size reports the world dimensions.
func (e *Engine) Size() core.Size { return core.Size{W: e.cfg.Width, H: e.cfg.Height} }

// Grid exposes the grid for read-side collaborators and tests.
func (e *Engine) Grid() *Grid { return e.grid }

// Materials exposes the shared material registry.
func (e *Engine) Materials() *MaterialSet { return e.mats }

// Tick reports the number of simulation steps executed so far.
func (e *Engine) Tick() uint64 { return e.tick }

// Reset clears the world, reseeds the randomness source and rebuilds the
// configured scene. A zero seed falls back to the config seed.
func (e *Engine) Reset(seed int64) {
	if seed == 0 {
		seed = e.cfg.Seed
	}
	e.rng = pcore.NewRNG(seed)
	e.grid = NewGrid(e.cfg.Width, e.cfg.Height, e.mats, e.tun.ambient)
	e.display.Clear()
	e.tick = 0
	e.acc = 0
	e.budget = 0
	e.burningCells = 0
	e.lastStepCost = 0
	e.frameCost = 0
	e.stepsLastFrame = 0
	e.seedScene()
	e.refreshDisplay()
}

// Advance folds elapsed wall time into the fixed-step accumulator and runs as
// many simulation ticks as both the accumulator and the per-frame update
// budget allow. When a pending step does not fit in the remaining budget the
// frame ends early and the unspent budget carries over (bounded), letting
// simulated time lag behind real time instead of blowing the frame. The first
// step of a frame always runs once a tick is due, even when its estimated
// cost exceeds the banked budget: a world too active for the budget must
// still advance, one tick per frame, and the overdraft is not carried.
func (e *Engine) Advance(elapsed time.Duration) {
	dt := elapsed.Seconds()
	if dt < 0 {
		dt = 0
	}
	if dt > maxFrameDelta {
		dt = maxFrameDelta
	}
	e.acc += dt

	ceiling := float64(e.cfg.FrameBudget * e.cfg.BudgetCarryFactor)
	e.budget += float64(e.cfg.FrameBudget)
	if e.budget > ceiling {
		e.budget = ceiling
	}

	e.frameCost = 0
	e.stepsLastFrame = 0
	for e.acc >= e.tickDur && e.budget > 0 {
		if e.stepsLastFrame > 0 && float64(e.pendingStepCost()) > e.budget {
			// Not enough budget for another full step; bank what is left.
			break
		}
		spent := e.step()
		e.budget -= float64(spent)
		e.acc -= e.tickDur
		e.frameCost += spent
		e.stepsLastFrame++
	}
	if e.budget < 0 {
		e.budget = 0
	}
	e.refreshDisplay()
}

// Step runs exactly one fixed tick, bypassing the frame budget. It exists for
// the core.Sim contract and for tests; frame hosts should call Advance.
func (e *Engine) Step() {
	e.step()
	e.refreshDisplay()
}

// pendingStepCost estimates the cell-update cost of the next step from the
// size of the active region.
func (e *Engine) pendingStepCost() int {
	n := 0
	for _, c := range e.grid.chunks {
		if c != nil && c.active {
			n++
		}
	}
	return n * chunkCells
}

// step runs the four ordered phases over a snapshot of the active set and
// returns the cost in cell-updates. Chunks activated mid-step are picked up
// on the following tick.
func (e *Engine) step() int {
	e.tick++
	e.grid.now = e.tick
	e.active = e.grid.ActiveChunks(e.active[:0])
	cost := len(e.active) * chunkCells
	dt := float32(e.tickDur)

	e.diffusionPhase(e.active, dt)
	e.combustionPhase(e.active, dt)
	e.fluidPhase(e.active, dt)
	e.maintenancePhase(e.active)

	e.lastStepCost = cost
	return cost
}

// maintenancePhase refreshes activity timestamps, counts burning cells and
// retires chunks that sat idle past the deactivation delay.
func (e *Engine) maintenancePhase(active []*chunk) {
	burning := 0
	for _, c := range active {
		n := 0
		for i := range c.burning {
			if c.burning[i] {
				n++
			}
		}
		burning += n
		if n > 0 || e.grid.chunkActivity(c) {
			c.lastActive = e.tick
			continue
		}
		if e.tick-c.lastActive >= e.deactivateTicks {
			c.active = false
		}
	}
	e.burningCells = burning
}

// seedScene builds the configured starting scene: a stone floor, scattered
// grass, wood patches and oil pools.
func (e *Engine) seedScene() {
	w, h := e.cfg.Width, e.cfg.Height
	if w == 0 || h == 0 {
		return
	}
	p := e.cfg.Params

	floorY := h - 2
	stone := e.mats.Get(MatStone)
	for y := floorY; y < h; y++ {
		for x := 0; x < w; x++ {
			e.grid.Apply(x, y, Patch().WithMaterial(MatStone).WithDensity(stone.Density))
		}
	}

	grass := e.mats.Get(MatGrass)
	for x := 0; x < w; x++ {
		if e.rng.Chance(p.GrassChance) {
			e.grid.Apply(x, floorY-1, Patch().
				WithMaterial(MatGrass).
				WithFuel(grass.FuelCapacity).
				WithDensity(grass.Density))
		}
	}

	wood := e.mats.Get(MatWood)
	for n := 0; n < p.WoodPatchCount; n++ {
		cx := e.rng.IntN(w)
		radius := p.WoodPatchRadiusMin
		if p.WoodPatchRadiusMax > p.WoodPatchRadiusMin {
			radius += e.rng.IntN(p.WoodPatchRadiusMax - p.WoodPatchRadiusMin + 1)
		}
		if radius < 1 {
			radius = 1
		}
		cy := floorY - 1 - radius
		e.fillDisc(cx, cy, float64(radius), Patch().
			WithMaterial(MatWood).
			WithFuel(wood.FuelCapacity).
			WithDensity(wood.Density))
	}

	oil := e.mats.Get(MatOil)
	for n := 0; n < p.OilPoolCount; n++ {
		cx := e.rng.IntN(w)
		half := p.OilPoolRadius
		for x := cx - half; x <= cx+half; x++ {
			e.grid.Apply(x, floorY-1, Patch().
				WithMaterial(MatOil).
				WithFuel(oil.FuelCapacity).
				WithDensity(oil.Density).
				WithWetness(0))
		}
	}
}

func (e *Engine) fillDisc(cx, cy int, radius float64, p CellPatch) {
	e.forEachInCircle(cx, cy, radius, func(x, y int, _ float64) {
		e.grid.Apply(x, y, p)
	})
}

// forEachInCircle visits every in-bounds cell within radius of the center,
// passing the Euclidean distance from the center. Non-positive radii visit
// nothing.
func (e *Engine) forEachInCircle(cx, cy int, radius float64, fn func(x, y int, dist float64)) {
	if radius <= 0 {
		return
	}
	r := int(math.Ceil(radius))
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			if !e.grid.InBounds(x, y) {
				continue
			}
			dist := math.Hypot(float64(x-cx), float64(y-cy))
			if dist <= radius {
				fn(x, y, dist)
			}
		}
	}
}

// IgniteCircle optionally overwrites material within the circle, then raises
// temperature with linear falloff from the center (full boost at the center,
// none at the radius edge) and force-activates the affected chunks. The call
// silently no-ops for non-positive radii or fully out-of-bounds circles.
func (e *Engine) IgniteCircle(cx, cy int, radius float64, mat MaterialID, boost float32) {
	if radius <= 0 {
		return
	}
	e.forEachInCircle(cx, cy, radius, func(x, y int, dist float64) {
		if mat != MatNone {
			m := e.mats.Get(mat)
			e.grid.Apply(x, y, Patch().
				WithMaterial(mat).
				WithFuel(m.FuelCapacity).
				WithDensity(m.Density))
		}
		falloff := float32(1 - dist/radius)
		if falloff > 0 && boost != 0 {
			e.grid.AddHeat(x, y, boost*falloff)
		}
	})
	e.grid.ActivateCircle(cx, cy, radius)
}

// AddHeatCircle raises temperature within the circle with linear falloff,
// clamped to each material's maximum, and force-activates the area.
func (e *Engine) AddHeatCircle(cx, cy int, radius float64, amount float32) {
	if radius <= 0 || amount == 0 {
		return
	}
	e.forEachInCircle(cx, cy, radius, func(x, y int, dist float64) {
		falloff := float32(1 - dist/radius)
		if falloff > 0 {
			e.grid.AddHeat(x, y, amount*falloff)
		}
	})
	e.grid.ActivateCircle(cx, cy, radius)
}

// AddLiquidCircle deposits a liquid material in the circle. Air and smoke
// cells convert to the liquid, existing liquids blend by intensity, and
// solids only pick up wetness. Water additionally wets a surrounding ring so
// nearby burning cells extinguish on their next combustion pass.
func (e *Engine) AddLiquidCircle(cx, cy int, radius float64, mat MaterialID, intensity float32) {
	if radius <= 0 || intensity <= 0 {
		return
	}
	m := e.mats.Get(mat)
	if m.Flow != FlowLiquid {
		return
	}
	if intensity > 1 {
		intensity = 1
	}
	e.forEachInCircle(cx, cy, radius, func(x, y int, dist float64) {
		cur := e.grid.cellOrAmbient(x, y)
		cm := e.mats.Get(cur.Material)
		switch {
		case cur.Material == MatAir || cur.Material == MatSmoke:
			e.grid.Apply(x, y, Patch().
				WithMaterial(mat).
				WithWetness(intensity).
				WithTemp(e.tun.ambient).
				WithDensity(m.Density*intensity+cur.Density*(1-intensity)).
				WithBurning(false))
		case cm.Flow == FlowLiquid:
			// Mix into the existing liquid: density drifts toward the
			// deposited material by intensity.
			e.grid.Apply(x, y, Patch().
				WithDensity(cur.Density*(1-intensity)+m.Density*intensity).
				WithWetness(max32(cur.Wetness, intensity)))
		default:
			falloff := float32(1 - dist/radius)
			e.grid.Apply(x, y, Patch().
				WithWetness(clamp32(cur.Wetness+intensity*falloff, 0, 1)))
		}
	})
	if mat == MatWater {
		quenchRadius := radius + 2
		e.forEachInCircle(cx, cy, quenchRadius, func(x, y int, dist float64) {
			if dist <= radius {
				return
			}
			cur, ok := e.grid.CellAt(x, y)
			if !ok {
				return
			}
			falloff := float32(1 - dist/quenchRadius)
			e.grid.Apply(x, y, Patch().
				WithWetness(clamp32(cur.Wetness+intensity*falloff, 0, 1)))
		})
	}
	e.grid.ActivateCircle(cx, cy, radius)
}

// IsBurning reports whether the cell at (x, y) is currently burning.
// Out-of-bounds or untouched coordinates are never burning.
func (e *Engine) IsBurning(x, y int) bool {
	cell, ok := e.grid.CellAt(x, y)
	return ok && cell.Burning
}

// DamageReport aggregates fire damage over a sampled box.
type DamageReport struct {
	BurningCells int
	AvgTemp      float32
	Damage       float64
}

// DamageInBox samples every cell under the axis-aligned box (corners
// inclusive, any corner order) and returns the burning-cell count, the average
// temperature, and the damage value 0.5*burningCells + max(0, (avgTemp-100)/100).
// The formula is a gameplay contract consumed by entity damage and must not
// change.
func (e *Engine) DamageInBox(x0, y0, x1, y1 int) DamageReport {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	if x1 < 0 || x0 >= e.cfg.Width || y1 < 0 || y0 >= e.cfg.Height {
		return DamageReport{}
	}
	x0 = clampInt(x0, 0, e.cfg.Width-1)
	x1 = clampInt(x1, 0, e.cfg.Width-1)
	y0 = clampInt(y0, 0, e.cfg.Height-1)
	y1 = clampInt(y1, 0, e.cfg.Height-1)

	var sum float64
	n := 0
	burning := 0
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			cell := e.grid.cellOrAmbient(x, y)
			sum += float64(cell.Temp)
			n++
			if cell.Burning {
				burning++
			}
		}
	}
	if n == 0 {
		return DamageReport{}
	}
	avg := sum / float64(n)
	damage := 0.5 * float64(burning)
	if avg > 100 {
		damage += (avg - 100) / 100
	}
	return DamageReport{BurningCells: burning, AvgTemp: float32(avg), Damage: damage}
}

// Stats is a read-only snapshot of engine counters for HUDs and inspection.
type Stats struct {
	Tick            uint64
	BurningCells    int
	ActiveChunks    int
	AllocatedChunks int
	LastStepCost    int
	FrameCost       int
	StepsLastFrame  int
	BudgetRemaining int
}

// Stats reports the current engine counters.
func (e *Engine) Stats() Stats {
	activeChunks := 0
	for _, c := range e.grid.chunks {
		if c != nil && c.active {
			activeChunks++
		}
	}
	return Stats{
		Tick:            e.tick,
		BurningCells:    e.burningCells,
		ActiveChunks:    activeChunks,
		AllocatedChunks: e.grid.AllocatedChunks(),
		LastStepCost:    e.lastStepCost,
		FrameCost:       e.frameCost,
		StepsLastFrame:  e.stepsLastFrame,
		BudgetRemaining: int(e.budget),
	}
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func init() {
	core.Register("fire", func(cfg map[string]string) core.Sim {
		return New(FromMap(cfg), nil)
	})
}
