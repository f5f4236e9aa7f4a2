package fire

import (
	"slices"
	"testing"
	"time"
)

// quietConfig turns off diffusion, cooling, spread, smoke and scene seeding
// so individual mechanisms can be observed on hand-placed cells.
func quietConfig(w, h int) Config {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	cfg.Params.DiffusionRate = 0
	cfg.Params.OxygenDiffusionRate = 0
	cfg.Params.ConvectionRate = 0
	cfg.Params.CoolRate = 0
	cfg.Params.SpreadFactor = 0
	cfg.Params.SmokeScale = 0
	cfg.Params.WoodPatchCount = 0
	cfg.Params.OilPoolCount = 0
	cfg.Params.GrassChance = 0
	return cfg
}

// stonePocket walls in a single cell so the fluid phase cannot move it.
func stonePocket(e *Engine, x, y int) {
	stone := e.Materials().Get(MatStone)
	for _, d := range offsets8 {
		e.Grid().Apply(x+d[0], y+d[1], Patch().
			WithMaterial(MatStone).
			WithDensity(stone.Density))
	}
}

func TestWoodBurnsOutToChar(t *testing.T) {
	e := New(quietConfig(64, 64), nil)
	x, y := 16, 16
	wood := e.Materials().Get(MatWood)
	e.Grid().Apply(x, y, Patch().
		WithMaterial(MatWood).
		WithFuel(wood.FuelCapacity).
		WithDensity(wood.Density))

	e.IgniteCircle(x, y, 1, MatNone, 500)
	e.Step()
	if !e.IsBurning(x, y) {
		t.Fatal("heated wood did not ignite")
	}

	prevFuel := wood.FuelCapacity
	sawChar := false
	for i := 0; i < 20000; i++ {
		e.Step()
		cell, ok := e.Grid().CellAt(x, y)
		if !ok {
			t.Fatal("cell vanished")
		}
		if cell.Material == MatWood {
			if cell.Burning {
				if cell.Fuel >= prevFuel {
					t.Fatalf("fuel did not decrease while burning: %v -> %v", prevFuel, cell.Fuel)
				}
				prevFuel = cell.Fuel
			}
			continue
		}
		if cell.Material != MatChar {
			t.Fatalf("wood burned into material %d", cell.Material)
		}
		sawChar = true
		break
	}
	if !sawChar {
		t.Fatal("wood never burned out")
	}
}

func TestWaterQuenchesBurningOil(t *testing.T) {
	e := New(quietConfig(32, 32), nil)
	x, y := 16, 16
	stonePocket(e, x, y)
	oil := e.Materials().Get(MatOil)
	e.Grid().Apply(x, y, Patch().
		WithMaterial(MatOil).
		WithFuel(oil.FuelCapacity).
		WithDensity(oil.Density).
		WithTemp(300))

	e.Step()
	if !e.IsBurning(x, y) {
		t.Fatal("hot oil did not ignite")
	}

	e.AddLiquidCircle(x, y, 0.5, MatWater, 1)
	cell, _ := e.Grid().CellAt(x, y)
	if cell.Wetness != 1 {
		t.Fatalf("wetness after dousing: got %v", cell.Wetness)
	}

	e.Step()
	if e.IsBurning(x, y) {
		t.Fatal("soaked oil kept burning")
	}
}

func TestWaterQuenchRingExtinguishesBeyondCircle(t *testing.T) {
	e := New(quietConfig(32, 32), nil)
	e.Grid().Apply(12, 12, Patch().
		WithMaterial(MatWood).
		WithFuel(50).
		WithTemp(400).
		WithBurning(true))
	e.Step()
	if !e.IsBurning(12, 12) {
		t.Fatal("wood did not stay lit")
	}

	// Water lands diagonally adjacent: outside the deposit radius but
	// inside the quench ring.
	e.AddLiquidCircle(11, 11, 1, MatWater, 1)
	c, _ := e.Grid().CellAt(12, 12)
	if c.Material != MatWood {
		t.Fatalf("quench ring replaced the material: %v", c.Material)
	}
	wood := e.Materials().Get(MatWood)
	if c.Wetness < wood.ExtinguishWet {
		t.Fatalf("ring wetness %v below extinguish threshold %v", c.Wetness, wood.ExtinguishWet)
	}
	e.Step()
	if e.IsBurning(12, 12) {
		t.Fatal("burning cell beyond the circle edge kept burning")
	}
}

func TestDiffusionConvergesWithoutOvershoot(t *testing.T) {
	cfg := quietConfig(2, 1)
	cfg.Params.DiffusionRate = 2.4
	e := New(cfg, nil)
	e.Grid().Apply(0, 0, Patch().WithTemp(500))

	hot, cold := float32(500), float32(20)
	for i := 0; i < 600; i++ {
		e.Step()
		a, _ := e.Grid().CellAt(0, 0)
		b, _ := e.Grid().CellAt(1, 0)
		if a.Temp < b.Temp {
			t.Fatalf("step %d: gradient flipped sign: %v < %v", i, a.Temp, b.Temp)
		}
		if a.Temp > hot || b.Temp < cold {
			t.Fatalf("step %d: overshoot: hot %v->%v cold %v->%v", i, hot, a.Temp, cold, b.Temp)
		}
		sum := float64(a.Temp) + float64(b.Temp)
		if sum < 519.5 || sum > 520.5 {
			t.Fatalf("step %d: heat not conserved: sum %v", i, sum)
		}
		hot, cold = a.Temp, b.Temp
	}
	if hot-cold > 1 {
		t.Fatalf("did not converge: hot %v cold %v", hot, cold)
	}
}

func TestDormantBorderDiffusionIsOrderIndependent(t *testing.T) {
	cfg := quietConfig(64, 64)
	cfg.Params.DiffusionRate = DefaultConfig().Params.DiffusionRate
	e := New(cfg, nil)

	// Allocate the chunk holding (32,32) without activating it.
	e.Grid().Apply(40, 40, Patch().WithTemp(float32(cfg.AmbientTemp)))
	// Two equally hot cells in different active chunks, both bordering the
	// same dormant cell. Whichever chunk scans first must not change what
	// the other reads across the border.
	e.Grid().Apply(31, 32, Patch().WithTemp(500))
	e.Grid().Apply(32, 31, Patch().WithTemp(500))

	e.Step()

	a, _ := e.Grid().CellAt(31, 32)
	b, _ := e.Grid().CellAt(32, 31)
	if a.Temp != b.Temp {
		t.Fatalf("border cells diverged: %v vs %v", a.Temp, b.Temp)
	}
	d, ok := e.Grid().CellAt(32, 32)
	if !ok || d.Temp <= float32(cfg.AmbientTemp) {
		t.Fatalf("dormant neighbor received no heat: ok=%v temp=%v", ok, d.Temp)
	}
}

func TestAdvanceRespectsFrameBudget(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FrameBudget = 1024
	cfg.BudgetCarryFactor = 1
	cfg.Params.WoodPatchCount = 0
	cfg.Params.OilPoolCount = 0
	cfg.Params.GrassChance = 0
	e := New(cfg, nil)
	e.AddHeatCircle(128, 96, 90, 300)

	if e.Stats().ActiveChunks < 2 {
		t.Fatalf("heat circle activated only %d chunks", e.Stats().ActiveChunks)
	}
	// The active region costs far more than the budget can ever bank, so
	// each frame degrades to exactly one tick instead of stalling.
	e.Advance(100 * time.Millisecond)
	if s := e.Stats(); s.StepsLastFrame != 1 || s.Tick != 1 {
		t.Fatalf("undersized budget should run exactly one step: steps=%d tick=%d",
			s.StepsLastFrame, s.Tick)
	}
	if s := e.Stats(); s.FrameCost <= cfg.FrameBudget {
		t.Fatalf("expected the single step to overdraw the budget, cost %d", s.FrameCost)
	}

	cfg.FrameBudget = 1 << 17
	e2 := New(cfg, nil)
	e2.AddHeatCircle(128, 96, 90, 300)
	e2.Advance(100 * time.Millisecond)
	s := e2.Stats()
	if s.StepsLastFrame < 1 || s.Tick < 1 {
		t.Fatalf("large budget ran no steps: %+v", s)
	}
	if s.FrameCost > cfg.FrameBudget {
		t.Fatalf("frame cost %d exceeded budget %d", s.FrameCost, cfg.FrameBudget)
	}
}

func TestFullyActiveWorldStillAdvances(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Params.WoodPatchCount = 0
	cfg.Params.OilPoolCount = 0
	cfg.Params.GrassChance = 0
	e := New(cfg, nil)
	// Heat every chunk so one step costs more than the budget can carry.
	e.AddHeatCircle(cfg.Width/2, cfg.Height/2, 400, 300)
	if cost := e.Stats().ActiveChunks * ChunkSize * ChunkSize; cost <= cfg.FrameBudget*cfg.BudgetCarryFactor {
		t.Fatalf("step cost %d fits the carry ceiling, scenario too small", cost)
	}

	for i := 0; i < 10; i++ {
		before := e.Tick()
		e.Advance(100 * time.Millisecond)
		if e.Tick() != before+1 {
			t.Fatalf("frame %d: tick went %d -> %d, want one step per frame", i, before, e.Tick())
		}
	}
}

func TestDamageInBoxFormula(t *testing.T) {
	e := New(quietConfig(64, 64), nil)
	for _, x := range []int{10, 11} {
		e.Grid().Apply(x, 10, Patch().
			WithMaterial(MatWood).
			WithFuel(50).
			WithTemp(300).
			WithBurning(true))
	}

	r := e.DamageInBox(10, 10, 11, 10)
	if r.BurningCells != 2 {
		t.Fatalf("burning cells: got %d", r.BurningCells)
	}
	if r.AvgTemp != 300 {
		t.Fatalf("avg temp: got %v", r.AvgTemp)
	}
	// 0.5*2 + (300-100)/100
	if r.Damage != 3 {
		t.Fatalf("damage: got %v", r.Damage)
	}

	// Corner order must not matter.
	if r2 := e.DamageInBox(11, 10, 10, 10); r2 != r {
		t.Fatalf("swapped corners gave %+v, want %+v", r2, r)
	}

	// Cold empty space deals nothing.
	if r3 := e.DamageInBox(40, 40, 45, 45); r3.Damage != 0 || r3.BurningCells != 0 {
		t.Fatalf("empty box: %+v", r3)
	}
}

func TestQueriesOutOfBoundsAreSilent(t *testing.T) {
	e := New(quietConfig(32, 32), nil)

	if e.IsBurning(-1, -1) || e.IsBurning(32, 0) {
		t.Fatal("out-of-bounds cell reported burning")
	}
	if r := e.DamageInBox(-50, -50, -40, -40); r != (DamageReport{}) {
		t.Fatalf("fully out-of-bounds box: %+v", r)
	}

	e.IgniteCircle(-100, -100, 5, MatWood, 500)
	e.AddHeatCircle(200, 200, 5, 500)
	e.AddLiquidCircle(-100, 16, 5, MatWater, 1)
	e.IgniteCircle(16, 16, -3, MatWood, 500)

	if n := e.Grid().AllocatedChunks(); n != 0 {
		t.Fatalf("out-of-bounds ops allocated %d chunks", n)
	}
}

func TestPhaseTransitions(t *testing.T) {
	e := New(quietConfig(32, 32), nil)
	x, y := 16, 16
	stonePocket(e, x, y)
	water := e.Materials().Get(MatWater)
	e.Grid().Apply(x, y, Patch().
		WithMaterial(MatWater).
		WithDensity(water.Density).
		WithWetness(1).
		WithTemp(100))

	e.Step()
	e.Step()
	cell, _ := e.Grid().CellAt(x, y)
	if cell.Material != MatSteam {
		t.Fatalf("boiling water: got material %d", cell.Material)
	}
	if cell.Wetness != 0 {
		t.Fatalf("steam wetness: got %v", cell.Wetness)
	}

	e.Grid().Apply(x, y, Patch().WithTemp(60))
	e.Step()
	e.Step()
	cell, _ = e.Grid().CellAt(x, y)
	if cell.Material != MatWater {
		t.Fatalf("cooled steam: got material %d", cell.Material)
	}
	if cell.Wetness != 1 {
		t.Fatalf("condensed water should land soaked: got %v", cell.Wetness)
	}
}

func TestWaterSettlesOntoFloor(t *testing.T) {
	e := New(quietConfig(32, 32), nil)
	stone := e.Materials().Get(MatStone)
	for x := 0; x < 32; x++ {
		e.Grid().Apply(x, 30, Patch().WithMaterial(MatStone).WithDensity(stone.Density))
	}
	water := e.Materials().Get(MatWater)
	e.Grid().Apply(8, 20, Patch().
		WithMaterial(MatWater).
		WithDensity(water.Density).
		WithWetness(1))

	for i := 0; i < 600; i++ {
		e.Step()
	}

	found := 0
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			cell, ok := e.Grid().CellAt(x, y)
			if ok && cell.Material == MatWater {
				found++
				if y != 29 {
					t.Fatalf("water at (%d,%d), want floor row 29", x, y)
				}
			}
		}
	}
	if found != 1 {
		t.Fatalf("water cell count: got %d", found)
	}
}

func TestHotSteamRises(t *testing.T) {
	e := New(quietConfig(16, 32), nil)
	steam := e.Materials().Get(MatSteam)
	e.Grid().Apply(8, 24, Patch().
		WithMaterial(MatSteam).
		WithDensity(steam.Density).
		WithTemp(150))

	for i := 0; i < 600; i++ {
		e.Step()
	}

	top := 32
	for y := 0; y < 32; y++ {
		cell, ok := e.Grid().CellAt(8, y)
		if ok && cell.Material == MatSteam {
			top = y
			break
		}
	}
	if top > 2 {
		t.Fatalf("steam stalled at row %d", top)
	}
}

func TestIdleChunksDeactivate(t *testing.T) {
	cfg := quietConfig(64, 64)
	cfg.Params.CoolRate = 20
	cfg.DeactivationDelay = 0.5
	e := New(cfg, nil)
	e.AddHeatCircle(16, 16, 1, 400)

	if e.Stats().ActiveChunks == 0 {
		t.Fatal("heat did not activate a chunk")
	}
	for i := 0; i < 200; i++ {
		e.Step()
	}
	s := e.Stats()
	if s.ActiveChunks != 0 {
		t.Fatalf("cooled chunks still active: %d", s.ActiveChunks)
	}
	if s.AllocatedChunks == 0 {
		t.Fatal("allocation should survive deactivation")
	}
}

func TestResetDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 96
	cfg.Height = 64
	e := New(cfg, nil)

	run := func(seed int64) []uint8 {
		e.Reset(seed)
		e.AddHeatCircle(48, 58, 6, 600)
		for i := 0; i < 60; i++ {
			e.Step()
		}
		return slices.Clone(e.Cells())
	}

	a := run(0)
	b := run(0)
	if !slices.Equal(a, b) {
		t.Fatal("same seed diverged")
	}

	c := run(7)
	if slices.Equal(a, c) {
		t.Fatal("different seeds produced identical worlds")
	}
}

func TestStateStaysClampedUnderLoad(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 96
	cfg.Height = 64
	e := New(cfg, nil)
	e.Reset(0)
	e.AddHeatCircle(48, 58, 8, 900)
	e.AddLiquidCircle(20, 58, 4, MatWater, 1)
	for i := 0; i < 300; i++ {
		e.Step()
	}

	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			cell, ok := e.Grid().CellAt(x, y)
			if !ok {
				continue
			}
			m := e.Materials().Get(cell.Material)
			if cell.Temp < 0 || cell.Temp > m.MaxTemp {
				t.Fatalf("(%d,%d) %s temp out of range: %v", x, y, m.Name, cell.Temp)
			}
			if cell.Fuel < 0 || cell.Fuel > m.FuelCapacity {
				t.Fatalf("(%d,%d) %s fuel out of range: %v", x, y, m.Name, cell.Fuel)
			}
			if cell.Wetness < 0 || cell.Wetness > 1 || cell.Oxygen < 0 || cell.Oxygen > 1 {
				t.Fatalf("(%d,%d) wet/oxy out of range: %v %v", x, y, cell.Wetness, cell.Oxygen)
			}
			if cell.Burning && (!m.Combustible() || cell.Fuel <= 0) {
				t.Fatalf("(%d,%d) %s burning without fuel", x, y, m.Name)
			}
		}
	}
}
