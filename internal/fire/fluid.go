package fire

// densityEps is the minimum density gap that drives a fluid move.
const densityEps = 0.01

// fluidPhase moves liquids and gases by swapping whole cells with their
// targets. Updates run on a checkerboard: each tick visits only cells whose
// (x+y) parity matches the tick parity, and every swap target has the
// opposite parity, so each visited cell initiates at most one move and the
// pattern needs no double buffering. A target cell can still take part in
// more than one swap per tick. Move rates are doubled to compensate for each
// cell being visited every other tick.
//
// Cells that did not move also evaluate phase transitions and drying here.
func (e *Engine) fluidPhase(active []*chunk, dt float32) {
	parity := int(e.tick) & 1
	for _, c := range active {
		baseX := c.cx * ChunkSize
		baseY := c.cy * ChunkSize
		for lx := 0; lx < ChunkSize; lx++ {
			gx := baseX + lx
			if gx >= e.grid.width {
				break
			}
			for ly := 0; ly < ChunkSize; ly++ {
				gy := baseY + ly
				if gy >= e.grid.height {
					break
				}
				if (gx+gy)&1 != parity {
					continue
				}
				i := cellIndex(lx, ly)
				id := MaterialID(c.mat[i])
				m := e.mats.Get(id)

				moved := false
				if m.Flow != FlowSolid && id != MatAir {
					moved = e.trySettle(c, i, gx, gy, m, dt)
					if !moved {
						moved = e.tryRise(c, i, gx, gy, m, dt)
					}
					if !moved {
						moved = e.tryFlow(c, i, gx, gy, m, dt, parity)
					}
				}
				if moved {
					// The cell now holds whatever it swapped with; it gets
					// its transition check next tick.
					continue
				}
				e.transition(c, i)
				e.dryCell(c, i, m, dt)
			}
		}
	}
}

// trySettle drops the cell into the one below when it is denser.
func (e *Engine) trySettle(c *chunk, i, x, y int, m Material, dt float32) bool {
	ty := y + 1
	if !e.grid.InBounds(x, ty) {
		return false
	}
	tc, ti := e.grid.chunkAt(x, ty, true)
	tm := e.mats.Get(MaterialID(tc.mat[ti]))
	if tm.Flow == FlowSolid {
		return false
	}
	gap := c.dens[i] - tc.dens[ti]
	if gap <= densityEps {
		return false
	}
	chance := gap * e.tun.settleRate * dt * 2
	if chance > e.tun.settleCap {
		chance = e.tun.settleCap
	}
	if !e.rng.Chance(float64(chance)) {
		return false
	}
	e.swapCells(c, i, tc, ti)
	return true
}

// tryRise lifts the cell through a denser one above, or a hot buoyant gas
// through any non-solid neighbor above.
func (e *Engine) tryRise(c *chunk, i, x, y int, m Material, dt float32) bool {
	ty := y - 1
	if !e.grid.InBounds(x, ty) {
		return false
	}
	tc, ti := e.grid.chunkAt(x, ty, true)
	tm := e.mats.Get(MaterialID(tc.mat[ti]))
	if tm.Flow == FlowSolid {
		return false
	}
	gap := tc.dens[ti] - c.dens[i]
	var perSec float32
	if gap > densityEps {
		perSec = gap * e.tun.buoyRate
	}
	if m.Buoyancy > 0 && c.temp[i] > e.tun.buoyThreshold {
		perSec += m.Buoyancy * e.tun.buoyRate * 0.5
	}
	if perSec <= 0 {
		return false
	}
	chance := perSec * dt * 2
	if chance > e.tun.buoyCap {
		chance = e.tun.buoyCap
	}
	if !e.rng.Chance(float64(chance)) {
		return false
	}
	e.swapCells(c, i, tc, ti)
	return true
}

// tryFlow spreads the cell sideways toward the less dense of its horizontal
// neighbors. Liquids only flow once they cannot fall; gases drift freely.
func (e *Engine) tryFlow(c *chunk, i, x, y int, m Material, dt float32, parity int) bool {
	if m.Flow == FlowLiquid {
		by := y + 1
		if e.grid.InBounds(x, by) {
			bc, bi := e.grid.chunkAt(x, by, false)
			if bc != nil {
				bm := e.mats.Get(MaterialID(bc.mat[bi]))
				if bm.Flow != FlowSolid && c.dens[i]-bc.dens[bi] > densityEps {
					// Still falling; let settling handle it.
					return false
				}
			} else {
				// Untouched space below is ambient air, fall first.
				return false
			}
		}
	}

	gapFor := func(nx int) float32 {
		if !e.grid.InBounds(nx, y) {
			return 0
		}
		nc, ni := e.grid.chunkAt(nx, y, false)
		if nc == nil {
			return c.dens[i] - e.grid.airDensity
		}
		nm := e.mats.Get(MaterialID(nc.mat[ni]))
		if nm.Flow == FlowSolid {
			return 0
		}
		return c.dens[i] - nc.dens[ni]
	}

	gapL := gapFor(x - 1)
	gapR := gapFor(x + 1)
	dir := 0
	gap := float32(0)
	switch {
	case gapL > gapR && gapL > densityEps:
		dir, gap = -1, gapL
	case gapR > gapL && gapR > densityEps:
		dir, gap = 1, gapR
	case gapL > densityEps:
		// Tie; alternate by tick parity.
		gap = gapL
		dir = -1
		if parity == 1 {
			dir = 1
		}
	default:
		return false
	}

	rate := e.tun.flowRate
	if m.Flow == FlowGas {
		rate = e.tun.gasFlowRate
	}
	chance := gap * rate * dt * 2
	if chance > e.tun.flowCap {
		chance = e.tun.flowCap
	}
	if !e.rng.Chance(float64(chance)) {
		return false
	}
	tc, ti := e.grid.chunkAt(x+dir, y, true)
	e.swapCells(c, i, tc, ti)
	return true
}

// transition applies the cell's deterministic temperature phase change, if
// its material has one and the threshold is crossed.
func (e *Engine) transition(c *chunk, i int) {
	m := e.mats.Get(MaterialID(c.mat[i]))
	if !m.HasPhase {
		return
	}
	T := c.temp[i]
	if m.PhaseAbove {
		if T < m.PhaseTemp {
			return
		}
	} else if T >= m.PhaseTemp {
		return
	}
	to := e.mats.Get(m.PhaseTo)
	c.mat[i] = uint8(m.PhaseTo)
	c.dens[i] = to.Density
	c.burning[i] = false
	if c.fuel[i] > to.FuelCapacity {
		c.fuel[i] = to.FuelCapacity
	}
	switch m.PhaseTo {
	case MatWater:
		// Condensation lands soaked.
		c.wet[i] = 1
	case MatSteam:
		c.wet[i] = 0
	}
	c.temp[i] = clamp32(T, 0, to.MaxTemp)
}

// dryCell evaporates surface wetness, faster when hot. Water itself stays
// wet; it disappears through the steam transition instead.
func (e *Engine) dryCell(c *chunk, i int, m Material, dt float32) {
	if c.wet[i] <= 0 || MaterialID(c.mat[i]) == MatWater {
		return
	}
	rate := e.tun.dryRate
	if d := c.temp[i] - e.tun.ambient; d > 0 {
		rate += d * e.tun.dryTempRate
	}
	c.wet[i] = clamp32(c.wet[i]-rate*dt*2, 0, 1)
}

// swapCells exchanges the full state of two cells and marks both chunks
// active so a fluid crossing a border keeps its destination stepping.
func (e *Engine) swapCells(a *chunk, ai int, b *chunk, bi int) {
	a.mat[ai], b.mat[bi] = b.mat[bi], a.mat[ai]
	a.temp[ai], b.temp[bi] = b.temp[bi], a.temp[ai]
	a.fuel[ai], b.fuel[bi] = b.fuel[bi], a.fuel[ai]
	a.wet[ai], b.wet[bi] = b.wet[bi], a.wet[ai]
	a.oxy[ai], b.oxy[bi] = b.oxy[bi], a.oxy[ai]
	a.dens[ai], b.dens[bi] = b.dens[bi], a.dens[ai]
	a.burning[ai], b.burning[bi] = b.burning[bi], a.burning[ai]
	e.grid.activate(a)
	e.grid.activate(b)
}
