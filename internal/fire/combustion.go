package fire

// combustionPhase handles ignition, fuel consumption, heat release, smoke
// emission, burnout and probabilistic spread. It runs in place on the current
// arrays, after diffusion has settled the tick's temperature field.
func (e *Engine) combustionPhase(active []*chunk, dt float32) {
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
				i := cellIndex(lx, ly)
				m := e.mats.Get(MaterialID(c.mat[i]))
				if !m.Combustible() {
					c.burning[i] = false
					continue
				}

				if !c.burning[i] {
					ignites := c.fuel[i] > 0 &&
						c.temp[i] >= m.IgnitionTemp &&
						c.oxy[i] > e.tun.oxygenMin &&
						c.wet[i] < m.ExtinguishWet
					if !ignites {
						continue
					}
					c.burning[i] = true
				} else if c.wet[i] >= m.ExtinguishWet || c.oxy[i] <= e.tun.oxygenMin {
					// Starved or soaked cells go out no matter how much fuel
					// remains.
					c.burning[i] = false
					continue
				}

				oxyF := c.oxy[i]
				if oxyF > 1 {
					oxyF = 1
				}
				dryF := float32(1)
				if m.ExtinguishWet > 0 {
					dryF = clamp32(1-c.wet[i]/m.ExtinguishWet, 0, 1)
				}
				tempF := clamp32(c.temp[i]/m.IgnitionTemp, 1, e.tun.tempFactorCap)

				burn := m.BurnRate * m.Flammability * oxyF * dryF * tempF * e.tun.combustionRate * dt
				if burn > c.fuel[i] {
					burn = c.fuel[i]
				}
				c.fuel[i] -= burn
				c.oxy[i] = clamp32(c.oxy[i]-burn*oxygenPerFuel, 0, 1)
				c.temp[i] = clamp32(c.temp[i]+burn*e.tun.heatPerFuel/m.HeatCapacity, 0, m.MaxTemp)

				// At most one smoke deposit per burning cell per tick.
				p := float64(burn * m.SmokeYield * e.tun.smokeScale)
				if p > 0 {
					if p > 1 {
						p = 1
					}
					if e.rng.Chance(p) {
						e.depositSmoke(gx, gy, c.temp[i])
					}
				}

				if c.fuel[i] <= 0 {
					e.burnOut(c, i)
					continue
				}
				e.spreadFrom(gx, gy, c.temp[i], dt)
			}
		}
	}
}

// oxygenPerFuel is how much local oxygen one unit of consumed fuel draws.
const oxygenPerFuel = 0.5

// depositSmoke converts a random adjacent air cell into smoke carrying half
// the source temperature. With no free neighbor the smoke is simply lost.
func (e *Engine) depositSmoke(x, y int, srcTemp float32) {
	cand := e.grid.Neighbors4(x, y, e.scratch[:0])
	n := 0
	for _, xy := range cand {
		if e.grid.cellOrAmbient(xy[0], xy[1]).Material == MatAir {
			cand[n] = xy
			n++
		}
	}
	e.scratch = cand[:0]
	if n == 0 {
		return
	}
	pick := cand[e.rng.IntN(n)]
	sm := e.mats.Get(MatSmoke)
	t := srcTemp * 0.5
	if t < e.tun.ambient {
		t = e.tun.ambient
	}
	e.grid.Apply(pick[0], pick[1], Patch().
		WithMaterial(MatSmoke).
		WithTemp(t).
		WithDensity(sm.Density))
}

// burnOut swaps an exhausted cell to its burned form. The residue keeps the
// cell's temperature (clamped to its own maximum), so hot char can reignite
// and smolder down to ash.
func (e *Engine) burnOut(c *chunk, i int) {
	id := e.mats.BurnedForm(MaterialID(c.mat[i]))
	m := e.mats.Get(id)
	c.mat[i] = uint8(id)
	c.fuel[i] = m.FuelCapacity
	c.dens[i] = m.Density
	c.burning[i] = false
	c.temp[i] = clamp32(c.temp[i], 0, m.MaxTemp)
}

// spreadFrom gives each of the 8 neighbors an independent chance, scaled by
// the source temperature, of receiving a pulse of heat. Spread only raises
// temperature; whether the neighbor actually ignites is decided by its own
// ignition check against its own material, fuel, oxygen and wetness.
func (e *Engine) spreadFrom(x, y int, srcTemp float32, dt float32) {
	p := srcTemp * e.tun.spreadFactor
	if p > e.tun.spreadCap {
		p = e.tun.spreadCap
	}
	chance := float64(p * dt)
	if chance <= 0 {
		return
	}
	for _, d := range offsets8 {
		nx, ny := x+d[0], y+d[1]
		if !e.grid.InBounds(nx, ny) {
			continue
		}
		if e.rng.Chance(chance) {
			e.grid.AddHeat(nx, ny, e.tun.spreadHeat)
		}
	}
}
