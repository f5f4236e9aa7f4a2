package fire

// maxExchange caps the per-neighbor exchange coefficient. Four neighbors at
// the cap together move at most 80% of a gradient in one tick, so the field
// converges monotonically and never overshoots regardless of tuning.
const maxExchange = 0.2

// depositEps is the smallest cross-border flux worth allocating a chunk for.
const depositEps = 0.01

// diffusionPhase relaxes temperature and oxygen across 4-neighborhoods using
// ping-pong buffers, so every cell reads the previous tick's values and the
// result is independent of scan order. It also applies convection lift,
// passive cooling toward ambient, and oxygen recovery.
//
// Deposits that cross into dormant or unallocated chunks are queued and
// applied after the pass, so every stepping cell reads pre-pass border values
// no matter which chunk scans first. Significant deposits activate the
// target, which is how heat fronts wake neighboring chunks.
func (e *Engine) diffusionPhase(active []*chunk, dt float32) {
	for _, c := range active {
		c.seedBuffers()
		c.seeded = true
	}

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
				T := c.temp[i]
				O := c.oxy[i]

				var dT, dO float32
				for _, d := range offsets4 {
					nx, ny := gx+d[0], gy+d[1]
					if !e.grid.InBounds(nx, ny) {
						continue
					}
					nc, ni := e.grid.chunkAt(nx, ny, false)
					var nT, nO float32
					var nm Material
					if nc == nil {
						nT, nO = e.tun.ambient, 1
						nm = e.mats.Get(MatAir)
					} else {
						nT, nO = nc.temp[ni], nc.oxy[ni]
						nm = e.mats.Get(MaterialID(nc.mat[ni]))
					}

					k := (m.Conductivity + nm.Conductivity) * 0.5 * e.tun.diffusionRate * dt / m.HeatCapacity
					if k > maxExchange {
						k = maxExchange
					}
					dT += (nT - T) * k

					// Oxygen only moves through breathable space.
					if m.Flow != FlowSolid && nm.Flow != FlowSolid {
						ko := e.tun.oxyDiffusion * dt
						if ko > maxExchange {
							ko = maxExchange
						}
						dO += (nO - O) * ko
					}

					// The neighbor is not stepping this tick, so it cannot
					// pull its own share of the exchange; push it instead.
					if nc == nil || !nc.seeded {
						nk := (m.Conductivity + nm.Conductivity) * 0.5 * e.tun.diffusionRate * dt / nm.HeatCapacity
						if nk > maxExchange {
							nk = maxExchange
						}
						e.depositHeat(nx, ny, (T-nT)*nk)
					}
				}

				// Hot buoyant cells leak heat upward.
				if m.Buoyancy > 0 && T > e.tun.buoyThreshold && gy > 0 {
					lift := (T - e.tun.ambient) * m.Buoyancy * e.tun.convectionRate * dt
					dT -= lift
					e.depositHeat(gx, gy-1, lift)
				}

				dT += (e.tun.ambient - T) * e.tun.coolRate * dt
				dO += (1 - O) * e.tun.oxyRecoverRate * dt

				c.tempNext[i] = clamp32(c.tempNext[i]+dT, 0, m.MaxTemp)
				c.oxyNext[i] = clamp32(c.oxyNext[i]+dO, 0, 1)
			}
		}
	}

	for _, c := range active {
		c.swapBuffers()
		c.seeded = false
	}
	e.flushDeposits()
}

// heatDeposit is a cross-border flux queued during diffusion and applied
// once the pass is over.
type heatDeposit struct {
	x, y  int
	delta float32
}

// depositHeat adds heat to an arbitrary cell mid-phase. Seeded chunks take
// the delta in their next buffer; dormant and unallocated targets are queued
// so the pass never mutates values another stepping chunk may still read.
func (e *Engine) depositHeat(x, y int, delta float32) {
	if !e.grid.InBounds(x, y) || delta == 0 {
		return
	}
	c, i := e.grid.chunkAt(x, y, false)
	if c != nil && c.seeded {
		m := e.mats.Get(MaterialID(c.mat[i]))
		c.tempNext[i] = clamp32(c.tempNext[i]+delta, 0, m.MaxTemp)
		return
	}
	e.deposits = append(e.deposits, heatDeposit{x, y, delta})
}

// flushDeposits applies queued border fluxes and wakes targets that depart
// from ambient. Unallocated chunks are only created for fluxes above
// depositEps, so reads near cold borders stay allocation free.
func (e *Engine) flushDeposits() {
	for _, dep := range e.deposits {
		c, i := e.grid.chunkAt(dep.x, dep.y, false)
		if c == nil {
			if dep.delta < depositEps && dep.delta > -depositEps {
				continue
			}
			c, i = e.grid.chunkAt(dep.x, dep.y, true)
		}
		m := e.mats.Get(MaterialID(c.mat[i]))
		c.temp[i] = clamp32(c.temp[i]+dep.delta, 0, m.MaxTemp)
		d := c.temp[i] - e.tun.ambient
		if d > activityTempEps || d < -activityTempEps {
			e.grid.activate(c)
		}
	}
	e.deposits = e.deposits[:0]
}
