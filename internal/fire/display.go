package fire

// Display cell encoding: the low nibble carries the material id, bit 4 marks
// a burning cell and bit 5 a hot one. Renderers index the palette with the
// full byte.
const (
	displayMatMask = 0x0f
	displayBurnBit = 0x10
	displayHotBit  = 0x20
	displayHotTemp = 200
	displayStates  = 64
)

// Cells returns the row-major display buffer refreshed after the last Advance
// or Step. The buffer is reused between frames.
func (e *Engine) Cells() []uint8 {
	return e.display.Cells()
}

// refreshDisplay re-encodes every allocated chunk into the display buffer.
// Slots that were never allocated keep their zero value, which encodes
// ambient air.
func (e *Engine) refreshDisplay() {
	cells := e.display.Cells()
	w := e.grid.width
	h := e.grid.height
	for slot, c := range e.grid.chunks {
		if c == nil {
			continue
		}
		baseX := (slot % e.grid.chunksX) * ChunkSize
		baseY := (slot / e.grid.chunksX) * ChunkSize
		for lx := 0; lx < ChunkSize; lx++ {
			gx := baseX + lx
			if gx >= w {
				break
			}
			for ly := 0; ly < ChunkSize; ly++ {
				gy := baseY + ly
				if gy >= h {
					break
				}
				i := cellIndex(lx, ly)
				v := c.mat[i] & displayMatMask
				if c.burning[i] {
					v |= displayBurnBit
				}
				if c.temp[i] > displayHotTemp {
					v |= displayHotBit
				}
				cells[gy*w+gx] = v
			}
		}
	}
}

// HeatMask returns a row-major field of temperatures normalized to [0, 1]
// against a 1000 degree ceiling, for overlay rendering. The slice is reused.
func (e *Engine) HeatMask() []float32 {
	if e.heatMask == nil {
		e.heatMask = make([]float32, e.cfg.Width*e.cfg.Height)
	}
	w := e.grid.width
	for y := 0; y < e.grid.height; y++ {
		for x := 0; x < w; x++ {
			cell := e.grid.cellOrAmbient(x, y)
			e.heatMask[y*w+x] = clamp32(cell.Temp/1000, 0, 1)
		}
	}
	return e.heatMask
}

// OxygenMask returns a row-major field of oxygen levels in [0, 1]. The slice
// is reused.
func (e *Engine) OxygenMask() []float32 {
	if e.oxyMask == nil {
		e.oxyMask = make([]float32, e.cfg.Width*e.cfg.Height)
	}
	w := e.grid.width
	for y := 0; y < e.grid.height; y++ {
		for x := 0; x < w; x++ {
			e.oxyMask[y*w+x] = e.grid.cellOrAmbient(x, y).Oxygen
		}
	}
	return e.oxyMask
}

// ActiveChunkRects returns the pixel rectangles of currently active chunks as
// (x, y, w, h) tuples, clipped to the world, for debug overlays.
func (e *Engine) ActiveChunkRects() [][4]int {
	var rects [][4]int
	for _, c := range e.grid.chunks {
		if c == nil || !c.active {
			continue
		}
		x := c.cx * ChunkSize
		y := c.cy * ChunkSize
		cw := ChunkSize
		ch := ChunkSize
		if x+cw > e.grid.width {
			cw = e.grid.width - x
		}
		if y+ch > e.grid.height {
			ch = e.grid.height - y
		}
		rects = append(rects, [4]int{x, y, cw, ch})
	}
	return rects
}

// Palette maps every display byte to an RGBA color. Burning states glow
// orange over the base color and hot states shift toward red.
func Palette() [displayStates][4]uint8 {
	base := map[MaterialID][4]uint8{
		MatAir:      {12, 12, 18, 255},
		MatStone:    {94, 94, 102, 255},
		MatWood:     {110, 74, 42, 255},
		MatCloth:    {176, 162, 132, 255},
		MatGrass:    {62, 122, 48, 255},
		MatChar:     {38, 32, 30, 255},
		MatAsh:      {120, 116, 110, 255},
		MatOil:      {52, 44, 20, 255},
		MatGasoline: {128, 110, 48, 255},
		MatOilVapor: {96, 88, 56, 255},
		MatWater:    {36, 70, 160, 255},
		MatSteam:    {178, 186, 196, 255},
		MatSmoke:    {70, 70, 74, 255},
	}
	var pal [displayStates][4]uint8
	for v := 0; v < displayStates; v++ {
		id := MaterialID(v & displayMatMask)
		col, ok := base[id]
		if !ok {
			col = base[MatAir]
		}
		if v&displayHotBit != 0 {
			col = tint(col, [4]uint8{200, 60, 20, 255}, 0.35)
		}
		if v&displayBurnBit != 0 {
			col = tint(col, [4]uint8{255, 150, 30, 255}, 0.75)
		}
		pal[v] = col
	}
	return pal
}

func tint(c, over [4]uint8, f float32) [4]uint8 {
	mix := func(a, b uint8) uint8 {
		return uint8(float32(a)*(1-f) + float32(b)*f)
	}
	return [4]uint8{mix(c[0], over[0]), mix(c[1], over[1]), mix(c[2], over[2]), 255}
}
