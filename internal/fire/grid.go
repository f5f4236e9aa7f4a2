package fire

import "math"

// Grid owns the chunk collection for a bounded world. Chunks are allocated
// lazily on first write and addressed through a flat slice keyed by
// cy*chunksX+cx; reads outside the world or into unallocated chunks yield an
// empty result and never allocate.
//
// The active-chunk set is a derived view: ActiveChunks reconciles it from the
// per-chunk flags on every call, it is never tracked independently.
type Grid struct {
	mats *MaterialSet

	width, height    int // world size in cells
	chunksX, chunksY int
	chunks           []*chunk

	ambient    float32
	airDensity float32

	// now is the engine's current tick, stamped into chunks on activation.
	now uint64
}

// NewGrid constructs a grid covering width x height cells. The material set is
// shared, read-only, and must outlive the grid.
func NewGrid(width, height int, mats *MaterialSet, ambient float32) *Grid {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	chunksX := (width + ChunkSize - 1) / ChunkSize
	chunksY := (height + ChunkSize - 1) / ChunkSize
	return &Grid{
		mats:       mats,
		width:      width,
		height:     height,
		chunksX:    chunksX,
		chunksY:    chunksY,
		chunks:     make([]*chunk, chunksX*chunksY),
		ambient:    ambient,
		airDensity: mats.Get(MatAir).Density,
	}
}

// Size reports the world dimensions in cells.
func (g *Grid) Size() (int, int) { return g.width, g.height }

// InBounds reports whether the cell coordinate lies inside the world.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// chunkAt returns the chunk covering (x, y), optionally allocating it. The
// second result is the columnar cell index. Out-of-bounds coordinates return
// nil regardless of create.
func (g *Grid) chunkAt(x, y int, create bool) (*chunk, int) {
	if !g.InBounds(x, y) {
		return nil, 0
	}
	cx, cy := x/ChunkSize, y/ChunkSize
	slot := cy*g.chunksX + cx
	c := g.chunks[slot]
	if c == nil {
		if !create {
			return nil, 0
		}
		c = newChunk(cx, cy, g.airDensity, g.ambient)
		g.chunks[slot] = c
	}
	return c, cellIndex(x-cx*ChunkSize, y-cy*ChunkSize)
}

// CellAt reads one cell. The second result is false when the coordinate is
// out of bounds or its chunk has never been touched; callers treat that as
// ambient air.
func (g *Grid) CellAt(x, y int) (Cell, bool) {
	c, i := g.chunkAt(x, y, false)
	if c == nil {
		return Cell{}, false
	}
	return c.cell(i), true
}

// ambientCell is the implied content of untouched space.
func (g *Grid) ambientCell() Cell {
	return Cell{Material: MatAir, Temp: g.ambient, Oxygen: 1, Density: g.airDensity}
}

// cellOrAmbient reads a cell, synthesizing ambient air for absent chunks. The
// coordinate must be in bounds.
func (g *Grid) cellOrAmbient(x, y int) Cell {
	if cell, ok := g.CellAt(x, y); ok {
		return cell
	}
	return g.ambientCell()
}

// Apply merges a patch into the cell at (x, y), creating the owning chunk
// lazily. If the merged state shows activity the chunk is re-activated.
// Writes outside the world bounds are silently ignored.
func (g *Grid) Apply(x, y int, p CellPatch) {
	if p.Empty() {
		return
	}
	c, i := g.chunkAt(x, y, true)
	if c == nil {
		return
	}
	cell := c.cell(i)
	p.applyTo(&cell, g.mats)
	c.setCell(i, cell)
	if g.cellActive(cell) {
		g.activate(c)
	}
}

// AddHeat deposits a temperature delta into one cell, clamped to the material
// maximum, activating the chunk when the result shows activity. Depositing
// into untouched space allocates the chunk only when the delta is meaningful.
func (g *Grid) AddHeat(x, y int, delta float32) {
	if delta == 0 || !g.InBounds(x, y) {
		return
	}
	c, i := g.chunkAt(x, y, false)
	if c == nil {
		if delta > -0.01 && delta < 0.01 {
			return
		}
		c, i = g.chunkAt(x, y, true)
	}
	m := g.mats.Get(MaterialID(c.mat[i]))
	c.temp[i] = clamp32(c.temp[i]+delta, 0, m.MaxTemp)
	if c.temp[i] != g.ambient {
		g.activate(c)
	}
}

var (
	offsets4 = [4][2]int{{0, -1}, {-1, 0}, {1, 0}, {0, 1}}
	offsets8 = [8][2]int{
		{-1, -1}, {0, -1}, {1, -1},
		{-1, 0}, {1, 0},
		{-1, 1}, {0, 1}, {1, 1},
	}
)

// Neighbors4 appends the in-bounds 4-connected neighbor coordinates of (x, y)
// to buf. Off-grid neighbors are never synthesized.
func (g *Grid) Neighbors4(x, y int, buf [][2]int) [][2]int {
	for _, d := range offsets4 {
		nx, ny := x+d[0], y+d[1]
		if g.InBounds(nx, ny) {
			buf = append(buf, [2]int{nx, ny})
		}
	}
	return buf
}

// Neighbors8 appends the in-bounds 8-connected neighbor coordinates of (x, y)
// to buf.
func (g *Grid) Neighbors8(x, y int, buf [][2]int) [][2]int {
	for _, d := range offsets8 {
		nx, ny := x+d[0], y+d[1]
		if g.InBounds(nx, ny) {
			buf = append(buf, [2]int{nx, ny})
		}
	}
	return buf
}

// ActivateCircle force-activates every chunk intersecting the circle, so
// externally triggered effects are guaranteed a simulation pass on the next
// tick even in dormant regions. Chunks are allocated as needed; the circle is
// clipped to the world.
func (g *Grid) ActivateCircle(cx, cy int, radius float64) {
	if radius <= 0 {
		return
	}
	r := int(math.Ceil(radius))
	if cx+r < 0 || cx-r >= g.width || cy+r < 0 || cy-r >= g.height {
		return
	}
	minX, maxX := clampInt(cx-r, 0, g.width-1), clampInt(cx+r, 0, g.width-1)
	minY, maxY := clampInt(cy-r, 0, g.height-1), clampInt(cy+r, 0, g.height-1)
	for ccy := minY / ChunkSize; ccy <= maxY/ChunkSize; ccy++ {
		for ccx := minX / ChunkSize; ccx <= maxX/ChunkSize; ccx++ {
			c, _ := g.chunkAt(ccx*ChunkSize, ccy*ChunkSize, true)
			if c != nil {
				g.activate(c)
			}
		}
	}
}

// ActiveChunks appends every chunk whose active flag is set, reconciling the
// set from the flags in allocation order.
func (g *Grid) ActiveChunks(buf []*chunk) []*chunk {
	for _, c := range g.chunks {
		if c != nil && c.active {
			buf = append(buf, c)
		}
	}
	return buf
}

// AllocatedChunks reports how many chunks have been materialized.
func (g *Grid) AllocatedChunks() int {
	n := 0
	for _, c := range g.chunks {
		if c != nil {
			n++
		}
	}
	return n
}

func (g *Grid) activate(c *chunk) {
	c.active = true
	c.lastActive = g.now
}

// cellActive reports whether a single cell justifies keeping its chunk in the
// simulated set: burning, away from ambient temperature, drying out, or a
// mobile non-air material the fluid phase may still move.
func (g *Grid) cellActive(c Cell) bool {
	if c.Burning {
		return true
	}
	d := c.Temp - g.ambient
	if d > activityTempEps || d < -activityTempEps {
		return true
	}
	if c.Wetness > activityWetEps {
		return true
	}
	m := g.mats.Get(c.Material)
	return m.Flow != FlowSolid && c.Material != MatAir
}

// chunkActivity scans the chunk for any active cell.
func (g *Grid) chunkActivity(c *chunk) bool {
	for i := 0; i < chunkCells; i++ {
		if g.cellActive(c.cell(i)) {
			return true
		}
	}
	return false
}

const (
	activityTempEps = 1.0
	activityWetEps  = 0.005
)

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
